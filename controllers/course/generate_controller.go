package controllers

import (
	"encoding/json"
	"errors"

	"coursegen/ai"
	"coursegen/middleware"
	courseModels "coursegen/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// GenerateCourse creates a course outline from a topic and difficulty and
// persists it for the requesting user
func (ctl *CourseController) GenerateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedGenerate").(*struct {
		Email      string `json:"email"`
		Name       string `json:"name"`
		Topic      string `json:"topic"`
		Difficulty string `json:"difficulty"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := ctl.service.FindOrCreateUser(reqData.Email, reqData.Name)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve user!", nil)
	}

	outline, info, err := ctl.generator.GenerateCourse(reqData.Topic, reqData.Difficulty)
	if err != nil {
		var upstream *ai.UpstreamError
		var parseErr *ai.ParseError
		switch {
		case errors.Is(err, ai.ErrGenerationDisabled):
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Course generation is not configured!", nil)
		case errors.As(err, &upstream):
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "All generation models failed. Please try again later.", fiber.Map{
				"attempted_models": upstream.Attempted,
			})
		case errors.As(err, &parseErr):
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "The model response could not be parsed.", fiber.Map{
				"preview": parseErr.Preview,
			})
		case errors.Is(err, ai.ErrInvalidOutline):
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "The model response was missing required course fields.", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Course generation failed!", nil)
		}
	}

	meta, _ := json.Marshal(fiber.Map{
		"model":       info.Model,
		"raw_preview": info.RawPreview,
	})

	course := courseModels.Course{
		UserID:         user.ID,
		Title:          outline.Title,
		Topic:          reqData.Topic,
		Difficulty:     reqData.Difficulty,
		Description:    outline.Description,
		GenerationMeta: datatypes.JSON(meta),
	}

	modules := make([]courseModels.Module, len(outline.Modules))
	for i, draft := range outline.Modules {
		modules[i] = courseModels.Module{
			Title:       draft.Title,
			Description: draft.Description,
			Position:    draft.Order,
			Duration:    draft.Duration,
		}
	}

	if err := ctl.service.CreateCourseWithModules(&course, modules); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save generated course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course generated successfully!", fiber.Map{
		"course_id": course.ID,
		"course":    course,
		"modules":   modules,
	})
}

package courseValidator

import (
	"regexp"
	"strconv"
	"strings"

	"coursegen/middleware"
	courseModels "coursegen/models/course"

	"github.com/gofiber/fiber/v2"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validDifficulties = map[string]bool{
	courseModels.DifficultyBeginner:     true,
	courseModels.DifficultyIntermediate: true,
	courseModels.DifficultyAdvanced:     true,
}

// ============ Generation Validators ============

// GenerateCourse validates a course generation request
func GenerateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email      string `json:"email"`
			Name       string `json:"name"`
			Topic      string `json:"topic"`
			Difficulty string `json:"difficulty"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Email = strings.TrimSpace(reqData.Email)
		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Topic = strings.TrimSpace(reqData.Topic)
		reqData.Difficulty = strings.ToLower(strings.TrimSpace(reqData.Difficulty))

		if reqData.Email == "" {
			errors["email"] = "Email is required!"
		} else if !emailPattern.MatchString(reqData.Email) {
			errors["email"] = "Email is not valid!"
		}

		if reqData.Topic == "" {
			errors["topic"] = "Topic is required!"
		} else if len(reqData.Topic) < 3 {
			errors["topic"] = "Topic must be at least 3 characters long!"
		} else if len(reqData.Topic) > 200 {
			errors["topic"] = "Topic must not exceed 200 characters!"
		}

		if reqData.Difficulty == "" {
			errors["difficulty"] = "Difficulty is required!"
		} else if !validDifficulties[reqData.Difficulty] {
			errors["difficulty"] = "Difficulty must be beginner, intermediate, or advanced!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGenerate", reqData)
		return c.Next()
	}
}

// ============ Course Validators ============

// ListCourses validates the course listing request
func ListCourses() fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := strings.TrimSpace(c.Query("email"))

		if email == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email query parameter is required!", nil)
		}
		if !emailPattern.MatchString(email) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email is not valid!", nil)
		}

		c.Locals("email", email)
		return c.Next()
	}
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// UpdateCourse validates a course update request
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Topic       string `json:"topic"`
			Difficulty  string `json:"difficulty"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Topic = strings.TrimSpace(reqData.Topic)
		reqData.Difficulty = strings.ToLower(strings.TrimSpace(reqData.Difficulty))
		reqData.Description = strings.TrimSpace(reqData.Description)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		} else if len(reqData.Title) > 200 {
			errors["title"] = "Title must not exceed 200 characters!"
		}

		if reqData.Topic != "" && len(reqData.Topic) > 200 {
			errors["topic"] = "Topic must not exceed 200 characters!"
		}

		if reqData.Difficulty != "" && !validDifficulties[reqData.Difficulty] {
			errors["difficulty"] = "Difficulty must be beginner, intermediate, or advanced!"
		}

		if len(reqData.Description) > 5000 {
			errors["description"] = "Description must not exceed 5000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// ============ Module Validators ============

// UpdateModule validates a module update request
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleIDStr := strings.TrimSpace(c.Params("id"))
		moduleID, err := strconv.Atoi(moduleIDStr)
		if err != nil || moduleID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Position    int    `json:"position"`
			Duration    string `json:"duration"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Duration = strings.TrimSpace(reqData.Duration)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		} else if len(reqData.Title) > 200 {
			errors["title"] = "Title must not exceed 200 characters!"
		}

		if len(reqData.Description) > 5000 {
			errors["description"] = "Description must not exceed 5000 characters!"
		}

		if reqData.Position < 0 {
			errors["position"] = "Position must be a positive number!"
		}

		if len(reqData.Duration) > 50 {
			errors["duration"] = "Duration must not exceed 50 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("moduleID", moduleID)
		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

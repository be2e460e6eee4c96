package controllers

import (
	"errors"

	"coursegen/ai"
	"coursegen/middleware"
	"coursegen/services"

	"github.com/gofiber/fiber/v2"
)

// CourseController handles course and module requests. Dependencies are
// injected so tests can swap the storage handle and the generator.
type CourseController struct {
	service   *services.CourseService
	generator *ai.Generator
}

func NewCourseController(service *services.CourseService, generator *ai.Generator) *CourseController {
	return &CourseController{service: service, generator: generator}
}

// ListCourses returns the requesting user's courses, newest first, with
// module counts
func (ctl *CourseController) ListCourses(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := ctl.service.FindOrCreateUser(email, "")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve user!", nil)
	}

	courses, err := ctl.service.ListUserCourses(user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetCourse returns a single course with its modules ordered by position
func (ctl *CourseController) GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, modules, err := ctl.service.GetCourse(uint(courseID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":  course,
		"modules": modules,
	})
}

// UpdateCourse partially updates a course's editable fields
func (ctl *CourseController) UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       string `json:"title"`
		Topic       string `json:"topic"`
		Difficulty  string `json:"difficulty"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := ctl.service.UpdateCourse(uint(courseID), services.CourseUpdate{
		Title:       reqData.Title,
		Topic:       reqData.Topic,
		Difficulty:  reqData.Difficulty,
		Description: reqData.Description,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// UpdateModule partially updates a module's editable fields
func (ctl *CourseController) UpdateModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	reqData, ok := c.Locals("validatedModuleUpdate").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Position    int    `json:"position"`
		Duration    string `json:"duration"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module, err := ctl.service.UpdateModule(uint(moduleID), services.ModuleUpdate{
		Title:       reqData.Title,
		Description: reqData.Description,
		Position:    reqData.Position,
		Duration:    reqData.Duration,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteCourse removes a course and all of its modules
func (ctl *CourseController) DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	if err := ctl.service.DeleteCourse(uint(courseID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

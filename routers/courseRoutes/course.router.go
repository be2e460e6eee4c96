package courseRoutes

import (
	controllers "coursegen/controllers/course"
	validators "coursegen/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course and module routes
func SetupCourseRoutes(app *fiber.App, courseController *controllers.CourseController) {
	api := app.Group("/api")

	api.Post("/courses/generate", validators.GenerateCourse(), courseController.GenerateCourse)
	api.Get("/courses", validators.ListCourses(), courseController.ListCourses)
	api.Get("/courses/:id", validators.CourseID(), courseController.GetCourse)
	api.Put("/courses/:id", validators.UpdateCourse(), courseController.UpdateCourse)
	api.Delete("/courses/:id", validators.CourseID(), courseController.DeleteCourse)

	api.Put("/modules/:id", validators.UpdateModule(), courseController.UpdateModule)
}

package main

import (
	"log"

	"coursegen/ai"
	"coursegen/config"
	controllers "coursegen/controllers/course"
	"coursegen/database"
	"coursegen/middleware"
	"coursegen/routers/courseRoutes"
	"coursegen/services"
	"coursegen/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIApiKey, cfg.AIMaxTokens)
	aiClient.RefreshModels()
	utils.StartModelScheduler(aiClient)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	courseService := services.NewCourseService(db)
	generator := ai.NewGenerator(aiClient)
	courseController := controllers.NewCourseController(courseService, generator)

	courseRoutes.SetupCourseRoutes(app, courseController)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", nil)
	})

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

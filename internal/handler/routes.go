package handler

import (
	"mcq-creator/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers the API routes on app.
func SetupRoutes(app *fiber.App, quiz *QuizHandler, health *HealthHandler) {
	vm := middleware.NewValidationMiddleware()

	app.Get("/health", health.Health)

	apiGroup := app.Group("/api")
	apiGroup.Post("/quizzes", vm.ValidateGenerateQuizForm(), quiz.GenerateQuiz)
	apiGroup.Get("/quizzes/:id/csv", vm.ValidateQuizID(), quiz.DownloadQuizCSV)
}

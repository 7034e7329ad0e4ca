package handler

import (
	"mime/multipart"

	"mcq-creator/internal/domain"
	"mcq-creator/internal/logger"
	"mcq-creator/internal/middleware"
	"mcq-creator/internal/service"
	"mcq-creator/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a document
// @Description Reads an uploaded PDF or TXT file and generates multiple choice questions with a review
// @Tags quiz
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF or TXT document"
// @Param count formData int true "Number of questions (3-50)"
// @Param subject formData string true "Subject (max 20 characters)"
// @Param tone formData string true "Complexity level of the questions (max 20 characters)"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /api/quizzes [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	req, _ := c.Locals(middleware.ValidatedGenerateRequestKey).(validation.GenerateQuizRequest)
	fileHeader, _ := c.Locals(middleware.ValidatedFileKey).(*multipart.FileHeader)
	if fileHeader == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Get().Error("Failed to open uploaded file", zap.String("name", fileHeader.Filename), zap.Error(err))
		return domain.NewDocumentReadError(err)
	}
	defer file.Close()

	resp, err := h.service.GenerateQuiz(c.UserContext(), service.GenerateQuizInput{
		Document: domain.Document{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
			Size:        fileHeader.Size,
			Content:     file,
		},
		Count:   req.Count,
		Subject: req.Subject,
		Tone:    req.Tone,
	})
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// DownloadQuizCSV godoc
// @Summary Download a generated quiz as CSV
// @Description Returns the rows of a previously generated quiz as quiz.csv
// @Tags quiz
// @Produce text/csv
// @Param id path string true "Quiz result ID (ULID)"
// @Success 200 {file} file
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/quizzes/{id}/csv [get]
func (h *QuizHandler) DownloadQuizCSV(c *fiber.Ctx) error {
	id, _ := c.Locals(middleware.ValidatedQuizIDKey).(string)

	data, err := h.service.GetQuizCSV(c.UserContext(), id)
	if err != nil {
		return err
	}

	c.Attachment(service.QuizCSVFileName)
	c.Set(fiber.HeaderContentType, service.CSVContentType)
	return c.Send(data)
}

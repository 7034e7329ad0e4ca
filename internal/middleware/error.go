package middleware

import (
	"errors"
	"net/http"

	"mcq-creator/internal/domain"
	"mcq-creator/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request. Message is the banner
// text shown to the user.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ValidationErrorResponse adds the offending form fields.
type ValidationErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Errors  []domain.ValidationError `json:"errors"`
}

const internalErrorMessage = "Internal server error"

var statusByCode = map[domain.ErrorCode]int{
	domain.CodeNotFound:          http.StatusNotFound,
	domain.CodeInvalidInput:      http.StatusBadRequest,
	domain.CodeValidation:        http.StatusBadRequest,
	domain.CodeDocumentRead:      http.StatusUnprocessableEntity,
	domain.CodeGeneration:        http.StatusBadGateway,
	domain.CodeMalformedResponse: http.StatusBadGateway,
}

// ErrorHandler is the fiber error handler. Every failure of a generation
// cycle ends here as a single user-visible message.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get().With(zap.String("method", c.Method()), zap.String("path", c.Path()))

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Warn("Rejected quiz request", zap.Int("error_count", len(validationErrs)), zap.Error(err))
			return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
				Code:    string(domain.CodeValidation),
				Message: validationErrs.Error(),
				Status:  http.StatusBadRequest,
				Errors:  validationErrs,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			status := statusFor(domainErr.Code)
			fields := []zap.Field{
				zap.String("code", string(domainErr.Code)),
				zap.Int("status", status),
				zap.Error(domainErr.Err),
			}
			if status >= http.StatusInternalServerError {
				log.Error("Quiz request failed", fields...)
			} else {
				log.Warn("Quiz request failed", fields...)
			}
			return respond(c, status, string(domainErr.Code), domainErr.UserMessage())
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("HTTP error", zap.Int("status", fiberErr.Code), zap.String("message", fiberErr.Message))
			return respond(c, fiberErr.Code, "HTTP_ERROR", fiberErr.Message)
		}

		log.Error("Unhandled error", zap.Error(err))
		return respond(c, http.StatusInternalServerError, string(domain.CodeInternal), internalErrorMessage)
	}
}

func respond(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(ErrorResponse{Code: code, Message: message, Status: status})
}

func statusFor(code domain.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

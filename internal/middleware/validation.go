package middleware

import (
	"strconv"
	"strings"

	"mcq-creator/internal/domain"
	"mcq-creator/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by ValidationMiddleware.
const (
	ValidatedGenerateRequestKey = "validated_generate_request"
	ValidatedFileKey            = "validated_file"
	ValidatedQuizIDKey          = "validated_quiz_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateGenerateQuizForm validates the multipart form of a generation
// request: file, count, subject and tone.
func (vm *ValidationMiddleware) ValidateGenerateQuizForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, fileErr := c.FormFile("file")

		count, err := parseCount(c.FormValue("count"))
		if err != nil {
			return domain.ValidationErrors{
				domain.NewInvalidFormatError("count", c.FormValue("count")),
			}
		}

		req := validation.GenerateQuizRequest{
			HasFile: fileErr == nil && file != nil,
			Count:   count,
			Subject: strings.TrimSpace(c.FormValue("subject")),
			Tone:    strings.TrimSpace(c.FormValue("tone")),
		}
		if errors := vm.validator.ValidateGenerateQuizRequest(req); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		c.Locals(ValidatedGenerateRequestKey, req)
		c.Locals(ValidatedFileKey, file)
		return c.Next()
	}
}

// ValidateQuizID validates the :id path parameter
func (vm *ValidationMiddleware) ValidateQuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errors := vm.validator.ValidateQuizID(id); len(errors) > 0 {
			return errors
		}

		c.Locals(ValidatedQuizIDKey, id)
		return c.Next()
	}
}

// parseCount parses the count form value; an empty value counts as the
// minimum, like an untouched number input.
func parseCount(countStr string) (int, error) {
	countStr = strings.TrimSpace(countStr)
	if countStr == "" {
		return domain.MinQuestionCount, nil
	}
	return strconv.Atoi(countStr)
}

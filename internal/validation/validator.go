package validation

import (
	"strings"
	"unicode/utf8"

	"mcq-creator/internal/domain"
	"mcq-creator/internal/util"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// GenerateQuizRequest is the raw user input of one generation action.
type GenerateQuizRequest struct {
	HasFile bool
	Count   int
	Subject string
	Tone    string
}

// ValidateGenerateQuizRequest validates the generate quiz request
func (v *Validator) ValidateGenerateQuizRequest(req GenerateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if !req.HasFile {
		errors = append(errors, domain.NewMissingFieldError("file"))
	}

	if req.Count < domain.MinQuestionCount || req.Count > domain.MaxQuestionCount {
		errors = append(errors, domain.NewOutOfRangeError("count", req.Count, domain.MinQuestionCount, domain.MaxQuestionCount))
	}

	errors = append(errors, validateLabel("subject", req.Subject)...)
	errors = append(errors, validateLabel("tone", req.Tone)...)

	return errors
}

// ValidateQuizID validates a stored quiz id
func (v *Validator) ValidateQuizID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !util.IsValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}

	return errors
}

// validateLabel checks a free text field; its length is counted in characters.
func validateLabel(field, value string) domain.ValidationErrors {
	if strings.TrimSpace(value) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if utf8.RuneCountInString(value) > domain.MaxLabelLength {
		return domain.ValidationErrors{domain.NewTooLongError(field, domain.MaxLabelLength)}
	}
	return nil
}

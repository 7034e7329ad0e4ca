package domain

import (
	"encoding/json"
	"io"
)

const (
	// MinQuestionCount and MaxQuestionCount bound the requested quiz size.
	MinQuestionCount = 3
	MaxQuestionCount = 50

	// MaxLabelLength limits the subject and tone inputs.
	MaxLabelLength = 20
)

// Document is an uploaded file handle as captured by the input layer.
type Document struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.ReaderAt
}

// ResponseTemplate is the JSON example of one quiz's shape, loaded once at
// startup and never mutated afterwards.
type ResponseTemplate struct {
	raw json.RawMessage
}

// NewResponseTemplate wraps an already validated JSON object.
func NewResponseTemplate(raw []byte) *ResponseTemplate {
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return &ResponseTemplate{raw: cp}
}

// String returns the template serialized as sent to the generator.
func (t *ResponseTemplate) String() string {
	if t == nil {
		return "{}"
	}
	return string(t.raw)
}

// GenerationRequest is assembled fresh for every user action.
type GenerationRequest struct {
	Text         string
	Count        int
	Subject      string
	Tone         string
	ResponseJSON string
}

// NewGenerationRequest builds the request for one generation cycle.
func NewGenerationRequest(text string, count int, subject, tone string, tmpl *ResponseTemplate) GenerationRequest {
	return GenerationRequest{
		Text:         text,
		Count:        count,
		Subject:      subject,
		Tone:         tone,
		ResponseJSON: tmpl.String(),
	}
}

// GenerationResponse is whatever the generation collaborator returned.
// Nothing about its shape is guaranteed.
type GenerationResponse any

// QuizEntry is one question of a generated quiz, kept as raw JSON so that
// the order of its options survives.
type QuizEntry struct {
	Key string
	Raw json.RawMessage
}

// RawQuiz is the quiz mapping in iteration order.
type RawQuiz []QuizEntry

// Option is one rendered answer choice.
type Option struct {
	Key  string
	Text string
}

// QuizTableRow is one displayed (and exported) row of the quiz table.
type QuizTableRow struct {
	MCQ     string `json:"MCQ"`
	Choices string `json:"Choices"`
	Correct string `json:"Correct"`
}

// QuizTableHeader lists the column names of QuizTableRow in display order.
var QuizTableHeader = []string{"MCQ", "Choices", "Correct"}

// Record returns the row's fields in QuizTableHeader order.
func (r QuizTableRow) Record() []string {
	return []string{r.MCQ, r.Choices, r.Correct}
}

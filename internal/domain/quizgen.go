package domain

import (
	"context"
)

// DocumentReader extracts raw text from an uploaded document.
type DocumentReader interface {
	Read(ctx context.Context, doc Document) (string, error)
}

// QuizGenerator turns a passage plus parameters into a quiz and a review.
// Implementations call a remote model and may block for the whole inference;
// the returned value is untrusted and must go through ClassifyResponse.
type QuizGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (GenerationResponse, error)
}

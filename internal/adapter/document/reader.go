package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"mcq-creator/internal/domain"
	"mcq-creator/internal/logger"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format: only pdf and text files are supported")
	ErrEmptyDocument     = errors.New("no text could be extracted from the document")
)

// Reader extracts text from PDF and plain text uploads with the langchaingo
// document loaders.
type Reader struct{}

// NewReader creates a new document Reader.
func NewReader() domain.DocumentReader {
	return &Reader{}
}

// Read implements domain.DocumentReader.
func (r *Reader) Read(ctx context.Context, doc domain.Document) (string, error) {
	if doc.Content == nil {
		return "", fmt.Errorf("document %q has no content", doc.Name)
	}

	var (
		docs []schema.Document
		err  error
	)
	switch kindOf(doc) {
	case "pdf":
		docs, err = documentloaders.NewPDF(doc.Content, doc.Size).Load(ctx)
	case "text":
		docs, err = documentloaders.NewText(io.NewSectionReader(doc.Content, 0, doc.Size)).Load(ctx)
	default:
		return "", ErrUnsupportedFormat
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", doc.Name, err)
	}

	pages := make([]string, 0, len(docs))
	for _, d := range docs {
		if content := strings.TrimSpace(d.PageContent); content != "" {
			pages = append(pages, content)
		}
	}
	if len(pages) == 0 {
		return "", ErrEmptyDocument
	}

	text := strings.Join(pages, "\n")
	logger.Get().Debug("Document text extracted",
		zap.String("name", doc.Name),
		zap.Int("pages", len(docs)),
		zap.Int("chars", len(text)))
	return text, nil
}

// kindOf decides the loader from the file extension, falling back to the
// declared content type.
func kindOf(doc domain.Document) string {
	switch strings.ToLower(filepath.Ext(doc.Name)) {
	case ".pdf":
		return "pdf"
	case ".txt", ".text":
		return "text"
	}

	contentType := strings.ToLower(doc.ContentType)
	switch {
	case strings.HasPrefix(contentType, "application/pdf"):
		return "pdf"
	case strings.HasPrefix(contentType, "text/plain"):
		return "text"
	}
	return ""
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"mcq-creator/internal/domain"
	"mcq-creator/internal/dto"
	"mcq-creator/internal/logger"
	"mcq-creator/internal/util"

	"go.uber.org/zap"
)

// GenerateQuizInput is one validated user action.
type GenerateQuizInput struct {
	Document domain.Document
	Count    int
	Subject  string
	Tone     string
}

// QuizService runs generation cycles and serves their CSV downloads.
type QuizService interface {
	GenerateQuiz(ctx context.Context, in GenerateQuizInput) (*dto.GenerateQuizResponse, error)
	GetQuizCSV(ctx context.Context, id string) ([]byte, error)
}

// quizService implements QuizService
type quizService struct {
	reader    domain.DocumentReader
	generator domain.QuizGenerator
	template  *domain.ResponseTemplate
	results   QuizResultStore
	usageOut  io.Writer
}

// NewQuizService creates a new instance of quizService. usageOut receives the
// token usage lines of each generation; nil means standard output.
func NewQuizService(
	reader domain.DocumentReader,
	generator domain.QuizGenerator,
	template *domain.ResponseTemplate,
	results QuizResultStore,
	usageOut io.Writer,
) QuizService {
	if results == nil {
		results = NewQuizResultStore(nil, 0)
	}
	if usageOut == nil {
		usageOut = os.Stdout
	}
	return &quizService{
		reader:    reader,
		generator: generator,
		template:  template,
		results:   results,
		usageOut:  usageOut,
	}
}

// DownloadPath is the API path serving the CSV of a stored quiz.
func DownloadPath(id string) string {
	return fmt.Sprintf("/api/quizzes/%s/csv", id)
}

// GenerateQuiz implements QuizService
func (s *quizService) GenerateQuiz(ctx context.Context, in GenerateQuizInput) (*dto.GenerateQuizResponse, error) {
	l := logger.Get()

	text, err := s.reader.Read(ctx, in.Document)
	if err != nil {
		l.Error("Failed to read document", zap.String("name", in.Document.Name), zap.Error(err))
		return nil, domain.NewDocumentReadError(err)
	}

	req := domain.NewGenerationRequest(text, in.Count, in.Subject, in.Tone, s.template)

	ctx, tracker := domain.WithUsageTracker(ctx)
	raw, err := s.generator.Generate(ctx, req)
	if err != nil {
		l.Error("Quiz generation failed", zap.Error(err))
		return nil, domain.NewGenerationError(err)
	}

	usage := tracker.Snapshot()
	s.reportUsage(usage)

	outcome, err := domain.ClassifyResponse(raw)
	if err != nil {
		l.Warn("Generator returned an unusable quiz", zap.Error(err))
		return nil, err
	}

	switch o := outcome.(type) {
	case domain.Opaque:
		l.Info("Generator returned an unexpected shape, passing it through", zap.String("type", fmt.Sprintf("%T", o.Value)))
		return &dto.GenerateQuizResponse{
			Kind:  dto.KindRaw,
			Raw:   o.Value,
			Usage: usageResponse(usage),
		}, nil
	case domain.StructuredQuiz:
		return s.renderTable(ctx, o, usage)
	default:
		return nil, domain.NewInternalError("unknown generation outcome", fmt.Errorf("%T", outcome))
	}
}

func (s *quizService) renderTable(ctx context.Context, quiz domain.StructuredQuiz, usage domain.Usage) (*dto.GenerateQuizResponse, error) {
	rows := FormatRows(quiz.Quiz)
	if len(rows) == 0 {
		return nil, domain.NewMalformedResponseError(errors.New("no quiz entry could be formatted"))
	}

	csvData, err := ExportCSV(rows)
	if err != nil {
		return nil, domain.NewInternalError("failed to export quiz as csv", err)
	}

	resp := &dto.GenerateQuizResponse{
		Kind:   dto.KindTable,
		Rows:   make([]dto.QuizRowResponse, 0, len(rows)),
		Review: quiz.Review,
		CSV:    string(csvData),
		Usage:  usageResponse(usage),
	}
	for i, row := range rows {
		resp.Rows = append(resp.Rows, dto.QuizRowResponse{
			Index:   i + 1,
			MCQ:     row.MCQ,
			Choices: row.Choices,
			Correct: row.Correct,
		})
	}

	if s.results.Enabled() {
		id := util.NewULID()
		if err := s.results.Put(ctx, id, rows); err != nil {
			logger.Get().Warn("Failed to store quiz table, download falls back to embedded csv", zap.Error(err))
		} else {
			resp.ID = id
			resp.DownloadURL = DownloadPath(id)
		}
	}

	logger.Get().Info("Quiz generated",
		zap.String("id", resp.ID),
		zap.Int("requested", len(quiz.Quiz)),
		zap.Int("rows", len(rows)))
	return resp, nil
}

// GetQuizCSV implements QuizService
func (s *quizService) GetQuizCSV(ctx context.Context, id string) ([]byte, error) {
	if !util.IsValidULID(id) {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("id", id)}
	}

	rows, err := s.results.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrQuizResultNotFound) {
			return nil, domain.NewNotFoundError("quiz result not found or expired")
		}
		return nil, err
	}

	data, err := ExportCSV(rows)
	if err != nil {
		return nil, domain.NewInternalError("failed to export quiz as csv", err)
	}
	return data, nil
}

func (s *quizService) reportUsage(usage domain.Usage) {
	if err := usage.Report(s.usageOut); err != nil {
		logger.Get().Warn("Failed to write usage report", zap.Error(err))
	}
	logger.Get().Debug("Generation usage",
		zap.Int("total_tokens", usage.TotalTokens),
		zap.Int("prompt_tokens", usage.PromptTokens),
		zap.Int("completion_tokens", usage.CompletionTokens),
		zap.Float64("total_cost", usage.TotalCost))
}

func usageResponse(u domain.Usage) *dto.UsageResponse {
	return &dto.UsageResponse{
		TotalTokens:      u.TotalTokens,
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalCost:        u.TotalCost,
	}
}

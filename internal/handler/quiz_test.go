package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mcq-creator/internal/domain"
	"mcq-creator/internal/dto"
	"mcq-creator/internal/handler"
	"mcq-creator/internal/middleware"
	"mcq-creator/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

// MockQuizService
type MockQuizService struct {
	GenerateQuizFunc func(ctx context.Context, in service.GenerateQuizInput) (*dto.GenerateQuizResponse, error)
	GetQuizCSVFunc   func(ctx context.Context, id string) ([]byte, error)
}

func (m *MockQuizService) GenerateQuiz(ctx context.Context, in service.GenerateQuizInput) (*dto.GenerateQuizResponse, error) {
	if m.GenerateQuizFunc != nil {
		return m.GenerateQuizFunc(ctx, in)
	}
	panic("MockQuizService.GenerateQuizFunc not implemented")
}

func (m *MockQuizService) GetQuizCSV(ctx context.Context, id string) ([]byte, error) {
	if m.GetQuizCSVFunc != nil {
		return m.GetQuizCSVFunc(ctx, id)
	}
	panic("MockQuizService.GetQuizCSVFunc not implemented")
}

// MockCache
type MockCache struct {
	pingErr error
}

func (m *MockCache) Get(context.Context, string) (string, error) { return "", domain.ErrCacheMiss }
func (m *MockCache) Set(context.Context, string, string, time.Duration) error {
	return nil
}
func (m *MockCache) Delete(context.Context, string) error { return nil }
func (m *MockCache) Ping(context.Context) error           { return m.pingErr }

func setupApp(svc service.QuizService, cache domain.Cache) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestLogger())
	handler.SetupRoutes(app, handler.NewQuizHandler(svc), handler.NewHealthHandler(cache))
	return app
}

func multipartRequest(t *testing.T, fields map[string]string, fileName, fileBody string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(fileBody))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/quizzes", &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

var validFields = map[string]string{"count": "5", "subject": "biology", "tone": "simple"}

func TestGenerateQuiz_Success(t *testing.T) {
	var got service.GenerateQuizInput
	var gotContent string
	svc := &MockQuizService{
		GenerateQuizFunc: func(_ context.Context, in service.GenerateQuizInput) (*dto.GenerateQuizResponse, error) {
			got = in
			buf := make([]byte, in.Document.Size)
			_, err := in.Document.Content.ReadAt(buf, 0)
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			gotContent = string(buf)
			return &dto.GenerateQuizResponse{
				ID:   "01ARZ3NDEKTSV4RRFFQ69G5FAV",
				Kind: dto.KindTable,
				Rows: []dto.QuizRowResponse{{Index: 1, MCQ: "2+2?", Choices: "A: 3 | B: 4", Correct: "B"}},
			}, nil
		},
	}
	app := setupApp(svc, nil)

	resp, err := app.Test(multipartRequest(t, validFields, "notes.txt", "Plants make glucose."), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.GenerateQuizResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, dto.KindTable, body.Kind)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, 1, body.Rows[0].Index)

	assert.Equal(t, "notes.txt", got.Document.Name)
	assert.Equal(t, 5, got.Count)
	assert.Equal(t, "biology", got.Subject)
	assert.Equal(t, "simple", got.Tone)
	assert.Equal(t, "Plants make glucose.", gotContent)
}

func TestGenerateQuiz_ValidationErrors(t *testing.T) {
	svc := &MockQuizService{} // never reached
	app := setupApp(svc, nil)

	tests := []struct {
		name     string
		fields   map[string]string
		fileName string
		field    string
	}{
		{"missing file", validFields, "", "file"},
		{"count too small", map[string]string{"count": "2", "subject": "bio", "tone": "easy"}, "a.txt", "count"},
		{"count not a number", map[string]string{"count": "many", "subject": "bio", "tone": "easy"}, "a.txt", "count"},
		{"subject too long", map[string]string{"count": "3", "subject": "an extremely long subject", "tone": "easy"}, "a.txt", "subject"},
		{"missing tone", map[string]string{"count": "3", "subject": "bio"}, "a.txt", "tone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(multipartRequest(t, tt.fields, tt.fileName, "text"), -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body middleware.ValidationErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, string(domain.CodeValidation), body.Code)
			require.NotEmpty(t, body.Errors)
			assert.Equal(t, tt.field, body.Errors[0].Field)
		})
	}
}

func TestGenerateQuiz_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    domain.ErrorCode
		message string
	}{
		{
			name:    "document read",
			err:     domain.NewDocumentReadError(errors.New("unsupported file format")),
			status:  http.StatusUnprocessableEntity,
			code:    domain.CodeDocumentRead,
			message: "Error while reading document: unsupported file format",
		},
		{
			name:    "generation",
			err:     domain.NewGenerationError(errors.New("insufficient_quota")),
			status:  http.StatusBadGateway,
			code:    domain.CodeGeneration,
			message: "Error while generating quiz: insufficient_quota",
		},
		{
			name:    "malformed",
			err:     domain.NewMalformedResponseError(errors.New("response has no quiz entry")),
			status:  http.StatusBadGateway,
			code:    domain.CodeMalformedResponse,
			message: "Error in table data",
		},
		{
			name:    "unknown",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    domain.CodeInternal,
			message: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockQuizService{
				GenerateQuizFunc: func(context.Context, service.GenerateQuizInput) (*dto.GenerateQuizResponse, error) {
					return nil, tt.err
				},
			}
			app := setupApp(svc, nil)

			resp, err := app.Test(multipartRequest(t, validFields, "notes.txt", "text"), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body middleware.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, string(tt.code), body.Code)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.status, body.Status)
		})
	}
}

func TestDownloadQuizCSV(t *testing.T) {
	const id = "01ARZ3NDEKTSV4RRFFQ69G5FAV"
	csvData := "MCQ,Choices,Correct\n2+2?,A: 3 | B: 4,B\n"

	svc := &MockQuizService{
		GetQuizCSVFunc: func(_ context.Context, gotID string) ([]byte, error) {
			if gotID != id {
				return nil, domain.NewNotFoundError("quiz result not found or expired")
			}
			return []byte(csvData), nil
		},
	}
	app := setupApp(svc, nil)

	t.Run("attachment", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes/"+id+"/csv", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, `attachment; filename="quiz.csv"`, resp.Header.Get(fiber.HeaderContentDisposition))
		assert.Equal(t, service.CSVContentType, resp.Header.Get(fiber.HeaderContentType))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, csvData, string(body))
	})

	t.Run("not found", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes/01BX5ZZKBKACTAV9WEVGEMMVRZ/csv", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes/latest/csv", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		cache  domain.Cache
		status int
		want   dto.HealthResponse
	}{
		{"no cache", nil, http.StatusOK, dto.HealthResponse{Status: "ok", Cache: "disabled"}},
		{"cache up", &MockCache{}, http.StatusOK, dto.HealthResponse{Status: "ok", Cache: "up"}},
		{"cache down", &MockCache{pingErr: errors.New("refused")}, http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Cache: "down"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupApp(&MockQuizService{}, tt.cache)
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body dto.HealthResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.want, body)
		})
	}
}

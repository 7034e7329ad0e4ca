package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mcq-creator/internal/cache"
	"mcq-creator/internal/domain"
	"mcq-creator/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrQuizResultNotFound is returned when no rendered quiz is stored under an id.
var ErrQuizResultNotFound = errors.New("quiz result not found in cache")

// QuizResultStore keeps the rows of a rendered quiz so the CSV download can
// serve exactly what was displayed.
type QuizResultStore interface {
	Put(ctx context.Context, id string, rows []domain.QuizTableRow) error
	Get(ctx context.Context, id string) ([]domain.QuizTableRow, error)
	// Enabled reports whether Put actually stores anything.
	Enabled() bool
}

type quizResultStoreImpl struct {
	cache domain.Cache
	ttl   time.Duration
	// sf collapses concurrent downloads of the same quiz into one cache read.
	sf singleflight.Group
}

// NewQuizResultStore returns a cache backed store, or a no-op store when
// cache is nil.
func NewQuizResultStore(c domain.Cache, ttl time.Duration) QuizResultStore {
	if c == nil {
		logger.Get().Warn("QuizResultStore initialized with nil cache. Downloads will use the CSV embedded in responses.")
		return &noopQuizResultStore{}
	}
	return &quizResultStoreImpl{cache: c, ttl: ttl}
}

// QuizResultKey is the cache key of a stored quiz table.
func QuizResultKey(id string) string {
	return cache.QuizTableKey(id)
}

func (s *quizResultStoreImpl) Enabled() bool { return true }

func (s *quizResultStoreImpl) Put(ctx context.Context, id string, rows []domain.QuizTableRow) error {
	if len(rows) == 0 {
		return domain.NewInvalidInputError("cannot store an empty quiz table")
	}

	key := QuizResultKey(id)
	data, err := json.Marshal(rows)
	if err != nil {
		return domain.NewInternalError("failed to marshal quiz table for caching", err)
	}

	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to cache quiz table", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set quiz table to cache for key %s", key), err)
	}
	logger.Get().Debug("Cached quiz table", zap.String("key", key), zap.Int("rows", len(rows)), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *quizResultStoreImpl) Get(ctx context.Context, id string) ([]domain.QuizTableRow, error) {
	key := QuizResultKey(id)
	res, err, shared := s.sf.Do(key, func() (interface{}, error) {
		// The read is shared, so one caller cancelling must not fail the rest.
		return s.fetch(context.WithoutCancel(ctx), key)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Quiz table read shared between concurrent downloads", zap.String("key", key))
	}

	rows, ok := res.([]domain.QuizTableRow)
	if !ok {
		return nil, domain.NewInternalError(fmt.Sprintf("unexpected type from singleflight.Do for quiz table: %T", res), nil)
	}
	// Callers may hold the same slice; hand out copies.
	out := make([]domain.QuizTableRow, len(rows))
	copy(out, rows)
	return out, nil
}

func (s *quizResultStoreImpl) fetch(ctx context.Context, key string) ([]domain.QuizTableRow, error) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Quiz table cache miss", zap.String("key", key))
			return nil, ErrQuizResultNotFound
		}
		logger.Get().Error("Failed to get quiz table from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get quiz table from cache for key %s", key), err)
	}
	if data == "" {
		return nil, ErrQuizResultNotFound
	}

	var rows []domain.QuizTableRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		logger.Get().Error("Failed to unmarshal quiz table from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal quiz table from cache for key %s", key), err)
	}
	return rows, nil
}

// noopQuizResultStore is used when no cache is configured.
type noopQuizResultStore struct{}

func (s *noopQuizResultStore) Enabled() bool { return false }

func (s *noopQuizResultStore) Put(ctx context.Context, id string, rows []domain.QuizTableRow) error {
	logger.Get().Debug("No-op QuizResultStore: Put called", zap.String("id", id))
	return nil
}

func (s *noopQuizResultStore) Get(ctx context.Context, id string) ([]domain.QuizTableRow, error) {
	return nil, ErrQuizResultNotFound
}

package llm

import (
	"context"

	"mcq-creator/internal/domain"

	"github.com/tmc/langchaingo/llms"
)

// meteredModel is a decorator that feeds token counts reported by the
// provider, priced by LookupCost, into the domain.UsageTracker found on the
// call's context.
type meteredModel struct {
	inner   llms.Model
	modelID string
}

// Metered wraps model so that its token usage is recorded per request.
func Metered(model llms.Model, modelID string) llms.Model {
	return &meteredModel{inner: model, modelID: modelID}
}

func (m *meteredModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	resp, err := m.inner.GenerateContent(ctx, messages, options...)
	if err != nil || resp == nil {
		return resp, err
	}

	if tracker := domain.UsageFromContext(ctx); tracker != nil {
		for _, choice := range resp.Choices {
			if choice == nil {
				continue
			}
			prompt := intInfo(choice.GenerationInfo, "PromptTokens")
			completion := intInfo(choice.GenerationInfo, "CompletionTokens")
			tracker.Add(prompt, completion, intInfo(choice.GenerationInfo, "TotalTokens"), m.cost(prompt, completion))
		}
	}
	return resp, nil
}

func (m *meteredModel) cost(prompt, completion int) float64 {
	if c := LookupCost(m.modelID); c != nil {
		return c.Cost(prompt, completion)
	}
	return 0
}

func (m *meteredModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

// intInfo reads a token count from GenerationInfo; providers differ in the
// numeric type they report.
func intInfo(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

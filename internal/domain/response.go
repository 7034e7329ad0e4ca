package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// GenerationOutcome is the validated form of a GenerationResponse.
// It is either a StructuredQuiz or an Opaque value.
type GenerationOutcome interface {
	isGenerationOutcome()
}

// StructuredQuiz is a response carrying a non-empty quiz mapping.
type StructuredQuiz struct {
	Quiz   RawQuiz
	Review string
}

// Opaque is a response of an unexpected shape, displayed verbatim.
type Opaque struct {
	Value any
}

func (StructuredQuiz) isGenerationOutcome() {}
func (Opaque) isGenerationOutcome()         {}

var (
	errQuizMissing  = errors.New("response has no quiz entry")
	errQuizEmpty    = errors.New("quiz entry is empty")
	errQuizNotJSON  = errors.New("quiz entry is not a JSON object")
	errQuizBadShape = errors.New("quiz entry has an unsupported type")
)

// ClassifyResponse turns an untrusted generator response into an outcome.
// A mapping without a usable quiz yields a MalformedResponseError; any
// value that is not a mapping is returned as Opaque.
func ClassifyResponse(raw GenerationResponse) (GenerationOutcome, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Opaque{Value: raw}, nil
	}

	quizValue, ok := m["quiz"]
	if !ok || quizValue == nil {
		return nil, NewMalformedResponseError(errQuizMissing)
	}

	quiz, err := parseQuiz(quizValue)
	if err != nil {
		return nil, NewMalformedResponseError(err)
	}
	if len(quiz) == 0 {
		return nil, NewMalformedResponseError(errQuizEmpty)
	}

	return StructuredQuiz{Quiz: quiz, Review: reviewText(m["review"])}, nil
}

func reviewText(v any) string {
	switch r := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(r)
	default:
		return fmt.Sprint(r)
	}
}

func parseQuiz(v any) (RawQuiz, error) {
	switch q := v.(type) {
	case string:
		return parseQuizJSON(q)
	case []byte:
		return parseQuizJSON(string(q))
	case json.RawMessage:
		return parseQuizJSON(string(q))
	case map[string]any:
		return quizFromMap(q)
	default:
		return nil, errQuizBadShape
	}
}

// parseQuizJSON walks the quiz object in source order.
func parseQuizJSON(s string) (RawQuiz, error) {
	cleaned := ExtractJSONObject(s)
	if cleaned == "" {
		if strings.TrimSpace(s) == "" {
			return nil, errQuizEmpty
		}
		return nil, errQuizNotJSON
	}
	if !gjson.Valid(cleaned) {
		return nil, errQuizNotJSON
	}
	parsed := gjson.Parse(cleaned)
	if !parsed.IsObject() {
		return nil, errQuizNotJSON
	}

	quiz := RawQuiz{}
	parsed.ForEach(func(key, value gjson.Result) bool {
		quiz = append(quiz, QuizEntry{Key: key.String(), Raw: json.RawMessage(value.Raw)})
		return true
	})
	return quiz, nil
}

// quizFromMap handles generators that return an already decoded quiz.
// Go maps carry no order, so keys are sorted numerically, then lexically.
func quizFromMap(m map[string]any) (RawQuiz, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})

	quiz := make(RawQuiz, 0, len(keys))
	for _, k := range keys {
		b, err := json.Marshal(m[k])
		if err != nil {
			return nil, fmt.Errorf("encode quiz entry %q: %w", k, err)
		}
		quiz = append(quiz, QuizEntry{Key: k, Raw: b})
	}
	return quiz, nil
}

// ExtractJSONObject strips <think> blocks and code fences from an LLM
// answer and returns the outermost {...} span, or "" if there is none.
func ExtractJSONObject(s string) string {
	cleaned := strings.TrimSpace(s)

	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd > thinkStart {
			cleaned = cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):]
		}
	}

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd <= jsonStart {
		return ""
	}
	return cleaned[jsonStart : jsonEnd+1]
}

package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"mcq-creator/internal/domain"
	"mcq-creator/internal/logger"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const quizEntrySchemaURL = "schema://mcqgen/quiz-entry.json"

// quizEntrySchema is the shape every quiz entry must have before it can be
// rendered as a table row.
const quizEntrySchema = `{
  "type": "object",
  "required": ["mcq", "options", "correct"],
  "properties": {
    "mcq": {"type": "string", "minLength": 1},
    "options": {
      "type": "object",
      "minProperties": 2,
      "additionalProperties": {"type": "string"}
    },
    "correct": {"type": "string", "minLength": 1}
  }
}`

// ChoiceSeparator joins rendered options inside the Choices column.
const ChoiceSeparator = " | "

var entrySchema = mustCompileEntrySchema()

func mustCompileEntrySchema() *jsonschema.Schema {
	var def any
	if err := json.Unmarshal([]byte(quizEntrySchema), &def); err != nil {
		panic(fmt.Sprintf("quiz entry schema: %v", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(quizEntrySchemaURL, def); err != nil {
		panic(fmt.Sprintf("quiz entry schema: add resource: %v", err))
	}
	compiled, err := c.Compile(quizEntrySchemaURL)
	if err != nil {
		panic(fmt.Sprintf("quiz entry schema: compile: %v", err))
	}
	return compiled
}

var errUnknownCorrect = errors.New("correct answer does not match any option")

// FormatRows renders the quiz entries as table rows, in the order given.
// Entries that cannot be rendered are skipped and logged; the result is
// never nil.
func FormatRows(quiz domain.RawQuiz) []domain.QuizTableRow {
	rows := make([]domain.QuizTableRow, 0, len(quiz))
	for _, entry := range quiz {
		row, err := FormatEntry(entry)
		if err != nil {
			logger.Get().Warn("Skipping malformed quiz entry",
				zap.String("key", entry.Key),
				zap.Error(err))
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatEntry renders a single quiz entry.
func FormatEntry(entry domain.QuizEntry) (domain.QuizTableRow, error) {
	var parsed any
	if err := json.Unmarshal(entry.Raw, &parsed); err != nil {
		return domain.QuizTableRow{}, fmt.Errorf("entry %q is not valid JSON: %w", entry.Key, err)
	}
	if err := entrySchema.Validate(parsed); err != nil {
		return domain.QuizTableRow{}, fmt.Errorf("entry %q: %w", entry.Key, err)
	}

	doc := gjson.ParseBytes(entry.Raw)
	options := orderedOptions(doc.Get("options"))

	correct, err := CorrectKey(doc.Get("correct").String(), options)
	if err != nil {
		return domain.QuizTableRow{}, fmt.Errorf("entry %q: %w", entry.Key, err)
	}

	return domain.QuizTableRow{
		MCQ:     strings.TrimSpace(doc.Get("mcq").String()),
		Choices: RenderChoices(options),
		Correct: correct,
	}, nil
}

// orderedOptions walks the options object in source order.
func orderedOptions(options gjson.Result) []domain.Option {
	var out []domain.Option
	options.ForEach(func(key, value gjson.Result) bool {
		out = append(out, domain.Option{
			Key:  strings.TrimSpace(key.String()),
			Text: strings.TrimSpace(value.String()),
		})
		return true
	})
	return out
}

// RenderChoices formats options as "K: V" pairs with uppercased keys.
func RenderChoices(options []domain.Option) string {
	parts := make([]string, 0, len(options))
	for _, o := range options {
		parts = append(parts, strings.ToUpper(o.Key)+": "+o.Text)
	}
	return strings.Join(parts, ChoiceSeparator)
}

// CorrectKey resolves the model's correct answer to an uppercased option key.
// Accepted forms, tried in this order, are the key itself ("b"), the full
// text of one option ("A cell wall"), or the key followed by punctuation or
// text ("b)", "B: Paris").
func CorrectKey(correct string, options []domain.Option) (string, error) {
	c := strings.TrimSpace(correct)
	if c == "" {
		return "", errUnknownCorrect
	}

	for _, o := range options {
		if strings.EqualFold(o.Key, c) {
			return strings.ToUpper(o.Key), nil
		}
	}

	for _, o := range options {
		if o.Text != "" && strings.EqualFold(strings.TrimSpace(o.Text), c) {
			return strings.ToUpper(o.Key), nil
		}
	}

	for _, o := range options {
		if hasKeyPrefix(c, o.Key) {
			return strings.ToUpper(o.Key), nil
		}
	}

	return "", fmt.Errorf("%w: %q", errUnknownCorrect, correct)
}

// hasKeyPrefix reports whether s starts with key followed by a non-letter,
// so that "a)" matches key "a" but "apple" does not.
func hasKeyPrefix(s, key string) bool {
	if key == "" || len(s) <= len(key) || !strings.EqualFold(s[:len(key)], key) {
		return false
	}
	next := []rune(s[len(key):])[0]
	return !unicode.IsLetter(next)
}

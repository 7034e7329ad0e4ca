package quizgen

import (
	"context"
	"fmt"

	"mcq-creator/internal/domain"
	"mcq-creator/internal/logger"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
	"go.uber.org/zap"
)

// Keys shared by the chain inputs, the prompt templates and the result map.
const (
	KeyText         = "text"
	KeyNumber       = "number"
	KeySubject      = "subject"
	KeyTone         = "tone"
	KeyResponseJSON = "response_json"
	KeyQuiz         = "quiz"
	KeyReview       = "review"
)

const quizTemplate = `Text:
{{.text}}

You are an expert MCQ maker. Using the text above, create a quiz of {{.number}} multiple choice questions for {{.subject}} students in a {{.tone}} tone.
Every question must be answerable from the text and must not repeat another question.
Answer with a single JSON object only, no prose and no code fences.
Its keys are the question numbers starting at "1" and every value has exactly the shape of the example below.
Create {{.number}} questions.

### RESPONSE_JSON
{{.response_json}}
`

const reviewTemplate = `You are an expert English grammarian and writer. Given a multiple choice quiz for {{.subject}} students,
evaluate the complexity of the questions and give a complete analysis of the quiz in at most 50 words.
If the quiz does not match the cognitive and analytical abilities of the students,
say which questions should change and how the tone should be adjusted.

Quiz_MCQs:
{{.quiz}}

Check from an expert English writer of the above quiz:
`

// LangChainQuizGenerator implements domain.QuizGenerator with two langchaingo
// LLM chains: a quiz chain, then a review chain fed with the quiz text and
// the original subject.
type LangChainQuizGenerator struct {
	quizChain   *chains.LLMChain
	reviewChain *chains.LLMChain
	temperature float64
}

// NewLangChainQuizGenerator wires the two prompt chains around model.
func NewLangChainQuizGenerator(model llms.Model, temperature float64) (domain.QuizGenerator, error) {
	if model == nil {
		return nil, fmt.Errorf("llm model cannot be nil")
	}

	quizChain := chains.NewLLMChain(model, prompts.NewPromptTemplate(quizTemplate,
		[]string{KeyText, KeyNumber, KeySubject, KeyTone, KeyResponseJSON}))
	quizChain.OutputKey = KeyQuiz

	reviewChain := chains.NewLLMChain(model, prompts.NewPromptTemplate(reviewTemplate,
		[]string{KeySubject, KeyQuiz}))
	reviewChain.OutputKey = KeyReview

	return &LangChainQuizGenerator{quizChain: quizChain, reviewChain: reviewChain, temperature: temperature}, nil
}

// Generate runs the quiz chain, then the review chain, and returns
// {quiz, review}. The review chain is given the subject alongside the quiz.
func (g *LangChainQuizGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResponse, error) {
	l := logger.Get()
	l.Info("Running generation chain",
		zap.Int("number", req.Count),
		zap.String("subject", req.Subject),
		zap.String("tone", req.Tone),
		zap.Int("text_chars", len(req.Text)))

	quizOut, err := chains.Call(ctx, g.quizChain, map[string]any{
		KeyText:         req.Text,
		KeyNumber:       req.Count,
		KeySubject:      req.Subject,
		KeyTone:         req.Tone,
		KeyResponseJSON: req.ResponseJSON,
	}, chains.WithTemperature(g.temperature))
	if err != nil {
		return nil, fmt.Errorf("generation chain failed: %w", err)
	}

	reviewOut, err := chains.Call(ctx, g.reviewChain, map[string]any{
		KeySubject: req.Subject,
		KeyQuiz:    quizOut[KeyQuiz],
	}, chains.WithTemperature(g.temperature))
	if err != nil {
		return nil, fmt.Errorf("review chain failed: %w", err)
	}

	out := map[string]any{
		KeyQuiz:   quizOut[KeyQuiz],
		KeyReview: reviewOut[KeyReview],
	}
	l.Debug("Generation chain finished", zap.Strings("output_keys", keysOf(out)))
	return out, nil
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

var _ domain.QuizGenerator = (*LangChainQuizGenerator)(nil)

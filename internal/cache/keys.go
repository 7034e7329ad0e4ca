package cache

import "strings"

// KeyPrefix namespaces every key this application writes.
const KeyPrefix = "mcqgen"

const (
	scopeQuiz  = "quiz"
	kindTable  = "table"
	keySep     = ":"
	variantSep = "_"
)

// Key joins parts under KeyPrefix with ":". Empty parts are dropped so a
// missing identifier never produces "a::b".
func Key(parts ...string) string {
	out := make([]string, 0, len(parts)+1)
	out = append(out, KeyPrefix)
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, keySep)
}

// QuizTableKey is where the rendered rows of quiz id live. Variants, when
// given, are joined by "_" into one trailing segment.
func QuizTableKey(id string, variants ...string) string {
	return Key(scopeQuiz, kindTable, id, strings.Join(variants, variantSep))
}

package matching

import (
	"strings"
	"unicode"
)

// DefaultStopWords is the stop-word set stripped during normalization.
// Callers may override it via NewNormalizer.
var DefaultStopWords = []string{"the", "and", "or", "a", "an", "to", "of", "in", "for", "with"}

// Normalizer lowercases text, splits it into word tokens and strips stop
// words. It is deterministic and has no failure modes: empty input yields an
// empty token sequence.
type Normalizer struct {
	stopWords map[string]struct{}
}

func NewNormalizer(stopWords []string) *Normalizer {
	if stopWords == nil {
		stopWords = DefaultStopWords
	}
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Normalizer{stopWords: set}
}

// Tokenize returns the lowercase word tokens of text with stop words removed.
func (n *Normalizer) Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stop := n.stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// TokenSet returns the tokens of text as a lookup set.
func (n *Normalizer) TokenSet(text string) map[string]struct{} {
	tokens := n.Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// containsPhrase reports whether phrase occurs as a consecutive token run
// inside tokens. A single-word phrase degrades to a set lookup.
func containsPhrase(tokens []string, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
outer:
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		for j := range phrase {
			if tokens[i+j] != phrase[j] {
				continue outer
			}
		}
		return true
	}
	return false
}

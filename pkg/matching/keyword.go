package matching

import (
	"context"
	"sort"
	"strings"

	"decision-framework-be/internal/entity"
)

// Tag and title weights. Tag overlap and title overlap are alternative
// signals, not summed: a principle whose title words duplicate its tags must
// not be double counted.
const (
	tagBaseScore  = 0.6
	tagExtraScore = 0.1
	tagScoreCap   = 0.9

	titleWordScore = 0.15
	titleScoreCap  = 0.5

	// Title words at or below this length carry no signal.
	minTitleWordLen = 4
)

// KeywordStrategy scores principles by lexical overlap with the situation
// text. It is fully deterministic and makes no external calls, so it is
// always available as the floor of the fallback chain.
type KeywordStrategy struct {
	normalizer *Normalizer
}

func NewKeywordStrategy(normalizer *Normalizer) *KeywordStrategy {
	return &KeywordStrategy{normalizer: normalizer}
}

func (s *KeywordStrategy) Name() string {
	return StrategyKeyword
}

func (s *KeywordStrategy) Run(ctx context.Context, situation *entity.Situation, principles []*entity.Principle) StrategyOutcome {
	tokens := s.normalizer.Tokenize(situation.FullDescription())

	situationTags := make(map[string]struct{}, len(situation.Tags))
	for _, t := range situation.Tags {
		situationTags[strings.ToLower(t)] = struct{}{}
	}

	var matches []Match
	for _, principle := range principles {
		if m, ok := s.scorePrinciple(principle, tokens, situationTags); ok {
			matches = append(matches, m)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].PrincipleId < matches[j].PrincipleId
	})

	return StrategyOutcome{Strategy: StrategyKeyword, Matches: matches}
}

func (s *KeywordStrategy) scorePrinciple(principle *entity.Principle, tokens []string, situationTags map[string]struct{}) (Match, bool) {
	// 1. Tag overlap
	var matchedTags []string
	for _, tag := range principle.Tags {
		lowered := strings.ToLower(tag)
		if _, ok := situationTags[lowered]; ok {
			matchedTags = append(matchedTags, lowered)
			continue
		}
		if containsPhrase(tokens, s.normalizer.Tokenize(lowered)) {
			matchedTags = append(matchedTags, lowered)
		}
	}

	var tagScore float64
	if len(matchedTags) > 0 {
		tagScore = tagBaseScore + float64(len(matchedTags)-1)*tagExtraScore
		if tagScore > tagScoreCap {
			tagScore = tagScoreCap
		}
	}

	// 2. Title word overlap
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = struct{}{}
	}

	var matchedWords []string
	for _, word := range s.normalizer.Tokenize(principle.Title) {
		if len(word) < minTitleWordLen {
			continue
		}
		if _, ok := tokenSet[word]; ok {
			matchedWords = append(matchedWords, word)
		}
	}

	var titleScore float64
	if len(matchedWords) > 0 {
		titleScore = float64(len(matchedWords)) * titleWordScore
		if titleScore > titleScoreCap {
			titleScore = titleScoreCap
		}
	}

	// 3. Alternative signals: keep the stronger one
	score := tagScore
	if titleScore > score {
		score = titleScore
	}
	if score == 0 {
		return Match{}, false
	}

	var reasons []string
	if len(matchedTags) > 0 {
		reasons = append(reasons, "tags: "+strings.Join(matchedTags, ", "))
	}
	if len(matchedWords) > 0 {
		reasons = append(reasons, "title words: "+strings.Join(matchedWords, ", "))
	}

	return Match{
		PrincipleId: principle.Id,
		Score:       score,
		Reason:      "keyword overlap (" + strings.Join(reasons, "; ") + ")",
		Strategies:  []string{StrategyKeyword},
	}, true
}

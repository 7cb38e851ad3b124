package matching

import (
	"errors"
	"reflect"
	"testing"
)

func TestCombineDeduplicatesByMaxScore(t *testing.T) {
	outcomes := []StrategyOutcome{
		{
			Strategy: StrategySemantic,
			Provider: "gemini",
			Matches: []Match{
				{PrincipleId: 1, Score: 0.8, Reason: "semantic similarity 0.80", Strategies: []string{StrategySemantic}},
				{PrincipleId: 2, Score: 0.4, Reason: "semantic similarity 0.40", Strategies: []string{StrategySemantic}},
			},
		},
		{
			Strategy: StrategyKeyword,
			Matches: []Match{
				{PrincipleId: 1, Score: 0.6, Reason: "keyword overlap (tags: pressure)", Strategies: []string{StrategyKeyword}},
				{PrincipleId: 3, Score: 0.7, Reason: "keyword overlap (tags: trust)", Strategies: []string{StrategyKeyword}},
			},
		},
	}

	matches, meta := Combine(outcomes, Config{SimilarityThreshold: 0.5})

	if len(matches) != 3 {
		t.Fatalf("len(matches) = %d, want 3", len(matches))
	}

	// Principle 1: max(0.8, 0.6) with both strategies as provenance.
	if matches[0].PrincipleId != 1 || matches[0].Score != 0.8 {
		t.Errorf("top = {%d %v}, want {1 0.8}", matches[0].PrincipleId, matches[0].Score)
	}
	if !reflect.DeepEqual(matches[0].Strategies, []string{StrategySemantic, StrategyKeyword}) {
		t.Errorf("Strategies = %v, want union", matches[0].Strategies)
	}
	if matches[0].Reason != "semantic similarity 0.80" {
		t.Errorf("Reason = %q, want the winning strategy's reason", matches[0].Reason)
	}

	if matches[1].PrincipleId != 3 || matches[2].PrincipleId != 2 {
		t.Errorf("order = [%d %d %d], want [1 3 2]", matches[0].PrincipleId, matches[1].PrincipleId, matches[2].PrincipleId)
	}

	if meta.LLMProviderUsed == nil || *meta.LLMProviderUsed != "gemini" {
		t.Errorf("LLMProviderUsed = %v, want gemini", meta.LLMProviderUsed)
	}
	if !reflect.DeepEqual(meta.StrategiesSucceeded, []string{StrategySemantic, StrategyKeyword}) {
		t.Errorf("StrategiesSucceeded = %v", meta.StrategiesSucceeded)
	}
}

func TestCombineTieBreakPrefersSemanticReason(t *testing.T) {
	outcomes := []StrategyOutcome{
		{
			Strategy: StrategyKeyword,
			Matches:  []Match{{PrincipleId: 1, Score: 0.6, Reason: "keyword overlap", Strategies: []string{StrategyKeyword}}},
		},
		{
			Strategy: StrategySemantic,
			Provider: "gemini",
			Matches:  []Match{{PrincipleId: 1, Score: 0.6, Reason: "semantic similarity 0.60", Strategies: []string{StrategySemantic}}},
		},
	}

	matches, _ := Combine(outcomes, Config{SimilarityThreshold: 0.5})

	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1", len(matches))
	}
	if matches[0].Reason != "semantic similarity 0.60" {
		t.Errorf("Reason = %q, want the semantic reason on a score tie", matches[0].Reason)
	}
}

func TestCombineLowConfidenceClearedByConfidentMatch(t *testing.T) {
	outcomes := []StrategyOutcome{
		{
			Strategy: StrategySemantic,
			Provider: "gemini",
			Matches:  []Match{{PrincipleId: 1, Score: 0.2, Strategies: []string{StrategySemantic}, LowConfidence: true}},
		},
		{
			Strategy: StrategyKeyword,
			Matches:  []Match{{PrincipleId: 1, Score: 0.6, Strategies: []string{StrategyKeyword}}},
		},
	}

	matches, _ := Combine(outcomes, Config{SimilarityThreshold: 0.5})

	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1", len(matches))
	}
	if matches[0].LowConfidence {
		t.Error("LowConfidence = true, want cleared by the confident keyword score")
	}
}

func TestCombineTruncatesToMaxResults(t *testing.T) {
	outcome := StrategyOutcome{Strategy: StrategyKeyword}
	for i := 1; i <= 6; i++ {
		outcome.Matches = append(outcome.Matches, Match{
			PrincipleId: i,
			Score:       float64(i) / 10,
			Strategies:  []string{StrategyKeyword},
		})
	}

	matches, _ := Combine([]StrategyOutcome{outcome}, Config{SimilarityThreshold: 0.5})

	if len(matches) != 3 {
		t.Fatalf("len(matches) = %d, want default max of 3", len(matches))
	}
	if matches[0].PrincipleId != 6 || matches[2].PrincipleId != 4 {
		t.Errorf("kept = [%d %d %d], want the three highest scores", matches[0].PrincipleId, matches[1].PrincipleId, matches[2].PrincipleId)
	}
}

func TestCombineClampsScores(t *testing.T) {
	outcomes := []StrategyOutcome{
		{
			Strategy: StrategyKeyword,
			Matches:  []Match{{PrincipleId: 1, Score: 1.2, Strategies: []string{StrategyKeyword}}},
		},
	}

	matches, _ := Combine(outcomes, Config{SimilarityThreshold: 0.5})

	if matches[0].Score != 1 {
		t.Errorf("Score = %v, want clamped to 1", matches[0].Score)
	}
}

func TestCombineFailedStrategyContributesNothing(t *testing.T) {
	outcomes := []StrategyOutcome{
		{
			Strategy: StrategySemantic,
			Err:      errors.New("providers down"),
			Matches:  []Match{{PrincipleId: 1, Score: 0.9, Strategies: []string{StrategySemantic}}},
		},
		{
			Strategy: StrategyKeyword,
			Matches:  []Match{{PrincipleId: 2, Score: 0.6, Strategies: []string{StrategyKeyword}}},
		},
	}

	matches, meta := Combine(outcomes, Config{SimilarityThreshold: 0.5})

	if len(matches) != 1 || matches[0].PrincipleId != 2 {
		t.Errorf("matches = %v, want only the keyword match", matches)
	}
	if !reflect.DeepEqual(meta.StrategiesAttempted, []string{StrategySemantic, StrategyKeyword}) {
		t.Errorf("StrategiesAttempted = %v", meta.StrategiesAttempted)
	}
	if !reflect.DeepEqual(meta.StrategiesSucceeded, []string{StrategyKeyword}) {
		t.Errorf("StrategiesSucceeded = %v", meta.StrategiesSucceeded)
	}
	if meta.LLMProviderUsed != nil {
		t.Errorf("LLMProviderUsed = %v, want nil", meta.LLMProviderUsed)
	}
}

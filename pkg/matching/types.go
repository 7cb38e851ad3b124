package matching

import (
	"context"

	"decision-framework-be/internal/entity"
)

// Strategy names. The set is closed: adding a strategy means adding a
// constant, a Strategy implementation and a combiner case.
const (
	StrategySemantic = "semantic"
	StrategyKeyword  = "keyword"
)

// Match is a scored principle with provenance. Scores are always in [0,1].
type Match struct {
	PrincipleId   int      `json:"principle_id"`
	Score         float64  `json:"score"`
	Reason        string   `json:"reason"`
	Strategies    []string `json:"strategies"`
	LowConfidence bool     `json:"low_confidence,omitempty"`
}

// Metadata records which strategies ran and how the run degraded, if at all.
type Metadata struct {
	StrategiesAttempted []string `json:"strategies_attempted"`
	StrategiesSucceeded []string `json:"strategies_succeeded"`
	LLMProviderUsed     *string  `json:"llm_provider_used"`
	FallbackTriggered   bool     `json:"fallback_triggered"`
}

// StrategyOutcome is the raw result of one strategy run, before combining.
type StrategyOutcome struct {
	Strategy string
	Matches  []Match
	Provider string // embedding provider that served the run; semantic only
	Err      error
}

// Strategy is the common contract for principle matchers.
type Strategy interface {
	Name() string
	Run(ctx context.Context, situation *entity.Situation, principles []*entity.Principle) StrategyOutcome
}

// Config is the caller-supplied tuning surface of the matching core.
// SimilarityThreshold is a calibration parameter tied to the embedding model
// in use; there is deliberately no default value for it.
type Config struct {
	SimilarityThreshold float64
	LowConfidenceTopN   int
	MaxResults          int
}

const (
	defaultLowConfidenceTopN = 3
	defaultMaxResults        = 3
)

func (c Config) lowConfidenceTopN() int {
	if c.LowConfidenceTopN <= 0 {
		return defaultLowConfidenceTopN
	}
	return c.LowConfidenceTopN
}

func (c Config) maxResults() int {
	if c.MaxResults <= 0 {
		return defaultMaxResults
	}
	return c.MaxResults
}

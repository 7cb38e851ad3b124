package matching

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"decision-framework-be/internal/entity"
)

// ErrSemanticUnavailable signals that no embedding provider could serve the
// run. The pipeline degrades to keyword-only scoring; it is never fatal.
var ErrSemanticUnavailable = errors.New("semantic matching unavailable")

// Embedder is the slice of the embedding adapter the semantic strategy needs.
type Embedder interface {
	// EmbedDocument embeds catalog text through the vector cache.
	EmbedDocument(ctx context.Context, text string) ([]float32, string, error)
	// EmbedQuery embeds situation text, bypassing the cache so the query
	// vector is always fresh.
	EmbedQuery(ctx context.Context, text string) ([]float32, string, error)
}

// SemanticStrategy ranks principles by cosine similarity between the
// situation embedding and each principle's embedding text.
//
// The similarity threshold is a calibration parameter of the embedding model
// in use. A threshold copied from another model's score distribution silently
// filters out everything, so when it yields zero candidates the strategy
// falls back to the top raw-score candidates flagged low-confidence.
type SemanticStrategy struct {
	embedder Embedder
	config   Config
}

func NewSemanticStrategy(embedder Embedder, config Config) *SemanticStrategy {
	return &SemanticStrategy{embedder: embedder, config: config}
}

func (s *SemanticStrategy) Name() string {
	return StrategySemantic
}

func (s *SemanticStrategy) Run(ctx context.Context, situation *entity.Situation, principles []*entity.Principle) StrategyOutcome {
	text := strings.TrimSpace(situation.FullDescription())
	if text == "" {
		// Nothing to embed; an empty description is an empty result, not an error.
		return StrategyOutcome{Strategy: StrategySemantic}
	}

	queryVec, provider, err := s.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return StrategyOutcome{
			Strategy: StrategySemantic,
			Err:      fmt.Errorf("%w: %v", ErrSemanticUnavailable, err),
		}
	}

	var scored []Match
	for _, principle := range principles {
		principleVec, _, err := s.embedder.EmbedDocument(ctx, principle.EmbeddingText())
		if err != nil {
			// One missing principle vector degrades coverage, not the run.
			continue
		}

		score := CosineSimilarity(queryVec, principleVec)
		if score < 0 {
			score = 0
		}
		if score == 0 {
			continue
		}

		scored = append(scored, Match{
			PrincipleId: principle.Id,
			Score:       score,
			Reason:      fmt.Sprintf("semantic similarity %.2f", score),
			Strategies:  []string{StrategySemantic},
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].PrincipleId < scored[j].PrincipleId
	})

	kept := make([]Match, 0, len(scored))
	for _, m := range scored {
		if m.Score >= s.config.SimilarityThreshold {
			kept = append(kept, m)
		}
	}

	// Threshold miscalibration safety net: surface the best raw candidates
	// rather than an empty list.
	if len(kept) == 0 && len(scored) > 0 {
		topN := s.config.lowConfidenceTopN()
		if topN > len(scored) {
			topN = len(scored)
		}
		kept = scored[:topN]
		for i := range kept {
			kept[i].LowConfidence = true
			kept[i].Reason += " (below threshold, low confidence)"
		}
	}

	return StrategyOutcome{Strategy: StrategySemantic, Matches: kept, Provider: provider}
}

// CosineSimilarity returns the cosine of the angle between a and b, in
// [-1, 1]. Mismatched or zero-magnitude vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

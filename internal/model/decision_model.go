package model

import (
	"time"

	"decision-framework-be/internal/entity"
	"decision-framework-be/pkg/matching"
)

// AlignmentScore indicates how well the recommended course of action aligns
// with the configured values.
type AlignmentScore struct {
	OverallScore float64            `json:"overall_score"`
	ValueScores  map[string]float64 `json:"value_scores,omitempty"`
}

// DecisionResult is the full outcome of evaluating one situation: the ranked
// principle matches, the triggered SOPs, generated reasoning and the run
// metadata describing how (or whether) the pipeline degraded.
type DecisionResult struct {
	Situation      entity.Situation  `json:"situation"`
	Matches        []matching.Match  `json:"applicable_principles"`
	TriggeredSops  []*entity.SOP     `json:"triggered_sops"`
	Recommendation string            `json:"recommendation"`
	Reasoning      string            `json:"reasoning"`
	ValueAlignment AlignmentScore    `json:"value_alignment"`
	Confidence     float64           `json:"confidence"`
	Metadata       matching.Metadata `json:"matching_metadata"`
	AnalyzedAt     time.Time         `json:"analyzed_at"`
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"decision-framework-be/internal/model"
	"decision-framework-be/pkg/matching"
)

type AnalyzeSituationRequest struct {
	Description  string   `json:"description" validate:"required"`
	Facts        []string `json:"facts,omitempty"`
	Emotions     []string `json:"emotions,omitempty"`
	Stakeholders []string `json:"stakeholders,omitempty"`
	Constraints  []string `json:"constraints,omitempty"`
	Stakes       string   `json:"stakes,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Domain       string   `json:"domain,omitempty" validate:"omitempty,oneof=personal professional family financial health"`
	Tags         []string `json:"tags,omitempty"`
}

type PrincipleMatchResponse struct {
	PrincipleId   int      `json:"principle_id"`
	Title         string   `json:"title"`
	Score         float64  `json:"score"`
	Reason        string   `json:"reason"`
	Strategies    []string `json:"strategies"`
	LowConfidence bool     `json:"low_confidence,omitempty"`
}

type TriggeredSopResponse struct {
	Id      int    `json:"id"`
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
}

type AnalyzeSituationResponse struct {
	Id             uuid.UUID                `json:"id"`
	Matches        []PrincipleMatchResponse `json:"applicable_principles"`
	TriggeredSops  []TriggeredSopResponse   `json:"triggered_sops"`
	Recommendation string                   `json:"recommendation"`
	Reasoning      string                   `json:"reasoning"`
	ValueAlignment model.AlignmentScore     `json:"value_alignment"`
	Confidence     float64                  `json:"confidence"`
	Metadata       matching.Metadata        `json:"matching_metadata"`
	AnalyzedAt     time.Time                `json:"analyzed_at"`
}

type DecisionHistoryResponse struct {
	Decisions []AnalyzeSituationResponse `json:"decisions"`
}

// PublishEmbedPrincipleMessage is the warm-up topic payload: one principle
// whose embedding text should be precomputed into the vector cache.
type PublishEmbedPrincipleMessage struct {
	PrincipleId int `json:"principle_id"`
}

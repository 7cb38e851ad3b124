package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stakes is the importance level of a situation.
type Stakes string

const (
	StakesLow      Stakes = "low"
	StakesMedium   Stakes = "medium"
	StakesHigh     Stakes = "high"
	StakesCritical Stakes = "critical"
)

// Domain is the life domain a situation belongs to.
type Domain string

const (
	DomainPersonal     Domain = "personal"
	DomainProfessional Domain = "professional"
	DomainFamily       Domain = "family"
	DomainFinancial    Domain = "financial"
	DomainHealth       Domain = "health"
)

// SituationContext carries the structured context around a situation.
type SituationContext struct {
	Facts        []string `json:"facts,omitempty"`
	Emotions     []string `json:"emotions,omitempty"`
	Stakeholders []string `json:"stakeholders,omitempty"`
	Constraints  []string `json:"constraints,omitempty"`
	PriorActions []string `json:"prior_actions,omitempty"`
}

// Summary renders the context as a single searchable line.
func (c *SituationContext) Summary() string {
	var parts []string
	if len(c.Facts) > 0 {
		parts = append(parts, "Facts: "+strings.Join(c.Facts, ", "))
	}
	if len(c.Emotions) > 0 {
		parts = append(parts, "Emotions: "+strings.Join(c.Emotions, ", "))
	}
	if len(c.Stakeholders) > 0 {
		parts = append(parts, "Stakeholders: "+strings.Join(c.Stakeholders, ", "))
	}
	if len(c.Constraints) > 0 {
		parts = append(parts, "Constraints: "+strings.Join(c.Constraints, ", "))
	}
	return strings.Join(parts, " | ")
}

// Situation is a described real-world scenario to be evaluated. Constructed
// per request; not persisted by the matching core.
type Situation struct {
	Id          uuid.UUID        `json:"id"`
	Description string           `json:"description"`
	Context     SituationContext `json:"context"`
	Stakes      Stakes           `json:"stakes"`
	Domain      Domain           `json:"domain"`
	Tags        []string         `json:"tags,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// FullDescription is the description plus the context summary; all text
// matching runs against this string.
func (s *Situation) FullDescription() string {
	parts := []string{s.Description}
	if summary := s.Context.Summary(); summary != "" {
		parts = append(parts, "Context: "+summary)
	}
	return strings.Join(parts, "\n")
}

func (s *Situation) HasEmotion(emotion string) bool {
	emotion = strings.ToLower(emotion)
	for _, e := range s.Context.Emotions {
		if strings.ToLower(e) == emotion {
			return true
		}
	}
	return false
}

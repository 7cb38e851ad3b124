package entity

import "strings"

// TriggerType categorizes the condition that can activate a SOP.
type TriggerType string

const (
	TriggerTimeBased      TriggerType = "time_based"
	TriggerSituationBased TriggerType = "situation_based"
	TriggerEmotional      TriggerType = "emotional"
	TriggerExternal       TriggerType = "external"
	TriggerManual         TriggerType = "manual"
)

// SOPStep is a single ordered step within a SOP.
type SOPStep struct {
	Number      int    `json:"number" yaml:"number"`
	Instruction string `json:"instruction" yaml:"instruction"`
	IsOptional  bool   `json:"is_optional,omitempty" yaml:"is_optional,omitempty"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// SOPTrigger describes when a SOP activates. Keywords fire on the normalized
// situation text; Stakes and Domains fire on structured situation attributes.
// A trigger with only keywords is a "keyword-only" trigger and may be
// suppressed by a strong semantic principle match.
type SOPTrigger struct {
	Type      TriggerType `json:"type" yaml:"type"`
	Condition string      `json:"condition" yaml:"condition"`
	Keywords  []string    `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Stakes    []Stakes    `json:"stakes,omitempty" yaml:"stakes,omitempty"`
	Domains   []Domain    `json:"domains,omitempty" yaml:"domains,omitempty"`
	Emotions  []string    `json:"emotions,omitempty" yaml:"emotions,omitempty"`
}

// KeywordOnly reports whether this trigger fires purely on keyword presence,
// with no structured attribute backing it.
func (t *SOPTrigger) KeywordOnly() bool {
	return len(t.Keywords) > 0 && len(t.Stakes) == 0 && len(t.Domains) == 0 && len(t.Emotions) == 0
}

// SOP is a standard operating procedure: a triggered process with ordered steps.
type SOP struct {
	Id                  int                  `json:"id" yaml:"id"`
	Name                string               `json:"name" yaml:"name"`
	Purpose             string               `json:"purpose" yaml:"purpose"`
	RelatedPrincipleIds []int                `json:"related_principle_ids,omitempty" yaml:"related_principle_ids,omitempty"`
	Triggers            []SOPTrigger         `json:"triggers,omitempty" yaml:"triggers,omitempty"`
	Steps               []SOPStep            `json:"steps,omitempty" yaml:"steps,omitempty"`
	Modes               map[string][]SOPStep `json:"modes,omitempty" yaml:"modes,omitempty"`
}

func (s *SOP) GetModeSteps(mode string) []SOPStep {
	return s.Modes[mode]
}

// TriggerTags returns the lowercase keyword set across all triggers, used to
// check whether a SOP is corroborated by a tag match.
func (s *SOP) TriggerTags() []string {
	var tags []string
	for _, trigger := range s.Triggers {
		for _, kw := range trigger.Keywords {
			tags = append(tags, strings.ToLower(kw))
		}
	}
	return tags
}

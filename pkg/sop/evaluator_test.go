package sop

import (
	"testing"

	"decision-framework-be/internal/entity"
	"decision-framework-be/internal/pkg/logger"
	"decision-framework-be/pkg/matching"
)

func newTestEvaluator(overrideThreshold float64) *Evaluator {
	return NewEvaluator(matching.NewNormalizer(nil), Config{OverrideThreshold: overrideThreshold}, logger.NewNop())
}

func pauseProtocol() *entity.SOP {
	return &entity.SOP{
		Id:   1,
		Name: "High-Stakes Pause Protocol",
		Triggers: []entity.SOPTrigger{
			{
				Type:   entity.TriggerSituationBased,
				Stakes: []entity.Stakes{entity.StakesHigh, entity.StakesCritical},
			},
			{
				Type:     entity.TriggerEmotional,
				Emotions: []string{"pressured", "anxious"},
				Keywords: []string{"deadline", "ultimatum"},
			},
		},
	}
}

func sharingCheck() *entity.SOP {
	return &entity.SOP{
		Id:   2,
		Name: "Information Sharing Check",
		Triggers: []entity.SOPTrigger{
			{
				Type:     entity.TriggerSituationBased,
				Keywords: []string{"share", "forward", "disclose"},
			},
		},
	}
}

func TestEvaluateStakesTrigger(t *testing.T) {
	e := newTestEvaluator(0.75)

	tests := []struct {
		name   string
		stakes entity.Stakes
		want   int
	}{
		{"high stakes fires", entity.StakesHigh, 1},
		{"critical stakes fires", entity.StakesCritical, 1},
		{"medium stakes does not", entity.StakesMedium, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			situation := &entity.Situation{
				Description: "Unrelated wording with no trigger keywords",
				Stakes:      tt.stakes,
			}
			triggered := e.Evaluate(situation, []*entity.SOP{pauseProtocol()}, nil)
			if len(triggered) != tt.want {
				t.Errorf("triggered = %d SOPs, want %d", len(triggered), tt.want)
			}
		})
	}
}

func TestEvaluateEmotionTrigger(t *testing.T) {
	e := newTestEvaluator(0.75)

	situation := &entity.Situation{
		Description: "Deciding whether to accept the offer",
		Stakes:      entity.StakesMedium,
		Context:     entity.SituationContext{Emotions: []string{"Pressured"}},
	}

	triggered := e.Evaluate(situation, []*entity.SOP{pauseProtocol()}, nil)
	if len(triggered) != 1 {
		t.Fatalf("triggered = %d SOPs, want 1 (emotion match is case-insensitive)", len(triggered))
	}
}

func TestEvaluateKeywordTrigger(t *testing.T) {
	e := newTestEvaluator(0.75)

	situation := &entity.Situation{
		Description: "They gave me an ultimatum over the weekend",
		Stakes:      entity.StakesMedium,
	}

	triggered := e.Evaluate(situation, []*entity.SOP{pauseProtocol()}, nil)
	if len(triggered) != 1 {
		t.Fatalf("triggered = %d SOPs, want 1", len(triggered))
	}
}

func TestEvaluateKeywordMatchesWholeTokensOnly(t *testing.T) {
	e := newTestEvaluator(0.75)

	// "shareholder" must not fire the "share" keyword.
	situation := &entity.Situation{
		Description: "The shareholder meeting is next week",
		Stakes:      entity.StakesMedium,
	}

	triggered := e.Evaluate(situation, []*entity.SOP{sharingCheck()}, nil)
	if len(triggered) != 0 {
		t.Errorf("triggered = %d SOPs, want 0 for a substring", len(triggered))
	}
}

func TestEvaluateSuppressesBroadKeywordTrigger(t *testing.T) {
	e := newTestEvaluator(0.75)

	// "share my concerns" fires the broad "share" keyword even though the
	// situation has nothing to do with information disclosure.
	situation := &entity.Situation{
		Description: "I want to share my concerns about the new budget with my manager",
		Stakes:      entity.StakesMedium,
	}

	strongSemantic := []matching.Match{
		{PrincipleId: 5, Score: 0.82, Strategies: []string{matching.StrategySemantic}},
	}

	triggered := e.Evaluate(situation, []*entity.SOP{sharingCheck()}, strongSemantic)
	if len(triggered) != 0 {
		t.Errorf("triggered = %d SOPs, want suppression by the semantic match", len(triggered))
	}

	// Without a strong semantic match the trigger stands.
	weakSemantic := []matching.Match{
		{PrincipleId: 5, Score: 0.4, Strategies: []string{matching.StrategySemantic}},
	}
	triggered = e.Evaluate(situation, []*entity.SOP{sharingCheck()}, weakSemantic)
	if len(triggered) != 1 {
		t.Errorf("triggered = %d SOPs, want 1 below the override threshold", len(triggered))
	}
}

func TestEvaluateSuppressionIgnoresLowConfidenceMatches(t *testing.T) {
	e := newTestEvaluator(0.75)

	situation := &entity.Situation{
		Description: "I want to share my concerns about the new budget",
		Stakes:      entity.StakesMedium,
	}

	lowConfidence := []matching.Match{
		{PrincipleId: 5, Score: 0.9, Strategies: []string{matching.StrategySemantic}, LowConfidence: true},
	}

	triggered := e.Evaluate(situation, []*entity.SOP{sharingCheck()}, lowConfidence)
	if len(triggered) != 1 {
		t.Errorf("triggered = %d SOPs, want 1 (low-confidence scores cannot suppress)", len(triggered))
	}
}

func TestEvaluateSuppressionIgnoresKeywordScores(t *testing.T) {
	e := newTestEvaluator(0.75)

	situation := &entity.Situation{
		Description: "I want to share my concerns about the new budget",
		Stakes:      entity.StakesMedium,
	}

	keywordMatch := []matching.Match{
		{PrincipleId: 5, Score: 0.9, Strategies: []string{matching.StrategyKeyword}},
	}

	triggered := e.Evaluate(situation, []*entity.SOP{sharingCheck()}, keywordMatch)
	if len(triggered) != 1 {
		t.Errorf("triggered = %d SOPs, want 1 (keyword scores cannot suppress)", len(triggered))
	}
}

func TestEvaluateTagCorroborationExemptsFromSuppression(t *testing.T) {
	e := newTestEvaluator(0.75)

	// The explicit situation tag matches a trigger keyword, so the SOP is
	// corroborated independently of the free text and survives suppression.
	situation := &entity.Situation{
		Description: "I want to share the draft report",
		Stakes:      entity.StakesMedium,
		Tags:        []string{"disclose"},
	}

	strongSemantic := []matching.Match{
		{PrincipleId: 3, Score: 0.9, Strategies: []string{matching.StrategySemantic}},
	}

	triggered := e.Evaluate(situation, []*entity.SOP{sharingCheck()}, strongSemantic)
	if len(triggered) != 1 {
		t.Errorf("triggered = %d SOPs, want 1 (tag corroboration exempts)", len(triggered))
	}
}

func TestEvaluateStructuredTriggerNeverSuppressed(t *testing.T) {
	e := newTestEvaluator(0.75)

	// A trigger backed by stakes is not keyword-only, so suppression does not
	// apply no matter how strong the semantic match is.
	situation := &entity.Situation{
		Description: "They gave me a deadline",
		Stakes:      entity.StakesCritical,
	}

	strongSemantic := []matching.Match{
		{PrincipleId: 1, Score: 0.95, Strategies: []string{matching.StrategySemantic}},
	}

	triggered := e.Evaluate(situation, []*entity.SOP{pauseProtocol()}, strongSemantic)
	if len(triggered) != 1 {
		t.Errorf("triggered = %d SOPs, want 1 (structured triggers stand)", len(triggered))
	}
}

func TestEvaluateMultipleSops(t *testing.T) {
	e := newTestEvaluator(0.75)

	situation := &entity.Situation{
		Description: "They want me to forward the contract before the deadline",
		Stakes:      entity.StakesHigh,
	}

	triggered := e.Evaluate(situation, []*entity.SOP{pauseProtocol(), sharingCheck()}, nil)
	if len(triggered) != 2 {
		t.Fatalf("triggered = %d SOPs, want both", len(triggered))
	}
	if triggered[0].Id != 1 || triggered[1].Id != 2 {
		t.Errorf("order = [%d %d], want catalog order [1 2]", triggered[0].Id, triggered[1].Id)
	}
}

package sop

import (
	"strings"

	"decision-framework-be/internal/entity"
	"decision-framework-be/internal/pkg/logger"
	"decision-framework-be/pkg/matching"
)

// Config tunes trigger evaluation. OverrideThreshold is the semantic score
// above which a keyword-only trigger is considered covered by the principle
// match and suppressed.
type Config struct {
	OverrideThreshold float64
}

// Evaluator decides which SOPs fire for a situation. It is independent of
// principle matching except for one policy: broad keyword triggers (the
// classic example is the word "share") misfire on unrelated text, so a
// keyword-only trigger is suppressed when a high-confidence semantic
// principle match already covers the concern and no tag match corroborates
// the SOP independently.
type Evaluator struct {
	normalizer *matching.Normalizer
	config     Config
	log        logger.ILogger
}

func NewEvaluator(normalizer *matching.Normalizer, config Config, log logger.ILogger) *Evaluator {
	return &Evaluator{
		normalizer: normalizer,
		config:     config,
		log:        log,
	}
}

// Evaluate returns the SOPs triggered by the situation. matches is the
// combined principle match list for the same situation; only its top
// semantic entry participates, as the suppression signal.
func (e *Evaluator) Evaluate(situation *entity.Situation, sops []*entity.SOP, matches []matching.Match) []*entity.SOP {
	tokens := e.normalizer.Tokenize(situation.FullDescription())
	topSemantic := topSemanticScore(matches)

	var triggered []*entity.SOP
	for _, s := range sops {
		fired, keywordOnly := e.checkTriggers(s, situation, tokens)
		if !fired {
			continue
		}

		if keywordOnly && e.config.OverrideThreshold > 0 && topSemantic > e.config.OverrideThreshold && !e.corroboratedByTags(s, situation, tokens) {
			e.log.Debug("sop", "Suppressing keyword-only SOP trigger, semantic match covers the concern", map[string]interface{}{
				"sop_id":         s.Id,
				"sop_name":       s.Name,
				"semantic_score": topSemantic,
			})
			continue
		}

		triggered = append(triggered, s)
	}

	return triggered
}

// checkTriggers reports whether any trigger fired and whether every fired
// trigger was keyword-only.
func (e *Evaluator) checkTriggers(s *entity.SOP, situation *entity.Situation, tokens []string) (fired bool, keywordOnly bool) {
	keywordOnly = true
	for i := range s.Triggers {
		trigger := &s.Triggers[i]
		if !e.triggerFires(trigger, situation, tokens) {
			continue
		}
		fired = true
		if !trigger.KeywordOnly() {
			keywordOnly = false
		}
	}
	return fired, fired && keywordOnly
}

func (e *Evaluator) triggerFires(t *entity.SOPTrigger, situation *entity.Situation, tokens []string) bool {
	for _, stakes := range t.Stakes {
		if situation.Stakes == stakes {
			return true
		}
	}
	for _, domain := range t.Domains {
		if situation.Domain == domain {
			return true
		}
	}
	for _, emotion := range t.Emotions {
		if situation.HasEmotion(emotion) {
			return true
		}
	}
	for _, kw := range t.Keywords {
		if containsKeyword(tokens, e.normalizer.Tokenize(strings.ToLower(kw))) {
			return true
		}
	}
	return false
}

// corroboratedByTags reports whether any of the SOP's trigger keywords also
// appears in the situation's explicit tag set, which makes the trigger
// independent of raw text and exempt from suppression.
func (e *Evaluator) corroboratedByTags(s *entity.SOP, situation *entity.Situation, tokens []string) bool {
	situationTags := make(map[string]struct{}, len(situation.Tags))
	for _, t := range situation.Tags {
		situationTags[strings.ToLower(t)] = struct{}{}
	}
	for _, tag := range s.TriggerTags() {
		if _, ok := situationTags[tag]; ok {
			return true
		}
	}
	return false
}

func containsKeyword(tokens []string, phrase []string) bool {
	if len(phrase) == 0 {
		return false
	}
	if len(phrase) == 1 {
		for _, t := range tokens {
			if t == phrase[0] {
				return true
			}
		}
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

func topSemanticScore(matches []matching.Match) float64 {
	top := 0.0
	for _, m := range matches {
		for _, s := range m.Strategies {
			if s == matching.StrategySemantic && !m.LowConfidence && m.Score > top {
				top = m.Score
			}
		}
	}
	return top
}

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"decision-framework-be/internal/dto"
	"decision-framework-be/internal/entity"
	"decision-framework-be/internal/model"
	"decision-framework-be/internal/pkg/logger"
	"decision-framework-be/internal/repository/memory"
	"decision-framework-be/pkg/catalog"
	"decision-framework-be/pkg/matching"
	"decision-framework-be/pkg/report"
	"decision-framework-be/pkg/sop"
)

type IDecisionService interface {
	Analyze(ctx context.Context, req *dto.AnalyzeSituationRequest) (*dto.AnalyzeSituationResponse, error)
	Evaluate(ctx context.Context, situation *entity.Situation) (*model.DecisionResult, error)
	History(limit int) *dto.DecisionHistoryResponse
	Get(id uuid.UUID) (*dto.AnalyzeSituationResponse, error)
	Report(id uuid.UUID) (string, error)
}

type decisionService struct {
	kb           *catalog.KnowledgeBase
	pipeline     *matching.Pipeline
	sopEvaluator *sop.Evaluator
	history      *memory.HistoryRepository
	reports      *report.Generator
	log          logger.ILogger
}

func NewDecisionService(
	kb *catalog.KnowledgeBase,
	pipeline *matching.Pipeline,
	sopEvaluator *sop.Evaluator,
	history *memory.HistoryRepository,
	reports *report.Generator,
	log logger.ILogger,
) IDecisionService {
	return &decisionService{
		kb:           kb,
		pipeline:     pipeline,
		sopEvaluator: sopEvaluator,
		history:      history,
		reports:      reports,
		log:          log,
	}
}

func (s *decisionService) Analyze(ctx context.Context, req *dto.AnalyzeSituationRequest) (*dto.AnalyzeSituationResponse, error) {
	situation := situationFromRequest(req)

	result, err := s.Evaluate(ctx, situation)
	if err != nil {
		return nil, err
	}

	return s.toResponse(result)
}

// Evaluate runs the full decision flow: principle matching, SOP triggers,
// value alignment, reasoning and confidence. It always produces a result;
// provider outages degrade score quality, never the call.
func (s *decisionService) Evaluate(ctx context.Context, situation *entity.Situation) (*model.DecisionResult, error) {
	// 1. Rank principles via the hybrid pipeline
	matches, meta := s.pipeline.Match(ctx, situation, s.kb.Principles())

	// 2. Evaluate SOP triggers (semantic score can suppress broad keyword triggers)
	triggered := s.sopEvaluator.Evaluate(situation, s.kb.Sops(), matches)

	// 3. Value alignment
	alignment := s.calculateAlignment(matches)

	// 4. Reasoning & recommendation
	reasoning, recommendation := s.generateReasoning(matches, triggered, alignment)

	// 5. Confidence
	confidence := calculateConfidence(matches, triggered)

	result := &model.DecisionResult{
		Situation:      *situation,
		Matches:        matches,
		TriggeredSops:  triggered,
		Recommendation: recommendation,
		Reasoning:      reasoning,
		ValueAlignment: alignment,
		Confidence:     confidence,
		Metadata:       meta,
		AnalyzedAt:     time.Now(),
	}

	s.history.Save(result)

	s.log.Info("decision", "Situation analyzed", map[string]interface{}{
		"situation_id": situation.Id.String(),
		"matches":      len(matches),
		"sops":         len(triggered),
		"confidence":   confidence,
		"fallback":     meta.FallbackTriggered,
	})

	return result, nil
}

func (s *decisionService) History(limit int) *dto.DecisionHistoryResponse {
	recent := s.history.Recent(limit)
	res := &dto.DecisionHistoryResponse{Decisions: make([]dto.AnalyzeSituationResponse, 0, len(recent))}
	for _, result := range recent {
		if resp, err := s.toResponse(result); err == nil {
			res.Decisions = append(res.Decisions, *resp)
		}
	}
	return res
}

func (s *decisionService) Get(id uuid.UUID) (*dto.AnalyzeSituationResponse, error) {
	result, ok := s.history.Get(id)
	if !ok {
		return nil, fmt.Errorf("decision %s not found", id)
	}
	return s.toResponse(result)
}

func (s *decisionService) Report(id uuid.UUID) (string, error) {
	result, ok := s.history.Get(id)
	if !ok {
		return "", fmt.Errorf("decision %s not found", id)
	}
	return s.reports.DecisionReport(result), nil
}

func situationFromRequest(req *dto.AnalyzeSituationRequest) *entity.Situation {
	stakes := entity.Stakes(req.Stakes)
	if stakes == "" {
		stakes = entity.StakesMedium
	}
	domain := entity.Domain(req.Domain)
	if domain == "" {
		domain = entity.DomainPersonal
	}

	return &entity.Situation{
		Id:          uuid.New(),
		Description: req.Description,
		Context: entity.SituationContext{
			Facts:        req.Facts,
			Emotions:     req.Emotions,
			Stakeholders: req.Stakeholders,
			Constraints:  req.Constraints,
		},
		Stakes:    stakes,
		Domain:    domain,
		Tags:      req.Tags,
		CreatedAt: time.Now(),
	}
}

func (s *decisionService) toResponse(result *model.DecisionResult) (*dto.AnalyzeSituationResponse, error) {
	matches := make([]dto.PrincipleMatchResponse, 0, len(result.Matches))
	for _, m := range result.Matches {
		principle, err := s.kb.PrincipleById(m.PrincipleId)
		if err != nil {
			// A match for an unknown principle means the catalog and the
			// matcher disagree; that is a configuration error.
			return nil, err
		}
		matches = append(matches, dto.PrincipleMatchResponse{
			PrincipleId:   m.PrincipleId,
			Title:         principle.Title,
			Score:         m.Score,
			Reason:        m.Reason,
			Strategies:    m.Strategies,
			LowConfidence: m.LowConfidence,
		})
	}

	sops := make([]dto.TriggeredSopResponse, 0, len(result.TriggeredSops))
	for _, t := range result.TriggeredSops {
		sops = append(sops, dto.TriggeredSopResponse{Id: t.Id, Name: t.Name, Purpose: t.Purpose})
	}

	return &dto.AnalyzeSituationResponse{
		Id:             result.Situation.Id,
		Matches:        matches,
		TriggeredSops:  sops,
		Recommendation: result.Recommendation,
		Reasoning:      result.Reasoning,
		ValueAlignment: result.ValueAlignment,
		Confidence:     result.Confidence,
		Metadata:       result.Metadata,
		AnalyzedAt:     result.AnalyzedAt,
	}, nil
}

func (s *decisionService) calculateAlignment(matches []matching.Match) model.AlignmentScore {
	if len(matches) == 0 {
		return model.AlignmentScore{}
	}

	valueScores := make(map[string]float64)
	totalWeight := 0.0
	for _, m := range matches {
		principle, err := s.kb.PrincipleById(m.PrincipleId)
		if err != nil {
			continue
		}
		for _, valueId := range principle.RelatedValueIds {
			valueScores[valueId] += m.Score
			totalWeight += m.Score
		}
	}

	overall := 0.0
	if totalWeight > 0 {
		overall = totalWeight / 3.0
		if overall > 1 {
			overall = 1
		}
	}

	return model.AlignmentScore{OverallScore: overall, ValueScores: valueScores}
}

func (s *decisionService) generateReasoning(matches []matching.Match, sops []*entity.SOP, alignment model.AlignmentScore) (string, string) {
	var reasoningParts, recParts []string

	if len(matches) > 0 {
		top := matches[0]
		if principle, err := s.kb.PrincipleById(top.PrincipleId); err == nil {
			reasoningParts = append(reasoningParts, fmt.Sprintf(
				"The primary principle identified is '%s' (relevance: %.2f).", principle.Title, top.Score))
		}

		for i, m := range matches {
			principle, err := s.kb.PrincipleById(m.PrincipleId)
			if err != nil {
				continue
			}
			recParts = append(recParts, fmt.Sprintf("%d. Apply principle %d: %s", i+1, principle.Id, principle.Title))
			if len(principle.SubPrinciples) > 0 {
				recParts = append(recParts, fmt.Sprintf("   Guidance: %s", principle.SubPrinciples[0].Text))
			}
		}
	} else {
		reasoningParts = append(reasoningParts, "No specific principles matched the situation strongly.")
		recParts = append(recParts, "Review the situation description and add more specific keywords or context.")
	}

	if len(sops) > 0 {
		names := make([]string, 0, len(sops))
		for _, t := range sops {
			names = append(names, t.Name)
		}
		reasoningParts = append(reasoningParts, fmt.Sprintf(
			"The situation triggers the following standard operating procedures: %s.", strings.Join(names, ", ")))
		recParts = append(recParts, fmt.Sprintf("IMMEDIATE ACTION: execute SOP(s): %s.", strings.Join(names, ", ")))
	}

	if len(alignment.ValueScores) > 0 {
		top := topValues(alignment.ValueScores, 2)
		names := make([]string, 0, len(top))
		for _, valueId := range top {
			if value, err := s.kb.ValueById(valueId); err == nil {
				names = append(names, value.Name)
			} else {
				names = append(names, valueId)
			}
		}
		reasoningParts = append(reasoningParts, fmt.Sprintf(
			"This course of action aligns with your values of %s.", strings.Join(names, ", ")))
	}

	return strings.Join(reasoningParts, " "), strings.Join(recParts, "\n")
}

func topValues(scores map[string]float64, n int) []string {
	type kv struct {
		id    string
		score float64
	}
	pairs := make([]kv, 0, len(scores))
	for id, score := range scores {
		pairs = append(pairs, kv{id, score})
	}
	// Deterministic: score desc, id asc
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].score != pairs[j].score {
			return pairs[i].score > pairs[j].score
		}
		return pairs[i].id < pairs[j].id
	})
	if n > len(pairs) {
		n = len(pairs)
	}
	out := make([]string, 0, n)
	for _, p := range pairs[:n] {
		out = append(out, p.id)
	}
	return out
}

func calculateConfidence(matches []matching.Match, sops []*entity.SOP) float64 {
	if len(matches) == 0 && len(sops) == 0 {
		return 0.1
	}

	base := 0.0
	if len(matches) > 0 {
		base = matches[0].Score
	}

	if len(sops) > 0 {
		// SOPs are specific and high-confidence
		if base < 0.8 {
			base = 0.8
		}
	} else if len(matches) > 1 {
		// Multiple matches corroborate each other
		base += 0.1
		if base > 1 {
			base = 1
		}
	}

	return base
}

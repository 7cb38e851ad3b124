package report

import (
	"fmt"
	"strings"

	"decision-framework-be/internal/model"
	"decision-framework-be/pkg/catalog"
)

// Generator renders decision results as Markdown.
type Generator struct {
	kb *catalog.KnowledgeBase
}

func NewGenerator(kb *catalog.KnowledgeBase) *Generator {
	return &Generator{kb: kb}
}

// DecisionReport renders a full analysis report for a decision result.
func (g *Generator) DecisionReport(result *model.DecisionResult) string {
	situation := result.Situation

	var b strings.Builder
	b.WriteString("# Decision Analysis Report\n")
	b.WriteString(fmt.Sprintf("**Date:** %s\n\n", result.AnalyzedAt.Format("2006-01-02 15:04")))

	b.WriteString("## 1. Situation Context\n")
	b.WriteString(fmt.Sprintf("- **Description:** %s\n", situation.Description))
	b.WriteString(fmt.Sprintf("- **Domain:** %s\n", situation.Domain))
	b.WriteString(fmt.Sprintf("- **Stakes:** %s\n", situation.Stakes))
	emotions := "None recorded"
	if len(situation.Context.Emotions) > 0 {
		emotions = strings.Join(situation.Context.Emotions, ", ")
	}
	b.WriteString(fmt.Sprintf("- **Emotions:** %s\n\n", emotions))

	b.WriteString("## 2. Applicable Principles\n")
	if len(result.Matches) == 0 {
		b.WriteString("_No specific principles found matching this situation._\n")
	}
	for _, match := range result.Matches {
		principle, err := g.kb.PrincipleById(match.PrincipleId)
		if err != nil {
			continue
		}
		b.WriteString(fmt.Sprintf("### %d. %s\n", principle.Id, principle.Title))
		b.WriteString(fmt.Sprintf("**Relevance:** %.2f | **Reason:** %s\n", match.Score, match.Reason))
		if len(principle.SubPrinciples) > 0 {
			b.WriteString(fmt.Sprintf("_%s_\n", principle.SubPrinciples[0].Text))
		}
		b.WriteString("\n")
	}

	b.WriteString("## 3. Triggered SOPs\n")
	if len(result.TriggeredSops) == 0 {
		b.WriteString("_No Standard Operating Procedures triggered._\n")
	}
	for _, s := range result.TriggeredSops {
		b.WriteString(fmt.Sprintf("- **%s**: %s\n", s.Name, s.Purpose))
	}
	b.WriteString("\n")

	b.WriteString("## 4. Recommendation\n")
	b.WriteString(result.Recommendation)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("**Reasoning:** %s\n", result.Reasoning))
	b.WriteString(fmt.Sprintf("**Confidence:** %.2f\n", result.Confidence))

	if result.Metadata.FallbackTriggered {
		b.WriteString("\n_Note: semantic matching was unavailable; scores are keyword-based._\n")
	}

	return b.String()
}

package matching

import (
	"context"
	"sync"

	"decision-framework-be/internal/entity"
	"decision-framework-be/internal/pkg/logger"
)

// State of the fallback chain. The chain only ever moves forward and is
// terminal after at most one semantic attempt; embedding calls are not
// retried beyond the adapter's own provider list.
type State string

const (
	StateTrySemantic    State = "TRY_SEMANTIC"
	StateTryKeywordOnly State = "TRY_KEYWORD_ONLY"
	StateHeuristicOnly  State = "HEURISTIC_ONLY"
)

// Pipeline runs the semantic and keyword strategies against a situation and
// combines their outputs. The keyword strategy is cheap and always runs;
// "fallback" means the result relies solely on keyword scores and the
// metadata carries no provider.
type Pipeline struct {
	semantic Strategy
	keyword  Strategy
	config   Config
	log      logger.ILogger
}

func NewPipeline(semantic Strategy, keyword Strategy, config Config, log logger.ILogger) *Pipeline {
	return &Pipeline{
		semantic: semantic,
		keyword:  keyword,
		config:   config,
		log:      log,
	}
}

// Match scores principles against the situation and returns the ranked,
// deduplicated top matches with run metadata. It never fails: provider
// outages degrade score quality, not the call.
func (p *Pipeline) Match(ctx context.Context, situation *entity.Situation, principles []*entity.Principle) ([]Match, Metadata) {
	state := StateTrySemantic

	// The strategies have no data dependency on each other; run them
	// concurrently and let the combiner wait for both.
	var wg sync.WaitGroup
	var semanticOutcome, keywordOutcome StrategyOutcome

	wg.Add(2)
	go func() {
		defer wg.Done()
		semanticOutcome = p.semantic.Run(ctx, situation, principles)
	}()
	go func() {
		defer wg.Done()
		keywordOutcome = p.keyword.Run(ctx, situation, principles)
	}()
	wg.Wait()

	fallback := false
	if semanticOutcome.Err != nil {
		state = StateTryKeywordOnly
		fallback = true
		p.log.Warn("matching", "Semantic matcher unavailable, relying on keyword scores", map[string]interface{}{
			"error": semanticOutcome.Err.Error(),
			"state": string(state),
		})
	} else if len(semanticOutcome.Matches) == 0 {
		// Zero results without a low-confidence fallback list.
		state = StateHeuristicOnly
		fallback = true
	}

	if fallback {
		// Keyword-only result: the metadata must not name a provider.
		semanticOutcome.Provider = ""
		semanticOutcome.Matches = nil
	}

	matches, meta := Combine([]StrategyOutcome{semanticOutcome, keywordOutcome}, p.config)
	meta.FallbackTriggered = fallback

	p.log.Debug("matching", "Matching pipeline finished", map[string]interface{}{
		"state":       string(state),
		"matches":     len(matches),
		"fallback":    fallback,
		"attempted":   meta.StrategiesAttempted,
		"succeeded":   meta.StrategiesSucceeded,
		"description": situation.Description,
	})

	return matches, meta
}

package matching

import "sort"

// Combine merges strategy outcomes into one deduplicated ranked list.
//
// Per principle the final score is the max across strategies, never a sum: a
// principle matched weakly by both strategies must not outrank one matched
// strongly by a single strategy. Provenance is the union of contributing
// strategies. The reason comes from the strategy that supplied the winning
// score; on a tie the semantic reason wins, as the higher-fidelity signal.
// Results are sorted by score descending with ascending principle id as the
// deterministic tie-break, then truncated to maxResults.
func Combine(outcomes []StrategyOutcome, config Config) ([]Match, Metadata) {
	meta := Metadata{
		StrategiesAttempted: make([]string, 0, len(outcomes)),
		StrategiesSucceeded: make([]string, 0, len(outcomes)),
	}

	byPrinciple := make(map[int]Match)
	for _, outcome := range outcomes {
		meta.StrategiesAttempted = append(meta.StrategiesAttempted, outcome.Strategy)
		if outcome.Err != nil {
			continue
		}
		if len(outcome.Matches) > 0 {
			meta.StrategiesSucceeded = append(meta.StrategiesSucceeded, outcome.Strategy)
		}
		if outcome.Strategy == StrategySemantic && outcome.Provider != "" {
			provider := outcome.Provider
			meta.LLMProviderUsed = &provider
		}

		for _, m := range outcome.Matches {
			existing, seen := byPrinciple[m.PrincipleId]
			if !seen {
				byPrinciple[m.PrincipleId] = m
				continue
			}
			byPrinciple[m.PrincipleId] = mergeMatches(existing, m)
		}
	}

	merged := make([]Match, 0, len(byPrinciple))
	for _, m := range byPrinciple {
		if m.Score > 1 {
			m.Score = 1
		}
		merged = append(merged, m)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Score != merged[j].Score {
			return merged[i].Score > merged[j].Score
		}
		return merged[i].PrincipleId < merged[j].PrincipleId
	})

	if max := config.maxResults(); len(merged) > max {
		merged = merged[:max]
	}

	return merged, meta
}

func mergeMatches(a, b Match) Match {
	winner, loser := a, b
	if b.Score > a.Score || (b.Score == a.Score && hasStrategy(b, StrategySemantic) && !hasStrategy(a, StrategySemantic)) {
		winner, loser = b, a
	}

	merged := winner
	merged.Strategies = unionStrategies(winner.Strategies, loser.Strategies)
	// Low confidence only survives if no strategy produced a confident score.
	merged.LowConfidence = winner.LowConfidence && loser.LowConfidence
	return merged
}

func hasStrategy(m Match, name string) bool {
	for _, s := range m.Strategies {
		if s == name {
			return true
		}
	}
	return false
}

func unionStrategies(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

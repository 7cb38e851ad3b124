package embedding

import (
	"context"
	"time"

	"decision-framework-be/internal/pkg/logger"
)

// ChainAdapter wraps a ranked list of embedding providers behind a single
// embed call. Each attempt gets its own timeout; a failed provider is
// recorded and the next one in rank is tried. Only when the whole list is
// exhausted does the adapter return a ProviderError, and callers are
// expected to have a non-embedding fallback for that case.
//
// Document embeddings go through the vector cache; query embeddings do not,
// so a situation is always embedded fresh. The adapter is safe for
// concurrent use.
type ChainAdapter struct {
	providers []EmbeddingProvider
	cache     *VectorCache
	timeout   time.Duration
	log       logger.ILogger
}

func NewChainAdapter(providers []EmbeddingProvider, cache *VectorCache, timeout time.Duration, log logger.ILogger) *ChainAdapter {
	if cache == nil {
		cache = NewVectorCache()
	}
	return &ChainAdapter{
		providers: providers,
		cache:     cache,
		timeout:   timeout,
		log:       log,
	}
}

// Cache exposes the underlying vector cache (warm-up and tests).
func (a *ChainAdapter) Cache() *VectorCache {
	return a.cache
}

// EmbedDocument embeds catalog text, consulting the cache first. It returns
// the vector and the name of the provider that served it.
func (a *ChainAdapter) EmbedDocument(ctx context.Context, text string) ([]float32, string, error) {
	return a.embed(ctx, text, TaskRetrievalDocument, true)
}

// EmbedQuery embeds situation text, always fresh.
func (a *ChainAdapter) EmbedQuery(ctx context.Context, text string) ([]float32, string, error) {
	return a.embed(ctx, text, TaskRetrievalQuery, false)
}

func (a *ChainAdapter) embed(ctx context.Context, text string, taskType string, useCache bool) ([]float32, string, error) {
	var failures []ProviderFailure

	for _, provider := range a.providers {
		if useCache {
			if cached, found := a.cache.Get(text, provider.Name(), provider.Version()); found {
				return cached.Values, provider.Name(), nil
			}
		}

		attemptCtx := ctx
		var cancel context.CancelFunc
		if a.timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, a.timeout)
		}

		res, err := provider.Generate(attemptCtx, text, taskType)
		if cancel != nil {
			cancel()
		}

		if err != nil {
			kind := classifyFailure(err)
			failures = append(failures, ProviderFailure{
				Provider: provider.Name(),
				Kind:     kind,
				Err:      err,
			})
			a.log.Warn("embedding", "Embedding provider failed, trying next in chain", map[string]interface{}{
				"provider": provider.Name(),
				"kind":     string(kind),
				"error":    err.Error(),
			})
			continue
		}

		values := res.Embedding.Values
		if useCache {
			a.cache.Set(text, provider.Name(), provider.Version(), values)
		}
		return values, provider.Name(), nil
	}

	return nil, "", &ProviderError{AllFailed: true, Failures: failures}
}

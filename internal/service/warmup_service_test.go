package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"

	"decision-framework-be/internal/pkg/logger"
	"decision-framework-be/pkg/embedding"
)

// fakeEmbeddingProvider counts calls and returns a constant vector.
type fakeEmbeddingProvider struct {
	calls int64
}

func (p *fakeEmbeddingProvider) Name() string    { return "fake" }
func (p *fakeEmbeddingProvider) Version() string { return "v1" }

func (p *fakeEmbeddingProvider) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	atomic.AddInt64(&p.calls, 1)
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 2, 3}},
	}, nil
}

func TestWarmupPrecomputesPrincipleEmbeddings(t *testing.T) {
	kb := testKnowledgeBase(t)
	log := logger.NewNop()

	provider := &fakeEmbeddingProvider{}
	adapter := embedding.NewChainAdapter([]embedding.EmbeddingProvider{provider}, nil, 0, log)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	warmup := NewWarmupService(pubSub, "EMBED_PRINCIPLE", kb, adapter, log)
	assert.NoError(t, warmup.Consume(ctx))
	assert.NoError(t, warmup.PublishAll())

	// One cached vector per catalog principle.
	assert.Eventually(t, func() bool {
		return adapter.Cache().Len() == len(kb.Principles())
	}, 2*time.Second, 10*time.Millisecond)

	// A warmed-up principle is served from the cache, not the provider.
	before := atomic.LoadInt64(&provider.calls)
	_, name, err := adapter.EmbedDocument(ctx, kb.Principles()[0].EmbeddingText())
	assert.NoError(t, err)
	assert.Equal(t, "fake", name)
	assert.Equal(t, before, atomic.LoadInt64(&provider.calls))
}

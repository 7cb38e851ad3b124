package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"decision-framework-be/internal/dto"
	"decision-framework-be/internal/pkg/logger"
	"decision-framework-be/pkg/catalog"
	"decision-framework-be/pkg/embedding"
)

// IWarmupService precomputes principle embeddings so the first analyze
// request only pays for the situation embedding. Warm-up is best effort: a
// dead provider chain leaves the cache cold and the keyword matcher still
// carries the pipeline.
type IWarmupService interface {
	Consume(ctx context.Context) error
	PublishAll() error
}

type warmupService struct {
	pubSub  *gochannel.GoChannel
	topic   string
	kb      *catalog.KnowledgeBase
	adapter *embedding.ChainAdapter
	log     logger.ILogger
}

func NewWarmupService(
	pubSub *gochannel.GoChannel,
	topic string,
	kb *catalog.KnowledgeBase,
	adapter *embedding.ChainAdapter,
	log logger.ILogger,
) IWarmupService {
	return &warmupService{
		pubSub:  pubSub,
		topic:   topic,
		kb:      kb,
		adapter: adapter,
		log:     log,
	}
}

func (s *warmupService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

// PublishAll queues every catalog principle for embedding.
func (s *warmupService) PublishAll() error {
	for _, principle := range s.kb.Principles() {
		payload, err := json.Marshal(dto.PublishEmbedPrincipleMessage{PrincipleId: principle.Id})
		if err != nil {
			return err
		}
		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := s.pubSub.Publish(s.topic, msg); err != nil {
			return err
		}
	}
	return nil
}

func (s *warmupService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedPrincipleMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Error("warmup", "Failed to unmarshal warmup message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	principle, err := s.kb.PrincipleById(payload.PrincipleId)
	if err != nil {
		s.log.Error("warmup", "Warmup message references unknown principle", map[string]interface{}{
			"principle_id": payload.PrincipleId,
		})
		msg.Ack()
		return
	}

	if _, _, err := s.adapter.EmbedDocument(ctx, principle.EmbeddingText()); err != nil {
		// Cache stays cold for this principle; the semantic matcher will
		// retry on demand.
		s.log.Warn("warmup", "Failed to precompute principle embedding", map[string]interface{}{
			"principle_id": principle.Id,
			"error":        err.Error(),
		})
	}

	msg.Ack()
}

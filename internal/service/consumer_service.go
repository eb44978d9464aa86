package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-bookwriting-be/internal/dto"
	"ai-bookwriting-be/internal/repository/specification"
	"ai-bookwriting-be/internal/repository/unitofwork"
	"ai-bookwriting-be/pkg/events"
	pktNats "ai-bookwriting-be/pkg/nats"
	"ai-bookwriting-be/pkg/richtext"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the stats worker: it recomputes word and block
// counts after every autosave, off the request path.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishChapterStatsMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal stats message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chapter, err := uow.ChapterRepository().FindOne(ctx, specification.ByID{ID: payload.ChapterId})
	if err != nil {
		log.Printf("[ERROR] Failed to get chapter %s: %v", payload.ChapterId, err)
		msg.Nack()
		return
	}
	if chapter == nil {
		// Deleted between autosave and processing. Ack.
		msg.Ack()
		return
	}

	doc, err := richtext.DecodeJSON(chapter.Content)
	if err != nil {
		log.Printf("[ERROR] Chapter %s has undecodable content: %v", chapter.Id, err)
		msg.Ack()
		return
	}

	words, blocks := DocumentStats(doc)

	if err := uow.ChapterRepository().UpdateStats(ctx, chapter.Id, words, blocks); err != nil {
		log.Printf("[ERROR] Failed to update stats for chapter %s: %v", chapter.Id, err)
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "CHAPTER_STATS_UPDATED",
			Data: map[string]interface{}{
				"user_id":     chapter.UserId.String(),
				"chapter_id":  chapter.Id.String(),
				"book_id":     chapter.BookId.String(),
				"word_count":  words,
				"block_count": blocks,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish CHAPTER_STATS_UPDATED: %v", err)
		}
	}

	msg.Ack()
}

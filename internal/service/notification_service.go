package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-bookwriting-be/internal/model"
	"ai-bookwriting-be/internal/pkg/logger"
	"ai-bookwriting-be/internal/repository/contract"
	"ai-bookwriting-be/pkg/events"
	pktNats "ai-bookwriting-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

type NotificationService struct {
	repo       contract.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo contract.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	payload := event.Payload()

	userID, ok := payloadUserID(payload)
	if !ok {
		s.logger.Warn("NotificationService", fmt.Sprintf("Event %s has no user_id, skipping", typeCode), nil)
		return nil
	}

	switch typeCode {
	case "DRAFT_READY":
		title, _ := payload["chapter_title"].(string)
		notif := s.buildNotification(userID, typeCode,
			"Draft ready",
			fmt.Sprintf("The AI finished drafting %q.", title),
			payload,
		)
		// Persist to the inbox, then push.
		if err := s.repo.CreateNotification(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", "Error saving notification", map[string]interface{}{"error": err, "user_id": userID})
			return err // NATS will retry
		}
		if s.delivery != nil {
			s.delivery.Send(userID, notif)
		}

	case "CHAPTER_STATS_UPDATED":
		// High-frequency, push-only. No inbox row.
		notif := s.buildNotification(userID, typeCode, "Stats updated", "", payload)
		if s.delivery != nil {
			s.delivery.Send(userID, notif)
		}

	default:
		s.logger.Debug("NotificationService", fmt.Sprintf("No notification mapping for %s", typeCode), nil)
	}

	return nil
}

func (s *NotificationService) buildNotification(userID uuid.UUID, typeCode, title, message string, payload map[string]interface{}) model.Notification {
	meta, _ := json.Marshal(payload)
	return model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		TypeCode:  typeCode,
		Title:     title,
		Message:   message,
		Metadata:  meta,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
}

// Inbox API used by the HTTP handler.

func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func payloadUserID(payload map[string]interface{}) (uuid.UUID, bool) {
	uidStr, ok := payload["user_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	uid, err := uuid.Parse(uidStr)
	if err != nil {
		return uuid.Nil, false
	}
	return uid, true
}

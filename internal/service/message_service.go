package service

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quiz-platform/internal/errs"
	"quiz-platform/internal/models"
)

// MessageService persists chat messages and notifies live subscribers.
type MessageService struct {
	Messages MessageStore
	Users    UserStore
	Hub      Broadcaster
	Events   Publisher
}

func NewMessageService(messages MessageStore, users UserStore, hub Broadcaster, events Publisher) *MessageService {
	return &MessageService{Messages: messages, Users: users, Hub: hub, Events: events}
}

// Send persists the message, then broadcasts it. The write is the source of
// truth: a broadcast failure never fails the persisted message.
func (s *MessageService) Send(ctx context.Context, userID primitive.ObjectID, text string) (*models.MessageDetails, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.Validation("message", "is required")
	}
	if len(text) > models.MaxMessageLength {
		return nil, errs.Validation("message", "must be at most 1000 characters")
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		UserID:    userID,
		Message:   text,
		CreatedAt: time.Now(),
	}
	if err := s.Messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	detail := &models.MessageDetails{
		Message:    *msg,
		UserName:   user.Name,
		UserAvatar: user.Avatar,
	}

	if s.Hub != nil {
		s.Hub.Broadcast("new_message", detail)
	}
	if s.Events != nil {
		if err := s.Events.Publish("message.sent", map[string]interface{}{
			"userId":    userID.Hex(),
			"messageId": msg.ID.Hex(),
		}); err != nil {
			log.Printf("message.sent publish failed: %v", err)
		}
	}
	return detail, nil
}

// All returns the chat feed oldest first, joined with senders.
func (s *MessageService) All(ctx context.Context) ([]models.MessageDetails, error) {
	messages, err := s.Messages.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, errs.NotFound("messages")
	}

	users, err := s.Users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[primitive.ObjectID]models.User, len(users))
	for _, u := range users {
		index[u.ID] = u
	}

	out := make([]models.MessageDetails, 0, len(messages))
	for _, m := range messages {
		detail := models.MessageDetails{Message: m}
		if u, ok := index[m.UserID]; ok {
			detail.UserName = u.Name
			detail.UserAvatar = u.Avatar
		}
		out = append(out, detail)
	}
	return out, nil
}

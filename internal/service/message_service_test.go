package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quiz-platform/internal/errs"
	"quiz-platform/internal/models"
)

func newMessageFixture() (*MessageService, *fakeMessageStore, *fakeBroadcaster, primitive.ObjectID) {
	store := &fakeMessageStore{}
	users := &fakeUserStore{}
	hub := &fakeBroadcaster{}
	sender := &models.User{Name: "Alice", Email: "alice@example.com", Avatar: "a.png"}
	users.Create(context.Background(), sender)
	return NewMessageService(store, users, hub, &fakePublisher{}), store, hub, sender.ID
}

func TestSendPersistsThenBroadcasts(t *testing.T) {
	svc, store, hub, userID := newMessageFixture()

	detail, err := svc.Send(context.Background(), userID, "  hello everyone  ")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if detail.Message.Message != "hello everyone" {
		t.Errorf("text = %q, want trimmed", detail.Message.Message)
	}
	if detail.UserName != "Alice" || detail.UserAvatar != "a.png" {
		t.Errorf("detail = %+v, want sender joined", detail)
	}
	if len(store.messages) != 1 {
		t.Fatalf("persisted = %d, want 1", len(store.messages))
	}
	if len(hub.events) != 1 || hub.events[0] != "new_message" {
		t.Errorf("broadcast events = %v, want [new_message]", hub.events)
	}
}

func TestSendValidation(t *testing.T) {
	svc, store, _, userID := newMessageFixture()

	if _, err := svc.Send(context.Background(), userID, "   "); !errs.IsValidation(err) {
		t.Errorf("blank: err = %v, want validation error", err)
	}
	if _, err := svc.Send(context.Background(), userID, strings.Repeat("x", models.MaxMessageLength+1)); !errs.IsValidation(err) {
		t.Errorf("too long: err = %v, want validation error", err)
	}
	if _, err := svc.Send(context.Background(), primitive.NewObjectID(), "hi"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("unknown sender: err = %v, want not found", err)
	}
	if len(store.messages) != 0 {
		t.Errorf("persisted = %d, want 0", len(store.messages))
	}
}

func TestSendSurvivesPublisherFailure(t *testing.T) {
	store := &fakeMessageStore{}
	users := &fakeUserStore{}
	sender := &models.User{Name: "Alice", Email: "alice@example.com"}
	users.Create(context.Background(), sender)
	svc := NewMessageService(store, users, &fakeBroadcaster{}, &fakePublisher{err: errors.New("broker down")})

	if _, err := svc.Send(context.Background(), sender.ID, "hi"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(store.messages) != 1 {
		t.Errorf("persisted = %d, want 1", len(store.messages))
	}
}

func TestMessageFeed(t *testing.T) {
	svc, _, _, userID := newMessageFixture()

	if _, err := svc.All(context.Background()); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("empty feed: err = %v, want not found", err)
	}

	if _, err := svc.Send(context.Background(), userID, "first"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := svc.Send(context.Background(), userID, "second"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	feed, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("feed = %d, want 2", len(feed))
	}
	if feed[0].Message.Message != "first" || feed[1].Message.Message != "second" {
		t.Errorf("feed order = [%q, %q], want oldest first", feed[0].Message.Message, feed[1].Message.Message)
	}
	if feed[0].UserName != "Alice" {
		t.Errorf("userName = %q, want Alice", feed[0].UserName)
	}
}

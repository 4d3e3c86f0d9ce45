package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"quiz-platform/internal/models"
)

// Store interfaces consumed by the services. The mongo repositories satisfy
// them; tests plug in in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
}

type QuizStore interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	FindAll(ctx context.Context) ([]models.Quiz, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Quiz, error)
	FindByTopic(ctx context.Context, topic string) (*models.Quiz, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	PushCategory(ctx context.Context, quizID primitive.ObjectID, category models.Category) error
	PushQuestion(ctx context.Context, quizID, categoryID primitive.ObjectID, question models.Question) error
}

type RecordStore interface {
	AppendAttempt(ctx context.Context, userID, quizID, categoryID primitive.ObjectID, categoryName string, totalQuestions int, attempt models.Attempt) (*models.QuizRecord, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.QuizRecord, error)
	FindAll(ctx context.Context) ([]models.QuizRecord, error)
	FindByQuizCategory(ctx context.Context, quizID, categoryID primitive.ObjectID) ([]models.QuizRecord, error)
}

type IssueStore interface {
	Create(ctx context.Context, issue *models.Issue) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error)
	FindAll(ctx context.Context) ([]models.Issue, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Issue, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Issue, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TestimonialStore interface {
	Upsert(ctx context.Context, userID primitive.ObjectID, text string, rating int, status bool) (*models.Testimonial, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Testimonial, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Testimonial, error)
	FindActive(ctx context.Context) ([]models.Testimonial, error)
	FindAll(ctx context.Context) ([]models.Testimonial, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status bool) (*models.Testimonial, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MessageStore interface {
	Create(ctx context.Context, msg *models.Message) error
	FindAll(ctx context.Context) ([]models.Message, error)
}

// Broadcaster delivers a chat event to all live subscribers, best effort.
type Broadcaster interface {
	Broadcast(event string, data interface{})
}

// Publisher emits platform events; failures are the caller's to tolerate.
type Publisher interface {
	Publish(eventType string, payload interface{}) error
}

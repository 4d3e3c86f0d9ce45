package service

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quiz-platform/internal/errs"
	"quiz-platform/internal/models"
)

type SubmitAttemptInput struct {
	UserID           primitive.ObjectID
	QuizID           primitive.ObjectID
	CategoryID       primitive.ObjectID
	Score            float64
	TotalQuestions   int
	CorrectAnswers   int
	IncorrectAnswers int
}

// RecordService ingests quiz attempts into the ledger.
type RecordService struct {
	Records RecordStore
	Quizzes QuizStore
	Events  Publisher
}

func NewRecordService(records RecordStore, quizzes QuizStore, events Publisher) *RecordService {
	return &RecordService{Records: records, Quizzes: quizzes, Events: events}
}

// SubmitAttempt validates the submission, computes accuracy and appends the
// attempt to the (user, quiz, category) record, creating it on first
// submission. Submitting the same payload twice records two attempts: a
// resubmission is a new attempt, not a duplicate.
func (s *RecordService) SubmitAttempt(ctx context.Context, in SubmitAttemptInput) (*models.QuizRecord, error) {
	if in.TotalQuestions <= 0 {
		return nil, errs.Validation("totalQuestions", "must be greater than zero")
	}
	if in.CorrectAnswers < 0 || in.IncorrectAnswers < 0 {
		return nil, errs.Validation("correctAnswers", "answer counts cannot be negative")
	}
	if in.CorrectAnswers > in.TotalQuestions {
		return nil, errs.Validation("correctAnswers", "cannot exceed totalQuestions")
	}

	quiz, err := s.Quizzes.FindByID(ctx, in.QuizID)
	if err != nil {
		return nil, err
	}
	category := quiz.CategoryByID(in.CategoryID)
	if category == nil {
		return nil, errs.NotFound("category")
	}

	attempt := models.Attempt{
		Score:            in.Score,
		CorrectAnswers:   in.CorrectAnswers,
		IncorrectAnswers: in.IncorrectAnswers,
		Accuracy:         float64(in.CorrectAnswers) / float64(in.TotalQuestions) * 100,
		Date:             time.Now(),
	}

	record, err := s.Records.AppendAttempt(ctx, in.UserID, in.QuizID, category.ID, category.Category, in.TotalQuestions, attempt)
	if err != nil {
		return nil, err
	}

	if s.Events != nil {
		if err := s.Events.Publish("record.created", map[string]interface{}{
			"userId":     in.UserID.Hex(),
			"quizId":     in.QuizID.Hex(),
			"categoryId": category.ID.Hex(),
			"score":      in.Score,
		}); err != nil {
			log.Printf("record.created publish failed: %v", err)
		}
	}
	return record, nil
}

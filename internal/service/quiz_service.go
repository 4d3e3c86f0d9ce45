package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"quiz-platform/internal/errs"
	"quiz-platform/internal/models"
)

// QuizService manages quiz content: quizzes, their embedded categories and
// questions.
type QuizService struct {
	Quizzes QuizStore
}

func NewQuizService(quizzes QuizStore) *QuizService {
	return &QuizService{Quizzes: quizzes}
}

func (s *QuizService) CreateQuiz(ctx context.Context, topic, info, logo string) (*models.Quiz, error) {
	if topic == "" {
		return nil, errs.Validation("topic", "is required")
	}
	if info == "" {
		return nil, errs.Validation("info", "is required")
	}

	// Topic is the quiz's unique display name.
	if _, err := s.Quizzes.FindByTopic(ctx, topic); err == nil {
		return nil, errs.Validation("topic", "already exists")
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	quiz := &models.Quiz{
		Topic:      topic,
		Info:       info,
		Logo:       logo,
		Categories: []models.Category{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Quizzes.Create(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) AddCategory(ctx context.Context, quizID primitive.ObjectID, name, info string) (*models.Quiz, error) {
	if name == "" {
		return nil, errs.Validation("category", "is required")
	}

	category := models.Category{
		ID:        primitive.NewObjectID(),
		Category:  name,
		Info:      info,
		Questions: []models.Question{},
	}
	if err := s.Quizzes.PushCategory(ctx, quizID, category); err != nil {
		return nil, err
	}
	return s.Quizzes.FindByID(ctx, quizID)
}

// AddQuestion appends a question to an embedded category. Every correct
// answer must appear among the options.
func (s *QuizService) AddQuestion(ctx context.Context, quizID, categoryID primitive.ObjectID, text string, options, answers []string) (*models.Quiz, error) {
	if text == "" {
		return nil, errs.Validation("question", "is required")
	}
	if len(options) == 0 {
		return nil, errs.Validation("options", "at least one option is required")
	}
	if len(answers) == 0 {
		return nil, errs.Validation("answer", "at least one correct answer is required")
	}

	optionSet := make(map[string]bool, len(options))
	opts := make([]models.Option, 0, len(options))
	for _, o := range options {
		optionSet[o] = true
		opts = append(opts, models.Option{ID: primitive.NewObjectID(), Answer: o})
	}
	for _, a := range answers {
		if !optionSet[a] {
			return nil, errs.Validation("answer", "every correct answer must be one of the options")
		}
	}

	question := models.Question{
		ID:       primitive.NewObjectID(),
		Question: text,
		Options:  opts,
		Answers:  answers,
	}
	if err := s.Quizzes.PushQuestion(ctx, quizID, categoryID, question); err != nil {
		return nil, err
	}
	return s.Quizzes.FindByID(ctx, quizID)
}

func (s *QuizService) GetAll(ctx context.Context) ([]models.Quiz, error) {
	return s.Quizzes.FindAll(ctx)
}

func (s *QuizService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Quiz, error) {
	return s.Quizzes.FindByID(ctx, id)
}

func (s *QuizService) GetByTopic(ctx context.Context, topic string) (*models.Quiz, error) {
	return s.Quizzes.FindByTopic(ctx, topic)
}

// UpdateDetails patches the quiz's basic fields; empty values keep the
// stored ones.
func (s *QuizService) UpdateDetails(ctx context.Context, id primitive.ObjectID, topic, info, logo string) (*models.Quiz, error) {
	fields := bson.M{}
	if topic != "" {
		fields["topic"] = topic
	}
	if info != "" {
		fields["info"] = info
	}
	if logo != "" {
		fields["logo"] = logo
	}
	if len(fields) > 0 {
		if err := s.Quizzes.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.Quizzes.FindByID(ctx, id)
}

func (s *QuizService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.Quizzes.Delete(ctx, id)
}

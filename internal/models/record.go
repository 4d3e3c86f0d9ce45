package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attempt is one scored submission for a quiz category.
type Attempt struct {
	Score            float64   `bson:"score" json:"score"`
	CorrectAnswers   int       `bson:"correct_answers" json:"correctAnswers"`
	IncorrectAnswers int       `bson:"incorrect_answers" json:"incorrectAnswers"`
	Accuracy         float64   `bson:"accuracy" json:"accuracy"`
	Date             time.Time `bson:"date" json:"date"`
}

// QuizRecord aggregates all attempts by one user for one (quiz, category)
// pair. The attempts list is append-only: resubmission adds an entry, it
// never overwrites history.
type QuizRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user" json:"userId"`
	QuizID         primitive.ObjectID `bson:"quiz" json:"quizId"`
	CategoryID     primitive.ObjectID `bson:"category_id" json:"categoryId"`
	CategoryName   string             `bson:"category_name" json:"categoryName"`
	TotalQuestions int                `bson:"total_questions" json:"totalQuestions"`
	Attempts       []Attempt          `bson:"attempts" json:"attempts"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

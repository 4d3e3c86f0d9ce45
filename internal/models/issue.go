package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	IssueOpen       = "Open"
	IssueInProgress = "In Progress"
	IssueResolved   = "Resolved"
	IssueClosed     = "Closed"
)

// IssueStatuses lists the valid states in transition order.
var IssueStatuses = []string{IssueOpen, IssueInProgress, IssueResolved, IssueClosed}

// IssueStatusRank returns the position of a status in the lifecycle,
// or -1 for an unknown value.
func IssueStatusRank(status string) int {
	for i, s := range IssueStatuses {
		if s == status {
			return i
		}
	}
	return -1
}

type Issue struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	QuizID      primitive.ObjectID `bson:"quiz_id" json:"quizId"`
	CategoryID  primitive.ObjectID `bson:"category_id" json:"categoryId"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// IssueDetails is an issue joined with its quiz, category and reporter.
type IssueDetails struct {
	Issue
	Topic        string `json:"topic,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
	UserName     string `json:"userName,omitempty"`
	UserAvatar   string `json:"userAvatar,omitempty"`
}

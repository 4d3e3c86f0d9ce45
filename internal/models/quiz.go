package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Option struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Answer string             `bson:"answer" json:"answer"`
}

// Question is embedded in a category. Answers holds the correct option
// strings; every entry must also appear among Options.
type Question struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Question string             `bson:"question" json:"question"`
	Options  []Option           `bson:"options" json:"options"`
	Answers  []string           `bson:"answer" json:"answer"`
}

type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Category  string             `bson:"category" json:"category"`
	Info      string             `bson:"info" json:"info"`
	Questions []Question         `bson:"questions" json:"questions"`
}

type Quiz struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Topic      string             `bson:"topic" json:"topic"`
	Info       string             `bson:"info" json:"info"`
	Logo       string             `bson:"logo" json:"logo"`
	Categories []Category         `bson:"categories" json:"categories"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// CategoryByID returns the embedded category with the given id, or nil.
func (q *Quiz) CategoryByID(id primitive.ObjectID) *Category {
	for i := range q.Categories {
		if q.Categories[i].ID == id {
			return &q.Categories[i]
		}
	}
	return nil
}

// CategoryByName returns the embedded category with the given display name, or nil.
func (q *Quiz) CategoryByName(name string) *Category {
	for i := range q.Categories {
		if q.Categories[i].Category == name {
			return &q.Categories[i]
		}
	}
	return nil
}

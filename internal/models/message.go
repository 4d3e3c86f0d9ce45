package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxMessageLength bounds chat message text.
const MaxMessageLength = 1000

type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// MessageDetails is a message joined with its sender.
type MessageDetails struct {
	Message
	UserName   string `json:"username,omitempty"`
	UserAvatar string `json:"userAvatar,omitempty"`
}

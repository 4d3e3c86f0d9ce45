package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quiz-platform/internal/models"
)

type RecordRepository struct {
	Col *mongo.Collection
}

func NewRecordRepository(db *mongo.Database) *RecordRepository {
	return &RecordRepository{Col: db.Collection("quiz_records")}
}

// AppendAttempt upserts the (user, quiz, category) record and appends the
// attempt in one atomic document update, so concurrent submissions for the
// same triple are serialized by the store and no attempt is lost.
func (r *RecordRepository) AppendAttempt(
	ctx context.Context,
	userID, quizID, categoryID primitive.ObjectID,
	categoryName string,
	totalQuestions int,
	attempt models.Attempt,
) (*models.QuizRecord, error) {
	now := time.Now()
	filter := bson.M{
		"user":        userID,
		"quiz":        quizID,
		"category_id": categoryID,
	}
	update := bson.M{
		"$push": bson.M{"attempts": attempt},
		"$set": bson.M{
			"category_name":   categoryName,
			"total_questions": totalQuestions,
			"updated_at":      now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var record models.QuizRecord
	if err := r.Col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *RecordRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.QuizRecord, error) {
	return r.find(ctx, bson.M{"user": userID})
}

func (r *RecordRepository) FindAll(ctx context.Context) ([]models.QuizRecord, error) {
	return r.find(ctx, bson.M{})
}

func (r *RecordRepository) FindByQuizCategory(ctx context.Context, quizID, categoryID primitive.ObjectID) ([]models.QuizRecord, error) {
	return r.find(ctx, bson.M{"quiz": quizID, "category_id": categoryID})
}

func (r *RecordRepository) find(ctx context.Context, filter bson.M) ([]models.QuizRecord, error) {
	// Stable creation order keeps fold iteration (and its documented
	// first-encountered tie-breaks) deterministic.
	cur, err := r.Col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []models.QuizRecord
	for cur.Next(ctx) {
		var rec models.QuizRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, cur.Err()
}

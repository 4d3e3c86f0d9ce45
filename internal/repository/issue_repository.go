package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quiz-platform/internal/errs"
	"quiz-platform/internal/models"
)

type IssueRepository struct {
	Col *mongo.Collection
}

func NewIssueRepository(db *mongo.Database) *IssueRepository {
	return &IssueRepository{Col: db.Collection("issues")}
}

func (r *IssueRepository) Create(ctx context.Context, issue *models.Issue) error {
	res, err := r.Col.InsertOne(ctx, issue)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		issue.ID = id
	}
	return nil
}

func (r *IssueRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	var issue models.Issue
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("issue")
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *IssueRepository) FindAll(ctx context.Context) ([]models.Issue, error) {
	return r.find(ctx, bson.M{})
}

func (r *IssueRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Issue, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *IssueRepository) find(ctx context.Context, filter bson.M) ([]models.Issue, error) {
	cur, err := r.Col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var issues []models.Issue
	for cur.Next(ctx) {
		var i models.Issue
		if err := cur.Decode(&i); err != nil {
			return nil, err
		}
		issues = append(issues, i)
	}
	return issues, cur.Err()
}

func (r *IssueRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Issue, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var issue models.Issue
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
		opts,
	).Decode(&issue)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("issue")
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *IssueRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errs.NotFound("issue")
	}
	return nil
}

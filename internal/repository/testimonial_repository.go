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

type TestimonialRepository struct {
	Col *mongo.Collection
}

func NewTestimonialRepository(db *mongo.Database) *TestimonialRepository {
	return &TestimonialRepository{Col: db.Collection("testimonials")}
}

// Upsert creates or replaces the user's single testimonial.
func (r *TestimonialRepository) Upsert(ctx context.Context, userID primitive.ObjectID, text string, rating int, status bool) (*models.Testimonial, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var t models.Testimonial
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$set":         bson.M{"text": text, "rating": rating, "status": status},
			"$setOnInsert": bson.M{"created_at": time.Now()},
		},
		opts,
	).Decode(&t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TestimonialRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Testimonial, error) {
	var t models.Testimonial
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("testimonial")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TestimonialRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Testimonial, error) {
	var t models.Testimonial
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("testimonial")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TestimonialRepository) FindActive(ctx context.Context) ([]models.Testimonial, error) {
	return r.find(ctx, bson.M{"status": true})
}

func (r *TestimonialRepository) FindAll(ctx context.Context) ([]models.Testimonial, error) {
	return r.find(ctx, bson.M{})
}

func (r *TestimonialRepository) find(ctx context.Context, filter bson.M) ([]models.Testimonial, error) {
	cur, err := r.Col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Testimonial
	for cur.Next(ctx) {
		var t models.Testimonial
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, cur.Err()
}

// SetStatus writes an explicit status value and returns the updated document.
func (r *TestimonialRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status bool) (*models.Testimonial, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Testimonial
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		opts,
	).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("testimonial")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TestimonialRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errs.NotFound("testimonial")
	}
	return nil
}

package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quiz-platform/internal/errs"
	"quiz-platform/internal/models"
)

const maxTestimonialLength = 500

// TestimonialService manages per-user testimonials with upsert semantics.
type TestimonialService struct {
	Testimonials TestimonialStore
	Users        UserStore
}

func NewTestimonialService(testimonials TestimonialStore, users UserStore) *TestimonialService {
	return &TestimonialService{Testimonials: testimonials, Users: users}
}

// Upsert creates or replaces the user's testimonial: "create" called twice
// overwrites text, rating and status instead of erroring.
func (s *TestimonialService) Upsert(ctx context.Context, userID primitive.ObjectID, text string, rating int, status bool) (*models.Testimonial, error) {
	if err := validateTestimonial(text, rating); err != nil {
		return nil, err
	}
	return s.Testimonials.Upsert(ctx, userID, strings.TrimSpace(text), rating, status)
}

// UpdateByUser is Upsert restricted to an existing testimonial.
func (s *TestimonialService) UpdateByUser(ctx context.Context, userID primitive.ObjectID, text string, rating int, status bool) (*models.Testimonial, error) {
	if err := validateTestimonial(text, rating); err != nil {
		return nil, err
	}
	if _, err := s.Testimonials.FindByUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.Testimonials.Upsert(ctx, userID, strings.TrimSpace(text), rating, status)
}

// ToggleStatus flips the visibility flag; toggling twice restores the
// original state.
func (s *TestimonialService) ToggleStatus(ctx context.Context, id primitive.ObjectID) (*models.Testimonial, error) {
	t, err := s.Testimonials.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Testimonials.SetStatus(ctx, id, !t.Status)
}

func (s *TestimonialService) ByUser(ctx context.Context, userID primitive.ObjectID) (*models.Testimonial, error) {
	return s.Testimonials.FindByUser(ctx, userID)
}

func (s *TestimonialService) Active(ctx context.Context) ([]models.TestimonialDetails, error) {
	testimonials, err := s.Testimonials.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, testimonials)
}

func (s *TestimonialService) All(ctx context.Context) ([]models.TestimonialDetails, error) {
	testimonials, err := s.Testimonials.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, testimonials)
}

func (s *TestimonialService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.Testimonials.Delete(ctx, id)
}

func (s *TestimonialService) join(ctx context.Context, testimonials []models.Testimonial) ([]models.TestimonialDetails, error) {
	users, err := s.Users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[primitive.ObjectID]models.User, len(users))
	for _, u := range users {
		index[u.ID] = u
	}

	out := make([]models.TestimonialDetails, 0, len(testimonials))
	for _, t := range testimonials {
		detail := models.TestimonialDetails{Testimonial: t}
		if u, ok := index[t.UserID]; ok {
			detail.UserName = u.Name
			detail.UserAvatar = u.Avatar
		}
		out = append(out, detail)
	}
	return out, nil
}

func validateTestimonial(text string, rating int) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errs.Validation("text", "is required")
	}
	if len(text) > maxTestimonialLength {
		return errs.Validation("text", "must be at most 500 characters")
	}
	if rating < 1 || rating > 5 {
		return errs.Validation("rating", "must be between 1 and 5")
	}
	return nil
}

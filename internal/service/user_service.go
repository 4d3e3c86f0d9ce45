package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"quiz-platform/internal/auth"
	"quiz-platform/internal/errs"
	"quiz-platform/internal/models"
)

// UserService handles accounts and login.
type UserService struct {
	Users         UserStore
	Tokens        *auth.TokenManager
	DefaultAvatar string
}

func NewUserService(users UserStore, tokens *auth.TokenManager, defaultAvatar string) *UserService {
	return &UserService{Users: users, Tokens: tokens, DefaultAvatar: defaultAvatar}
}

func (s *UserService) Register(ctx context.Context, name, email, password, avatarURL string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errs.Validation("", "fill up all the fields")
	}

	if _, err := s.Users.FindByEmail(ctx, email); err == nil {
		return nil, errs.Validation("email", "already registered")
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if avatarURL == "" {
		avatarURL = s.DefaultAvatar
	}

	user := &models.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		Avatar:    avatarURL,
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed identity token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, errs.ErrNotFound) {
		return "", nil, errs.Validation("email", "user not found")
	}
	if err != nil {
		return "", nil, err
	}
	if !auth.CheckPassword(user.Password, password) {
		return "", nil, errs.Validation("password", "wrong password")
	}

	token, err := s.Tokens.Generate(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.Users.FindAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.Users.FindByID(ctx, id)
}

func (s *UserService) UpdateName(ctx context.Context, id primitive.ObjectID, name string) (*models.User, error) {
	if name == "" {
		return nil, errs.Validation("name", "is required")
	}
	if err := s.Users.UpdateFields(ctx, id, bson.M{"name": name}); err != nil {
		return nil, err
	}
	return s.Users.FindByID(ctx, id)
}

func (s *UserService) ChangePassword(ctx context.Context, id primitive.ObjectID, password string) (*models.User, error) {
	if password == "" {
		return nil, errs.Validation("password", "is required")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if err := s.Users.UpdateFields(ctx, id, bson.M{"password": hash}); err != nil {
		return nil, err
	}
	return s.Users.FindByID(ctx, id)
}

func (s *UserService) UpdateAvatar(ctx context.Context, id primitive.ObjectID, avatarURL string) (*models.User, error) {
	if avatarURL == "" {
		return nil, errs.Validation("avatar", "is required")
	}
	if err := s.Users.UpdateFields(ctx, id, bson.M{"avatar": avatarURL}); err != nil {
		return nil, err
	}
	return s.Users.FindByID(ctx, id)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quiz-platform/internal/errs"
	"quiz-platform/internal/models"
)

// IssueService manages user-filed content reports.
type IssueService struct {
	Issues  IssueStore
	Quizzes QuizStore
	Users   UserStore
}

func NewIssueService(issues IssueStore, quizzes QuizStore, users UserStore) *IssueService {
	return &IssueService{Issues: issues, Quizzes: quizzes, Users: users}
}

func (s *IssueService) Create(ctx context.Context, userID, quizID, categoryID primitive.ObjectID, title, description string) (*models.Issue, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errs.Validation("title", "is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, errs.Validation("description", "is required")
	}

	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.CategoryByID(categoryID) == nil {
		return nil, errs.NotFound("category")
	}

	now := time.Now()
	issue := &models.Issue{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		QuizID:      quizID,
		CategoryID:  categoryID,
		UserID:      userID,
		Status:      models.IssueOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Issues.Create(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// All returns every issue joined with its quiz, category and reporter.
func (s *IssueService) All(ctx context.Context) ([]models.IssueDetails, error) {
	issues, err := s.Issues.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(issues) == 0 {
		return nil, errs.NotFound("issues")
	}
	return s.join(ctx, issues, true)
}

func (s *IssueService) ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.IssueDetails, error) {
	issues, err := s.Issues.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(issues) == 0 {
		return nil, errs.NotFound("issues")
	}
	return s.join(ctx, issues, false)
}

// UpdateStatus moves an issue through the fixed lifecycle. Unknown values
// are rejected outright and the stored status stays untouched; the
// progression is forward-only.
func (s *IssueService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Issue, error) {
	rank := models.IssueStatusRank(status)
	if rank < 0 {
		return nil, errs.Validation("status",
			fmt.Sprintf("must be one of: %s", strings.Join(models.IssueStatuses, ", ")))
	}

	issue, err := s.Issues.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rank < models.IssueStatusRank(issue.Status) {
		return nil, errs.Validation("status", "cannot move backwards in the lifecycle")
	}

	return s.Issues.UpdateStatus(ctx, id, status)
}

func (s *IssueService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.Issues.Delete(ctx, id)
}

// join decorates issues with quiz topic, category name and (optionally)
// reporter identity. An issue whose quiz has been deleted keeps empty join
// fields rather than failing the whole listing.
func (s *IssueService) join(ctx context.Context, issues []models.Issue, withUser bool) ([]models.IssueDetails, error) {
	quizzes, err := s.Quizzes.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	quizIndex := make(map[primitive.ObjectID]models.Quiz, len(quizzes))
	for _, q := range quizzes {
		quizIndex[q.ID] = q
	}

	var userIndex map[primitive.ObjectID]models.User
	if withUser {
		users, err := s.Users.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		userIndex = make(map[primitive.ObjectID]models.User, len(users))
		for _, u := range users {
			userIndex[u.ID] = u
		}
	}

	out := make([]models.IssueDetails, 0, len(issues))
	for _, issue := range issues {
		detail := models.IssueDetails{Issue: issue}
		if quiz, ok := quizIndex[issue.QuizID]; ok {
			detail.Topic = quiz.Topic
			if cat := quiz.CategoryByID(issue.CategoryID); cat != nil {
				detail.CategoryName = cat.Category
			}
		}
		if withUser {
			if u, ok := userIndex[issue.UserID]; ok {
				detail.UserName = u.Name
				detail.UserAvatar = u.Avatar
			}
		}
		out = append(out, detail)
	}
	return out, nil
}

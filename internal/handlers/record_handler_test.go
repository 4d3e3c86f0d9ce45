package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"quiz-platform/internal/auth"
	"quiz-platform/internal/errs"
	"quiz-platform/internal/middleware"
	"quiz-platform/internal/models"
	"quiz-platform/internal/service"
)

// Minimal stores backing the HTTP round-trip tests.

type stubQuizStore struct {
	quiz models.Quiz
}

func (s *stubQuizStore) Create(ctx context.Context, quiz *models.Quiz) error { return nil }
func (s *stubQuizStore) FindAll(ctx context.Context) ([]models.Quiz, error) {
	return []models.Quiz{s.quiz}, nil
}
func (s *stubQuizStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Quiz, error) {
	if id == s.quiz.ID {
		q := s.quiz
		return &q, nil
	}
	return nil, errs.NotFound("quiz")
}
func (s *stubQuizStore) FindByTopic(ctx context.Context, topic string) (*models.Quiz, error) {
	if topic == s.quiz.Topic {
		q := s.quiz
		return &q, nil
	}
	return nil, errs.NotFound("quiz")
}
func (s *stubQuizStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	return nil
}
func (s *stubQuizStore) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }
func (s *stubQuizStore) PushCategory(ctx context.Context, quizID primitive.ObjectID, category models.Category) error {
	return nil
}
func (s *stubQuizStore) PushQuestion(ctx context.Context, quizID, categoryID primitive.ObjectID, question models.Question) error {
	return nil
}

type stubRecordStore struct {
	records []models.QuizRecord
}

func (s *stubRecordStore) AppendAttempt(ctx context.Context, userID, quizID, categoryID primitive.ObjectID, categoryName string, totalQuestions int, attempt models.Attempt) (*models.QuizRecord, error) {
	record := models.QuizRecord{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		QuizID:         quizID,
		CategoryID:     categoryID,
		CategoryName:   categoryName,
		TotalQuestions: totalQuestions,
		Attempts:       []models.Attempt{attempt},
	}
	s.records = append(s.records, record)
	return &record, nil
}
func (s *stubRecordStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.QuizRecord, error) {
	var out []models.QuizRecord
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (s *stubRecordStore) FindAll(ctx context.Context) ([]models.QuizRecord, error) {
	return s.records, nil
}
func (s *stubRecordStore) FindByQuizCategory(ctx context.Context, quizID, categoryID primitive.ObjectID) ([]models.QuizRecord, error) {
	return nil, nil
}

type stubUserStore struct{}

func (s *stubUserStore) Create(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return nil, errs.NotFound("user")
}
func (s *stubUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, errs.NotFound("user")
}
func (s *stubUserStore) FindAll(ctx context.Context) ([]models.User, error) { return nil, nil }
func (s *stubUserStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	return nil
}

type recordFixture struct {
	router *gin.Engine
	quiz   models.Quiz
	cat    models.Category
	token  string
	userID primitive.ObjectID
}

func newRecordFixture(t *testing.T) *recordFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := models.Category{ID: primitive.NewObjectID(), Category: "Basics"}
	quiz := models.Quiz{ID: primitive.NewObjectID(), Topic: "Python", Categories: []models.Category{cat}}
	quizzes := &stubQuizStore{quiz: quiz}
	records := &stubRecordStore{}

	recordSvc := service.NewRecordService(records, quizzes, nil)
	analyticsSvc := service.NewAnalyticsService(records, quizzes, &stubUserStore{}, nil)
	handler := NewRecordHandler(recordSvc, analyticsSvc)

	tm := auth.NewTokenManager("test-secret", time.Hour)
	user := &models.User{ID: primitive.NewObjectID(), Name: "Alice", Role: models.RoleUser}
	token, err := tm.Generate(user)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	r := gin.New()
	group := r.Group("/quiz-record", middleware.Auth(tm, ""))
	group.POST("/add", handler.Add)
	group.GET("/analytics", handler.Analytics)

	return &recordFixture{router: r, quiz: quiz, cat: cat, token: token, userID: user.ID}
}

func (f *recordFixture) post(t *testing.T, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/quiz-record/add", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAddRecordEndpoint(t *testing.T) {
	f := newRecordFixture(t)

	w := f.post(t, gin.H{
		"quizId":           f.quiz.ID.Hex(),
		"categoryId":       f.cat.ID.Hex(),
		"score":            80,
		"totalQuestions":   10,
		"correctAnswers":   8,
		"incorrectAnswers": 2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}

	var record models.QuizRecord
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(record.Attempts) != 1 || record.Attempts[0].Accuracy != 80 {
		t.Errorf("record = %+v, want one attempt at 80%% accuracy", record)
	}
}

func TestAddRecordEndpointErrors(t *testing.T) {
	f := newRecordFixture(t)

	w := f.post(t, gin.H{
		"quizId": f.quiz.ID.Hex(), "categoryId": f.cat.ID.Hex(),
		"totalQuestions": 0,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid payload: status = %d, want 400", w.Code)
	}

	w = f.post(t, gin.H{
		"quizId": primitive.NewObjectID().Hex(), "categoryId": f.cat.ID.Hex(),
		"score": 50, "totalQuestions": 10, "correctAnswers": 5, "incorrectAnswers": 5,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown quiz: status = %d, want 404", w.Code)
	}

	w = f.post(t, gin.H{
		"quizId": "not-an-id", "categoryId": f.cat.ID.Hex(),
		"score": 50, "totalQuestions": 10, "correctAnswers": 5, "incorrectAnswers": 5,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed id: status = %d, want 400", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/quiz-record/add", bytes.NewReader([]byte("{}")))
	w2 := httptest.NewRecorder()
	f.router.ServeHTTP(w2, req)
	if w2.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w2.Code)
	}
}

func TestAnalyticsEndpoint(t *testing.T) {
	f := newRecordFixture(t)

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/quiz-record/analytics", nil)
		req.Header.Set("Authorization", "Bearer "+f.token)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		return w
	}

	if w := get(); w.Code != http.StatusNotFound {
		t.Errorf("no records yet: status = %d, want 404", w.Code)
	}

	if w := f.post(t, gin.H{
		"quizId": f.quiz.ID.Hex(), "categoryId": f.cat.ID.Hex(),
		"score": 90, "totalQuestions": 10, "correctAnswers": 9, "incorrectAnswers": 1,
	}); w.Code != http.StatusCreated {
		t.Fatalf("submit: status = %d", w.Code)
	}

	w := get()
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	var out models.UserAnalytics
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.SingleValues.AverageScore != 90 {
		t.Errorf("averageScore = %v, want 90", out.SingleValues.AverageScore)
	}
}

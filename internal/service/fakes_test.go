package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"quiz-platform/internal/errs"
	"quiz-platform/internal/models"
)

// In-memory stores backing the service tests. They mirror the mongo
// repositories' error behavior, including not-found wrapping.

type fakeUserStore struct {
	users []models.User
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, errs.NotFound("user")
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, errs.NotFound("user")
}

func (f *fakeUserStore) FindAll(ctx context.Context) ([]models.User, error) {
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeUserStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	for i := range f.users {
		if f.users[i].ID == id {
			if v, ok := fields["name"].(string); ok {
				f.users[i].Name = v
			}
			if v, ok := fields["password"].(string); ok {
				f.users[i].Password = v
			}
			if v, ok := fields["avatar"].(string); ok {
				f.users[i].Avatar = v
			}
			return nil
		}
	}
	return errs.NotFound("user")
}

type fakeQuizStore struct {
	quizzes []models.Quiz
}

func (f *fakeQuizStore) Create(ctx context.Context, quiz *models.Quiz) error {
	quiz.ID = primitive.NewObjectID()
	f.quizzes = append(f.quizzes, *quiz)
	return nil
}

func (f *fakeQuizStore) FindAll(ctx context.Context) ([]models.Quiz, error) {
	return append([]models.Quiz(nil), f.quizzes...), nil
}

func (f *fakeQuizStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Quiz, error) {
	for i := range f.quizzes {
		if f.quizzes[i].ID == id {
			q := f.quizzes[i]
			return &q, nil
		}
	}
	return nil, errs.NotFound("quiz")
}

func (f *fakeQuizStore) FindByTopic(ctx context.Context, topic string) (*models.Quiz, error) {
	for i := range f.quizzes {
		if f.quizzes[i].Topic == topic {
			q := f.quizzes[i]
			return &q, nil
		}
	}
	return nil, errs.NotFound("quiz")
}

func (f *fakeQuizStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	for i := range f.quizzes {
		if f.quizzes[i].ID == id {
			if v, ok := fields["topic"].(string); ok {
				f.quizzes[i].Topic = v
			}
			if v, ok := fields["info"].(string); ok {
				f.quizzes[i].Info = v
			}
			if v, ok := fields["logo"].(string); ok {
				f.quizzes[i].Logo = v
			}
			return nil
		}
	}
	return errs.NotFound("quiz")
}

func (f *fakeQuizStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i := range f.quizzes {
		if f.quizzes[i].ID == id {
			f.quizzes = append(f.quizzes[:i], f.quizzes[i+1:]...)
			return nil
		}
	}
	return errs.NotFound("quiz")
}

func (f *fakeQuizStore) PushCategory(ctx context.Context, quizID primitive.ObjectID, category models.Category) error {
	for i := range f.quizzes {
		if f.quizzes[i].ID == quizID {
			f.quizzes[i].Categories = append(f.quizzes[i].Categories, category)
			return nil
		}
	}
	return errs.NotFound("quiz")
}

func (f *fakeQuizStore) PushQuestion(ctx context.Context, quizID, categoryID primitive.ObjectID, question models.Question) error {
	for i := range f.quizzes {
		if f.quizzes[i].ID != quizID {
			continue
		}
		for j := range f.quizzes[i].Categories {
			if f.quizzes[i].Categories[j].ID == categoryID {
				f.quizzes[i].Categories[j].Questions = append(f.quizzes[i].Categories[j].Questions, question)
				return nil
			}
		}
	}
	return errs.NotFound("category")
}

type fakeRecordStore struct {
	records []models.QuizRecord
}

func (f *fakeRecordStore) AppendAttempt(ctx context.Context, userID, quizID, categoryID primitive.ObjectID, categoryName string, totalQuestions int, attempt models.Attempt) (*models.QuizRecord, error) {
	for i := range f.records {
		r := &f.records[i]
		if r.UserID == userID && r.QuizID == quizID && r.CategoryID == categoryID {
			r.Attempts = append(r.Attempts, attempt)
			r.CategoryName = categoryName
			r.TotalQuestions = totalQuestions
			r.UpdatedAt = time.Now()
			out := *r
			return &out, nil
		}
	}
	record := models.QuizRecord{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		QuizID:         quizID,
		CategoryID:     categoryID,
		CategoryName:   categoryName,
		TotalQuestions: totalQuestions,
		Attempts:       []models.Attempt{attempt},
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	f.records = append(f.records, record)
	return &record, nil
}

func (f *fakeRecordStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.QuizRecord, error) {
	var out []models.QuizRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecordStore) FindAll(ctx context.Context) ([]models.QuizRecord, error) {
	return append([]models.QuizRecord(nil), f.records...), nil
}

func (f *fakeRecordStore) FindByQuizCategory(ctx context.Context, quizID, categoryID primitive.ObjectID) ([]models.QuizRecord, error) {
	var out []models.QuizRecord
	for _, r := range f.records {
		if r.QuizID == quizID && r.CategoryID == categoryID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeIssueStore struct {
	issues []models.Issue
}

func (f *fakeIssueStore) Create(ctx context.Context, issue *models.Issue) error {
	issue.ID = primitive.NewObjectID()
	f.issues = append(f.issues, *issue)
	return nil
}

func (f *fakeIssueStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	for i := range f.issues {
		if f.issues[i].ID == id {
			out := f.issues[i]
			return &out, nil
		}
	}
	return nil, errs.NotFound("issue")
}

func (f *fakeIssueStore) FindAll(ctx context.Context) ([]models.Issue, error) {
	return append([]models.Issue(nil), f.issues...), nil
}

func (f *fakeIssueStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Issue, error) {
	var out []models.Issue
	for _, issue := range f.issues {
		if issue.UserID == userID {
			out = append(out, issue)
		}
	}
	return out, nil
}

func (f *fakeIssueStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Issue, error) {
	for i := range f.issues {
		if f.issues[i].ID == id {
			f.issues[i].Status = status
			f.issues[i].UpdatedAt = time.Now()
			out := f.issues[i]
			return &out, nil
		}
	}
	return nil, errs.NotFound("issue")
}

func (f *fakeIssueStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i := range f.issues {
		if f.issues[i].ID == id {
			f.issues = append(f.issues[:i], f.issues[i+1:]...)
			return nil
		}
	}
	return errs.NotFound("issue")
}

type fakeTestimonialStore struct {
	testimonials []models.Testimonial
}

func (f *fakeTestimonialStore) Upsert(ctx context.Context, userID primitive.ObjectID, text string, rating int, status bool) (*models.Testimonial, error) {
	for i := range f.testimonials {
		if f.testimonials[i].UserID == userID {
			f.testimonials[i].Text = text
			f.testimonials[i].Rating = rating
			f.testimonials[i].Status = status
			out := f.testimonials[i]
			return &out, nil
		}
	}
	t := models.Testimonial{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Text:      text,
		Rating:    rating,
		Status:    status,
		CreatedAt: time.Now(),
	}
	f.testimonials = append(f.testimonials, t)
	return &t, nil
}

func (f *fakeTestimonialStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Testimonial, error) {
	for i := range f.testimonials {
		if f.testimonials[i].ID == id {
			out := f.testimonials[i]
			return &out, nil
		}
	}
	return nil, errs.NotFound("testimonial")
}

func (f *fakeTestimonialStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Testimonial, error) {
	for i := range f.testimonials {
		if f.testimonials[i].UserID == userID {
			out := f.testimonials[i]
			return &out, nil
		}
	}
	return nil, errs.NotFound("testimonial")
}

func (f *fakeTestimonialStore) FindActive(ctx context.Context) ([]models.Testimonial, error) {
	var out []models.Testimonial
	for _, t := range f.testimonials {
		if t.Status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTestimonialStore) FindAll(ctx context.Context) ([]models.Testimonial, error) {
	return append([]models.Testimonial(nil), f.testimonials...), nil
}

func (f *fakeTestimonialStore) SetStatus(ctx context.Context, id primitive.ObjectID, status bool) (*models.Testimonial, error) {
	for i := range f.testimonials {
		if f.testimonials[i].ID == id {
			f.testimonials[i].Status = status
			out := f.testimonials[i]
			return &out, nil
		}
	}
	return nil, errs.NotFound("testimonial")
}

func (f *fakeTestimonialStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i := range f.testimonials {
		if f.testimonials[i].ID == id {
			f.testimonials = append(f.testimonials[:i], f.testimonials[i+1:]...)
			return nil
		}
	}
	return errs.NotFound("testimonial")
}

type fakeMessageStore struct {
	messages []models.Message
}

func (f *fakeMessageStore) Create(ctx context.Context, msg *models.Message) error {
	msg.ID = primitive.NewObjectID()
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeMessageStore) FindAll(ctx context.Context) ([]models.Message, error) {
	return append([]models.Message(nil), f.messages...), nil
}

type fakeBroadcaster struct {
	events []string
	data   []interface{}
}

func (f *fakeBroadcaster) Broadcast(event string, data interface{}) {
	f.events = append(f.events, event)
	f.data = append(f.data, data)
}

type fakePublisher struct {
	published []string
	err       error
}

func (f *fakePublisher) Publish(eventType string, payload interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, eventType)
	return nil
}

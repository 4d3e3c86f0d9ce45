package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quiz-platform/internal/cache"
	"quiz-platform/internal/errs"
	"quiz-platform/internal/models"
)

const leaderboardSize = 10

// AnalyticsService folds the attempt ledger into per-user, platform-wide,
// per-category and leaderboard views.
type AnalyticsService struct {
	Records RecordStore
	Quizzes QuizStore
	Users   UserStore
	// Cache fronts leaderboard reads; nil disables caching.
	Cache *cache.Cache
}

func NewAnalyticsService(records RecordStore, quizzes QuizStore, users UserStore, c *cache.Cache) *AnalyticsService {
	return &AnalyticsService{Records: records, Quizzes: quizzes, Users: users, Cache: c}
}

// UserAnalytics aggregates every attempt the user has recorded.
func (s *AnalyticsService) UserAnalytics(ctx context.Context, userID primitive.ObjectID) (*models.UserAnalytics, error) {
	records, err := s.Records.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errs.NotFound("quiz records")
	}

	quizzes, err := s.quizIndex(ctx)
	if err != nil {
		return nil, err
	}

	out := foldRecords(records, quizzes, nil).analytics()
	return &out, nil
}

// AdminAnalytics aggregates the whole ledger and adds the top users ranking.
func (s *AnalyticsService) AdminAnalytics(ctx context.Context) (*models.UserAnalytics, error) {
	records, err := s.Records.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errs.NotFound("quiz records")
	}

	quizzes, err := s.quizIndex(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userIndex(ctx)
	if err != nil {
		return nil, err
	}

	fold := foldRecords(records, quizzes, users)
	out := fold.analytics()
	out.Top5Data.TopUsersByPerformance = fold.topUsers()
	return &out, nil
}

// Leaderboard ranks the top users by summed score for one "Topic - Category"
// pair. Equal totals order by ascending user id.
func (s *AnalyticsService) Leaderboard(ctx context.Context, topicCategory string) ([]models.LeaderboardEntry, error) {
	parts := strings.SplitN(topicCategory, " - ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, errs.Validation("topicCategory", `must be of the form "Topic - Category"`)
	}

	quiz, err := s.Quizzes.FindByTopic(ctx, parts[0])
	if err != nil {
		return nil, err
	}
	category := quiz.CategoryByName(parts[1])
	if category == nil {
		return nil, errs.NotFound("category")
	}

	cacheKey := fmt.Sprintf("leaderboard:%s:%s", quiz.ID.Hex(), category.ID.Hex())
	var cached []models.LeaderboardEntry
	if hit, err := s.Cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	records, err := s.Records.FindByQuizCategory(ctx, quiz.ID, category.ID)
	if err != nil {
		return nil, err
	}
	users, err := s.userIndex(ctx)
	if err != nil {
		return nil, err
	}

	type total struct {
		userID primitive.ObjectID
		points float64
	}
	var order []primitive.ObjectID
	totals := make(map[primitive.ObjectID]*total)
	for _, record := range records {
		t, ok := totals[record.UserID]
		if !ok {
			t = &total{userID: record.UserID}
			totals[record.UserID] = t
			order = append(order, record.UserID)
		}
		for _, attempt := range record.Attempts {
			t.points += attempt.Score
		}
	}

	ranked := make([]total, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, *totals[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].points != ranked[j].points {
			return ranked[i].points > ranked[j].points
		}
		return ranked[i].userID.Hex() < ranked[j].userID.Hex()
	})
	if len(ranked) > leaderboardSize {
		ranked = ranked[:leaderboardSize]
	}

	entries := make([]models.LeaderboardEntry, 0, len(ranked))
	for _, t := range ranked {
		entry := models.LeaderboardEntry{UserID: t.userID, TotalPoints: t.points}
		if u, ok := users[t.userID]; ok {
			entry.UserName = u.Name
			entry.UserAvatar = u.Avatar
		}
		entries = append(entries, entry)
	}

	if err := s.Cache.Set(ctx, cacheKey, entries); err != nil {
		log.Printf("leaderboard cache write failed: %v", err)
	}
	return entries, nil
}

// CategoryAnalytics aggregates every attempt for one (quiz, category).
// Top performers rank by their best single-attempt score, ties by user id.
func (s *AnalyticsService) CategoryAnalytics(ctx context.Context, quizID, categoryID primitive.ObjectID) (*models.CategoryAnalytics, error) {
	records, err := s.Records.FindByQuizCategory(ctx, quizID, categoryID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errs.NotFound("quiz records")
	}

	users, err := s.userIndex(ctx)
	if err != nil {
		return nil, err
	}

	out := &models.CategoryAnalytics{}
	var totalScore float64
	best := make(map[primitive.ObjectID]models.Performer)
	var order []primitive.ObjectID

	for _, record := range records {
		for _, attempt := range record.Attempts {
			out.TotalAttempts++
			out.TotalCorrect += attempt.CorrectAnswers
			out.TotalIncorrect += attempt.IncorrectAnswers
			totalScore += attempt.Score

			out.ScoresOverTime = append(out.ScoresOverTime, models.ScorePoint{Date: attempt.Date, Score: attempt.Score})
			out.AccuracyOverTime = append(out.AccuracyOverTime, models.AccuracyPoint{Date: attempt.Date, Accuracy: attempt.Accuracy})

			p, seen := best[record.UserID]
			if !seen {
				order = append(order, record.UserID)
			}
			if !seen || attempt.Score > p.Score {
				perf := models.Performer{
					UserID:         record.UserID,
					Score:          attempt.Score,
					CorrectAnswers: attempt.CorrectAnswers,
					TotalQuestions: record.TotalQuestions,
					Accuracy:       attempt.Accuracy,
				}
				if u, ok := users[record.UserID]; ok {
					perf.UserName = u.Name
				}
				best[record.UserID] = perf
			}
		}
	}
	out.AvgScore = round2(totalScore / float64(out.TotalAttempts))

	performers := make([]models.Performer, 0, len(order))
	for _, id := range order {
		performers = append(performers, best[id])
	}
	out.TopPerformers = topN(performers, 5, func(a, b models.Performer) bool {
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.UserID.Hex() < b.UserID.Hex()
	})

	return out, nil
}

func (s *AnalyticsService) quizIndex(ctx context.Context) (map[primitive.ObjectID]models.Quiz, error) {
	quizzes, err := s.Quizzes.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[primitive.ObjectID]models.Quiz, len(quizzes))
	for _, q := range quizzes {
		index[q.ID] = q
	}
	return index, nil
}

func (s *AnalyticsService) userIndex(ctx context.Context) (map[primitive.ObjectID]models.User, error) {
	users, err := s.Users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[primitive.ObjectID]models.User, len(users))
	for _, u := range users {
		index[u.ID] = u
	}
	return index, nil
}

package service

import (
	"math"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quiz-platform/internal/models"
)

// The aggregation fold walks every attempt entry of the given records once
// and accumulates grouped totals. Maps are paired with first-encounter key
// slices so output order never depends on map iteration.

type topicAgg struct {
	totalScore float64
	attempts   int
}

type categoryAgg struct {
	topic     string
	category  string
	attempts  int
	correct   int
	incorrect int
}

type userAgg struct {
	name       string
	totalScore float64
	attempts   int
}

type analyticsFold struct {
	totalRecords  int
	totalAttempts int
	totalScore    float64
	totalCorrect  int
	questionsSeen int

	topicOrder []string
	topics     map[string]*topicAgg

	categoryOrder []string
	categories    map[string]*categoryAgg

	accuracySeries []models.AccuracyPoint

	userOrder []primitive.ObjectID
	users     map[primitive.ObjectID]*userAgg
}

// foldRecords aggregates attempt entries. A record whose quiz is missing
// from the join map is skipped: reporting survives content deletion.
func foldRecords(records []models.QuizRecord, quizzes map[primitive.ObjectID]models.Quiz, users map[primitive.ObjectID]models.User) *analyticsFold {
	f := &analyticsFold{
		topics:     make(map[string]*topicAgg),
		categories: make(map[string]*categoryAgg),
		users:      make(map[primitive.ObjectID]*userAgg),
	}

	for _, record := range records {
		quiz, ok := quizzes[record.QuizID]
		if !ok {
			continue
		}
		f.totalRecords++

		key := categoryKey(quiz.Topic, record.CategoryName)

		for _, attempt := range record.Attempts {
			f.totalAttempts++
			f.totalScore += attempt.Score
			f.totalCorrect += attempt.CorrectAnswers
			f.questionsSeen += record.TotalQuestions

			topic, ok := f.topics[quiz.Topic]
			if !ok {
				topic = &topicAgg{}
				f.topics[quiz.Topic] = topic
				f.topicOrder = append(f.topicOrder, quiz.Topic)
			}
			topic.totalScore += attempt.Score
			topic.attempts++

			cat, ok := f.categories[key]
			if !ok {
				cat = &categoryAgg{topic: quiz.Topic, category: record.CategoryName}
				f.categories[key] = cat
				f.categoryOrder = append(f.categoryOrder, key)
			}
			cat.attempts++
			cat.correct += attempt.CorrectAnswers
			cat.incorrect += attempt.IncorrectAnswers

			f.accuracySeries = append(f.accuracySeries, models.AccuracyPoint{
				Date:     attempt.Date,
				Accuracy: attempt.Accuracy,
				Topic:    quiz.Topic,
				Category: record.CategoryName,
			})

			if users != nil {
				ua, ok := f.users[record.UserID]
				if !ok {
					ua = &userAgg{}
					if u, found := users[record.UserID]; found {
						ua.name = u.Name
					}
					f.users[record.UserID] = ua
					f.userOrder = append(f.userOrder, record.UserID)
				}
				ua.totalScore += attempt.Score
				ua.attempts++
			}
		}
	}
	return f
}

// analytics assembles the chart payload. Scalar averages are rounded to two
// decimals here, for display only.
func (f *analyticsFold) analytics() models.UserAnalytics {
	var out models.UserAnalytics

	out.SingleValues = models.AnalyticsSingleValues{
		TotalQuizzes:          f.totalRecords,
		MostAttemptedCategory: f.mostAttemptedCategory(),
	}
	if f.totalAttempts > 0 {
		out.SingleValues.AverageScore = round2(f.totalScore / float64(f.totalAttempts))
	}
	if f.questionsSeen > 0 {
		out.SingleValues.OverallAccuracy = round2(float64(f.totalCorrect) / float64(f.questionsSeen) * 100)
	}

	topicAverages := make([]models.TopicAverage, 0, len(f.topicOrder))
	topicAttempts := make([]models.TopicAttempts, 0, len(f.topicOrder))
	for _, topic := range f.topicOrder {
		agg := f.topics[topic]
		topicAverages = append(topicAverages, models.TopicAverage{
			Topic:        topic,
			AverageScore: round2(agg.totalScore / float64(agg.attempts)),
		})
		topicAttempts = append(topicAttempts, models.TopicAttempts{Topic: topic, Attempts: agg.attempts})
	}

	catAttempts := make([]models.CategoryAttempts, 0, len(f.categoryOrder))
	catCorrect := make([]models.CategoryCorrect, 0, len(f.categoryOrder))
	catBoth := make([]models.CategoryCorrectIncorrect, 0, len(f.categoryOrder))
	for _, key := range f.categoryOrder {
		agg := f.categories[key]
		catAttempts = append(catAttempts, models.CategoryAttempts{Topic: agg.topic, Category: agg.category, Attempts: agg.attempts})
		catCorrect = append(catCorrect, models.CategoryCorrect{Topic: agg.topic, Category: agg.category, Correct: agg.correct})
		catBoth = append(catBoth, models.CategoryCorrectIncorrect{Topic: agg.topic, Category: agg.category, Correct: agg.correct, Incorrect: agg.incorrect})
	}

	topTopics := topN(topicAverages, 5, func(a, b models.TopicAverage) bool {
		if a.AverageScore != b.AverageScore {
			return a.AverageScore > b.AverageScore
		}
		return a.Topic < b.Topic
	})

	out.ChartData = models.AnalyticsChartData{
		ScoreDistribution:         topTopics,
		AccuracyOverTime:          f.accuracySeries,
		AttemptsPerCategory:       catAttempts,
		CorrectIncorrectChartData: catBoth,
		AttemptsPerTopic:          topicAttempts,
	}

	out.Top5Data = models.AnalyticsTop5{
		TopAverageScoreTopics: topTopics,
		TopMostAttemptedCategories: topN(catAttempts, 5, func(a, b models.CategoryAttempts) bool {
			if a.Attempts != b.Attempts {
				return a.Attempts > b.Attempts
			}
			return categoryKey(a.Topic, a.Category) < categoryKey(b.Topic, b.Category)
		}),
		TopCategoriesByCorrectAnswers: topN(catCorrect, 5, func(a, b models.CategoryCorrect) bool {
			if a.Correct != b.Correct {
				return a.Correct > b.Correct
			}
			return categoryKey(a.Topic, a.Category) < categoryKey(b.Topic, b.Category)
		}),
	}

	return out
}

// mostAttemptedCategory picks the highest attempt count; ties go to the
// first key encountered in fold order.
func (f *analyticsFold) mostAttemptedCategory() string {
	var best string
	bestCount := -1
	for _, key := range f.categoryOrder {
		if f.categories[key].attempts > bestCount {
			best = key
			bestCount = f.categories[key].attempts
		}
	}
	return best
}

// topUsers ranks users by average score; ties go to the lower user id.
func (f *analyticsFold) topUsers() []models.UserAverage {
	out := make([]models.UserAverage, 0, len(f.userOrder))
	for _, id := range f.userOrder {
		agg := f.users[id]
		out = append(out, models.UserAverage{
			UserID:   id,
			UserName: agg.name,
			AvgScore: round2(agg.totalScore / float64(agg.attempts)),
		})
	}
	return topN(out, 5, func(a, b models.UserAverage) bool {
		if a.AvgScore != b.AvgScore {
			return a.AvgScore > b.AvgScore
		}
		return a.UserID.Hex() < b.UserID.Hex()
	})
}

func categoryKey(topic, category string) string {
	return topic + " - " + category
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func topN[T any](items []T, n int, less func(a, b T) bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

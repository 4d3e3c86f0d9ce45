package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chart-ready aggregation payloads. Scalar averages and accuracies here are
// rounded to two decimals for display; stored values are never rounded.

type TopicAverage struct {
	Topic        string  `json:"topic"`
	AverageScore float64 `json:"averageScore"`
}

type CategoryAttempts struct {
	Topic    string `json:"topic"`
	Category string `json:"category"`
	Attempts int    `json:"attempts"`
}

type CategoryCorrect struct {
	Topic    string `json:"topic"`
	Category string `json:"category"`
	Correct  int    `json:"correct"`
}

type CategoryCorrectIncorrect struct {
	Topic     string `json:"topic"`
	Category  string `json:"category"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
}

type TopicAttempts struct {
	Topic    string `json:"topic"`
	Attempts int    `json:"attempts"`
}

// AccuracyPoint is one attempt entry on the accuracy-over-time series.
// The series is emitted in ledger iteration order; callers sort by Date.
type AccuracyPoint struct {
	Date     time.Time `json:"date"`
	Accuracy float64   `json:"accuracy"`
	Topic    string    `json:"topic,omitempty"`
	Category string    `json:"category,omitempty"`
}

type ScorePoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

type UserAverage struct {
	UserID   primitive.ObjectID `json:"userId"`
	UserName string             `json:"userName"`
	AvgScore float64            `json:"avgScore"`
}

type AnalyticsSingleValues struct {
	TotalQuizzes          int     `json:"totalQuizzes"`
	AverageScore          float64 `json:"averageScore"`
	OverallAccuracy       float64 `json:"overallAccuracy"`
	MostAttemptedCategory string  `json:"mostAttemptedCategory"`
}

type AnalyticsChartData struct {
	ScoreDistribution         []TopicAverage             `json:"scoreDistribution"`
	AccuracyOverTime          []AccuracyPoint            `json:"accuracyOverTime"`
	AttemptsPerCategory       []CategoryAttempts         `json:"attemptsPerCategory"`
	CorrectIncorrectChartData []CategoryCorrectIncorrect `json:"correctIncorrectChartData"`
	AttemptsPerTopic          []TopicAttempts            `json:"attemptsPerTopic"`
}

type AnalyticsTop5 struct {
	TopAverageScoreTopics         []TopicAverage     `json:"topAverageScoreTopics"`
	TopMostAttemptedCategories    []CategoryAttempts `json:"topMostAttemptedCategories"`
	TopCategoriesByCorrectAnswers []CategoryCorrect  `json:"topCategoriesByCorrectAnswers"`
	// TopUsersByPerformance is populated on the platform-wide fold only.
	TopUsersByPerformance []UserAverage `json:"topUsersByPerformance,omitempty"`
}

// UserAnalytics is the per-user (or, with TopUsersByPerformance set,
// platform-wide) aggregation result.
type UserAnalytics struct {
	SingleValues AnalyticsSingleValues `json:"singleValues"`
	ChartData    AnalyticsChartData    `json:"chartData"`
	Top5Data     AnalyticsTop5         `json:"top5Data"`
}

// LeaderboardEntry ranks one user in a (topic, category) leaderboard.
type LeaderboardEntry struct {
	UserID      primitive.ObjectID `json:"userId"`
	UserName    string             `json:"userName"`
	UserAvatar  string             `json:"userAvatar"`
	TotalPoints float64            `json:"totalPoints"`
}

// Performer is a top entry in single-category analytics, ranked by the
// user's best single-attempt score.
type Performer struct {
	UserID         primitive.ObjectID `json:"userId"`
	UserName       string             `json:"userName"`
	Score          float64            `json:"score"`
	CorrectAnswers int                `json:"correctAnswers"`
	TotalQuestions int                `json:"totalQuestions"`
	Accuracy       float64            `json:"accuracy"`
}

// CategoryAnalytics aggregates every attempt recorded for one (quiz,
// category) pair.
type CategoryAnalytics struct {
	TotalAttempts    int             `json:"totalAttempts"`
	TotalCorrect     int             `json:"totalCorrect"`
	TotalIncorrect   int             `json:"totalIncorrect"`
	AvgScore         float64         `json:"avgScore"`
	ScoresOverTime   []ScorePoint    `json:"scoresOverTime"`
	AccuracyOverTime []AccuracyPoint `json:"accuracyOverTime"`
	TopPerformers    []Performer     `json:"topPerformers"`
}

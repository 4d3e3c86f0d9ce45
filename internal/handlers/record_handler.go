package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-platform/internal/middleware"
	"quiz-platform/internal/service"
)

type RecordHandler struct {
	records   *service.RecordService
	analytics *service.AnalyticsService
}

func NewRecordHandler(records *service.RecordService, analytics *service.AnalyticsService) *RecordHandler {
	return &RecordHandler{records: records, analytics: analytics}
}

type addRecordRequest struct {
	QuizID           string  `json:"quizId"`
	CategoryID       string  `json:"categoryId"`
	Score            float64 `json:"score"`
	TotalQuestions   int     `json:"totalQuestions"`
	CorrectAnswers   int     `json:"correctAnswers"`
	IncorrectAnswers int     `json:"incorrectAnswers"`
}

// Add ingests one finished attempt for the authenticated user.
func (h *RecordHandler) Add(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	userID, err := parseID("userId", claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	var req addRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	quizID, err := parseID("quizId", req.QuizID)
	if err != nil {
		respondError(c, err)
		return
	}
	categoryID, err := parseID("categoryId", req.CategoryID)
	if err != nil {
		respondError(c, err)
		return
	}

	record, err := h.records.SubmitAttempt(c.Request.Context(), service.SubmitAttemptInput{
		UserID:           userID,
		QuizID:           quizID,
		CategoryID:       categoryID,
		Score:            req.Score,
		TotalQuestions:   req.TotalQuestions,
		CorrectAnswers:   req.CorrectAnswers,
		IncorrectAnswers: req.IncorrectAnswers,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// Analytics returns the caller's aggregated performance view.
func (h *RecordHandler) Analytics(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	userID, err := parseID("userId", claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.analytics.UserAnalytics(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdminAnalytics aggregates over every user's records.
func (h *RecordHandler) AdminAnalytics(c *gin.Context) {
	result, err := h.analytics.AdminAnalytics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Leaderboard ranks users for one "Topic - Category" pair.
func (h *RecordHandler) Leaderboard(c *gin.Context) {
	entries, err := h.analytics.Leaderboard(c.Request.Context(), c.Param("topicCategory"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// CategoryAnalytics summarizes every attempt in one quiz category.
func (h *RecordHandler) CategoryAnalytics(c *gin.Context) {
	quizID, err := parseID("quizId", c.Param("quizId"))
	if err != nil {
		respondError(c, err)
		return
	}
	categoryID, err := parseID("categoryId", c.Param("categoryId"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.analytics.CategoryAnalytics(c.Request.Context(), quizID, categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-platform/internal/middleware"
	"quiz-platform/internal/service"
)

type IssueHandler struct {
	issues *service.IssueService
}

func NewIssueHandler(issues *service.IssueService) *IssueHandler {
	return &IssueHandler{issues: issues}
}

type createIssueRequest struct {
	QuizID      string `json:"quizId"`
	CategoryID  string `json:"categoryId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *IssueHandler) Create(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	userID, err := parseID("userId", claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	var req createIssueRequest
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

	issue, err := h.issues.Create(c.Request.Context(), userID, quizID, categoryID, req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, issue)
}

// GetAll is the admin view: every issue, joined with reporter details.
func (h *IssueHandler) GetAll(c *gin.Context) {
	issues, err := h.issues.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

func (h *IssueHandler) GetMine(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	userID, err := parseID("userId", claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	issues, err := h.issues.ByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

type updateIssueStatusRequest struct {
	Status string `json:"status"`
}

func (h *IssueHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID("issueId", c.Param("issueId"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req updateIssueStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	issue, err := h.issues.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

func (h *IssueHandler) Delete(c *gin.Context) {
	id, err := parseID("issueId", c.Param("issueId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.issues.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Issue deleted"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-platform/internal/middleware"
	"quiz-platform/internal/service"
)

type TestimonialHandler struct {
	testimonials *service.TestimonialService
}

func NewTestimonialHandler(testimonials *service.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonials: testimonials}
}

type testimonialRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// Upsert writes the caller's testimonial, replacing any earlier one. New
// testimonials start hidden until an admin approves them.
func (h *TestimonialHandler) Upsert(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	userID, err := parseID("userId", claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	var req testimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	t, err := h.testimonials.Upsert(c.Request.Context(), userID, req.Text, req.Rating, false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TestimonialHandler) Update(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	userID, err := parseID("userId", claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	var req testimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	t, err := h.testimonials.UpdateByUser(c.Request.Context(), userID, req.Text, req.Rating, false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TestimonialHandler) GetMine(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	userID, err := parseID("userId", claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	t, err := h.testimonials.ByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// GetActive is public: only approved testimonials, for the landing page.
func (h *TestimonialHandler) GetActive(c *gin.Context) {
	list, err := h.testimonials.Active(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *TestimonialHandler) GetAll(c *gin.Context) {
	list, err := h.testimonials.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ToggleStatus flips a testimonial between visible and hidden.
func (h *TestimonialHandler) ToggleStatus(c *gin.Context) {
	id, err := parseID("testimonialId", c.Param("testimonialId"))
	if err != nil {
		respondError(c, err)
		return
	}

	t, err := h.testimonials.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TestimonialHandler) Delete(c *gin.Context) {
	id, err := parseID("testimonialId", c.Param("testimonialId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.testimonials.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Testimonial deleted"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-platform/internal/service"
	"quiz-platform/internal/storage"
)

type QuizHandler struct {
	quizzes *service.QuizService
	files   storage.FileStore
}

func NewQuizHandler(quizzes *service.QuizService, files storage.FileStore) *QuizHandler {
	return &QuizHandler{quizzes: quizzes, files: files}
}

type createQuizRequest struct {
	Topic string `json:"topic"`
	Info  string `json:"info"`
	Logo  string `json:"logo"`
}

func (h *QuizHandler) Create(c *gin.Context) {
	var req createQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	quiz, err := h.quizzes.CreateQuiz(c.Request.Context(), req.Topic, req.Info, req.Logo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (h *QuizHandler) GetAll(c *gin.Context) {
	quizzes, err := h.quizzes.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *QuizHandler) GetByID(c *gin.Context) {
	id, err := parseID("quizId", c.Param("quizId"))
	if err != nil {
		respondError(c, err)
		return
	}

	quiz, err := h.quizzes.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// GetByTopic looks a quiz up by its unique display topic.
func (h *QuizHandler) GetByTopic(c *gin.Context) {
	quiz, err := h.quizzes.GetByTopic(c.Request.Context(), c.Param("topic"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) Update(c *gin.Context) {
	id, err := parseID("quizId", c.Param("quizId"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req createQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	quiz, err := h.quizzes.UpdateDetails(c.Request.Context(), id, req.Topic, req.Info, req.Logo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) Delete(c *gin.Context) {
	id, err := parseID("quizId", c.Param("quizId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.quizzes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted"})
}

type addCategoryRequest struct {
	Category string `json:"category"`
	Info     string `json:"info"`
}

func (h *QuizHandler) AddCategory(c *gin.Context) {
	id, err := parseID("quizId", c.Param("quizId"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req addCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	quiz, err := h.quizzes.AddCategory(c.Request.Context(), id, req.Category, req.Info)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

type addQuestionRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answers  []string `json:"answers"`
}

func (h *QuizHandler) AddQuestion(c *gin.Context) {
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

	var req addQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	quiz, err := h.quizzes.AddQuestion(c.Request.Context(), quizID, categoryID, req.Question, req.Options, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

// UploadLogo stores the uploaded image and points the quiz logo at its URL.
func (h *QuizHandler) UploadLogo(c *gin.Context) {
	id, err := parseID("quizId", c.Param("quizId"))
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "logo file is required"})
		return
	}
	if h.files == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()

	url, err := h.files.Upload(c.Request.Context(), file.Filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}

	quiz, err := h.quizzes.UpdateDetails(c.Request.Context(), id, "", "", url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

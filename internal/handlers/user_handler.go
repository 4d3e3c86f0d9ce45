package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-platform/internal/middleware"
	"quiz-platform/internal/service"
	"quiz-platform/internal/storage"
)

type UserHandler struct {
	users *service.UserService
	files storage.FileStore
}

func NewUserHandler(users *service.UserService, files storage.FileStore) *UserHandler {
	return &UserHandler{users: users, files: files}
}

// Register accepts a multipart form so an avatar can ride along with the
// signup. The avatar is optional; without one the default is used.
func (h *UserHandler) Register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")

	avatarURL := ""
	if file, err := c.FormFile("avatar"); err == nil && h.files != nil {
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
		avatarURL = url
	}

	user, err := h.users.Register(c.Request.Context(), name, email, password, avatarURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	token, user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.users.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Me returns the profile behind the presented token.
func (h *UserHandler) Me(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	id, err := parseID("userId", claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateNameRequest struct {
	Name string `json:"name"`
}

func (h *UserHandler) UpdateName(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	id, err := parseID("userId", claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	var req updateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.users.UpdateName(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	id, err := parseID("userId", claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.users.ChangePassword(c.Request.Context(), id, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UploadAvatar replaces the caller's avatar with the uploaded file.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	id, err := parseID("userId", claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "avatar file is required"})
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

	user, err := h.users.UpdateAvatar(c.Request.Context(), id, url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

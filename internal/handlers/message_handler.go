package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"quiz-platform/internal/middleware"
	"quiz-platform/internal/service"
	"quiz-platform/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the frontend origin; CORS is enforced
	// at the HTTP layer already.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type MessageHandler struct {
	messages *service.MessageService
	hub      *ws.Hub
}

func NewMessageHandler(messages *service.MessageService, hub *ws.Hub) *MessageHandler {
	return &MessageHandler{messages: messages, hub: hub}
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// Send persists the message and fans it out to connected chat clients.
func (h *MessageHandler) Send(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	userID, err := parseID("userId", claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	detail, err := h.messages.Send(c.Request.Context(), userID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (h *MessageHandler) GetAll(c *gin.Context) {
	list, err := h.messages.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Serve upgrades the request and parks the connection in the hub. The read
// loop only detects disconnects; chat messages arrive over the REST route.
func (h *MessageHandler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Add(conn)
	go func() {
		defer h.hub.Remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

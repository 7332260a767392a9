package handler

import (
	"strconv"

	messagingapp "github.com/ecomercado/backend/internal/application/messaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChatHandler handles two-party chat endpoints
type ChatHandler struct {
	BaseHandler
	chatService *messagingapp.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService *messagingapp.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// OpenChatRequest opens (or returns) the chat with another user
type OpenChatRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendMessageRequest represents one outgoing message. Exactly one of text
// and image URL must be set; the domain enforces it.
type SendMessageRequest struct {
	Text     string `json:"text" binding:"max=2000"`
	ImageURL string `json:"image_url" binding:"omitempty,url,max=500"`
}

// Open returns the chat with the given user, creating it on first contact
func (h *ChatHandler) Open(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req OpenChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	chat, err := h.chatService.Open(c.Request.Context(), email, req.Email)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, chat)
}

// List returns the caller's chats, most recently active first
func (h *ChatHandler) List(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	chats, err := h.chatService.List(c.Request.Context(), email)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, chats)
}

// Send posts a message into a chat the caller participates in
func (h *ChatHandler) Send(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid chat ID")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	message, err := h.chatService.Send(c.Request.Context(), email, chatID, messagingapp.SendMessageRequest{
		Text:     req.Text,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, message)
}

// History returns a chat's messages, oldest first
func (h *ChatHandler) History(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid chat ID")
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			h.BadRequest(c, "Invalid limit")
			return
		}
	}

	messages, err := h.chatService.History(c.Request.Context(), email, chatID, limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, messages)
}

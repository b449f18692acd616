package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"buybox/internal/client/openrouter"
	"buybox/internal/models"
	"buybox/internal/repository"
)

// ChatHandler relays dashboard assistant turns to the LLM and keeps the
// session transcript so the UI can restore it.
type ChatHandler struct {
	Client *openrouter.Client
	Repo   repository.Repository
	Logger *zap.Logger

	Model string
}

func (h *ChatHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/chat")
	group.POST("", h.send)
	group.GET("/:session", h.session)
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
	Context   any    `json:"context,omitempty"`
}

// @Summary Send an assistant message and relay it to the LLM
// @Tags chat
// @Accept json
// @Param body body handler.chatRequest true "message"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/chat [post]
func (h *ChatHandler) send(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	sessionID := strings.TrimSpace(req.SessionID)
	content := strings.TrimSpace(req.Content)
	if sessionID == "" || content == "" {
		Error(c, http.StatusBadRequest, "session_id and content are required", nil)
		return
	}

	userMsg := &models.ChatMessage{
		SessionID: sessionID,
		Role:      "user",
		Content:   content,
	}
	if req.Context != nil {
		if raw, err := json.Marshal(req.Context); err == nil {
			userMsg.Context = datatypes.JSON(raw)
		}
	}
	if err := h.Repo.InsertChatMessage(c.Request.Context(), userMsg); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}

	if h.Client == nil || !h.Client.Configured() {
		Ok(c, gin.H{"stored": true, "reply": nil}, map[string]any{"llm": "not configured"})
		return
	}

	history, err := h.Repo.ListChatMessagesBySession(c.Request.Context(), sessionID, 50)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	messages := make([]openrouter.Message, 0, len(history))
	for _, msg := range history {
		messages = append(messages, openrouter.Message{Role: msg.Role, Content: msg.Content})
	}

	resp, err := h.Client.ChatCompletion(c.Request.Context(), openrouter.ChatRequest{
		Model:    h.Model,
		Messages: messages,
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	reply := resp.Reply()
	assistantMsg := &models.ChatMessage{
		SessionID: sessionID,
		Role:      "assistant",
		Content:   reply,
	}
	if err := h.Repo.InsertChatMessage(c.Request.Context(), assistantMsg); err != nil && h.Logger != nil {
		h.Logger.Warn("persist assistant reply failed", zap.Error(err))
	}
	Ok(c, gin.H{"stored": true, "reply": reply}, nil)
}

// @Summary Session transcript
// @Tags chat
// @Param session path string true "session id"
// @Param limit query int false "max messages (default 200)"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/chat/{session} [get]
func (h *ChatHandler) session(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	sessionID := strings.TrimSpace(c.Param("session"))
	if sessionID == "" {
		Error(c, http.StatusBadRequest, "invalid session id", nil)
		return
	}
	items, err := h.Repo.ListChatMessagesBySession(c.Request.Context(), sessionID, intQuery(c, "limit", 200))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

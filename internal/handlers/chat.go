package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Tetraslam/onemonth-dev/internal/logger"
	"github.com/Tetraslam/onemonth-dev/internal/requestdata"
	"github.com/Tetraslam/onemonth-dev/internal/services"
)

type ChatHandler struct {
	log         *logger.Logger
	chatService services.ChatService
}

func NewChatHandler(log *logger.Logger, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		log:         log.With("handler", "ChatHandler"),
		chatService: chatService,
	}
}

type chatRequest struct {
	Message      string     `json:"message" binding:"required"`
	CurriculumID *uuid.UUID `json:"curriculum_id"`
}

// POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	reply, err := h.chatService.Chat(c.Request.Context(), rd.UserID, req.CurriculumID, req.Message)
	if err != nil {
		h.log.Error("Chat failed", "error", err, "user_id", rd.UserID)
		RespondError(c, http.StatusInternalServerError, "chat_failed", err)
		return
	}
	RespondOK(c, gin.H{"response": reply})
}

// POST /api/chat/stream
//
// Responds with a chunked text body. Tool activity and end-of-stream are
// framed with in-band markers rather than SSE events, so the client reads
// one continuous token stream.
func (h *ChatHandler) ChatStream(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)

	flusher, _ := c.Writer.(http.Flusher)
	emit := func(chunk string) {
		if _, err := c.Writer.Write([]byte(chunk)); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}

	if err := h.chatService.ChatStream(c.Request.Context(), rd.UserID, req.CurriculumID, req.Message, emit); err != nil {
		h.log.Error("ChatStream failed", "error", err, "user_id", rd.UserID)
	}
}

// GET /api/chat/history/:curriculum_id
func (h *ChatHandler) History(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	curriculumID, err := uuid.Parse(c.Param("curriculum_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_curriculum_id", err)
		return
	}
	messages, err := h.chatService.History(c.Request.Context(), rd.UserID, curriculumID)
	if err != nil {
		h.log.Error("History failed", "error", err, "user_id", rd.UserID)
		RespondError(c, http.StatusInternalServerError, "history_failed", err)
		return
	}
	RespondOK(c, gin.H{"messages": messages})
}

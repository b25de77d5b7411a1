package handlers

import (
	"mandi-service/internal/application/dto"
	"mandi-service/internal/domain/interfaces"
	"net/http"

	"github.com/gorilla/mux"
)

// ChatHandler exposes the poll-based chat. All routes need a bearer token.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(service interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// StartConversation godoc
// @Summary Find or create a conversation with another user
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.StartConversationRequest true "Other participant"
// @Success 200 {object} entities.Conversation
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chat/conversation [post]
func (h *ChatHandler) StartConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	who, err := identityFrom(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req dto.StartConversationRequest
	if err := decodeJSON(r, w, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(ctx, w, err)
		return
	}

	conversation, err := h.service.StartConversation(ctx, who, req.OtherUserID, req.AdID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, conversation)
}

// ListConversations godoc
// @Summary My conversations, most recent message first
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {array} entities.Conversation
// @Router /api/chat/conversations [get]
func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	who, err := identityFrom(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	conversations, err := h.service.ListConversations(ctx, who)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, conversations)
}

// ListMessages godoc
// @Summary Messages of a conversation, oldest first
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param conversationId path string true "Conversation id"
// @Success 200 {array} entities.Message
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chat/messages/{conversationId} [get]
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	who, err := identityFrom(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	messages, err := h.service.ListMessages(ctx, who, mux.Vars(r)["conversationId"])
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, messages)
}

// SendMessage godoc
// @Summary Send a message
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SendMessageRequest true "Message"
// @Success 200 {object} entities.Message
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/chat/message [post]
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	who, err := identityFrom(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req dto.SendMessageRequest
	if err := decodeJSON(r, w, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(ctx, w, err)
		return
	}

	message, err := h.service.SendMessage(ctx, who, req.ConversationID, req.Text)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, message)
}

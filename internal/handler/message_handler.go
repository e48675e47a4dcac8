package handler

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/service"
)

type msgReqFields struct {
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Group     string `json:"group"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type historyReqFields struct {
	User1 string `json:"user1"`
	User2 string `json:"user2"`
}

// MessageHandler exposes the dispatcher over HTTP. SendPersonal doubles as
// the persistence boundary the relay process calls.
type MessageHandler struct {
	messageService service.MessageService
	logger         zerolog.Logger
}

func NewMessageHandler(messageService service.MessageService, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{messageService: messageService, logger: logger}
}

func (h *MessageHandler) SendPersonal(w http.ResponseWriter, r *http.Request) {
	var req msgReqFields
	if err := decodeInto(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, emptyBodyMsg, nil)
		return
	}

	var missing []string
	if req.Sender == "" {
		missing = append(missing, "sender")
	}
	if req.Receiver == "" {
		missing = append(missing, "receiver")
	}
	if req.Content == "" {
		missing = append(missing, "content")
	}
	if req.Timestamp == "" {
		missing = append(missing, "timestamp")
	}
	if len(missing) > 0 {
		err := &service.ValidationError{Missing: missing}
		writeError(w, h.logger, http.StatusBadRequest, "sending message failed: "+err.Error(), req)
		return
	}

	confirmation, err := h.messageService.SendPersonal(req.Sender, req.Receiver, req.Content, req.Timestamp)
	if err != nil {
		writeError(w, h.logger, statusFor(err), "sending message failed: "+err.Error(), req)
		return
	}

	writeSuccess(w, h.logger, confirmation, nil)
}

func (h *MessageHandler) SendGroup(w http.ResponseWriter, r *http.Request) {
	var req msgReqFields
	if err := decodeInto(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, emptyBodyMsg, nil)
		return
	}

	var missing []string
	if req.Sender == "" {
		missing = append(missing, "sender")
	}
	if req.Group == "" {
		missing = append(missing, "group")
	}
	if req.Content == "" {
		missing = append(missing, "content")
	}
	if req.Timestamp == "" {
		missing = append(missing, "timestamp")
	}
	if len(missing) > 0 {
		err := &service.ValidationError{Missing: missing}
		writeError(w, h.logger, http.StatusBadRequest, "sending group message failed: "+err.Error(), req)
		return
	}

	confirmation, err := h.messageService.SendGroup(req.Sender, req.Group, req.Content, req.Timestamp)
	if err != nil {
		writeError(w, h.logger, statusFor(err), "sending group message failed: "+err.Error(), req)
		return
	}

	writeSuccess(w, h.logger, confirmation, nil)
}

func (h *MessageHandler) PersonalHistory(w http.ResponseWriter, r *http.Request) {
	var req historyReqFields
	if err := decodeInto(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, emptyBodyMsg, nil)
		return
	}
	if req.User1 == "" || req.User2 == "" {
		writeError(w, h.logger, http.StatusBadRequest, "history query failed: missing user1 or user2", req)
		return
	}

	messages, err := h.messageService.PersonalHistory(req.User1, req.User2)
	if err != nil {
		writeError(w, h.logger, statusFor(err), "history query failed: "+err.Error(), req)
		return
	}

	writeSuccess(w, h.logger,
		fmt.Sprintf("%d messages between %q and %q", len(messages), req.User1, req.User2),
		map[string]any{"messages": messages})
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/service"
)

type friendReqFields struct {
	Username string `json:"username"`
	Friend   string `json:"friend"`
}

// UserHandler serves the social queries around a user.
type UserHandler struct {
	userService service.UserService
	logger      zerolog.Logger
}

func NewUserHandler(userService service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

func (h *UserHandler) Friends(w http.ResponseWriter, r *http.Request) {
	var req friendReqFields
	if err := decodeInto(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, emptyBodyMsg, nil)
		return
	}
	if req.Username == "" {
		writeError(w, h.logger, http.StatusBadRequest, "friend query failed: missing username", req)
		return
	}

	friends, err := h.userService.Friends(req.Username)
	if err != nil {
		writeError(w, h.logger, statusFor(err), "friend query failed: "+err.Error(), req)
		return
	}

	writeSuccess(w, h.logger, fmt.Sprintf("friend list for %q", req.Username), map[string]any{
		"friends": friends,
	})
}

func (h *UserHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	var req friendReqFields
	if err := decodeInto(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, emptyBodyMsg, nil)
		return
	}
	if req.Username == "" {
		writeError(w, h.logger, http.StatusBadRequest, "add friend failed: missing username", req)
		return
	}
	if req.Friend == "" {
		writeError(w, h.logger, http.StatusBadRequest, "add friend failed: missing friend", req)
		return
	}

	if err := h.userService.AddFriend(req.Username, req.Friend); err != nil {
		writeError(w, h.logger, statusFor(err), "add friend failed: "+err.Error(), req)
		return
	}

	writeSuccess(w, h.logger, fmt.Sprintf("%q and %q are now friends", req.Username, req.Friend), nil)
}

func (h *UserHandler) StateSearch(w http.ResponseWriter, r *http.Request) {
	var req friendReqFields
	if err := decodeInto(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, emptyBodyMsg, nil)
		return
	}
	if req.Username == "" {
		writeError(w, h.logger, http.StatusBadRequest, "state query failed: missing username", req)
		return
	}

	users, err := h.userService.StateSearch(req.Username)
	if err != nil {
		writeError(w, h.logger, statusFor(err), "state query failed: "+err.Error(), req)
		return
	}

	writeSuccess(w, h.logger, fmt.Sprintf("state for %q", req.Username), map[string]any{
		"users": users,
	})
}

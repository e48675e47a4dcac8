package handler

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/service"
)

type groupReqFields struct {
	Name        string `json:"name"`
	Groupmaster string `json:"groupmaster"`
	Username    string `json:"username"`
}

// GroupHandler serves group lifecycle and membership routes.
type GroupHandler struct {
	groupService service.GroupService
	logger       zerolog.Logger
}

func NewGroupHandler(groupService service.GroupService, logger zerolog.Logger) *GroupHandler {
	return &GroupHandler{groupService: groupService, logger: logger}
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req groupReqFields
	if err := decodeInto(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, emptyBodyMsg, nil)
		return
	}
	if req.Name == "" {
		writeError(w, h.logger, http.StatusBadRequest, "group creation failed: missing name", req)
		return
	}
	if req.Groupmaster == "" {
		writeError(w, h.logger, http.StatusBadRequest, "group creation failed: missing groupmaster", req)
		return
	}

	group, err := h.groupService.Create(req.Name, req.Groupmaster)
	if err != nil {
		writeError(w, h.logger, statusFor(err), "group creation failed: "+err.Error(), req)
		return
	}

	writeSuccess(w, h.logger, fmt.Sprintf("group %q created", req.Name), map[string]any{
		"group": group,
	})
}

func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req groupReqFields
	if err := decodeInto(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, emptyBodyMsg, nil)
		return
	}
	if req.Name == "" {
		writeError(w, h.logger, http.StatusBadRequest, "joining group failed: missing name", req)
		return
	}
	if req.Username == "" {
		writeError(w, h.logger, http.StatusBadRequest, "joining group failed: missing username", req)
		return
	}

	if err := h.groupService.Join(req.Name, req.Username); err != nil {
		writeError(w, h.logger, statusFor(err), "joining group failed: "+err.Error(), req)
		return
	}

	writeSuccess(w, h.logger, fmt.Sprintf("%q joined group %q", req.Username, req.Name), nil)
}

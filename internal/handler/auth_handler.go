package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/service"
)

type registerReqFields struct {
	Username string `json:"username"`
	Identity string `json:"identity"`
	Password string `json:"password"`
	Location string `json:"location"`
	Role     string `json:"role"`
}

type loginReqFields struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthHandler manages user registration and authentication.
type AuthHandler struct {
	authService service.AuthService
	cookieStore *sessions.CookieStore
	logger      zerolog.Logger
}

func NewAuthHandler(authService service.AuthService, cookieStore *sessions.CookieStore, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieStore: cookieStore,
		logger:      logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReqFields
	if err := decodeInto(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, emptyBodyMsg, nil)
		return
	}

	var missing []string
	if req.Username == "" {
		missing = append(missing, "username")
	}
	if req.Identity == "" {
		missing = append(missing, "identity")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if req.Location == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		err := &service.ValidationError{Missing: missing}
		writeError(w, h.logger, http.StatusBadRequest, "registration failed: "+err.Error(), req)
		return
	}

	profile, err := h.authService.Register(req.Username, req.Identity, req.Password, req.Location, req.Role)
	if err != nil {
		writeError(w, h.logger, statusFor(err), "registration failed: "+err.Error(), req)
		return
	}

	writeSuccess(w, h.logger, fmt.Sprintf("user %q registered", req.Username), map[string]any{
		"user": profile,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReqFields
	if err := decodeInto(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, emptyBodyMsg, nil)
		return
	}
	if req.Username == "" {
		writeError(w, h.logger, http.StatusBadRequest, "login failed: missing username", req)
		return
	}
	if req.Password == "" {
		writeError(w, h.logger, http.StatusBadRequest, "login failed: missing password", req)
		return
	}

	profile, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		// Unknown user and wrong password both read as a credential
		// problem to the caller.
		status := http.StatusUnauthorized
		var notFound *service.NotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, service.ErrWrongPassword) {
			status = statusFor(err)
		}
		writeError(w, h.logger, status, "login failed: "+err.Error(), map[string]any{"username": req.Username})
		return
	}

	session, _ := h.cookieStore.Get(r, "auth-session")
	session.Values["username"] = profile.Username
	if err := sessions.Save(r, w); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "saving session: "+err.Error(), nil)
		return
	}

	writeSuccess(w, h.logger, fmt.Sprintf("user %q logged in", req.Username), map[string]any{
		"user": profile,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req loginReqFields
	if err := decodeInto(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, emptyBodyMsg, nil)
		return
	}
	if req.Username == "" {
		writeError(w, h.logger, http.StatusBadRequest, "logout failed: missing username", req)
		return
	}

	if err := h.authService.Logout(req.Username); err != nil {
		writeError(w, h.logger, statusFor(err), "logout failed: "+err.Error(), req)
		return
	}

	session, _ := h.cookieStore.Get(r, "auth-session")
	session.Options.MaxAge = -1
	if err := sessions.Save(r, w); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "dropping session: "+err.Error(), nil)
		return
	}

	writeSuccess(w, h.logger, fmt.Sprintf("user %q logged out", req.Username), nil)
}

package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/service"
)

// SessionHandler owns the per-connection lifecycle of the private chat:
// handshake, registration, the frame loop, and teardown. Dispatch goes
// through a MessageService, so the same handler serves both the combined
// process (local dispatcher) and the relay (remote dispatcher).
type SessionHandler struct {
	registry   *Registry
	dispatcher service.MessageService
	upgrader   websocket.Upgrader
	logger     zerolog.Logger
}

func NewSessionHandler(registry *Registry, dispatcher service.MessageService, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		registry:   registry,
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The web client is served from a different origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// ServeHTTP accepts the websocket handshake and runs the session until the
// transport closes.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	if userID == "" {
		h.logger.Error().Msg("websocket rejected: no user_id supplied")
		h.closeWith(conn, websocket.ClosePolicyViolation)
		return
	}

	h.registry.Connect(userID, conn)
	h.runSession(userID, conn)
}

func (h *SessionHandler) runSession(userID string, conn *websocket.Conn) {
	// Anything unexpected inside the frame loop kills this session only:
	// deregister, close with an internal-error status, keep serving others.
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.WithLevel(zerolog.PanicLevel).
				Str("user_id", userID).
				Interface("panic", rec).
				Msg("session loop failed")
			h.registry.Disconnect(userID)
			h.closeWith(conn, websocket.CloseInternalServerErr)
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Error().Err(err).Str("user_id", userID).Msg("connection closed unexpectedly")
			} else {
				h.logger.Info().Str("user_id", userID).Msg("connection closed")
			}
			h.registry.Disconnect(userID)
			conn.Close()
			return
		}
		h.handleFrame(userID, raw)
	}
}

// handleFrame processes one inbound frame. Parse and validation problems go
// back to the sender as typed error frames and never end the session.
func (h *SessionHandler) handleFrame(userID string, raw []byte) {
	var frame InboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("inbound frame is not valid JSON")
		h.registry.SendTo(userID, newErrorFrame("Invalid JSON payload."))
		return
	}

	if missing := frame.MissingFields(); len(missing) > 0 {
		h.logger.Error().Strs("missing", missing).Str("user_id", userID).Msg("inbound frame missing required fields")
		h.registry.SendTo(userID, newErrorFrame("Missing fields: from/to/content."))
		return
	}

	// Persistence is best effort: an unknown party or an unreachable
	// persistence service is logged and live fan-out still happens.
	if _, err := h.dispatcher.SendPersonal(frame.From, frame.To, frame.Content, frame.Ts); err != nil {
		h.logger.Warn().Err(err).Str("user_id", userID).Msg("message not recorded")
	}

	h.registry.SendTo(frame.To, newMessageFrame(frame))
}

func (h *SessionHandler) closeWith(conn *websocket.Conn, code int) {
	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, ""), deadline)
	conn.Close()
}

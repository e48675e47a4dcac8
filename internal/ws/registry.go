package ws

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/metrics"
)

// Conn is the transport handle the registry manages. *websocket.Conn
// satisfies it; tests substitute fakes.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Registry maps a user identifier to its one live connection. A user is
// either reachable through exactly one handle or absent; connecting again
// replaces the old handle, and any write failure demotes the user to
// absent. Handles are never persisted.
type Registry struct {
	mu     sync.Mutex
	conns  map[string]Conn
	logger zerolog.Logger
}

func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		conns:  make(map[string]Conn),
		logger: logger,
	}
}

// Connect records the handle for the user, replacing and discarding any
// previous one.
func (r *Registry) Connect(userID string, conn Conn) {
	r.mu.Lock()
	r.conns[userID] = conn
	count := len(r.conns)
	r.mu.Unlock()

	metrics.ConnectionsActive.Set(float64(count))
	r.logger.Info().Str("user_id", userID).Int("active", count).Msg("connection registered")
}

// Disconnect removes the mapping if present; unknown users are a no-op.
func (r *Registry) Disconnect(userID string) {
	r.mu.Lock()
	_, present := r.conns[userID]
	if present {
		delete(r.conns, userID)
	}
	count := len(r.conns)
	r.mu.Unlock()

	if present {
		metrics.ConnectionsActive.Set(float64(count))
		r.logger.Info().Str("user_id", userID).Int("active", count).Msg("connection deregistered")
	}
}

// SendTo writes the frame to the user's live connection, reporting whether
// it was delivered. No connection is not an error — the caller decides what
// an unreachable receiver means. A write failure drops the connection: the
// transport is session oriented and unrecoverable mid-stream.
func (r *Registry) SendTo(userID string, frame any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[userID]
	if !ok {
		metrics.FramesDropped.Inc()
		r.logger.Warn().Str("user_id", userID).Msg("no live connection, frame dropped")
		return false
	}

	if err := conn.WriteJSON(frame); err != nil {
		delete(r.conns, userID)
		conn.Close()
		metrics.ConnectionsActive.Set(float64(len(r.conns)))
		r.logger.Error().Err(err).Str("user_id", userID).Msg("write failed, connection dropped")
		return false
	}

	metrics.FramesDelivered.Inc()
	return true
}

// Count reports the number of live connections.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

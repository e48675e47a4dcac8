package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/repository"
)

// SnapshotHandler exposes the operator hooks for reloading and flushing the
// snapshot files.
type SnapshotHandler struct {
	snapshots *repository.Snapshots
	logger    zerolog.Logger
}

func NewSnapshotHandler(snapshots *repository.Snapshots, logger zerolog.Logger) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots, logger: logger}
}

func (h *SnapshotHandler) LoadAll(w http.ResponseWriter, r *http.Request) {
	h.snapshots.LoadAll()
	writeSuccess(w, h.logger, "all collections reloaded", nil)
}

func (h *SnapshotHandler) SaveAll(w http.ResponseWriter, r *http.Request) {
	h.snapshots.SaveAll()
	writeSuccess(w, h.logger, "all collections saved", nil)
}

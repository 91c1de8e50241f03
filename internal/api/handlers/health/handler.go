package health

import (
	"context"
	"net/http"
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers"
)

// Pinger is the subset of *sql.DB the probe needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Error(format string, v ...interface{})
}

type Handler struct {
	db     Pinger
	logger Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
	}
}

type statusResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("GET /health - Database ping failed: %v", err)
		handlers.RespondJSON(w, http.StatusServiceUnavailable, statusResponse{
			Status:   "degraded",
			Database: "unreachable",
		})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, statusResponse{
		Status:   "ok",
		Database: "ok",
	})
}

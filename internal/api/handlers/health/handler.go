package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/internal/api/handlers"
)

const (
	statusOK       = "ok"
	statusDown     = "down"
	statusDegraded = "degraded"
	statusError    = "error"

	readinessTimeout = 2 * time.Second
	checkTimeout     = time.Second

	msgNotReady = "сервис не готов к работе"
)

// LivenessResponse ответ /health/live
type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ReadinessResponse ответ /health/ready
type ReadinessResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
}

type Handler struct {
	db      DBPinger
	redis   RedisPinger // nil, если блокировки слотов выключены
	version string
	logger  Logger
}

func NewHandler(db DBPinger, redis RedisPinger, version string, logger Logger) *Handler {
	return &Handler{
		db:      db,
		redis:   redis,
		version: version,
		logger:  logger,
	}
}

// Live GET /health/live
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, LivenessResponse{Status: statusOK, Version: h.version})
}

// Ready GET /health/ready
// Без Postgres сервис не готов (503), без Redis - degraded (200).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]string, 2)
	status := statusOK

	if err := ping(ctx, h.db.PingContext); err != nil {
		h.logger.Error("GET /health/ready - Postgres is down: %v", err)
		deps["postgres"] = statusDown
		status = statusError
	} else {
		deps["postgres"] = statusOK
	}

	if h.redis != nil {
		err := ping(ctx, func(ctx context.Context) error { return h.redis.Ping(ctx).Err() })
		if err != nil {
			h.logger.Warn("GET /health/ready - Redis is down: %v", err)
			deps["redis"] = statusDown
			if status == statusOK {
				status = statusDegraded
			}
		} else {
			deps["redis"] = statusOK
		}
	}

	resp := ReadinessResponse{Status: status, Version: h.version, Dependencies: deps}
	if status == statusError {
		handlers.RespondErrorWithData(w, http.StatusServiceUnavailable, msgNotReady, resp)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func ping(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return fn(ctx)
}

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduling/pkg/logger"
)

type fakeDB struct{ err error }

func (f fakeDB) PingContext(context.Context) error { return f.err }

type fakeRedis struct{ err error }

func (f fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.err)
}

type readyBody struct {
	Success bool              `json:"success"`
	Data    ReadinessResponse `json:"data"`
}

func ready(t *testing.T, h *Handler) (int, ReadinessResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	var body readyBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body.Data
}

func TestLive(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(fakeDB{}, nil, "1.0.0", logger.NewNop()).Live(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok","version":"1.0.0"}}`, rec.Body.String())
}

func TestReady(t *testing.T) {
	down := errors.New("connection refused")

	tests := []struct {
		name       string
		db         DBPinger
		redis      RedisPinger
		wantCode   int
		wantStatus string
		wantDeps   map[string]string
	}{
		{
			name: "all up", db: fakeDB{}, redis: fakeRedis{},
			wantCode: http.StatusOK, wantStatus: "ok",
			wantDeps: map[string]string{"postgres": "ok", "redis": "ok"},
		},
		{
			name: "redis disabled", db: fakeDB{},
			wantCode: http.StatusOK, wantStatus: "ok",
			wantDeps: map[string]string{"postgres": "ok"},
		},
		{
			name: "redis down", db: fakeDB{}, redis: fakeRedis{err: down},
			wantCode: http.StatusOK, wantStatus: "degraded",
			wantDeps: map[string]string{"postgres": "ok", "redis": "down"},
		},
		{
			name: "postgres down", db: fakeDB{err: down}, redis: fakeRedis{},
			wantCode: http.StatusServiceUnavailable, wantStatus: "error",
			wantDeps: map[string]string{"postgres": "down", "redis": "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := ready(t, NewHandler(tt.db, tt.redis, "", logger.NewNop()))
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantDeps, resp.Dependencies)
		})
	}
}

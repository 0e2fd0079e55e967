// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(context.Context) error { return nil }

func failing(context.Context) error { return errors.New("connection refused") }

func get(t *testing.T, h *Handler, path string) (*httptest.ResponseRecorder, ReadinessResponse) {
	t.Helper()

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestLiveness(t *testing.T) {
	h := NewHandler().AddCheck("database", CheckerFunc(failing))

	rec, body := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

	h.SetShutdown(true)
	rec, body = get(t, h, "/livez")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "shutting_down", body.Status)
}

func TestReadinessAllHealthy(t *testing.T) {
	h := NewHandler().
		AddCheck("database", CheckerFunc(ok)).
		AddCheck("redis", CheckerFunc(ok))

	rec, body := get(t, h, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body.Status)
	require.Len(t, body.Checks, 2)
	assert.Equal(t, "database", body.Checks[0].Name)
	assert.Equal(t, "redis", body.Checks[1].Name)
	assert.True(t, body.Checks[0].Healthy)
	assert.NotEmpty(t, body.Checks[1].Latency)
}

func TestReadinessDegraded(t *testing.T) {
	h := NewHandler().
		AddCheck("database", CheckerFunc(ok)).
		AddCheck("redis", CheckerFunc(failing)).
		AddCheck("cache", nil)

	rec, body := get(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", body.Status)
	require.Len(t, body.Checks, 3)
	assert.True(t, body.Checks[0].Healthy)
	assert.False(t, body.Checks[1].Healthy)
	assert.Equal(t, "ping failed", body.Checks[1].Message)
	assert.Equal(t, "cache checker not configured", body.Checks[2].Message)
}

func TestReadinessRunsChecksConcurrently(t *testing.T) {
	slow := CheckerFunc(func(ctx context.Context) error {
		select {
		case <-time.After(200 * time.Millisecond):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	h := NewHandler().AddCheck("a", slow).AddCheck("b", slow).AddCheck("c", slow)

	start := time.Now()
	rec, _ := get(t, h, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Less(t, time.Since(start), 550*time.Millisecond)
}

func TestReadinessFlags(t *testing.T) {
	h := NewHandler().AddCheck("database", CheckerFunc(ok))

	h.SetReady(false)
	rec, body := get(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not_ready", body.Status)

	h.SetReady(true)
	h.SetShutdown(true)
	rec, body = get(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "shutting_down", body.Status)
}

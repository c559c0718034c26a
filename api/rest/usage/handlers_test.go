package usage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/inkwell/billing/inkwell/accounts"
	"codeberg.org/inkwell/billing/inkwell/usage"
	"codeberg.org/inkwell/billing/internal/auth"
	"codeberg.org/inkwell/billing/internal/meter"
	"codeberg.org/inkwell/billing/internal/metrics"
	"codeberg.org/inkwell/billing/internal/plans"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type downUsage struct{}

func (downUsage) ListByOwner(context.Context, string) ([]usage.Record, error) {
	return nil, errors.New("connection refused")
}

func (downUsage) Append(context.Context, usage.NewRecord) (*usage.Record, error) {
	return nil, errors.New("connection refused")
}

func newRouter(m Meter, failOpen bool) *gin.Engine {
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), m, auth.New("jwt-secret"), failOpen)
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestUsage_RecordThenCompute(t *testing.T) {
	m := meter.New(usage.NewMemoryRepository(), accounts.NewMemoryRepository(), meter.Config{FreeCeiling: 10}, metrics.NewNop())
	router := newRouter(m, false)

	w := serve(router, http.MethodPost, "/api/v1/usage/records", `{"email":"ada@example.com","templateSlug":"tweet","response":"12345678"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var rec RecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, int64(8), rec.Length)

	w = serve(router, http.MethodGet, "/api/v1/usage?email=ada@example.com", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp UsageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(8), resp.Total)
	assert.Equal(t, int64(10), resp.Ceiling)
	assert.True(t, resp.Available)
	assert.Equal(t, meter.BandWarning, resp.Band)
	assert.Equal(t, plans.Free, resp.Plan)
	assert.True(t, resp.Known)
}

func TestUsage_NullResponseCountsZero(t *testing.T) {
	m := meter.New(usage.NewMemoryRepository(), accounts.NewMemoryRepository(), meter.Config{}, metrics.NewNop())
	router := newRouter(m, false)

	w := serve(router, http.MethodPost, "/api/v1/usage/records", `{"email":"ada@example.com","response":null}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"length":0`)
}

func TestUsage_MissingEmail(t *testing.T) {
	m := meter.New(usage.NewMemoryRepository(), accounts.NewMemoryRepository(), meter.Config{}, metrics.NewNop())
	router := newRouter(m, false)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/api/v1/usage", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/api/v1/usage/records", `{}`).Code)
}

func TestUsage_StoreDownFailClosed(t *testing.T) {
	m := meter.New(downUsage{}, accounts.NewMemoryRepository(), meter.Config{}, metrics.NewNop())
	router := newRouter(m, false)

	w := serve(router, http.MethodGet, "/api/v1/usage?email=ada@example.com", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"retryable":true`)
}

func TestUsage_StoreDownFailOpen(t *testing.T) {
	m := meter.New(downUsage{}, accounts.NewMemoryRepository(), meter.Config{}, metrics.NewNop())
	router := newRouter(m, true)

	w := serve(router, http.MethodGet, "/api/v1/usage?email=ada@example.com", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp UsageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	assert.False(t, resp.Known)
}

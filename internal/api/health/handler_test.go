package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fembalance/pkg/logger"
)

type fakeModels struct {
	cycle bool
	pcos  bool
}

func (f fakeModels) CycleReady() bool { return f.cycle }
func (f fakeModels) PCOSReady() bool  { return f.pcos }

func doHealth(t *testing.T, handler http.HandlerFunc, target string) (*httptest.ResponseRecorder, HealthStatus) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	return rec, status
}

func TestHandleHealth_PerModelFlags(t *testing.T) {
	h := New(logger.Get(), fakeModels{cycle: true, pcos: true}, nil, nil, "fembalance-ml", "1.0.0")

	rec, status := doHealth(t, h.HandleHealth, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", status.Status)
	assert.True(t, status.Models.CycleLoaded)
	assert.True(t, status.Models.PCOSLoaded)
	assert.Equal(t, "healthy", status.Checks["models"].Status)
}

func TestHandleHealth_UnloadedModelIsUnhealthy(t *testing.T) {
	h := New(logger.Get(), fakeModels{cycle: true, pcos: false}, nil, nil, "fembalance-ml", "1.0.0")

	rec, status := doHealth(t, h.HandleHealth, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", status.Status)
	assert.True(t, status.Models.CycleLoaded)
	assert.False(t, status.Models.PCOSLoaded)
	assert.Equal(t, "unhealthy", status.Checks["models"].Status)
}

func TestHandleReadiness_RequiresBothModels(t *testing.T) {
	h := New(logger.Get(), fakeModels{cycle: false, pcos: true}, nil, nil, "fembalance-ml", "1.0.0")

	rec, status := doHealth(t, h.HandleReadiness, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, status.Models.CycleLoaded)
}

func TestHandleLiveness(t *testing.T) {
	h := New(logger.Get(), fakeModels{}, nil, nil, "fembalance-ml", "1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	rec := httptest.NewRecorder()
	h.HandleLiveness(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alive")
}

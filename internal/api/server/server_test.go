package server_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-rental-indexer/internal/api/server"
	"github.com/feral-file/ff-rental-indexer/internal/health"
	"github.com/feral-file/ff-rental-indexer/internal/metrics"
	"github.com/feral-file/ff-rental-indexer/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthz(t *testing.T) {
	tests := []struct {
		name       string
		status     health.Status
		err        error
		wantStatus int
	}{
		{
			name:       "healthy",
			status:     health.Status{Healthy: true, PendingEntries: 2, Component: health.ComponentState{Name: "projector", Phase: health.PhaseProcessing}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "listener stuck",
			status:     health.Status{Healthy: false, Component: health.ComponentState{Name: "listener", Phase: health.PhaseStuck}},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "report error",
			err:        errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reporter := mocks.NewMockReporter(ctrl)
			reporter.EXPECT().Report(gomock.Any()).Return(tt.status, tt.err)

			router := server.NewRouter(reporter, prometheus.NewRegistry())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.err != nil {
				return
			}

			var body health.Status
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.status.Healthy, body.Healthy)
			assert.Equal(t, tt.status.Component.Phase, body.Component.Phase)
		})
	}
}

func TestMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().Report(gomock.Any()).Return(health.Status{Healthy: true, PendingEntries: 7}, nil).AnyTimes()

	registry := prometheus.NewRegistry()
	registry.MustRegister(metrics.NewCollector("projector", reporter))

	router := server.NewRouter(reporter, registry)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `rental_ledger_entries_pending{app="projector"} 7`)
}

package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthController_Health(t *testing.T) {
	tests := []struct {
		name       string
		pinger     Pinger
		wantStatus int
	}{
		{name: "no pinger", wantStatus: http.StatusOK},
		{name: "backend up", pinger: PingFunc(func(context.Context) error { return nil }), wantStatus: http.StatusOK},
		{name: "backend down", pinger: PingFunc(func(context.Context) error { return assert.AnError }), wantStatus: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewHealthController(testLogger, "redis", tt.pinger)
			rr := httptest.NewRecorder()

			ctrl.Health(rr, httptest.NewRequest(http.MethodGet, "http://test/healthz", nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var got HealthResponse
				require.Nil(t, decodeEnvelope(t, rr, &got))
				assert.Equal(t, HealthResponse{Status: "ok", Backend: "redis"}, got)
			}
		})
	}
}

package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

func TestOrganizerController_Submit(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
	}{
		{name: "success", body: `{"name":"Tech Club","email":"club@uni.edu","phone":"1","password":"secret123"}`, wantStatus: http.StatusCreated},
		{name: "missing password", body: `{"name":"Tech Club","email":"club@uni.edu"}`, wantStatus: http.StatusBadRequest},
		{name: "duplicate", body: `{"name":"Tech Club","email":"club@uni.edu","password":"secret123"}`, fakeErr: domain.ErrDuplicateEmail, wantStatus: http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeOnboardingService{request: &domain.OrganizerRequest{ID: "req-1", Status: domain.RequestPending}, err: tt.fakeErr}
			ctrl := NewOrganizerController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/organizer-requests", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.Submit(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				var got domain.OrganizerRequest
				require.Nil(t, decodeEnvelope(t, rr, &got))
				assert.Equal(t, domain.RequestPending, got.Status)
			}
		})
	}
}

func TestOrganizerController_ListEmpty(t *testing.T) {
	ctrl := NewOrganizerController(testLogger, &fakeOnboardingService{})
	rr := httptest.NewRecorder()
	ctrl.List(rr, httptest.NewRequest(http.MethodGet, "http://test/admin/organizer-requests", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":[],"error":null}`, rr.Body.String())
}

func TestOrganizerController_Decide(t *testing.T) {
	tests := []struct {
		name       string
		approve    bool
		requestID  string
		outcome    *domain.DecisionOutcome
		fakeErr    error
		wantStatus int
		wantCode   string
	}{
		{name: "approve applied", approve: true, requestID: "req-1", outcome: &domain.DecisionOutcome{Applied: true}, wantStatus: http.StatusOK},
		{name: "approve missing request is a no-op", approve: true, requestID: "nope", outcome: &domain.DecisionOutcome{}, wantStatus: http.StatusOK},
		{name: "approve legacy disabled", approve: true, requestID: "req-2", fakeErr: domain.ErrLegacyRecoveryDisabled, wantStatus: http.StatusConflict, wantCode: helpers.ErrCodeConflict},
		{name: "reject", requestID: "req-3", outcome: &domain.DecisionOutcome{Applied: true}, wantStatus: http.StatusOK},
		{name: "missing id", approve: true, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeOnboardingService{outcome: tt.outcome, err: tt.fakeErr}
			ctrl := NewOrganizerController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/admin/organizer-requests/x/approve", nil)
			req.SetPathValue("requestID", tt.requestID)
			rr := httptest.NewRecorder()

			if tt.approve {
				ctrl.Approve(rr, req)
			} else {
				ctrl.Reject(rr, req)
			}

			require.Equal(t, tt.wantStatus, rr.Code)
			var got domain.DecisionOutcome
			apiErr := decodeEnvelope(t, rr, &got)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				return
			}
			assert.Equal(t, tt.outcome.Applied, got.Applied)
			assert.Equal(t, tt.requestID, fake.decidedID)
			if tt.approve {
				assert.Equal(t, "approve", fake.decision)
			} else {
				assert.Equal(t, "reject", fake.decision)
			}
		})
	}
}

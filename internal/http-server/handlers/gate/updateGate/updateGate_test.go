package updateGate

import (
	"bytes"
	"eventGate/internal/checkin"
	"eventGate/internal/http-server/handlers/gate/updateGate/mocks"
	"eventGate/internal/lib/logger/handlers/slogdiscard"
	"eventGate/internal/models"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUpdateGateHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	limitedOnly := mock.MatchedBy(func(in checkin.UpdateGateInput) bool {
		return in.Status != nil && *in.Status == models.GateLimited && in.StaffCount == nil
	})

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.GateUpdater)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Status change",
			requestBody: `{"status": "limited"}`,
			mockSetup: func(m *mocks.GateUpdater) {
				m.On("UpdateGate", mock.Anything, "gate-1", limitedOnly).Return(models.Gate{
					ID:            "gate-1",
					EventID:       "ev-1",
					Number:        3,
					Status:        models.GateLimited,
					StaffCount:    2,
					TotalCheckins: 156,
					CurrentRate:   12,
					Version:       5,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","gate":{"id":"gate-1","event_id":"ev-1","number":3,"location":"",
				"status":"limited","staff_count":2,"total_checkins":156,"current_rate":12,"version":5}}`,
		},
		{
			name:        "Staff change",
			requestBody: `{"staff_count": 0}`,
			mockSetup: func(m *mocks.GateUpdater) {
				m.On("UpdateGate", mock.Anything, "gate-1", mock.MatchedBy(func(in checkin.UpdateGateInput) bool {
					return in.Status == nil && in.StaffCount != nil && *in.StaffCount == 0
				})).Return(models.Gate{ID: "gate-1", Status: models.GateOpen}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","gate":{"id":"gate-1","event_id":"","number":0,"location":"",
				"status":"open","staff_count":0,"total_checkins":0,"current_rate":0,"version":0}}`,
		},
		{
			name:           "Empty update",
			requestBody:    `{}`,
			mockSetup:      func(m *mocks.GateUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"status or staff_count is required"}`,
		},
		{
			name:           "Invalid status",
			requestBody:    `{"status": "half-open"}`,
			mockSetup:      func(m *mocks.GateUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Status must be one of [open limited closed]"}`,
		},
		{
			name:        "Unknown gate",
			requestBody: `{"status": "limited"}`,
			mockSetup: func(m *mocks.GateUpdater) {
				m.On("UpdateGate", mock.Anything, "gate-1", limitedOnly).
					Return(models.Gate{}, fmt.Errorf("checkin.UpdateGate: %w", models.ErrGateNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"gate not found"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockUpdater := mocks.NewGateUpdater(t)
			tc.mockSetup(mockUpdater)

			router := chi.NewRouter()
			router.Patch("/gates/{id}", New(logger, mockUpdater))

			req := httptest.NewRequest(http.MethodPatch, "/gates/gate-1", bytes.NewBufferString(tc.requestBody))
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

package getHold

import (
	"eventGate/internal/http-server/handlers/hold/getHold/mocks"
	"eventGate/internal/lib/logger/handlers/slogdiscard"
	"eventGate/internal/models"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestGetHoldHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		holdID         string
		mockSetup      func(m *mocks.HoldGetter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "Success",
			holdID: "hold-1",
			mockSetup: func(m *mocks.HoldGetter) {
				m.On("Hold", "hold-1").Return(models.Reservation{
					ID:         "hold-1",
					EventID:    "ev-1",
					TicketType: "general",
					Quantity:   1,
					UnitPrice:  5000,
					Status:     models.ReservationExpired,
					ExpiresAt:  at,
					Version:    2,
					CreatedAt:  at.Add(-10 * time.Minute),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","hold":{"id":"hold-1","event_id":"ev-1","ticket_type":"general","quantity":1,
				"unit_price":{"amount":5000,"display":"50.00"},"status":"expired","expires_at":"2026-10-01T12:00:00Z",
				"version":2,"created_at":"2026-10-01T11:50:00Z"}}`,
		},
		{
			name:   "Not found",
			holdID: "hold-404",
			mockSetup: func(m *mocks.HoldGetter) {
				m.On("Hold", "hold-404").Return(models.Reservation{}, fmt.Errorf("booking.Hold: %w", models.ErrHoldNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"hold not found"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewHoldGetter(t)
			tc.mockSetup(mockGetter)

			router := chi.NewRouter()
			router.Get("/holds/{id}", New(logger, mockGetter))

			req := httptest.NewRequest(http.MethodGet, "/holds/"+tc.holdID, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

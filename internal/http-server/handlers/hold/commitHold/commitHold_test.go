package commitHold

import (
	"bytes"
	"encoding/json"
	"errors"
	"eventGate/internal/booking"
	"eventGate/internal/http-server/handlers/hold/commitHold/mocks"
	"eventGate/internal/lib/logger/handlers/slogdiscard"
	"eventGate/internal/models"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCommitHoldHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.HoldCommitter)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Success",
			requestBody: `{"payment_token": "tok_visa"}`,
			mockSetup: func(m *mocks.HoldCommitter) {
				m.On("Commit", mock.Anything, "hold-1", booking.CommitInput{PaymentToken: "tok_visa"}).
					Return([]models.Ticket{{
						ID:             "t-1",
						EventID:        "ev-1",
						OwnerID:        "user123",
						Status:         models.TicketActive,
						RedemptionCode: "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
						CodeHash:       "secret-digest",
					}}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var resp CommitResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))

				assert.Equal(t, "OK", resp.Status)
				require.Len(t, resp.Tickets, 1)
				assert.Equal(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZ", resp.Tickets[0].RedemptionCode)
				assert.NotContains(t, body, "secret-digest")
			},
		},
		{
			name:           "Missing payment token",
			requestBody:    `{}`,
			mockSetup:      func(m *mocks.HoldCommitter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field PaymentToken is a required field"}`,
		},
		{
			name:        "Hold expired",
			requestBody: `{"payment_token": "tok_visa"}`,
			mockSetup: func(m *mocks.HoldCommitter) {
				m.On("Commit", mock.Anything, "hold-1", booking.CommitInput{PaymentToken: "tok_visa"}).
					Return(nil, fmt.Errorf("booking.Commit: %w", models.ErrHoldExpired))
			},
			expectedStatus: http.StatusGone,
			expectedBody:   `{"status":"Error","error":"hold expired"}`,
		},
		{
			name:        "Payment declined",
			requestBody: `{"payment_token": "decline_card"}`,
			mockSetup: func(m *mocks.HoldCommitter) {
				m.On("Commit", mock.Anything, "hold-1", booking.CommitInput{PaymentToken: "decline_card"}).
					Return(nil, fmt.Errorf("booking.Commit: %w", models.ErrPaymentDeclined))
			},
			expectedStatus: http.StatusPaymentRequired,
			expectedBody:   `{"status":"Error","error":"payment declined"}`,
		},
		{
			name:        "Already committed",
			requestBody: `{"payment_token": "tok_visa"}`,
			mockSetup: func(m *mocks.HoldCommitter) {
				m.On("Commit", mock.Anything, "hold-1", booking.CommitInput{PaymentToken: "tok_visa"}).
					Return(nil, fmt.Errorf("booking.Commit: %w", models.ErrInvalidState))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"invalid state"}`,
		},
		{
			name:        "Internal error",
			requestBody: `{"payment_token": "tok_visa"}`,
			mockSetup: func(m *mocks.HoldCommitter) {
				m.On("Commit", mock.Anything, "hold-1", booking.CommitInput{PaymentToken: "tok_visa"}).
					Return(nil, errors.New("entropy exhausted"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to commit hold"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockCommitter := mocks.NewHoldCommitter(t)
			tc.mockSetup(mockCommitter)

			router := chi.NewRouter()
			router.Post("/holds/{id}/commit", New(logger, mockCommitter))

			req := httptest.NewRequest(http.MethodPost, "/holds/hold-1/commit", bytes.NewBufferString(tc.requestBody))
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}

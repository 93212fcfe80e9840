package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/pestbooking/internal/domain"
	"github.com/Domenick1991/pestbooking/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Submit(ctx context.Context, record domain.Record) (*domain.Booking, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func TestBookingHandler_get(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	token := "token123"
	c.Params = gin.Params{{Key: "token", Value: token}}
	c.Request = httptest.NewRequest("GET", "/bookings/"+token, nil)

	booking := &domain.Booking{
		ID:        1,
		Token:     token,
		Status:    domain.BookingStatusRequested,
		Record:    domain.Record{Email: "test@example.com", Date: "2025-10-14", Time: "10h00", Slug: "rongeur"},
		CreatedAt: time.Date(2025, time.October, 13, 9, 0, 0, 0, time.UTC),
	}

	mockService.On("GetByToken", c.Request.Context(), token).Return(booking, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, token, response.Token)
	assert.Equal(t, string(domain.BookingStatusRequested), response.Status)
	assert.Equal(t, "2025-10-13T09:00:00Z", response.CreatedAt)
	assert.Equal(t, "2025-10-14", response.Record.Date)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_get_errors(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", repository.ErrBookingNotFound, http.StatusNotFound},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "token", Value: "missing"}}
			c.Request = httptest.NewRequest("GET", "/bookings/missing", nil)

			mockService.On("GetByToken", c.Request.Context(), "missing").Return(nil, tc.err)

			handler.get(c)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.err.Error())
		})
	}
}

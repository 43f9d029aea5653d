package reschedule_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*rescheduleBooking.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type dispatcherStub struct{ calls int }

func (d *dispatcherStub) Dispatch(context.Context, domain.BookingEvents) int {
	d.calls++
	return 0
}

var owner = domain.Actor{UserID: 7, Role: domain.RoleUser}

func serve(h *Handler, bookingID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	req = req.WithContext(middleware.WithActor(req.Context(), owner))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

const body = `{"startTime":"2025-03-10T11:00","endTime":"2025-03-10T12:00"}`

func TestHandle_Success(t *testing.T) {
	msk := time.FixedZone("UTC+3", 3*60*60)
	uc := &mockUseCase{}
	dispatcher := &dispatcherStub{}
	h := NewHandler(uc, dispatcher, msk, logger.NewNop())

	// Время без зоны читается в часовом поясе сервиса
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *rescheduleBooking.Request) bool {
		return r.BookingID == 42 && r.StartTime.Equal(time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC))
	})).Return(&rescheduleBooking.Response{ID: 42, Status: "pending"}, nil)

	rec := serve(h, "42", body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, dispatcher.calls)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: rescheduleBooking.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "forbidden", err: rescheduleBooking.ErrForbidden, status: http.StatusForbidden},
		{name: "not reschedulable", err: rescheduleBooking.ErrNotReschedulable, status: http.StatusConflict},
		{name: "overlap", err: fmt.Errorf("%w: %w", rescheduleBooking.ErrRejected, validator.ErrOverlapsExistingBooking), status: http.StatusConflict},
		{name: "outside window", err: fmt.Errorf("%w: %w", rescheduleBooking.ErrRejected, validator.ErrOutsideAvailabilityWindow), status: http.StatusUnprocessableEntity},
		{name: "internal", err: rescheduleBooking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			dispatcher := &dispatcherStub{}
			h := NewHandler(uc, dispatcher, time.UTC, logger.NewNop())
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(h, "42", body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Zero(t, dispatcher.calls)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, &dispatcherStub{}, time.UTC, logger.NewNop())

	rec := serve(h, "abc", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

package change_booking_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	changeStatus "github.com/m04kA/SMC-RoomBookingService/internal/usecase/change_booking_status"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *changeStatus.Request) (*changeStatus.Response, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*changeStatus.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type dispatcherStub struct{ calls int }

func (d *dispatcherStub) Dispatch(context.Context, domain.BookingEvents) int {
	d.calls++
	return 0
}

var (
	admin   = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	student = domain.Actor{UserID: 7, Role: domain.RoleUser}
)

func serve(h *Handler, actor domain.Actor, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/42/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": "42"})
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Admin(t *testing.T) {
	uc := &mockUseCase{}
	dispatcher := &dispatcherStub{}
	h := NewHandler(uc, dispatcher, time.UTC, logger.NewNop())

	uc.On("Execute", mock.Anything, &changeStatus.Request{Actor: admin, BookingID: 42, Status: domain.StatusApproved}).
		Return(&changeStatus.Response{ID: 42, Status: "approved", PreviousStatus: "pending"}, nil)

	rec := serve(h, admin, `{"status":"approved"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pending", body["previousStatus"])
	assert.Equal(t, 1, dispatcher.calls)
}

func TestHandle_NonAdminForbidden(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, &dispatcherStub{}, time.UTC, logger.NewNop())

	rec := serve(h, student, `{"status":"approved"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_InvalidStatus(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, &dispatcherStub{}, time.UTC, logger.NewNop())

	rec := serve(h, admin, `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: changeStatus.ErrBookingNotFound, status: http.StatusNotFound},
		{err: changeStatus.ErrOverlapsActiveBooking, status: http.StatusConflict},
		{err: changeStatus.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			dispatcher := &dispatcherStub{}
			h := NewHandler(uc, dispatcher, time.UTC, logger.NewNop())
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(h, admin, `{"status":"pending"}`)
			assert.Equal(t, tt.status, rec.Code)
			assert.Zero(t, dispatcher.calls)
		})
	}
}

package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64, loc *time.Location) (*rescheduleBooking.Request, error) {
	start, err := handlers.ParseTimestamp(r.StartTime, loc)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	end, err := handlers.ParseTimestamp(r.EndTime, loc)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &rescheduleBooking.Request{
		Actor:     actor,
		BookingID: bookingID,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response, loc *time.Location) *handlers.BookingResponse {
	return &handlers.BookingResponse{
		ID:        resp.ID,
		UserID:    resp.UserID,
		RoomID:    resp.RoomID,
		StartTime: resp.StartTime.In(loc),
		EndTime:   resp.EndTime.In(loc),
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt,
		UpdatedAt: resp.UpdatedAt,
	}
}

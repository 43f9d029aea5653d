package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID    int64   `json:"roomId" validate:"required,gt=0"`
	StartTime string  `json:"startTime" validate:"required"` // RFC 3339 или "2025-03-10T09:00" в часовом поясе сервиса
	EndTime   string  `json:"endTime" validate:"required"`
	UserID    *int64  `json:"userId,omitempty" validate:"omitempty,gt=0"`                                          // Только для администратора
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=pending approved cancelled completed"` // Только для администратора
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor, loc *time.Location) (*createBooking.Request, error) {
	start, err := handlers.ParseTimestamp(r.StartTime, loc)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	end, err := handlers.ParseTimestamp(r.EndTime, loc)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	req := &createBooking.Request{
		Actor:     actor,
		UserID:    r.UserID,
		RoomID:    r.RoomID,
		StartTime: start,
		EndTime:   end,
	}
	if r.Status != nil {
		status := domain.BookingStatus(*r.Status)
		req.Status = &status
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *handlers.BookingResponse {
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

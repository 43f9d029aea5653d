package change_booking_status

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	changeStatus "github.com/m04kA/SMC-RoomBookingService/internal/usecase/change_booking_status"
)

// ChangeStatusRequest HTTP request model
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved cancelled completed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *changeStatus.Response, loc *time.Location) *handlers.BookingResponse {
	return &handlers.BookingResponse{
		ID:             resp.ID,
		UserID:         resp.UserID,
		RoomID:         resp.RoomID,
		StartTime:      resp.StartTime.In(loc),
		EndTime:        resp.EndTime.In(loc),
		Status:         resp.Status,
		PreviousStatus: resp.PreviousStatus,
		CreatedAt:      resp.CreatedAt,
		UpdatedAt:      resp.UpdatedAt,
	}
}

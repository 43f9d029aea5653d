package create_availability_window

import "github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"

// CreateWindowRequest HTTP request model
type CreateWindowRequest struct {
	DayOfWeek   string `json:"dayOfWeek" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	IsAvailable *bool  `json:"isAvailable,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateWindowRequest) ToServiceRequest(roomID int64) *models.CreateWindowRequest {
	return &models.CreateWindowRequest{
		RoomID:      roomID,
		DayOfWeek:   r.DayOfWeek,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsAvailable: r.IsAvailable,
	}
}

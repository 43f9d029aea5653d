package create_room

import "github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"

// CreateRoomRequest HTTP request model
type CreateRoomRequest struct {
	RoomNumber string `json:"roomNumber" validate:"required,max=10"`
	RoomTypeID int64  `json:"roomTypeId" validate:"required,gt=0"`
	Capacity   int    `json:"capacity" validate:"required,gt=0"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateRoomRequest) ToServiceRequest() *models.CreateRoomRequest {
	return &models.CreateRoomRequest{
		RoomNumber: r.RoomNumber,
		RoomTypeID: r.RoomTypeID,
		Capacity:   r.Capacity,
	}
}

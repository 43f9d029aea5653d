package create_room_type

import "github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"

// CreateRoomTypeRequest HTTP request model
type CreateRoomTypeRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateRoomTypeRequest) ToServiceRequest() *models.CreateRoomTypeRequest {
	return &models.CreateRoomTypeRequest{
		Name:        r.Name,
		Description: r.Description,
	}
}

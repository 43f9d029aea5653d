package login

import "github.com/m04kA/SMC-RoomBookingService/internal/service/users/models"

// LoginRequest HTTP request model
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *LoginRequest) ToServiceRequest() *models.LoginRequest {
	return &models.LoginRequest{
		Email:    r.Email,
		Password: r.Password,
	}
}

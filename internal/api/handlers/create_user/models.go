package create_user

import "github.com/m04kA/SMC-RoomBookingService/internal/service/users/models"

// CreateUserRequest HTTP request model
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateUserRequest) ToServiceRequest() *models.CreateUserRequest {
	return &models.CreateUserRequest{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
	}
}

package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// CreateUserRequest запрос на создание пользователя
type CreateUserRequest struct {
	Name     string
	Email    string
	Password string
	Role     string // По умолчанию user
}

// LoginRequest проверка учетных данных
type LoginRequest struct {
	Email    string
	Password string
}

// UserResponse ответ с данными пользователя (без хеша пароля)
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserListResponse ответ со списком пользователей
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// LoginResponse идентификатор и роль, которые клиент передает в X-User-ID
type LoginResponse struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// FromDomainUser конвертирует пользователя в DTO
func FromDomainUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

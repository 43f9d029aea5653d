package models

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// Request модели

// CreateRoomRequest запрос на создание комнаты
type CreateRoomRequest struct {
	RoomNumber string
	RoomTypeID int64
	Capacity   int
}

// CreateRoomTypeRequest запрос на создание типа комнаты
type CreateRoomTypeRequest struct {
	Name        string
	Description string
}

// CreateWindowRequest запрос на добавление окна доступности
type CreateWindowRequest struct {
	RoomID      int64
	DayOfWeek   string
	StartTime   string // "09:00"
	EndTime     string // "18:00"
	IsAvailable *bool  // По умолчанию true
}

// Response модели

// RoomResponse ответ с данными комнаты
type RoomResponse struct {
	ID           int64  `json:"id"`
	RoomNumber   string `json:"roomNumber"`
	RoomTypeID   int64  `json:"roomTypeId"`
	RoomTypeName string `json:"roomTypeName,omitempty"`
	Capacity     int    `json:"capacity"`
}

// RoomListResponse ответ со списком комнат
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// RoomTypeResponse ответ с данными типа комнаты
type RoomTypeResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RoomTypeListResponse ответ со списком типов комнат
type RoomTypeListResponse struct {
	RoomTypes []RoomTypeResponse `json:"roomTypes"`
}

// WindowResponse ответ с данными окна доступности
type WindowResponse struct {
	ID          int64            `json:"id"`
	RoomID      int64            `json:"roomId"`
	DayOfWeek   string           `json:"dayOfWeek"`
	StartTime   types.TimeString `json:"startTime"`
	EndTime     types.TimeString `json:"endTime"`
	IsAvailable bool             `json:"isAvailable"`
}

// WindowListResponse ответ со списком окон комнаты
type WindowListResponse struct {
	RoomID  int64            `json:"roomId"`
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainRoom конвертирует комнату в DTO
func FromDomainRoom(r *domain.Room) RoomResponse {
	return RoomResponse{
		ID:           r.ID,
		RoomNumber:   r.RoomNumber,
		RoomTypeID:   r.RoomTypeID,
		RoomTypeName: r.RoomTypeName,
		Capacity:     r.Capacity,
	}
}

// FromDomainRoomType конвертирует тип комнаты в DTO
func FromDomainRoomType(t *domain.RoomType) RoomTypeResponse {
	return RoomTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
	}
}

// FromDomainWindow конвертирует окно доступности в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) WindowResponse {
	return WindowResponse{
		ID:          w.ID,
		RoomID:      w.RoomID,
		DayOfWeek:   string(w.DayOfWeek),
		StartTime:   w.StartTime,
		EndTime:     w.EndTime,
		IsAvailable: w.IsAvailable,
	}
}

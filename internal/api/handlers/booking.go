package handlers

import "time"

// BookingResponse бронирование в ответах обработчиков, меняющих бронирование
type BookingResponse struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	RoomID         int64     `json:"roomId"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// NotificationResponse ответ с данными уведомления
type NotificationResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	BookingID *int64    `json:"bookingId"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse ответ со списком уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Unread        int                    `json:"unread"`
}

// ActionLogResponse запись журнала действий
type ActionLogResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"createdAt"`
}

// ActionLogListResponse страница журнала действий
type ActionLogListResponse struct {
	Entries []ActionLogResponse `json:"entries"`
	Limit   uint64              `json:"limit"`
	Offset  uint64              `json:"offset"`
}

// FromDomainNotification конвертирует уведомление в DTO
func FromDomainNotification(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		BookingID: n.BookingID,
		Message:   n.Message,
		Status:    string(n.Status),
		CreatedAt: n.CreatedAt,
	}
}

// FromDomainActionLog конвертирует запись журнала в DTO
func FromDomainActionLog(l *domain.ActionLog) ActionLogResponse {
	return ActionLogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		Action:    l.Action,
		CreatedAt: l.CreatedAt,
	}
}

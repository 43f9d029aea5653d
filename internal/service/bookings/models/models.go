package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модели

// ListBookingsRequest фильтр списка бронирований для администратора
type ListBookingsRequest struct {
	Actor           domain.Actor
	RoomID          *int64
	UserID          *int64
	Status          *string
	From            *time.Time
	To              *time.Time
	IncludeInactive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		RoomID:          r.RoomID,
		UserID:          r.UserID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	RoomID    int64     `json:"roomId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// GroupedBookingsResponse бронирования пользователя, разложенные относительно сегодняшнего дня
type GroupedBookingsResponse struct {
	Date   string            `json:"date"` // Сегодняшняя дата, "2025-03-10"
	Past   []BookingResponse `json:"past"`
	Today  []BookingResponse `json:"today"`
	Future []BookingResponse `json:"future"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		RoomID:    b.RoomID,
		StartTime: b.StartTime.In(loc),
		EndTime:   b.EndTime.In(loc),
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, loc); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

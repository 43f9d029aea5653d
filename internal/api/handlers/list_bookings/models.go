package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Параметр date задает сутки [date 00:00, date+1 00:00) в часовом поясе сервиса
// и не сочетается с from/to.
func ToServiceRequest(actor domain.Actor, query url.Values, loc *time.Location) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{Actor: actor}

	var err error
	if req.RoomID, err = parseID(query.Get("roomId")); err != nil {
		return nil, fmt.Errorf("roomId: %w", err)
	}
	if req.UserID, err = parseID(query.Get("userId")); err != nil {
		return nil, fmt.Errorf("userId: %w", err)
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if dateStr := query.Get("date"); dateStr != "" {
		if query.Get("from") != "" || query.Get("to") != "" {
			return nil, fmt.Errorf("date cannot be combined with from/to")
		}
		date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		next := date.AddDate(0, 0, 1)
		req.From, req.To = &date, &next
	}

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := handlers.ParseTimestamp(fromStr, loc)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		req.From = &from
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := handlers.ParseTimestamp(toStr, loc)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		req.To = &to
	}

	if includeInactiveStr := query.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

func parseID(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("must be positive, got %d", id)
	}
	return &id, nil
}

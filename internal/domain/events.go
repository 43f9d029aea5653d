package domain

import "time"

// NotificationStatus of a notification
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// Notification is a message addressed to one user, optionally about a booking
type Notification struct {
	ID        int64
	UserID    int64
	BookingID *int64
	Message   string
	Status    NotificationStatus
	CreatedAt time.Time
}

// ActionLog is an audit record naming the acting user
type ActionLog struct {
	ID        int64
	UserID    int64
	Action    string
	CreatedAt time.Time
}

// BookingEvents side effects of a booking mutation, delivered after the mutation is committed.
// Delivery may fail without affecting the booking.
type BookingEvents struct {
	Notifications []Notification
	ActionLogs    []ActionLog
}

// IsEmpty returns true if there is nothing to dispatch
func (e BookingEvents) IsEmpty() bool {
	return len(e.Notifications) == 0 && len(e.ActionLogs) == 0
}

// NewBookingEvents addresses message to the booking owner and to every administrator
// (each recipient once) and records action on behalf of actorID.
func NewBookingEvents(booking *Booking, actorID int64, adminIDs []int64, message, action string) BookingEvents {
	bookingID := booking.ID
	recipients := make([]int64, 0, len(adminIDs)+1)
	seen := make(map[int64]struct{}, len(adminIDs)+1)

	for _, id := range append([]int64{booking.UserID}, adminIDs...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		recipients = append(recipients, id)
	}

	events := BookingEvents{
		Notifications: make([]Notification, 0, len(recipients)),
		ActionLogs:    []ActionLog{{UserID: actorID, Action: action}},
	}
	for _, userID := range recipients {
		events.Notifications = append(events.Notifications, Notification{
			UserID:    userID,
			BookingID: &bookingID,
			Message:   message,
			Status:    NotificationUnread,
		})
	}

	return events
}

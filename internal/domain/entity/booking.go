package entity

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusAccepted BookingStatus = "accepted"
	BookingStatusDeclined BookingStatus = "declined"
)

// bookingTransitions lists, per target status, the statuses it may be
// reached from. Accepted and declined are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusAccepted: {BookingStatusPending},
	BookingStatusDeclined: {BookingStatusPending},
}

func ValidBookingTransition(from, to BookingStatus) bool {
	allowed, ok := bookingTransitions[to]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == from {
			return true
		}
	}
	return false
}

// Booking is a client's request for a specific mover at a date and time.
type Booking struct {
	ID          string        `json:"id" firestore:"-"`
	ClientID    string        `json:"client_id" firestore:"clientId"`
	ClientEmail string        `json:"client_email" firestore:"clientEmail"`
	MoverID     string        `json:"mover_id" firestore:"moverId"`
	MoverName   string        `json:"mover_name" firestore:"moverName"`
	Date        string        `json:"date" firestore:"date"`
	Time        string        `json:"time" firestore:"time"`
	Status      BookingStatus `json:"status" firestore:"status"`
	CreatedAt   time.Time     `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time     `json:"updated_at,omitempty" firestore:"updatedAt,omitempty"`
}

// IsParticipant reports whether uid is the booking's client or mover.
func (b *Booking) IsParticipant(uid string) bool {
	return uid != "" && (uid == b.ClientID || uid == b.MoverID)
}

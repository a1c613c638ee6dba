package entity

import (
	"sort"
	"time"
)

type SenderRole string

const (
	SenderClient SenderRole = "client"
	SenderMover  SenderRole = "mover"
)

// Message is one chat line under bookings/{bookingId}/messages.
type Message struct {
	ID         string     `json:"id" firestore:"-"`
	BookingID  string     `json:"booking_id" firestore:"-"`
	Text       string     `json:"message" firestore:"message"`
	Sender     SenderRole `json:"sender" firestore:"sender"`
	SenderName string     `json:"sender_name" firestore:"senderName"`
	Timestamp  time.Time  `json:"timestamp" firestore:"timestamp"`
}

// SortMessages orders messages by timestamp ascending. Equal timestamps
// keep their incoming order.
func SortMessages(messages []*Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
}

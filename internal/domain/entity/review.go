package entity

import (
	"time"
)

// Review is left by a client once a booking has been accepted.
type Review struct {
	ID        string    `json:"id" firestore:"-"`
	BookingID string    `json:"booking_id" firestore:"bookingId"`
	MoverID   string    `json:"mover_id" firestore:"moverId"`
	ClientID  string    `json:"client_id" firestore:"clientId"`
	Rating    int       `json:"rating" firestore:"rating"` // 1-5
	Comment   string    `json:"comment" firestore:"comment"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

const (
	MinRating = 1
	MaxRating = 5
)

// AverageRating returns the mean rounded half-up to one decimal, or 0
// when there are no ratings.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	// Round in integer tenths so x.x5 never lands on the wrong side of a
	// float boundary.
	n := len(ratings)
	tenths := (20*sum + n) / (2 * n)
	return float64(tenths) / 10
}

type MoverRating struct {
	MoverID string    `json:"mover_id"`
	Average float64   `json:"average"`
	Count   int       `json:"count"`
	Reviews []*Review `json:"reviews"`
}

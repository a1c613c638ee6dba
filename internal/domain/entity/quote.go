package entity

import (
	"time"
)

// QuoteStatusPending is the only status ever persisted on a quote.
const QuoteStatusPending = "pending"

type Quote struct {
	ID         string    `json:"id" firestore:"-"`
	RequestID  string    `json:"request_id" firestore:"requestId"`
	ClientID   string    `json:"client_id" firestore:"clientId"`
	MoverID    string    `json:"mover_id" firestore:"moverId"`
	MoverName  string    `json:"mover_name" firestore:"moverName"`
	MoverEmail string    `json:"mover_email" firestore:"moverEmail"`
	Amount     float64   `json:"amount" firestore:"amount"`
	Notes      string    `json:"notes" firestore:"notes"`
	Status     string    `json:"status" firestore:"status"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}

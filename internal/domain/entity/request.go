package entity

import (
	"time"
)

// ClientRequest is a move posted by a client at users/{clientId}/requests/{id}.
// ClientID always comes from the owner path.
type ClientRequest struct {
	ID          string    `json:"id" firestore:"-"`
	ClientID    string    `json:"client_id" firestore:"-"`
	Name        string    `json:"name" firestore:"name"`
	Address     string    `json:"address" firestore:"address"`
	Contact     string    `json:"contact" firestore:"contact"`
	Description string    `json:"description" firestore:"description"`
	Date        string    `json:"date" firestore:"date"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}

package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/pkg/errors"
)

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) messages(bookingID string) *firestore.CollectionRef {
	return r.client.Collection("bookings").Doc(bookingID).Collection("messages")
}

func decodeMessage(doc *firestore.DocumentSnapshot) (*entity.Message, error) {
	var m entity.Message
	if err := doc.DataTo(&m); err != nil {
		return nil, errors.Internal("Failed to parse message data", err)
	}
	m.ID = doc.Ref.ID
	if booking := doc.Ref.Parent.Parent; booking != nil {
		m.BookingID = booking.ID
	}
	return &m, nil
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.Timestamp = time.Now()

	_, err := r.messages(message.BookingID).Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to send message", err)
	}
	return nil
}

func (r *firestoreMessageRepository) ListByBooking(ctx context.Context, bookingID string) ([]*entity.Message, error) {
	query := r.messages(bookingID).OrderBy("timestamp", firestore.Asc)
	messages, err := collect(query.Documents(ctx), decodeMessage)
	if err != nil {
		return nil, err
	}
	entity.SortMessages(messages)
	return messages, nil
}

func (r *firestoreMessageRepository) WatchByBooking(ctx context.Context, bookingID string, fn func([]*entity.Message)) error {
	query := r.messages(bookingID).OrderBy("timestamp", firestore.Asc)
	return watchQuery(ctx, query, decodeMessage, entity.SortMessages, fn)
}

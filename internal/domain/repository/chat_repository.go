package repository

import (
	"context"

	"moverconnect/internal/domain/entity"
)

// MessageRepository stores the chat thread attached to each booking.
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	ListByBooking(ctx context.Context, bookingID string) ([]*entity.Message, error)
	WatchByBooking(ctx context.Context, bookingID string, fn func([]*entity.Message)) error
}

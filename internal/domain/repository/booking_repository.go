package repository

import (
	"context"

	"moverconnect/internal/domain/entity"
)

// BookingFilter selects bookings by participant. Exactly one field is
// expected to be set.
type BookingFilter struct {
	ClientID string
	MoverID  string
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	// UpdateStatus moves the booking from one status to another and fails
	// with INVALID_TRANSITION if the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to entity.BookingStatus) error
	List(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error)
	Watch(ctx context.Context, filter BookingFilter, fn func([]*entity.Booking)) error
}

type RequestRepository interface {
	Create(ctx context.Context, request *entity.ClientRequest) error
	Get(ctx context.Context, clientID, requestID string) (*entity.ClientRequest, error)
	// ListAll spans every client, newest first.
	ListAll(ctx context.Context) ([]*entity.ClientRequest, error)
	ListByClient(ctx context.Context, clientID string) ([]*entity.ClientRequest, error)
	WatchAll(ctx context.Context, fn func([]*entity.ClientRequest)) error
}

package repository

import (
	"context"

	"moverconnect/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	ExistsForBooking(ctx context.Context, bookingID, clientID string) (bool, error)
	ListByMover(ctx context.Context, moverID string) ([]*entity.Review, error)
	ListByClient(ctx context.Context, clientID string) ([]*entity.Review, error)
}

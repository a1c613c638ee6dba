package repository

import (
	"context"

	"moverconnect/internal/domain/entity"
)

type QuoteFilter struct {
	ClientID string
	MoverID  string
}

type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	List(ctx context.Context, filter QuoteFilter) ([]*entity.Quote, error)
	Watch(ctx context.Context, filter QuoteFilter, fn func([]*entity.Quote)) error
}

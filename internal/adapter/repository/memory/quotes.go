package memory

import (
	"context"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
)

type quoteRepository struct {
	s *Store
}

func NewQuoteRepository(s *Store) repository.QuoteRepository {
	return &quoteRepository{s: s}
}

func (r *quoteRepository) Create(_ context.Context, q *entity.Quote) error {
	r.s.mu.Lock()
	if q.ID == "" {
		q.ID = r.s.newID()
	}
	q.CreatedAt = r.s.now()
	r.s.quotes.put(q.ID, *q)
	r.s.mu.Unlock()

	r.s.notify(TopicQuotes)
	return nil
}

func (r *quoteRepository) list(filter repository.QuoteFilter) []*entity.Quote {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Quote, 0)
	r.s.quotes.eachNewest(func(_ string, q entity.Quote) {
		if filter.ClientID != "" && q.ClientID != filter.ClientID {
			return
		}
		if filter.MoverID != "" && q.MoverID != filter.MoverID {
			return
		}
		out = append(out, &q)
	})
	return out
}

func (r *quoteRepository) List(_ context.Context, filter repository.QuoteFilter) ([]*entity.Quote, error) {
	return r.list(filter), nil
}

func (r *quoteRepository) Watch(ctx context.Context, filter repository.QuoteFilter, fn func([]*entity.Quote)) error {
	return r.s.watch(ctx, TopicQuotes, func() {
		fn(r.list(filter))
	})
}

package memory

import (
	"context"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/pkg/errors"
)

type bookingRepository struct {
	s *Store
}

func NewBookingRepository(s *Store) repository.BookingRepository {
	return &bookingRepository{s: s}
}

func (r *bookingRepository) Create(_ context.Context, b *entity.Booking) error {
	r.s.mu.Lock()
	if b.ID == "" {
		b.ID = r.s.newID()
	}
	b.CreatedAt = r.s.now()
	r.s.bookings.put(b.ID, *b)
	r.s.mu.Unlock()

	r.s.notify(TopicBookings)
	return nil
}

func (r *bookingRepository) GetByID(_ context.Context, id string) (*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings.get(id)
	if !ok {
		return nil, errors.NotFound("Booking", nil)
	}
	return &b, nil
}

func (r *bookingRepository) UpdateStatus(_ context.Context, id string, from, to entity.BookingStatus) error {
	r.s.mu.Lock()
	b, ok := r.s.bookings.get(id)
	if !ok {
		r.s.mu.Unlock()
		return errors.NotFound("Booking", nil)
	}
	if b.Status != from {
		r.s.mu.Unlock()
		return errors.InvalidTransition(string(b.Status), string(to))
	}
	b.Status = to
	b.UpdatedAt = r.s.now()
	r.s.bookings.put(id, b)
	r.s.mu.Unlock()

	r.s.notify(TopicBookings)
	return nil
}

func (r *bookingRepository) list(filter repository.BookingFilter) []*entity.Booking {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Booking, 0)
	r.s.bookings.eachNewest(func(_ string, b entity.Booking) {
		if filter.ClientID != "" && b.ClientID != filter.ClientID {
			return
		}
		if filter.MoverID != "" && b.MoverID != filter.MoverID {
			return
		}
		out = append(out, &b)
	})
	return out
}

func (r *bookingRepository) List(_ context.Context, filter repository.BookingFilter) ([]*entity.Booking, error) {
	return r.list(filter), nil
}

func (r *bookingRepository) Watch(ctx context.Context, filter repository.BookingFilter, fn func([]*entity.Booking)) error {
	return r.s.watch(ctx, TopicBookings, func() {
		fn(r.list(filter))
	})
}

type requestRepository struct {
	s *Store
}

func NewRequestRepository(s *Store) repository.RequestRepository {
	return &requestRepository{s: s}
}

func requestKey(clientID, requestID string) string {
	return clientID + "/" + requestID
}

func (r *requestRepository) Create(_ context.Context, req *entity.ClientRequest) error {
	r.s.mu.Lock()
	if req.ID == "" {
		req.ID = r.s.newID()
	}
	req.CreatedAt = r.s.now()
	r.s.requests.put(requestKey(req.ClientID, req.ID), *req)
	r.s.mu.Unlock()

	r.s.notify(TopicRequests)
	return nil
}

func (r *requestRepository) Get(_ context.Context, clientID, requestID string) (*entity.ClientRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, ok := r.s.requests.get(requestKey(clientID, requestID))
	if !ok {
		return nil, errors.NotFound("Request", nil)
	}
	return &req, nil
}

func (r *requestRepository) list(clientID string) []*entity.ClientRequest {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.ClientRequest, 0)
	r.s.requests.eachNewest(func(_ string, req entity.ClientRequest) {
		if clientID != "" && req.ClientID != clientID {
			return
		}
		out = append(out, &req)
	})
	return out
}

func (r *requestRepository) ListAll(_ context.Context) ([]*entity.ClientRequest, error) {
	return r.list(""), nil
}

func (r *requestRepository) ListByClient(_ context.Context, clientID string) ([]*entity.ClientRequest, error) {
	return r.list(clientID), nil
}

func (r *requestRepository) WatchAll(ctx context.Context, fn func([]*entity.ClientRequest)) error {
	return r.s.watch(ctx, TopicRequests, func() {
		fn(r.list(""))
	})
}

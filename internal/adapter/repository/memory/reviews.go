package memory

import (
	"context"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
)

type reviewRepository struct {
	s *Store
}

func NewReviewRepository(s *Store) repository.ReviewRepository {
	return &reviewRepository{s: s}
}

func (r *reviewRepository) Create(_ context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	if review.ID == "" {
		review.ID = r.s.newID()
	}
	review.CreatedAt = r.s.now()
	r.s.reviews.put(review.ID, *review)
	r.s.mu.Unlock()

	r.s.notify(TopicReviews)
	return nil
}

func (r *reviewRepository) ExistsForBooking(_ context.Context, bookingID, clientID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	found := false
	r.s.reviews.each(func(_ string, review entity.Review) {
		if review.BookingID == bookingID && review.ClientID == clientID {
			found = true
		}
	})
	return found, nil
}

func (r *reviewRepository) list(match func(entity.Review) bool) []*entity.Review {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Review, 0)
	r.s.reviews.eachNewest(func(_ string, review entity.Review) {
		if match(review) {
			out = append(out, &review)
		}
	})
	return out
}

func (r *reviewRepository) ListByMover(_ context.Context, moverID string) ([]*entity.Review, error) {
	return r.list(func(review entity.Review) bool { return review.MoverID == moverID }), nil
}

func (r *reviewRepository) ListByClient(_ context.Context, clientID string) ([]*entity.Review, error) {
	return r.list(func(review entity.Review) bool { return review.ClientID == clientID }), nil
}

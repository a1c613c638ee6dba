package memory

import (
	"context"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
)

type messageRepository struct {
	s *Store
}

func NewMessageRepository(s *Store) repository.MessageRepository {
	return &messageRepository{s: s}
}

func (r *messageRepository) Create(_ context.Context, m *entity.Message) error {
	r.s.mu.Lock()
	if m.ID == "" {
		m.ID = r.s.newID()
	}
	m.Timestamp = r.s.now()
	r.s.messages.put(m.ID, *m)
	r.s.mu.Unlock()

	r.s.notify(MessageTopic(m.BookingID))
	return nil
}

func (r *messageRepository) list(bookingID string) []*entity.Message {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Message, 0)
	r.s.messages.each(func(_ string, m entity.Message) {
		if m.BookingID == bookingID {
			out = append(out, &m)
		}
	})
	entity.SortMessages(out)
	return out
}

func (r *messageRepository) ListByBooking(_ context.Context, bookingID string) ([]*entity.Message, error) {
	return r.list(bookingID), nil
}

func (r *messageRepository) WatchByBooking(ctx context.Context, bookingID string, fn func([]*entity.Message)) error {
	return r.s.watch(ctx, MessageTopic(bookingID), func() {
		fn(r.list(bookingID))
	})
}

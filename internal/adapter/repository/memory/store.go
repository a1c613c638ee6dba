// Package memory is an in-process implementation of every repository
// interface, including live watches. It backs DEV_MODE and the tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"moverconnect/internal/domain/entity"
)

const (
	TopicClients  = "clients"
	TopicMovers   = "movers"
	TopicRequests = "requests"
	TopicBookings = "bookings"
	TopicQuotes   = "quotes"
	TopicReviews  = "reviews"
)

// MessageTopic is the watch topic for one booking's thread.
func MessageTopic(bookingID string) string {
	return "messages/" + bookingID
}

// Store holds every collection behind one lock. Watchers subscribe to a
// topic and are signalled after each write to it.
type Store struct {
	mu sync.RWMutex

	clients  *collection[entity.ClientProfile]
	movers   *collection[entity.MoverProfile]
	requests *collection[entity.ClientRequest]
	bookings *collection[entity.Booking]
	quotes   *collection[entity.Quote]
	messages *collection[entity.Message]
	reviews  *collection[entity.Review]

	watchMu  sync.Mutex
	watchers map[string]map[int]chan struct{}
	nextSub  int

	now   func() time.Time
	newID func() string
}

func NewStore() *Store {
	return &Store{
		clients:  newCollection[entity.ClientProfile](),
		movers:   newCollection[entity.MoverProfile](),
		requests: newCollection[entity.ClientRequest](),
		bookings: newCollection[entity.Booking](),
		quotes:   newCollection[entity.Quote](),
		messages: newCollection[entity.Message](),
		reviews:  newCollection[entity.Review](),
		watchers: make(map[string]map[int]chan struct{}),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// SetClock overrides the time source used for server-assigned timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// collection keeps documents in insertion order.
type collection[T any] struct {
	order []string
	docs  map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{docs: make(map[string]T)}
}

func (c *collection[T]) put(id string, v T) {
	if _, ok := c.docs[id]; !ok {
		c.order = append(c.order, id)
	}
	c.docs[id] = v
}

func (c *collection[T]) get(id string) (T, bool) {
	v, ok := c.docs[id]
	return v, ok
}

func (c *collection[T]) remove(id string) {
	if _, ok := c.docs[id]; !ok {
		return
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// each visits documents oldest first.
func (c *collection[T]) each(fn func(id string, v T)) {
	for _, id := range c.order {
		fn(id, c.docs[id])
	}
}

// eachNewest visits documents newest first.
func (c *collection[T]) eachNewest(fn func(id string, v T)) {
	for i := len(c.order) - 1; i >= 0; i-- {
		id := c.order[i]
		fn(id, c.docs[id])
	}
}

func (s *Store) subscribe(topic string) (<-chan struct{}, func()) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	ch := make(chan struct{}, 1)
	id := s.nextSub
	s.nextSub++
	if s.watchers[topic] == nil {
		s.watchers[topic] = make(map[int]chan struct{})
	}
	s.watchers[topic][id] = ch

	return ch, func() {
		s.watchMu.Lock()
		defer s.watchMu.Unlock()
		delete(s.watchers[topic], id)
	}
}

// notify wakes every watcher of topic. Signals coalesce, a watcher that
// is still busy sees one wake-up for many writes.
func (s *Store) notify(topic string) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	for _, ch := range s.watchers[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// watch emits once immediately and again after every write to topic,
// until ctx is done.
func (s *Store) watch(ctx context.Context, topic string, emit func()) error {
	ch, cancel := s.subscribe(topic)
	defer cancel()

	emit()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ch:
			emit()
		}
	}
}

// Subscribers reports how many live watches are open on topic.
func (s *Store) Subscribers(topic string) int {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	return len(s.watchers[topic])
}

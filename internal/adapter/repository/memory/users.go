package memory

import (
	"context"
	"time"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/pkg/errors"
)

type clientRepository struct {
	s *Store
}

func NewClientRepository(s *Store) repository.ClientRepository {
	return &clientRepository{s: s}
}

func (r *clientRepository) Create(_ context.Context, c *entity.ClientProfile) error {
	r.s.mu.Lock()
	c.CreatedAt = r.s.now()
	r.s.clients.put(c.ID, *c)
	r.s.mu.Unlock()

	r.s.notify(TopicClients)
	return nil
}

func (r *clientRepository) GetByID(_ context.Context, uid string) (*entity.ClientProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.clients.get(uid)
	if !ok {
		return nil, errors.NotFound("Client", nil)
	}
	return &c, nil
}

func (r *clientRepository) FindByEmail(_ context.Context, uid, email string) (*entity.ClientProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.clients.get(uid)
	if !ok || c.Email != email {
		return nil, nil
	}
	return &c, nil
}

func (r *clientRepository) Update(_ context.Context, c *entity.ClientProfile) error {
	r.s.mu.Lock()
	existing, ok := r.s.clients.get(c.ID)
	if !ok {
		// Merge semantics: an update creates the document.
		existing = entity.ClientProfile{ID: c.ID}
	}
	if c.Name != "" {
		existing.Name = c.Name
	}
	if c.Phone != "" {
		existing.Phone = c.Phone
	}
	if c.PhotoURL != "" {
		existing.PhotoURL = c.PhotoURL
	}
	if c.Email != "" {
		existing.Email = c.Email
	}
	existing.UpdatedAt = r.s.now()
	r.s.clients.put(c.ID, existing)
	r.s.mu.Unlock()

	r.s.notify(TopicClients)
	return nil
}

func (r *clientRepository) List(_ context.Context) ([]*entity.ClientProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.ClientProfile, 0, len(r.s.clients.docs))
	r.s.clients.eachNewest(func(_ string, c entity.ClientProfile) {
		out = append(out, &c)
	})
	return out, nil
}

func (r *clientRepository) Delete(_ context.Context, uid string) error {
	r.s.mu.Lock()
	r.s.clients.remove(uid)
	r.s.mu.Unlock()

	r.s.notify(TopicClients)
	return nil
}

type moverRepository struct {
	s *Store
}

func NewMoverRepository(s *Store) repository.MoverRepository {
	return &moverRepository{s: s}
}

func copyMover(m entity.MoverProfile) *entity.MoverProfile {
	m.Credentials = append([]string{}, m.Credentials...)
	return &m
}

func (r *moverRepository) Create(_ context.Context, m *entity.MoverProfile) error {
	r.s.mu.Lock()
	m.CreatedAt = r.s.now()
	r.s.movers.put(m.ID, *copyMover(*m))
	r.s.mu.Unlock()

	r.s.notify(TopicMovers)
	return nil
}

func (r *moverRepository) GetByID(_ context.Context, uid string) (*entity.MoverProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.movers.get(uid)
	if !ok {
		return nil, errors.NotFound("Mover", nil)
	}
	return copyMover(m), nil
}

func (r *moverRepository) FindByEmail(_ context.Context, uid, email string) (*entity.MoverProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.movers.get(uid)
	if !ok || m.Email != email {
		return nil, nil
	}
	return copyMover(m), nil
}

func (r *moverRepository) list(filter repository.MoverFilter) []*entity.MoverProfile {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.MoverProfile, 0, len(r.s.movers.docs))
	r.s.movers.eachNewest(func(_ string, m entity.MoverProfile) {
		if filter.Verification != "" && m.Verification() != filter.Verification {
			return
		}
		out = append(out, copyMover(m))
	})
	return out
}

func (r *moverRepository) List(_ context.Context, filter repository.MoverFilter) ([]*entity.MoverProfile, error) {
	return r.list(filter), nil
}

func (r *moverRepository) Watch(ctx context.Context, filter repository.MoverFilter, fn func([]*entity.MoverProfile)) error {
	return r.s.watch(ctx, TopicMovers, func() {
		fn(r.list(filter))
	})
}

// mutate applies fn to a stored mover and signals watchers.
func (r *moverRepository) mutate(uid string, fn func(m *entity.MoverProfile)) error {
	r.s.mu.Lock()
	m, ok := r.s.movers.get(uid)
	if !ok {
		r.s.mu.Unlock()
		return errors.NotFound("Mover", nil)
	}
	fn(&m)
	r.s.movers.put(uid, m)
	r.s.mu.Unlock()

	r.s.notify(TopicMovers)
	return nil
}

func (r *moverRepository) UpdateProfile(_ context.Context, in *entity.MoverProfile) error {
	now := r.s.now()
	return r.mutate(in.ID, func(m *entity.MoverProfile) {
		if in.CompanyName != "" {
			m.CompanyName = in.CompanyName
		}
		if in.Name != "" {
			m.Name = in.Name
		}
		if in.ServiceArea != "" {
			m.ServiceArea = in.ServiceArea
		}
		if in.ContactNumber != "" {
			m.ContactNumber = in.ContactNumber
		}
		if in.PhotoURL != "" {
			m.PhotoURL = in.PhotoURL
		}
		m.UpdatedAt = now
	})
}

func (r *moverRepository) SetAvailability(_ context.Context, uid string, available bool) error {
	now := r.s.now()
	return r.mutate(uid, func(m *entity.MoverProfile) {
		m.SetAvailable(available)
		m.UpdatedAt = now
	})
}

func (r *moverRepository) AppendCredentials(_ context.Context, uid string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	return r.mutate(uid, func(m *entity.MoverProfile) {
		for _, u := range urls {
			if !contains(m.Credentials, u) {
				m.Credentials = append(m.Credentials, u)
			}
		}
	})
}

func (r *moverRepository) SetVerification(_ context.Context, uid string, status entity.VerificationStatus, by string, at time.Time) error {
	return r.mutate(uid, func(m *entity.MoverProfile) {
		m.VerificationStatus = status
		m.VerifiedAt = &at
		m.VerifiedBy = by
	})
}

func (r *moverRepository) SetNotes(_ context.Context, uid, notes, by string, at time.Time) error {
	return r.mutate(uid, func(m *entity.MoverProfile) {
		m.AdminNotes = notes
		m.NotesUpdatedAt = &at
		m.NotesUpdatedBy = by
	})
}

func (r *moverRepository) Delete(_ context.Context, uid string) error {
	r.s.mu.Lock()
	r.s.movers.remove(uid)
	r.s.mu.Unlock()

	r.s.notify(TopicMovers)
	return nil
}

func (r *moverRepository) BackfillDefaults(_ context.Context, dryRun bool) ([]string, error) {
	r.s.mu.Lock()
	var touched []string
	for _, id := range r.s.movers.order {
		m := r.s.movers.docs[id]
		changed := false
		if m.Status == "" {
			m.Status = entity.AvailabilityAvailable
			changed = true
		}
		if m.Name == "" && m.CompanyName != "" {
			m.Name = m.CompanyName
			changed = true
		}
		if !changed {
			continue
		}
		touched = append(touched, id)
		if !dryRun {
			r.s.movers.docs[id] = m
		}
	}
	r.s.mu.Unlock()

	if len(touched) > 0 && !dryRun {
		r.s.notify(TopicMovers)
	}
	return touched, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

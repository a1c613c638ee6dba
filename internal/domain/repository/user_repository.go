package repository

import (
	"context"
	"time"

	"moverconnect/internal/domain/entity"
)

type ClientRepository interface {
	Create(ctx context.Context, client *entity.ClientProfile) error
	GetByID(ctx context.Context, uid string) (*entity.ClientProfile, error)
	// FindByEmail looks for the profile owned by uid whose email matches.
	// A miss returns (nil, nil).
	FindByEmail(ctx context.Context, uid, email string) (*entity.ClientProfile, error)
	Update(ctx context.Context, client *entity.ClientProfile) error
	List(ctx context.Context) ([]*entity.ClientProfile, error)
	Delete(ctx context.Context, uid string) error
}

// MoverFilter narrows a mover listing. Zero values match everything.
type MoverFilter struct {
	Verification entity.VerificationStatus
}

type MoverRepository interface {
	Create(ctx context.Context, mover *entity.MoverProfile) error
	GetByID(ctx context.Context, uid string) (*entity.MoverProfile, error)
	FindByEmail(ctx context.Context, uid, email string) (*entity.MoverProfile, error)
	List(ctx context.Context, filter MoverFilter) ([]*entity.MoverProfile, error)
	Watch(ctx context.Context, filter MoverFilter, fn func([]*entity.MoverProfile)) error

	// UpdateProfile merges the editable profile fields.
	UpdateProfile(ctx context.Context, mover *entity.MoverProfile) error
	SetAvailability(ctx context.Context, uid string, available bool) error
	AppendCredentials(ctx context.Context, uid string, urls []string) error
	SetVerification(ctx context.Context, uid string, status entity.VerificationStatus, by string, at time.Time) error
	SetNotes(ctx context.Context, uid, notes, by string, at time.Time) error
	Delete(ctx context.Context, uid string) error

	// BackfillDefaults fills status and name where they are missing and
	// returns the IDs it touched. dryRun reports without writing.
	BackfillDefaults(ctx context.Context, dryRun bool) ([]string, error)
}

package usecase

import (
	"context"
	"strings"
	"time"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/pkg/errors"
	"moverconnect/pkg/logger"
)

type AdminUseCase struct {
	moverRepo  repository.MoverRepository
	clientRepo repository.ClientRepository
	now        func() time.Time
}

func NewAdminUseCase(moverRepo repository.MoverRepository, clientRepo repository.ClientRepository) *AdminUseCase {
	return &AdminUseCase{
		moverRepo:  moverRepo,
		clientRepo: clientRepo,
		now:        time.Now,
	}
}

// VerificationCounts tallies movers per verification status.
type VerificationCounts struct {
	All      int `json:"all"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type AdminMoverList struct {
	Movers []*entity.MoverProfile `json:"movers"`
	Counts VerificationCounts     `json:"counts"`
}

// ListMovers returns movers in the given status ("" or "all" for every
// mover) together with counts for each tab.
func (uc *AdminUseCase) ListMovers(ctx context.Context, status string) (*AdminMoverList, error) {
	filter := entity.VerificationStatus(strings.ToLower(status))
	if filter == "all" {
		filter = ""
	}
	if filter != "" && !filter.Valid() {
		return nil, errors.Validation("status must be one of pending, approved, rejected, all")
	}

	movers, err := uc.moverRepo.List(ctx, repository.MoverFilter{})
	if err != nil {
		logger.Error("Admin: failed to list movers: %v", err)
		return nil, storeError(err, "Failed to load movers")
	}

	list := &AdminMoverList{Movers: make([]*entity.MoverProfile, 0, len(movers))}
	for _, m := range movers {
		st := m.Verification()

		list.Counts.All++
		switch st {
		case entity.VerificationApproved:
			list.Counts.Approved++
		case entity.VerificationRejected:
			list.Counts.Rejected++
		default:
			list.Counts.Pending++
		}
		if filter == "" || st == filter {
			list.Movers = append(list.Movers, m)
		}
	}
	return list, nil
}

func (uc *AdminUseCase) SetVerification(ctx context.Context, adminEmail, moverID string, status entity.VerificationStatus) (*entity.MoverProfile, error) {
	if !status.Valid() {
		return nil, errors.Validation("status must be one of pending, approved, rejected")
	}
	if _, err := uc.moverRepo.GetByID(ctx, moverID); err != nil {
		return nil, storeError(err, "Failed to load mover")
	}

	if err := uc.moverRepo.SetVerification(ctx, moverID, status, adminEmail, uc.now()); err != nil {
		logger.Error("Admin: failed to set verification of %s: %v", moverID, err)
		return nil, storeError(err, "Failed to update verification status")
	}

	logger.Info("Admin %s set mover %s to %s", adminEmail, moverID, status)
	return uc.moverRepo.GetByID(ctx, moverID)
}

func (uc *AdminUseCase) SaveNotes(ctx context.Context, adminEmail, moverID, notes string) (*entity.MoverProfile, error) {
	if _, err := uc.moverRepo.GetByID(ctx, moverID); err != nil {
		return nil, storeError(err, "Failed to load mover")
	}
	if err := uc.moverRepo.SetNotes(ctx, moverID, notes, adminEmail, uc.now()); err != nil {
		return nil, storeError(err, "Failed to save notes")
	}
	return uc.moverRepo.GetByID(ctx, moverID)
}

// DeleteMover removes the profile only. Bookings and quotes that reference
// it are left alone.
func (uc *AdminUseCase) DeleteMover(ctx context.Context, adminEmail, moverID string) error {
	if err := uc.moverRepo.Delete(ctx, moverID); err != nil {
		return storeError(err, "Failed to delete mover")
	}
	logger.Warn("Admin %s deleted mover %s", adminEmail, moverID)
	return nil
}

func (uc *AdminUseCase) ListClients(ctx context.Context) ([]*entity.ClientProfile, error) {
	clients, err := uc.clientRepo.List(ctx)
	if err != nil {
		return nil, storeError(err, "Failed to load clients")
	}
	return clients, nil
}

func (uc *AdminUseCase) DeleteClient(ctx context.Context, adminEmail, clientID string) error {
	if err := uc.clientRepo.Delete(ctx, clientID); err != nil {
		return storeError(err, "Failed to delete client")
	}
	logger.Warn("Admin %s deleted client %s", adminEmail, clientID)
	return nil
}

// BackfillMovers fills missing status and name fields on legacy movers.
func (uc *AdminUseCase) BackfillMovers(ctx context.Context, dryRun bool) ([]string, error) {
	touched, err := uc.moverRepo.BackfillDefaults(ctx, dryRun)
	if err != nil {
		return nil, storeError(err, "Failed to backfill movers")
	}
	return touched, nil
}

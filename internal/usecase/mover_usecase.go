package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path"
	"slices"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/internal/domain/service"
	"moverconnect/pkg/errors"
	"moverconnect/pkg/logger"
	"moverconnect/pkg/utils"
)

type MoverUseCase struct {
	moverRepo   repository.MoverRepository
	fileStorage service.FileStorage
}

func NewMoverUseCase(moverRepo repository.MoverRepository, fileStorage service.FileStorage) *MoverUseCase {
	return &MoverUseCase{
		moverRepo:   moverRepo,
		fileStorage: fileStorage,
	}
}

// MoverQuery filters the directory. Empty fields match everything.
type MoverQuery struct {
	Search       string
	Availability string // available | unavailable
	Verification entity.VerificationStatus
}

// Match reports whether m passes every filter. Search is a
// case-insensitive substring match on company or display name.
func (q MoverQuery) Match(m *entity.MoverProfile) bool {
	if q.Search != "" && !utils.ContainsFold(m.CompanyName, q.Search) && !utils.ContainsFold(m.Name, q.Search) {
		return false
	}
	switch q.Availability {
	case entity.AvailabilityAvailable:
		if !m.IsAvailable {
			return false
		}
	case entity.AvailabilityUnavailable:
		if m.IsAvailable {
			return false
		}
	}
	if q.Verification != "" && m.Verification() != q.Verification {
		return false
	}
	return true
}

func (q MoverQuery) filter(movers []*entity.MoverProfile) []*entity.MoverProfile {
	out := make([]*entity.MoverProfile, 0, len(movers))
	for _, m := range movers {
		if q.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

func (uc *MoverUseCase) ListMovers(ctx context.Context, query MoverQuery) ([]*entity.MoverProfile, error) {
	movers, err := uc.moverRepo.List(ctx, repository.MoverFilter{Verification: query.Verification})
	if err != nil {
		logger.Error("Failed to list movers: %v", err)
		return nil, errors.Internal("Failed to load movers", err)
	}
	return query.filter(movers), nil
}

// WatchMovers pushes the filtered directory on every change until ctx ends.
func (uc *MoverUseCase) WatchMovers(ctx context.Context, query MoverQuery, fn func([]*entity.MoverProfile)) error {
	return uc.moverRepo.Watch(ctx, repository.MoverFilter{Verification: query.Verification}, func(movers []*entity.MoverProfile) {
		fn(query.filter(movers))
	})
}

func (uc *MoverUseCase) GetMover(ctx context.Context, moverID string) (*entity.MoverProfile, error) {
	mover, err := uc.moverRepo.GetByID(ctx, moverID)
	if err != nil {
		return nil, storeError(err, "Failed to load mover")
	}
	return mover, nil
}

func (uc *MoverUseCase) SetAvailability(ctx context.Context, moverID string, available bool) (*entity.MoverProfile, error) {
	if _, err := uc.GetMover(ctx, moverID); err != nil {
		return nil, err
	}
	if err := uc.moverRepo.SetAvailability(ctx, moverID, available); err != nil {
		logger.Error("Failed to update availability for %s: %v", moverID, err)
		return nil, errors.Internal("Failed to update availability", err)
	}
	return uc.GetMover(ctx, moverID)
}

// CredentialFile is one upload in a credential batch.
type CredentialFile struct {
	Name        string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

type UploadFailure struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type CredentialUploadResult struct {
	Uploaded    []string        `json:"uploaded"`
	Failed      []UploadFailure `json:"failed"`
	Credentials []string        `json:"credentials"`
}

// UploadCredentials stores each file under movers/{uid}/credentials and
// appends the successful URLs to the mover's list. A failed file is logged
// and dropped; the others stay linked.
func (uc *MoverUseCase) UploadCredentials(ctx context.Context, moverID string, files []CredentialFile) (*CredentialUploadResult, error) {
	if len(files) == 0 {
		return nil, errors.BadRequest("No files provided", nil)
	}
	existing, err := uc.GetMover(ctx, moverID)
	if err != nil {
		return nil, err
	}

	result := &CredentialUploadResult{Uploaded: []string{}, Failed: []UploadFailure{}}
	for _, f := range files {
		url, err := uc.uploadOne(ctx, moverID, f)
		if err != nil {
			logger.Warn("Credential upload %q for %s failed: %v", f.Name, moverID, err)
			result.Failed = append(result.Failed, UploadFailure{Name: f.Name, Reason: "upload failed"})
			continue
		}
		result.Uploaded = append(result.Uploaded, url)
	}

	if len(result.Uploaded) > 0 {
		if err := uc.moverRepo.AppendCredentials(ctx, moverID, result.Uploaded); err != nil {
			logger.Error("Failed to link credentials for %s: %v", moverID, err)
			uc.discardUploads(ctx, result.Uploaded, existing.Credentials)
			return nil, errors.Internal("Failed to save credentials", err)
		}
	}

	mover, err := uc.GetMover(ctx, moverID)
	if err != nil {
		return nil, err
	}
	result.Credentials = mover.Credentials
	return result, nil
}

// discardUploads removes blobs from a batch that could not be linked.
// URLs already on the profile belong to earlier uploads of the same name
// and stay.
func (uc *MoverUseCase) discardUploads(ctx context.Context, urls, linked []string) {
	for _, url := range urls {
		if slices.Contains(linked, url) {
			continue
		}
		if err := uc.fileStorage.DeleteFile(ctx, url); err != nil {
			logger.Warn("Failed to remove unlinked credential %s: %v", url, err)
		}
	}
}

func (uc *MoverUseCase) uploadOne(ctx context.Context, moverID string, f CredentialFile) (string, error) {
	name := path.Base(f.Name)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("invalid file name %q", f.Name)
	}

	src, err := f.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return uc.fileStorage.UploadFile(ctx, src, f.ContentType, path.Join("movers", moverID, "credentials", name))
}

// storeError passes typed repository errors through and wraps the rest.
func storeError(err error, message string) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return errors.Internal(message, err)
}

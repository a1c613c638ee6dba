package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/internal/domain/service"
	"moverconnect/pkg/errors"
	"moverconnect/pkg/logger"
)

type ProfileUseCase struct {
	clientRepo  repository.ClientRepository
	moverRepo   repository.MoverRepository
	fileStorage service.FileStorage
}

func NewProfileUseCase(clientRepo repository.ClientRepository, moverRepo repository.MoverRepository, fileStorage service.FileStorage) *ProfileUseCase {
	return &ProfileUseCase{
		clientRepo:  clientRepo,
		moverRepo:   moverRepo,
		fileStorage: fileStorage,
	}
}

// ProfileOwner identifies whose profile is edited and under which role.
type ProfileOwner struct {
	UID   string
	Email string
	Role  entity.Role
}

// UpdateProfileInput holds the editable fields. Client fields are Name and
// Phone; mover fields are CompanyName, ServiceArea and ContactNumber.
type UpdateProfileInput struct {
	Name          string
	Phone         string
	CompanyName   string
	ServiceArea   string
	ContactNumber string
}

// GetProfile returns the caller's profile, or a stub carrying only the
// email when none has been written yet.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, owner ProfileOwner) (interface{}, error) {
	switch owner.Role {
	case entity.RoleClient:
		profile, err := uc.clientRepo.GetByID(ctx, owner.UID)
		if errors.Is(err, "NOT_FOUND") {
			return &entity.ClientProfile{ID: owner.UID, Email: owner.Email}, nil
		}
		if err != nil {
			return nil, storeError(err, "Failed to load profile")
		}
		return profile, nil

	case entity.RoleMover:
		profile, err := uc.moverRepo.GetByID(ctx, owner.UID)
		if errors.Is(err, "NOT_FOUND") {
			return &entity.MoverProfile{ID: owner.UID, Email: owner.Email, Credentials: []string{}}, nil
		}
		if err != nil {
			return nil, storeError(err, "Failed to load profile")
		}
		return profile, nil
	}
	return nil, errors.BadRequest("Unknown profile type", nil)
}

func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, owner ProfileOwner, input UpdateProfileInput) (interface{}, error) {
	var err error
	switch owner.Role {
	case entity.RoleClient:
		err = uc.clientRepo.Update(ctx, &entity.ClientProfile{
			ID:    owner.UID,
			Email: owner.Email,
			Name:  strings.TrimSpace(input.Name),
			Phone: strings.TrimSpace(input.Phone),
		})
	case entity.RoleMover:
		company := strings.TrimSpace(input.CompanyName)
		err = uc.moverRepo.UpdateProfile(ctx, &entity.MoverProfile{
			ID:            owner.UID,
			CompanyName:   company,
			Name:          company,
			ServiceArea:   strings.TrimSpace(input.ServiceArea),
			ContactNumber: strings.TrimSpace(input.ContactNumber),
		})
	default:
		return nil, errors.BadRequest("Unknown profile type", nil)
	}
	if err != nil {
		logger.Error("Failed to update %s profile %s: %v", owner.Role, owner.UID, err)
		return nil, storeError(err, "Failed to update profile")
	}
	return uc.GetProfile(ctx, owner)
}

// UploadPhoto stores the picture at {role}s/{uid}/profile.jpg, replacing
// any earlier one, and links it on the profile.
func (uc *ProfileUseCase) UploadPhoto(ctx context.Context, owner ProfileOwner, photo io.Reader, contentType string) (string, error) {
	if owner.Role != entity.RoleClient && owner.Role != entity.RoleMover {
		return "", errors.BadRequest("Unknown profile type", nil)
	}
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return "", errors.Validation("photo must be an image")
	}

	objectPath := fmt.Sprintf("%ss/%s/profile.jpg", owner.Role, owner.UID)
	url, err := uc.fileStorage.UploadFile(ctx, photo, contentType, objectPath)
	if err != nil {
		logger.Error("Failed to upload photo for %s: %v", owner.UID, err)
		return "", errors.Internal("Failed to upload photo", err)
	}

	if owner.Role == entity.RoleClient {
		err = uc.clientRepo.Update(ctx, &entity.ClientProfile{ID: owner.UID, Email: owner.Email, PhotoURL: url})
	} else {
		err = uc.moverRepo.UpdateProfile(ctx, &entity.MoverProfile{ID: owner.UID, PhotoURL: url})
	}
	if err != nil {
		return "", storeError(err, "Failed to save photo")
	}
	return url, nil
}

package usecase

import (
	"context"
	"strings"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/pkg/errors"
	"moverconnect/pkg/logger"
)

type RequestUseCase struct {
	requestRepo repository.RequestRepository
}

func NewRequestUseCase(requestRepo repository.RequestRepository) *RequestUseCase {
	return &RequestUseCase{requestRepo: requestRepo}
}

type CreateRequestInput struct {
	Name        string
	Address     string
	Contact     string
	Description string
	Date        string
}

func (uc *RequestUseCase) CreateRequest(ctx context.Context, clientID string, input CreateRequestInput) (*entity.ClientRequest, error) {
	if strings.TrimSpace(input.Address) == "" || strings.TrimSpace(input.Date) == "" {
		return nil, errors.Validation("address and date are required")
	}

	req := &entity.ClientRequest{
		ClientID:    clientID,
		Name:        strings.TrimSpace(input.Name),
		Address:     strings.TrimSpace(input.Address),
		Contact:     strings.TrimSpace(input.Contact),
		Description: strings.TrimSpace(input.Description),
		Date:        input.Date,
	}
	if err := uc.requestRepo.Create(ctx, req); err != nil {
		logger.Error("Failed to create request for %s: %v", clientID, err)
		return nil, storeError(err, "Failed to post request")
	}
	return req, nil
}

// ListRequests is the feed movers browse: every client's requests.
func (uc *RequestUseCase) ListRequests(ctx context.Context) ([]*entity.ClientRequest, error) {
	requests, err := uc.requestRepo.ListAll(ctx)
	if err != nil {
		logger.Error("Failed to list requests: %v", err)
		return nil, storeError(err, "Failed to load requests")
	}
	return requests, nil
}

func (uc *RequestUseCase) ListClientRequests(ctx context.Context, clientID string) ([]*entity.ClientRequest, error) {
	requests, err := uc.requestRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, storeError(err, "Failed to load requests")
	}
	return requests, nil
}

func (uc *RequestUseCase) WatchRequests(ctx context.Context, fn func([]*entity.ClientRequest)) error {
	return uc.requestRepo.WatchAll(ctx, fn)
}

package usecase

import (
	"context"
	"strings"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/pkg/errors"
	"moverconnect/pkg/logger"
	"moverconnect/pkg/utils"
)

type QuoteUseCase struct {
	quoteRepo   repository.QuoteRepository
	requestRepo repository.RequestRepository
	moverRepo   repository.MoverRepository
}

func NewQuoteUseCase(
	quoteRepo repository.QuoteRepository,
	requestRepo repository.RequestRepository,
	moverRepo repository.MoverRepository,
) *QuoteUseCase {
	return &QuoteUseCase{
		quoteRepo:   quoteRepo,
		requestRepo: requestRepo,
		moverRepo:   moverRepo,
	}
}

type SubmitQuoteInput struct {
	ClientID  string
	RequestID string
	Amount    float64
	Notes     string
}

// SubmitQuote writes a quote from an approved mover against a client's
// request. The verification gate runs before anything is written.
func (uc *QuoteUseCase) SubmitQuote(ctx context.Context, moverID, moverEmail string, input SubmitQuoteInput) (*entity.Quote, error) {
	mover, err := uc.moverRepo.GetByID(ctx, moverID)
	if err != nil {
		return nil, storeError(err, "Failed to load mover")
	}
	if !mover.CanQuote() {
		return nil, errors.MoverNotVerified()
	}

	if input.Amount <= 0 {
		return nil, errors.Validation("amount must be greater than zero")
	}

	req, err := uc.requestRepo.Get(ctx, input.ClientID, input.RequestID)
	if err != nil {
		return nil, storeError(err, "Failed to load request")
	}

	quote := &entity.Quote{
		RequestID:  req.ID,
		ClientID:   req.ClientID,
		MoverID:    moverID,
		MoverName:  mover.DisplayName(),
		MoverEmail: utils.FirstNonEmpty(mover.Email, moverEmail),
		Amount:     input.Amount,
		Notes:      strings.TrimSpace(input.Notes),
		Status:     entity.QuoteStatusPending,
	}
	if err := uc.quoteRepo.Create(ctx, quote); err != nil {
		logger.Error("Failed to save quote from %s on %s: %v", moverID, req.ID, err)
		return nil, storeError(err, "Failed to send quote")
	}

	logger.Info("Quote %s sent by %s for request %s", quote.ID, moverID, req.ID)
	return quote, nil
}

// ListQuotes returns the quotes a client received or a mover sent.
func (uc *QuoteUseCase) ListQuotes(ctx context.Context, role entity.Role, uid string) ([]*entity.Quote, error) {
	filter, err := quoteFilterFor(role, uid)
	if err != nil {
		return nil, err
	}
	quotes, err := uc.quoteRepo.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, "Failed to load quotes")
	}
	return quotes, nil
}

func (uc *QuoteUseCase) WatchQuotes(ctx context.Context, role entity.Role, uid string, fn func([]*entity.Quote)) error {
	filter, err := quoteFilterFor(role, uid)
	if err != nil {
		return err
	}
	return uc.quoteRepo.Watch(ctx, filter, fn)
}

func quoteFilterFor(role entity.Role, uid string) (repository.QuoteFilter, error) {
	switch role {
	case entity.RoleClient:
		return repository.QuoteFilter{ClientID: uid}, nil
	case entity.RoleMover:
		return repository.QuoteFilter{MoverID: uid}, nil
	}
	return repository.QuoteFilter{}, errors.Forbidden("Quotes are only available to clients and movers", nil)
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/pkg/errors"
	"moverconnect/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
}

func NewReviewUseCase(reviewRepo repository.ReviewRepository, bookingRepo repository.BookingRepository) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
	}
}

type CreateReviewInput struct {
	Rating  int
	Comment string
}

// IsReviewable is true while the booking is accepted and clientID has not
// reviewed it yet.
func (uc *ReviewUseCase) IsReviewable(ctx context.Context, booking *entity.Booking, clientID string) (bool, error) {
	if booking.Status != entity.BookingStatusAccepted {
		return false, nil
	}
	exists, err := uc.reviewRepo.ExistsForBooking(ctx, booking.ID, clientID)
	if err != nil {
		return false, storeError(err, "Failed to check reviews")
	}
	return !exists, nil
}

// CheckReviewable loads the caller's booking and evaluates IsReviewable.
func (uc *ReviewUseCase) CheckReviewable(ctx context.Context, clientID, bookingID string) (bool, error) {
	booking, err := uc.clientBooking(ctx, clientID, bookingID)
	if err != nil {
		return false, err
	}
	return uc.IsReviewable(ctx, booking, clientID)
}

func (uc *ReviewUseCase) CreateReview(ctx context.Context, clientID, bookingID string, input CreateReviewInput) (*entity.Review, error) {
	if input.Rating < entity.MinRating || input.Rating > entity.MaxRating {
		return nil, errors.Validation(fmt.Sprintf("rating must be between %d and %d", entity.MinRating, entity.MaxRating))
	}
	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return nil, errors.Validation("comment is required")
	}

	booking, err := uc.clientBooking(ctx, clientID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != entity.BookingStatusAccepted {
		return nil, errors.NotReviewable()
	}
	exists, err := uc.reviewRepo.ExistsForBooking(ctx, booking.ID, clientID)
	if err != nil {
		return nil, storeError(err, "Failed to check reviews")
	}
	if exists {
		return nil, errors.AlreadyReviewed()
	}

	review := &entity.Review{
		BookingID: booking.ID,
		MoverID:   booking.MoverID,
		ClientID:  clientID,
		Rating:    input.Rating,
		Comment:   comment,
	}
	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		logger.Error("Failed to save review for booking %s: %v", bookingID, err)
		return nil, storeError(err, "Failed to submit review")
	}
	return review, nil
}

// GetMoverRating recomputes the mover's average from every review.
func (uc *ReviewUseCase) GetMoverRating(ctx context.Context, moverID string) (*entity.MoverRating, error) {
	reviews, err := uc.reviewRepo.ListByMover(ctx, moverID)
	if err != nil {
		return nil, storeError(err, "Failed to load reviews")
	}

	ratings := make([]int, len(reviews))
	for i, r := range reviews {
		ratings[i] = r.Rating
	}
	return &entity.MoverRating{
		MoverID: moverID,
		Average: entity.AverageRating(ratings),
		Count:   len(reviews),
		Reviews: reviews,
	}, nil
}

func (uc *ReviewUseCase) ListClientReviews(ctx context.Context, clientID string) ([]*entity.Review, error) {
	reviews, err := uc.reviewRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, storeError(err, "Failed to load reviews")
	}
	return reviews, nil
}

func (uc *ReviewUseCase) clientBooking(ctx context.Context, clientID, bookingID string) (*entity.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storeError(err, "Failed to load booking")
	}
	if booking.ClientID != clientID {
		return nil, errors.Forbidden("Only the booking's client can review it", nil)
	}
	return booking, nil
}

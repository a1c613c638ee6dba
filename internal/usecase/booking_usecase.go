package usecase

import (
	"context"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/pkg/errors"
	"moverconnect/pkg/logger"
)

type BookingUseCase struct {
	bookingRepo repository.BookingRepository
	moverRepo   repository.MoverRepository
}

func NewBookingUseCase(bookingRepo repository.BookingRepository, moverRepo repository.MoverRepository) *BookingUseCase {
	return &BookingUseCase{
		bookingRepo: bookingRepo,
		moverRepo:   moverRepo,
	}
}

type CreateBookingInput struct {
	MoverID string
	Date    string
	Time    string
}

// CreateBooking books a mover for a date and time. Duplicate bookings are
// allowed.
func (uc *BookingUseCase) CreateBooking(ctx context.Context, clientID, clientEmail string, input CreateBookingInput) (*entity.Booking, error) {
	mover, err := uc.moverRepo.GetByID(ctx, input.MoverID)
	if err != nil {
		return nil, storeError(err, "Failed to load mover")
	}

	booking := &entity.Booking{
		ClientID:    clientID,
		ClientEmail: clientEmail,
		MoverID:     mover.ID,
		MoverName:   mover.DisplayName(),
		Date:        input.Date,
		Time:        input.Time,
		Status:      entity.BookingStatusPending,
	}
	if err := uc.bookingRepo.Create(ctx, booking); err != nil {
		logger.Error("Failed to create booking for %s: %v", clientID, err)
		return nil, storeError(err, "Failed to create booking")
	}
	return booking, nil
}

// UpdateStatus lets the booked mover accept or decline a pending booking.
func (uc *BookingUseCase) UpdateStatus(ctx context.Context, moverID, bookingID string, to entity.BookingStatus) (*entity.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storeError(err, "Failed to load booking")
	}
	if booking.MoverID != moverID {
		return nil, errors.Forbidden("Only the booked mover can update this booking", nil)
	}
	if !entity.ValidBookingTransition(booking.Status, to) {
		return nil, errors.InvalidTransition(string(booking.Status), string(to))
	}

	if err := uc.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, to); err != nil {
		return nil, storeError(err, "Failed to update booking")
	}

	logger.Info("Booking %s moved from %s to %s by %s", bookingID, booking.Status, to, moverID)
	return uc.bookingRepo.GetByID(ctx, bookingID)
}

// GetForParticipant loads a booking the caller is a party to.
func (uc *BookingUseCase) GetForParticipant(ctx context.Context, uid, bookingID string) (*entity.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storeError(err, "Failed to load booking")
	}
	if !booking.IsParticipant(uid) {
		return nil, errors.Forbidden("You are not part of this booking", nil)
	}
	return booking, nil
}

func (uc *BookingUseCase) ListBookings(ctx context.Context, role entity.Role, uid string) ([]*entity.Booking, error) {
	filter, err := bookingFilterFor(role, uid)
	if err != nil {
		return nil, err
	}
	bookings, err := uc.bookingRepo.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, "Failed to load bookings")
	}
	return bookings, nil
}

func (uc *BookingUseCase) WatchBookings(ctx context.Context, role entity.Role, uid string, fn func([]*entity.Booking)) error {
	filter, err := bookingFilterFor(role, uid)
	if err != nil {
		return err
	}
	return uc.bookingRepo.Watch(ctx, filter, fn)
}

func bookingFilterFor(role entity.Role, uid string) (repository.BookingFilter, error) {
	switch role {
	case entity.RoleClient:
		return repository.BookingFilter{ClientID: uid}, nil
	case entity.RoleMover:
		return repository.BookingFilter{MoverID: uid}, nil
	}
	return repository.BookingFilter{}, errors.Forbidden("Bookings are only available to clients and movers", nil)
}

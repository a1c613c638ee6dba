package app

import (
	"moverconnect/internal/adapter/api/handler"
	"moverconnect/internal/usecase"
)

// UseCases builds every use case over the backend. limiter throttles
// chat messages.
func (b *Backend) UseCases(limiter usecase.Limiter) handler.UseCases {
	bookings := usecase.NewBookingUseCase(b.Bookings, b.Movers)

	return handler.UseCases{
		Identity: usecase.NewIdentityUseCase(b.Identity, b.Clients, b.Movers, b.Policy),
		Movers:   usecase.NewMoverUseCase(b.Movers, b.Files),
		Requests: usecase.NewRequestUseCase(b.Requests),
		Quotes:   usecase.NewQuoteUseCase(b.Quotes, b.Requests, b.Movers),
		Bookings: bookings,
		Messages: usecase.NewMessageUseCase(b.Messages, bookings, limiter),
		Reviews:  usecase.NewReviewUseCase(b.Reviews, b.Bookings),
		Admin:    usecase.NewAdminUseCase(b.Movers, b.Clients),
		Profiles: usecase.NewProfileUseCase(b.Clients, b.Movers, b.Files),
	}
}

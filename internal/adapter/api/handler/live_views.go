package handler

import (
	"context"

	"moverconnect/internal/domain/entity"
	ws "moverconnect/internal/infrastructure/websocket"
	"moverconnect/internal/usecase"
	"moverconnect/pkg/errors"
)

// LiveViews serves the WebSocket views from the same use cases the REST
// handlers call, so both surfaces apply the same access rules.
type LiveViews struct {
	movers   *usecase.MoverUseCase
	requests *usecase.RequestUseCase
	quotes   *usecase.QuoteUseCase
	bookings *usecase.BookingUseCase
	messages *usecase.MessageUseCase
}

func NewLiveViews(uc UseCases) *LiveViews {
	return &LiveViews{
		movers:   uc.Movers,
		requests: uc.Requests,
		quotes:   uc.Quotes,
		bookings: uc.Bookings,
		messages: uc.Messages,
	}
}

func (v *LiveViews) Subscribe(ctx context.Context, session ws.Session, view string, params map[string]string, push func(interface{})) error {
	role := entity.Role(session.Role)

	switch view {
	case ws.ViewMovers:
		query := usecase.MoverQuery{
			Search:       params["q"],
			Availability: params["availability"],
			Verification: entity.VerificationStatus(params["verification"]),
		}
		return v.movers.WatchMovers(ctx, query, func(movers []*entity.MoverProfile) {
			push(movers)
		})

	case ws.ViewBookings:
		return v.bookings.WatchBookings(ctx, role, session.UserID, func(bookings []*entity.Booking) {
			push(bookings)
		})

	case ws.ViewQuotes:
		return v.quotes.WatchQuotes(ctx, role, session.UserID, func(quotes []*entity.Quote) {
			push(quotes)
		})

	case ws.ViewRequests:
		switch role {
		case entity.RoleMover, entity.RoleAdmin:
			return v.requests.WatchRequests(ctx, func(requests []*entity.ClientRequest) {
				push(requests)
			})
		case entity.RoleClient:
			return v.requests.WatchRequests(ctx, func(requests []*entity.ClientRequest) {
				push(ownRequests(requests, session.UserID))
			})
		}
		return errors.Forbidden("This view is not available to your account", nil)

	case ws.ViewMessages:
		bookingID := params["bookingId"]
		if bookingID == "" {
			return errors.Validation("bookingId is required")
		}
		return v.messages.WatchMessages(ctx, session.UserID, bookingID, func(messages []*entity.Message) {
			push(messages)
		})
	}

	return errors.BadRequest("Unknown view", nil)
}

func ownRequests(requests []*entity.ClientRequest, clientID string) []*entity.ClientRequest {
	out := make([]*entity.ClientRequest, 0, len(requests))
	for _, r := range requests {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out
}

package handler

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/adapter/api/middleware"
	"moverconnect/internal/domain/entity"
	"moverconnect/internal/usecase"
	"moverconnect/pkg/errors"
)

// UseCases bundles everything the HTTP handlers call into.
type UseCases struct {
	Identity *usecase.IdentityUseCase
	Movers   *usecase.MoverUseCase
	Requests *usecase.RequestUseCase
	Quotes   *usecase.QuoteUseCase
	Bookings *usecase.BookingUseCase
	Messages *usecase.MessageUseCase
	Reviews  *usecase.ReviewUseCase
	Admin    *usecase.AdminUseCase
	Profiles *usecase.ProfileUseCase
}

var (
	authHandler    *AuthHandler
	profileHandler *ProfileHandler
	moverHandler   *MoverHandler
	requestHandler *RequestHandler
	quoteHandler   *QuoteHandler
	bookingHandler *BookingHandler
	messageHandler *MessageHandler
	reviewHandler  *ReviewHandler
	adminHandler   *AdminHandler
)

func Setup(uc UseCases) {
	authHandler = NewAuthHandler(uc.Identity)
	profileHandler = NewProfileHandler(uc.Profiles)
	moverHandler = NewMoverHandler(uc.Movers, uc.Reviews)
	requestHandler = NewRequestHandler(uc.Requests)
	quoteHandler = NewQuoteHandler(uc.Quotes)
	bookingHandler = NewBookingHandler(uc.Bookings)
	messageHandler = NewMessageHandler(uc.Messages)
	reviewHandler = NewReviewHandler(uc.Reviews)
	adminHandler = NewAdminHandler(uc.Admin)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetProfileHandler() *ProfileHandler {
	return profileHandler
}

func GetMoverHandler() *MoverHandler {
	return moverHandler
}

func GetRequestHandler() *RequestHandler {
	return requestHandler
}

func GetQuoteHandler() *QuoteHandler {
	return quoteHandler
}

func GetBookingHandler() *BookingHandler {
	return bookingHandler
}

func GetMessageHandler() *MessageHandler {
	return messageHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

func currentUser(c echo.Context) (uid, email string) {
	uid, _ = c.Get(middleware.ContextUID).(string)
	email, _ = c.Get(middleware.ContextEmail).(string)
	return uid, email
}

func currentRole(c echo.Context) entity.Role {
	role, _ := c.Get(middleware.ContextRole).(entity.Role)
	return role
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.BadRequest("Invalid request body", err)
	}
	return c.Validate(req)
}

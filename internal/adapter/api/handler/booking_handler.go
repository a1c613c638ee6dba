package handler

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/usecase"
	"moverconnect/pkg/response"
)

type BookingHandler struct {
	bookingUseCase *usecase.BookingUseCase
}

func NewBookingHandler(bookingUseCase *usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
	}
}

type createBookingRequest struct {
	MoverID string `json:"mover_id" validate:"required"`
	Date    string `json:"date" validate:"required"`
	Time    string `json:"time" validate:"required"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	uid, email := currentUser(c)

	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	booking, err := h.bookingUseCase.CreateBooking(c.Request().Context(), uid, email, usecase.CreateBookingInput{
		MoverID: req.MoverID,
		Date:    req.Date,
		Time:    req.Time,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, booking)
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	uid, _ := currentUser(c)
	bookings, err := h.bookingUseCase.ListBookings(c.Request().Context(), currentRole(c), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, bookings, len(bookings))
}

func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	uid, _ := currentUser(c)

	var req updateBookingStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	booking, err := h.bookingUseCase.UpdateStatus(c.Request().Context(), uid, c.Param("id"), entity.BookingStatus(req.Status))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, booking)
}

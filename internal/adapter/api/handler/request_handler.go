package handler

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/usecase"
	"moverconnect/pkg/response"
)

type RequestHandler struct {
	requestUseCase *usecase.RequestUseCase
}

func NewRequestHandler(requestUseCase *usecase.RequestUseCase) *RequestHandler {
	return &RequestHandler{
		requestUseCase: requestUseCase,
	}
}

type createRequestRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address" validate:"required"`
	Contact     string `json:"contact"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required"`
}

func (h *RequestHandler) CreateRequest(c echo.Context) error {
	uid, _ := currentUser(c)

	var req createRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	created, err := h.requestUseCase.CreateRequest(c.Request().Context(), uid, usecase.CreateRequestInput{
		Name:        req.Name,
		Address:     req.Address,
		Contact:     req.Contact,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, created)
}

// ListRequests is the movers' feed of every open client request.
func (h *RequestHandler) ListRequests(c echo.Context) error {
	requests, err := h.requestUseCase.ListRequests(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, requests, len(requests))
}

func (h *RequestHandler) ListMyRequests(c echo.Context) error {
	uid, _ := currentUser(c)
	requests, err := h.requestUseCase.ListClientRequests(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, requests, len(requests))
}

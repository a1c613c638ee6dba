package handler

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/usecase"
	"moverconnect/pkg/response"
)

type QuoteHandler struct {
	quoteUseCase *usecase.QuoteUseCase
}

func NewQuoteHandler(quoteUseCase *usecase.QuoteUseCase) *QuoteHandler {
	return &QuoteHandler{
		quoteUseCase: quoteUseCase,
	}
}

type submitQuoteRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Notes  string  `json:"notes"`
}

func (h *QuoteHandler) SubmitQuote(c echo.Context) error {
	uid, email := currentUser(c)

	var req submitQuoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	quote, err := h.quoteUseCase.SubmitQuote(c.Request().Context(), uid, email, usecase.SubmitQuoteInput{
		ClientID:  c.Param("clientId"),
		RequestID: c.Param("requestId"),
		Amount:    req.Amount,
		Notes:     req.Notes,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, quote)
}

// ListQuotes returns quotes received by a client or sent by a mover.
func (h *QuoteHandler) ListQuotes(c echo.Context) error {
	uid, _ := currentUser(c)
	quotes, err := h.quoteUseCase.ListQuotes(c.Request().Context(), currentRole(c), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, quotes, len(quotes))
}

package handler

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/usecase"
	"moverconnect/pkg/response"
)

type MessageHandler struct {
	messageUseCase *usecase.MessageUseCase
}

func NewMessageHandler(messageUseCase *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
	}
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	uid, email := currentUser(c)

	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.messageUseCase.SendMessage(c.Request().Context(), usecase.Sender{UID: uid, Email: email}, c.Param("id"), req.Text)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, message)
}

// ListMessages returns the booking's thread oldest first.
func (h *MessageHandler) ListMessages(c echo.Context) error {
	uid, _ := currentUser(c)
	messages, err := h.messageUseCase.ListMessages(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, messages, len(messages))
}

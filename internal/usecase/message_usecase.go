package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/repository"
	"moverconnect/pkg/errors"
	"moverconnect/pkg/logger"
	"moverconnect/pkg/utils"
)

const actionSendMessage = "send_message"

// Limiter is satisfied by ratelimit.RateLimiter.
type Limiter interface {
	Allow(key, action string) (bool, time.Duration)
}

type MessageUseCase struct {
	messageRepo repository.MessageRepository
	bookings    *BookingUseCase
	limiter     Limiter
}

func NewMessageUseCase(messageRepo repository.MessageRepository, bookings *BookingUseCase, limiter Limiter) *MessageUseCase {
	return &MessageUseCase{
		messageRepo: messageRepo,
		bookings:    bookings,
		limiter:     limiter,
	}
}

// Sender is the authenticated author of a message.
type Sender struct {
	UID   string
	Email string
}

// SendMessage appends to a booking's thread. The sender tag is derived from
// which side of the booking the caller is on.
func (uc *MessageUseCase) SendMessage(ctx context.Context, sender Sender, bookingID, text string) (*entity.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.Validation("message cannot be empty")
	}

	if uc.limiter != nil {
		if ok, wait := uc.limiter.Allow(sender.UID, actionSendMessage); !ok {
			return nil, errors.TooManyRequests(fmt.Sprintf("Too many messages. Try again in %d seconds.", int(math.Ceil(wait.Seconds()))))
		}
	}

	booking, err := uc.bookings.GetForParticipant(ctx, sender.UID, bookingID)
	if err != nil {
		return nil, err
	}

	role := entity.SenderMover
	if sender.UID == booking.ClientID {
		role = entity.SenderClient
	}

	msg := &entity.Message{
		BookingID:  bookingID,
		Text:       text,
		Sender:     role,
		SenderName: utils.EmailLocalPart(sender.Email),
	}
	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		logger.Error("Failed to send message on booking %s: %v", bookingID, err)
		return nil, storeError(err, "Failed to send message")
	}
	return msg, nil
}

// ListMessages returns the full thread, oldest first.
func (uc *MessageUseCase) ListMessages(ctx context.Context, uid, bookingID string) ([]*entity.Message, error) {
	if _, err := uc.bookings.GetForParticipant(ctx, uid, bookingID); err != nil {
		return nil, err
	}
	messages, err := uc.messageRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, storeError(err, "Failed to load messages")
	}
	return messages, nil
}

func (uc *MessageUseCase) WatchMessages(ctx context.Context, uid, bookingID string, fn func([]*entity.Message)) error {
	if _, err := uc.bookings.GetForParticipant(ctx, uid, bookingID); err != nil {
		return err
	}
	return uc.messageRepo.WatchByBooking(ctx, bookingID, fn)
}

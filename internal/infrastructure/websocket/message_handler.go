package websocket

import (
	"encoding/json"
	"errors"
	"time"

	apperrors "moverconnect/pkg/errors"
	"moverconnect/pkg/logger"
)

// Client frames
const (
	MessageTypePing           = "ping"
	MessageTypeSubscribe      = "subscribe"
	MessageTypeUnsubscribe    = "unsubscribe"
	MessageTypeToggleInterest = "toggle_interest"
	MessageTypeRespondQuote   = "respond_quote"
)

// Server frames
const (
	MessageTypePong          = "pong"
	MessageTypeSnapshot      = "snapshot"
	MessageTypeError         = "error"
	MessageTypeInterest      = "interest"
	MessageTypeQuoteResponse = "quote_response"
	MessageTypeUnsubscribed  = "unsubscribed"
)

// Views
const (
	ViewMovers   = "movers"
	ViewBookings = "bookings"
	ViewQuotes   = "quotes"
	ViewRequests = "requests"
	ViewMessages = "messages"
)

type WSMessage struct {
	Type      string      `json:"type"`
	View      string      `json:"view,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type SubscribeData struct {
	View   string            `json:"view"`
	Params map[string]string `json:"params"`
}

type UnsubscribeData struct {
	View string `json:"view"`
}

type ToggleInterestData struct {
	RequestID string `json:"requestId"`
}

type RespondQuoteData struct {
	QuoteID  string `json:"quoteId"`
	Response string `json:"response"`
}

type InterestData struct {
	RequestIDs []string `json:"requestIds"`
}

type QuoteResponseData struct {
	Responses map[string]string `json:"responses"`
}

type errorData struct {
	Message string `json:"message"`
}

func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Status < 500 {
		return appErr.Message
	}
	return "Live update failed, please try again"
}

// HandleClientMessage processes one inbound frame.
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(messageBytes, &msg); err != nil {
		logger.Debug("WebSocket: bad frame from %s: %v", client.Session.UserID, err)
		m.sendErrorToClient(client, "Invalid message format")
		return
	}

	switch msg.Type {
	case MessageTypePing:
		client.sendMessage(WSMessage{Type: MessageTypePong, Timestamp: time.Now().UTC().Format(time.RFC3339)})

	case MessageTypeSubscribe:
		var data SubscribeData
		if err := json.Unmarshal(msg.Data, &data); err != nil || !knownView(data.View) {
			m.sendErrorToClient(client, "Unknown view")
			return
		}
		client.subscribe(m.provider, data.View, data.Params)

	case MessageTypeUnsubscribe:
		var data UnsubscribeData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.View == "" {
			m.sendErrorToClient(client, "view is required")
			return
		}
		client.unsubscribe(data.View)
		client.sendMessage(WSMessage{Type: MessageTypeUnsubscribed, View: data.View})

	case MessageTypeToggleInterest:
		var data ToggleInterestData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.RequestID == "" {
			m.sendErrorToClient(client, "requestId is required")
			return
		}
		ids := client.toggleInterest(data.RequestID)
		client.sendMessage(WSMessage{Type: MessageTypeInterest, Data: InterestData{RequestIDs: ids}})

	case MessageTypeRespondQuote:
		var data RespondQuoteData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.QuoteID == "" {
			m.sendErrorToClient(client, "quoteId is required")
			return
		}
		if data.Response != "accepted" && data.Response != "declined" {
			m.sendErrorToClient(client, "response must be accepted or declined")
			return
		}
		responses := client.respondToQuote(data.QuoteID, data.Response)
		client.sendMessage(WSMessage{Type: MessageTypeQuoteResponse, Data: QuoteResponseData{Responses: responses}})

	default:
		m.sendErrorToClient(client, "Unknown message type")
	}
}

func knownView(view string) bool {
	switch view {
	case ViewMovers, ViewBookings, ViewQuotes, ViewRequests, ViewMessages:
		return true
	}
	return false
}

func (m *Manager) sendErrorToClient(client *Client, message string) {
	client.sendMessage(WSMessage{Type: MessageTypeError, Data: errorData{Message: message}})
}

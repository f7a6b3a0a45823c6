// Package transport serves the assistant over NATS request/reply.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"kirana-assistant/internal/assistant"
	"kirana-assistant/internal/common/config"
	"kirana-assistant/internal/common/logger"
)

// Processor interprets one message. Satisfied by *assistant.Handler.
type Processor interface {
	Process(ctx context.Context, input *assistant.Input) (*assistant.Output, error)
}

type NATSTransport struct {
	conn    *nats.Conn
	config  *config.NATSConfig
	handler Processor
	logger  logger.Logger
	sub     *nats.Subscription
}

func NewNATSTransport(cfg *config.NATSConfig, handler Processor, log logger.Logger) (*NATSTransport, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name("kirana-assistant"),
		nats.Timeout(cfg.GetTimeout()),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSTransport{
		conn:    conn,
		config:  cfg,
		handler: handler,
		logger:  log.WithFields(map[string]interface{}{"component": "transport"}),
	}, nil
}

func (nt *NATSTransport) Start() error {
	sub, err := nt.conn.Subscribe(nt.config.RequestSubject, nt.handleMessage)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", nt.config.RequestSubject, err)
	}
	nt.sub = sub

	nt.logger.Info("listening for requests", map[string]interface{}{
		"subject": nt.config.RequestSubject,
	})
	return nil
}

func (nt *NATSTransport) handleMessage(msg *nats.Msg) {
	if err := validateRequest(msg.Data); err != nil {
		nt.sendError(msg, "", "PARSE_ERROR", err.Error())
		return
	}

	var request Request
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		nt.sendError(msg, "", "PARSE_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), nt.config.GetTimeout())
	defer cancel()

	output, err := nt.handler.Process(ctx, &assistant.Input{
		SessionID: request.SessionID,
		UserID:    request.UserID,
		Message:   request.Message,
		Voice:     request.Voice,
	})
	if err != nil {
		nt.logger.Error("message processing failed", map[string]interface{}{
			"sessionId": request.SessionID,
			"error":     err.Error(),
		})
		nt.sendError(msg, request.SessionID, "PROCESSING_FAILED", err.Error())
		return
	}

	nt.send(msg, &Response{
		SessionID: request.SessionID,
		Status:    StatusOK,
		Reply:     output.Reply,
		Intent:    output.Intent,
		Speak:     output.Speak,
	})
}

func (nt *NATSTransport) send(msg *nats.Msg, response *Response) {
	data, err := json.Marshal(response)
	if err != nil {
		nt.logger.Error("failed to marshal response", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if err := msg.Respond(data); err != nil {
		nt.logger.Error("failed to send response", map[string]interface{}{
			"sessionId": response.SessionID,
			"error":     err.Error(),
		})
	}
}

func (nt *NATSTransport) sendError(msg *nats.Msg, sessionID, errorCode, errorMessage string) {
	nt.send(msg, &Response{
		SessionID:    sessionID,
		Status:       StatusError,
		Reply:        "I'm sorry, I encountered an error processing your request. Please try again.",
		ErrorCode:    &errorCode,
		ErrorMessage: &errorMessage,
	})
}

func (nt *NATSTransport) Drain() error {
	if nt.sub != nil {
		return nt.sub.Drain()
	}
	return nil
}

func (nt *NATSTransport) Close() error {
	if nt.conn != nil {
		nt.conn.Close()
	}
	return nil
}

package events

import (
	"context"
	"encoding/json"
	"fmt"

	"gigdash/services/dashboard/internal/dashboard"
	"gigdash/services/dashboard/internal/errors"
	"gigdash/services/dashboard/internal/models"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// FilterChangedEvent is the request payload published when a client picks
// a country.
type FilterChangedEvent struct {
	Country string `json:"country"`
}

type errorReply struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Recomputer is the part of dashboard.Service the handler uses.
type Recomputer interface {
	OnFilterChanged(ctx context.Context, selection models.FilterSelection) (*dashboard.View, error)
}

type Handler struct {
	logger  *zap.Logger
	nc      *nats.Conn
	tracer  trace.Tracer
	svc     Recomputer
	subject string
	queue   string
	sub     *nats.Subscription
}

func NewHandler(logger *zap.Logger, nc *nats.Conn, tracer trace.Tracer, svc Recomputer, subject, queue string) *Handler {
	return &Handler{
		logger:  logger,
		nc:      nc,
		tracer:  tracer,
		svc:     svc,
		subject: subject,
		queue:   queue,
	}
}

func (h *Handler) RegisterSubscriptions(lc fx.Lifecycle) error {
	sub, err := h.nc.QueueSubscribe(h.subject, h.queue, h.handleFilterChanged)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", h.subject, err)
	}

	h.sub = sub
	h.logger.Info("registered NATS subscriptions", zap.String("subject", h.subject))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return h.sub.Drain()
		},
	})

	return nil
}

func (h *Handler) handleFilterChanged(msg *nats.Msg) {
	ctx, span := h.tracer.Start(context.Background(), "handleFilterChanged")
	defer span.End()

	reply := h.Handle(ctx, msg.Data)
	if msg.Reply == "" {
		return
	}
	if err := msg.Respond(reply); err != nil {
		span.RecordError(err)
		h.logger.Error("failed to reply to filter change",
			zap.Error(err),
			zap.String("subject", msg.Subject))
	}
}

// Handle decodes a FilterChangedEvent, recomputes the dashboard and returns
// the JSON reply: the view, or an error envelope.
func (h *Handler) Handle(ctx context.Context, data []byte) []byte {
	var event FilterChangedEvent
	if len(data) > 0 {
		if err := json.Unmarshal(data, &event); err != nil {
			h.logger.Warn("malformed filter change", zap.Error(err))
			return encodeError(errors.InvalidInput("malformed filter change event", err))
		}
	}

	view, err := h.svc.OnFilterChanged(ctx, models.NewFilterSelection(event.Country))
	if err != nil {
		h.logger.Error("failed to recompute dashboard",
			zap.String("country", event.Country),
			zap.Error(err))
		return encodeError(err)
	}

	out, err := json.Marshal(view)
	if err != nil {
		return encodeError(errors.Internal("marshaling dashboard view", err))
	}
	return out
}

func encodeError(err error) []byte {
	var reply errorReply
	reply.Error.Message = errors.Message(err)
	reply.Error.Code = string(errors.TypeOf(err))
	out, _ := json.Marshal(reply)
	return out
}

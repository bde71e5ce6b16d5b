package events

import (
	"context"
	"encoding/json"
	"time"

	"gigdash/common/telemetry"
	"gigdash/services/dashboard/internal/dashboard"
	"gigdash/services/dashboard/internal/errors"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("gigdash/dashboard/events")

// Requester publishes filter changes to a running dashboard service and
// waits for the recomputed view.
type Requester interface {
	RequestView(ctx context.Context, country string) (*dashboard.View, error)
	Close()
}

type natsRequester struct {
	conn    *nats.Conn
	subject string
	logger  *zap.Logger
}

func NewRequester(logger *zap.Logger, url, subject string, timeout time.Duration) (Requester, error) {
	opts := []nats.Option{
		nats.Timeout(timeout),
		nats.Name("dashboard-cli"),
		nats.ReconnectWait(time.Second),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, errors.Unavailable("connecting to NATS", err)
	}

	return &natsRequester{
		conn:    conn,
		subject: subject,
		logger:  logger,
	}, nil
}

func (r *natsRequester) RequestView(ctx context.Context, country string) (*dashboard.View, error) {
	ctx, span := tracer.Start(ctx, "RequestView")
	defer span.End()

	data, err := json.Marshal(FilterChangedEvent{Country: country})
	if err != nil {
		span.RecordError(err)
		return nil, errors.Internal("marshaling filter change", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", r.subject),
		telemetry.String("dashboard.country", country),
	)

	msg, err := r.conn.RequestWithContext(ctx, r.subject, data)
	if err != nil {
		span.RecordError(err)
		r.logger.Error("filter change request failed",
			zap.String("subject", r.subject),
			zap.Error(err))
		return nil, errors.Unavailable("requesting dashboard over NATS", err)
	}

	r.logger.Debug("received dashboard reply",
		zap.String("subject", r.subject),
		zap.Int("size", len(msg.Data)))
	return DecodeReply(msg.Data)
}

func (r *natsRequester) Close() {
	if r.conn != nil {
		r.conn.Close()
	}
}

// DecodeReply turns a reply produced by Handler.Handle back into a view, or
// into a domain error carrying the reply's code.
func DecodeReply(data []byte) (*dashboard.View, error) {
	var failure errorReply
	if err := json.Unmarshal(data, &failure); err != nil {
		return nil, errors.Internal("decoding dashboard reply", err)
	}
	if failure.Error.Code != "" {
		return nil, errors.New(errors.ErrorType(failure.Error.Code), failure.Error.Message, nil)
	}

	var view dashboard.View
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, errors.Internal("decoding dashboard view", err)
	}
	return &view, nil
}

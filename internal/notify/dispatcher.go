package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cleanbook/internal/metrics"
)

// Recorder persists the outcome of a dispatch. Optional.
type Recorder interface {
	Record(ctx context.Context, kind Kind, recordID string, res Result, dispatchErr error) error
}

// Dispatcher renders the emails for a submission and hands them to the Sender, one
// message per recipient. Failures are reported once; nothing is retried.
type Dispatcher struct {
	Sender       Sender
	Recorder     Recorder
	Log          *zap.Logger
	BusinessName string
}

func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Result, error) {
	res, err := d.dispatch(ctx, req)

	outcome := "success"
	if err != nil || !res.Success {
		outcome = "failure"
	}
	metrics.NotificationsSent.WithLabelValues(string(req.Kind), outcome).Inc()

	if d.Recorder != nil {
		if recErr := d.Recorder.Record(ctx, req.Kind, recordID(req.Record), res, err); recErr != nil {
			d.log().Warn("record notification failed", zap.String("kind", string(req.Kind)), zap.Error(recErr))
		}
	}
	return res, err
}

func (d *Dispatcher) dispatch(ctx context.Context, req Request) (Result, error) {
	if err := req.validate(); err != nil {
		return Result{}, err
	}
	if d.Sender == nil {
		return Result{}, ErrNotConfigured
	}

	name := d.BusinessName
	if name == "" {
		name = "Cleaning Services"
	}
	adminMsg, customerMsg, err := render(req, name)
	if err != nil {
		return Result{}, err
	}

	var msgs []*Message
	for _, m := range []*Message{adminMsg, customerMsg} {
		if m != nil {
			msgs = append(msgs, m)
		}
	}
	if len(msgs) == 0 {
		return Result{}, ErrNoRecipients
	}

	res := Result{DeliveryIDs: map[Role]string{}}
	for _, m := range msgs {
		id, err := d.Sender.Send(ctx, *m)
		if err != nil {
			if res.Failures == nil {
				res.Failures = map[Role]string{}
			}
			res.Failures[m.Role] = err.Error()
			d.log().Warn("email send failed",
				zap.String("kind", string(req.Kind)),
				zap.String("record_id", recordID(req.Record)),
				zap.String("role", string(m.Role)),
				zap.String("to", m.To),
				zap.Error(err),
			)
			continue
		}
		res.DeliveryIDs[m.Role] = id
	}
	res.Success = len(res.Failures) == 0

	if !res.Success && len(res.DeliveryIDs) == 0 {
		return res, fmt.Errorf("dispatch %s: all %d recipients failed", req.Kind, len(msgs))
	}
	return res, nil
}

func (d *Dispatcher) log() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

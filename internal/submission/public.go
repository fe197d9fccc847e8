package submission

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"cleanbook/internal/api"
	"cleanbook/internal/metrics"
	"cleanbook/internal/notify"
)

// Notifier dispatches the emails for a new submission.
type Notifier interface {
	Dispatch(ctx context.Context, req notify.Request) (notify.Result, error)
}

type NotificationStatus struct {
	Success bool `json:"success"`
}

// Created is the public response for an accepted submission.
type Created struct {
	ID           string             `json:"id"`
	Status       Status             `json:"status"`
	Notification NotificationStatus `json:"notification"`
}

// Announce sends the notification for a stored record and writes the 201 response.
// A failed dispatch is logged and reported in the body; the submission itself stands.
func Announce(w http.ResponseWriter, r *http.Request, n Notifier, log *zap.Logger, kind Kind, id string, status Status, req notify.Request) {
	metrics.SubmissionsCreated.WithLabelValues(string(kind)).Inc()

	var sent bool
	if n != nil {
		res, err := n.Dispatch(r.Context(), req)
		if err != nil && log != nil {
			log.Warn("notification dispatch failed",
				zap.String("kind", string(req.Kind)),
				zap.String("record_id", id),
				zap.Error(err),
			)
		}
		sent = err == nil && res.Success
	}

	api.WriteJSON(w, http.StatusCreated, Created{
		ID:           id,
		Status:       status,
		Notification: NotificationStatus{Success: sent},
	})
}

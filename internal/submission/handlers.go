package submission

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cleanbook/internal/api"
	"cleanbook/internal/audit"
	"cleanbook/internal/metrics"
)

type AuditLister interface {
	ListByRecord(ctx context.Context, recordKind, recordID string) ([]audit.Entry, error)
}

// Handlers serves the admin console routes for one record kind.
type Handlers[T any] struct {
	Kind  Kind
	Store Store[T]
	Audit AuditLister
	Log   *zap.Logger
}

// ValidID reports whether id is a record id. Anything else cannot exist.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Outcome is the metrics label for a mutation result.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidStatus):
		return "invalid"
	default:
		return "error"
	}
}

func (h Handlers[T]) List(w http.ResponseWriter, r *http.Request) {
	f, fields := h.parseFilter(r)
	if fields != nil {
		api.WriteValidationError(w, fields)
		return
	}

	items, err := h.Store.List(r.Context(), f)
	if err != nil {
		h.log().Error("list records failed", zap.String("kind", string(h.Kind)), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []T{}
	}

	f = f.Normalize()
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items, "limit": f.Limit, "offset": f.Offset})
}

func (h Handlers[T]) parseFilter(r *http.Request) (ListFilter, map[string]string) {
	var f ListFilter
	fields := map[string]string{}
	q := r.URL.Query()

	if s := q.Get("status"); s != "" {
		st, err := ParseStatus(h.Kind, s)
		if err != nil {
			fields["status"] = "unknown status for " + string(h.Kind)
		}
		f.Status = st
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			fields["limit"] = "must be a positive integer"
		}
		f.Limit = n
	}
	if s := q.Get("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			fields["offset"] = "must be a non-negative integer"
		}
		f.Offset = n
	}
	if len(fields) > 0 {
		return f, fields
	}
	return f, nil
}

func (h Handlers[T]) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !ValidID(id) {
		h.notFound(w)
		return
	}

	item, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.notFound(w)
			return
		}
		h.log().Error("get record failed", zap.String("kind", string(h.Kind)), zap.String("id", id), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, item)
}

// Statuses lists the legal statuses for the kind, in display order.
func (h Handlers[T]) Statuses(w http.ResponseWriter, r *http.Request) {
	out := make([]map[string]any, 0, len(statuses[h.Kind]))
	for _, s := range Statuses(h.Kind) {
		out = append(out, map[string]any{"value": s, "terminal": IsTerminal(h.Kind, s)})
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"kind":     h.Kind,
		"initial":  InitialStatus(h.Kind),
		"statuses": out,
	})
}

type PatchStatusRequest struct {
	Status string `json:"status"`
}

func (h Handlers[T]) PatchStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !ValidID(id) {
		h.notFound(w)
		return
	}

	var req PatchStatusRequest
	if err := api.DecodeJSON(w, r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	next, err := ParseStatus(h.Kind, req.Status)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "INVALID_STATUS", err.Error())
		return
	}

	err = h.Store.SetStatus(r.Context(), id, next, actor(r))
	h.mutated(w, r, "status", id, err, map[string]any{"id": id, "status": next})
}

func (h Handlers[T]) PatchNotes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !ValidID(id) {
		h.notFound(w)
		return
	}

	var a Annotation
	if err := api.DecodeJSON(w, r, &a); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	err := h.Store.Annotate(r.Context(), id, a, actor(r))
	h.mutated(w, r, "annotate", id, err, map[string]any{"id": id, "adminNotes": a.AdminNotes, "assignedTo": a.AssignedTo})
}

// Delete is permanent. The caller must confirm with ?confirm=true or X-Confirm-Delete: true.
func (h Handlers[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !ValidID(id) {
		h.notFound(w)
		return
	}
	if !deleteConfirmed(r) {
		api.WriteError(w, http.StatusPreconditionRequired, "CONFIRMATION_REQUIRED", "deletion is permanent; repeat with confirm=true")
		return
	}

	err := h.Store.Delete(r.Context(), id, actor(r))
	if err == nil {
		metrics.AdminMutations.WithLabelValues(string(h.Kind), "delete", Outcome(nil)).Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.mutated(w, r, "delete", id, err, nil)
}

func (h Handlers[T]) AuditTrail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !ValidID(id) {
		h.notFound(w)
		return
	}

	entries, err := h.Audit.ListByRecord(r.Context(), string(h.Kind), id)
	if err != nil {
		h.log().Error("list audit failed", zap.String("kind", string(h.Kind)), zap.String("id", id), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": entries})
}

func (h Handlers[T]) mutated(w http.ResponseWriter, r *http.Request, action, id string, err error, body any) {
	metrics.AdminMutations.WithLabelValues(string(h.Kind), action, Outcome(err)).Inc()
	switch {
	case err == nil:
		api.WriteJSON(w, http.StatusOK, body)
	case errors.Is(err, ErrNotFound):
		h.notFound(w)
	case errors.Is(err, ErrInvalidStatus):
		api.WriteError(w, http.StatusBadRequest, "INVALID_STATUS", err.Error())
	default:
		h.log().Error("admin mutation failed",
			zap.String("kind", string(h.Kind)),
			zap.String("action", action),
			zap.String("id", id),
			zap.String("actor", actor(r)),
			zap.Error(err),
		)
		api.WriteError(w, http.StatusInternalServerError, "UPDATE_FAILED", "update failed")
	}
}

func (h Handlers[T]) notFound(w http.ResponseWriter) {
	api.WriteError(w, http.StatusNotFound, "NOT_FOUND", string(h.Kind)+" not found")
}

func (h Handlers[T]) log() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}

func actor(r *http.Request) string {
	return api.AdminFromContext(r.Context()).Actor()
}

func deleteConfirmed(r *http.Request) bool {
	if v, err := strconv.ParseBool(r.URL.Query().Get("confirm")); err == nil && v {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Confirm-Delete")), "true")
}

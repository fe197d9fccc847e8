package httpapi

import (
	"net/http"

	"cleanbook/internal/api"
	"cleanbook/internal/catalog"
)

// listServices serves the form option lists. ?form=booking|quote, or the full catalog.
func listServices(w http.ResponseWriter, r *http.Request) {
	var items []catalog.ServiceInfo
	switch form := r.URL.Query().Get("form"); form {
	case "booking":
		items = catalog.BookingFormServices()
	case "quote":
		items = catalog.QuoteFormServices()
	case "":
		items = catalog.All()
	default:
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "form must be booking or quote")
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=300")
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

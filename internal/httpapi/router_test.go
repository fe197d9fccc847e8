package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanbook/internal/auth"
	"cleanbook/internal/catalog"
	"cleanbook/internal/session"
	"cleanbook/pkg/config"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRouter(Dependencies{
		Cfg: config.Config{
			PublicAllowedOrigins:     []string{"https://www.example-cleaning.com"},
			PublicRateLimitPerMinute: 60,
			PublicRateLimitBurst:     2,
		},
		Auth: &auth.Service{
			Sessions: session.NewRedisStoreWithClient(client),
			Tokens:   auth.Tokens{Secret: []byte("test-secret"), TTL: time.Hour},
		},
	})
}

func TestRouter_Healthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouter_Services(t *testing.T) {
	h := testRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/services?form=booking", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Items []catalog.ServiceInfo `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Items, 7)
	assert.Equal(t, "end-of-lease", out.Items[0].Value)
	assert.Equal(t, "solar-panel", out.Items[6].Value)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/services?form=invoice", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AdminRoutesRequireSession(t *testing.T) {
	h := testRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/v1/admin/bookings"},
		{http.MethodGet, "/v1/admin/quotes/statuses"},
		{http.MethodPatch, "/v1/admin/contact/5b0c2a8e-8f0e-4c1b-9d7e-0a1b2c3d4e5f/status"},
		{http.MethodDelete, "/v1/admin/bookings/5b0c2a8e-8f0e-4c1b-9d7e-0a1b2c3d4e5f?confirm=true"},
		{http.MethodPut, "/v1/admin/quotes/5b0c2a8e-8f0e-4c1b-9d7e-0a1b2c3d4e5f/amount"},
		{http.MethodGet, "/v1/admin/me"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`))
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.path)
	}
}

func TestRouter_PublicFormsValidateBeforeStore(t *testing.T) {
	h := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes", strings.NewReader(`{"name":"Ari","services":["gutters"]}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_PublicFormsAreRateLimited(t *testing.T) {
	h := testRouter(t)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(`{}`))
		req.RemoteAddr = "203.0.113.9:40000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, codes)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/v1/bookings", nil)
	req.Header.Set("Origin", "https://www.example-cleaning.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://www.example-cleaning.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-Confirm-Delete")
}

func TestRouter_Metrics(t *testing.T) {
	h := testRouter(t)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRouter_ServicesQuoteAndAll(t *testing.T) {
	h := testRouter(t)

	count := func(path string) int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
		var out struct {
			Items []catalog.ServiceInfo `json:"items"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		return len(out.Items)
	}

	assert.Equal(t, len(catalog.QuoteFormServices()), count("/v1/services?form=quote"))
	assert.Equal(t, len(catalog.All()), count("/v1/services"))
}

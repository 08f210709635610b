package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshelf/storefront/internal/models"
)

type stubAuthenticator struct {
	payload *models.TokenPayload
	err     error
}

func (s *stubAuthenticator) Authenticate(_ context.Context, _ string) (*models.TokenPayload, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name           string
		cookie         *http.Cookie
		auth           *stubAuthenticator
		wantStatusCode int
		wantNextCalled bool
	}{
		{
			name:   "valid_token_passes_payload",
			cookie: &http.Cookie{Name: "auth_token", Value: "token"},
			auth: &stubAuthenticator{
				payload: &models.TokenPayload{UserID: "u1", Role: models.RoleUser},
			},
			wantStatusCode: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "missing_cookie_return_401",
			auth:           &stubAuthenticator{},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "rejected_token_return_401",
			cookie:         &http.Cookie{Name: "auth_token", Value: "stale"},
			auth:           &stubAuthenticator{err: models.ErrInvalidToken},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				payload, ok := getAuthPayload(r.Context())
				require.True(t, ok)
				assert.Equal(t, tt.auth.payload, payload)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/user/orders", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}

			w := httptest.NewRecorder()
			Auth(tt.auth)(next).ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name           string
		payload        *models.TokenPayload
		wantStatusCode int
	}{
		{
			name:           "admin_passes",
			payload:        &models.TokenPayload{UserID: "u1", Role: models.RoleAdmin},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "regular_user_return_403",
			payload:        &models.TokenPayload{UserID: "u1", Role: models.RoleUser},
			wantStatusCode: http.StatusForbidden,
		},
		{
			name:           "no_payload_return_401",
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/admin/pricing", nil)
			if tt.payload != nil {
				ctx := context.WithValue(req.Context(), authPayloadKey, tt.payload)
				req = req.WithContext(ctx)
			}

			w := httptest.NewRecorder()
			AdminOnly(next).ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("preflight_answered_without_next", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
		w := httptest.NewRecorder()

		CORS(next).ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "authorization, x-client-info, apikey, content-type", res.Header.Get("Access-Control-Allow-Headers"))
	})

	t.Run("regular_request_passes_through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/pricing", nil)
		w := httptest.NewRecorder()

		CORS(next).ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusTeapot, res.StatusCode)
		assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	})
}

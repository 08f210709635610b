package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshelf/storefront/internal/models"
)

func TestClient_Send(t *testing.T) {
	t.Run("posts the message with a bearer key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/emails", r.URL.Path)
			assert.Equal(t, "Bearer re_key", r.Header.Get("Authorization"))

			var req sendRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "StyleShelf <orders@styleshelf.example>", req.From)
			assert.Equal(t, []string{"buyer@example.com"}, req.To)
			assert.Equal(t, "Payment Successful - StyleShelf", req.Subject)
			assert.Contains(t, req.HTML, "Payment Successful!")

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(SendResponse{ID: "re_123"})
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "re_key", "StyleShelf <orders@styleshelf.example>")
		resp, err := c.Send(context.Background(), Message{
			To:      "buyer@example.com",
			Subject: "Payment Successful - StyleShelf",
			HTML:    "<h2>Payment Successful!</h2>",
		})
		require.NoError(t, err)
		assert.Equal(t, "re_123", resp.ID)
	})

	t.Run("missing api key fails before any request", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "", "StyleShelf <orders@styleshelf.example>")
		_, err := c.Send(context.Background(), Message{To: "buyer@example.com"})
		assert.ErrorIs(t, err, models.ErrMissingAPIKey)
		assert.Zero(t, calls)
	})

	t.Run("provider refusal carries the response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "re_key", "bad sender")
		_, err := c.Send(context.Background(), Message{To: "buyer@example.com"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 422")
		assert.Contains(t, err.Error(), "invalid from address")
	})
}

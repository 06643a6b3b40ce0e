// C:\Users\incheon\Desktop\KYUNGRAK\oauth\oauth_test.go
package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, userinfo http.HandlerFunc) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"token_type":   "bearer",
		})
	})
	mux.HandleFunc("/userinfo", userinfo)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewClient("client-id", "client-secret",
		srv.URL+"/auth", srv.URL+"/token", "http://localhost/cb", srv.URL+"/userinfo")
}

func TestConfigured(t *testing.T) {
	c := NewClient("id", "secret", "a", "t", "r", "u")
	assert.True(t, c.Configured())

	c = NewClient("", "", "", "", "", "")
	assert.False(t, c.Configured())
}

func TestBuildAuthorizationURL(t *testing.T) {
	c := NewClient("client-id", "", "https://auth.example/authorize", "t", "http://localhost/cb", "u")
	u := c.BuildAuthorizationURL("state-123")
	assert.Contains(t, u, "https://auth.example/authorize")
	assert.Contains(t, u, "state=state-123")
	assert.Contains(t, u, "client_id=client-id")
}

func TestExchangeCodeForIdentity(t *testing.T) {
	t.Run("카카오 형식 응답", func(t *testing.T) {
		c := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":         1234567,
				"properties": map[string]string{"nickname": "길동"},
			})
		})
		id, err := c.ExchangeCodeForIdentity(context.Background(), "code")
		require.NoError(t, err)
		assert.Equal(t, "1234567", id.ExternalID)
		assert.Equal(t, "길동", id.DisplayName)
	})

	t.Run("name 필드가 우선", func(t *testing.T) {
		c := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id": "abc-1", "name": "홍길동", "nickname": "길동",
			})
		})
		id, err := c.ExchangeCodeForIdentity(context.Background(), "code")
		require.NoError(t, err)
		assert.Equal(t, "홍길동", id.DisplayName)
	})

	t.Run("id 없는 응답은 실패", func(t *testing.T) {
		c := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"name": "이름만"})
		})
		_, err := c.ExchangeCodeForIdentity(context.Background(), "code")
		assert.ErrorIs(t, err, ErrExchangeFailed)
	})

	t.Run("userinfo 5xx 는 실패", func(t *testing.T) {
		c := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		_, err := c.ExchangeCodeForIdentity(context.Background(), "code")
		assert.ErrorIs(t, err, ErrExchangeFailed)
	})
}

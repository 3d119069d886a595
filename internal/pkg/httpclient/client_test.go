package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/backend/internal/pkg/apperrors"
)

func TestRequestDecodesJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		json.NewEncoder(w).Encode(map[string]string{"greeting": "hello"})
	}))
	defer server.Close()

	client := NewClient(server.Client())
	var out map[string]string
	err := client.Request(context.Background(), server.URL, Options{}, &out)
	require.NoError(t, err)
	assert.Equal(t, "hello", out["greeting"])
}

func TestRequestSendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Kenya", body["country"])
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := NewClient(server.Client())
	err := client.Request(context.Background(), server.URL, Options{
		Method: http.MethodPost,
		Body:   map[string]string{"country": "Kenya"},
	}, nil)
	require.NoError(t, err)
}

func TestRequestNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.Client())
	err := client.Request(context.Background(), server.URL, Options{}, nil)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
	assert.Contains(t, err.Error(), "502")
}

func TestRequestNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient(nil)
	err := client.Request(context.Background(), server.URL, Options{}, nil)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}

func TestRequestCustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-123", r.Header.Get("X-Api-Key"))
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := NewClient(server.Client())
	err := client.Request(context.Background(), server.URL, Options{
		Headers: map[string]string{"X-Api-Key": "token-123"},
	}, nil)
	require.NoError(t, err)
}

func TestRequestWithHeadersReturnsEmptyOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient(nil)
	headers, err := client.RequestWithHeaders(context.Background(), server.URL, Options{}, nil)
	require.NoError(t, err)
	assert.Empty(t, headers)
}

func TestRequestWithHeadersExposesResponseHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Build-Checksum", "abc123")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient(server.Client())
	var out map[string]bool
	headers, err := client.RequestWithHeaders(context.Background(), server.URL, Options{}, &out)
	require.NoError(t, err)
	assert.Equal(t, "abc123", headers.Get("X-Build-Checksum"))
	assert.True(t, out["ok"])
}

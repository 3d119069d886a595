package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/backend/internal/pkg/apperrors"
	"github.com/schoolhub/backend/internal/pkg/httpclient"
)

func newGeoTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/countries/positions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": false,
			"msg":   "countries and positions retrieved",
			"data": []map[string]string{
				{"name": "Kenya", "iso2": "KE"},
				{"name": "Japan", "iso2": "JP"},
			},
		})
	})

	mux.HandleFunc("/countries/states", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body["country"] == "Atlantis" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": true,
				"msg":   "country not found",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": false,
			"msg":   "states retrieved",
			"data": map[string]interface{}{
				"name": body["country"],
				"states": []map[string]string{
					{"name": "Nairobi", "state_code": "30"},
				},
			},
		})
	})

	mux.HandleFunc("/countries/state/cities", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotEmpty(t, body["country"])
		assert.NotEmpty(t, body["state"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": false,
			"msg":   "cities retrieved",
			"data":  []string{"Westlands", "Karen"},
		})
	})

	return httptest.NewServer(mux)
}

func TestGeoServiceGetCountries(t *testing.T) {
	server := newGeoTestServer(t)
	defer server.Close()
	svc := NewGeoService(httpclient.NewClient(server.Client()), server.URL)

	countries, err := svc.GetCountries(context.Background())
	require.NoError(t, err)

	require.Len(t, countries, 2)
	assert.Equal(t, "Kenya", countries[0].Name)
	assert.Equal(t, "KE", countries[0].ISO2)
}

func TestGeoServiceGetStates(t *testing.T) {
	server := newGeoTestServer(t)
	defer server.Close()
	svc := NewGeoService(httpclient.NewClient(server.Client()), server.URL)

	states, err := svc.GetStates(context.Background(), "Kenya")
	require.NoError(t, err)

	require.Len(t, states, 1)
	assert.Equal(t, "Nairobi", states[0].Name)
	assert.Equal(t, "30", states[0].StateCode)
}

func TestGeoServiceGetStatesUpstreamError(t *testing.T) {
	server := newGeoTestServer(t)
	defer server.Close()
	svc := NewGeoService(httpclient.NewClient(server.Client()), server.URL)

	_, err := svc.GetStates(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
	assert.Contains(t, err.Error(), "country not found")
}

func TestGeoServiceGetCities(t *testing.T) {
	server := newGeoTestServer(t)
	defer server.Close()
	svc := NewGeoService(httpclient.NewClient(server.Client()), server.URL)

	cities, err := svc.GetCities(context.Background(), "Kenya", "Nairobi")
	require.NoError(t, err)

	assert.Equal(t, []string{"Westlands", "Karen"}, cities)
}

func TestGeoServiceUpstreamDown(t *testing.T) {
	server := newGeoTestServer(t)
	server.Close()
	svc := NewGeoService(httpclient.NewClient(nil), server.URL)

	_, err := svc.GetCountries(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}

func TestGeoServiceEmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"error": false, "msg": "ok", "data": nil})
	}))
	defer server.Close()
	svc := NewGeoService(httpclient.NewClient(server.Client()), server.URL)

	countries, err := svc.GetCountries(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, countries)
	assert.Empty(t, countries)
}

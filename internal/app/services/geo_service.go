package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/schoolhub/backend/internal/pkg/apperrors"
	"github.com/schoolhub/backend/internal/pkg/httpclient"
)

// Country is one entry from the countries listing.
type Country struct {
	Name string `json:"name"`
	ISO2 string `json:"iso2"`
}

// State is one entry from a country's state listing.
type State struct {
	Name      string `json:"name"`
	StateCode string `json:"state_code"`
}

type countriesEnvelope struct {
	Error bool      `json:"error"`
	Msg   string    `json:"msg"`
	Data  []Country `json:"data"`
}

type statesEnvelope struct {
	Error bool   `json:"error"`
	Msg   string `json:"msg"`
	Data  struct {
		Name   string  `json:"name"`
		States []State `json:"states"`
	} `json:"data"`
}

type citiesEnvelope struct {
	Error bool     `json:"error"`
	Msg   string   `json:"msg"`
	Data  []string `json:"data"`
}

// GeoService proxies a public geo API for country/state/city lookups.
type GeoService struct {
	client  *httpclient.Client
	baseURL string
}

// NewGeoService creates a new geo service instance
func NewGeoService(client *httpclient.Client, baseURL string) *GeoService {
	return &GeoService{client: client, baseURL: baseURL}
}

// GetCountries lists all countries known to the upstream API.
func (s *GeoService) GetCountries(ctx context.Context) ([]Country, error) {
	var envelope countriesEnvelope
	url := s.baseURL + "/countries/positions"
	if err := s.client.Request(ctx, url, httpclient.Options{Method: http.MethodGet}, &envelope); err != nil {
		return nil, err
	}
	if envelope.Error {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrExternalService, envelope.Msg)
	}
	if envelope.Data == nil {
		envelope.Data = []Country{}
	}
	return envelope.Data, nil
}

// GetStates lists the states of one country.
func (s *GeoService) GetStates(ctx context.Context, country string) ([]State, error) {
	var envelope statesEnvelope
	url := s.baseURL + "/countries/states"
	opts := httpclient.Options{
		Method: http.MethodPost,
		Body:   map[string]string{"country": country},
	}
	if err := s.client.Request(ctx, url, opts, &envelope); err != nil {
		return nil, err
	}
	if envelope.Error {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrExternalService, envelope.Msg)
	}
	if envelope.Data.States == nil {
		envelope.Data.States = []State{}
	}
	return envelope.Data.States, nil
}

// GetCities lists the cities of one state within a country.
func (s *GeoService) GetCities(ctx context.Context, country, state string) ([]string, error) {
	var envelope citiesEnvelope
	url := s.baseURL + "/countries/state/cities"
	opts := httpclient.Options{
		Method: http.MethodPost,
		Body:   map[string]string{"country": country, "state": state},
	}
	if err := s.client.Request(ctx, url, opts, &envelope); err != nil {
		return nil, err
	}
	if envelope.Error {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrExternalService, envelope.Msg)
	}
	if envelope.Data == nil {
		envelope.Data = []string{}
	}
	return envelope.Data, nil
}

package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sendgrid/rest"

	"logiroute/ms-delivery/pkg/metrics"
	"logiroute/ms-delivery/pkg/model"
)

//go:generate mockgen -destination=../mocks/mock_geo.go -package=mocks logiroute/ms-delivery/pkg/geo Provider

var (
	ErrNoRoute  = errors.New("no route available")
	ErrNoResult = errors.New("no geocoding result")
)

type DirectionsRequest struct {
	Origin      model.LatLng
	Destination model.LatLng
	Waypoints   []model.LatLng
	Optimize    bool
}

// Provider is the external directions and geocoding API.
type Provider interface {
	Directions(ctx context.Context, req DirectionsRequest) ([]model.GoogleRoute, error)
	Geocode(ctx context.Context, address string) ([]model.GeocodeResult, error)
	ReverseGeocode(ctx context.Context, p model.LatLng) ([]model.GeocodeResult, error)
}

// ProviderError carries a non OK status returned by the provider.
type ProviderError struct {
	Status  string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return "geo provider status " + e.Status
	}
	return fmt.Sprintf("geo provider status %s: %s", e.Status, e.Message)
}

type GoogleClient struct {
	baseURL string
	apiKey  string
	client  *rest.Client
}

func NewGoogleClient(baseURL, apiKey string, timeout time.Duration) *GoogleClient {
	return &GoogleClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &rest.Client{HTTPClient: &http.Client{Timeout: timeout}},
	}
}

type directionsResponse struct {
	Status       string              `json:"status"`
	ErrorMessage string              `json:"error_message"`
	Routes       []model.GoogleRoute `json:"routes"`
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string   `json:"formatted_address"`
		PlaceID          string   `json:"place_id"`
		Types            []string `json:"types"`
		Geometry         struct {
			Location model.LatLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *GoogleClient) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	params["key"] = c.apiKey
	resp, err := c.client.SendWithContext(ctx, rest.Request{
		Method:      rest.Get,
		BaseURL:     c.baseURL + path,
		QueryParams: params,
	})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geo provider http status %d", resp.StatusCode)
	}
	return json.Unmarshal([]byte(resp.Body), out)
}

func (c *GoogleClient) Directions(ctx context.Context, req DirectionsRequest) (routes []model.GoogleRoute, err error) {
	defer func() { metrics.RecordProviderCall("directions", err) }()

	params := map[string]string{
		"origin":      FormatLatLng(req.Origin),
		"destination": FormatLatLng(req.Destination),
		"mode":        "driving",
	}
	if len(req.Waypoints) > 0 {
		parts := make([]string, 0, len(req.Waypoints)+1)
		if req.Optimize {
			parts = append(parts, "optimize:true")
		}
		for _, w := range req.Waypoints {
			parts = append(parts, FormatLatLng(w))
		}
		params["waypoints"] = strings.Join(parts, "|")
	}

	var res directionsResponse
	if err = c.get(ctx, "/directions/json", params, &res); err != nil {
		return nil, err
	}
	switch res.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, ErrNoRoute
	default:
		return nil, &ProviderError{Status: res.Status, Message: res.ErrorMessage}
	}
	if len(res.Routes) == 0 {
		return nil, ErrNoRoute
	}
	return res.Routes, nil
}

func (c *GoogleClient) Geocode(ctx context.Context, address string) ([]model.GeocodeResult, error) {
	return c.geocode(ctx, "geocode", map[string]string{"address": address})
}

func (c *GoogleClient) ReverseGeocode(ctx context.Context, p model.LatLng) ([]model.GeocodeResult, error) {
	return c.geocode(ctx, "reverse_geocode", map[string]string{"latlng": FormatLatLng(p)})
}

func (c *GoogleClient) geocode(ctx context.Context, op string, params map[string]string) (results []model.GeocodeResult, err error) {
	defer func() { metrics.RecordProviderCall(op, err) }()

	var res geocodeResponse
	if err = c.get(ctx, "/geocode/json", params, &res); err != nil {
		return nil, err
	}
	switch res.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, ErrNoResult
	default:
		return nil, &ProviderError{Status: res.Status, Message: res.ErrorMessage}
	}

	results = make([]model.GeocodeResult, 0, len(res.Results))
	for _, r := range res.Results {
		results = append(results, model.GeocodeResult{
			FormattedAddress: r.FormattedAddress,
			PlaceID:          r.PlaceID,
			Location:         r.Geometry.Location,
			Types:            r.Types,
		})
	}
	return results, nil
}

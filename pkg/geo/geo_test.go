package geo

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logiroute/ms-delivery/pkg/model"
)

var bogota = model.LatLng{Lat: 4.6097, Lng: -74.0817}

func TestHaversineMeters(t *testing.T) {
	assert.Equal(t, float64(0), HaversineMeters(bogota, bogota))

	// one degree of latitude is about 111.2 km
	d := HaversineMeters(model.LatLng{Lat: 0, Lng: 0}, model.LatLng{Lat: 1, Lng: 0})
	assert.InDelta(t, 111195, d, 100)

	medellin := model.LatLng{Lat: 6.2442, Lng: -75.5812}
	assert.InDelta(t, HaversineMeters(bogota, medellin), HaversineMeters(medellin, bogota), 1e-6)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   model.LatLng
		want model.LatLng
		kept bool
	}{
		{name: "valid", in: model.LatLng{Lat: 10, Lng: 20}, want: model.LatLng{Lat: 10, Lng: 20}, kept: true},
		{name: "lat out of range", in: model.LatLng{Lat: 91, Lng: 0}, want: bogota},
		{name: "lng out of range", in: model.LatLng{Lat: 0, Lng: -181}, want: bogota},
		{name: "nan", in: model.LatLng{Lat: math.NaN(), Lng: 0}, want: bogota},
		{name: "edge", in: model.LatLng{Lat: -90, Lng: 180}, want: model.LatLng{Lat: -90, Lng: 180}, kept: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, kept := Sanitize(&tt.in, bogota)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.kept, kept)
		})
	}

	got, kept := Sanitize(nil, bogota)
	assert.Equal(t, bogota, got)
	assert.False(t, kept)
}

func TestFormatLatLng(t *testing.T) {
	assert.Equal(t, "4.609700,-74.081700", FormatLatLng(bogota))
}

const directionsOK = `{
  "status": "OK",
  "routes": [
    {"summary": "first", "legs": [
      {"distance": {"text": "1 km", "value": 1000}, "duration": {"text": "2 mins", "value": 120}},
      {"distance": {"text": "2 km", "value": 2000}, "duration": {"text": "4 mins", "value": 240}}
    ], "overview_polyline": {"points": "abc"}, "waypoint_order": [0]},
    {"summary": "second", "legs": []}
  ]
}`

func TestGoogleClient_Directions(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/directions/json", r.URL.Path)
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(directionsOK))
	}))
	defer srv.Close()

	c := NewGoogleClient(srv.URL+"/", "k", time.Second)
	routes, err := c.Directions(context.Background(), DirectionsRequest{
		Origin:      bogota,
		Destination: model.LatLng{Lat: 4.7, Lng: -74.1},
		Waypoints:   []model.LatLng{{Lat: 4.65, Lng: -74.05}},
		Optimize:    true,
	})
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, "first", routes[0].Summary)
	assert.Equal(t, float64(2000), routes[0].Legs[1].Distance.Value)
	assert.Equal(t, "abc", routes[0].OverviewPolyline.Points)

	assert.Equal(t, "k", gotQuery["key"][0])
	assert.Equal(t, "4.609700,-74.081700", gotQuery["origin"][0])
	assert.Equal(t, "optimize:true|4.650000,-74.050000", gotQuery["waypoints"][0])
}

func TestGoogleClient_DirectionsErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "zero results", status: http.StatusOK, body: `{"status":"ZERO_RESULTS","routes":[]}`, wantErr: ErrNoRoute},
		{name: "ok but empty", status: http.StatusOK, body: `{"status":"OK","routes":[]}`, wantErr: ErrNoRoute},
		{name: "denied", status: http.StatusOK, body: `{"status":"REQUEST_DENIED","error_message":"bad key"}`},
		{name: "http error", status: http.StatusInternalServerError, body: `oops`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGoogleClient(srv.URL, "k", time.Second).Directions(context.Background(), DirectionsRequest{Origin: bogota, Destination: bogota})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestGoogleClient_DirectionsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewGoogleClient(url, "k", time.Second).Directions(context.Background(), DirectionsRequest{Origin: bogota, Destination: bogota})
	assert.Error(t, err)
}

func TestGoogleClient_Geocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/json", r.URL.Path)
		if r.URL.Query().Get("latlng") != "" {
			_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
			return
		}
		assert.Equal(t, "Carrera 7, Bogota", r.URL.Query().Get("address"))
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"Cra. 7, Bogota","place_id":"p1","types":["route"],"geometry":{"location":{"lat":4.6,"lng":-74.07}}}]}`))
	}))
	defer srv.Close()

	c := NewGoogleClient(srv.URL, "k", time.Second)
	res, err := c.Geocode(context.Background(), "Carrera 7, Bogota")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "p1", res[0].PlaceID)
	assert.Equal(t, model.LatLng{Lat: 4.6, Lng: -74.07}, res[0].Location)

	_, err = c.ReverseGeocode(context.Background(), bogota)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls, last int32

	for i := 1; i <= 5; i++ {
		i := i
		d.Trigger("order-1", func() {
			atomic.AddInt32(&calls, 1)
			atomic.StoreInt32(&last, int32(i))
		})
	}
	assert.Equal(t, 1, d.Pending())

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(5), atomic.LoadInt32(&last))
	assert.Equal(t, 0, d.Pending())
}

func TestDebouncer_IndependentKeys(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var calls int32
	d.Trigger("a", func() { atomic.AddInt32(&calls, 1) })
	d.Trigger("b", func() { atomic.AddInt32(&calls, 1) })

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls int32
	d.Trigger("a", func() { atomic.AddInt32(&calls, 1) })
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

package model

import "math"

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p LatLng) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return math.Abs(p.Lat) <= 90 && math.Abs(p.Lng) <= 180
}

// GoogleRoute mirrors one entry of the directions API "routes" array.
type GoogleRoute struct {
	Summary          string      `json:"summary"`
	Legs             []RouteLeg  `json:"legs"`
	OverviewPolyline Polyline    `json:"overview_polyline"`
	Bounds           RouteBounds `json:"bounds"`
	WaypointOrder    []int       `json:"waypoint_order"`
	Copyrights       string      `json:"copyrights"`
	Warnings         []string    `json:"warnings"`
}

type RouteLeg struct {
	Distance      TextValue   `json:"distance"`
	Duration      TextValue   `json:"duration"`
	StartAddress  string      `json:"start_address"`
	EndAddress    string      `json:"end_address"`
	StartLocation LatLng      `json:"start_location"`
	EndLocation   LatLng      `json:"end_location"`
	Steps         []RouteStep `json:"steps"`
}

type RouteStep struct {
	Distance         TextValue `json:"distance"`
	Duration         TextValue `json:"duration"`
	StartLocation    LatLng    `json:"start_location"`
	EndLocation      LatLng    `json:"end_location"`
	HTMLInstructions string    `json:"html_instructions"`
	Polyline         Polyline  `json:"polyline"`
	TravelMode       string    `json:"travel_mode"`
	Maneuver         string    `json:"maneuver,omitempty"`
}

type TextValue struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

type Polyline struct {
	Points string `json:"points"`
}

type RouteBounds struct {
	Northeast LatLng `json:"northeast"`
	Southwest LatLng `json:"southwest"`
}

type GeocodeResult struct {
	FormattedAddress string   `json:"formatted_address"`
	PlaceID          string   `json:"place_id"`
	Location         LatLng   `json:"location"`
	Types            []string `json:"types"`
}

// RouteRequest points are optional; a missing point is treated like a malformed one.
type RouteRequest struct {
	CurrentPosition *LatLng `json:"current_position"`
	Pickup          *LatLng `json:"pickup"`
	Delivery        *LatLng `json:"delivery"`
}

type OptimizeRouteRequest struct {
	Origin *LatLng  `json:"origin"`
	Stops  []LatLng `json:"stops"`
}

// RouteResult is the first provider route plus totals over its legs.
type RouteResult struct {
	Route         GoogleRoute `json:"route"`
	Distance      float64     `json:"distance"`
	Duration      float64     `json:"duration"`
	WaypointOrder []int       `json:"waypoint_order,omitempty"`
}

type CacheStatsResponse struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	HitRate float64 `json:"hit_rate"`
	Size    int     `json:"size"`
}

type GeocodeParam struct {
	Address string `json:"address" form:"address"`
}

type ReverseGeocodeParam struct {
	Lat *float64 `json:"lat" form:"lat" valid:"Required"`
	Lng *float64 `json:"lng" form:"lng" valid:"Required"`
}

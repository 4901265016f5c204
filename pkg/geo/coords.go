package geo

import (
	"math"
	"strconv"

	"logiroute/ms-delivery/pkg/model"
)

const earthRadiusMeters = 6371000.0

// HaversineMeters is the great-circle distance between two points.
func HaversineMeters(a, b model.LatLng) float64 {
	lat1, lat2 := toRad(a.Lat), toRad(b.Lat)
	dLat := lat2 - lat1
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Sanitize returns *p when present and valid, otherwise def. The bool reports whether p was kept.
func Sanitize(p *model.LatLng, def model.LatLng) (model.LatLng, bool) {
	if p != nil && p.Valid() {
		return *p, true
	}
	return def, false
}

// FormatLatLng renders a point the way the provider expects it in query strings.
func FormatLatLng(p model.LatLng) string {
	return strconv.FormatFloat(p.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(p.Lng, 'f', 6, 64)
}

package geo

import (
	"math"
	"sort"
)

const earthRadiusKm = 6371.0

// Haversine computes the great-circle distance in kilometers between two
// points given in decimal degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Candidate is a profile position considered by Nearby. Profiles missing
// either coordinate are skipped.
type Candidate struct {
	ID        string
	Latitude  *float64
	Longitude *float64
}

// Match is a candidate within the search radius, ranked by distance.
type Match struct {
	ID         string  `json:"id"`
	DistanceKm float64 `json:"distance_km"`
}

// Nearby filters candidates by great-circle distance from the center, drops
// excludeID and candidates without coordinates, sorts ascending by distance
// (input order preserved on ties) and truncates to limit.
func Nearby(candidates []Candidate, centerLat, centerLng, radiusKm float64, limit int, excludeID string) []Match {
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == excludeID || c.Latitude == nil || c.Longitude == nil {
			continue
		}

		distance := Haversine(centerLat, centerLng, *c.Latitude, *c.Longitude)
		if distance > radiusKm {
			continue
		}

		matches = append(matches, Match{ID: c.ID, DistanceKm: distance})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches
}

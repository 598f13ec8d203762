package geo

import (
	"math"
	"testing"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestHaversineZeroDistance(t *testing.T) {
	points := [][2]float64{{0, 0}, {40.4168, -3.7038}, {-33.8688, 151.2093}}
	for _, p := range points {
		if d := Haversine(p[0], p[1], p[0], p[1]); d != 0 {
			t.Fatalf("expected zero distance for identical point %v, got %f", p, d)
		}
	}
}

func TestHaversineSymmetry(t *testing.T) {
	d1 := Haversine(40.4168, -3.7038, 41.3874, 2.1686)
	d2 := Haversine(41.3874, 2.1686, 40.4168, -3.7038)
	if math.Abs(d1-d2) > 1e-9 {
		t.Fatalf("expected symmetric distances, got %f and %f", d1, d2)
	}
}

func TestHaversineOneDegreeLatitude(t *testing.T) {
	// One degree of latitude along a meridian is roughly 111.19 km.
	d := Haversine(0, 0, 1, 0)
	if math.Abs(d-111.19) > 0.1 {
		t.Fatalf("expected ~111.19 km for 1 degree of latitude, got %f", d)
	}
}

func TestNearbyFiltersSortsAndTruncates(t *testing.T) {
	// Candidates at roughly 5, 12 and 30 km north of the center.
	candidates := []Candidate{
		{ID: "far", Latitude: floatPtr(30.0 / 111.19), Longitude: floatPtr(0)},
		{ID: "mid", Latitude: floatPtr(12.0 / 111.19), Longitude: floatPtr(0)},
		{ID: "near", Latitude: floatPtr(5.0 / 111.19), Longitude: floatPtr(0)},
	}

	matches := Nearby(candidates, 0, 0, 20, 10, "me")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches within 20 km, got %d", len(matches))
	}
	if matches[0].ID != "near" || matches[1].ID != "mid" {
		t.Fatalf("expected [near mid], got [%s %s]", matches[0].ID, matches[1].ID)
	}
	if matches[0].DistanceKm > matches[1].DistanceKm {
		t.Fatal("expected matches sorted ascending by distance")
	}
}

func TestNearbyExcludesRequesterAndMissingCoordinates(t *testing.T) {
	candidates := []Candidate{
		{ID: "me", Latitude: floatPtr(0), Longitude: floatPtr(0)},
		{ID: "no-lat", Longitude: floatPtr(0)},
		{ID: "no-lng", Latitude: floatPtr(0)},
		{ID: "other", Latitude: floatPtr(0.01), Longitude: floatPtr(0.01)},
	}

	matches := Nearby(candidates, 0, 0, 100, 10, "me")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].ID != "other" {
		t.Fatalf("expected match other, got %s", matches[0].ID)
	}
}

func TestNearbyRespectsLimit(t *testing.T) {
	candidates := make([]Candidate, 10)
	for i := range candidates {
		lat := float64(i) * 0.01
		candidates[i] = Candidate{ID: string(rune('a' + i)), Latitude: &lat, Longitude: floatPtr(0)}
	}

	matches := Nearby(candidates, 0, 0, 1000, 3, "")
	if len(matches) != 3 {
		t.Fatalf("expected limit of 3 matches, got %d", len(matches))
	}
}

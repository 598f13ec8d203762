package geocode

import (
	"testing"
)

func TestCacheKeyNormalization(t *testing.T) {
	if got := cacheKey(" Berlin ", " 10115 "); got != "geocode:berlin:10115" {
		t.Fatalf("unexpected cache key %q", got)
	}
}

func TestCoordinateRoundTrip(t *testing.T) {
	lat, lng, err := parseCoordinates(formatCoordinates(52.5170365, 13.3888599))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 52.5170365 || lng != 13.3888599 {
		t.Fatalf("round trip lost precision: %v, %v", lat, lng)
	}
}

func TestParseCoordinatesRejectsMalformedValues(t *testing.T) {
	cases := []string{"", "52.5", "52.5,13.4,1", "abc,13.4", "52.5,xyz"}
	for _, value := range cases {
		if _, _, err := parseCoordinates(value); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}

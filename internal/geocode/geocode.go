package geocode

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"resty.dev/v3"
)

const cacheTTL = 30 * 24 * time.Hour

// Service resolves a city and postal code to coordinates through the
// Nominatim search API. Results are cached in Redis because the upstream
// service enforces an absolute rate limit of one request per second.
type Service struct {
	client    *resty.Client
	redis     *redis.Client
	baseURL   string
	userAgent string
}

func NewService(client *resty.Client, redisClient *redis.Client, baseURL, userAgent string) *Service {
	return &Service{
		client:    client,
		redis:     redisClient,
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Lookup returns the coordinates for the given city and postal code.
// ok is false when the location is unknown to the upstream service.
func (s *Service) Lookup(ctx context.Context, city, postalCode string) (lat, lng float64, ok bool, err error) {
	key := cacheKey(city, postalCode)

	cached, err := s.redis.Get(ctx, key).Result()
	if err == nil {
		lat, lng, err = parseCoordinates(cached)
		if err == nil {
			return lat, lng, true, nil
		}
		log.Err(err).Str("key", key).Msg("geocode: dropping corrupt cache entry")
		s.redis.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Err(err).Str("key", key).Msg("geocode: cache read failed")
	}

	var results []searchResult
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", s.userAgent).
		SetQueryParams(map[string]string{
			"city":       city,
			"postalcode": postalCode,
			"format":     "json",
			"limit":      "1",
		}).
		SetResult(&results).
		Get(s.baseURL + "/search")
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to query geocoding service: %w", err)
	}
	if resp.IsError() {
		return 0, 0, false, fmt.Errorf("geocoding service returned status %d", resp.StatusCode())
	}

	if len(results) == 0 {
		return 0, 0, false, nil
	}

	lat, lng, err = parseCoordinates(results[0].Lat + "," + results[0].Lon)
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to parse geocoding response: %w", err)
	}

	if err := s.redis.Set(ctx, key, formatCoordinates(lat, lng), cacheTTL).Err(); err != nil {
		log.Err(err).Str("key", key).Msg("geocode: cache write failed")
	}

	return lat, lng, true, nil
}

func cacheKey(city, postalCode string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(city)) + ":" + strings.TrimSpace(postalCode)
}

func formatCoordinates(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}

func parseCoordinates(value string) (float64, float64, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed coordinate pair %q", value)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}

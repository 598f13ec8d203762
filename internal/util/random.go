package util

import (
	"fmt"

	"github.com/gosimple/slug"
	"github.com/lithammer/shortuuid/v4"
)

// GenerateImageName builds a URL-safe, collision-resistant file name for an
// uploaded image, derived from a human-readable base (e.g. the username).
func GenerateImageName(base string) string {
	baseSlug := slug.Make(base)
	shortID := shortuuid.New()[:8]

	return fmt.Sprintf("%s-%s", baseSlug, shortID)
}

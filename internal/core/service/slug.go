package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/inkwell/blog-platform/internal/core/ports"
)

var (
	slugStripPattern    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpacePattern    = regexp.MustCompile(`\s+`)
	slugCollapsePattern = regexp.MustCompile(`-+`)
)

// slugify normalizes a title into a URL-safe slug: lowercase, everything but
// letters, digits, spaces and hyphens stripped, whitespace runs collapsed to
// single hyphens, hyphen runs collapsed.
func slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStripPattern.ReplaceAllString(s, "")
	s = slugSpacePattern.ReplaceAllString(s, "-")
	s = slugCollapsePattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// uniqueSlug returns the first free slug derived from title: the normalized
// base, then base-2, base-3, ... Each suffixed candidate is rebuilt from the
// original base, never by appending to an already-suffixed value. excludeID
// keeps a post's own record out of the collision check so an unchanged title
// keeps its slug on update.
func uniqueSlug(ctx context.Context, repo ports.PostRepository, title, excludeID string) (string, error) {
	base := slugify(title)
	candidate := base
	for counter := 2; ; counter++ {
		exists, err := repo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("slug check: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

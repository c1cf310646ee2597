package util

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	SlugMinLength        = 3
	SlugMaxLength        = 50
	DefaultRandomSlugLen = 8

	slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	hyphenRunRegex = regexp.MustCompile(`-+`)
)

type SlugValidation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// GenerateSlug derives a URL-safe slug from a shop name. Non-Latin characters
// are dropped; when nothing usable remains a random slug is returned instead.
func GenerateSlug(name string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsSpace(r):
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			b.WriteRune(r)
		}
		inSpace = false
	}

	slug := strings.Trim(hyphenRunRegex.ReplaceAllString(b.String(), "-"), "-")
	if len(slug) > SlugMaxLength {
		slug = strings.TrimRight(slug[:SlugMaxLength], "-")
	}

	if !ValidateSlug(slug).Valid {
		return GenerateRandomSlug(DefaultRandomSlugLen)
	}
	return slug
}

// GenerateRandomSlug draws from a non-cryptographic source; slugs are public.
func GenerateRandomSlug(length int) string {
	if length <= 0 {
		length = DefaultRandomSlugLen
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = slugAlphabet[rand.IntN(len(slugAlphabet))]
	}
	return string(buf)
}

func ValidateSlug(slug string) SlugValidation {
	switch {
	case slug == "":
		return SlugValidation{Error: "slug는 비어있을 수 없습니다"}
	case len(slug) < SlugMinLength:
		return SlugValidation{Error: "slug는 3자 이상이어야 합니다"}
	case len(slug) > SlugMaxLength:
		return SlugValidation{Error: "slug는 50자 이하여야 합니다"}
	case !slugPattern.MatchString(slug):
		return SlugValidation{Error: "slug는 영문 소문자, 숫자, 하이픈만 사용할 수 있습니다"}
	}
	return SlugValidation{Valid: true}
}

// slugSuffixReserve is the room SlugConflictPrefix keeps for a "-N" suffix.
const slugSuffixReserve = len("-9999")

// ResolveSlugConflict returns base if unused, otherwise the first free base-N (N >= 1).
// base is shortened when needed so that the result stays within SlugMaxLength.
func ResolveSlugConflict(base string, existing []string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		taken[s] = struct{}{}
	}
	if _, ok := taken[base]; !ok {
		return base
	}
	for n := 1; ; n++ {
		candidate := withSlugSuffix(base, n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

func withSlugSuffix(base string, n int) string {
	suffix := "-" + strconv.Itoa(n)
	if len(base)+len(suffix) > SlugMaxLength {
		base = strings.TrimRight(base[:SlugMaxLength-len(suffix)], "-")
	}
	return base + suffix
}

// SlugConflictPrefix returns a prefix shared by base and every candidate
// ResolveSlugConflict derives from it up to base-9999.
func SlugConflictPrefix(base string) string {
	if len(base) <= SlugMaxLength-slugSuffixReserve {
		return base
	}
	return strings.TrimRight(base[:SlugMaxLength-slugSuffixReserve], "-")
}

package domain

import (
	"fmt"
	"math"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxStoreNameRunes   = 120
	maxDescriptionRunes = 2000
	maxTagRunes         = 40
	maxTags             = 20
	fallbackSlug        = "store"
)

type StoreName string

func NewStoreName(value string) (StoreName, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("store name is required")
	}
	if utf8.RuneCountInString(trimmed) > maxStoreNameRunes {
		return "", fmt.Errorf("store name must be <= %d characters", maxStoreNameRunes)
	}
	return StoreName(trimmed), nil
}

func (n StoreName) String() string {
	return string(n)
}

type Description string

func NewDescription(value string) (Description, error) {
	trimmed := strings.TrimSpace(value)
	if utf8.RuneCountInString(trimmed) > maxDescriptionRunes {
		return "", fmt.Errorf("description must be <= %d characters", maxDescriptionRunes)
	}
	return Description(trimmed), nil
}

func (d Description) String() string {
	return string(d)
}

// Slug is the URL-safe identifier derived from a store name.
type Slug string

var (
	slugFolder      = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	slugSuffixMatch = regexp.MustCompile(`-(\d+)$`)
)

// Slugify lowercases name, strips diacritics and joins ASCII letters and
// digits with single dashes. Names with no usable characters become "store".
func Slugify(name string) Slug {
	folded, _, err := transform.String(slugFolder, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	pendingDash := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return fallbackSlug
	}
	return Slug(b.String())
}

// Disambiguate returns base if it is unused, otherwise base-N where N is one
// more than the highest suffix in taken. A bare base counts as N=1.
func (s Slug) Disambiguate(taken []string) Slug {
	base := string(s)
	baseTaken := false
	highest := 1
	for _, existing := range taken {
		if existing == base {
			baseTaken = true
			continue
		}
		if !strings.HasPrefix(existing, base+"-") {
			continue
		}
		match := slugSuffixMatch.FindStringSubmatch(existing)
		if match == nil || len(existing) != len(base)+len(match[0]) {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err == nil && n > highest {
			highest = n
		}
	}
	if !baseTaken {
		return s
	}
	return Slug(base + "-" + strconv.Itoa(highest+1))
}

func (s Slug) String() string {
	return string(s)
}

type Tag string

func NewTag(value string) (Tag, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("tag is required")
	}
	if utf8.RuneCountInString(trimmed) > maxTagRunes {
		return "", fmt.Errorf("tag must be <= %d characters: %s", maxTagRunes, trimmed)
	}
	return Tag(trimmed), nil
}

type TagList []Tag

func NewTagList(values []string) (TagList, error) {
	if len(values) == 0 {
		return nil, nil
	}
	result := make([]Tag, 0, len(values))
	seen := make(map[Tag]struct{})
	for _, raw := range values {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		tag, err := NewTag(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	if len(result) > maxTags {
		return nil, fmt.Errorf("tags must be <= %d", maxTags)
	}
	return TagList(result), nil
}

func (l TagList) Strings() []string {
	result := make([]string, 0, len(l))
	for _, v := range l {
		result = append(result, string(v))
	}
	return result
}

// Location is a validated longitude/latitude pair.
type Location struct {
	Lng float64
	Lat float64
}

func NewLocation(lng, lat float64) (Location, error) {
	if math.IsNaN(lng) || math.IsNaN(lat) || math.IsInf(lng, 0) || math.IsInf(lat, 0) {
		return Location{}, fmt.Errorf("coordinates must be finite")
	}
	if lng < -180 || lng > 180 {
		return Location{}, fmt.Errorf("longitude must be between -180 and 180")
	}
	if lat < -90 || lat > 90 {
		return Location{}, fmt.Errorf("latitude must be between -90 and 90")
	}
	return Location{Lng: lng, Lat: lat}, nil
}

// PhotoRef is either an absolute URL or a bare upload file name.
type PhotoRef string

func NewPhotoRef(value string) (PhotoRef, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if strings.Contains(trimmed, "://") {
		if _, err := url.ParseRequestURI(trimmed); err != nil {
			return "", fmt.Errorf("invalid photo URL: %w", err)
		}
		return PhotoRef(trimmed), nil
	}
	if path.Base(trimmed) != trimmed || strings.HasPrefix(trimmed, ".") {
		return "", fmt.Errorf("invalid photo file name: %s", trimmed)
	}
	return PhotoRef(trimmed), nil
}

func (p PhotoRef) String() string {
	return string(p)
}

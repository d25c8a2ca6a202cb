package domain

import (
	"fmt"
	"slices"
	"strings"
)

// DestinationPlaceholder is used when no destination could be recovered from the page or URL.
const DestinationPlaceholder = "Traumdestination"

// DefaultFeatureIcon pads FeatureIcons when no keyword matched.
const DefaultFeatureIcon = "✓"

// OfferData is the typed record recovered from an offer page.
type OfferData struct {
	Name         string   `json:"name"`
	Category     *string  `json:"category,omitempty"` // e.g. "4-Sterne Hotel"
	Destination  string   `json:"destination"`
	Features     []string `json:"features"`
	FeatureIcons []string `json:"featureIcons"` // positional, len == len(Features)
	Amenities    []string `json:"amenities"`
	Description  *string  `json:"description,omitempty"`
	ImageURL     *string  `json:"imageUrl,omitempty"`
	Price        *string  `json:"price,omitempty"`    // "ab 1.099 €"
	Duration     *string  `json:"duration,omitempty"` // "7 Nächte"
}

// IconAt returns the icon paired with feature i.
func (o OfferData) IconAt(i int) string {
	if i >= 0 && i < len(o.FeatureIcons) && o.FeatureIcons[i] != "" {
		return o.FeatureIcons[i]
	}
	return DefaultFeatureIcon
}

type Style string

const (
	StyleEnthusiastic Style = "enthusiastic"
	StyleElegant      Style = "elegant"
	StyleFamily       Style = "family"
	StyleAdventure    Style = "adventure"
)

// Styles lists every supported style in display order.
var Styles = []Style{StyleEnthusiastic, StyleElegant, StyleFamily, StyleAdventure}

func (s Style) Valid() bool {
	for _, v := range Styles {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStyle maps user input to a Style. Empty input selects the enthusiastic default.
func ParseStyle(s string) (Style, error) {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return StyleEnthusiastic, nil
	}
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown style %q", ErrInvalidRequest, s)
	}
	return st, nil
}

// GenerationOptions drive both prompt assembly and sampling. Immutable per request.
type GenerationOptions struct {
	UseEmojis bool  `json:"useEmojis"`
	Style     Style `json:"style"`
}

// CacheKey is the per-options suffix used for generated post cache entries.
func (o GenerationOptions) CacheKey() string {
	return fmt.Sprintf("%s:%t", o.Style, o.UseEmojis)
}

func Ptr[T any](v T) *T { return &v }

func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// CleanDestination drops repeated comma or ampersand separated fragments, keeping
// first occurrences: "Spanien, Spanien & Mallorca" → "Spanien, Mallorca".
func CleanDestination(d string) string {
	if !strings.ContainsAny(d, ",&") {
		return strings.TrimSpace(d)
	}
	var parts []string
	for _, p := range strings.FieldsFunc(d, func(r rune) bool { return r == ',' || r == '&' }) {
		p = strings.TrimSpace(p)
		if p == "" || slices.ContainsFunc(parts, func(v string) bool { return strings.EqualFold(v, p) }) {
			continue
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, ", ")
}

// Package emoji maps free text to representative symbols and styles to tone guidance.
package emoji

import (
	"strings"

	"offer_post/internal/domain"
)

// Rule pairs a lowercase keyword with the symbol used when the keyword occurs in a text.
type Rule struct {
	Keyword string
	Symbol  string
}

// Tables holds the ordered lookup tables. The first matching rule wins.
type Tables struct {
	Features    []Rule
	IconClasses []Rule
	Countries   []Rule
	Scenes      []Rule
	Tones       map[domain.Style]string

	DefaultFeature     string
	DefaultDestination string
}

// Mapper is safe for concurrent use; its tables are never modified after New.
type Mapper struct {
	t Tables
}

func New(t Tables) *Mapper {
	if t.DefaultFeature == "" {
		t.DefaultFeature = "✅"
	}
	if t.DefaultDestination == "" {
		t.DefaultDestination = domain.SparkleGlyph
	}
	return &Mapper{t: t}
}

// Default returns a mapper over the post-writing tables.
func Default() *Mapper { return New(DefaultTables()) }

// Extractor returns a mapper over the tables used while scraping feature lists.
func Extractor() *Mapper { return New(ExtractorTables()) }

func (m *Mapper) FeatureEmoji(text string) string {
	if s, ok := match(m.t.Features, text); ok {
		return s
	}
	return m.t.DefaultFeature
}

// IconClassEmoji maps an icon element's class attribute. ok is false when nothing matched.
func (m *Mapper) IconClassEmoji(class string) (string, bool) {
	return match(m.t.IconClasses, class)
}

func (m *Mapper) DestinationEmoji(text string) string {
	if s, ok := match(m.t.Countries, text); ok {
		return s
	}
	if s, ok := match(m.t.Scenes, text); ok {
		return s
	}
	return m.t.DefaultDestination
}

func (m *Mapper) ToneGuidance(s domain.Style) string {
	if g, ok := m.t.Tones[s]; ok {
		return g
	}
	return m.t.Tones[domain.StyleEnthusiastic]
}

func match(rules []Rule, text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if strings.Contains(lower, r.Keyword) {
			return r.Symbol, true
		}
	}
	return "", false
}

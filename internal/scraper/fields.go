package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"offer_post/internal/domain"
)

// ---- Name ----

var nameStrategies = []strategy[string]{
	nameFrom("h1.hotel-name"),
	nameFrom(".hotel-title"),
	nameFrom("h1"),
}

// brandFix recovers names that the markup truncates to their first letter.
type brandFix struct {
	truncated string
	marker    string
	pattern   *regexp.Regexp
	fallback  string
}

var brandFixes = []brandFix{
	{truncated: "B", marker: "B&B", pattern: regexp.MustCompile(`(?i)B&B\s+[\w\s]+`), fallback: "B&B Hotel"},
}

func nameFrom(selector string) strategy[string] {
	return func(p *page) (string, bool) {
		raw := strings.TrimSpace(p.doc.Find(selector).First().Text())
		if raw == "" {
			return "", false
		}
		raw = fixBrand(raw, strings.TrimSpace(p.doc.Find("title").First().Text()))
		name := cleanName(raw)
		return name, name != ""
	}
}

func fixBrand(name, title string) string {
	for _, f := range brandFixes {
		if name != f.truncated || !strings.Contains(title, f.marker) {
			continue
		}
		if m := f.pattern.FindString(title); m != "" {
			return strings.TrimSpace(m)
		}
		return f.fallback
	}
	return name
}

// cleanName drops query-string artifacts trailing the name. Ampersands are kept.
func cleanName(s string) string {
	head, _, _ := strings.Cut(s, "?")
	if name := collapseSpace(head); name != "" {
		return name
	}
	return collapseSpace(strings.ReplaceAll(s, "?", " "))
}

// ---- Category ----

var categoryStrategies = []strategy[string]{
	starIcons,
	starsInText,
}

func category(n int) string { return fmt.Sprintf("%d-Sterne Hotel", n) }

func starIcons(p *page) (string, bool) {
	box := p.doc.Find(".stars, .hotel-stars, .category")
	if box.Length() == 0 {
		return "", false
	}
	n := box.Find(`.icon-star, .star-icon, [class*="star"]`).Length()
	if n == 0 {
		return "", false
	}
	return category(n), true
}

var starPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, 5)
	for i := 5; i >= 1; i-- {
		out = append(out, regexp.MustCompile(fmt.Sprintf(`(?:^|\D)%d(?:[ -]Sterne?|\*)`, i)))
	}
	return out
}()

// starsInText prefers the highest rating mentioned anywhere on the page.
func starsInText(p *page) (string, bool) {
	for i, re := range starPatterns {
		if re.MatchString(p.body) {
			return category(5 - i), true
		}
	}
	return "", false
}

// ---- Destination ----

var destinationStrategies = []strategy[string]{
	locationElements,
	breadcrumbs,
	urlSlug,
}

func resolveDestination(p *page) string {
	if d, ok := firstOf(p, destinationStrategies...); ok {
		if d = NormalizeDestination(d); d != "" {
			return d
		}
	}
	if d, ok := urlSecondChance(p); ok {
		return d
	}
	return domain.DestinationPlaceholder
}

func locationElements(p *page) (string, bool) {
	var found string
	eachText(p, `.destination, .location, .city, [class*="location"], [class*="destination"]`, func(t string, _ *goquery.Selection) bool {
		if runeLen(t) > 2 && !mentionsName(t, p.name) && !strings.Contains(t, "http") {
			found = t
			return false
		}
		return true
	})
	return found, found != ""
}

func breadcrumbs(p *page) (string, bool) {
	var found string
	p.doc.Find(`.breadcrumb, .breadcrumbs, [class*="breadcrumb"]`).Find("li, span, a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := strings.TrimSpace(s.Text())
		lower := strings.ToLower(t)
		if runeLen(t) > 2 && !containsAny(lower, "home", "start", "hotel") && !mentionsName(t, p.name) {
			found = t
			return false
		}
		return true
	})
	return found, found != ""
}

var slugRe = regexp.MustCompile(`^[\p{L}-]+$`)

// urlSlug takes the first path segment that reads like a place slug.
func urlSlug(p *page) (string, bool) {
	for _, seg := range pathSegments(p) {
		lower := strings.ToLower(seg)
		if runeLen(seg) <= 3 || !slugRe.MatchString(seg) || containsAny(lower, "hotel", "angebot") || isHostLabel(p, lower) {
			continue
		}
		return strings.ReplaceAll(seg, "-", " "), true
	}
	return "", false
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

// urlSecondChance accepts any remaining segment that is not a file name, a room or offer keyword, or a number.
func urlSecondChance(p *page) (string, bool) {
	for _, seg := range pathSegments(p) {
		lower := strings.ToLower(seg)
		if runeLen(seg) <= 3 || strings.Contains(seg, ".") || digitsOnly.MatchString(seg) ||
			containsAny(lower, "hotel", "angebot", "zimmer") {
			continue
		}
		if d := NormalizeDestination(seg); d != "" {
			return d, true
		}
	}
	return "", false
}

func pathSegments(p *page) []string {
	if p.src == nil {
		return nil
	}
	var out []string
	for _, s := range strings.Split(p.src.Path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isHostLabel(p *page, seg string) bool {
	if p.src == nil {
		return false
	}
	for _, label := range strings.Split(strings.ToLower(p.src.Hostname()), ".") {
		if label == seg {
			return true
		}
	}
	return false
}

func mentionsName(text, name string) bool {
	return name != "" && strings.Contains(text, name)
}

var fragmentSep = regexp.MustCompile(`[,&]`)

// NormalizeDestination title-cases every word, collapses whitespace and removes
// repeated comma or ampersand separated fragments: "spanien, Spanien & mallorca" → "Spanien, Mallorca".
func NormalizeDestination(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	seen := map[string]bool{}
	var parts []string
	for _, frag := range fragmentSep.Split(s, -1) {
		frag = titleCase(frag)
		key := strings.ToLower(frag)
		if frag == "" || seen[key] {
			continue
		}
		seen[key] = true
		parts = append(parts, frag)
	}
	return strings.Join(parts, ", ")
}

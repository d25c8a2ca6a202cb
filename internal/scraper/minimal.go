package scraper

import (
	"regexp"
	"slices"
	"strings"

	"offer_post/internal/domain"
)

const (
	minimalNamePlaceholder        = "Hotel"
	minimalDestinationPlaceholder = "Reiseziel"
	minimalMaxMined               = 3
)

var minimalKeywords = []string{
	"pool", "strand", "meer", "frühstück", "restaurant", "spa", "wellness",
	"zentral", "aussicht", "blick", "kinder", "suite", "bar",
}

// minimalSentence matches whole sentences around a keyword. Keywords of three runes
// or fewer must stand as their own word, so "bar" skips "verfügbar" and "spa" skips "Spanien".
var minimalSentence = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(minimalKeywords))
	for _, kw := range minimalKeywords {
		q := regexp.QuoteMeta(kw)
		if runeLen(kw) <= 3 {
			out[kw] = regexp.MustCompile(`(?i)(?:^|[^.!?]*[^\p{L}.!?])` + q + `(?:[^\p{L}.!?][^.!?]*)?[.!?]`)
			continue
		}
		out[kw] = regexp.MustCompile(`(?i)[^.!?]*` + q + `[^.!?]*[.!?]`)
	}
	return out
}()

var leadingJunk = regexp.MustCompile(`^[^a-zA-Z0-9äöüÄÖÜß]+`)

// ExtractMinimal recovers a best-effort record when the full extractor cannot be used:
// a name, a coarse destination and at least two features. It only fails on unparsable input.
func (e *Extractor) ExtractMinimal(html, sourceURL string) (domain.OfferData, error) {
	p, err := newPage(html, sourceURL, e.opts)
	if err != nil {
		return domain.OfferData{}, err
	}

	name := cleanName(strings.TrimSpace(p.doc.Find("h1").First().Text()))
	if name == "" {
		title, _, _ := strings.Cut(p.doc.Find("title").First().Text(), "|")
		name = cleanName(strings.TrimSpace(title))
	}
	if name == "" {
		name = minimalNamePlaceholder
	}
	p.name = name

	dest := minimalDestinationPlaceholder
	if d, ok := urlSlug(p); ok {
		dest = NormalizeDestination(d)
	}

	var features []string
	for _, kw := range minimalKeywords {
		if f, ok := mineSentence(minimalSentence[kw], p.body, features); ok {
			features = append(features, f)
		}
		if len(features) >= minimalMaxMined {
			break
		}
	}
	if len(features) < 2 {
		for _, g := range []string{"Komfortable Zimmer", "Zentrale Lage"} {
			if !slices.Contains(features, g) {
				features = append(features, g)
			}
		}
	}

	icons := make([]string, len(features))
	for i, f := range features {
		icons[i] = e.opts.Mapper.FeatureEmoji(f)
	}
	return domain.OfferData{
		Name:         name,
		Destination:  dest,
		Features:     features,
		FeatureIcons: icons,
		Amenities:    []string{},
	}, nil
}

// mineSentence returns the first matching sentence of plausible length that is new
// and carries no error or navigation wording.
func mineSentence(re *regexp.Regexp, body string, have []string) (string, bool) {
	for _, m := range re.FindAllString(body, -1) {
		f := collapseSpace(leadingJunk.ReplaceAllString(strings.TrimSpace(m), ""))
		if n := runeLen(f); n <= 10 || n >= 100 {
			continue
		}
		if isBoilerplate(strings.ToLower(f)) || slices.Contains(have, f) {
			continue
		}
		return f, true
	}
	return "", false
}

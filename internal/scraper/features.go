package scraper

import (
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"offer_post/internal/domain"
)

var (
	errorVocabulary = []string{
		"keine angebote", "nicht verfügbar", "keine ergebnisse", "leider", "suche", "sorry", "fehler",
	}
	hospitalityVocabulary = []string{
		"pool", "strand", "meer", "zimmer", "frühstück", "restaurant", "spa", "wellness",
		"lage", "zentral", "aussicht", "blick", "view", "familie", "kinder", "suite",
		"design", "bar", "terrasse", "balkon", "service", "sport", "aktivität", "lounge",
		"fitness", "massage", "sauna", "garten", "beach", "zentrum", "natur", "luxus",
	}
	navigationVocabulary = []string{
		"kontakt", "impressum", "datenschutz", "agb", "login", "registrieren", "anmelden",
		"abmelden", "buchen", "anfrage", "suchen", "telefon", "e-mail", "newsletter",
		"konto", "menü", "reisebüro", "finden", "ucandoo", "zahlbar", "seite",
		"verlassen", "neuendorfer", "straße", "gmbh", "persönlich",
	}
	addressLike = []string{"http", "@", "tel:", "gmbh", "persönlich", "str.", "straße"}
	phoneRe     = regexp.MustCompile(`^\+?\d[\d\s-]{7,}$`)
)

// IsFeatureLike reports whether text reads like a hotel amenity rather than page chrome.
// Accepted texts are 9 to 69 characters long, mention hospitality vocabulary and carry
// no error, navigation, contact or address vocabulary.
func IsFeatureLike(text string) bool {
	lower := strings.ToLower(text)
	if isBoilerplate(lower) {
		return false
	}
	if n := runeLen(text); n <= 8 || n >= 70 {
		return false
	}
	if !containsAny(lower, hospitalityVocabulary...) {
		return false
	}
	return !containsAny(lower, addressLike...) && !phoneRe.MatchString(lower)
}

// isBoilerplate reports error messages and site navigation in lowercased text.
func isBoilerplate(lower string) bool {
	return containsAny(lower, errorVocabulary...) || containsAny(lower, navigationVocabulary...)
}

type featureList struct {
	items []domain.SectionItem
	max   int
}

func (l *featureList) has(text string) bool {
	return slices.ContainsFunc(l.items, func(it domain.SectionItem) bool { return it.Text == text })
}

func (l *featureList) add(text, icon string) bool {
	if len(l.items) >= l.max || l.has(text) {
		return false
	}
	l.items = append(l.items, domain.SectionItem{Icon: icon, Text: text})
	return true
}

func (l *featureList) full() bool { return len(l.items) >= l.max }

// features runs the feature cascade. The returned slices always have equal length.
func (e *Extractor) features(p *page, offer domain.OfferData) ([]string, []string) {
	list := &featureList{max: e.opts.MaxFeatures}
	m := e.opts.Mapper

	eachText(p, `.features li, .amenities li, .hotel-features li, .facility-item, [class*="feature"] li, [class*="amenity"] li, .highlights li`, func(t string, s *goquery.Selection) bool {
		t = collapseSpace(t)
		if !IsFeatureLike(t) {
			return true
		}
		icon := m.FeatureEmoji(t)
		if class, ok := s.Find(`i, svg, [class*="icon"]`).First().Attr("class"); ok {
			if sym, ok := m.IconClassEmoji(class); ok {
				icon = sym
			}
		}
		list.add(t, icon)
		return !list.full()
	})

	if len(list.items) < e.opts.MinFeatures {
		e.sentenceFeatures(p, list)
	}
	if len(list.items) < e.opts.MinFeatures {
		for _, a := range offer.Amenities {
			list.add(a, m.FeatureEmoji(a))
		}
	}
	if len(list.items) < e.opts.MinFeatures {
		for _, g := range genericFeatures(offer) {
			if len(list.items) >= e.opts.MinFeatures {
				break
			}
			list.add(g.Text, g.Icon)
		}
	}

	texts := make([]string, len(list.items))
	icons := make([]string, len(list.items))
	for i, it := range list.items {
		texts[i] = it.Text
		icons[i] = it.Icon
		if icons[i] == "" {
			icons[i] = domain.DefaultFeatureIcon
		}
	}
	return texts, icons
}

var sentenceSep = regexp.MustCompile(`[.!?]+`)

// sentenceFeatures mines description paragraphs for short feature-like sentences.
func (e *Extractor) sentenceFeatures(p *page, list *featureList) {
	eachText(p, `.description p, .hotel-description p, .about p, [class*="description"] p, [class*="content"] p`, func(t string, _ *goquery.Selection) bool {
		if n := runeLen(t); n <= 20 || n >= 200 {
			return true
		}
		for _, sentence := range sentenceSep.Split(t, -1) {
			sentence = collapseSpace(sentence)
			if n := runeLen(sentence); n <= 15 || n >= 70 || !IsFeatureLike(sentence) {
				continue
			}
			list.add(sentence, e.opts.Mapper.FeatureEmoji(sentence))
			if list.full() {
				return false
			}
		}
		return true
	})
}

func amenities(p *page) []string {
	out := []string{}
	eachText(p, `.amenities li, .facilities li, [class*="amenity"] li, [class*="facility"] li`, func(t string, _ *goquery.Selection) bool {
		t = collapseSpace(t)
		if IsFeatureLike(t) && !slices.Contains(out, t) {
			out = append(out, t)
		}
		return true
	})
	return out
}

// genericFeatures are synthesized when the page yields too few real features.
func genericFeatures(offer domain.OfferData) []domain.SectionItem {
	var out []domain.SectionItem
	switch cat := domain.Deref(offer.Category); {
	case strings.HasPrefix(cat, "5"):
		out = append(out,
			domain.SectionItem{Icon: "✨", Text: "Luxuriöse Ausstattung"},
			domain.SectionItem{Icon: "👑", Text: "Erstklassiger Service"},
		)
	case strings.HasPrefix(cat, "4"):
		out = append(out,
			domain.SectionItem{Icon: "🛏️", Text: "Komfortable Zimmer"},
			domain.SectionItem{Icon: "👍", Text: "Qualitätsservice"},
		)
	}
	return append(out,
		domain.SectionItem{Icon: "🛏️", Text: "Komfortable Zimmer mit stilvollem Design"},
		domain.SectionItem{Icon: "📍", Text: "Ideale Lage für Ihren " + offer.Destination + " Aufenthalt"},
		domain.SectionItem{Icon: "👑", Text: "Hervorragender Service und Komfort"},
		domain.SectionItem{Icon: "🧘", Text: "Entspannung und Erholung garantiert"},
	)
}

func description(p *page) (string, bool) {
	var found string
	eachText(p, `.hotel-description, .description, [class*="description"], .content p, [class*="about"] p`, func(t string, _ *goquery.Selection) bool {
		if runeLen(t) > 50 && !strings.Contains(t, "http") {
			found = collapseSpace(t)
			return false
		}
		return true
	})
	return found, found != ""
}

// imageURL returns the first non-logo gallery image resolved against the page URL.
func imageURL(p *page) (string, bool) {
	var found string
	p.doc.Find(`.hotel-image img, .carousel img, .gallery img, .slider img, [class*="hotel"] img, .main-image img`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			src = strings.TrimSpace(s.AttrOr("data-src", ""))
		}
		if src == "" || strings.Contains(strings.ToLower(src), "logo") {
			return true
		}
		found = resolve(p.src, src)
		return found == ""
	})
	return found, found != ""
}

func resolve(base *url.URL, ref string) string {
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base == nil || r.IsAbs() {
		return r.String()
	}
	return base.ResolveReference(r).String()
}

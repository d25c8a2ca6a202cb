package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var priceStrategies = []strategy[string]{
	priceElements,
	pricePhrases,
	shortPriceNodes,
	barePrice,
}

func priceElements(p *page) (string, bool) {
	var found string
	eachText(p, `[class*="price"], .price, .total-price, .offer-price, .rate-price, [class*="Price"], [class*="preis"]`, func(t string, _ *goquery.Selection) bool {
		if strings.Contains(t, "€") && hasDigit(t) {
			found = NormalizePrice(t)
			return false
		}
		return true
	})
	return found, found != ""
}

var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ab\s*(\d+[.,]?\d*)\s*€`),
	regexp.MustCompile(`(?i)(\d+[.,]?\d*)\s*€\s*p\.\s?P\.`),
	regexp.MustCompile(`(?i)preis\s*:?\s*(\d+[.,]?\d*)\s*€`),
	regexp.MustCompile(`(?i)(\d+[.,]?\d*)\s*€\s*pro\s*Person`),
	regexp.MustCompile(`(?i)(\d+[.,]?\d*)\s*€\s*(?:/|pro)\s*Nacht`),
	regexp.MustCompile(`(?i)(\d+[.,]?\d*)\s*€\s*(?:/|pro)\s*Zimmer`),
}

func pricePhrases(p *page) (string, bool) {
	for _, re := range pricePatterns {
		if m := re.FindString(p.body); m != "" {
			return NormalizePrice(m), true
		}
	}
	return "", false
}

// shortPriceNodes looks at short text blocks that carry a currency amount and
// skips booking or navigation controls.
func shortPriceNodes(p *page) (string, bool) {
	var found string
	eachText(p, "p, div, span", func(t string, _ *goquery.Selection) bool {
		if runeLen(t) >= 50 || !strings.Contains(t, "€") || !hasDigit(t) {
			return true
		}
		if containsAny(strings.ToLower(t), "suchen", "buchen", "anmelden") {
			return true
		}
		found = NormalizePrice(t)
		return false
	})
	return found, found != ""
}

var barePriceRe = regexp.MustCompile(`(\d+[.,]?\d*)\s*€`)

func barePrice(p *page) (string, bool) {
	m := barePriceRe.FindStringSubmatch(p.body)
	if m == nil {
		return "", false
	}
	return NormalizePrice(m[1] + " €"), true
}

// amountRe matches a number with optional grouping: "1.099", "1 099", "1099,50", "1,099.50".
var amountRe = regexp.MustCompile(`\d+(?:[.,]\d+|[ \x{00A0}]\d{3}\b)*`)

// NormalizePrice rewrites a price text to the German "ab 1.099 €" form, keeping two
// decimals when present ("ab 1.099,50 €"). The amount closest before the first euro
// sign wins. Texts without digits are returned trimmed. NormalizePrice is idempotent.
func NormalizePrice(s string) string {
	s = strings.TrimSpace(s)
	locs := amountRe.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return s
	}
	pick := locs[0]
	if euro := strings.Index(s, "€"); euro >= 0 {
		for _, l := range locs {
			if l[1] <= euro {
				pick = l
			}
		}
		if pick[1] > euro {
			// no amount before the sign, take the first one after it
			for _, l := range locs {
				if l[0] > euro {
					pick = l
					break
				}
			}
		}
	}
	whole, frac := splitAmount(s[pick[0]:pick[1]])
	out := "ab " + groupThousands(whole)
	if frac != "" {
		out += "," + frac
	}
	return out + " €"
}

// splitAmount separates integer digits from up to two decimal digits.
func splitAmount(a string) (whole, frac string) {
	a = strings.NewReplacer(" ", "", "\u00a0", "").Replace(a)
	dec := -1
	lastDot, lastComma := strings.LastIndex(a, "."), strings.LastIndex(a, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		dec = max(lastDot, lastComma)
	case lastComma >= 0 && len(a)-lastComma-1 <= 2:
		dec = lastComma
	case lastDot >= 0 && strings.Count(a, ".") == 1 && len(a)-lastDot-1 <= 2:
		dec = lastDot
	}
	if dec >= 0 {
		whole, frac = a[:dec], a[dec+1:]
	} else {
		whole = a
	}
	whole = strings.TrimLeft(strings.NewReplacer(".", "", ",", "").Replace(whole), "0")
	if whole == "" {
		whole = "0"
	}
	if len(frac) == 1 {
		frac += "0"
	}
	return whole, frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Package validate checks generated posts against the fixed post structure and the offer they describe.
package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"offer_post/internal/domain"
)

type Options struct {
	PriceDigits  int // leading price digits that must appear
	MinLines     int // minimum non-blank lines
	NamePercent  int // share of name words required for long names
	LongNameRune int // names longer than this use the word rule
}

func (o Options) withDefaults() Options {
	if o.PriceDigits <= 0 {
		o.PriceDigits = 4
	}
	if o.MinLines <= 0 {
		o.MinLines = 10
	}
	if o.NamePercent <= 0 || o.NamePercent > 100 {
		o.NamePercent = 70
	}
	if o.LongNameRune <= 0 {
		o.LongNameRune = 15
	}
	return o
}

// Result reports whether a post passed and, if not, the first failing check.
type Result struct {
	Passed bool
	Check  string
	Detail string
}

func pass() Result { return Result{Passed: true} }

func fail(check, detail string) Result { return Result{Check: check, Detail: detail} }

type Validator struct {
	opts   Options
	checks []check
}

type check func(v *Validator, text, lower string, offer domain.OfferData) Result

func New(opts Options) *Validator {
	return &Validator{
		opts: opts.withDefaults(),
		checks: []check{
			(*Validator).requiredLiterals,
			(*Validator).price,
			(*Validator).structure,
			(*Validator).featureGrounding,
			(*Validator).forbiddenContent,
			(*Validator).minLines,
		},
	}
}

// Validate runs all checks in order and stops at the first failure.
func (v *Validator) Validate(text string, offer domain.OfferData) Result {
	lower := strings.ToLower(text)
	for _, c := range v.checks {
		if r := c(v, text, lower, offer); !r.Passed {
			return r
		}
	}
	return pass()
}

// ---- required literals ----

func (v *Validator) requiredLiterals(text, lower string, offer domain.OfferData) Result {
	if !v.nameMentioned(lower, offer.Name) {
		return fail(domain.CheckRequiredLiteral, "hotel name: "+offer.Name)
	}
	literals := []string{domain.CleanDestination(offer.Destination), domain.PaymentProvider}
	literals = append(literals, domain.CTALabels[:]...)
	for _, lit := range literals {
		if !strings.Contains(lower, strings.ToLower(lit)) {
			return fail(domain.CheckRequiredLiteral, lit)
		}
	}
	return pass()
}

// nameMentioned matches short names as a whole. Long names pass when enough of their
// words appear: words longer than three characters as substrings, shorter ones as whole tokens.
func (v *Validator) nameMentioned(lower, name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if utf8.RuneCountInString(name) <= v.opts.LongNameRune {
		return strings.Contains(lower, name)
	}
	var words []string
	for _, w := range strings.Fields(name) {
		if strings.IndexFunc(w, isWordRune) >= 0 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return strings.Contains(lower, name)
	}
	tokens := map[string]bool{}
	for _, t := range strings.FieldsFunc(lower, func(r rune) bool { return !isWordRune(r) }) {
		tokens[t] = true
	}
	matched := 0
	for _, w := range words {
		if utf8.RuneCountInString(w) > 3 {
			if strings.Contains(lower, w) {
				matched++
			}
		} else if tokens[strings.TrimFunc(w, func(r rune) bool { return !isWordRune(r) })] {
			matched++
		}
	}
	return matched*100 >= len(words)*v.opts.NamePercent
}

func isWordRune(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

// ---- price ----

// price requires the leading digits of the integer part to appear in the text once
// thousands separators are removed.
func (v *Validator) price(text, _ string, offer domain.OfferData) Result {
	if offer.Price == nil {
		return pass()
	}
	whole, _, _ := strings.Cut(*offer.Price, ",")
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, whole)
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return pass()
	}
	var re *regexp.Regexp
	if len(digits) <= v.opts.PriceDigits {
		re = regexp.MustCompile(`\b` + digits + `\b`)
	} else {
		re = regexp.MustCompile(`\b` + digits[:v.opts.PriceDigits] + `\d*`)
	}
	plain := digitGroupSpace.ReplaceAllString(strings.ReplaceAll(text, ".", ""), "$1$2")
	if !re.MatchString(plain) {
		return fail(domain.CheckPrice, *offer.Price)
	}
	return pass()
}

var digitGroupSpace = regexp.MustCompile(`(\d)[ \x{00A0}\x{202F}](\d{3})\b`)

// ---- structure ----

type marker struct {
	name string
	re   *regexp.Regexp
}

var markers = func() []marker {
	out := make([]marker, 0, 6)
	for _, l := range domain.CTALabels {
		out = append(out, marker{"cta " + l, regexp.MustCompile(`(?i)` + domain.PointerGlyph + `\s*` + regexp.QuoteMeta(l))})
	}
	return append(out,
		marker{"payment line", regexp.MustCompile(`(?i)` + domain.CardGlyph + `|` + domain.PaymentProvider)},
		marker{"closing sentence", regexp.MustCompile(domain.SparkleGlyph + `[^\n]*[^\s✨][^\n]*` + domain.SparkleGlyph)},
		marker{"final call to action", regexp.MustCompile(`(?m)^\s*➡\x{FE0F}?`)},
	)
}()

func (v *Validator) structure(text, _ string, _ domain.OfferData) Result {
	for _, m := range markers {
		if !m.re.MatchString(text) {
			return fail(domain.CheckStructure, m.name)
		}
	}
	return pass()
}

// ---- feature grounding ----

var importantFeatures = []string{"pool", "strand", "meer", "spa", "wellness", "restaurant", "frühstück"}

func (v *Validator) featureGrounding(_, lower string, offer domain.OfferData) Result {
	if len(offer.Features) < 2 {
		return pass()
	}
	for _, f := range offer.Features {
		fl := strings.ToLower(f)
		if strings.Contains(lower, fl) {
			return pass()
		}
		for _, k := range importantFeatures {
			if strings.Contains(fl, k) && strings.Contains(lower, k) {
				return pass()
			}
		}
	}
	for _, f := range offer.Features {
		for _, w := range strings.Fields(strings.ToLower(f)) {
			if utf8.RuneCountInString(w) >= 5 && strings.Contains(lower, w) {
				return pass()
			}
		}
	}
	return fail(domain.CheckFeatureGrounding, "no extracted feature mentioned")
}

// ---- forbidden content ----

var forbiddenLiterals = []string{
	"nicht verfügbar", "keine angabe", "leider", "fehler",
	"@", "http", "www", "[", "]", "{", "}",
	"impressum", "datenschutz", "kontakt", "+49", "telefon",
}

var forbiddenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bTel\b`),
	regexp.MustCompile(`\+\d{2,}`),
	regexp.MustCompile(`\(\d+\)`),
	regexp.MustCompile(`\d{5,}`),
	regexp.MustCompile(`(?i)bitte`),
	regexp.MustCompile(`(?i)anfrage`),
	regexp.MustCompile(`(?i)\be-?mail\b`),
	regexp.MustCompile(`(?i)\bseite\b.*\bnicht\b`),
	regexp.MustCompile(`(?i)\bseite\b.*\bverlassen\b`),
}

func (v *Validator) forbiddenContent(text, lower string, _ domain.OfferData) Result {
	for _, lit := range forbiddenLiterals {
		if strings.Contains(lower, lit) {
			return fail(domain.CheckForbiddenContent, lit)
		}
	}
	for _, re := range forbiddenPatterns {
		if re.MatchString(text) {
			return fail(domain.CheckForbiddenContent, re.String())
		}
	}
	return pass()
}

// ---- minimum structure ----

func (v *Validator) minLines(text, _ string, _ domain.OfferData) Result {
	n := 0
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			n++
		}
	}
	if n < v.opts.MinLines {
		return fail(domain.CheckMinLines, "too few lines")
	}
	return pass()
}

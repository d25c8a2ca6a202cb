// Package scraper recovers typed offer data from loosely structured offer pages.
//
// Every field is resolved by an ordered list of strategies; the first strategy that
// yields a value wins. Only an implausible hotel name fails an extraction, all other
// fields degrade to defaults.
package scraper

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"offer_post/internal/domain"
	"offer_post/internal/emoji"
)

type Options struct {
	MaxStayDays int // upper plausibility bound for durations, inclusive
	MaxFeatures int
	MinFeatures int // below this the cascade keeps mining
	Mapper      *emoji.Mapper
}

func (o Options) withDefaults() Options {
	if o.MaxStayDays <= 0 {
		o.MaxStayDays = 30
	}
	if o.MaxFeatures <= 0 {
		o.MaxFeatures = 5
	}
	if o.MinFeatures <= 0 || o.MinFeatures > o.MaxFeatures {
		o.MinFeatures = min(4, o.MaxFeatures)
	}
	if o.Mapper == nil {
		o.Mapper = emoji.Extractor()
	}
	return o
}

// Extractor is stateless and safe for concurrent use.
type Extractor struct {
	opts Options
}

func New(opts Options) *Extractor {
	return &Extractor{opts: opts.withDefaults()}
}

const minNameLen = 3

// Extract parses html fetched from sourceURL. It fails with domain.ErrExtractionFailed
// when the recovered hotel name is shorter than three characters.
func (e *Extractor) Extract(html, sourceURL string) (domain.OfferData, error) {
	p, err := newPage(html, sourceURL, e.opts)
	if err != nil {
		return domain.OfferData{}, err
	}

	name, _ := firstOf(p, nameStrategies...)
	if utf8.RuneCountInString(name) < minNameLen {
		return domain.OfferData{}, fmt.Errorf("%w: implausible hotel name %q", domain.ErrExtractionFailed, name)
	}
	p.name = name

	offer := domain.OfferData{Name: name, Amenities: []string{}}
	if v, ok := firstOf(p, categoryStrategies...); ok {
		offer.Category = &v
	}
	if v, ok := firstOf(p, priceStrategies...); ok {
		offer.Price = &v
	}
	if v, ok := firstOf(p, durationStrategies...); ok {
		offer.Duration = &v
	}
	offer.Destination = resolveDestination(p)
	offer.Amenities = amenities(p)
	offer.Features, offer.FeatureIcons = e.features(p, offer)
	if v, ok := description(p); ok {
		offer.Description = &v
	}
	if v, ok := imageURL(p); ok {
		offer.ImageURL = &v
	}
	return offer, nil
}

type page struct {
	doc  *goquery.Document
	src  *url.URL // nil when the source URL does not parse
	raw  string
	body string // visible body text
	name string
	opts Options
}

func newPage(html, sourceURL string, opts Options) (*page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", domain.ErrExtractionFailed, err)
	}
	p := &page{doc: doc, raw: sourceURL, opts: opts}
	if u, err := url.Parse(sourceURL); err == nil {
		p.src = u
	}
	p.body = visibleText(doc.Find("body").Nodes...)
	return p, nil
}

// strategy yields a field value or reports that it found nothing.
type strategy[T any] func(p *page) (T, bool)

func firstOf[T any](p *page, strategies ...strategy[T]) (T, bool) {
	for _, s := range strategies {
		if v, ok := s(p); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// eachText runs fn over the trimmed text of every match until fn returns false.
func eachText(p *page, selector string, fn func(text string, s *goquery.Selection) bool) {
	p.doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := strings.TrimSpace(s.Text())
		if t == "" {
			return true
		}
		return fn(t, s)
	})
}

package prompt

import (
	"math"
	"strings"

	"offer_post/internal/domain"
)

const (
	maxOutputTokens = 1000

	retryTemperatureDrop  = 0.3
	retryTemperatureFloor = 0.3

	luxuryTemperatureFloor = 0.55
	luxuryTopPFloor        = 0.9
	warmTemperatureCeiling = 0.85
)

var baseSampling = map[domain.Style]domain.Sampling{
	domain.StyleEnthusiastic: {Temperature: 0.8, TopP: 0.97, TopK: 40},
	domain.StyleElegant:      {Temperature: 0.6, TopP: 0.92, TopK: 30},
	domain.StyleFamily:       {Temperature: 0.7, TopP: 0.95, TopK: 50},
	domain.StyleAdventure:    {Temperature: 0.75, TopP: 0.96, TopK: 40},
}

// SamplingFor derives sampling parameters from the style, then tones them down for
// five-star offers and warms them up for family or beach offers. Every adjustment
// stays within its own bound.
func SamplingFor(style domain.Style, offer domain.OfferData) domain.Sampling {
	s, ok := baseSampling[style]
	if !ok {
		s = domain.Sampling{Temperature: 0.7, TopP: 0.95, TopK: 40}
	}
	s.MaxOutputTokens = maxOutputTokens

	if strings.Contains(domain.Deref(offer.Category), "5-Sterne") {
		s.Temperature = max(luxuryTemperatureFloor, s.Temperature-0.1)
		s.TopP = max(luxuryTopPFloor, s.TopP-0.02)
	}
	if style != domain.StyleElegant {
		if anyFeature(offer, "familie", "kinder") {
			s.Temperature = min(warmTemperatureCeiling, s.Temperature+0.05)
		}
		if anyFeature(offer, "strand", "meer", "beach") {
			s.Temperature = min(warmTemperatureCeiling, s.Temperature+0.05)
		}
	}
	s.Temperature = round2(s.Temperature)
	s.TopP = round2(s.TopP)
	return s
}

func anyFeature(offer domain.OfferData, keywords ...string) bool {
	for _, f := range offer.Features {
		lower := strings.ToLower(f)
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				return true
			}
		}
	}
	return false
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"offer_post/internal/adapters/observability"
	"offer_post/internal/domain"
	"offer_post/internal/scraper"
)

// ScrapeService fetches an offer page and extracts it. Recoverable fetch
// failures get one more try with the alternate identity and the minimal parser.
type ScrapeService struct {
	fetch domain.PageFetcher
	ex    *scraper.Extractor
}

func NewScrapeService(f domain.PageFetcher, ex *scraper.Extractor) *ScrapeService {
	return &ScrapeService{fetch: f, ex: ex}
}

func (s *ScrapeService) Scrape(ctx context.Context, url string) (domain.OfferData, error) {
	html, err := s.fetch.Fetch(ctx, url, domain.IdentityPrimary)
	if err != nil {
		if ctx.Err() != nil {
			return domain.OfferData{}, fmt.Errorf("%w: %v", domain.ErrTransport, ctx.Err())
		}
		var fe *domain.FetchError
		if errors.As(err, &fe) && fe.Recoverable {
			log.Warn().Err(err).Str("url", url).Msg("primary fetch failed, retrying with alternate identity")
			return s.fallback(ctx, url)
		}
		observability.ObserveExtraction("failed")
		return domain.OfferData{}, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}

	offer, err := s.ex.Extract(html, url)
	if err != nil {
		observability.ObserveExtraction("failed")
		return domain.OfferData{}, err
	}
	observability.ObserveExtraction("primary")
	log.Info().Str("url", url).Str("hotel", offer.Name).Str("destination", offer.Destination).
		Int("features", len(offer.Features)).Msg("offer extracted")
	return offer, nil
}

func (s *ScrapeService) fallback(ctx context.Context, url string) (domain.OfferData, error) {
	html, err := s.fetch.Fetch(ctx, url, domain.IdentityAlternate)
	if err != nil {
		observability.ObserveExtraction("failed")
		return domain.OfferData{}, fmt.Errorf("%w: fallback fetch: %v", domain.ErrExtractionFailed, err)
	}
	offer, err := s.ex.ExtractMinimal(html, url)
	if err != nil {
		observability.ObserveExtraction("failed")
		return domain.OfferData{}, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	observability.ObserveExtraction("fallback")
	log.Info().Str("url", url).Str("hotel", offer.Name).Str("destination", offer.Destination).Msg("offer extracted by fallback parser")
	return offer, nil
}

package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"offer_post/internal/domain"
)

// OfferSource recovers offer data for a URL.
type OfferSource interface {
	Scrape(ctx context.Context, url string) (domain.OfferData, error)
}

// PostGenerator turns offer data into a post.
type PostGenerator interface {
	Generate(ctx context.Context, offer domain.OfferData, opts domain.GenerationOptions) (domain.Generation, error)
}

// FeaturesSection addresses the offer's own feature list in AddItem.
const FeaturesSection = "features"

type PostService struct {
	offers   OfferSource
	gen      PostGenerator
	repo     domain.PostRepository
	cache    domain.Cache
	offerTTL time.Duration
	postTTL  time.Duration
	now      func() time.Time
	newID    func() string
}

func NewPostService(src OfferSource, gen PostGenerator, repo domain.PostRepository, cache domain.Cache, offerTTL, postTTL time.Duration) *PostService {
	return &PostService{
		offers:   src,
		gen:      gen,
		repo:     repo,
		cache:    cache,
		offerTTL: offerTTL,
		postTTL:  postTTL,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

func offerKey(url string) string { return "offer:" + url }

func postKey(url string, o domain.GenerationOptions) string { return "post:" + url + ":" + o.CacheKey() }

func recordKey(id string) string { return "record:" + id }

// Create scrapes url, generates a post and stores the result.
func (s *PostService) Create(ctx context.Context, url string, opts domain.GenerationOptions) (domain.PostRecord, error) {
	offer, err := s.offer(ctx, url)
	if err != nil {
		return domain.PostRecord{}, err
	}

	var g domain.Generation
	key := postKey(url, opts)
	if ok, _ := s.cache.Get(ctx, key, &g); !ok {
		g, err = s.gen.Generate(ctx, offer, opts)
		if err != nil {
			return domain.PostRecord{}, err
		}
		// fallback text is not cached so the next request tries the endpoint again
		if g.Outcome != domain.OutcomeFallback {
			_ = s.cache.Set(ctx, key, g, int(s.postTTL.Seconds()))
		}
	}

	now := s.now()
	rec := domain.PostRecord{
		ID:             s.newID(),
		SourceURL:      url,
		Options:        opts,
		GeneratedPost:  g.Text,
		OriginalPost:   g.Text,
		Outcome:        g.Outcome,
		Offer:          offer,
		CustomSections: []domain.CustomSection{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.InsertPost(ctx, rec); err != nil {
		return domain.PostRecord{}, fmt.Errorf("store post: %w", err)
	}
	log.Info().Str("id", rec.ID).Str("url", url).Str("outcome", string(g.Outcome)).Int("attempts", g.Attempts).Msg("post created")
	return rec, nil
}

func (s *PostService) offer(ctx context.Context, url string) (domain.OfferData, error) {
	var offer domain.OfferData
	if ok, _ := s.cache.Get(ctx, offerKey(url), &offer); ok {
		return offer, nil
	}
	offer, err := s.offers.Scrape(ctx, url)
	if err != nil {
		return domain.OfferData{}, err
	}
	_ = s.cache.Set(ctx, offerKey(url), offer, int(s.offerTTL.Seconds()))
	return offer, nil
}

func (s *PostService) Get(ctx context.Context, id string) (domain.PostRecord, error) {
	var rec domain.PostRecord
	if ok, _ := s.cache.Get(ctx, recordKey(id), &rec); ok {
		return rec, nil
	}
	rec, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return domain.PostRecord{}, err
	}
	_ = s.cache.Set(ctx, recordKey(id), rec, int(s.postTTL.Seconds()))
	return rec, nil
}

// Edit applies user edits in place. The original post text never changes.
func (s *PostService) Edit(ctx context.Context, id string, e domain.PostEdit) (domain.PostRecord, error) {
	if e.GeneratedPost == nil && e.Name == nil && e.Category == nil && e.Destination == nil &&
		e.Price == nil && e.Duration == nil && e.Features == nil {
		return domain.PostRecord{}, fmt.Errorf("%w: nothing to update", domain.ErrInvalidRequest)
	}
	var items []domain.SectionItem
	if e.Features != nil {
		if len(e.Features) > maxPostFeatures {
			return domain.PostRecord{}, fmt.Errorf("%w: at most %d features", domain.ErrInvalidRequest, maxPostFeatures)
		}
		items = make([]domain.SectionItem, 0, len(e.Features))
		for _, it := range e.Features {
			if it, ok := cleanItem(it); ok {
				items = append(items, it)
			}
		}
	}
	if e.Name != nil && strings.TrimSpace(*e.Name) == "" {
		return domain.PostRecord{}, fmt.Errorf("%w: hotel name must not be empty", domain.ErrInvalidRequest)
	}

	return s.update(ctx, id, func(r *domain.PostRecord) error {
		if e.GeneratedPost != nil {
			r.GeneratedPost = *e.GeneratedPost
		}
		if e.Name != nil {
			r.Offer.Name = strings.TrimSpace(*e.Name)
		}
		if e.Category != nil {
			r.Offer.Category = optional(*e.Category)
		}
		if e.Destination != nil {
			if d := strings.TrimSpace(*e.Destination); d != "" {
				r.Offer.Destination = d
			} else {
				r.Offer.Destination = domain.DestinationPlaceholder
			}
		}
		if e.Price != nil {
			r.Offer.Price = optional(*e.Price)
		}
		if e.Duration != nil {
			r.Offer.Duration = optional(*e.Duration)
		}
		if e.Features != nil {
			setFeatures(&r.Offer, items)
		}
		return nil
	})
}

// AddSection appends a custom section. Titles are unique, ignoring case.
func (s *PostService) AddSection(ctx context.Context, id, title string, items []domain.SectionItem) (domain.PostRecord, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.PostRecord{}, fmt.Errorf("%w: section title required", domain.ErrInvalidRequest)
	}
	if strings.EqualFold(title, FeaturesSection) {
		return domain.PostRecord{}, fmt.Errorf("%w: section title %q is reserved", domain.ErrInvalidRequest, title)
	}
	clean := make([]domain.SectionItem, 0, len(items))
	for _, it := range items {
		if it, ok := cleanItem(it); ok {
			clean = append(clean, it)
		}
	}

	return s.update(ctx, id, func(r *domain.PostRecord) error {
		for _, cs := range r.CustomSections {
			if strings.EqualFold(cs.Title, title) {
				return fmt.Errorf("%w: section %q already exists", domain.ErrInvalidRequest, title)
			}
		}
		r.CustomSections = append(r.CustomSections, domain.CustomSection{Title: title, Items: clean})
		return nil
	})
}

// AddItem appends item to the feature list (section "features") or to the custom
// section whose title matches, ignoring case.
func (s *PostService) AddItem(ctx context.Context, id, section string, item domain.SectionItem) (domain.PostRecord, error) {
	item, ok := cleanItem(item)
	if !ok {
		return domain.PostRecord{}, fmt.Errorf("%w: item text required", domain.ErrInvalidRequest)
	}
	section = strings.TrimSpace(section)

	return s.update(ctx, id, func(r *domain.PostRecord) error {
		if strings.EqualFold(section, FeaturesSection) {
			if len(r.Offer.Features) >= maxPostFeatures {
				return fmt.Errorf("%w: at most %d features", domain.ErrSectionFull, maxPostFeatures)
			}
			items := append(featureItems(r.Offer), item)
			setFeatures(&r.Offer, items)
			return nil
		}
		for i := range r.CustomSections {
			if strings.EqualFold(r.CustomSections[i].Title, section) {
				r.CustomSections[i].Items = append(r.CustomSections[i].Items, item)
				return nil
			}
		}
		return fmt.Errorf("%w: section %q", domain.ErrNotFound, section)
	})
}

func (s *PostService) update(ctx context.Context, id string, mutate func(*domain.PostRecord) error) (domain.PostRecord, error) {
	rec, err := s.repo.UpdatePost(ctx, id, func(r *domain.PostRecord) error {
		if err := mutate(r); err != nil {
			return err
		}
		r.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return domain.PostRecord{}, err
	}
	_ = s.cache.Del(ctx, recordKey(id))
	return rec, nil
}

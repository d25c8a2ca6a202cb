package app

import (
	"strings"
	"time"

	"offer_post/internal/domain"
)

// SourceInfo is the offer summary returned next to a generated post.
type SourceInfo struct {
	HotelName         string               `json:"hotelName"`
	HotelCategory     *string              `json:"hotelCategory,omitempty"`
	Destination       string               `json:"destination"`
	Price             *string              `json:"price,omitempty"`
	Duration          *string              `json:"duration,omitempty"`
	FeaturesWithIcons []domain.SectionItem `json:"featuresWithIcons"`
	ImageURL          *string              `json:"imageUrl,omitempty"`
	OriginalURL       string               `json:"originalUrl"`
}

// PostView is the API shape of a stored post.
type PostView struct {
	ID             string                   `json:"id"`
	GeneratedPost  string                   `json:"generatedPost"`
	OriginalPost   string                   `json:"originalPost"`
	Outcome        domain.Outcome           `json:"outcome"`
	Options        domain.GenerationOptions `json:"options"`
	SourceInfo     SourceInfo               `json:"sourceInfo"`
	CustomSections []domain.CustomSection   `json:"customSections"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

func ToPostView(r domain.PostRecord) PostView {
	sections := r.CustomSections
	if sections == nil {
		sections = []domain.CustomSection{}
	}
	return PostView{
		ID:             r.ID,
		GeneratedPost:  r.GeneratedPost,
		OriginalPost:   r.OriginalPost,
		Outcome:        r.Outcome,
		Options:        r.Options,
		SourceInfo:     sourceInfo(r.Offer, r.SourceURL),
		CustomSections: sections,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func sourceInfo(o domain.OfferData, url string) SourceInfo {
	return SourceInfo{
		HotelName:         o.Name,
		HotelCategory:     o.Category,
		Destination:       o.Destination,
		Price:             o.Price,
		Duration:          o.Duration,
		FeaturesWithIcons: featureItems(o),
		ImageURL:          o.ImageURL,
		OriginalURL:       url,
	}
}

// featureItems pairs features with their icons.
func featureItems(o domain.OfferData) []domain.SectionItem {
	out := make([]domain.SectionItem, 0, len(o.Features))
	for i, f := range o.Features {
		out = append(out, domain.SectionItem{Icon: o.IconAt(i), Text: f})
	}
	return out
}

// setFeatures replaces the feature list, keeping icons aligned.
func setFeatures(o *domain.OfferData, items []domain.SectionItem) {
	o.Features = make([]string, 0, len(items))
	o.FeatureIcons = make([]string, 0, len(items))
	for _, it := range items {
		o.Features = append(o.Features, it.Text)
		o.FeatureIcons = append(o.FeatureIcons, it.Icon)
	}
}

// cleanItem trims text and fills a missing icon. ok is false for blank text.
func cleanItem(it domain.SectionItem) (domain.SectionItem, bool) {
	it.Text = strings.TrimSpace(it.Text)
	it.Icon = strings.TrimSpace(it.Icon)
	if it.Icon == "" {
		it.Icon = domain.DefaultFeatureIcon
	}
	return it, it.Text != ""
}

// optional turns a blank edit value into nil.
func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

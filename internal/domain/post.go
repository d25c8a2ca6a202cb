package domain

import "time"

// SectionItem is one bullet of a feature list or custom section.
type SectionItem struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// CustomSection is a user-added block appended to a stored post.
type CustomSection struct {
	Title string        `json:"title"`
	Items []SectionItem `json:"items"`
}

// PostRecord is one persisted generation request.
type PostRecord struct {
	ID             string            `json:"id"`
	SourceURL      string            `json:"sourceUrl"`
	Options        GenerationOptions `json:"options"`
	GeneratedPost  string            `json:"generatedPost"`
	OriginalPost   string            `json:"originalPost"` // pre-edit text, never updated
	Outcome        Outcome           `json:"outcome"`
	Offer          OfferData         `json:"offer"`
	CustomSections []CustomSection   `json:"customSections"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// PostEdit carries user edits; nil fields are left untouched.
type PostEdit struct {
	GeneratedPost *string       `json:"generatedPost,omitempty"`
	Name          *string       `json:"hotelName,omitempty"`
	Category      *string       `json:"hotelCategory,omitempty"`
	Destination   *string       `json:"destination,omitempty"`
	Price         *string       `json:"price,omitempty"`
	Duration      *string       `json:"duration,omitempty"`
	Features      []SectionItem `json:"features,omitempty"`
}

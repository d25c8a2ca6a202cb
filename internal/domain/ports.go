package domain

import "context"

// Identity selects the client identity (headers, timeout) used for a page fetch.
type Identity int

const (
	IdentityPrimary Identity = iota
	IdentityAlternate
)

func (i Identity) String() string {
	if i == IdentityAlternate {
		return "alternate"
	}
	return "primary"
}

type PageFetcher interface {
	// Fetch returns the raw HTML at url. Failures are *FetchError.
	Fetch(ctx context.Context, url string, id Identity) (string, error)
}

type TextGenerator interface {
	// Generate fails with ErrQuotaExceeded, ErrTransport or ErrProvider (wrapped).
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

type PostRepository interface {
	InsertPost(ctx context.Context, p PostRecord) error
	GetPost(ctx context.Context, id string) (PostRecord, error)
	// UpdatePost loads the row under lock, applies mutate and writes it back.
	UpdatePost(ctx context.Context, id string, mutate func(*PostRecord) error) (PostRecord, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

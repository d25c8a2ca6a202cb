package app_test

import (
	"context"
	"encoding/json"
	"sync"

	"offer_post/internal/domain"
)

// ---- fakes ----

type reply struct {
	text string
	err  error
}

type scriptedGen struct {
	replies []reply
	reqs    []domain.GenerationRequest
}

func (g *scriptedGen) Generate(_ context.Context, req domain.GenerationRequest) (string, error) {
	g.reqs = append(g.reqs, req)
	if len(g.replies) == 0 {
		return "", domain.ErrProvider
	}
	r := g.replies[0]
	g.replies = g.replies[1:]
	return r.text, r.err
}

type memRepo struct {
	mu   sync.Mutex
	rows map[string]domain.PostRecord
}

func newMemRepo() *memRepo { return &memRepo{rows: map[string]domain.PostRecord{}} }

func (r *memRepo) InsertPost(_ context.Context, p domain.PostRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[p.ID] = p
	return nil
}

func (r *memRepo) GetPost(_ context.Context, id string) (domain.PostRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return domain.PostRecord{}, domain.ErrNotFound
	}
	return p, nil
}

func (r *memRepo) UpdatePost(_ context.Context, id string, mutate func(*domain.PostRecord) error) (domain.PostRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return domain.PostRecord{}, domain.ErrNotFound
	}
	// work on a copy so a failed mutation leaves the row untouched
	b, _ := json.Marshal(p)
	var cp domain.PostRecord
	_ = json.Unmarshal(b, &cp)
	if err := mutate(&cp); err != nil {
		return domain.PostRecord{}, err
	}
	r.rows[id] = cp
	return cp, nil
}

type jsonCache struct {
	store map[string][]byte
	sets  int
}

func newJSONCache() *jsonCache { return &jsonCache{store: map[string][]byte{}} }

func (c *jsonCache) Get(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *jsonCache) Set(_ context.Context, key string, v any, _ int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	c.sets++
	return nil
}

func (c *jsonCache) Del(_ context.Context, key string) error {
	delete(c.store, key)
	return nil
}

type fetchCall struct {
	url string
	id  domain.Identity
}

type fakeFetcher struct {
	pages map[domain.Identity]string
	errs  map[domain.Identity]error
	calls []fetchCall
}

func (f *fakeFetcher) Fetch(_ context.Context, url string, id domain.Identity) (string, error) {
	f.calls = append(f.calls, fetchCall{url, id})
	if err := f.errs[id]; err != nil {
		return "", err
	}
	return f.pages[id], nil
}

func ptr[T any](v T) *T { return &v }

var testOffer = domain.OfferData{
	Name:         "Hotel Sol",
	Destination:  "Mallorca",
	Price:        ptr("ab 899 €"),
	Features:     []string{"Großer Pool mit Liegen", "Direkter Strandzugang"},
	FeatureIcons: []string{"🏊", "🏖️"},
	Amenities:    []string{},
}

const goodPost = `🌞 Sonne pur im Hotel Sol auf Mallorca! 🌴

Erlebe unvergessliche Tage ab 899 € pro Person.

🏊 Großer Pool mit Liegen
🏖️ Direkter Strandzugang

💳 Und wie immer bei uns: Du buchst jetzt – und zahlst später ganz flexibel mit ucandoo.

👉 Jetzt buchen
👉 Ratenrechner
👉 Reisebüro finden

✨ Mallorca wartet auf dich ✨
➡️ Schnell sein lohnt sich!`

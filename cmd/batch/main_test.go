package main

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"offer_post/internal/domain"
)

type fakeCreator struct {
	mu       sync.Mutex
	seen     []string
	inFlight atomic.Int32
	peak     atomic.Int32
	fail     map[string]bool
}

func (f *fakeCreator) Create(_ context.Context, url string, o domain.GenerationOptions) (domain.PostRecord, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	f.mu.Lock()
	f.seen = append(f.seen, url)
	f.mu.Unlock()
	if f.fail[url] {
		return domain.PostRecord{}, errors.New("boom")
	}
	return domain.PostRecord{ID: "id-" + url, Outcome: domain.OutcomeAccepted}, nil
}

func TestGenerateAllCountsFailures(t *testing.T) {
	f := &fakeCreator{fail: map[string]bool{"b": true}}
	failed := generateAll(context.Background(), f, []string{"a", "b", "c", "d"}, domain.GenerationOptions{}, 2)

	assert.Equal(t, int32(1), failed)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, f.seen)
	assert.LessOrEqual(t, f.peak.Load(), int32(2))
}

func TestGenerateAllCancelledCountsSkipped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeCreator{}
	failed := generateAll(ctx, f, []string{"a", "b", "c"}, domain.GenerationOptions{}, 1)

	assert.Equal(t, int32(3), failed)
	assert.Empty(t, f.seen)
}

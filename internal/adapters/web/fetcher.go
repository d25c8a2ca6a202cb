package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"offer_post/internal/adapters/observability"
	"offer_post/internal/domain"
)

const maxBody = 5 << 20

type identity struct {
	userAgent string
	accept    string
	language  string
	timeout   time.Duration
}

var identities = map[domain.Identity]identity{
	domain.IdentityPrimary: {
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		accept:    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		language:  "de-DE,de;q=0.9,en-US;q=0.8,en;q=0.7",
		timeout:   10 * time.Second,
	},
	domain.IdentityAlternate: {
		userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
		accept:    "text/html,application/xhtml+xml",
		language:  "de-DE,de;q=0.9",
		timeout:   15 * time.Second,
	},
}

type Options struct {
	Attempts int
	Backoff  time.Duration
	RPS      int
}

// Fetcher downloads offer pages. It implements domain.PageFetcher.
type Fetcher struct {
	hc       *http.Client
	rl       *rate.Limiter
	attempts int
	backoff  time.Duration
}

func New(opts Options) *Fetcher {
	if opts.Attempts <= 0 {
		opts.Attempts = 3
	}
	if opts.Backoff < 0 {
		opts.Backoff = 0
	}
	if opts.RPS <= 0 {
		opts.RPS = 2
	}
	return &Fetcher{
		hc:       &http.Client{},
		rl:       rate.NewLimiter(rate.Limit(opts.RPS), opts.RPS),
		attempts: opts.Attempts,
		backoff:  opts.Backoff,
	}
}

// Fetch returns the decoded HTML of rawURL. The primary identity retries
// network failures, 429 and 5xx with a fixed delay; the alternate identity
// makes a single attempt.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, who domain.Identity) (string, error) {
	id, ok := identities[who]
	if !ok {
		id = identities[domain.IdentityPrimary]
	}
	attempts := f.attempts
	if who == domain.IdentityAlternate {
		attempts = 1
	}

	if err := f.rl.Wait(ctx); err != nil {
		return "", err
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		body, retry, err := f.once(ctx, rawURL, id, who)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry || i == attempts-1 {
			break
		}
		wait := f.backoff
		var fe *domain.FetchError
		if errors.As(err, &fe) && fe.RetryAfter > 0 {
			wait = fe.RetryAfter
		}
		log.Debug().Err(err).Int("attempt", i+1).Str("identity", who.String()).Msg("fetch retry")
		if !sleepCtx(ctx, wait) {
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

func (f *Fetcher) once(ctx context.Context, rawURL string, id identity, who domain.Identity) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, id.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", false, &domain.FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", id.userAgent)
	req.Header.Set("Accept", id.accept)
	req.Header.Set("Accept-Language", id.language)
	req.Header.Set("Cache-Control", "no-cache")

	start := time.Now()
	resp, err := f.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("offer_site", who.String(), 0, time.Since(start))
		recoverable := isRecoverable(err)
		return "", recoverable, &domain.FetchError{URL: rawURL, Recoverable: recoverable, Err: err}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("offer_site", who.String(), resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", true, &domain.FetchError{URL: rawURL, Status: resp.StatusCode, Recoverable: true, RetryAfter: retryAfter(resp)}
	case resp.StatusCode >= 400:
		return "", false, &domain.FetchError{URL: rawURL, Status: resp.StatusCode, Recoverable: true}
	default:
		return "", false, &domain.FetchError{URL: rawURL, Status: resp.StatusCode}
	}

	r, err := charset.NewReader(io.LimitReader(resp.Body, maxBody), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", false, &domain.FetchError{URL: rawURL, Err: fmt.Errorf("decode body: %w", err)}
	}
	b, err := io.ReadAll(r)
	if err != nil {
		recoverable := isRecoverable(err)
		return "", recoverable, &domain.FetchError{URL: rawURL, Recoverable: recoverable, Err: err}
	}
	return string(b), false, nil
}

// isRecoverable reports connection refused and timeouts.
func isRecoverable(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// Package bootstrap wires adapters and services from configuration.
package bootstrap

import (
	"context"
	"database/sql"
	"math/rand/v2"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"offer_post/internal/adapters/gemini"
	"offer_post/internal/adapters/memcache"
	redisad "offer_post/internal/adapters/redis"
	"offer_post/internal/adapters/web"
	"offer_post/internal/app"
	"offer_post/internal/domain"
	"offer_post/internal/emoji"
	"offer_post/internal/prompt"
	"offer_post/internal/scraper"
	"offer_post/internal/shared"
	mysqlrepo "offer_post/internal/storage/mysql"
	"offer_post/internal/validate"
)

type Deps struct {
	Posts   *app.PostService
	closers []func()
}

// Close releases the database, cache and janitor.
func (d *Deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func Build(ctx context.Context, cfg shared.Config) (*Deps, error) {
	d := &Deps{}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info().Msg("database connection ok")
	d.closers = append(d.closers, func() { _ = db.Close() })

	cache := newCache(ctx, cfg, d)

	gen, err := gemini.New(ctx, gemini.Options{APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, RPS: cfg.GenerationRPS})
	if err != nil {
		d.Close()
		return nil, err
	}

	mapper := emoji.Default()
	popts := []prompt.Option{prompt.WithExamples(cfg.PromptExamples), prompt.WithStrict(cfg.StrictPrompt)}
	if cfg.PromptSeed != 0 {
		seed := uint64(cfg.PromptSeed)
		popts = append(popts, prompt.WithRandom(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))))
	}
	orch := app.NewOrchestrator(gen, prompt.New(mapper, popts...),
		validate.New(validate.Options{PriceDigits: cfg.PriceDigits, MinLines: cfg.MinPostLines}),
		mapper,
		app.OrchestratorOptions{FailurePolicy: cfg.FailurePolicy, RevalidateOnRetry: cfg.RevalidateRetry},
	)

	fetcher := web.New(web.Options{Attempts: cfg.FetchAttempts, Backoff: cfg.FetchBackoff, RPS: cfg.FetchRPS})
	scrape := app.NewScrapeService(fetcher, scraper.New(scraper.Options{MaxStayDays: cfg.MaxStayDays}))

	d.Posts = app.NewPostService(scrape, orch, mysqlrepo.New(db), cache, cfg.OfferCacheTTL, cfg.PostCacheTTL)
	return d, nil
}

// newCache prefers Redis when configured and reachable, else the in-memory cache.
func newCache(ctx context.Context, cfg shared.Config, d *Deps) domain.Cache {
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		err := rc.Ping(pctx)
		if err == nil {
			log.Info().Str("addr", cfg.RedisAddr).Msg("using redis cache")
			d.closers = append(d.closers, func() { _ = rc.Close() })
			return rc
		}
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, using in-memory cache")
		_ = rc.Close()
	}
	mc := memcache.New()
	d.closers = append(d.closers, mc.Close)
	return mc
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"offer_post/internal/adapters/observability"
	"offer_post/internal/bootstrap"
	"offer_post/internal/domain"
	"offer_post/internal/shared"
)

func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	style := flag.String("style", string(domain.StyleEnthusiastic), "post style: enthusiastic, elegant, family, adventure")
	noEmojis := flag.Bool("no-emojis", false, "generate posts without decorative emojis")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <offer-url>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	urls := flag.Args()
	if len(urls) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	st, err := domain.ParseStyle(*style)
	if err != nil {
		log.Fatal().Err(err).Msg("bad style")
	}
	opts := domain.GenerationOptions{UseEmojis: !*noEmojis, Style: st}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	failed, err := run(ctx, cfg, urls, opts)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// run owns the dependencies so they are closed before main decides the exit code.
func run(ctx context.Context, cfg shared.Config, urls []string, opts domain.GenerationOptions) (int32, error) {
	deps, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return 0, err
	}
	defer deps.Close()
	return generateAll(ctx, deps.Posts, urls, opts, cfg.BatchWorkers), nil
}

type postCreator interface {
	Create(ctx context.Context, url string, opts domain.GenerationOptions) (domain.PostRecord, error)
}

// generateAll creates one post per URL with at most workers in flight and
// returns how many failed. URLs not started before ctx ends count as failed.
func generateAll(ctx context.Context, posts postCreator, urls []string, opts domain.GenerationOptions, workers int) int32 {
	if workers <= 0 {
		workers = 1
	}
	log.Info().Int("urls", len(urls)).Int("workers", workers).Msg("batch starting")

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var failed atomic.Int32

	for i, u := range urls {
		// acquire before launching the goroutine; release inside it
		err := ctx.Err()
		if err == nil {
			err = sem.Acquire(ctx, 1)
		}
		if err != nil {
			log.Warn().Err(err).Int("skipped", len(urls)-i).Msg("batch interrupted")
			failed.Add(int32(len(urls) - i))
			break
		}
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			defer sem.Release(1)

			rec, err := posts.Create(ctx, url, opts)
			if err != nil {
				failed.Add(1)
				log.Warn().Str("url", url).Err(err).Msg("post failed")
				return
			}
			log.Info().Str("url", url).Str("id", rec.ID).Str("outcome", string(rec.Outcome)).Msg("post ok")
		}(u)
	}

	wg.Wait()
	log.Info().Int32("failed", failed.Load()).Msg("batch completed")
	return failed.Load()
}

package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	GeminiKey       string
	GeminiModel     string
	GenerationRPS   int
	FailurePolicy   string // fallback | error
	RevalidateRetry bool
	StrictPrompt    bool
	PromptExamples  int
	PromptSeed      int64

	AllowedHosts  []string
	FetchAttempts int
	FetchBackoff  time.Duration
	FetchRPS      int

	MaxStayDays  int
	PriceDigits  int
	MinPostLines int

	OfferCacheTTL time.Duration
	PostCacheTTL  time.Duration
	BatchWorkers  int
}

const (
	PolicyFallback = "fallback"
	PolicyError    = "error"
)

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/offer_post?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		GeminiKey:       env("GEMINI_API_KEY", ""),
		GeminiModel:     env("GEMINI_MODEL", "gemini-1.5-pro"),
		GenerationRPS:   atoi("GENERATION_RPS", 1),
		FailurePolicy:   strings.ToLower(env("GENERATION_FAILURE_POLICY", PolicyFallback)),
		RevalidateRetry: boolean("REVALIDATE_ON_RETRY", false),
		StrictPrompt:    boolean("STRICT_PROMPT", true),
		PromptExamples:  atoi("PROMPT_EXAMPLES", 2),
		PromptSeed:      int64(atoi("PROMPT_SEED", 0)),

		AllowedHosts:  list("ALLOWED_HOSTS", "meinreisebuero24.com"),
		FetchAttempts: atoi("FETCH_ATTEMPTS", 3),
		FetchBackoff:  time.Duration(atoi("FETCH_BACKOFF_MS", 1000)) * time.Millisecond,
		FetchRPS:      atoi("FETCH_RPS", 2),

		MaxStayDays:  atoi("MAX_STAY_DAYS", 30),
		PriceDigits:  atoi("PRICE_DIGITS", 4),
		MinPostLines: atoi("MIN_POST_LINES", 10),

		OfferCacheTTL: time.Duration(atoi("OFFER_CACHE_TTL_SECONDS", 3600)) * time.Second,
		PostCacheTTL:  time.Duration(atoi("POST_CACHE_TTL_SECONDS", 900)) * time.Second,
		BatchWorkers:  atoi("BATCH_WORKERS", 4),
	}
	if c.FailurePolicy != PolicyFallback && c.FailurePolicy != PolicyError {
		log.Warn().Str("policy", c.FailurePolicy).Msg("unknown GENERATION_FAILURE_POLICY, using fallback")
		c.FailurePolicy = PolicyFallback
	}
	if c.GeminiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func boolean(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func list(k, def string) []string {
	var out []string
	for _, p := range strings.Split(env(k, def), ",") {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

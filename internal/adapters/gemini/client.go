package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"offer_post/internal/adapters/observability"
	"offer_post/internal/domain"
)

const DefaultModel = "gemini-1.5-pro"

// models is the slice of *genai.Models the client needs.
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Options struct {
	APIKey string
	Model  string
	RPS    int
}

// Client implements domain.TextGenerator over the Gemini API.
type Client struct {
	m     models
	model string
	rl    *rate.Limiter
}

var safety = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
}

// New builds a client. Without an API key the client is created anyway and
// every call fails with a transport error, so the failure policy decides.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return newClient(nil, opts), nil
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return newClient(gc.Models, opts), nil
}

func newClient(m models, opts Options) *Client {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.RPS <= 0 {
		opts.RPS = 1
	}
	return &Client{m: m, model: opts.Model, rl: rate.NewLimiter(rate.Limit(opts.RPS), opts.RPS)}
}

func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if c.m == nil {
		return "", fmt.Errorf("%w: generation endpoint not configured", domain.ErrTransport)
	}
	if err := c.rl.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.Instructions, genai.RoleUser),
		Temperature:       genai.Ptr(float32(req.Sampling.Temperature)),
		TopP:              genai.Ptr(float32(req.Sampling.TopP)),
		MaxOutputTokens:   int32(req.Sampling.MaxOutputTokens),
		SafetySettings:    safety,
	}
	if req.Sampling.TopK > 0 {
		cfg.TopK = genai.Ptr(float32(req.Sampling.TopK))
	}
	contents := []*genai.Content{genai.NewContentFromText(req.UserContent, genai.RoleUser)}

	start := time.Now()
	resp, err := c.m.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		err = classify(err)
		observability.ObserveExternal("gemini", "generate", statusOf(err), time.Since(start))
		log.Warn().Err(err).Str("model", c.model).Msg("generation call failed")
		return "", err
	}
	observability.ObserveExternal("gemini", "generate", http.StatusOK, time.Since(start))

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		reason := "empty response"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			reason = "blocked: " + string(resp.PromptFeedback.BlockReason)
		} else if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != "" {
			reason = "finish reason " + string(resp.Candidates[0].FinishReason)
		}
		return "", fmt.Errorf("%w: %s", domain.ErrProvider, reason)
	}
	return text, nil
}

// classify maps SDK errors onto the domain taxonomy.
func classify(err error) error {
	var code int
	var status, msg string
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code, status, msg = apiErr.Code, apiErr.Status, apiErr.Message
	case errors.As(err, &apiErrPtr):
		code, status, msg = apiErrPtr.Code, apiErrPtr.Status, apiErrPtr.Message
	default:
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	if code == http.StatusTooManyRequests || status == "RESOURCE_EXHAUSTED" {
		return fmt.Errorf("%w: %s", domain.ErrQuotaExceeded, msg)
	}
	return fmt.Errorf("%w: %d %s", domain.ErrProvider, code, msg)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrProvider):
		return http.StatusInternalServerError
	}
	return 0
}

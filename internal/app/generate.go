package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"offer_post/internal/adapters/observability"
	"offer_post/internal/domain"
	"offer_post/internal/emoji"
	"offer_post/internal/prompt"
	"offer_post/internal/validate"
)

const maxGenerationAttempts = 2

const (
	PolicyFallback = "fallback"
	PolicyError    = "error"
)

type OrchestratorOptions struct {
	// FailurePolicy decides what a failed generation call turns into:
	// PolicyFallback substitutes the template, PolicyError returns the error.
	FailurePolicy string
	// RevalidateOnRetry re-checks the second attempt. Without it the retry
	// result is accepted as is.
	RevalidateOnRetry bool
}

// Orchestrator drives prompt building, the generation call and validation
// through at most two attempts.
type Orchestrator struct {
	gen       domain.TextGenerator
	prompts   *prompt.Builder
	validator *validate.Validator
	mapper    *emoji.Mapper
	opts      OrchestratorOptions
}

func NewOrchestrator(gen domain.TextGenerator, pb *prompt.Builder, v *validate.Validator, m *emoji.Mapper, opts OrchestratorOptions) *Orchestrator {
	if opts.FailurePolicy != PolicyError {
		opts.FailurePolicy = PolicyFallback
	}
	if m == nil {
		m = emoji.Default()
	}
	return &Orchestrator{gen: gen, prompts: pb, validator: v, mapper: m, opts: opts}
}

func (o *Orchestrator) Generate(ctx context.Context, offer domain.OfferData, opts domain.GenerationOptions) (domain.Generation, error) {
	req := o.prompts.Build(offer, opts)
	lastCheck := ""

	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		text, err := o.gen.Generate(ctx, req)
		if err != nil {
			return o.failed(ctx, offer, opts, attempt, lastCheck, err)
		}

		retry := attempt == maxGenerationAttempts
		if retry && !o.opts.RevalidateOnRetry {
			return o.done(domain.Generation{Text: text, Outcome: domain.OutcomeUnvalidated, Attempts: attempt, FailedCheck: lastCheck}), nil
		}

		res := o.validator.Validate(text, offer)
		if res.Passed {
			return o.done(domain.Generation{Text: text, Outcome: domain.OutcomeAccepted, Attempts: attempt}), nil
		}
		lastCheck = res.Check
		observability.ObserveValidationFailure(res.Check, attempt)
		log.Warn().
			Str("check", res.Check).
			Str("detail", res.Detail).
			Int("attempt", attempt).
			Str("hotel", offer.Name).
			Msg("generated post rejected")

		if retry {
			return o.done(domain.Generation{Text: text, Outcome: domain.OutcomeInvalid, Attempts: attempt, FailedCheck: res.Check}), nil
		}
		req = o.prompts.Correct(req, res.Check)
	}
	// unreachable: the loop always returns on its last attempt
	return domain.Generation{}, fmt.Errorf("%w: generation loop exhausted", domain.ErrProvider)
}

func (o *Orchestrator) failed(ctx context.Context, offer domain.OfferData, opts domain.GenerationOptions, attempt int, lastCheck string, err error) (domain.Generation, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.Generation{}, fmt.Errorf("%w: %v", domain.ErrTransport, ctxErr)
	}
	if o.opts.FailurePolicy == PolicyError {
		observability.ObserveGeneration("error")
		if !errors.Is(err, domain.ErrQuotaExceeded) && !errors.Is(err, domain.ErrProvider) && !errors.Is(err, domain.ErrTransport) {
			err = fmt.Errorf("%w: %v", domain.ErrProvider, err)
		}
		return domain.Generation{}, err
	}
	log.Warn().Err(err).Int("attempt", attempt).Str("hotel", offer.Name).Msg("generation failed, using fallback template")
	return o.done(domain.Generation{
		Text:        FallbackPost(offer, opts, o.mapper),
		Outcome:     domain.OutcomeFallback,
		Attempts:    attempt,
		FailedCheck: lastCheck,
	}), nil
}

func (o *Orchestrator) done(g domain.Generation) domain.Generation {
	observability.ObserveGeneration(string(g.Outcome))
	return g
}

package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offer_post/internal/app"
	"offer_post/internal/domain"
	"offer_post/internal/emoji"
	"offer_post/internal/prompt"
	"offer_post/internal/validate"
)

var opts = domain.GenerationOptions{UseEmojis: true, Style: domain.StyleEnthusiastic}

func orchestrator(gen domain.TextGenerator, o app.OrchestratorOptions) *app.Orchestrator {
	return app.NewOrchestrator(gen, prompt.New(emoji.Default()), validate.New(validate.Options{}), emoji.Default(), o)
}

func TestGenerateAcceptedOnFirstAttempt(t *testing.T) {
	gen := &scriptedGen{replies: []reply{{text: goodPost}}}
	g, err := orchestrator(gen, app.OrchestratorOptions{}).Generate(context.Background(), testOffer, opts)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAccepted, g.Outcome)
	assert.Equal(t, 1, g.Attempts)
	assert.Equal(t, goodPost, g.Text)
	assert.Len(t, gen.reqs, 1)
}

func TestGenerateRetryIsNotRevalidatedByDefault(t *testing.T) {
	gen := &scriptedGen{replies: []reply{{text: "zu kurz"}, {text: "immer noch zu kurz"}}}
	g, err := orchestrator(gen, app.OrchestratorOptions{}).Generate(context.Background(), testOffer, opts)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnvalidated, g.Outcome)
	assert.Equal(t, 2, g.Attempts)
	assert.Equal(t, "immer noch zu kurz", g.Text)
	assert.Equal(t, domain.CheckRequiredLiteral, g.FailedCheck)

	require.Len(t, gen.reqs, 2)
	assert.Contains(t, gen.reqs[1].UserContent, "WICHTIG")
	assert.Less(t, gen.reqs[1].Sampling.Temperature, gen.reqs[0].Sampling.Temperature)
	assert.GreaterOrEqual(t, gen.reqs[1].Sampling.Temperature, 0.3)
}

func TestGenerateRevalidateOnRetry(t *testing.T) {
	t.Run("retry passes", func(t *testing.T) {
		gen := &scriptedGen{replies: []reply{{text: "kaputt"}, {text: goodPost}}}
		g, err := orchestrator(gen, app.OrchestratorOptions{RevalidateOnRetry: true}).Generate(context.Background(), testOffer, opts)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeAccepted, g.Outcome)
		assert.Equal(t, 2, g.Attempts)
	})
	t.Run("retry still failing", func(t *testing.T) {
		bad := strings.Replace(goodPost, "👉 Ratenrechner", "Ratenrechner", 1)
		gen := &scriptedGen{replies: []reply{{text: "kaputt"}, {text: bad}}}
		g, err := orchestrator(gen, app.OrchestratorOptions{RevalidateOnRetry: true}).Generate(context.Background(), testOffer, opts)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeInvalid, g.Outcome)
		assert.Equal(t, domain.CheckStructure, g.FailedCheck)
		assert.Equal(t, bad, g.Text)
	})
}

func TestGenerateNeverCallsMoreThanTwice(t *testing.T) {
	gen := &scriptedGen{replies: []reply{{text: "a"}, {text: "b"}, {text: goodPost}}}
	_, err := orchestrator(gen, app.OrchestratorOptions{RevalidateOnRetry: true}).Generate(context.Background(), testOffer, opts)
	require.NoError(t, err)
	assert.Len(t, gen.reqs, 2)
}

func TestGenerateQuotaWithFallbackPolicy(t *testing.T) {
	gen := &scriptedGen{replies: []reply{{err: errors.Join(domain.ErrQuotaExceeded, errors.New("429"))}}}
	g, err := orchestrator(gen, app.OrchestratorOptions{FailurePolicy: app.PolicyFallback}).Generate(context.Background(), testOffer, opts)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFallback, g.Outcome)
	assert.Contains(t, g.Text, "Hotel Sol")
	assert.Contains(t, g.Text, "Demo-Modus")
	assert.True(t, validate.New(validate.Options{}).Validate(g.Text, testOffer).Passed)
}

func TestGenerateErrorPolicy(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"quota", domain.ErrQuotaExceeded, domain.ErrQuotaExceeded},
		{"transport", domain.ErrTransport, domain.ErrTransport},
		{"unclassified", errors.New("boom"), domain.ErrProvider},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &scriptedGen{replies: []reply{{err: tc.err}}}
			_, err := orchestrator(gen, app.OrchestratorOptions{FailurePolicy: app.PolicyError}).Generate(context.Background(), testOffer, opts)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGenerateFailureOnRetryFallsBack(t *testing.T) {
	gen := &scriptedGen{replies: []reply{{text: "kaputt"}, {err: domain.ErrProvider}}}
	g, err := orchestrator(gen, app.OrchestratorOptions{}).Generate(context.Background(), testOffer, opts)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFallback, g.Outcome)
	assert.Equal(t, 2, g.Attempts)
	assert.Equal(t, domain.CheckRequiredLiteral, g.FailedCheck)
}

func TestGenerateCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := &scriptedGen{replies: []reply{{err: context.Canceled}}}
	_, err := orchestrator(gen, app.OrchestratorOptions{}).Generate(ctx, testOffer, opts)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

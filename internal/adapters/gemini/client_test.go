package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"offer_post/internal/domain"
)

type fakeModels struct {
	resp *genai.GenerateContentResponse
	err  error

	model    string
	contents []*genai.Content
	cfg      *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model, f.contents, f.cfg = model, contents, cfg
	return f.resp, f.err
}

func textResponse(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: s}}},
	}}}
}

var req = domain.GenerationRequest{
	Instructions: "Du bist Reiseexperte.",
	UserContent:  "Hotel: Hotel Sol",
	Sampling:     domain.Sampling{Temperature: 0.7, TopP: 0.95, TopK: 40, MaxOutputTokens: 1000},
}

func TestGeneratePassesPromptAndSampling(t *testing.T) {
	fm := &fakeModels{resp: textResponse("  Post  \n")}
	c := newClient(fm, Options{RPS: 100})

	out, err := c.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Post", out)

	assert.Equal(t, DefaultModel, fm.model)
	require.Len(t, fm.contents, 1)
	assert.Equal(t, "Hotel: Hotel Sol", fm.contents[0].Parts[0].Text)
	assert.Equal(t, "Du bist Reiseexperte.", fm.cfg.SystemInstruction.Parts[0].Text)
	assert.InDelta(t, 0.7, *fm.cfg.Temperature, 1e-6)
	assert.InDelta(t, 0.95, *fm.cfg.TopP, 1e-6)
	assert.InDelta(t, 40, *fm.cfg.TopK, 1e-6)
	assert.EqualValues(t, 1000, fm.cfg.MaxOutputTokens)
	assert.Len(t, fm.cfg.SafetySettings, 4)
}

func TestGenerateErrorClasses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"quota by code", genai.APIError{Code: 429, Message: "slow down"}, domain.ErrQuotaExceeded},
		{"quota by status", genai.APIError{Code: 400, Status: "RESOURCE_EXHAUSTED"}, domain.ErrQuotaExceeded},
		{"provider", genai.APIError{Code: 500, Status: "INTERNAL"}, domain.ErrProvider},
		{"transport", errors.New("dial tcp: connection reset"), domain.ErrTransport},
		{"deadline", context.DeadlineExceeded, domain.ErrTransport},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newClient(&fakeModels{err: tc.err}, Options{RPS: 100})
			_, err := c.Generate(context.Background(), req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGenerateEmptyResponseIsProviderError(t *testing.T) {
	blocked := &genai.GenerateContentResponse{PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
		BlockReason: genai.BlockedReasonSafety,
	}}
	c := newClient(&fakeModels{resp: blocked}, Options{RPS: 100})
	_, err := c.Generate(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrProvider)
	assert.Contains(t, err.Error(), "blocked")
}

func TestGenerateWithoutKey(t *testing.T) {
	c, err := New(context.Background(), Options{})
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

package app_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offer_post/internal/app"
	"offer_post/internal/domain"
	"offer_post/internal/scraper"
	"offer_post/internal/validate"
)

func TestFallbackPostPassesValidator(t *testing.T) {
	v := validate.New(validate.Options{})
	long := domain.OfferData{
		Name:         "Riu Palace Bonita Beach Resort & Spa",
		Category:     ptr("5-Sterne Hotel"),
		Destination:  "Spanien, Spanien & Mallorca",
		Price:        ptr("ab 1.099 €"),
		Duration:     ptr("7 Nächte"),
		Features:     []string{"Großer Außenpool", "Direkt am Strand", "Spa mit Sauna", "Kinderclub", "Fitnessraum", "Tennisplatz"},
		FeatureIcons: []string{"🏊", "🏖️", "💆", "👶", "💪", "🎾"},
	}
	bare := domain.OfferData{Name: "Hotel Sol", Destination: domain.DestinationPlaceholder}

	for name, offer := range map[string]domain.OfferData{"full": long, "bare": bare, "test": testOffer} {
		for _, emojis := range []bool{true, false} {
			text := app.FallbackPost(offer, domain.GenerationOptions{UseEmojis: emojis, Style: domain.StyleElegant}, nil)
			r := v.Validate(text, offer)
			assert.True(t, r.Passed, "%s emojis=%t failed %s (%s):\n%s", name, emojis, r.Check, r.Detail, text)
		}
	}
}

func TestFallbackPostContent(t *testing.T) {
	offer := domain.OfferData{
		Name:         "Hotel Sol",
		Destination:  "Mallorca",
		Features:     []string{"A Pool", "B Strand", "C Spa", "D Bar", "E Gym", "F Golf"},
		FeatureIcons: []string{"🏊", "🏖️"},
	}
	text := app.FallbackPost(offer, domain.GenerationOptions{UseEmojis: true}, nil)

	assert.Contains(t, text, "Hotel Sol")
	assert.Contains(t, text, "Mallorca")
	assert.Contains(t, text, domain.PaymentPhrase)
	assert.Contains(t, text, "Demo-Modus")
	assert.Contains(t, text, "🏊 A Pool")
	assert.Contains(t, text, domain.DefaultFeatureIcon+" E Gym")
	assert.NotContains(t, text, "F Golf")
	for _, l := range domain.CTALabels {
		assert.Contains(t, text, domain.PointerGlyph+" "+l)
	}

	plain := app.FallbackPost(offer, domain.GenerationOptions{UseEmojis: false}, nil)
	assert.Contains(t, plain, "• A Pool")
	assert.False(t, strings.Contains(plain, "🌴"))
}

func TestFallbackPostIsDeterministic(t *testing.T) {
	o := domain.GenerationOptions{UseEmojis: true, Style: domain.StyleFamily}
	assert.Equal(t, app.FallbackPost(testOffer, o, nil), app.FallbackPost(testOffer, o, nil))
}

func TestFallbackPostFromMinimalRecordPassesValidator(t *testing.T) {
	page := `<html><head><title>Hotel Sol y Mar | Angebote</title></head><body>
<div class="error">Leider sind zu Ihrer Suche keine passenden Angebote verfügbar.</div>
<p>Das Hotel liegt direkt am Strand. Das Frühstück wird auf der Terrasse serviert.</p>
</body></html>`
	offer, err := scraper.New(scraper.Options{}).ExtractMinimal(page, "https://www.meinreisebuero24.com/tuerkei/hotel-sol-y-mar")
	require.NoError(t, err)

	v := validate.New(validate.Options{})
	for _, emojis := range []bool{true, false} {
		text := app.FallbackPost(offer, domain.GenerationOptions{UseEmojis: emojis, Style: domain.StyleEnthusiastic}, nil)
		r := v.Validate(text, offer)
		assert.True(t, r.Passed, "emojis=%t failed %s (%s):\n%s", emojis, r.Check, r.Detail, text)
		assert.NotContains(t, strings.ToLower(text), "leider")
	}
}

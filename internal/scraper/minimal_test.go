package scraper_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offer_post/internal/scraper"
)

func TestExtractMinimal_MinesKeywordSentences(t *testing.T) {
	x := scraper.New(scraper.Options{})
	got, err := x.ExtractMinimal(fixture(t, "offer_broken.html"), "https://www.meinreisebuero24.com/tuerkei/hotel-sol-y-mar")
	require.NoError(t, err)

	assert.Equal(t, "Hotel Sol y Mar", got.Name)
	assert.Equal(t, "Tuerkei", got.Destination)
	assert.Equal(t, []string{
		"Das Hotel liegt direkt am Strand.",
		"Das Frühstück wird auf der Terrasse serviert.",
	}, got.Features)
	assert.Equal(t, []string{"🏖️", "🍽️"}, got.FeatureIcons)
	assert.Nil(t, got.Price)
	assert.Nil(t, got.Duration)
	assert.Nil(t, got.Category)
}

func TestExtractMinimal_Placeholders(t *testing.T) {
	x := scraper.New(scraper.Options{})
	got, err := x.ExtractMinimal(`<html><body><p>Nichts zu sehen.</p></body></html>`, "https://www.meinreisebuero24.com/hotel-x")
	require.NoError(t, err)

	assert.Equal(t, "Hotel", got.Name)
	assert.Equal(t, "Reiseziel", got.Destination)
	assert.Equal(t, []string{"Komfortable Zimmer", "Zentrale Lage"}, got.Features)
	assert.Len(t, got.FeatureIcons, 2)
}

func TestExtractMinimal_SkipsErrorAndNavigationSentences(t *testing.T) {
	page := `<html><body><h1>Hotel Sol y Mar</h1>
<p>Leider sind zu Ihrer Suche keine passenden Angebote mit Pool verfügbar.</p>
<p>Kontakt zum Hotel mit Blick auf die Rezeption.</p>
<p>Unser Spanien Urlaub war toll. Das Hotel liegt direkt am Strand.</p>
<p>Abends lockt die Bar am Pool mit Cocktails!</p>
</body></html>`
	got, err := scraper.New(scraper.Options{}).ExtractMinimal(page, "https://www.meinreisebuero24.com/tuerkei/hotel-sol-y-mar")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Abends lockt die Bar am Pool mit Cocktails!",
		"Das Hotel liegt direkt am Strand.",
	}, got.Features)
	for _, f := range got.Features {
		lower := strings.ToLower(f)
		for _, bad := range []string{"leider", "keine angebote", "verfügbar", "suche", "fehler", "kontakt"} {
			assert.NotContains(t, lower, bad)
		}
	}
}

func TestExtractMinimal_ShortKeywordsNeedWholeWord(t *testing.T) {
	page := `<html><body><h1>Hotel Sol</h1>
<p>Die Zimmer sind ganzjährig buchbar und sofort bezahlbar. Wir reisen nach Spanien im Sommer.</p>
</body></html>`
	got, err := scraper.New(scraper.Options{}).ExtractMinimal(page, "https://www.meinreisebuero24.com/hotel-sol")
	require.NoError(t, err)

	assert.Equal(t, []string{"Komfortable Zimmer", "Zentrale Lage"}, got.Features)
}

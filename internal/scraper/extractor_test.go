package scraper_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offer_post/internal/domain"
	"offer_post/internal/scraper"
)

const offerURL = "https://www.meinreisebuero24.com/angebote/spanien/mallorca/hotel-riu-palace-bonita-12345.html"

func fixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(b)
}

func TestExtract_FullPage(t *testing.T) {
	x := scraper.New(scraper.Options{})
	got, err := x.Extract(fixture(t, "offer_full.html"), offerURL)
	require.NoError(t, err)

	assert.Equal(t, "Riu Palace Bonita", got.Name)
	assert.Equal(t, "4-Sterne Hotel", domain.Deref(got.Category))
	assert.Equal(t, "ab 1.099 €", domain.Deref(got.Price))
	assert.Equal(t, "7 Nächte", domain.Deref(got.Duration))
	assert.Equal(t, "Spanien, Mallorca", got.Destination)
	assert.Equal(t, []string{
		"Großer Außenpool mit Sonnenliegen",
		"Frühstück und WLAN im Zimmer",
		"Direkt am Strand von Playa de Palma",
		"Wellnessbereich mit Sauna und Massage",
		"Fitnessraum mit modernen Geräten",
	}, got.Features)
	// icon classes win over keyword lookup
	assert.Equal(t, []string{"🏊‍♀️", "🍽️", "🏖️", "💆‍♂️", "💪"}, got.FeatureIcons)
	assert.Equal(t, []string{"Wellnessbereich mit Sauna und Massage", "Fitnessraum mit modernen Geräten"}, got.Amenities)
	assert.True(t, strings.HasPrefix(domain.Deref(got.Description), "Das Hotel liegt direkt an der Promenade"))
	assert.Equal(t, "https://www.meinreisebuero24.com/img/hotel/pool.jpg", domain.Deref(got.ImageURL))
}

func TestExtract_SparsePageOmitsPriceAndDuration(t *testing.T) {
	x := scraper.New(scraper.Options{})
	got, err := x.Extract(fixture(t, "offer_sparse.html"), "https://www.meinreisebuero24.com/angebote/italien/hotel-casa-rosa")
	require.NoError(t, err)

	assert.Equal(t, "Casa Rosa", got.Name)
	assert.Nil(t, got.Category)
	assert.Nil(t, got.Price)
	assert.Nil(t, got.Duration)
	assert.Nil(t, got.ImageURL)
	assert.Equal(t, "Italien", got.Destination)
	assert.Equal(t, []string{
		"Unser Haus bietet ruhige Zimmer mit Balkon",
		"Genießen Sie den Pool im Garten",
		"Komfortable Zimmer mit stilvollem Design",
		"Ideale Lage für Ihren Italien Aufenthalt",
	}, got.Features)
	assert.Equal(t, []string{"🛏️", "🏊‍♀️", "🛏️", "📍"}, got.FeatureIcons)
}

func TestExtract_ImplausibleNameFails(t *testing.T) {
	x := scraper.New(scraper.Options{})
	_, err := x.Extract(fixture(t, "offer_broken.html"), offerURL)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)

	_, err = x.Extract(`<html><body><h1>AB</h1></body></html>`, offerURL)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_IsDeterministic(t *testing.T) {
	x := scraper.New(scraper.Options{})
	html := fixture(t, "offer_full.html")
	a, err := x.Extract(html, offerURL)
	require.NoError(t, err)
	b, err := x.Extract(html, offerURL)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExtract_Name(t *testing.T) {
	cases := []struct {
		name, html, want string
	}{
		{"designated element wins", `<h1>Willkommen</h1><h1 class="hotel-name">Hotel Alpenblick</h1>`, "Hotel Alpenblick"},
		{"title element", `<div class="hotel-title"> Villa   Sole </div><h1>Other</h1>`, "Villa Sole"},
		{"query artifact", `<h1>Iberostar Selection?id=42&amp;x=1</h1>`, "Iberostar Selection"},
		{"ampersand kept", `<h1>Sun &amp; Sea Resort</h1>`, "Sun & Sea Resort"},
		{"question mark first", `<h1>?Abc</h1>`, "Abc"},
		{"brand from title", `<title>B&amp;B Hotel Berlin-Mitte | Angebot</title><h1>B</h1>`, "B&B Hotel Berlin"},
		{"brand fallback", `<title>Das B&amp;B</title><h1>B</h1>`, "B&B Hotel"},
	}
	x := scraper.New(scraper.Options{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := x.Extract("<html><head></head><body>"+tc.html+"</body></html>", offerURL)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Name)
			assert.NotContains(t, got.Name, "?")
		})
	}
}

func TestExtract_CategoryFromText(t *testing.T) {
	x := scraper.New(scraper.Options{})
	got, err := x.Extract(`<body><h1>Hotel Test</h1><p>Unser 3 Sterne Haus, früher ein 4-Sterne Hotel, nicht 15 Sterne.</p></body>`, offerURL)
	require.NoError(t, err)
	assert.Equal(t, "4-Sterne Hotel", domain.Deref(got.Category))
}

func TestExtract_Duration(t *testing.T) {
	cases := []struct {
		name, body string
		max        int
		want       string
	}{
		{"nights in text", `<p>Genießen Sie 5 Nächte im Paradies</p>`, 0, "5 Nächte"},
		{"days in text", `<p>Reise über 10 Tage</p>`, 0, "10 Tage"},
		{"out of bound skipped", `<p>45 Tage Rückgaberecht, Aufenthalt: 12 Tage</p>`, 0, "12 Tage"},
		{"german dates", `<p>Anreise: 01.06.2025 Abreise: 08.06.2025</p>`, 0, "7 Tage"},
		{"iso dates", `<p>Check-in: 2025-06-01 bis Check-out: 2025-06-15</p>`, 0, "14 Tage"},
		{"custom bound", `<p>Rundreise 40 Tage</p>`, 60, "40 Tage"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x := scraper.New(scraper.Options{MaxStayDays: tc.max})
			got, err := x.Extract(`<body><h1>Hotel Test</h1>`+tc.body+`</body>`, offerURL)
			require.NoError(t, err)
			assert.Equal(t, tc.want, domain.Deref(got.Duration))
		})
	}
}

func TestExtract_DurationOutOfBound(t *testing.T) {
	x := scraper.New(scraper.Options{})
	got, err := x.Extract(`<body><h1>Hotel Test</h1><p>Anreise: 01.06.2025 Abreise: 01.09.2025</p></body>`, offerURL)
	require.NoError(t, err)
	assert.Nil(t, got.Duration)
}

func TestExtract_PriceCascade(t *testing.T) {
	cases := []struct {
		name, body, want string
	}{
		{"phrase", `<p>Jetzt ab 799 € sichern</p><p>Sonderpreis 499 €</p>`, "ab 799 €"},
		{"per person", `<p>Nur 1299,50 € p.P. inklusive</p>`, "ab 1.299,50 €"},
		{"short node", `<span>Buchen Sie für 99 €</span><span>2.450 € gesamt</span>`, "ab 2.450 €"},
		{"bare", `<p>Im Angebot enthalten sind Leistungen im Wert von insgesamt 350 € und vieles mehr, was Sie erwartet.</p>`, "ab 350 €"},
	}
	x := scraper.New(scraper.Options{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := x.Extract(`<body><h1>Hotel Test</h1>`+tc.body+`</body>`, offerURL)
			require.NoError(t, err)
			assert.Equal(t, tc.want, domain.Deref(got.Price))
		})
	}
}

func TestExtract_DestinationCascade(t *testing.T) {
	cases := []struct {
		name, body, url, want string
	}{
		{"location skips name", `<div class="location">Hotel Test Resort</div><div class="city">kreta</div>`, offerURL, "Kreta"},
		{"breadcrumb", `<ol class="breadcrumbs"><li>Startseite</li><li>Hotels</li><li>Griechenland &amp; Rhodos</li></ol>`, offerURL, "Griechenland, Rhodos"},
		{"url slug", ``, "https://www.meinreisebuero24.com/costa-brava/hotel-test", "Costa Brava"},
		{"second chance", ``, "https://www.meinreisebuero24.com/12345/playa_de_palma", "Playa De Palma"},
		{"placeholder", ``, "https://www.meinreisebuero24.com/hotel-test/offer.html", domain.DestinationPlaceholder},
	}
	x := scraper.New(scraper.Options{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := x.Extract(`<body><h1>Hotel Test</h1>`+tc.body+`</body>`, tc.url)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Destination)
		})
	}
}

func TestExtract_FeaturesAlwaysPaired(t *testing.T) {
	pages := []string{
		`<body><h1>Hotel Test</h1></body>`,
		`<body><h1>Hotel Test</h1><div class="stars"><i class="star"></i><i class="star"></i><i class="star"></i><i class="star"></i><i class="star"></i></div></body>`,
		`<body><h1>Hotel Test</h1><ul class="highlights"><li>Pool mit Rutsche und Bar</li><li>Zimmer mit Meerblick</li><li>Spa und Sauna</li><li>Strandliegen inklusive</li><li>Kinderclub ab 4 Jahren</li><li>Restaurant mit Terrasse</li></ul></body>`,
	}
	x := scraper.New(scraper.Options{})
	for _, p := range pages {
		got, err := x.Extract(p, offerURL)
		require.NoError(t, err)
		assert.Len(t, got.FeatureIcons, len(got.Features))
		assert.LessOrEqual(t, len(got.Features), 5)
		assert.GreaterOrEqual(t, len(got.Features), 4)
	}
}

func TestExtract_LuxuryGenericFeatures(t *testing.T) {
	x := scraper.New(scraper.Options{})
	got, err := x.Extract(`<body><h1>Hotel Test</h1><p>Ein echtes 5-Sterne Erlebnis</p></body>`, offerURL)
	require.NoError(t, err)
	require.Len(t, got.Features, 4)
	assert.Equal(t, "Luxuriöse Ausstattung", got.Features[0])
	assert.Equal(t, "👑", got.FeatureIcons[1])
}

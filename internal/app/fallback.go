package app

import (
	"strings"

	"offer_post/internal/domain"
	"offer_post/internal/emoji"
)

const (
	fallbackIntro   = "Entdecke dein nächstes Urlaubsabenteuer!"
	fallbackClosing = "Dein Urlaub beginnt genau hier"
	fallbackCall    = "Sichere dir jetzt deinen Traumurlaub!"
	fallbackLinks   = "Alle Infos auf einen Blick:"
	demoNotice      = "ℹ️ Demo-Modus: Dieser Text wurde automatisch aus den Angebotsdaten erstellt."
	maxPostFeatures = 5
)

// FallbackPost assembles a deterministic post straight from offer. It carries every
// structural marker the validator looks for, plus a visible demo notice.
func FallbackPost(offer domain.OfferData, opts domain.GenerationOptions, m *emoji.Mapper) string {
	if m == nil {
		m = emoji.Default()
	}
	dest := domain.CleanDestination(offer.Destination)
	lines := make([]string, 0, 20)
	add := func(s ...string) { lines = append(lines, s...) }

	if opts.UseEmojis {
		add("🌴 *" + offer.Name + "* in " + dest + " " + m.DestinationEmoji(dest))
	} else {
		add("*" + offer.Name + "* in " + dest)
	}
	add(fallbackIntro)
	if offer.Category != nil {
		add(prefixed(opts, "⭐ ", *offer.Category))
	}
	if offer.Price != nil {
		add(prefixed(opts, "💶 ", "Preis: "+*offer.Price))
	}
	if offer.Duration != nil {
		add(prefixed(opts, "🗓️ ", "Dauer: "+*offer.Duration))
	}
	add("")

	if n := min(len(offer.Features), maxPostFeatures); n > 0 {
		add("Deine Highlights:")
		for i, f := range offer.Features[:n] {
			bullet := "• "
			if opts.UseEmojis {
				bullet = offer.IconAt(i) + " "
			}
			add(bullet + strings.TrimSpace(f))
		}
		add("")
	}

	add(domain.PaymentLine, "", fallbackLinks)
	for _, l := range domain.CTALabels {
		add(domain.PointerGlyph + " " + l)
	}
	add("",
		domain.SparkleGlyph+" "+fallbackClosing+" "+domain.SparkleGlyph,
		domain.ArrowGlyph+" "+fallbackCall,
		"",
		demoNotice,
	)
	return strings.Join(lines, "\n")
}

func prefixed(opts domain.GenerationOptions, icon, s string) string {
	if opts.UseEmojis {
		return icon + s
	}
	return s
}

// Package prompt assembles generation requests for offer posts.
package prompt

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"offer_post/internal/domain"
	"offer_post/internal/emoji"
)

type Builder struct {
	mapper   *emoji.Mapper
	examples int
	strict   bool

	mu  sync.Mutex
	rng *rand.Rand // nil selects examples in bank order
}

type Option func(*Builder)

// WithRandom picks worked examples at random from r.
func WithRandom(r *rand.Rand) Option {
	return func(b *Builder) { b.rng = r }
}

// WithExamples sets how many worked examples are embedded, clamped to 1..3.
func WithExamples(n int) Option {
	return func(b *Builder) { b.examples = min(max(n, 1), 3) }
}

func WithStrict(strict bool) Option {
	return func(b *Builder) { b.strict = strict }
}

func New(m *emoji.Mapper, opts ...Option) *Builder {
	if m == nil {
		m = emoji.Default()
	}
	b := &Builder{mapper: m, examples: 2, strict: true}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Build returns the role-tagged prompt and sampling parameters for offer.
func (b *Builder) Build(offer domain.OfferData, opts domain.GenerationOptions) domain.GenerationRequest {
	dest := domain.CleanDestination(offer.Destination)
	return domain.GenerationRequest{
		Instructions: b.instructions(offer, dest, opts),
		UserContent:  b.userContent(offer, dest, opts),
		Sampling:     SamplingFor(opts.Style, offer),
	}
}

func (b *Builder) instructions(offer domain.OfferData, dest string, opts domain.GenerationOptions) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Du bist ein erstklassiger WhatsApp-Marketing-Texter für Reiseangebote der Firma %s.\n", domain.PaymentProvider)
	sb.WriteString("Deine Aufgabe ist es, einen präzisen, ansprechenden WhatsApp-Post im vorgegebenen Format zu erstellen,\n")
	fmt.Fprintf(&sb, "der %s\n\n", b.mapper.ToneGuidance(opts.Style))

	sb.WriteString("WICHTIG - Folgendes muss EXAKT so in dem Post enthalten sein:\n")
	n := 1
	item := func(format string, args ...any) {
		fmt.Fprintf(&sb, "%d. "+format+"\n", append([]any{n}, args...)...)
		n++
	}
	item("Der genaue Hotelname: %q", offer.Name)
	item("Die genaue Destination: %q", dest)
	if offer.Price != nil {
		item("Der exakte Preis: %q", *offer.Price)
	}
	item("Die exakten Merkmale des Hotels (nutze genau die angegebenen, erfinde keine)")
	item("Die exakte %s-Zahlungsinfo: %q", domain.PaymentProvider, domain.PaymentPhrase)
	item("Die exakten 3 Links: %q, %q, %q", domain.CTALabels[0], domain.CTALabels[1], domain.CTALabels[2])

	sb.WriteString("\nVERBOTEN im Post:\n")
	sb.WriteString("- Telefonnummern, E-Mail-Adressen oder Internetadressen\n")
	sb.WriteString("- Fehlermeldungen oder \"keine Ergebnisse\", \"leider nicht verfügbar\" etc.\n")
	sb.WriteString("- Platzhalter in eckigen oder geschweiften Klammern\n")
	sb.WriteString("- Zusätzliche Links oder CTAs außer den vorgegebenen\n")
	sb.WriteString("- Website-Navigation wie \"Impressum\", \"Startseite\", \"Kontakt\" etc.\n")
	if b.strict {
		sb.WriteString("- Allgemeine, austauschbare Aussagen wie \"tolles Hotel\" oder \"super Service\"\n")
		sb.WriteString("\nFormuliere jedes Merkmal konkret und überprüfbar (Anzahl, Lage, Ausstattung) statt mit vagen Adjektiven.\n")
	}
	if !opts.UseEmojis {
		fmt.Fprintf(&sb, "\nVerwende keine Emojis außer den Pflichtzeichen %s, %s, %s und %s. Merkmale beginnen mit \"- \".\n",
			domain.CardGlyph, domain.PointerGlyph, domain.SparkleGlyph, domain.ArrowGlyph)
	}
	return sb.String()
}

func (b *Builder) userContent(offer domain.OfferData, dest string, opts domain.GenerationOptions) string {
	var sb strings.Builder
	sb.WriteString("Hier sind die Informationen zum Reiseangebot:\n")
	fmt.Fprintf(&sb, "- Hotelname: %s\n", offer.Name)
	if offer.Category != nil {
		fmt.Fprintf(&sb, "- Kategorie: %s\n", *offer.Category)
	}
	fmt.Fprintf(&sb, "- Destination: %s\n", dest)
	if offer.Price != nil {
		fmt.Fprintf(&sb, "- Preis: %s\n", *offer.Price)
	}
	if offer.Duration != nil {
		fmt.Fprintf(&sb, "- Dauer: %s\n", *offer.Duration)
	}
	if len(offer.Features) > 0 {
		sb.WriteString("- Hauptmerkmale:\n")
		for _, f := range offer.Features {
			fmt.Fprintf(&sb, "  * %s\n", f)
		}
	}
	if offer.Description != nil {
		fmt.Fprintf(&sb, "- Beschreibung: %s\n", *offer.Description)
	}

	sb.WriteString("\nEXAKTES FORMAT für den Post:\n")
	if offer.Price != nil {
		sb.WriteString("1. Beginne mit einer catchy Headline, die Destination und Hotel nennt und den Preis erwähnt.\n")
	} else {
		sb.WriteString("1. Beginne mit einer catchy Headline, die Destination und Hotel nennt.\n")
	}
	sb.WriteString("2. Dann 4-5 Bullet Points mit den Hauptmerkmalen\n")
	fmt.Fprintf(&sb, "3. Dann die Zeile mit dem %s-Bezahlhinweis: %q\n", domain.PaymentProvider, domain.PaymentLine)
	sb.WriteString("4. Dann die folgenden 3 Links exakt so formatiert:\n")
	for _, l := range domain.CTALabels {
		fmt.Fprintf(&sb, "   %s %s\n", domain.PointerGlyph, l)
	}
	fmt.Fprintf(&sb, "5. Dann einen markanten Abschlusssatz zwischen %s Emojis\n", domain.SparkleGlyph)
	fmt.Fprintf(&sb, "6. Als allerletzte Zeile ein Call-to-Action, der mit %s beginnt\n", domain.ArrowGlyph)

	sb.WriteString("\nBeispiel-Format:\n")
	sb.WriteString(b.formatSample(offer, dest, opts))

	sb.WriteString("\nHier sind erfolgreiche Beispiele als Inspiration:\n\n")
	sb.WriteString(strings.Join(b.pickExamples(opts.Style), exampleSeparator))
	sb.WriteString("\n\nErstelle nun einen neuen originellen Post im gleichen Format für das angegebene Hotel!\n")
	return sb.String()
}

func (b *Builder) formatSample(offer domain.OfferData, dest string, opts domain.GenerationOptions) string {
	var sb strings.Builder
	headline := "☀️ " + dest + " – Urlaub, wie er sein soll"
	if offer.Price != nil {
		headline += " " + *offer.Price
	}
	if offer.Duration != nil {
		headline += " für " + *offer.Duration
	}
	headline += "!"
	if opts.UseEmojis {
		headline += " " + b.mapper.DestinationEmoji(dest)
	}
	sb.WriteString(headline + "\n")

	cat := "Traumhotel"
	if offer.Category != nil {
		cat = *offer.Category
	}
	fmt.Fprintf(&sb, "%s – dein %s in %s!\n\n", offer.Name, cat, dest)
	for i, f := range offer.Features {
		if opts.UseEmojis {
			icon := b.mapper.FeatureEmoji(f)
			if i < len(offer.FeatureIcons) && offer.FeatureIcons[i] != "" && offer.FeatureIcons[i] != domain.DefaultFeatureIcon {
				icon = offer.FeatureIcons[i]
			}
			fmt.Fprintf(&sb, "%s %s\n", icon, f)
		} else {
			fmt.Fprintf(&sb, "- %s\n", f)
		}
	}
	sb.WriteString("\n" + domain.PaymentLine + "\n\n")
	for _, l := range domain.CTALabels {
		fmt.Fprintf(&sb, "%s %s\n", domain.PointerGlyph, l)
	}
	fmt.Fprintf(&sb, "\n%s Dein Traumurlaub wartet – Sonne, Strand und pure Erholung! %s\n", domain.SparkleGlyph, domain.SparkleGlyph)
	fmt.Fprintf(&sb, "%s Schnell buchen und Koffer packen!\n", domain.ArrowGlyph)
	return sb.String()
}

// pickExamples returns the configured number of examples for style, topping up from
// the enthusiastic bank when the style has fewer.
func (b *Builder) pickExamples(style domain.Style) []string {
	bank := append([]string(nil), examples[style]...)
	if len(bank) == 0 {
		bank = append(bank, examples[domain.StyleEnthusiastic]...)
	}
	b.shuffle(bank)
	if len(bank) < b.examples && style != domain.StyleEnthusiastic {
		extra := append([]string(nil), examples[domain.StyleEnthusiastic]...)
		b.shuffle(extra)
		bank = append(bank, extra...)
	}
	return bank[:min(b.examples, len(bank))]
}

func (b *Builder) shuffle(s []string) {
	if b.rng == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

var correctionHints = map[string]string{
	domain.CheckRequiredLiteral:  "Nenne den Hotelnamen, die Destination, " + domain.PaymentProvider + " und alle 3 Links wörtlich.",
	domain.CheckPrice:            "Nenne den Preis genau wie angegeben.",
	domain.CheckStructure:        "Jede Strukturzeile muss vorhanden sein: 💳-Zeile, drei 👉-Zeilen, ✨-Abschlusssatz ✨ und die ➡️-Schlusszeile.",
	domain.CheckFeatureGrounding: "Übernimm die angegebenen Merkmale wörtlich in die Bullet Points.",
	domain.CheckForbiddenContent: "Keine Kontaktdaten, Zahlenfolgen, Klammern, Links oder Navigationsbegriffe.",
	domain.CheckMinLines:         "Schreibe den vollständigen Post mit allen Zeilen.",
}

// Correct returns req with an explicit correction instruction and reduced creativity
// for a second attempt after failedCheck.
func (b *Builder) Correct(req domain.GenerationRequest, failedCheck string) domain.GenerationRequest {
	out := req
	out.UserContent = req.UserContent + "\n\nWICHTIG: Stelle sicher, dass der Hotelname, die Destination und alle anderen Informationen korrekt enthalten sind. Halte dich EXAKT an das vorgegebene Format!"
	if hint, ok := correctionHints[failedCheck]; ok {
		out.UserContent += "\n" + hint
	}
	out.Sampling.Temperature = round2(max(retryTemperatureFloor, req.Sampling.Temperature-retryTemperatureDrop))
	return out
}

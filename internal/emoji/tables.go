package emoji

import "offer_post/internal/domain"

func rules(pairs ...string) []Rule {
	out := make([]Rule, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Rule{Keyword: pairs[i], Symbol: pairs[i+1]})
	}
	return out
}

var tones = map[domain.Style]string{
	domain.StyleEnthusiastic: "begeistert, energetisch und lebhaft. Verwende ausdrucksstarke Sprache und Ausrufezeichen, um Begeisterung zu vermitteln.",
	domain.StyleElegant:      "elegant, kultiviert und luxuriös. Verwende gehobene Sprache, die Exklusivität und Premium-Qualität betont.",
	domain.StyleFamily:       "familienfreundlich und warm. Betone Aspekte, die für Familien wichtig sind, wie Sicherheit, Komfort und Aktivitäten für Kinder.",
	domain.StyleAdventure:    "abenteuerlich und aufregend. Betone die Möglichkeit für Erlebnisse, Entdeckungen und aktive Freizeitgestaltung.",
}

var countries = rules(
	"mallorca", "🇪🇸", "spanien", "🇪🇸",
	"italien", "🇮🇹",
	"griechenland", "🇬🇷",
	"türkei", "🇹🇷",
	"ägypten", "🇪🇬",
	"dubai", "🇦🇪", "vae", "🇦🇪",
	"thailand", "🇹🇭",
	"malediven", "🇲🇻",
	"marokko", "🇲🇦",
	"tunesien", "🇹🇳",
	"frankreich", "🇫🇷",
	"österreich", "🇦🇹",
	"schweiz", "🇨🇭",
	"usa", "🇺🇸", "amerika", "🇺🇸",
	"karibik", "🏝️", "caribbean", "🏝️",
	"bali", "🇮🇩", "indonesien", "🇮🇩",
	"mexiko", "🇲🇽",
	"dom rep", "🇩🇴", "dominikanische", "🇩🇴",
	"portugal", "🇵🇹",
	"kroatien", "🇭🇷",
)

var scenes = rules(
	"strand", "🏖️", "beach", "🏖️",
	"berg", "🏔️", "alpen", "🏔️",
	"city", "🌆", "stadt", "🌆",
	"insel", "🏝️",
	"see", "🌊", "lake", "🌊",
)

var iconClasses = rules(
	"wifi", "📶",
	"pool", "🏊‍♀️",
	"restaurant", "🍽️", "food", "🍽️",
	"bar", "🍹", "drink", "🍹",
	"spa", "💆‍♂️", "wellness", "💆‍♂️",
	"gym", "💪", "fitness", "💪",
	"beach", "🏖️", "sand", "🏖️",
)

// DefaultTables is the vocabulary used when writing posts.
func DefaultTables() Tables {
	return Tables{
		Features: rules(
			"pool", "🏊‍♀️",
			"strand", "🏖️",
			"meer", "🌊",
			"frühstück", "🍽️", "restaurant", "🍽️", "essen", "🍽️", "gourmet", "🍽️", "kulinarisch", "🍽️", "dining", "🍽️",
			"spa", "💆‍♂️",
			"wellness", "🧖‍♀️",
			"massage", "💆‍♀️",
			"fitness", "💪",
			"gym", "🏋️‍♂️",
			"lage", "📍", "zentral", "📍", "zentrum", "📍",
			"aussicht", "🌇", "view", "🌇", "blick", "🌇",
			"family", "👨‍👩‍👧‍👦", "familie", "👨‍👩‍👧‍👦",
			"kinder", "👶",
			"zimmer", "🛏️", "suite", "🛏️", "bett", "🛏️",
			"design", "🎨", "stil", "🎨", "stylish", "🎨", "modern", "🎨",
			"bar", "🍸",
			"cocktail", "🍹",
			"wein", "🍷",
			"garten", "🌿",
			"terrasse", "🌴", "balkon", "🌴",
			"infinity", "♾️",
			"service", "👑",
			"exklusiv", "✨", "luxus", "✨",
			"boutique", "🛍️",
			"rooftop", "🏙️", "dachterrasse", "🏙️", "stadt", "🏙️",
			"privat", "🔐",
			"ruhig", "🧘", "entspannung", "🧘",
			"party", "🎉",
			"unterhaltung", "🎭", "show", "🎭",
			"kultur", "🏛️", "sehenswürdigkeiten", "🏛️",
			"sport", "⚽",
			"aktivität", "🚶‍♂️",
			"abenteuer", "🧗‍♂️",
			"natur", "🌲",
			"landschaft", "🏞️",
			"shopping", "🛍️", "einkaufen", "🛍️",
			"transfer", "🚗",
			"flughafen", "✈️",
			"internet", "📶", "wifi", "📶",
			"parken", "🅿️", "garage", "🅿️",
		),
		IconClasses:        iconClasses,
		Countries:          countries,
		Scenes:             scenes,
		Tones:              tones,
		DefaultFeature:     "✅",
		DefaultDestination: domain.SparkleGlyph,
	}
}

// ExtractorTables is the coarser vocabulary the scraper pairs with recovered features.
func ExtractorTables() Tables {
	t := DefaultTables()
	t.Features = rules(
		"wifi", "📶", "wlan", "📶", "internet", "📶",
		"pool", "🏊‍♀️", "schwimm", "🏊‍♀️",
		"restau", "🍽️", "essen", "🍽️", "frühstück", "🍽️", "dining", "🍽️", "buffet", "🍽️",
		"bar", "🍹", "cocktail", "🍹", "getränk", "🍹",
		"spa", "💆‍♂️", "wellness", "💆‍♂️", "massage", "💆‍♂️",
		"gym", "💪", "fitness", "💪", "sport", "💪",
		"strand", "🏖️", "beach", "🏖️", "meer", "🏖️",
		"zimmer", "🛏️", "suite", "🛏️", "bett", "🛏️",
		"lage", "📍", "zentral", "📍", "location", "📍",
		"blick", "🌇", "aussicht", "🌇", "view", "🌇",
		"familie", "👨‍👩‍👧‍👦", "kinder", "👨‍👩‍👧‍👦", "family", "👨‍👩‍👧‍👦",
		"design", "🎨", "stil", "🎨", "modern", "🎨",
	)
	t.DefaultFeature = domain.DefaultFeatureIcon
	return t
}

package prompt

import "offer_post/internal/domain"

const exampleSeparator = "\n\n--- WEITERES BEISPIEL ---\n\n"

// examples holds worked posts per style. Each follows the same structure the validator checks.
var examples = map[domain.Style][]string{
	domain.StyleEnthusiastic: {
		`☀️ Traumurlaub auf Mallorca - Nur 799€! 🇪🇸
Hotel Paradiso - dein 4-Sterne Hotel direkt am Strand!

🏖️ Direkt am traumhaften Sandstrand gelegen
🍽️ All-Inclusive-Verpflegung mit mediterranen Spezialitäten
🏊‍♀️ Großzügige Poollandschaft mit Swim-up-Bar
👨‍👩‍👧‍👦 Vielfältiges Unterhaltungsprogramm für die ganze Familie
🧖‍♀️ Wellnessbereich mit Sauna und Massage-Anwendungen

💳 Und wie immer bei uns: Du buchst jetzt – und zahlst später ganz flexibel mit ucandoo.

👉 Jetzt buchen
👉 Ratenrechner
👉 Reisebüro finden

✨ Dein Sommermärchen wartet - Pack die Koffer und los! ✨
➡️ Jetzt schnell sichern, bevor die besten Plätze weg sind!`,
		`🌴 Bali ruft! Tropisches Paradies ab nur 1.099€! 🇮🇩
Sunset Beach Resort - dein 5-Sterne Traumhotel auf Bali!

🌊 Atemberaubender Meerblick aus jedem Zimmer
🍹 2 exotische Restaurants & 3 stilvolle Bars
🏊‍♀️ Infinity-Pool mit Blick auf den Ozean
💆‍♂️ Traditionelle balinesische Spa-Behandlungen
🚣‍♀️ Kostenlose Wassersportaktivitäten inklusive

💳 Und wie immer bei uns: Du buchst jetzt – und zahlst später ganz flexibel mit ucandoo.

👉 Jetzt buchen
👉 Ratenrechner
👉 Reisebüro finden

✨ Erlebe den Zauber der Insel der Götter! ✨
➡️ Jetzt deine Auszeit im Paradies buchen!`,
		`🏝️ Sonne satt auf Kreta - 7 Nächte ab 649€! 🇬🇷
Aquamare Bay - dein 4-Sterne Strandhotel in Chersonissos!

🏖️ Nur 50 Meter bis zum feinen Kiesstrand
🏊‍♀️ Zwei Pools mit Sonnenterrasse und Liegen
🍽️ Halbpension mit kretischen Spezialitäten am Buffet
🍸 Poolbar mit Cocktails bis Mitternacht
🛏️ Helle Zimmer mit Balkon und Meerblick

💳 Und wie immer bei uns: Du buchst jetzt – und zahlst später ganz flexibel mit ucandoo.

👉 Jetzt buchen
👉 Ratenrechner
👉 Reisebüro finden

✨ Griechische Sonne, blaues Meer und du mittendrin! ✨
➡️ Schnell zugreifen und den Sommer auf Kreta sichern!`,
	},
	domain.StyleElegant: {
		`✨ Exklusiver Aufenthalt an der Amalfiküste - ab 1.290€ 🇮🇹
Villa Belvedere - Ihr distinguiertes 5-Sterne Hideaway in Positano

🌇 Privilegierte Lage mit spektakulärem Panoramablick
🍽️ Preisgekröntes Restaurant mit mediterraner Gourmetküche
🍷 Exquisite Weinverkostungen in historischem Gewölbekeller
🛏️ Elegant gestaltete Suiten mit privaten Terrassen
🧖‍♀️ Exklusiver Spa-Bereich mit maßgeschneiderten Anwendungen

💳 Und wie immer bei uns: Sie buchen jetzt – und zahlen später ganz flexibel mit ucandoo.

👉 Jetzt buchen
👉 Ratenrechner
👉 Reisebüro finden

✨ Erleben Sie italienische Lebenskunst in ihrer vollendeten Form ✨
➡️ Sichern Sie sich Ihren Aufenthalt in einem der begehrtesten Refugien Italiens`,
		`🌺 Diskreter Luxus auf Mauritius - Premium-Suite ab 1.890€ 🇲🇺
Royal Palm Beachcomber - Ihr exquisites 5-Sterne Luxusresort

🏝️ Privilegierte Lage an einem der schönsten Strände der Insel
👨‍🍳 Kulinarische Meisterwerke des Sternekochs Michel Laurent
🛥️ Privater Jachtausflug zu den Nachbarinseln inklusive
🧖‍♀️ Preisgekrönter Spa mit Clarins-Treatments
🍸 Erlesene Cocktailkreationen in der Royal Sunset Lounge

💳 Und wie immer bei uns: Sie buchen jetzt – und zahlen später ganz flexibel mit ucandoo.

👉 Jetzt buchen
👉 Ratenrechner
👉 Reisebüro finden

✨ Ein Ort zeitloser Eleganz für den distinguierten Reisenden ✨
➡️ Reservieren Sie jetzt Ihren Aufenthalt in diskreter Exklusivität`,
	},
	domain.StyleFamily: {
		`🌞 Familienurlaub in der Türkei - All-Inclusive ab 899€! 🇹🇷
SunnyBeach Family Resort - euer kinderfreundliches 4-Sterne Hotel in Antalya

👨‍👩‍👧‍👦 Großzügige Familienzimmer mit getrennten Kinderbereichen
🎡 Wasserspielplatz und Kinderclub mit täglichem Programm für 3 bis 12 Jahre
🍦 Kinderfreundliches Buffet mit gesunden Optionen
🏊‍♀️ Kinderbecken mit Wasserrutschen und Spritztieren
🎭 Abendliche Familienunterhaltung und Mini-Disco

💳 Und wie immer bei uns: Ihr bucht jetzt – und zahlt später ganz flexibel mit ucandoo.

👉 Jetzt buchen
👉 Ratenrechner
👉 Reisebüro finden

✨ Glückliche Kinder, entspannte Eltern - Urlaub wie er sein soll! ✨
➡️ Jetzt euren perfekten Familienurlaub planen und gemeinsam Erinnerungen schaffen!`,
	},
	domain.StyleAdventure: {
		`🏔️ Abenteuer in Costa Rica - 14 Tage ab 1.299€! 🇨🇷
Jungle Explorer Lodge - dein außergewöhnliches Naturresort im Regenwald

🌋 Spektakuläre Lage zwischen Vulkan Arenal und Nebelwald
🦥 Geführte Wildlife-Touren mit Chancen auf Faultiere, Tukane & mehr
🧗‍♂️ Zip-Lining und Canyoning-Abenteuer inklusive
🚣‍♀️ Wildwasser-Rafting auf dem Rio Pacuare
🌿 Nachhaltig gebaute Eco-Lodges mit Panorama-Regenwaldsicht

💳 Und wie immer bei uns: Du buchst jetzt – und zahlst später ganz flexibel mit ucandoo.

👉 Jetzt buchen
👉 Ratenrechner
👉 Reisebüro finden

✨ Das Abenteuer deines Lebens wartet im Herzen des Regenwalds! ✨
➡️ Schnapp dir deinen Rucksack und erlebe die pure Kraft der Natur!`,
	},
}

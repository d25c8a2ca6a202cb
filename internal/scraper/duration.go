package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var durationStrategies = []strategy[string]{
	durationElements,
	durationPhrases,
	durationFromDates,
}

var durationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*x?\s*(?:Tage|Nächte|Übernachtungen|ÜN|Nacht)`),
	regexp.MustCompile(`(?i)(?:Aufenthalt|Dauer)\s*:?\s*(\d+)\s*(?:Tage|Nächte|Übernachtungen|Tag|Nacht)`),
	regexp.MustCompile(`(?i)(\d+)[-\s]Tages[-\s]Reise`),
	regexp.MustCompile(`(?i)(\d+)[-\s]Tage[-\s]Angebot`),
}

func durationElements(p *page) (string, bool) {
	var found string
	eachText(p, `[class*="duration"], .stay-duration, .travel-duration, [class*="Duration"], [class*="dauer"], [class*="aufenthalt"]`, func(t string, _ *goquery.Selection) bool {
		if !hasDigit(t) || !containsAny(t, "Tag", "Nacht", "Übernacht", "ÜN") {
			return true
		}
		if d, ok := parseDuration(t, p.opts.MaxStayDays); ok {
			found = d
			return false
		}
		return true
	})
	return found, found != ""
}

func durationPhrases(p *page) (string, bool) {
	return parseDuration(p.body, p.opts.MaxStayDays)
}

// parseDuration returns the first bounded "<N> Tage|Nächte" mention in text.
func parseDuration(text string, maxDays int) (string, bool) {
	for _, re := range durationPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 1 || n > maxDays {
				continue
			}
			lower := strings.ToLower(m[0])
			if containsAny(lower, "nacht", "nächte", "übernacht", "ün") {
				return nights(n), true
			}
			return days(n), true
		}
	}
	return "", false
}

func nights(n int) string {
	if n == 1 {
		return "1 Nacht"
	}
	return fmt.Sprintf("%d Nächte", n)
}

func days(n int) string {
	if n == 1 {
		return "1 Tag"
	}
	return fmt.Sprintf("%d Tage", n)
}

var stayDatesRe = regexp.MustCompile(`(?i)(?:Anreise|Check-in)[:;\s]+(\d{1,2}\.\d{1,2}\.\d{4}|\d{4}-\d{2}-\d{2}).*?(?:Abreise|Check-out)[:;\s]+(\d{1,2}\.\d{1,2}\.\d{4}|\d{4}-\d{2}-\d{2})`)

func durationFromDates(p *page) (string, bool) {
	m := stayDatesRe.FindStringSubmatch(p.body)
	if m == nil {
		return "", false
	}
	from, err1 := parseDate(m[1])
	to, err2 := parseDate(m[2])
	if err1 != nil || err2 != nil {
		return "", false
	}
	diff := to.Sub(from)
	if diff < 0 {
		diff = -diff
	}
	n := int(diff.Hours() / 24)
	if n < 1 || n > p.opts.MaxStayDays {
		return "", false
	}
	return days(n), true
}

func parseDate(s string) (time.Time, error) {
	if strings.Contains(s, ".") {
		return time.Parse("2.1.2006", s)
	}
	return time.Parse(time.DateOnly, s)
}

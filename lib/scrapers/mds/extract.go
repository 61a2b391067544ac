package mds

import (
	"regexp"
	"strings"

	"chargewatch-backend/lib/evse"
	"chargewatch-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// the operator has shipped several generations of status markup, so badge
// lookup is an ordered strategy table, most specific first. New layouts get
// appended here instead of growing another extraction function.
var badgeStrategies = []struct {
	name     string
	selector string
}{
	{"site badge", "span[data-evse-status].badge"},
	{"data attribute", "[data-evse-status]"},
	{"generic badge", "span.badge, div.badge, span.status-badge"},
	{"free text badge", ".label, .chip, .status"},
}

var keywordStatuses = []struct {
	status   evse.Status
	keywords []string
}{
	{evse.StatusAvailable, []string{"available", "verfügbar", "frei", "free"}},
	{evse.StatusMaintenance, []string{"maintenance", "wartung"}},
	{evse.StatusError, []string{"error", "fehler", "störung"}},
	{evse.StatusCharging, []string{"charging", "besetzt", "occupied"}},
}

// ExtractStatus normalizes the status badge of a charger page onto the
// canonical enum. It never fails: a page with no recognizable marker is
// simply unknown.
func ExtractStatus(doc *goquery.Document) evse.Status {
	for _, strat := range badgeStrategies {
		badge := doc.Find(strat.selector).First()
		if badge.Length() == 0 {
			continue
		}
		return statusFromBadge(badge)
	}
	return evse.StatusUnknown
}

func statusFromBadge(badge *goquery.Selection) evse.Status {
	tokens := htmlutil.ClassTokens(badge)
	text := strings.ToLower(htmlutil.CleanText(badge))

	switch {
	case htmlutil.HasClassToken(tokens, "success"):
		return evse.StatusAvailable
	case htmlutil.HasClassToken(tokens, "warning"):
		return evse.StatusMaintenance
	case htmlutil.HasClassToken(tokens, "danger"):
		return evse.StatusError
	case htmlutil.HasClassToken(tokens, "secondary"),
		htmlutil.HasClassToken(tokens, "primary"),
		htmlutil.HasClassToken(tokens, "info"),
		strings.Contains(text, "besetzt"),
		strings.Contains(text, "occupied"):
		return evse.StatusCharging
	}

	return statusFromText(text)
}

func statusFromText(text string) evse.Status {
	for _, mapping := range keywordStatuses {
		for _, keyword := range mapping.keywords {
			if strings.Contains(text, keyword) {
				return mapping.status
			}
		}
	}
	return evse.StatusUnknown
}

var pricePattern = regexp.MustCompile(`\d+(?:[.,]\d+)?\s*€(?:\s*/?\s*kWh)?`)

// \b keeps kWh (energy prices) from reading as a power rating
var powerPattern = regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s*kW\b`)

// ExtractPrice returns the first price-looking text on the page, or ""
// when there is none. Best effort, callers keep their registry default on
// an empty result.
func ExtractPrice(doc *goquery.Document) string {
	return firstMatch(doc, "span, td, p, strong", pricePattern)
}

// ExtractPower returns the first rated-power text on the page, or "".
func ExtractPower(doc *goquery.Document) string {
	return firstMatch(doc, "span, td, p, strong", powerPattern)
}

func firstMatch(doc *goquery.Document, selector string, pattern *regexp.Regexp) string {
	found := ""
	doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := htmlutil.CleanText(sel)
		if text == "" {
			return true
		}
		if m := pattern.FindString(text); m != "" {
			found = strings.TrimSpace(m)
			return false
		}
		return true
	})
	return found
}

package mds

import (
	"strings"
	"testing"

	"chargewatch-backend/lib/evse"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractStatusFromBadgeClasses(t *testing.T) {
	cases := []struct {
		html   string
		expect evse.Status
	}{
		{`<span class="badge bg-success">Verfügbar</span>`, evse.StatusAvailable},
		{`<span class="badge badge-success">Free</span>`, evse.StatusAvailable},
		{`<span class="badge bg-warning">Wartung</span>`, evse.StatusMaintenance},
		{`<span class="badge bg-danger">Störung</span>`, evse.StatusError},
		{`<span class="badge bg-secondary">Besetzt</span>`, evse.StatusCharging},
		{`<span class="badge bg-primary">Lädt</span>`, evse.StatusCharging},
		{`<span class="badge text-bg-info">In use</span>`, evse.StatusCharging},
	}

	for _, test := range cases {
		doc := parse(t, "<html><body><div>"+test.html+"</div></body></html>")
		require.Equal(t, test.expect, ExtractStatus(doc), test.html)
	}
}

func TestExtractStatusFromBadgeText(t *testing.T) {
	cases := []struct {
		text   string
		expect evse.Status
	}{
		{"Verfügbar", evse.StatusAvailable},
		{"available", evse.StatusAvailable},
		{"frei", evse.StatusAvailable},
		{"Besetzt", evse.StatusCharging},
		{"Occupied", evse.StatusCharging},
		{"Wartung", evse.StatusMaintenance},
		{"Fehler", evse.StatusError},
		{"something else entirely", evse.StatusUnknown},
	}

	for _, test := range cases {
		// no recognizable class token, text matching has to carry it
		doc := parse(t, `<html><body><span class="badge rounded-pill">`+test.text+`</span></body></html>`)
		require.Equal(t, test.expect, ExtractStatus(doc), test.text)
	}
}

func TestExtractStatusStrategyOrder(t *testing.T) {
	// the site-specific badge wins over a generic one appearing earlier in
	// the document
	doc := parse(t, `<html><body>
		<span class="badge bg-danger">Störung</span>
		<span data-evse-status="available" class="badge bg-success">Verfügbar</span>
	</body></html>`)
	require.Equal(t, evse.StatusAvailable, ExtractStatus(doc))
}

func TestExtractStatusNoBadge(t *testing.T) {
	doc := parse(t, `<html><body><p>Ladepunkt E006234</p></body></html>`)
	require.Equal(t, evse.StatusUnknown, ExtractStatus(doc))
}

func TestExtractPriceAndPower(t *testing.T) {
	doc := parse(t, `<html><body>
		<p>Ladeleistung: <strong>22 kW</strong></p>
		<p>Tarif: <span>0,49 €/kWh</span></p>
	</body></html>`)
	require.Equal(t, "0,49 €/kWh", ExtractPrice(doc))
	require.Equal(t, "22 kW", ExtractPower(doc))

	empty := parse(t, `<html><body><p>nichts hier</p></body></html>`)
	require.Equal(t, "", ExtractPrice(empty))
	require.Equal(t, "", ExtractPower(empty))
}

func TestIsInterstitial(t *testing.T) {
	interstitial := parse(t, `<html><body>
		<h1>Laden und bezahlen mit giro-e</h1>
		<p>Bitte halten Sie Ihre Girocard an das Terminal.</p>
	</body></html>`)
	require.True(t, IsInterstitial(interstitial))

	chargerPage := parse(t, `<html><body>
		<h1>Mennekes Ladepunkt E006234</h1>
		<p>Bezahlen mit giro-e</p>
		<span class="badge bg-success">Verfügbar</span>
	</body></html>`)
	require.False(t, IsInterstitial(chargerPage))
}

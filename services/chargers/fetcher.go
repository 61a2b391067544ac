package chargers

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"chargewatch-backend/lib/evse"
	"chargewatch-backend/lib/scrapers/mds"

	"github.com/PuerkitoBio/goquery"
)

var (
	_ PageFetcher = (*mds.Client)(nil)
	_ PageFetcher = SimulatedFetcher{}
)

// SimulatedFetcher serves deterministic charger markup for deployments
// where scraping the operator page isn't possible. The pages it produces
// run through the same extraction path as live ones; the status is the
// stable per-id fallback so dashboards don't flicker between refreshes.
type SimulatedFetcher struct{}

func (SimulatedFetcher) Live() bool { return false }

var simulatedBadgeClasses = map[evse.Status]string{
	evse.StatusAvailable:   "bg-success",
	evse.StatusCharging:    "bg-secondary",
	evse.StatusMaintenance: "bg-warning",
	evse.StatusError:       "bg-danger",
	evse.StatusUnknown:     "bg-light",
}

func (SimulatedFetcher) Fetch(ctx context.Context, chargerId string) (*goquery.Document, error) {
	status := evse.FallbackStatus(chargerId)

	extra := ""
	if status == evse.StatusCharging {
		extra = fmt.Sprintf(`<p>Aktuelle Ladeleistung: %d kW</p>`, simulatedPowerKW(chargerId))
	}

	page := fmt.Sprintf(`<html><body>
		<h1>Mennekes Ladepunkt %s</h1>
		<span data-evse-status=%q class="badge %s">%s</span>
		%s
	</body></html>`,
		evse.Serial(chargerId),
		status,
		simulatedBadgeClasses[status],
		status.Text(),
		extra,
	)

	return goquery.NewDocumentFromReader(strings.NewReader(page))
}

// derived from the id, not random: a simulated charger must not flicker
// between cache expiries
func simulatedPowerKW(chargerId string) int {
	h := fnv.New32a()
	h.Write([]byte(chargerId + "#kw"))
	return 3 + int(h.Sum32()%20)
}

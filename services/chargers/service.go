package chargers

import (
	"context"
	"time"

	"chargewatch-backend/lib/evse"
	"chargewatch-backend/lib/registry"
	"chargewatch-backend/lib/statusstore"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/chargers")

// how long a resolved record stays fresh before the next read goes back to
// the operator page
const cacheTTL = time.Second * 30

// PageFetcher is the seam between reconciliation and the mechanics of
// getting operator markup. Live() is false for fetchers that produce
// simulated content, their records are never flagged real-time.
type PageFetcher interface {
	Fetch(ctx context.Context, chargerId string) (*goquery.Document, error)
	Live() bool
}

const (
	UpdatedBySystem = "system"
	UpdatedByUser   = "user"
)

// ChargerRecord is the flat payload a dashboard card renders.
type ChargerRecord struct {
	ChargerID   string      `json:"chargerId"`
	Status      evse.Status `json:"status"`
	StatusText  string      `json:"statusText"`
	Location    string      `json:"location"`
	Operator    string      `json:"operator"`
	Address     string      `json:"address,omitempty"`
	PlugType    string      `json:"plugType"`
	Power       string      `json:"power"`
	Price       string      `json:"price"`
	LastUpdated time.Time   `json:"lastUpdated"`
	IsRealTime  bool        `json:"isRealTime"`
	UpdatedBy   string      `json:"updatedBy"`
	Error       string      `json:"error,omitempty"`
}

type Service struct {
	registry  registry.Registry
	fetcher   PageFetcher
	cache     *recordCache
	overrides *overrideStore
	history   *statusstore.Store
	alerts    *notifier
}

type Options struct {
	Registry registry.Registry
	Fetcher  PageFetcher
	// optional, nil disables status history
	History *statusstore.Store
	// optional, zero config disables alerting
	Alerts AlertConfig
}

func NewService(opts Options) Service {
	if opts.Fetcher == nil {
		panic("a page fetcher is required")
	}
	return Service{
		registry:  opts.Registry,
		fetcher:   opts.Fetcher,
		cache:     newRecordCache(cacheTTL),
		overrides: newOverrideStore(),
		history:   opts.History,
		alerts:    newNotifier(opts.Alerts),
	}
}

// RetentionDaemon prunes history snapshots older than a week. Runs until
// the context dies; a no-op when history is disabled.
func (s Service) RetentionDaemon(ctx context.Context) {
	if s.history == nil {
		return
	}
	ticker := time.NewTicker(time.Hour * 6)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pruneHistory(ctx)
		}
	}
}

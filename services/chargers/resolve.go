package chargers

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"chargewatch-backend/lib/evse"
	"chargewatch-backend/lib/registry"
	"chargewatch-backend/lib/scrapers/mds"
	"chargewatch-backend/lib/statusstore"
	"chargewatch-backend/lib/timezone"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Resolve produces the current record for one charger. It never fails:
// every scrape problem is folded into a degraded record carrying the
// error, so one dead charger can't take a dashboard card down.
//
// Precedence: manual override > extracted values > registry defaults.
// Registry stays authoritative for the descriptive fields (location,
// operator, address, plug type), extraction only wins status/price/power.
func (s Service) Resolve(ctx context.Context, chargerId string, bypassCache bool) ChargerRecord {
	ctx, span := tracer.Start(ctx, "Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("charger_id", chargerId))

	now := timezone.Now()
	if !bypassCache {
		if record, ok := s.cache.get(chargerId, now); ok {
			span.AddEvent("cache hit")
			return record
		}
	}

	attrs, known := s.registry.Lookup(chargerId)
	if !known {
		attrs = registry.Synthesize(chargerId)
	}
	record := ChargerRecord{
		ChargerID:   chargerId,
		Location:    attrs.Location,
		Operator:    attrs.Operator,
		Address:     attrs.Address,
		PlugType:    attrs.PlugType,
		Power:       attrs.Power,
		Price:       attrs.Price,
		LastUpdated: now,
		UpdatedBy:   UpdatedBySystem,
	}

	doc, err := s.fetcher.Fetch(ctx, chargerId)
	if err != nil {
		// deterministic fallback so repeated failures for the same id
		// agree with each other
		status := evse.FallbackStatus(chargerId)
		record.Status = status
		record.StatusText = status.Text()
		record.IsRealTime = false
		record.Error = err.Error()

		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed, serving fallback")
		slog.WarnContext(ctx, "charger page fetch failed", "charger_id", chargerId, "err", err)
	} else {
		status := mds.ExtractStatus(doc)
		record.Status = status
		record.StatusText = status.Text()
		record.IsRealTime = s.fetcher.Live()
		if price := mds.ExtractPrice(doc); price != "" {
			record.Price = price
		}
		if power := mds.ExtractPower(doc); power != "" {
			record.Power = power
		}
	}

	if override, ok := s.overrides.get(chargerId); ok {
		record.Status = override.Status
		record.StatusText = override.Status.Text()
		record.UpdatedBy = UpdatedByUser
		record.LastUpdated = override.SetAt
	}

	s.recordHistory(ctx, record)
	s.alerts.observe(ctx, record)
	s.cache.set(chargerId, record, now)
	return record
}

// ResolveAll fans out one independent resolution per registry charger.
// Failures surface inside the individual records, never as an error.
func (s Service) ResolveAll(ctx context.Context, bypassCache bool) []ChargerRecord {
	ctx, span := tracer.Start(ctx, "ResolveAll")
	defer span.End()

	ids := s.registry.IDs()
	records := make([]ChargerRecord, 0, len(ids))
	lock := sync.Mutex{}
	wg := sync.WaitGroup{}

	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			record := s.Resolve(ctx, id, bypassCache)

			lock.Lock()
			defer lock.Unlock()
			records = append(records, record)
		}(id)
	}
	wg.Wait()

	sort.Slice(records, func(i, j int) bool {
		return records[i].ChargerID < records[j].ChargerID
	})
	return records
}

// History returns the stored status series for a charger since the cutoff.
func (s Service) History(ctx context.Context, chargerId string, since time.Time) ([]statusstore.Snapshot, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Pull(ctx, chargerId, since)
}

func (s Service) recordHistory(ctx context.Context, record ChargerRecord) {
	if s.history == nil {
		return
	}
	err := s.history.Push(ctx, record.ChargerID, statusstore.Snapshot{
		Time:       record.LastUpdated,
		Status:     record.Status,
		IsRealTime: record.IsRealTime,
	})
	if err != nil {
		slog.WarnContext(ctx, "record status history", "charger_id", record.ChargerID, "err", err)
	}
}

func (s Service) pruneHistory(ctx context.Context) {
	err := s.history.Prune(ctx, timezone.Now().AddDate(0, 0, -7))
	if err != nil {
		slog.WarnContext(ctx, "prune status history", "err", err)
	}
}

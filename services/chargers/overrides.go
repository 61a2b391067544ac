package chargers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"chargewatch-backend/lib/evse"
	"chargewatch-backend/lib/timezone"
)

// Override is a user-asserted status. It beats whatever the extractor
// produced until it is replaced or the process restarts; overrides are
// never persisted.
type Override struct {
	Status evse.Status
	SetAt  time.Time
	Source string
}

type overrideStore struct {
	mu      sync.RWMutex
	entries map[string]Override
}

func newOverrideStore() *overrideStore {
	return &overrideStore{entries: map[string]Override{}}
}

func (o *overrideStore) set(id string, status evse.Status, at time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries[id] = Override{
		Status: status,
		SetAt:  at,
		Source: UpdatedByUser,
	}
}

func (o *overrideStore) get(id string) (Override, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	entry, ok := o.entries[id]
	return entry, ok
}

// SetStatus validates and stores a manual override, invalidates the cached
// record for the charger, and returns the freshly resolved (post-override)
// record. Invalid input mutates nothing.
func (s Service) SetStatus(ctx context.Context, chargerId, status string) (ChargerRecord, error) {
	ctx, span := tracer.Start(ctx, "SetStatus")
	defer span.End()

	if chargerId == "" {
		return ChargerRecord{}, fmt.Errorf("chargerId is required")
	}
	parsed, err := evse.ParseStatus(status)
	if err != nil {
		return ChargerRecord{}, err
	}

	s.overrides.set(chargerId, parsed, timezone.Now())
	s.cache.invalidate(chargerId)

	return s.Resolve(ctx, chargerId, false), nil
}

// GetOverride exposes the raw override entry, mostly for the CLI.
func (s Service) GetOverride(chargerId string) (Override, bool) {
	return s.overrides.get(chargerId)
}

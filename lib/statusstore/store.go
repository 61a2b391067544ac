package statusstore

import (
	"context"
	"database/sql"
	"time"

	"chargewatch-backend/lib/evse"
	"chargewatch-backend/lib/statusstore/db"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Store keeps a time series of resolved charger statuses so the dashboard
// can show how a charger behaved over the day, not just right now.
type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

type Snapshot struct {
	Time       time.Time   `json:"time"`
	Status     evse.Status `json:"status"`
	IsRealTime bool        `json:"isRealTime"`
}

func (s Store) Push(ctx context.Context, chargerId string, snap Snapshot) error {
	isRealTime := int64(0)
	if snap.IsRealTime {
		isRealTime = 1
	}
	return s.qry.CreateStatusSnapshot(ctx, db.CreateStatusSnapshotParams{
		ChargerID:  chargerId,
		Time:       snap.Time.Unix(),
		Status:     string(snap.Status),
		IsRealTime: isRealTime,
	})
}

func (s Store) Pull(ctx context.Context, chargerId string, since time.Time) ([]Snapshot, error) {
	rows, err := s.qry.GetStatusSnapshots(ctx, db.GetStatusSnapshotsParams{
		ChargerID: chargerId,
		Time:      since.Unix(),
	})
	if err != nil {
		return nil, err
	}

	snapshots := make([]Snapshot, len(rows))
	for i, r := range rows {
		status, err := evse.ParseStatus(r.Status)
		if err != nil {
			status = evse.StatusUnknown
		}
		snapshots[i] = Snapshot{
			Time:       time.Unix(r.Time, 0),
			Status:     status,
			IsRealTime: r.IsRealTime != 0,
		}
	}
	return snapshots, nil
}

// Prune drops snapshots older than the cutoff. Called periodically by the
// service's retention daemon.
func (s Store) Prune(ctx context.Context, before time.Time) error {
	return s.qry.DeleteStatusSnapshotsBefore(ctx, before.Unix())
}

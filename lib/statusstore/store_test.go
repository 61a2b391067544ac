package statusstore

import (
	"context"
	"testing"
	"time"

	"chargewatch-backend/lib/evse"
	"chargewatch-backend/lib/statusstore/db"
	"chargewatch-backend/lib/testutil"
	"chargewatch-backend/lib/timezone"

	"github.com/stretchr/testify/require"
)

func TestPushPull(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "lib/statusstore",
		DbSchema: db.Schema,
	})
	defer cleanup()
	store := NewStore(setup.DB)

	ctx := context.Background()
	now := timezone.Now().Truncate(time.Second)

	err := store.Push(ctx, "DE*MDS*E006234", Snapshot{
		Time:       now.Add(-time.Hour),
		Status:     evse.StatusAvailable,
		IsRealTime: true,
	})
	require.NoError(t, err)
	err = store.Push(ctx, "DE*MDS*E006234", Snapshot{
		Time:       now,
		Status:     evse.StatusCharging,
		IsRealTime: false,
	})
	require.NoError(t, err)
	err = store.Push(ctx, "DE*MDS*E006235", Snapshot{
		Time:       now,
		Status:     evse.StatusError,
		IsRealTime: true,
	})
	require.NoError(t, err)

	snapshots, err := store.Pull(ctx, "DE*MDS*E006234", now.Add(-time.Hour*2))
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	require.Equal(t, evse.StatusAvailable, snapshots[0].Status)
	require.True(t, snapshots[0].IsRealTime)
	require.Equal(t, evse.StatusCharging, snapshots[1].Status)
	require.False(t, snapshots[1].IsRealTime)

	// cutoff excludes older snapshots
	snapshots, err = store.Pull(ctx, "DE*MDS*E006234", now.Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, snapshots, 1)

	// series are strictly per charger
	snapshots, err = store.Pull(ctx, "DE*MDS*E006235", now.Add(-time.Hour*2))
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	require.Equal(t, evse.StatusError, snapshots[0].Status)
}

func TestPrune(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "lib/statusstore/prune",
		DbSchema: db.Schema,
	})
	defer cleanup()
	store := NewStore(setup.DB)

	ctx := context.Background()
	now := timezone.Now().Truncate(time.Second)

	for _, age := range []time.Duration{time.Hour * 24 * 10, time.Hour} {
		err := store.Push(ctx, "DE*MDS*E006234", Snapshot{
			Time:   now.Add(-age),
			Status: evse.StatusAvailable,
		})
		require.NoError(t, err)
	}

	err := store.Prune(ctx, now.AddDate(0, 0, -7))
	require.NoError(t, err)

	snapshots, err := store.Pull(ctx, "DE*MDS*E006234", now.AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
}

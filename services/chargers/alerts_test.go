package chargers

import (
	"context"
	"strings"
	"testing"

	"chargewatch-backend/lib/evse"

	"github.com/stretchr/testify/require"
)

func newTestNotifier() *notifier {
	return newNotifier(AlertConfig{
		Smtp: SmtpConfig{Server: "smtp.example.com", Port: 587, EmailAddress: "chargewatch@example.com"},
		To:   []string{"ops@example.com"},
	})
}

func TestNotifierTransitions(t *testing.T) {
	n := newTestNotifier()

	record := func(status evse.Status) ChargerRecord {
		return ChargerRecord{
			ChargerID:  "DE*MDS*E006234",
			Status:     status,
			StatusText: status.Text(),
			Location:   "Rathaus Tiefgarage",
		}
	}

	// a healthy charger produces no mail
	_, _, ok := n.transition(record(evse.StatusAvailable))
	require.False(t, ok)

	// dropping into error alerts once
	subject, body, ok := n.transition(record(evse.StatusError))
	require.True(t, ok)
	require.Contains(t, subject, "DE*MDS*E006234")
	require.Contains(t, body, "Rathaus Tiefgarage")

	// staying in error stays quiet
	_, _, ok = n.transition(record(evse.StatusError))
	require.False(t, ok)

	// recovery alerts again
	subject, _, ok = n.transition(record(evse.StatusAvailable))
	require.True(t, ok)
	require.True(t, strings.Contains(subject, "wieder"))
}

func TestFallbackRecordsDoNotAlert(t *testing.T) {
	n := newTestNotifier()

	fallback := ChargerRecord{
		ChargerID:  "DE*MDS*E006310",
		Status:     evse.StatusMaintenance,
		StatusText: evse.StatusMaintenance.Text(),
		Error:      "connection refused",
	}
	_, _, ok := n.transition(fallback)
	require.False(t, ok)

	// the degraded record must not have advanced the state machine either,
	// a real maintenance reading afterwards still alerts
	healthy := fallback
	healthy.Error = ""
	_, _, ok = n.transition(healthy)
	require.True(t, ok)

	// observe on a fallback record never reaches the send path
	n.observe(context.Background(), ChargerRecord{
		ChargerID: "DE*MDS*E006311",
		Status:    evse.StatusError,
		Error:     "timeout",
	})
	n.mu.Lock()
	_, seen := n.last["DE*MDS*E006311"]
	n.mu.Unlock()
	require.False(t, seen)
}

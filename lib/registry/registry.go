package registry

import (
	"sort"
	"strings"

	"chargewatch-backend/lib/evse"

	"dario.cat/mergo"
	"github.com/antzucaro/matchr"
)

// Charger holds the descriptive attributes we know about a charging point
// independently of any scrape.
type Charger struct {
	Location string `json:"location"`
	Operator string `json:"operator"`
	Address  string `json:"address"`
	PlugType string `json:"plug_type"`
	Power    string `json:"power"`
	Price    string `json:"price"`
}

const (
	defaultOperator = "Mennekes"
	defaultPlugType = "Typ 2"
	defaultPower    = "22 kW"
	defaultPrice    = "0,49 €/kWh"
)

// the stations the dashboard monitors, config entries overlay these.
var builtin = map[string]Charger{
	"DE*MDS*E006234": {
		Location: "Rathaus Tiefgarage",
		Operator: defaultOperator,
		Address:  "Rathausplatz 1, 57399 Kirchhundem",
		PlugType: defaultPlugType,
		Power:    defaultPower,
		Price:    defaultPrice,
	},
	"DE*MDS*E006235": {
		Location: "Rathaus Tiefgarage",
		Operator: defaultOperator,
		Address:  "Rathausplatz 1, 57399 Kirchhundem",
		PlugType: defaultPlugType,
		Power:    defaultPower,
		Price:    defaultPrice,
	},
	"DE*MDS*E006310": {
		Location: "Bahnhof P+R",
		Operator: defaultOperator,
		Address:  "Bahnhofstraße 12, 57399 Kirchhundem",
		PlugType: defaultPlugType,
		Power:    "11 kW",
		Price:    defaultPrice,
	},
	"DE*MDS*E006311": {
		Location: "Freibad Parkplatz",
		Operator: defaultOperator,
		Address:  "Am Freibad 3, 57399 Kirchhundem",
		PlugType: defaultPlugType,
		Power:    defaultPower,
		Price:    "0,52 €/kWh",
	},
}

type Config struct {
	Chargers map[string]Charger `json:"chargers"`
}

// Registry is a read-only charger id -> attributes mapping, loaded once at
// process start.
type Registry struct {
	chargers map[string]Charger
}

// New builds a registry from the compiled-in chargers overlaid with the
// config block. Config entries win field-by-field over the builtin ones.
func New(cfg Config) (Registry, error) {
	chargers := make(map[string]Charger, len(builtin))
	for id, c := range builtin {
		chargers[id] = c
	}

	for id, override := range cfg.Chargers {
		base := chargers[id]
		if err := mergo.Merge(&base, override, mergo.WithOverride); err != nil {
			return Registry{}, err
		}
		chargers[id] = base
	}

	return Registry{chargers: chargers}, nil
}

func (r Registry) Lookup(id string) (Charger, bool) {
	c, ok := r.chargers[id]
	return c, ok
}

// Synthesize produces generic defaults for an id the registry has never
// seen, labeled by the id's final segment.
func Synthesize(id string) Charger {
	return Charger{
		Location: "Ladepunkt " + evse.Serial(id),
		Operator: defaultOperator,
		PlugType: defaultPlugType,
		Power:    defaultPower,
		Price:    defaultPrice,
	}
}

// IDs returns every known charger id in stable order.
func (r Registry) IDs() []string {
	ids := make([]string, 0, len(r.chargers))
	for id := range r.chargers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type Match struct {
	ID      string
	Charger Charger
	Score   float64
}

// Search ranks chargers against a free-form query by fuzzy-matching the
// location and address fields.
func (r Registry) Search(query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))

	var matches []Match
	for _, id := range r.IDs() {
		c := r.chargers[id]
		score := matchr.JaroWinkler(query, strings.ToLower(c.Location), false)
		if addrScore := matchr.JaroWinkler(query, strings.ToLower(c.Address), false); addrScore > score {
			score = addrScore
		}
		if strings.Contains(strings.ToLower(c.Location), query) ||
			strings.Contains(strings.ToLower(c.Address), query) {
			score = 1
		}
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{ID: id, Charger: c, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

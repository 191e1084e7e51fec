package gear

import (
	"sort"
	"strings"
	"time"
)

// A MaintenanceRecord snapshots the activities a piece of gear saw between
// the previous maintenance of the same type and the moment the work was
// logged. The snapshot is the permanent record; later feed changes never
// rewrite it.
type MaintenanceRecord struct {
	ID         string
	GearID     string
	Type       string
	Date       time.Time
	Notes      string
	Activities []ActivityStub
}

// Distance is the total logged in the snapshot, in kilometers.
func (r *MaintenanceRecord) Distance() float64 {
	var meters float64
	for _, a := range r.Activities {
		meters += a.Distance
	}
	return meters / 1000
}

// TypeCatalog maps maintenance type keys to human descriptions. Keys are
// stored lowercase so "Wash" and "wash" name the same kind of work.
type TypeCatalog struct {
	descriptions map[string]string
}

func NewTypeCatalog() *TypeCatalog {
	c := &TypeCatalog{descriptions: map[string]string{}}
	for key, desc := range builtinTypes {
		c.descriptions[key] = desc
	}
	return c
}

var builtinTypes = map[string]string{
	"wash":             "wash and degrease",
	"lube_chain":       "clean and lube the chain",
	"brake_pads":       "replace brake pads",
	"tire_rotation":    "rotate or replace tires",
	"full_tune":        "full shop tune-up",
	"chain_replace":    "replace the chain",
	"cassette":         "replace the cassette",
	"bleed_brakes":     "bleed hydraulic brakes",
	"suspension":       "suspension service",
	"bottom_bracket":   "bottom bracket service",
	"wheel_true":       "true the wheels",
	"cable_replace":    "replace shift/brake cables",
	"bar_tape":         "rewrap bar tape",
	"tubeless_sealant": "refresh tubeless sealant",
}

// Register adds or overwrites a type. Unknown keys are still accepted by
// records; the catalog only supplies descriptions and completion.
func (c *TypeCatalog) Register(key, description string) {
	c.descriptions[NormalizeType(key)] = description
}

func (c *TypeCatalog) Describe(key string) (string, bool) {
	d, ok := c.descriptions[NormalizeType(key)]
	return d, ok
}

// Keys returns the registered type keys, sorted.
func (c *TypeCatalog) Keys() []string {
	keys := make([]string, 0, len(c.descriptions))
	for k := range c.descriptions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NormalizeType canonicalizes a maintenance type or interval item key.
func NormalizeType(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// LatestOfType returns the most recent record matching the given type, or
// nil when the gear has no history of that work.
func LatestOfType(records []*MaintenanceRecord, typ string) *MaintenanceRecord {
	typ = NormalizeType(typ)
	var latest *MaintenanceRecord
	for _, r := range records {
		if NormalizeType(r.Type) != typ {
			continue
		}
		if latest == nil || r.Date.After(latest.Date) {
			latest = r
		}
	}
	return latest
}

package game

import (
	"fmt"
	"strings"
)

// EventEntry is one recorded event during a headless simulation.
type EventEntry struct {
	Tick     int
	Entity   string  // label e.g. "ship", "A17", "S2", or "--" for global events
	Category string  // fire, hit, kill, formation, shield, omega, missile, target, shelter, score, outcome
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] A17  kill    bullet    row=2 col=5
func (e EventEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-5s %-9s %-16s %s",
		e.Tick, e.Entity, e.Category, e.Key, e.Value)
}

// EventLog collects structured events during a headless simulation. It is
// unbounded and machine-readable; tests and the report tool assert against
// it rather than poking at world internals mid-run.
type EventLog struct {
	entries []EventEntry
	verbose bool
}

// NewEventLog creates an EventLog. If verbose is true, per-tick position and
// count entries are also recorded (useful for detailed debugging).
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Add records a new entry.
func (el *EventLog) Add(tick int, entity, category, key, value string, numVal float64) {
	el.entries = append(el.entries, EventEntry{
		Tick:     tick,
		Entity:   entity,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(tick int, entity, category, key, value string, numVal float64) {
	if !el.verbose {
		return
	}
	el.Add(tick, entity, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []EventEntry {
	return el.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventEntry {
	var out []EventEntry
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterEntity returns entries for a specific entity label.
func (el *EventLog) FilterEntity(label string) []EventEntry {
	var out []EventEntry
	for _, e := range el.entries {
		if e.Entity == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (el *EventLog) FilterTickRange(fromTick, toTick int) []EventEntry {
	var out []EventEntry
	for _, e := range el.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (el *EventLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (EventEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EventEntry{}, false
	}
	return entries[len(entries)-1], true
}

// FirstOf returns the earliest entry matching category+key, or false if none.
func (el *EventLog) FirstOf(category, key string) (EventEntry, bool) {
	for _, e := range el.entries {
		if e.Category == category && e.Key == key {
			return e, true
		}
	}
	return EventEntry{}, false
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (el *EventLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range el.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the world state.
func (el *EventLog) Summary(tick int, w *World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", tick)

	alive := len(w.AliveAliens())
	fmt.Fprintf(&sb, "Aliens: %d/%d alive (%d in roster)  direction=%+.0f\n",
		alive, w.InitialAliens, len(w.Aliens), w.Direction)

	shipShots, alienShots := 0, 0
	for _, b := range w.Bullets {
		if !b.Alive {
			continue
		}
		if b.Owner == OwnerShip {
			shipShots++
		} else {
			alienShots++
		}
	}
	fmt.Fprintf(&sb, "Bullets: ship=%d alien=%d  missiles=%d  effects=%d\n",
		shipShots, alienShots, len(w.Missiles), len(w.Effects))

	shipState := "ok"
	if w.Ship.Exploding {
		shipState = "exploding"
	}
	fmt.Fprintf(&sb, "Ship: x=%.1f state=%s shield=%v omega_active=%v\n",
		w.Ship.Rect.X, shipState, w.Shield.Active, w.Omega.Active)

	shelters := make([]string, 0, len(w.Shelters))
	for i, s := range w.Shelters {
		if !s.Alive {
			shelters = append(shelters, fmt.Sprintf("S%d=gone", i))
			continue
		}
		shelters = append(shelters, fmt.Sprintf("S%d=%d", i, s.Damage))
	}
	fmt.Fprintf(&sb, "Shelters: %s\n", strings.Join(shelters, " "))

	fmt.Fprintf(&sb, "Score: %d  outcome=%s\n", w.Score, w.Outcome)
	return sb.String()
}

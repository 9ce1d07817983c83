package tactics

import (
	"fmt"
	"strings"
)

// Event categories recorded by the turn manager.
const (
	CategorySelect = "select"
	CategoryPath   = "path"
	CategoryMove   = "move"
	CategoryTurn   = "turn"
)

// EventEntry is one recorded turn-layer event.
type EventEntry struct {
	Seq      int
	Round    int
	Unit     string  // unit name, or "--" for global events
	Category string  // select, path, move, turn
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value (cost, tiles, ...)
}

// String formats the entry as a fixed-width log line.
//
//	[R01 #0042] archer  path     rerouted         (0,0)→(1,0)→(2,0)
func (e EventEntry) String() string {
	return fmt.Sprintf("[R%02d #%04d] %-7s %-8s %-16s %s",
		e.Round, e.Seq, e.Unit, e.Category, e.Key, e.Value)
}

// EventLog collects structured turn-layer events. It is unbounded and meant
// for tests, reports and the clipboard export.
type EventLog struct {
	entries []EventEntry
}

// NewEventLog creates an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Add records a new entry.
func (l *EventLog) Add(round int, unit, category, key, value string, numVal float64) {
	l.entries = append(l.entries, EventEntry{
		Seq:      len(l.entries) + 1,
		Round:    round,
		Unit:     unit,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// Entries returns all recorded entries, oldest first.
func (l *EventLog) Entries() []EventEntry {
	return l.entries
}

// matches reports whether e is in category with key; empty strings match any.
func (e EventEntry) matches(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// Count returns how many entries match category and key.
func (l *EventLog) Count(category, key string) int {
	n := 0
	for _, e := range l.entries {
		if e.matches(category, key) {
			n++
		}
	}
	return n
}

// LastOf returns the newest entry matching category and key.
func (l *EventLog) LastOf(category, key string) (EventEntry, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].matches(category, key) {
			return l.entries[i], true
		}
	}
	return EventEntry{}, false
}

// Format renders the log one entry per line, with a header before each round.
//
//	== round 1 ==
//	[R01 #0001] archer  select   selected         at (0,0)
func (l *EventLog) Format() string {
	var sb strings.Builder
	round := -1
	for _, e := range l.entries {
		if e.Round != round {
			round = e.Round
			fmt.Fprintf(&sb, "== round %d ==\n", round)
		}
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

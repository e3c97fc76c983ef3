package playback

import (
	"github.com/SmitUplenchwar2687/macrokey/internal/event"
)

// Filter selects which recorded events are played.
type Filter struct {
	Kinds []event.Kind // Only include these kinds (empty = all)
	From  float32      // Only include events at or after this offset (0 = no limit)
	To    float32      // Only include events at or before this offset (0 = no limit)
}

// Match returns true if the event passes the filter.
func (f *Filter) Match(rec event.Recorded) bool {
	if len(f.Kinds) > 0 && !containsKind(f.Kinds, rec.Event.Kind) {
		return false
	}
	if f.From > 0 && rec.Offset < f.From {
		return false
	}
	if f.To > 0 && rec.Offset > f.To {
		return false
	}
	return true
}

// Apply returns the matching events. Offsets are shifted back by From so a
// window starts playing immediately.
func (f *Filter) Apply(events []event.Recorded) []event.Recorded {
	var out []event.Recorded
	for _, rec := range events {
		if !f.Match(rec) {
			continue
		}
		rec.Offset -= f.From
		out = append(out, rec)
	}
	return out
}

func containsKind(kinds []event.Kind, k event.Kind) bool {
	for _, v := range kinds {
		if v == k {
			return true
		}
	}
	return false
}

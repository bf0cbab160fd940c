package manifest

import (
	"fmt"
	"strings"
)

// EventKind is the kind of a recorded component event.
type EventKind string

// Kinds of events.
const (
	Constructed      EventKind = "construct"
	Connected        EventKind = "connected"
	Disconnected     EventKind = "disconnected"
	Adopted          EventKind = "adopted"
	AttributeChanged EventKind = "attribute"
)

// Event is a construction or lifecycle reaction of a component.
type Event struct {
	Kind     EventKind
	Tag      string
	Class    string
	Registry string
	Detail   string
}

func (ev Event) String() string {
	s := fmt.Sprintf("%-12s <%s> %s@%s", ev.Kind, ev.Tag, ev.Class, ev.Registry)
	if ev.Detail != "" {
		s += " " + ev.Detail
	}
	return s
}

// Log records events in order.
type Log struct {
	events []Event
}

func (l *Log) add(ev Event) {
	tracer().Debugf("%s", ev)
	l.events = append(l.events, ev)
}

// Events returns the recorded events.
func (l *Log) Events() []Event {
	return append([]Event(nil), l.events...)
}

// Count returns the number of events of a kind for a tag.
func (l *Log) Count(kind EventKind, tag string) int {
	n := 0
	for _, ev := range l.events {
		if ev.Kind == kind && ev.Tag == tag {
			n++
		}
	}
	return n
}

func (l *Log) String() string {
	var b strings.Builder
	for i, ev := range l.events {
		fmt.Fprintf(&b, "%3d  %s\n", i+1, ev)
	}
	return b.String()
}

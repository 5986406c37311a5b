package testing

import (
	"fmt"
	"sync"

	"github.com/aiostack/aiostack/internal/synthesis"
)

// RecordingObserver is an Observer that records events and messages.
type RecordingObserver struct {
	mu       sync.Mutex
	events   []synthesis.Event
	messages []string
}

// NewRecordingObserver creates an empty recording observer.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

// Printf records the formatted message.
func (r *RecordingObserver) Printf(format string, v ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, fmt.Sprintf(format, v...))
}

// Event records the event.
func (r *RecordingObserver) Event(event synthesis.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// WithFields returns an observer that merges fields into every event and
// records into the same storage.
func (r *RecordingObserver) WithFields(fields map[string]string) synthesis.Observer {
	return &fieldsObserver{parent: r, fields: fields}
}

// Events returns a copy of the recorded events.
func (r *RecordingObserver) Events() []synthesis.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]synthesis.Event, len(r.events))
	copy(out, r.events)
	return out
}

// EventsOfType returns recorded events of one type.
func (r *RecordingObserver) EventsOfType(t synthesis.EventType) []synthesis.Event {
	var out []synthesis.Event
	for _, e := range r.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Messages returns a copy of the recorded Printf messages.
func (r *RecordingObserver) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

type fieldsObserver struct {
	parent *RecordingObserver
	fields map[string]string
}

func (f *fieldsObserver) Printf(format string, v ...any) { f.parent.Printf(format, v...) }

func (f *fieldsObserver) Event(event synthesis.Event) {
	event.Fields = mergeFields(f.fields, event.Fields)
	f.parent.Event(event)
}

func (f *fieldsObserver) WithFields(fields map[string]string) synthesis.Observer {
	return &fieldsObserver{parent: f.parent, fields: mergeFields(f.fields, fields)}
}

func mergeFields(base, extra map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

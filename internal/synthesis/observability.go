package synthesis

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
)

// Observer defines the interface for structured observability during synthesis.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured synthesis event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "infrastructure", "compute")
	Message   string            // Human-readable message
	Resource  string            // Logical ID if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of synthesis event.
type EventType string

const (
	// EventPhaseStarted indicates a synthesis phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a synthesis phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a synthesis phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceDeclared indicates a resource was added to the template.
	EventResourceDeclared EventType = "resource.declared"
	// EventResourceFailed indicates a resource could not be declared.
	EventResourceFailed EventType = "resource.failed"

	// EventValidationWarning indicates configuration that is accepted but ignored.
	EventValidationWarning EventType = "validation.warning"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct {
	logger        *log.Logger
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer writing to the
// standard logger.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		logger:        log.Default(),
		contextFields: make(map[string]string),
	}
}

// NewLoggerObserver creates an observer writing to the given logger.
func NewLoggerObserver(logger *log.Logger) *ConsoleObserver {
	return &ConsoleObserver{
		logger:        logger,
		contextFields: make(map[string]string),
	}
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...any) {
	o.logger.Printf(format, v...)
}

// Event implements Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}

	o.logger.Print(FormatEvent(event))
}

// WithFields implements Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &ConsoleObserver{
		logger:        o.logger,
		contextFields: newFields,
	}
}

// FormatEvent formats an event as a single log line. Fields are sorted by key.
func FormatEvent(event Event) string {
	var parts []string

	parts = append(parts, string(event.Type))

	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}

	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}

	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		keys := make([]string, 0, len(event.Fields))
		for k := range event.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fieldParts := make([]string, 0, len(keys))
		for _, k := range keys {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, event.Fields[k]))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceDeclared logs a resource added to the template.
func LogResourceDeclared(observer Observer, phase, resourceType, logicalID string) {
	observer.Event(Event{
		Type:     EventResourceDeclared,
		Phase:    phase,
		Resource: logicalID,
		Message:  fmt.Sprintf("%s declared", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceFailed logs a resource that could not be declared.
func LogResourceFailed(observer Observer, phase, resourceType, logicalID string, err error) {
	observer.Event(Event{
		Type:     EventResourceFailed,
		Phase:    phase,
		Resource: logicalID,
		Message:  fmt.Sprintf("%s not declared: %v", resourceType, err),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogValidationWarning logs configuration that is accepted but has no effect.
func LogValidationWarning(observer Observer, phase, message string) {
	observer.Event(Event{
		Type:    EventValidationWarning,
		Phase:   phase,
		Message: message,
	})
}

package fna

// Lifecycle notification channels. Events use the CloudEvents specification
// for standardized event format and better interoperability with external
// tooling (recorders, telemetry bridges).

import (
	"context"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
)

// CloudEvent is an alias for the CloudEvents Event type for convenience.
type CloudEvent = cloudevents.Event

// Event type constants for the lifecycle notification channels, using
// reverse domain notation per the CloudEvents specification.
const (
	EventTypeActivated   = "com.fna.game.activated"
	EventTypeDeactivated = "com.fna.game.deactivated"
	EventTypeExiting     = "com.fna.game.exiting"
	EventTypeDisposed    = "com.fna.game.disposed"
)

// Observer defines the interface for objects that want to be notified of
// lifecycle events. Observers are invoked synchronously, in subscription
// order, on the goroutine that triggered the event, before the triggering
// call returns. Observers should therefore return quickly.
type Observer interface {
	// OnEvent is called when an event occurs that the observer is
	// interested in.
	OnEvent(ctx context.Context, event cloudevents.Event) error

	// ObserverID returns a unique identifier for this observer, used for
	// registration tracking and debugging.
	ObserverID() string
}

// ObserverInfo provides information about a registered observer.
type ObserverInfo struct {
	// ID is the unique identifier of the observer
	ID string `json:"id"`

	// EventTypes are the event types this observer is subscribed to.
	// Empty slice means all events.
	EventTypes []string `json:"eventTypes"`

	// RegisteredAt indicates when the observer was registered
	RegisteredAt time.Time `json:"registeredAt"`
}

// observerRegistration holds information about a registered observer.
type observerRegistration struct {
	observer     Observer
	eventTypes   map[string]bool
	registeredAt time.Time
}

// Dispatcher fires lifecycle notifications to zero or more subscribers.
// Delivery is a simple synchronous multicast: all interested observers are
// invoked in subscription order on the calling goroutine. Observer errors
// are logged and do not stop delivery to later observers; there is no
// exception isolation between subscribers beyond that.
type Dispatcher struct {
	logger Logger

	// mu guards registration changes; delivery itself is expected to happen
	// on the single goroutine that owns the Game.
	mu            sync.Mutex
	registrations []*observerRegistration
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger Logger) *Dispatcher {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Dispatcher{logger: logger}
}

// Register adds an observer. Observers can optionally filter events by type
// using the eventTypes parameter; an empty list subscribes to all events.
// Registering an already-registered observer ID replaces its subscription
// while keeping its original position.
func (d *Dispatcher) Register(observer Observer, eventTypes ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	eventTypeMap := make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		eventTypeMap[eventType] = true
	}

	for _, reg := range d.registrations {
		if reg.observer.ObserverID() == observer.ObserverID() {
			reg.observer = observer
			reg.eventTypes = eventTypeMap
			return
		}
	}

	d.registrations = append(d.registrations, &observerRegistration{
		observer:     observer,
		eventTypes:   eventTypeMap,
		registeredAt: time.Now(),
	})
	d.logger.Debug("Observer registered", "observerID", observer.ObserverID(), "eventTypes", eventTypes)
}

// Unregister removes an observer. It is idempotent and does nothing when the
// observer was never registered.
func (d *Dispatcher) Unregister(observer Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, reg := range d.registrations {
		if reg.observer.ObserverID() == observer.ObserverID() {
			d.registrations = append(d.registrations[:i], d.registrations[i+1:]...)
			d.logger.Debug("Observer unregistered", "observerID", observer.ObserverID())
			return
		}
	}
}

// Notify delivers an event to all interested observers, in subscription
// order, before returning.
func (d *Dispatcher) Notify(ctx context.Context, event cloudevents.Event) {
	if event.Time().IsZero() {
		event.SetTime(time.Now())
	}

	d.mu.Lock()
	registrations := make([]*observerRegistration, len(d.registrations))
	copy(registrations, d.registrations)
	d.mu.Unlock()

	for _, reg := range registrations {
		if len(reg.eventTypes) > 0 && !reg.eventTypes[event.Type()] {
			continue
		}
		if err := reg.observer.OnEvent(ctx, event); err != nil {
			d.logger.Error("Observer error", "observerID", reg.observer.ObserverID(), "event", event.Type(), "error", err)
		}
	}
}

// Observers returns information about currently registered observers, in
// subscription order. This is useful for debugging and monitoring.
func (d *Dispatcher) Observers() []ObserverInfo {
	d.mu.Lock()
	defer d.mu.Unlock()

	info := make([]ObserverInfo, 0, len(d.registrations))
	for _, reg := range d.registrations {
		eventTypes := make([]string, 0, len(reg.eventTypes))
		for eventType := range reg.eventTypes {
			eventTypes = append(eventTypes, eventType)
		}
		info = append(info, ObserverInfo{
			ID:           reg.observer.ObserverID(),
			EventTypes:   eventTypes,
			RegisteredAt: reg.registeredAt,
		})
	}
	return info
}

// NewGameEvent creates a properly formatted CloudEvent for a lifecycle
// notification.
func NewGameEvent(eventType, source string, data any) cloudevents.Event {
	event := cloudevents.NewEvent()
	event.SetID(generateEventID())
	event.SetSource(source)
	event.SetType(eventType)
	event.SetTime(time.Now())
	event.SetSpecVersion(cloudevents.VersionV1)
	if data != nil {
		_ = event.SetData(cloudevents.ApplicationJSON, data)
	}
	return event
}

// generateEventID generates a unique identifier for CloudEvents using
// UUIDv7, which includes timestamp information for time-ordered uniqueness.
func generateEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails for any reason
		id = uuid.New()
	}
	return id.String()
}

// FunctionalObserver provides a simple way to create observers using
// functions, without defining full structs.
type FunctionalObserver struct {
	id      string
	handler func(ctx context.Context, event cloudevents.Event) error
}

// NewFunctionalObserver creates an observer that uses the provided function
// to handle events.
func NewFunctionalObserver(id string, handler func(ctx context.Context, event cloudevents.Event) error) Observer {
	return &FunctionalObserver{id: id, handler: handler}
}

// OnEvent implements the Observer interface by calling the handler function.
func (f *FunctionalObserver) OnEvent(ctx context.Context, event cloudevents.Event) error {
	return f.handler(ctx, event)
}

// ObserverID implements the Observer interface by returning the observer ID.
func (f *FunctionalObserver) ObserverID() string {
	return f.id
}

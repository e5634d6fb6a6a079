package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"fluentdeck/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSelectionStarted    = domain.EventSelectionStarted
	EventSelectionChanged    = domain.EventSelectionChanged
	EventSelectionCleared    = domain.EventSelectionCleared
	EventAllSelected         = domain.EventAllSelected
	EventCollectionCreated   = domain.EventCollectionCreated
	EventCollectionDeleted   = domain.EventCollectionDeleted
	EventCollectionRenamed   = domain.EventCollectionRenamed
	EventCollectionItem      = domain.EventCollectionItem
	EventCollectionImported  = domain.EventCollectionImported
	EventCollectionsReloaded = domain.EventCollectionsReloaded
	EventNotification        = domain.EventNotification
	EventCatalogLoaded       = domain.EventCatalogLoaded
	EventExportStarted       = domain.EventExportStarted
	EventExportProgress      = domain.EventExportProgress
	EventExportFinished      = domain.EventExportFinished
	EventError               = domain.EventError
)

// Re-export domain event types
type SelectionStartedEvent = domain.SelectionStartedEvent
type SelectionChangedEvent = domain.SelectionChangedEvent
type SelectionClearedEvent = domain.SelectionClearedEvent
type AllSelectedEvent = domain.AllSelectedEvent
type CollectionCreatedEvent = domain.CollectionCreatedEvent
type CollectionDeletedEvent = domain.CollectionDeletedEvent
type CollectionRenamedEvent = domain.CollectionRenamedEvent
type CollectionItemEvent = domain.CollectionItemEvent
type CollectionImportedEvent = domain.CollectionImportedEvent
type CollectionsReloadedEvent = domain.CollectionsReloadedEvent
type NotificationEvent = domain.NotificationEvent
type CatalogLoadedEvent = domain.CatalogLoadedEvent
type ExportStartedEvent = domain.ExportStartedEvent
type ExportProgressEvent = domain.ExportProgressEvent
type ExportFinishedEvent = domain.ExportFinishedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// bus is the concrete implementation of EventBus. Handlers are keyed by a
// monotonic id so unsubscribing one never disturbs the others.
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType]map[uint64]EventHandler
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	logger    *zap.SugaredLogger
}

// New creates a new event bus
func New(logger *zap.SugaredLogger) EventBus {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	b := &bus{
		handlers:  make(map[EventType]map[uint64]EventHandler),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
		logger:    logger,
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Skip logging for high-frequency events
	switch event.Type() {
	case EventSelectionChanged, EventExportProgress:
		// Too frequent to be worth a log line each
	default:
		b.logger.Debugw("publishing event", "type", event.Type())
	}

	select {
	case b.eventChan <- event:
		// Event sent successfully
	default:
		// Channel full, log and drop
		b.logger.Warnw("event bus channel full, dropping event", "type", event.Type())
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[uint64]EventHandler)
	}
	id := b.nextID
	b.nextID++
	b.handlers[eventType][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		delete(b.handlers[eventType], id)
	}
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			// Make a copy to avoid holding lock during handler execution
			handlersCopy := make([]EventHandler, 0, len(b.handlers[event.Type()]))
			for _, handler := range b.handlers[event.Type()] {
				handlersCopy = append(handlersCopy, handler)
			}
			b.mu.RUnlock()

			for _, handler := range handlersCopy {
				func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							b.logger.Errorw("event handler panic",
								"type", eventType, "panic", r, "stack", string(debug.Stack()))
						}
					}()
					h(event)
				}(handler, event.Type())
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
					// Discard event
				default:
					return
				}
			}
		}
	}
}

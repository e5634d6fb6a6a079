package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionStarted    EventType = "SelectionStarted"
	EventSelectionChanged    EventType = "SelectionChanged"
	EventSelectionCleared    EventType = "SelectionCleared"
	EventAllSelected         EventType = "AllSelected"
	EventCollectionCreated   EventType = "CollectionCreated"
	EventCollectionDeleted   EventType = "CollectionDeleted"
	EventCollectionRenamed   EventType = "CollectionRenamed"
	EventCollectionItem      EventType = "CollectionItemChanged"
	EventCollectionImported  EventType = "CollectionImported"
	EventCollectionsReloaded EventType = "CollectionsReloaded"
	EventNotification        EventType = "Notification"
	EventCatalogLoaded       EventType = "CatalogLoaded"
	EventExportStarted       EventType = "ExportStarted"
	EventExportProgress      EventType = "ExportProgress"
	EventExportFinished      EventType = "ExportFinished"
	EventError               EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionStartedEvent is emitted when selection mode is entered explicitly
type SelectionStartedEvent struct {
	Context string
	Item    Item
}

func (e SelectionStartedEvent) Type() EventType { return EventSelectionStarted }

// SelectionChangedEvent is emitted when items are toggled in or out
type SelectionChangedEvent struct {
	Added   []string // identities
	Removed []string
	Total   int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// SelectionClearedEvent is emitted when selection mode ends
type SelectionClearedEvent struct{}

func (e SelectionClearedEvent) Type() EventType { return EventSelectionCleared }

// AllSelectedEvent is emitted when a whole gallery is selected at once
type AllSelectedEvent struct {
	Context string
	Total   int
}

func (e AllSelectedEvent) Type() EventType { return EventAllSelected }

// CollectionCreatedEvent is emitted when a new collection is created
type CollectionCreatedEvent struct {
	Name string
}

func (e CollectionCreatedEvent) Type() EventType { return EventCollectionCreated }

// CollectionDeletedEvent is emitted when a collection is deleted
type CollectionDeletedEvent struct {
	Name string
}

func (e CollectionDeletedEvent) Type() EventType { return EventCollectionDeleted }

// CollectionRenamedEvent is emitted when a collection is renamed
type CollectionRenamedEvent struct {
	OldName string
	NewName string
}

func (e CollectionRenamedEvent) Type() EventType { return EventCollectionRenamed }

// CollectionItemEvent is emitted when an item is added to or removed from a collection
type CollectionItemEvent struct {
	Collection string
	Identity   string
	Added      bool
}

func (e CollectionItemEvent) Type() EventType { return EventCollectionItem }

// CollectionImportedEvent is emitted when a collection is imported from raw data
type CollectionImportedEvent struct {
	Name  string
	Count int
}

func (e CollectionImportedEvent) Type() EventType { return EventCollectionImported }

// CollectionsReloadedEvent is emitted when the persisted collections map was
// replaced wholesale because another process changed it
type CollectionsReloadedEvent struct{}

func (e CollectionsReloadedEvent) Type() EventType { return EventCollectionsReloaded }

// Severity classifies a user-facing notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// NotificationEvent carries a human-readable outcome message for the UI
type NotificationEvent struct {
	Message  string
	Severity Severity
}

func (e NotificationEvent) Type() EventType { return EventNotification }

// CatalogLoadedEvent is emitted when a gallery dataset finished loading
type CatalogLoadedEvent struct {
	Kind  Kind
	Count int
}

func (e CatalogLoadedEvent) Type() EventType { return EventCatalogLoaded }

// ExportStartedEvent is emitted when a batch export begins
type ExportStartedEvent struct {
	TaskID string
	Total  int
}

func (e ExportStartedEvent) Type() EventType { return EventExportStarted }

// ExportProgressEvent is emitted as assets are fetched and archived
type ExportProgressEvent struct {
	TaskID   string
	Done     int
	Failed   int
	Total    int
	Identity string // last item processed
}

func (e ExportProgressEvent) Type() EventType { return EventExportProgress }

// ExportFinishedEvent is emitted when a batch export completes
type ExportFinishedEvent struct {
	TaskID   string
	Archived int
	Skipped  int
	Path     string
	Err      error
}

func (e ExportFinishedEvent) Type() EventType { return EventExportFinished }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

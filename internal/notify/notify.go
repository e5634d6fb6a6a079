// Package notify is the toast surface: operations that can fail report a
// human-readable outcome here and the UI renders it transiently.
package notify

import (
	"fluentdeck/internal/domain"
	"fluentdeck/internal/eventbus"
)

// Re-export severities for callers
const (
	Success = domain.SeveritySuccess
	Error   = domain.SeverityError
	Info    = domain.SeverityInfo
)

// Notifier delivers a user-facing outcome message
type Notifier interface {
	Notify(message string, severity domain.Severity)
}

// busNotifier publishes notifications as domain events
type busNotifier struct {
	bus eventbus.EventBus
}

// NewBusNotifier creates a notifier backed by the event bus
func NewBusNotifier(bus eventbus.EventBus) Notifier {
	return &busNotifier{bus: bus}
}

// Notify publishes a NotificationEvent
func (n *busNotifier) Notify(message string, severity domain.Severity) {
	n.bus.Publish(eventbus.NotificationEvent{
		Message:  message,
		Severity: severity,
	})
}

// NopNotifier discards all notifications, for tests and headless use
type NopNotifier struct{}

// Notify implements Notifier
func (NopNotifier) Notify(string, domain.Severity) {}

// Func adapts a plain function to the Notifier interface
type Func func(message string, severity domain.Severity)

// Notify implements Notifier
func (f Func) Notify(message string, severity domain.Severity) { f(message, severity) }

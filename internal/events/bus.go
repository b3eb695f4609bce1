// Package events implements the in-process change notification bus. Content
// handlers publish a typed Change after every successful write; subscribers
// (audit recorder, image tracker) react synchronously, before the HTTP
// response is written. A subscriber failure is its own problem: panics are
// recovered and logged, and never propagate back to the publisher.
package events

import (
	"context"
	"log/slog"
	"sync"
)

// Op is the kind of write that happened.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes one committed entity write.
type Change struct {
	Op         Op
	EntityType string // Entity kind, e.g. "Sermon"
	EntityID   string
	// EntityLabel is a human-readable snapshot (title, name) taken at write
	// time, so audit rows stay meaningful after the entity is gone.
	EntityLabel string
	// ImagePath is the entity's image, if it has one. Consumed by the image
	// tracker on create and pre-delete.
	ImagePath string
	// ImageSizeBytes is the uploaded file size, when known.
	ImageSizeBytes *int64
}

// Subscriber reacts to a change. Errors are handled (logged, counted) by the
// subscriber itself; the bus only guards against panics.
type Subscriber func(ctx context.Context, change Change)

// Bus dispatches change notifications to registered subscribers in
// registration order. Subscribe is expected at wiring time, but the bus is
// safe for concurrent Subscribe/Publish regardless.
type Bus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	preDelete   []Subscriber
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for post-write notifications.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// SubscribePreDelete registers fn for pre-delete notifications, which fire
// while the entity still exists.
func (b *Bus) SubscribePreDelete(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.preDelete = append(b.preDelete, fn)
}

// Publish notifies post-write subscribers of a committed change.
func (b *Bus) Publish(ctx context.Context, change Change) {
	b.mu.RLock()
	subs := b.subscribers
	b.mu.RUnlock()
	dispatch(ctx, subs, change)
}

// PublishPreDelete notifies pre-delete subscribers before an entity is
// removed, giving them a last chance to act on the still-existing row.
func (b *Bus) PublishPreDelete(ctx context.Context, change Change) {
	b.mu.RLock()
	subs := b.preDelete
	b.mu.RUnlock()
	dispatch(ctx, subs, change)
}

func dispatch(ctx context.Context, subs []Subscriber, change Change) {
	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("recovered panic in change subscriber",
						"panic", r,
						"op", change.Op,
						"entity_type", change.EntityType,
						"entity_id", change.EntityID,
					)
				}
			}()
			fn(ctx, change)
		}()
	}
}

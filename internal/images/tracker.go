// Package images maintains the image provenance log: one record per uploaded
// image, keyed to the entity that owns it, plus the reconciliation sweep that
// removes records whose owners no longer exist.
package images

import (
	"context"
	"log/slog"

	"github.com/churchsite/church-backend/internal/db/models"
	"github.com/churchsite/church-backend/internal/events"
	"github.com/churchsite/church-backend/internal/telemetry"
)

// sectionLabels maps an entity kind to the site section shown in the admin
// image log. Kinds not listed fall back to the kind name itself.
var sectionLabels = map[string]string{
	events.KindHomeBanner:   "Home Banner",
	events.KindHeadPastor:   "Head Pastor",
	events.KindLeader:       "Church Leader",
	events.KindPhotoGallery: "Photo Gallery",
	events.KindSermon:       "Sermon",
	events.KindEvent:        "Event",
	events.KindGivingImage:  "Giving Page",
}

// SectionLabel returns the display label for an entity kind.
func SectionLabel(kind string) string {
	if label, ok := sectionLabels[kind]; ok {
		return label
	}
	return kind
}

// TrackerStore is the persistence surface the Tracker needs.
type TrackerStore interface {
	CreateImageLog(ctx context.Context, log *models.ImageLog) error
	DeleteByOwner(ctx context.Context, ownerType, ownerID string) (int64, error)
}

// Tracker subscribes to the change bus and keeps the provenance log in step
// with entity writes: one record per image-bearing create, cleanup on
// pre-delete. Like audit recording, tracking never fails the user's write;
// internal errors are logged and dropped.
type Tracker struct {
	store TrackerStore
}

// NewTracker creates a Tracker.
func NewTracker(store TrackerStore) *Tracker {
	return &Tracker{store: store}
}

// Register subscribes the tracker to create and pre-delete notifications.
func (t *Tracker) Register(bus *events.Bus) {
	bus.Subscribe(t.HandleChange)
	bus.SubscribePreDelete(t.HandlePreDelete)
}

// HandleChange records provenance for newly created entities that carry an
// image. Updates are deliberately ignored: the log captures first creation
// only, matching the upload flow where replacing an image keeps its path.
func (t *Tracker) HandleChange(ctx context.Context, change events.Change) {
	if change.Op != events.OpCreate || change.ImagePath == "" {
		return
	}

	log := &models.ImageLog{
		ImagePath:     change.ImagePath,
		OwnerType:     change.EntityType,
		OwnerID:       change.EntityID,
		SectionLabel:  SectionLabel(change.EntityType),
		FileSizeBytes: change.ImageSizeBytes,
	}

	if err := t.store.CreateImageLog(ctx, log); err != nil {
		slog.Error("image tracker: failed to record image provenance",
			"error", err,
			"owner_type", change.EntityType,
			"owner_id", change.EntityID,
		)
		return
	}
	telemetry.ImageLogsCreatedTotal.WithLabelValues(change.EntityType).Inc()
}

// HandlePreDelete removes provenance records for an entity that is about to
// be deleted, regardless of op — pre-delete notifications only carry deletes.
func (t *Tracker) HandlePreDelete(ctx context.Context, change events.Change) {
	if _, err := t.store.DeleteByOwner(ctx, change.EntityType, change.EntityID); err != nil {
		slog.Error("image tracker: failed to clean image provenance before delete",
			"error", err,
			"owner_type", change.EntityType,
			"owner_id", change.EntityID,
		)
	}
}

// Package audit records who did what to which entity. The Recorder
// subscribes to the change bus for content writes and exposes explicit
// methods for the auth events (login, logout, failed login). Recording is
// strictly best-effort: a failed insert is logged and counted on a
// Prometheus counter, and the user-facing write proceeds untouched.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/churchsite/church-backend/internal/db/models"
	"github.com/churchsite/church-backend/internal/events"
	"github.com/churchsite/church-backend/internal/requestinfo"
	"github.com/churchsite/church-backend/internal/safego"
	"github.com/churchsite/church-backend/internal/telemetry"
)

// Store is the persistence surface the Recorder needs.
type Store interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// Recorder turns change events and auth events into audit log rows.
type Recorder struct {
	store   Store
	shipper Shipper
	enabled bool
}

// NewRecorder creates a Recorder. When enabled is false every method is a
// no-op, so callers never need to branch.
func NewRecorder(store Store, enabled bool) *Recorder {
	return &Recorder{store: store, enabled: enabled}
}

// ShipTo adds an external destination (file, webhook) that receives a copy of
// every persisted audit row. Must be called before the recorder is registered
// on the bus.
func (r *Recorder) ShipTo(shipper Shipper) {
	r.shipper = shipper
}

// Register subscribes the recorder to content change notifications.
func (r *Recorder) Register(bus *events.Bus) {
	bus.Subscribe(r.HandleChange)
}

var opActions = map[events.Op]string{
	events.OpCreate: models.AuditActionCreate,
	events.OpUpdate: models.AuditActionUpdate,
	events.OpDelete: models.AuditActionDelete,
}

// HandleChange records one CRUD audit row for a content write. Writes with
// no authenticated actor on the context are skipped silently: anonymous
// traffic (contact form posts, seed scripts) is not audit material.
func (r *Recorder) HandleChange(ctx context.Context, change events.Change) {
	if !r.enabled {
		return
	}

	info, ok := requestinfo.FromContext(ctx)
	if !ok || info.Actor == nil {
		return
	}

	action, ok := opActions[change.Op]
	if !ok {
		slog.Warn("audit: unknown change op, skipping", "op", change.Op)
		return
	}

	entityID := change.EntityID
	r.insert(ctx, &models.AuditLog{
		UserID:      &info.Actor.UserID,
		Username:    info.Actor.Username,
		Action:      action,
		EntityType:  change.EntityType,
		EntityID:    &entityID,
		EntityLabel: change.EntityLabel,
		IPAddress:   info.IPAddress,
		UserAgent:   info.UserAgent,
	})
}

// RecordLogin records a successful login for the actor on the context.
func (r *Recorder) RecordLogin(ctx context.Context) {
	r.recordAuthEvent(ctx, models.AuditActionLogin, "")
}

// RecordLogout records a logout for the actor on the context.
func (r *Recorder) RecordLogout(ctx context.Context) {
	r.recordAuthEvent(ctx, models.AuditActionLogout, "")
}

// RecordLoginFailed records a failed login attempt. There is no
// authenticated actor; the attempted username, client IP, and user agent are
// captured so brute-force patterns stay visible.
func (r *Recorder) RecordLoginFailed(ctx context.Context, attemptedUsername string) {
	if !r.enabled {
		return
	}

	info, _ := requestinfo.FromContext(ctx)
	r.insert(ctx, &models.AuditLog{
		Username:    attemptedUsername,
		Action:      models.AuditActionPermissionDenied,
		EntityType:  "User",
		EntityLabel: "Failed login attempt for username: " + attemptedUsername,
		IPAddress:   info.IPAddress,
		UserAgent:   info.UserAgent,
	})
}

func (r *Recorder) recordAuthEvent(ctx context.Context, action, label string) {
	if !r.enabled {
		return
	}

	info, ok := requestinfo.FromContext(ctx)
	if !ok || info.Actor == nil {
		return
	}

	r.insert(ctx, &models.AuditLog{
		UserID:      &info.Actor.UserID,
		Username:    info.Actor.Username,
		Action:      action,
		EntityType:  "User",
		EntityLabel: label,
		IPAddress:   info.IPAddress,
		UserAgent:   info.UserAgent,
	})
}

func (r *Recorder) insert(ctx context.Context, log *models.AuditLog) {
	if err := r.store.CreateAuditLog(ctx, log); err != nil {
		telemetry.AuditRecordFailuresTotal.Inc()
		slog.Error("audit: failed to persist audit log",
			"error", err,
			"action", log.Action,
			"entity_type", log.EntityType,
		)
		return
	}
	telemetry.AuditEventsTotal.WithLabelValues(log.Action, log.EntityType).Inc()

	if r.shipper != nil {
		// Off the request path; shipping latency must not slow the write.
		entry := entryFromLog(log)
		safego.Go(func() {
			shipCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := r.shipper.Ship(shipCtx, entry); err != nil {
				slog.Warn("audit: failed to ship audit entry", "error", err)
			}
		})
	}
}

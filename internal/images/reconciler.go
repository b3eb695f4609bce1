package images

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/churchsite/church-backend/internal/telemetry"
)

// ExistenceChecker reports whether the entity of the registered kind with
// the given ID still exists.
type ExistenceChecker func(ctx context.Context, id string) (bool, error)

// ReconcilerStore is the persistence surface the Reconciler needs.
type ReconcilerStore interface {
	ListOwnerIDsByType(ctx context.Context, ownerType string) ([]string, error)
	DeleteByOwner(ctx context.Context, ownerType, ownerID string) (int64, error)
}

// Reconciler removes provenance records whose owning entity is gone —
// deletions that bypassed the pre-delete hook (bulk SQL, external tools).
// The sweep is idempotent: a second run over a clean log deletes nothing.
//
// Checkers form a closed registry; a kind without a checker is skipped with
// a warning rather than guessed at.
type Reconciler struct {
	store    ReconcilerStore
	checkers map[string]ExistenceChecker
}

// NewReconciler creates a Reconciler with no registered kinds.
func NewReconciler(store ReconcilerStore) *Reconciler {
	return &Reconciler{
		store:    store,
		checkers: make(map[string]ExistenceChecker),
	}
}

// RegisterChecker registers the existence check for one entity kind,
// replacing any previous registration for that kind.
func (r *Reconciler) RegisterChecker(kind string, fn ExistenceChecker) {
	r.checkers[kind] = fn
}

// Kinds returns the registered kind names.
func (r *Reconciler) Kinds() []string {
	kinds := make([]string, 0, len(r.checkers))
	for kind := range r.checkers {
		kinds = append(kinds, kind)
	}
	return kinds
}

// Reconcile sweeps the provenance log for the given kinds (all registered
// kinds when empty) and deletes orphaned records, returning how many rows
// were removed. Individual owner-check failures are logged and skipped so a
// flaky row cannot abort the whole sweep.
func (r *Reconciler) Reconcile(ctx context.Context, kinds []string) (int64, error) {
	if len(kinds) == 0 {
		kinds = r.Kinds()
	}

	var deleted int64
	for _, kind := range kinds {
		check, ok := r.checkers[kind]
		if !ok {
			slog.Warn("image reconciler: no existence checker registered, skipping kind", "kind", kind)
			continue
		}

		ownerIDs, err := r.store.ListOwnerIDsByType(ctx, kind)
		if err != nil {
			return deleted, fmt.Errorf("listing image log owners for kind %s: %w", kind, err)
		}

		for _, ownerID := range ownerIDs {
			exists, err := check(ctx, ownerID)
			if err != nil {
				slog.Error("image reconciler: existence check failed, skipping owner",
					"error", err, "kind", kind, "owner_id", ownerID)
				continue
			}
			if exists {
				continue
			}

			n, err := r.store.DeleteByOwner(ctx, kind, ownerID)
			if err != nil {
				slog.Error("image reconciler: failed to delete orphaned records",
					"error", err, "kind", kind, "owner_id", ownerID)
				continue
			}
			deleted += n
		}
	}

	if deleted > 0 {
		telemetry.ImageLogsReconciledTotal.Add(float64(deleted))
	}
	return deleted, nil
}

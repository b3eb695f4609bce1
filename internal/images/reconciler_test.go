package images

import (
	"context"
	"errors"
	"testing"

	"github.com/churchsite/church-backend/internal/events"
)

// fakeReconcilerStore serves a fixed owner-ID listing per kind and records
// deletions.
type fakeReconcilerStore struct {
	owners    map[string][]string
	deleted   []string // "kind/ownerID"
	listErr   error
	deleteErr error
}

func (f *fakeReconcilerStore) ListOwnerIDsByType(_ context.Context, ownerType string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.owners[ownerType], nil
}

func (f *fakeReconcilerStore) DeleteByOwner(_ context.Context, ownerType, ownerID string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deleted = append(f.deleted, ownerType+"/"+ownerID)
	return 2, nil // pretend each owner had two image records
}

// existsSet builds a checker that reports true for the listed IDs.
func existsSet(ids ...string) ExistenceChecker {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(_ context.Context, id string) (bool, error) {
		return set[id], nil
	}
}

func TestReconciler_RemovesOrphans(t *testing.T) {
	store := &fakeReconcilerStore{
		owners: map[string][]string{
			events.KindSermon: {"s-live", "s-gone"},
		},
	}
	r := NewReconciler(store)
	r.RegisterChecker(events.KindSermon, existsSet("s-live"))

	deleted, err := r.Reconcile(context.Background(), nil)
	if err != nil {
		t.Fatalf("Reconcile() error: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2 (one orphaned owner with two records)", deleted)
	}
	if len(store.deleted) != 1 || store.deleted[0] != events.KindSermon+"/s-gone" {
		t.Errorf("deletions = %v, want only the orphaned owner", store.deleted)
	}
}

func TestReconciler_IsIdempotent(t *testing.T) {
	store := &fakeReconcilerStore{
		owners: map[string][]string{
			events.KindEvent: {"e-1", "e-2"},
		},
	}
	r := NewReconciler(store)
	// Every owner still exists: nothing to remove, run after run.
	r.RegisterChecker(events.KindEvent, existsSet("e-1", "e-2"))

	for i := 0; i < 2; i++ {
		deleted, err := r.Reconcile(context.Background(), nil)
		if err != nil {
			t.Fatalf("Reconcile() run %d error: %v", i, err)
		}
		if deleted != 0 {
			t.Errorf("run %d: deleted = %d, want 0", i, deleted)
		}
	}
}

func TestReconciler_KindFilter(t *testing.T) {
	store := &fakeReconcilerStore{
		owners: map[string][]string{
			events.KindSermon: {"s-gone"},
			events.KindEvent:  {"e-gone"},
		},
	}
	r := NewReconciler(store)
	r.RegisterChecker(events.KindSermon, existsSet())
	r.RegisterChecker(events.KindEvent, existsSet())

	// Only sweep sermons; the orphaned event record must stay put.
	deleted, err := r.Reconcile(context.Background(), []string{events.KindSermon})
	if err != nil {
		t.Fatalf("Reconcile() error: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	if len(store.deleted) != 1 || store.deleted[0] != events.KindSermon+"/s-gone" {
		t.Errorf("deletions = %v, want sermon orphan only", store.deleted)
	}
}

func TestReconciler_UnregisteredKindIsSkipped(t *testing.T) {
	store := &fakeReconcilerStore{
		owners: map[string][]string{"Mystery": {"m-1"}},
	}
	r := NewReconciler(store)

	deleted, err := r.Reconcile(context.Background(), []string{"Mystery"})
	if err != nil {
		t.Fatalf("Reconcile() error: %v", err)
	}
	if deleted != 0 || len(store.deleted) != 0 {
		t.Errorf("unregistered kind was swept: deleted=%d deletions=%v", deleted, store.deleted)
	}
}

func TestReconciler_CheckerFailureSkipsOwner(t *testing.T) {
	store := &fakeReconcilerStore{
		owners: map[string][]string{
			events.KindBranch: {"b-flaky", "b-gone"},
		},
	}
	r := NewReconciler(store)
	r.RegisterChecker(events.KindBranch, func(_ context.Context, id string) (bool, error) {
		if id == "b-flaky" {
			return false, errors.New("connection reset")
		}
		return false, nil
	})

	deleted, err := r.Reconcile(context.Background(), nil)
	if err != nil {
		t.Fatalf("Reconcile() error: %v", err)
	}
	// b-flaky is skipped, b-gone is removed.
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	if len(store.deleted) != 1 || store.deleted[0] != events.KindBranch+"/b-gone" {
		t.Errorf("deletions = %v, want only b-gone", store.deleted)
	}
}

func TestReconciler_ListFailureAborts(t *testing.T) {
	store := &fakeReconcilerStore{listErr: errors.New("db down")}
	r := NewReconciler(store)
	r.RegisterChecker(events.KindSermon, existsSet())

	if _, err := r.Reconcile(context.Background(), nil); err == nil {
		t.Error("Reconcile() expected error when listing fails, got nil")
	}
}

func TestReconciler_Kinds(t *testing.T) {
	r := NewReconciler(&fakeReconcilerStore{})
	r.RegisterChecker(events.KindSermon, existsSet())
	r.RegisterChecker(events.KindEvent, existsSet())

	kinds := r.Kinds()
	if len(kinds) != 2 {
		t.Fatalf("Kinds() returned %d entries, want 2", len(kinds))
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		seen[k] = true
	}
	if !seen[events.KindSermon] || !seen[events.KindEvent] {
		t.Errorf("Kinds() = %v, missing registered kinds", kinds)
	}
}

package events

import (
	"context"
	"testing"
)

func TestBus_Publish(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var got []Change
	bus.Subscribe(func(_ context.Context, change Change) {
		got = append(got, change)
	})

	change := Change{Op: OpCreate, EntityType: KindSermon, EntityID: "s-1", EntityLabel: "Sunday Service"}
	bus.Publish(ctx, change)

	if len(got) != 1 {
		t.Fatalf("subscriber received %d changes, want 1", len(got))
	}
	if got[0] != change {
		t.Errorf("received change = %+v, want %+v", got[0], change)
	}
}

func TestBus_SubscribersCalledInRegistrationOrder(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var order []string
	bus.Subscribe(func(_ context.Context, _ Change) { order = append(order, "first") })
	bus.Subscribe(func(_ context.Context, _ Change) { order = append(order, "second") })
	bus.Subscribe(func(_ context.Context, _ Change) { order = append(order, "third") })

	bus.Publish(ctx, Change{Op: OpUpdate, EntityType: KindEvent, EntityID: "e-1"})

	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Errorf("dispatch order = %v, want [first second third]", order)
	}
}

func TestBus_PreDeleteChannelIsSeparate(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var postWrites, preDeletes int
	bus.Subscribe(func(_ context.Context, _ Change) { postWrites++ })
	bus.SubscribePreDelete(func(_ context.Context, _ Change) { preDeletes++ })

	bus.Publish(ctx, Change{Op: OpCreate, EntityType: KindLeader, EntityID: "l-1"})
	if postWrites != 1 || preDeletes != 0 {
		t.Errorf("after Publish: postWrites=%d preDeletes=%d, want 1/0", postWrites, preDeletes)
	}

	bus.PublishPreDelete(ctx, Change{Op: OpDelete, EntityType: KindLeader, EntityID: "l-1"})
	if postWrites != 1 || preDeletes != 1 {
		t.Errorf("after PublishPreDelete: postWrites=%d preDeletes=%d, want 1/1", postWrites, preDeletes)
	}
}

func TestBus_PanickingSubscriberDoesNotStopDispatch(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var reached bool
	bus.Subscribe(func(_ context.Context, _ Change) { panic("subscriber blew up") })
	bus.Subscribe(func(_ context.Context, _ Change) { reached = true })

	// Must not panic out of Publish.
	bus.Publish(ctx, Change{Op: OpDelete, EntityType: KindBranch, EntityID: "b-1"})

	if !reached {
		t.Error("subscriber after the panicking one was not called")
	}
}

func TestBus_PublishWithNoSubscribers(t *testing.T) {
	bus := NewBus()
	// Publishing on an empty bus is a no-op, not an error.
	bus.Publish(context.Background(), Change{Op: OpCreate, EntityType: KindBook, EntityID: "bk-1"})
	bus.PublishPreDelete(context.Background(), Change{Op: OpDelete, EntityType: KindBook, EntityID: "bk-1"})
}

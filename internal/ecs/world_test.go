package ecs

import "testing"

// stub component used only in tests
type testComp struct{ val int }

func (testComp) Type() ComponentType { return 1 }

type otherComp struct{}

func (otherComp) Type() ComponentType { return 2 }

func TestCreateEntity(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	if id == NilEntity {
		t.Fatal("expected non-nil entity ID")
	}
	if !w.Alive(id) {
		t.Fatal("expected entity to be alive after creation")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.Add(id, testComp{val: 42})

	c := w.Get(id, ComponentType(1))
	if c == nil {
		t.Fatal("expected component, got nil")
	}
	tc, ok := c.(testComp)
	if !ok {
		t.Fatal("wrong component type returned")
	}
	if tc.val != 42 {
		t.Fatalf("expected val=42, got %d", tc.val)
	}
}

func TestDestroyEntityRemovesComponents(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.Add(id, testComp{val: 7})
	w.DestroyEntity(id)

	if w.Alive(id) {
		t.Fatal("entity should not be alive after DestroyEntity")
	}
	if w.Get(id, ComponentType(1)) != nil {
		t.Fatal("component should be gone after DestroyEntity")
	}
}

func TestQueryFiltersCorrectly(t *testing.T) {
	w := NewWorld()

	// entity with both A and B
	both := w.CreateEntity()
	w.Add(both, testComp{})
	w.Add(both, otherComp{})

	// entity with only A
	onlyA := w.CreateEntity()
	w.Add(onlyA, testComp{})

	results := w.Query(ComponentType(1), ComponentType(2))
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0] != both {
		t.Fatalf("expected entity %v in results, got %v", both, results[0])
	}
}

func TestHasComponent(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()

	if w.Has(id, ComponentType(1)) {
		t.Fatal("Has should return false before Add")
	}
	w.Add(id, testComp{val: 1})
	if !w.Has(id, ComponentType(1)) {
		t.Fatal("Has should return true after Add")
	}
	w.DestroyEntity(id)
	if w.Has(id, ComponentType(1)) {
		t.Fatal("Has should return false after DestroyEntity")
	}
}

func TestQueryExcludesDeadEntities(t *testing.T) {
	w := NewWorld()
	alive := w.CreateEntity()
	w.Add(alive, testComp{})

	dead := w.CreateEntity()
	w.Add(dead, testComp{})
	w.DestroyEntity(dead)

	results := w.Query(ComponentType(1))
	for _, id := range results {
		if id == dead {
			t.Fatal("Query returned a destroyed entity")
		}
	}
	if len(results) != 1 || results[0] != alive {
		t.Fatalf("expected only the alive entity; got %v", results)
	}
}

func TestSpawnAttachesAllComponents(t *testing.T) {
	w := NewWorld()
	id := w.Spawn(testComp{val: 3}, otherComp{})

	if !w.Alive(id) {
		t.Fatal("spawned entity should be alive")
	}
	if !w.Has(id, ComponentType(1)) || !w.Has(id, ComponentType(2)) {
		t.Fatal("spawned entity should carry both components")
	}
	if got := w.Get(id, ComponentType(1)).(testComp).val; got != 3 {
		t.Fatalf("expected val=3, got %d", got)
	}
}

func TestDestroyedIDsAreNotReused(t *testing.T) {
	w := NewWorld()
	first := w.CreateEntity()
	w.DestroyEntity(first)
	second := w.CreateEntity()

	if second == first {
		t.Fatalf("entity ID %v was reused after destroy", first)
	}
	if w.Alive(first) {
		t.Fatal("stale ID must not resolve as alive")
	}
}

func TestAddToDeadEntityIsIgnored(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.DestroyEntity(id)
	w.Add(id, testComp{val: 9})

	if w.Has(id, ComponentType(1)) {
		t.Fatal("component must not attach to a destroyed entity")
	}
	if len(w.Query(ComponentType(1))) != 0 {
		t.Fatal("Query must not return the destroyed entity")
	}
}

func TestDestroyTwiceIsNoop(t *testing.T) {
	w := NewWorld()
	id := w.Spawn(testComp{})
	w.DestroyEntity(id)
	w.DestroyEntity(id)
	if w.Count() != 0 {
		t.Fatalf("expected 0 live entities, got %d", w.Count())
	}
}

func TestQueryIsSortedByID(t *testing.T) {
	w := NewWorld()
	var ids []EntityID
	for range 20 {
		ids = append(ids, w.Spawn(testComp{}))
	}
	got := w.Query(ComponentType(1))
	if len(got) != len(ids) {
		t.Fatalf("expected %d results, got %d", len(ids), len(got))
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Fatalf("result %d = %v; want %v", i, got[i], ids[i])
		}
	}
}

package hedgerow

import (
	"reflect"
	"testing"
)

type farmStore struct {
	Rabbits int
}

func TestRegistryRegisterLookup(t *testing.T) {
	reg := NewRegistry()
	store := &farmStore{Rabbits: 3}
	reg.Register("farm", store)

	v, ok := reg.Lookup("farm")
	if !ok || v != store {
		t.Fatalf("Lookup = %v, %v; want registered store", v, ok)
	}
	if _, ok := reg.Lookup("barn"); ok {
		t.Error("Lookup of unknown name should fail")
	}

	reg.Unregister("farm")
	if _, ok := reg.Lookup("farm"); ok {
		t.Error("Lookup after Unregister should fail")
	}
	reg.Unregister("farm") // no-op
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register("weather", 1)
	reg.Register("dialog", 2)
	reg.Register("farm", 3)
	if got, want := reg.Names(), []string{"dialog", "farm", "weather"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
}

func TestRegistryZeroValue(t *testing.T) {
	var reg Registry
	reg.Register("a", 1)
	if _, ok := reg.Lookup("a"); !ok {
		t.Error("zero Registry should accept Register")
	}
}

func TestStoreAs(t *testing.T) {
	reg := NewRegistry()
	reg.Register("farm", &farmStore{Rabbits: 7})
	reg.Register("count", 5)

	farm, ok := StoreAs[*farmStore](reg, "farm")
	if !ok || farm.Rabbits != 7 {
		t.Errorf("StoreAs farm = %v, %v", farm, ok)
	}
	if _, ok := StoreAs[*farmStore](reg, "count"); ok {
		t.Error("StoreAs with the wrong type should fail")
	}
	if _, ok := StoreAs[int](nil, "count"); ok {
		t.Error("StoreAs on nil stores should fail")
	}
}

func TestPropsContextStores(t *testing.T) {
	reg := NewRegistry()
	reg.Register("farm", 1)

	pc := NewPropsContext("hello", reg)
	if pc.Props() != "hello" {
		t.Errorf("Props = %q", pc.Props())
	}
	if v, ok := pc.Store("farm"); !ok || v != 1 {
		t.Errorf("Store = %v, %v", v, ok)
	}

	var zero PropsContext[int]
	if _, ok := zero.Store("farm"); ok {
		t.Error("zero PropsContext should have no stores")
	}
	if names := NewPropsContext(0, nil).Stores().Names(); len(names) != 0 {
		t.Errorf("nil stores Names = %v, want empty", names)
	}
}

func TestRenderingContextDescend(t *testing.T) {
	rec := NewRecorder()
	ctx := NewRenderingContext(rec, 0, FrameInfo{}, nil)
	if ctx.ScaleFactor() != 1 {
		t.Errorf("ScaleFactor = %v, want 1 for non-positive input", ctx.ScaleFactor())
	}

	child := ctx.Descend(3, 4)
	if ctx.Parent() != (Coordinates{}) {
		t.Error("Descend must not modify the receiver")
	}
	if child.Parent() != (Coordinates{3, 4}) || child.Surface() != Surface(rec) {
		t.Errorf("child = %+v", child)
	}
	if x, y := child.Descend(1, 1).Device(Coordinates{2, 3}); x != 3 || y != 4 {
		t.Errorf("Device = (%v, %v), want (3, 4)", x, y)
	}
}

func TestCoordinatesArithmetic(t *testing.T) {
	a := Coordinates{1, 2}
	b := Coordinates{3, 5}
	if a.Add(b) != (Coordinates{4, 7}) || b.Sub(a) != (Coordinates{2, 3}) || a.Scale(2) != (Coordinates{2, 4}) {
		t.Error("Coordinates arithmetic mismatch")
	}
}

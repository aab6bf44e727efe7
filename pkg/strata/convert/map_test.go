package convert

import (
	"reflect"
	"testing"
)

func TestMap_OrderPreserved(t *testing.T) {
	m := NewMap()
	m.Set("zebra", 1)
	m.Set("alpha", 2)
	m.Set("middle", 3)

	want := []any{"zebra", "alpha", "middle"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestMap_DuplicateKeyKeepsPosition(t *testing.T) {
	m := NewMap()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)

	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	if got := m.Keys(); !reflect.DeepEqual(got, []any{"a", "b"}) {
		t.Errorf("Keys() = %v, want [a b]", got)
	}
	if v, _ := m.Get("a"); v != 3 {
		t.Errorf("Get(a) = %v, want 3 (last write wins)", v)
	}
}

func TestMap_Get(t *testing.T) {
	m := NewMap()
	m.Set("present", "yes")
	m.Set(int64(7), "seven")

	if v, ok := m.Get("present"); !ok || v != "yes" {
		t.Errorf("Get(present) = %v, %v", v, ok)
	}
	if v, ok := m.Get(int64(7)); !ok || v != "seven" {
		t.Errorf("Get(7) = %v, %v", v, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get(missing) = true, want false")
	}
}

func TestMap_NonComparableKeys(t *testing.T) {
	m := NewMap()
	m.Set([]any{"a", "b"}, 1)
	m.Set("plain", 2)
	m.Set([]any{"a", "b"}, 3) // Appended, never deduplicated

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	if v, ok := m.Get([]any{"a", "b"}); !ok || v != 1 {
		t.Errorf("Get(slice key) = %v, %v, want first match 1", v, ok)
	}
}

func TestMap_MarshalJSON(t *testing.T) {
	m := NewMap()
	m.Set("z", int64(1))
	m.Set("a", "two")
	m.Set(int64(3), true)

	got, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}

	want := `{"z":1,"a":"two","3":true}`
	if string(got) != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestMap_MarshalJSON_Nested(t *testing.T) {
	inner := NewMap()
	inner.Set("k", nil)

	m := NewMap()
	m.Set("outer", inner)
	m.Set("list", []any{int64(1), int64(2)})

	got, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}

	want := `{"outer":{"k":null},"list":[1,2]}`
	if string(got) != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}

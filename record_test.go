package structread

import "testing"

func TestRecordGetAndNames(t *testing.T) {
	rec := NewRecord([]string{"a", "b"}, []any{uint64(1), uint64(2)})

	if names := rec.Names(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("Names() = %v", names)
	}
	if v, ok := rec.Get("b"); !ok || v != uint64(2) {
		t.Fatalf("Get(b) = %v, %v; want 2, true", v, ok)
	}
	if _, ok := rec.Get("missing"); ok {
		t.Fatalf("Get(missing) should report not found")
	}
}

func TestRecordTupleIsPositional(t *testing.T) {
	rec := NewRecord([]string{"a", "b"}, []any{uint64(1), uint64(2)})
	tup := rec.Tuple()
	if len(tup) != 2 || tup[0] != uint64(1) || tup[1] != uint64(2) {
		t.Fatalf("Tuple() = %v", tup)
	}
}

func TestRecordIterateIsDeclarationOrder(t *testing.T) {
	rec := NewRecord([]string{"z", "a"}, []any{uint64(1), uint64(2)})
	var names []string
	rec.Iterate()(func(name string, value any) bool {
		names = append(names, name)
		return true
	})
	if len(names) != 2 || names[0] != "z" || names[1] != "a" {
		t.Fatalf("Iterate order = %v; want [z a]", names)
	}
}

func TestDictFromRecord(t *testing.T) {
	rec := NewRecord([]string{"a", "b"}, []any{uint64(1), uint64(2)})
	d := rec.Dict()
	if d.Len() != 2 {
		t.Fatalf("Dict.Len() = %d; want 2", d.Len())
	}
	v, ok := d.Get("a")
	if !ok || v != uint64(1) {
		t.Fatalf("Dict.Get(a) = %v, %v; want 1, true", v, ok)
	}
}

func TestDeepEqualDict(t *testing.T) {
	ra := NewRecord([]string{"a"}, []any{uint64(1)})
	rb := NewRecord([]string{"a"}, []any{uint64(1)})
	da, db := ra.Dict(), rb.Dict()
	if !deepEqual(da, db) {
		t.Fatalf("deepEqual(da, db) = false; want true for equal-content dicts with different seeds")
	}
}

func TestDeepEqualRecord(t *testing.T) {
	ra := NewRecord([]string{"a", "b"}, []any{uint64(1), "x"})
	rb := NewRecord([]string{"a", "b"}, []any{uint64(1), "x"})
	if !deepEqual(ra, rb) {
		t.Fatalf("deepEqual(ra, rb) = false; want true")
	}
	rc := NewRecord([]string{"a", "b"}, []any{uint64(1), "y"})
	if deepEqual(ra, rc) {
		t.Fatalf("deepEqual(ra, rc) = true; want false")
	}
}

package structread

// Utilities that complement std reflect package.

import "reflect"

// deepEqual is like reflect.DeepEqual but also supports Dict and *Record.
//
// It is needed because reflect.DeepEqual considers two Dicts not-equal even
// with identical contents: each Dict wraps its own gomap.Map built with its
// own hash seed, so comparing the underlying pointers/buckets directly never
// matches.
func deepEqual(a, b any) bool {
	switch da := a.(type) {
	case Dict:
		db, ok := b.(Dict)
		if !ok {
			return false
		}
		return dictEqual(da, db)
	case *Record:
		db, ok := b.(*Record)
		if !ok {
			return false
		}
		return recordEqual(da, db)
	case Tuple:
		db, ok := b.(Tuple)
		if !ok || len(da) != len(db) {
			return false
		}
		for i := range da {
			if !deepEqual(da[i], db[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

func dictEqual(da, db Dict) bool {
	if da.Len() != db.Len() {
		return false
	}
	eq := true
	da.Iter()(func(k string, va any) bool {
		vb, ok := db.Get(k)
		if !ok || !deepEqual(va, vb) {
			eq = false
			return false
		}
		return true
	})
	return eq
}

func recordEqual(ra, rb *Record) bool {
	if len(ra.names) != len(rb.names) {
		return false
	}
	for i, n := range ra.names {
		if rb.names[i] != n {
			return false
		}
		if !deepEqual(ra.values[i], rb.values[i]) {
			return false
		}
	}
	return true
}

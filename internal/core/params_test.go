package core

import "testing"

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "a", Params: []Parameter{{Key: "x", Value: "1"}}},
		{Name: "b", Params: []Parameter{{Key: "y", Value: "2"}}},
	}}
	if p, ok := snap.Lookup("y"); !ok || p.Value != "2" {
		t.Fatalf("Lookup(y) = %+v, %v", p, ok)
	}
	if _, ok := snap.Lookup("z"); ok {
		t.Fatal("Lookup(z) should miss")
	}
}

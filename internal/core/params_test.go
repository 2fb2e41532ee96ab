package core

import "testing"

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Grid", Params: []Parameter{{Key: "size", Value: "20", Type: ParamTypeInt}}},
		{Name: "Run", Params: []Parameter{{Key: "mode", Value: "editable", Type: ParamTypeString}}},
	}}
	p, ok := snap.Lookup("mode")
	if !ok || p.Value != "editable" {
		t.Fatalf("Lookup(mode) = %+v, %v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("missing key resolved")
	}
}

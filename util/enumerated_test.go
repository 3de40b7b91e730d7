package util

import "testing"

func TestEnumSetAdd(t *testing.T) {
	e := NewEnumSet(4)
	first, isNew := e.Add("NP")
	if first != 0 || !isNew {
		t.Error("Got", first, isNew, "expected 0 true")
	}
	second, isNew := e.Add("VP")
	if second != 1 || !isNew {
		t.Error("Got", second, isNew, "expected 1 true")
	}
	again, isNew := e.Add("NP")
	if again != first || isNew {
		t.Error("Got", again, isNew, "expected", first, "false")
	}
	if e.Len() != 2 {
		t.Error("Got", e.Len(), "values expected 2")
	}
}

func TestEnumSetLookup(t *testing.T) {
	e := NewEnumSet(4)
	e.Add("NP")
	e.Add("VP")
	if index, exists := e.IndexOf("VP"); !exists || index != 1 {
		t.Error("Got", index, exists, "expected 1 true")
	}
	if _, exists := e.IndexOf("PP"); exists {
		t.Error("Found value never added")
	}
	if value := e.ValueOf(0); value != "NP" {
		t.Error("Got", value, "expected NP")
	}
}

func TestEnumSetFrozen(t *testing.T) {
	e := NewEnumSet(1)
	e.Add("NP")
	e.Frozen = true
	defer func() {
		if recover() == nil {
			t.Error("Add to a frozen set did not panic")
		}
	}()
	e.Add("VP")
}

package rerank

import (
	"reflect"
	"strings"
	"testing"
)

func registryIdentifiers(r *Registry) []string {
	idents := make([]string, len(r.Classes))
	for i, class := range r.Classes {
		idents[i] = class.Identifier()
	}
	return idents
}

// The class count of every named set is part of the model format:
// pruning numbers features class by class in set order, so a changed
// count silently invalidates saved definition files.
func TestFeatureSetSizes(t *testing.T) {
	sizes := map[string]int{
		"nfeatures":   109,
		"sfeatures":   41,
		"wshead":      16,
		"wsedge":      189,
		"wsedge0":     96,
		"wsedge1":     96,
		"wsngram":     24,
		"wsngramtree": 11,
		"wsrbcontext": 11,
		"conll":       35,
		"splh":        162,
		"splhnn":      167,
		"splhlocal":   157,
		"splhsuffix0": 160,
		"splhsuffix1": 221,
		"splhsuffix3": 221,
		"wedges":      69,
		"ws":          189,
		"wsall":       239,
	}
	for _, name := range FeatureSetNames() {
		expected, known := sizes[name]
		if !known {
			t.Error("No expected size for feature set", name)
			continue
		}
		registry, err := NewRegistry(name)
		if err != nil {
			t.Error("Got", err, "building feature set", name)
			continue
		}
		if len(registry.Classes) != expected {
			t.Error("Got", len(registry.Classes), "classes for", name, "expected", expected)
		}
	}
}

func TestFeatureSetIdentifiersUnique(t *testing.T) {
	for _, name := range FeatureSetNames() {
		registry, err := NewRegistry(name)
		if err != nil {
			t.Fatal(err)
		}
		seen := make(map[string]bool)
		for _, class := range registry.Classes {
			ident := class.Identifier()
			if seen[ident] {
				t.Error("Duplicate identifier", ident, "in feature set", name)
			}
			seen[ident] = true
		}
	}
}

func TestNewRegistryDefaultsToNFeatures(t *testing.T) {
	unnamed, err := NewRegistry("")
	if err != nil {
		t.Fatal(err)
	}
	named, err := NewRegistry("nfeatures")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(registryIdentifiers(unnamed), registryIdentifiers(named)) {
		t.Error("Got different classes for the empty name and nfeatures")
	}
}

// ws is the historical alias for wsedge.
func TestWSAliasesWSEdge(t *testing.T) {
	ws, err := NewRegistry("ws")
	if err != nil {
		t.Fatal(err)
	}
	wsedge, err := NewRegistry("wsedge")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(registryIdentifiers(ws), registryIdentifiers(wsedge)) {
		t.Error("Got different classes for ws and wsedge")
	}
}

func TestNewRegistryRejectsUnknownName(t *testing.T) {
	_, err := NewRegistry("nosuchset")
	if err == nil || !strings.Contains(err.Error(), "unknown feature set") {
		t.Error("Got", err, "expected unknown feature set error")
	}
}

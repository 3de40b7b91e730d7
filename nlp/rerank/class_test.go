package rerank

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/mjpost/extract-spfeatures/nlp/types"
)

// scriptedClass plays back fixed feature values per parse, keyed by the
// parse's LogProb, which the fixtures set to the parse index.
type scriptedClass struct {
	ident  string
	script []map[string]float64
}

func (c *scriptedClass) Identifier() string { return c.ident }

func (c *scriptedClass) countParse(parse *types.Parse, acc accumulator) {
	for key, value := range c.script[int(parse.LogProb)] {
		acc.add(key, value)
	}
}

func scriptedSentence(nparses int) *types.Sentence {
	s := &types.Sentence{Label: "0"}
	for i := 0; i < nparses; i++ {
		s.Parses = append(s.Parses, types.Parse{LogProb: float64(i)})
	}
	return s
}

// mapAccumulator collects the raw feature counts of a single parse.
type mapAccumulator map[string]float64

func (a mapAccumulator) add(key string, delta float64) { a[key] += delta }

// countTree runs one feature class over one tree and returns its
// feature counts.
func countTree(t *testing.T, c counter, line string) mapAccumulator {
	t.Helper()
	acc := make(mapAccumulator)
	c.countParse(&types.Parse{Tree: mustParseTree(t, line)}, acc)
	return acc
}

func TestExtractSkipsPseudoConstants(t *testing.T) {
	fc := newClass(&scriptedClass{ident: "Stub", script: []map[string]float64{
		{"const": 2, "varies": 1, "spread": 1},
		{"const": 2, "varies": 2, "spread": 1},
		{"const": 2, "spread": 2},
	}})
	fc.ExtractFrom(scriptedSentence(3), true, true)
	if _, found := fc.ids["const"]; found {
		t.Error("Counted pseudo-constant feature const")
	}
	if fc.ids["varies"] != 1 {
		t.Error("Got count", fc.ids["varies"], "for varies expected 1")
	}
	if fc.ids["spread"] != 1 {
		t.Error("Got count", fc.ids["spread"], "for spread expected 1")
	}
}

func TestExtractCollectionPolicy(t *testing.T) {
	script := []map[string]float64{
		{"first": 1, "both": 1},
		{"other": 1, "both": 2},
		{},
	}
	check := func(collectCorrect, collectIncorrect bool, expected []string) {
		fc := newClass(&scriptedClass{ident: "Stub", script: script})
		fc.ExtractFrom(scriptedSentence(3), collectCorrect, collectIncorrect)
		got := make([]string, 0, len(fc.ids))
		for key := range fc.ids {
			got = append(got, key)
		}
		if len(got) != len(expected) {
			t.Error("Got features", got, "expected", expected,
				"for policy", collectCorrect, collectIncorrect)
			return
		}
		for _, key := range expected {
			if _, found := fc.ids[key]; !found {
				t.Error("Missing feature", key, "for policy", collectCorrect, collectIncorrect)
			}
		}
	}
	check(true, false, []string{"first", "both"})
	check(false, true, []string{"other", "both"})
	check(true, true, []string{"first", "other", "both"})
}

func TestExtractSkipsUnambiguousSentences(t *testing.T) {
	fc := newClass(&scriptedClass{ident: "Stub", script: []map[string]float64{
		{"lonely": 1},
	}})
	fc.ExtractFrom(scriptedSentence(1), true, true)
	if len(fc.ids) != 0 {
		t.Error("Got", len(fc.ids), "features from a one-parse sentence expected 0")
	}
}

func TestPruneAndRenumber(t *testing.T) {
	first := newClass(&scriptedClass{ident: "StubA"})
	first.ids = map[string]FeatureId{"b": 5, "a": 3, "rare": 1}
	second := newClass(&scriptedClass{ident: "StubB"})
	second.ids = map[string]FeatureId{"z": 2}
	registry := &Registry{Classes: []*FeatureClass{first, second}}

	var defs bytes.Buffer
	nextid, err := registry.PruneAndRenumber(2, &defs)
	if err != nil {
		t.Fatal(err)
	}
	if nextid != 3 {
		t.Error("Got next id", nextid, "expected 3")
	}
	wantFirst := map[string]FeatureId{"a": 0, "b": 1}
	if !reflect.DeepEqual(first.ids, wantFirst) {
		t.Error("Got ids", first.ids, "expected", wantFirst)
	}
	wantSecond := map[string]FeatureId{"z": 2}
	if !reflect.DeepEqual(second.ids, wantSecond) {
		t.Error("Got ids", second.ids, "expected", wantSecond)
	}
	wantDefs := "0\tStubA a\n1\tStubA b\n2\tStubB z\n"
	if defs.String() != wantDefs {
		t.Errorf("Got definitions %q expected %q", defs.String(), wantDefs)
	}
}

func TestLoadDefinitionsRoundTrip(t *testing.T) {
	defs := "0\tStubA a\n1\tStubA b c\n2\tStubB z\n"
	registry := &Registry{Classes: []*FeatureClass{
		newClass(&scriptedClass{ident: "StubA"}),
		newClass(&scriptedClass{ident: "StubB"}),
	}}
	maxid, err := registry.LoadDefinitions(strings.NewReader(defs))
	if err != nil {
		t.Fatal(err)
	}
	if maxid != 2 {
		t.Error("Got maxid", maxid, "expected 2")
	}
	want := map[string]FeatureId{"a": 0, "b c": 1}
	if !reflect.DeepEqual(registry.Classes[0].ids, want) {
		t.Error("Got ids", registry.Classes[0].ids, "expected", want)
	}
	if registry.Classes[1].ids["z"] != 2 {
		t.Error("Got id", registry.Classes[1].ids["z"], "for z expected 2")
	}
}

func TestLoadDefinitionsRejectsUnknownClass(t *testing.T) {
	registry := &Registry{Classes: []*FeatureClass{
		newClass(&scriptedClass{ident: "StubA"}),
	}}
	_, err := registry.LoadDefinitions(strings.NewReader("0\tNoSuchClass a\n"))
	if err == nil || !strings.Contains(err.Error(), "can't find feature identifier") {
		t.Error("Got", err, "expected unknown identifier error")
	}
}

func TestLoadDefinitionsRejectsDuplicateKey(t *testing.T) {
	registry := &Registry{Classes: []*FeatureClass{
		newClass(&scriptedClass{ident: "StubA"}),
	}}
	_, err := registry.LoadDefinitions(strings.NewReader("0\tStubA a\n1\tStubA a\n"))
	if err == nil || !strings.Contains(err.Error(), "duplicate feature") {
		t.Error("Got", err, "expected duplicate feature error")
	}
}

func TestFeatureValuesRelative(t *testing.T) {
	// Counts 2,2,2,5 have mode 2, so only the last parse keeps a value.
	fc := newClass(&scriptedClass{ident: "Stub", script: []map[string]float64{
		{"f": 2}, {"f": 2}, {"f": 2}, {"f": 5},
	}})
	fc.ids = map[string]FeatureId{"f": 0}
	registry := &Registry{Classes: []*FeatureClass{fc}}

	vectors := registry.FeatureValues(scriptedSentence(4), false)
	for i := 0; i < 3; i++ {
		if len(vectors[i]) != 0 {
			t.Error("Got", vectors[i], "for parse", i, "expected empty vector")
		}
	}
	if vectors[3][0] != 3 {
		t.Error("Got", vectors[3][0], "for parse 3 expected 3")
	}
}

func TestFeatureValuesRelativeTiesToSmallest(t *testing.T) {
	// Counts 0,1,1 give value 0 and value 1 equal gain; the smaller
	// value wins, so the two occurrences survive.
	fc := newClass(&scriptedClass{ident: "Stub", script: []map[string]float64{
		{}, {"f": 1}, {"f": 1},
	}})
	fc.ids = map[string]FeatureId{"f": 0}
	registry := &Registry{Classes: []*FeatureClass{fc}}

	vectors := registry.FeatureValues(scriptedSentence(3), false)
	if len(vectors[0]) != 0 {
		t.Error("Got", vectors[0], "for parse 0 expected empty vector")
	}
	if vectors[1][0] != 1 || vectors[2][0] != 1 {
		t.Error("Got", vectors[1], vectors[2], "expected value 1 on parses 1 and 2")
	}
}

func TestFeatureValuesAbsolute(t *testing.T) {
	fc := newClass(&scriptedClass{ident: "Stub", script: []map[string]float64{
		{"f": 2, "g": 1}, {"f": 2},
	}})
	fc.ids = map[string]FeatureId{"f": 0, "g": 1}
	registry := &Registry{Classes: []*FeatureClass{fc}}

	vectors := registry.FeatureValues(scriptedSentence(2), true)
	want0 := FeatureVector{0: 2, 1: 1}
	if !reflect.DeepEqual(vectors[0], want0) {
		t.Error("Got", vectors[0], "expected", want0)
	}
	want1 := FeatureVector{0: 2}
	if !reflect.DeepEqual(vectors[1], want1) {
		t.Error("Got", vectors[1], "expected", want1)
	}
}

func TestFeatureValuesDropUnknownKeys(t *testing.T) {
	fc := newClass(&scriptedClass{ident: "Stub", script: []map[string]float64{
		{"known": 1, "unknown": 1}, {},
	}})
	fc.ids = map[string]FeatureId{"known": 7}
	registry := &Registry{Classes: []*FeatureClass{fc}}

	vectors := registry.FeatureValues(scriptedSentence(2), true)
	if _, found := vectors[0][7]; !found {
		t.Error("Lost the known feature")
	}
	if len(vectors[0]) != 1 {
		t.Error("Got", vectors[0], "expected only the known feature")
	}
}

func TestHistogramModeTies(t *testing.T) {
	mode := histogramMode(map[float64]int{1: 4, 2: 4})
	if mode != 1 {
		t.Error("Got mode", mode, "expected 1")
	}
}

package rerank

import (
	"bytes"
	"strings"
	"testing"
)

// perParseRegistry gives parse i the single feature i with value 1, so
// weights double as per-parse scores.
func perParseRegistry(nparses int) *Registry {
	script := make([]map[string]float64, nparses)
	ids := make(map[string]FeatureId, nparses)
	for i := 0; i < nparses; i++ {
		key := string(rune('a' + i))
		script[i] = map[string]float64{key: 1}
		ids[key] = FeatureId(i)
	}
	fc := newClass(&scriptedClass{ident: "Stub", script: script})
	fc.ids = ids
	return &Registry{Classes: []*FeatureClass{fc}}
}

func TestBestParseFirstStrictMaximum(t *testing.T) {
	scorer := NewScorer(perParseRegistry(4), []float64{3, 5, 5, 1}, true)
	best := scorer.BestParse(scriptedSentence(4))
	if best != 1 {
		t.Error("Got best parse", best, "expected 1")
	}
}

func TestBestParseAllZero(t *testing.T) {
	scorer := NewScorer(perParseRegistry(3), []float64{0, 0, 0}, true)
	best := scorer.BestParse(scriptedSentence(3))
	if best != 0 {
		t.Error("Got best parse", best, "expected 0")
	}
}

func TestRankedParsesDescending(t *testing.T) {
	weights := []float64{3, 5, 5, 1}
	scorer := NewScorer(perParseRegistry(4), weights, true)
	order, scores := scorer.RankedParses(scriptedSentence(4))
	if len(order) != 4 {
		t.Fatal("Got", len(order), "ranked parses expected 4")
	}
	seen := make(map[int]bool)
	for _, i := range order {
		seen[i] = true
	}
	if len(seen) != 4 {
		t.Error("Ranking", order, "is not a permutation")
	}
	for i := 1; i < len(order); i++ {
		if scores[order[i-1]] < scores[order[i]] {
			t.Error("Ranking", order, "not in descending score order", scores)
		}
	}
	for i, w := range weights {
		if scores[i] != w {
			t.Error("Got score", scores[i], "for parse", i, "expected", w)
		}
	}
}

func TestReadWeights(t *testing.T) {
	weights, err := ReadWeights(strings.NewReader("0 = 1.5\n2 = -3\n"), 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1.5, 0, -3}
	if len(weights) != len(want) {
		t.Fatal("Got", len(weights), "weights expected", len(want))
	}
	for i := range want {
		if weights[i] != want[i] {
			t.Error("Got weight", weights[i], "at", i, "expected", want[i])
		}
	}
}

func TestReadWeightsRejectsOutOfRange(t *testing.T) {
	_, err := ReadWeights(strings.NewReader("5 = 1\n"), 2)
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Error("Got", err, "expected out of range error")
	}
}

func TestReadWeightsRejectsDuplicates(t *testing.T) {
	_, err := ReadWeights(strings.NewReader("1 = 2\n1 = 3\n"), 2)
	if err == nil || !strings.Contains(err.Error(), "assigned twice") {
		t.Error("Got", err, "expected duplicate assignment error")
	}
}

func TestWriteFeaturesDebugSkipsUnweighted(t *testing.T) {
	script := []map[string]float64{
		{"p": 1, "q": 2, "r": 1},
		{"q": 1},
	}
	fc := newClass(&scriptedClass{ident: "Stub", script: script})
	fc.ids = map[string]FeatureId{"p": 0, "q": 1, "r": 2}
	registry := &Registry{Classes: []*FeatureClass{fc}}

	// Feature 0 is always skipped, feature 2 has no weight.
	scorer := NewScorer(registry, []float64{1, 1, 0}, true)
	sentence := scriptedSentence(2)
	sentence.Label = "7"

	var out bytes.Buffer
	if err := scorer.WriteFeaturesDebug(&out, sentence); err != nil {
		t.Fatal(err)
	}
	want := "7 0 1 2\n7 1 1 1\n"
	if out.String() != want {
		t.Errorf("Got %q expected %q", out.String(), want)
	}
}

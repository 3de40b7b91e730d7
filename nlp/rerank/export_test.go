package rerank

import (
	"bytes"
	"testing"

	"github.com/mjpost/extract-spfeatures/nlp/format/ptb"
	"github.com/mjpost/extract-spfeatures/nlp/types"
)

func mustParseTree(t *testing.T, line string) *types.Tree {
	t.Helper()
	tree, err := ptb.ParseTree(line, false)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestWriteSentence(t *testing.T) {
	gold := mustParseTree(t, "(S1 (S (NP (DT the) (NN dog)) (VP (VB ran))))")
	same := mustParseTree(t, "(S1 (S (NP (DT the) (NN dog)) (VP (VB ran))))")
	crossed := mustParseTree(t, "(S1 (S (NP (DT the)) (NN dog) (VP (VB ran))))")

	fc := newClass(&scriptedClass{ident: "Stub", script: []map[string]float64{
		{"a": 1},
		{"a": 2, "b": 2.5},
	}})
	fc.ids = map[string]FeatureId{"a": 10, "b": 12}
	registry := &Registry{Classes: []*FeatureClass{fc}}

	sentence := &types.Sentence{
		Gold: gold,
		Parses: []types.Parse{
			{Tree: same, LogProb: 0},
			{Tree: crossed, LogProb: 1},
		},
	}

	var out bytes.Buffer
	writer := NewExportWriter(&out, registry, true)
	if err := writer.WriteHeader(1); err != nil {
		t.Fatal(err)
	}
	if err := writer.WriteSentence(sentence); err != nil {
		t.Fatal(err)
	}
	want := "S=1\nG=3 N=2 P=3 W=3 10, P=3 W=2 10=2 12=2.5,\n"
	if out.String() != want {
		t.Errorf("Got %q expected %q", out.String(), want)
	}
}

func TestWriteVectorOrdersIds(t *testing.T) {
	var out bytes.Buffer
	err := writeVector(&out, FeatureVector{12: 1, 3: 2, 7: 1})
	if err != nil {
		t.Fatal(err)
	}
	want := " 3=2 7 12,"
	if out.String() != want {
		t.Errorf("Got %q expected %q", out.String(), want)
	}
}

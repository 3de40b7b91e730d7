package eval

import (
	"testing"

	"github.com/mjpost/extract-spfeatures/nlp/format/ptb"
	"github.com/mjpost/extract-spfeatures/nlp/types"
)

func mustParse(t *testing.T, line string) *types.Tree {
	t.Helper()
	tree, err := ptb.ParseTree(line, false)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestTreeEdges(t *testing.T) {
	tree := mustParse(t, "(S1 (S (NP (DT the) (NN dog)) (VP (VB ran))))")
	edges := TreeEdges(tree)
	if edges.Size() != 3 {
		t.Error("Got", edges.Size(), "edges expected 3")
	}
	want := []Edge{
		{types.Intern("S"), 0, 3},
		{types.Intern("NP"), 0, 2},
		{types.Intern("VP"), 2, 3},
	}
	for _, edge := range want {
		if edges[edge] != 1 {
			t.Error("Missing edge", edge)
		}
	}
	root := Edge{types.Intern("S1"), 0, 3}
	if edges[root] != 0 {
		t.Error("Root counted as an edge")
	}
	preterm := Edge{types.Intern("DT"), 0, 1}
	if edges[preterm] != 0 {
		t.Error("Preterminal counted as an edge")
	}
}

func TestTreeEdgesMultiset(t *testing.T) {
	tree := mustParse(t, "(S1 (NP (NP (NP (NN time)))))")
	edges := TreeEdges(tree)
	// A unary chain repeats the same labeled span.
	if edges[Edge{types.Intern("NP"), 0, 1}] != 3 {
		t.Error("Got", edges[Edge{types.Intern("NP"), 0, 1}], "NP(0,1) edges expected 3")
	}
	if edges.Size() != 3 {
		t.Error("Got", edges.Size(), "edges expected 3")
	}
}

func TestBracketIdentical(t *testing.T) {
	gold := TreeEdges(mustParse(t, "(S1 (S (NP (DT the) (NN dog)) (VP (VB ran))))"))
	test := TreeEdges(mustParse(t, "(S1 (S (NP (DT the) (NN dog)) (VP (VB ran))))"))
	r := Bracket(test, gold)
	if r.TP != 3 || r.FP != 0 || r.FN != 0 {
		t.Error("Got", r.TP, r.FP, r.FN, "expected 3 0 0")
	}
	if r.Precision() != 1 || r.Recall() != 1 || r.F1() != 1 {
		t.Error("Got", r.Precision(), r.Recall(), r.F1(), "expected all 1")
	}
	if r.Incorrect() != 0 {
		t.Error("Got", r.Incorrect(), "incorrect edges expected 0")
	}
}

func TestBracketCrossing(t *testing.T) {
	gold := TreeEdges(mustParse(t, "(S1 (S (NP (DT the) (NN dog)) (VP (VB ran))))"))
	test := TreeEdges(mustParse(t, "(S1 (S (NP (DT the)) (NN dog) (VP (VB ran))))"))
	r := Bracket(test, gold)
	if r.TP != 2 || r.FP != 1 || r.FN != 1 {
		t.Error("Got", r.TP, r.FP, r.FN, "expected 2 1 1")
	}
}

func TestTotal(t *testing.T) {
	var total Total
	total.Add(&Result{TP: 3, FP: 0, FN: 0})
	total.Add(&Result{TP: 2, FP: 1, FN: 1})
	if total.TP != 5 || total.FP != 1 || total.FN != 1 {
		t.Error("Got", total.TP, total.FP, total.FN, "expected 5 1 1")
	}
	if total.Exact != 1 || total.Population != 2 {
		t.Error("Got", total.Exact, "exact of", total.Population, "expected 1 of 2")
	}
	if total.ExactMatch() != 0.5 {
		t.Error("Got exact match", total.ExactMatch(), "expected 0.5")
	}
}

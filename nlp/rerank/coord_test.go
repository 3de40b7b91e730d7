package rerank

import (
	"reflect"
	"testing"
)

func TestCoParParallel(t *testing.T) {
	got := countTree(t, NewCoPar(false),
		"(S1 (VP (VP (VB eat) (NP (NN fish))) (CC and) (VP (VB drink) (NP (NN wine)))))")
	// The conjuncts agree at every depth down to the words.
	want := mapAccumulator{"1 1": 1, "2 1": 1, "3 1": 1}
	if !reflect.DeepEqual(got, want) {
		t.Error("Got", got, "expected", want)
	}
}

func TestCoParDivergent(t *testing.T) {
	tree := "(S1 (NP (NP (DT the) (NN fish)) (CC and) (NP (NN wine))))"

	got := countTree(t, NewCoPar(false), tree)
	want := mapAccumulator{"1 1": 1, "2 0": 1, "3 0": 1, "4 0": 1, "5 0": 1}
	if !reflect.DeepEqual(got, want) {
		t.Error("Got", got, "expected", want)
	}

	// Ignoring preterminals the conjuncts never diverge.
	got = countTree(t, NewCoPar(true), tree)
	want = mapAccumulator{"1 1": 1}
	if !reflect.DeepEqual(got, want) {
		t.Error("Got", got, "expected", want)
	}
}

func TestCoLenPar(t *testing.T) {
	got := countTree(t, CoLenPar{},
		"(S1 (NP (NP (DT the) (JJ big) (NN dog)) (CC and) (NP (NN cat))))")
	want := mapAccumulator{"-2 1": 1}
	if !reflect.DeepEqual(got, want) {
		t.Error("Got", got, "expected", want)
	}
}

func TestCoLenParMiddleConjunct(t *testing.T) {
	got := countTree(t, CoLenPar{},
		"(S1 (NP (NP (NN a)) (, ,) (NP (NN b) (NN c)) (CC and) (NP (NN d))))")
	want := mapAccumulator{"1 0": 1, "-1 1": 1}
	if !reflect.DeepEqual(got, want) {
		t.Error("Got", got, "expected", want)
	}
}

func TestCoLenParClampsDifference(t *testing.T) {
	got := countTree(t, CoLenPar{},
		"(S1 (NP (NP (NN a) (NN b) (NN c) (NN d) (NN e) (NN f) (NN g)) (CC and) (NP (NN h))))")
	want := mapAccumulator{"-5 1": 1}
	if !reflect.DeepEqual(got, want) {
		t.Error("Got", got, "expected", want)
	}
}

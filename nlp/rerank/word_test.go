package rerank

import (
	"reflect"
	"testing"

	"github.com/mjpost/extract-spfeatures/nlp/types"
)

const wordTree = "(S1 (S (NP (DT the) (NN dog)) (VP (VBD barked))))"

func TestWord(t *testing.T) {
	got := countTree(t, NewWord(1), wordTree)
	want := mapAccumulator{"the DT": 1, "dog NN": 1, "barked VBD": 1}
	if !reflect.DeepEqual(got, want) {
		t.Error("Got", got, "expected", want)
	}
}

func TestWordWithAncestors(t *testing.T) {
	got := countTree(t, NewWord(2), wordTree)
	want := mapAccumulator{"the DT NP": 1, "dog NN NP": 1, "barked VBD VP": 1}
	if !reflect.DeepEqual(got, want) {
		t.Error("Got", got, "expected", want)
	}
}

func TestWordSkipsShortAncestorChains(t *testing.T) {
	got := countTree(t, NewWord(2), "(S1 (NN word))")
	want := mapAccumulator{"word NN S1": 1}
	if !reflect.DeepEqual(got, want) {
		t.Error("Got", got, "expected", want)
	}
	if got := countTree(t, NewWord(3), "(S1 (NN word))"); len(got) != 0 {
		t.Error("Got", got, "expected no features above the root")
	}
}

func TestWProj(t *testing.T) {
	got := countTree(t, NewWProj(types.SemanticHead, false, 1), wordTree)
	want := mapAccumulator{"the DT NP": 1, "dog NP S": 1, "barked S S1": 1}
	if !reflect.DeepEqual(got, want) {
		t.Error("Got", got, "expected", want)
	}
}

func TestWProjNonmaximal(t *testing.T) {
	got := countTree(t, NewWProj(types.SemanticHead, true, 0), wordTree)
	want := mapAccumulator{"the DT": 1, "dog NN NP": 1, "barked VBD VP S": 1}
	if !reflect.DeepEqual(got, want) {
		t.Error("Got", got, "expected", want)
	}
}

package ptb

import (
	"strings"
	"testing"

	"github.com/mjpost/extract-spfeatures/nlp/types"
)

func mustParse(t *testing.T, line string, lowercase bool) *types.Tree {
	t.Helper()
	tree, err := ParseTree(line, lowercase)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestRoundTrip(t *testing.T) {
	line := "(S1 (S (NP (DT The) (NN dog)) (VP (VBD barked))))"
	tree := mustParse(t, line, false)
	if got := Format(tree); got != line {
		t.Errorf("Got %q expected %q", got, line)
	}
}

func TestDefaultRootLabel(t *testing.T) {
	tree := mustParse(t, "( (S (NP (NN dogs)) (VP (VBP bark))))", false)
	if tree.Cat(tree.Root()) != types.Intern("TOP") {
		t.Error("Got root label", tree.Cat(tree.Root()), "expected TOP")
	}
	want := "(TOP (S (NP (NN dogs)) (VP (VBP bark))))"
	if got := Format(tree); got != want {
		t.Errorf("Got %q expected %q", got, want)
	}
}

func TestLowercaseWordsOnly(t *testing.T) {
	tree := mustParse(t, "(S1 (NP (NNP Rolls-Royce)))", true)
	preterm := tree.Preterms[0]
	if tree.Cat(preterm) != types.Intern("NNP") {
		t.Error("Got tag", tree.Cat(preterm), "expected NNP")
	}
	if tree.Word(preterm) != types.Intern("rolls-royce") {
		t.Error("Got word", tree.Word(preterm), "expected rolls-royce")
	}
}

func TestSpans(t *testing.T) {
	tree := mustParse(t, "(S1 (S (NP (DT the) (NN dog)) (VP (VBD barked))))", false)
	if tree.NWords != 3 {
		t.Error("Got", tree.NWords, "words expected 3")
	}
	if len(tree.Preterms) != 3 {
		t.Error("Got", len(tree.Preterms), "preterminals expected 3")
	}
	s := tree.Child(tree.Root())
	np := tree.Child(s)
	vp := tree.Next(np)
	if tree.Left(s) != 0 || tree.Right(s) != 3 {
		t.Error("Got S span", tree.Left(s), tree.Right(s), "expected 0 3")
	}
	if tree.Left(np) != 0 || tree.Right(np) != 2 {
		t.Error("Got NP span", tree.Left(np), tree.Right(np), "expected 0 2")
	}
	if tree.Left(vp) != 2 || tree.Right(vp) != 3 {
		t.Error("Got VP span", tree.Left(vp), tree.Right(vp), "expected 2 3")
	}
}

func TestNodePredicates(t *testing.T) {
	tree := mustParse(t, "(S1 (S (NP (DT the) (NN dog)) (VP (VBD barked))))", false)
	root := tree.Root()
	s := tree.Child(root)
	np := tree.Child(s)
	dt := tree.Child(np)
	the := tree.Child(dt)
	if !tree.IsRoot(root) || tree.IsRoot(s) {
		t.Error("Root predicate failed")
	}
	if !tree.IsNonterminal(np) || tree.IsNonterminal(dt) {
		t.Error("Nonterminal predicate failed")
	}
	if !tree.IsPreterminal(dt) || tree.IsPreterminal(np) || tree.IsPreterminal(the) {
		t.Error("Preterminal predicate failed")
	}
	if !tree.IsTerminal(the) || tree.IsTerminal(dt) {
		t.Error("Terminal predicate failed")
	}
}

func TestCoordination(t *testing.T) {
	tree := mustParse(t, "(S1 (NP (NP (NNS cats)) (CC and) (NP (NNS dogs))))", false)
	outer := tree.Child(tree.Root())
	if !tree.IsCoordination(outer) {
		t.Error("Conjoined NP not marked as coordination")
	}
	first := tree.Child(outer)
	if tree.IsCoordination(first) {
		t.Error("Conjunct marked as coordination")
	}
}

func TestHeadAnnotation(t *testing.T) {
	tree := mustParse(t, "(S1 (S (NP (DT the) (NN dog)) (VP (VBD barked))))", false)
	s := tree.Child(tree.Root())
	np := tree.Child(s)
	vp := tree.Next(np)
	vbd := tree.Child(vp)
	nn := tree.Next(tree.Child(np))
	if tree.HeadChild(s, types.SyntacticHead) != vp {
		t.Error("Got head child", tree.HeadChild(s, types.SyntacticHead), "for S expected VP")
	}
	if tree.LexHead(s, types.SyntacticHead) != vbd {
		t.Error("Got lexical head", tree.LexHead(s, types.SyntacticHead), "for S expected VBD")
	}
	if tree.HeadChild(np, types.SyntacticHead) != nn {
		t.Error("Got head child", tree.HeadChild(np, types.SyntacticHead), "for NP expected NN")
	}
	if tree.LexHead(s, types.SemanticHead) != vbd {
		t.Error("Got semantic lexical head", tree.LexHead(s, types.SemanticHead), "for S expected VBD")
	}
}

// A final possessive marker heads the NP syntactically but not
// semantically.
func TestPossessiveHeads(t *testing.T) {
	tree := mustParse(t, "(S1 (NP (NNP John) (POS 's)))", false)
	np := tree.Child(tree.Root())
	nnp := tree.Child(np)
	pos := tree.Next(nnp)
	if tree.HeadChild(np, types.SyntacticHead) != pos {
		t.Error("Got syntactic head child", tree.HeadChild(np, types.SyntacticHead), "expected POS")
	}
	if tree.HeadChild(np, types.SemanticHead) != nnp {
		t.Error("Got semantic head child", tree.HeadChild(np, types.SemanticHead), "expected NNP")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		line, message string
	}{
		{"(S1 (NN dog)) extra", "trailing characters"},
		{"(S1 ())", "empty constituent"},
		{"(S1 (NN dog", "unterminated"},
		{"dog", "expected '('"},
	}
	for _, c := range cases {
		_, err := ParseTree(c.line, false)
		if err == nil || !strings.Contains(err.Error(), c.message) {
			t.Errorf("Got %v for %q expected %s error", err, c.line, c.message)
		}
	}
}

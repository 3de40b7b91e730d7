package rerank

import (
	"fmt"
	"strings"

	"github.com/mjpost/extract-spfeatures/nlp/types"
)

// Word records each word together with the categories of its first
// nanccats ancestors, starting at its part of speech.
type Word struct {
	nanccats int
	ident    string
}

func NewWord(nanccats int) *Word {
	return &Word{
		nanccats: nanccats,
		ident:    fmt.Sprintf("Word:%d", nanccats),
	}
}

func (w *Word) Identifier() string { return w.ident }

func (w *Word) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for _, node := range t.Preterms {
		w.countNode(t, node, acc)
	}
}

func (w *Word) countNode(t *types.Tree, node types.NodeID, acc accumulator) {
	f := make([]string, 0, w.nanccats+1)
	f = append(f, t.Word(node).String())
	for i := 0; i < w.nanccats; i++ {
		if node == types.NoNode {
			return
		}
		f = append(f, t.Cat(node).String())
		node = t.Parent(node)
	}
	acc.add(strings.Join(f, " "), 1)
}

// WProj records each word with its maximal projection, the chain of
// categories it is the lexical head of, plus nancs categories above
// that.
type WProj struct {
	htype             types.HeadType
	includeNonmaximal bool
	nancs             int
	ident             string
}

func NewWProj(htype types.HeadType, includeNonmaximal bool, nancs int) *WProj {
	return &WProj{
		htype:             htype,
		includeNonmaximal: includeNonmaximal,
		nancs:             nancs,
		ident: fmt.Sprintf("WProj:%s:%t:%d", htype, includeNonmaximal, nancs),
	}
}

func (w *WProj) Identifier() string { return w.ident }

func (w *WProj) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for _, node := range t.Preterms {
		w.countNode(t, node, acc)
	}
}

func (w *WProj) countNode(t *types.Tree, node types.NodeID, acc accumulator) {
	if t.IsPunctuation(node) {
		return
	}

	f := make([]string, 0, w.nancs+4)
	f = append(f, t.Word(node).String())

	for parent := t.Parent(node); parent != types.NoNode; parent = t.Parent(node) {
		if node == t.HeadChild(parent, w.htype) && !t.IsRoot(parent) {
			if w.includeNonmaximal {
				f = append(f, t.Cat(node).String())
			}
		} else {
			break
		}
		node = parent
	}

	for i := 0; node != types.NoNode && i <= w.nancs; i++ {
		f = append(f, t.Cat(node).String())
		node = t.Parent(node)
	}

	acc.add(strings.Join(f, " "), 1)
}

package rerank

import (
	"fmt"
	"strings"

	"github.com/mjpost/extract-spfeatures/nlp/types"
)

// fragment is a partial copy of a parse tree used as a feature key.
// Keys are the printed bracketed form, so a node with no children
// renders as its bare category.
type fragment struct {
	cat   types.Symbol
	child *fragment
	next  *fragment
}

func (f *fragment) format(sb *strings.Builder) {
	if f.child == nil {
		sb.WriteString(f.cat.String())
		return
	}
	sb.WriteByte('(')
	sb.WriteString(f.cat.String())
	for c := f.child; c != nil; c = c.next {
		sb.WriteByte(' ')
		c.format(sb)
	}
	sb.WriteByte(')')
}

func (f *fragment) String() string {
	var sb strings.Builder
	f.format(&sb)
	return sb.String()
}

func prevSibling(t *types.Tree, node types.NodeID) types.NodeID {
	parent := t.Parent(node)
	if parent == types.NoNode {
		return types.NoNode
	}
	prev := types.NoNode
	for c := t.Child(parent); c != types.NoNode; c = t.Next(c) {
		if c == node {
			return prev
		}
		prev = c
	}
	return types.NoNode
}

// lexicalizeType selects which preterminals keep their word in a tree
// fragment.
type lexicalizeType int

const (
	lexicalizeNone lexicalizeType = iota
	lexicalizeClosedClass
	lexicalizeFunctional
	lexicalizeAll
)

func (l lexicalizeType) String() string {
	switch l {
	case lexicalizeClosedClass:
		return "closed_class"
	case lexicalizeFunctional:
		return "functional"
	case lexicalizeAll:
		return "all"
	}
	return "none"
}

// NGramTree records, for every window of ngram words, the smallest
// tree fragment covering the window, optionally collapsing material
// outside it and climbing nancs extra ancestors.
type NGramTree struct {
	ngram      int
	lexicalize lexicalizeType
	collapse   bool
	nancs      int
	ident      string
}

func NewNGramTree(ngram int, lexicalize lexicalizeType, collapse bool, nancs int) *NGramTree {
	return &NGramTree{
		ngram:      ngram,
		lexicalize: lexicalize,
		collapse:   collapse,
		nancs:      nancs,
		ident:      fmt.Sprintf("NGramTree:%d:%s:%t:%d", ngram, lexicalize, collapse, nancs),
	}
}

func (g *NGramTree) Identifier() string { return g.ident }

func (g *NGramTree) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for i := 0; i+g.ngram < len(t.Preterms); i++ {
		t0 := t.Preterms[i]
		for t0 != types.NoNode && t.Right(t0) < i+g.ngram {
			t0 = t.Parent(t0)
		}
		for ianc := 0; ianc < g.nancs && t0 != types.NoNode; ianc++ {
			t0 = t.Parent(t0)
		}
		if t0 == types.NoNode {
			return
		}
		frag := g.selectiveCopy(t, t0, i, i+g.ngram, false)
		acc.add(frag.String(), 1)
	}
}

func (g *NGramTree) selectiveCopy(t *types.Tree, node types.NodeID, left, right int,
	copyNext bool) *fragment {
	if g.collapse {
		if t.Right(node) <= left {
			if next := t.Next(node); next != types.NoNode && copyNext {
				return g.selectiveCopy(t, next, left, right, copyNext)
			}
			return nil
		}
		if t.Left(node) >= right {
			return nil
		}
	}

	f := &fragment{cat: t.Cat(node)}
	if t.Child(node) != types.NoNode && t.Left(node) < right && t.Right(node) > left &&
		(t.IsNonterminal(node) ||
			g.lexicalize == lexicalizeAll ||
			(g.lexicalize == lexicalizeFunctional && t.IsFunctionWord(node)) ||
			(g.lexicalize == lexicalizeClosedClass && t.IsClosedClass(node))) {
		f.child = g.selectiveCopy(t, t.Child(node), left, right, true)
	}
	if copyNext && t.Next(node) != types.NoNode {
		f.next = g.selectiveCopy(t, t.Next(node), left, right, copyNext)
	}
	return f
}

// HeadTree records, for every word, the fragment rooted where the
// word stops being the head, collapsed around the head path.
type HeadTree struct {
	collapse   bool
	lexicalize bool
	nancs      int
	htype      types.HeadType
	ident      string
}

func NewHeadTree(collapse, lexicalize bool, nancs int, htype types.HeadType) *HeadTree {
	return &HeadTree{
		collapse:   collapse,
		lexicalize: lexicalize,
		nancs:      nancs,
		htype:      htype,
		ident:      fmt.Sprintf("HeadTree:%t:%t:%d:%s", collapse, lexicalize, nancs, htype),
	}
}

func (h *HeadTree) Identifier() string { return h.ident }

func (h *HeadTree) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for i, pt := range t.Preterms {
		t0 := pt
		for {
			parent := t.Parent(t0)
			if parent == types.NoNode {
				break
			}
			if t.HeadChild(parent, h.htype) != t0 {
				break
			}
			t0 = parent
		}
		for ianc := 0; ianc < h.nancs && t0 != types.NoNode; ianc++ {
			t0 = t.Parent(t0)
		}
		if t0 == types.NoNode {
			return
		}
		frag := h.selectiveCopy(t, t0, prevSibling(t, t0), i)
		acc.add(frag.String(), 1)
	}
}

// selectiveCopy keeps a node when its neighbourhood, padded by one
// sibling on each side under collapse, still touches the head word.
func (h *HeadTree) selectiveCopy(t *types.Tree, node, prev types.NodeID, headleft int) *fragment {
	if node == types.NoNode {
		return nil
	}

	if h.collapse {
		left := t.Left(node)
		if prev != types.NoNode {
			left = t.Left(prev)
		}
		right := t.Right(node)
		if next := t.Next(node); next != types.NoNode {
			right = t.Right(next)
		}
		if right <= headleft {
			return h.selectiveCopy(t, t.Next(node), node, headleft)
		}
		if left > headleft {
			return nil
		}
	}

	f := &fragment{cat: t.Cat(node)}
	if t.IsNonterminal(node) || (h.lexicalize && t.Left(node) == headleft) {
		f.child = h.selectiveCopy(t, t.Child(node), types.NoNode, headleft)
	}
	f.next = h.selectiveCopy(t, t.Next(node), node, headleft)
	return f
}

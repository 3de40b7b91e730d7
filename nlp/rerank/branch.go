package rerank

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mjpost/extract-spfeatures/nlp/types"
)

// RightBranch counts, for every non-punctuation node, whether it lies
// on the spine to the rightmost word. The two keys 0 and 1 reward or
// penalize right-branching structure globally.
type RightBranch struct{}

func (RightBranch) Identifier() string { return "RightBranch" }

func (RightBranch) countParse(parse *types.Parse, acc accumulator) {
	rightbranchCount(parse.Tree, parse.Tree.Root(), 1, acc)
}

func rightbranchCount(t *types.Tree, node types.NodeID, rightmost int, acc accumulator) int {
	if t.Next(node) != types.NoNode {
		rightmost = rightbranchCount(t, t.Next(node), rightmost, acc)
	}
	if t.IsPunctuation(node) {
		return rightmost
	}
	acc.add(strconv.Itoa(rightmost), 1)
	if t.IsNonterminal(node) {
		rightbranchCount(t, t.Child(node), rightmost, acc)
	}
	return 0
}

// LeftBranchLength buckets the depth of every purely left-branching
// chain by its binary log.
type LeftBranchLength struct{}

func (LeftBranchLength) Identifier() string { return "LeftBranchLength" }

func (LeftBranchLength) countParse(parse *types.Parse, acc accumulator) {
	leftbranchCount(parse.Tree, parse.Tree.Root(), 1, acc)
}

func leftbranchCount(t *types.Tree, node types.NodeID, leftmost int, acc accumulator) {
	if node == types.NoNode {
		return
	}
	if t.IsPunctuation(node) {
		leftbranchCount(t, t.Next(node), leftmost, acc)
		return
	}
	if t.IsPreterminal(node) {
		acc.add(strconv.Itoa(int(math.Log2(float64(leftmost)))), 1)
	} else {
		leftbranchCount(t, t.Child(node), leftmost+1, acc)
	}
	leftbranchCount(t, t.Next(node), 1, acc)
}

// RightBranchLength is the mirror image for right-branching chains.
type RightBranchLength struct{}

func (RightBranchLength) Identifier() string { return "RightBranchLength" }

func (RightBranchLength) countParse(parse *types.Parse, acc accumulator) {
	rightbranchLength(parse.Tree, parse.Tree.Root(), 1, acc)
}

func rightbranchLength(t *types.Tree, node types.NodeID, rightmost int, acc accumulator) int {
	if t.Next(node) != types.NoNode {
		rightmost = rightbranchLength(t, t.Next(node), rightmost, acc)
	}
	if t.IsPunctuation(node) {
		return rightmost
	}
	if t.IsPreterminal(node) {
		acc.add(strconv.Itoa(int(math.Log2(float64(rightmost)))), 1)
	} else {
		rightbranchLength(t, t.Child(node), rightmost+1, acc)
	}
	return 1
}

// RBContext records, for every non-head child, its category and the
// quantized distance from its lexical head to its right edge, in the
// context of the governing rule.
type RBContext struct {
	labelCoordination bool
	labelParent       bool
	labelGovernor     bool
	htype             types.HeadType
	ident             string
}

func NewRBContext(labelCoordination, labelParent, labelGovernor bool, htype types.HeadType) *RBContext {
	return &RBContext{
		labelCoordination: labelCoordination,
		labelParent:       labelParent,
		labelGovernor:     labelGovernor,
		htype:             htype,
		ident: fmt.Sprintf("RBContext:%t:%t:%t:%s", labelCoordination,
			labelParent, labelGovernor, htype),
	}
}

func (rb *RBContext) Identifier() string { return rb.ident }

func (rb *RBContext) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for n := range t.Nodes {
		rb.countNode(t, types.NodeID(n), acc)
	}
}

func (rb *RBContext) countNode(t *types.Tree, node types.NodeID, acc accumulator) {
	if !t.IsNonterminal(node) {
		return
	}
	hchild := t.HeadChild(node, rb.htype)
	if hchild == types.NoNode {
		return
	}
	lhchild := t.LexHead(hchild, rb.htype)
	if lhchild == types.NoNode {
		return
	}

	f := make([]string, 0, 8)
	if rb.labelCoordination && t.IsCoordination(node) {
		f = append(f, conjunctMarker)
	}
	if rb.labelParent {
		f = append(f, t.Cat(node).String())
	}
	if rb.labelGovernor {
		f = append(f, t.Cat(hchild).String(), quantize(t.Right(hchild)-t.Right(lhchild)))
	}

	for child := t.Child(node); child != types.NoNode; child = t.Next(child) {
		if child == hchild {
			f = append(f, postHeadMarker)
			continue
		}
		lchild := t.LexHead(child, rb.htype)
		if lchild == types.NoNode {
			continue
		}
		f = append(f, t.Cat(child).String(), quantize(t.Right(child)-t.Right(lchild)))
		acc.add(strings.Join(f, " "), 1)
		f = f[:len(f)-2]
	}
}

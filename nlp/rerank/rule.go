package rerank

import (
	"fmt"
	"strings"

	"github.com/mjpost/extract-spfeatures/nlp/types"
)

// annotationLevel controls how much lexical material a rule-shaped
// feature records about a node: nothing, the head's part of speech, or
// the head word itself.
type annotationLevel int

const (
	annNone annotationLevel = iota
	annPOS
	annLexical
)

func (a annotationLevel) String() string {
	switch a {
	case annPOS:
		return "pos"
	case annLexical:
		return "lexical"
	}
	return "none"
}

// ruleContext carries the annotation settings shared by the
// rule-shaped classes and knows how to spell out child and ancestor
// context.
type ruleContext struct {
	nanccats      int
	labelRoot     bool
	labelConjunct bool
	head          annotationLevel
	functional    annotationLevel
	all           annotationLevel
	htype         types.HeadType

	maxLevel annotationLevel
	ident    string
}

func newRuleContext(stem string, nanccats int, labelRoot, labelConjunct bool,
	head, functional, all annotationLevel, htype types.HeadType) ruleContext {
	maxLevel := head
	if functional > maxLevel {
		maxLevel = functional
	}
	if all > maxLevel {
		maxLevel = all
	}
	return ruleContext{
		nanccats:      nanccats,
		labelRoot:     labelRoot,
		labelConjunct: labelConjunct,
		head:          head,
		functional:    functional,
		all:           all,
		htype:         htype,
		maxLevel:      maxLevel,
		ident: fmt.Sprintf("%s:%d:%t:%t:%s:%s:%s:%s", stem, nanccats,
			labelRoot, labelConjunct, head, functional, all, htype),
	}
}

func (rc *ruleContext) Identifier() string { return rc.ident }

// pushChildFeatures appends the child's category and as much of its
// lexical head as the annotation settings ask for, tracking the
// highest level actually reached.
func (rc *ruleContext) pushChildFeatures(t *types.Tree, node, parent types.NodeID,
	f *[]string, highest *annotationLevel) {
	isHeadchild := node == t.HeadChild(parent, rc.htype)
	*f = append(*f, t.Cat(node).String())
	lexhead := t.LexHead(node, rc.htype)
	if lexhead == types.NoNode {
		return
	}
	if rc.all < annPOS &&
		(!t.IsFunctionWord(lexhead) || rc.functional < annPOS) &&
		(!isHeadchild || rc.head < annPOS) {
		return
	}
	if lexhead != node {
		*f = append(*f, headMarker, t.Cat(lexhead).String())
		if *highest < annPOS {
			*highest = annPOS
		}
	}
	if rc.all < annLexical &&
		(!t.IsFunctionWord(lexhead) || rc.functional < annLexical) &&
		(!isHeadchild || rc.head < annLexical) {
		return
	}
	*f = append(*f, t.Word(lexhead).String())
	if *highest < annLexical {
		*highest = annLexical
	}
}

// pushAncestorFeatures appends the chain of ancestor categories, the
// conjunct or adjunct position of each link if asked, and the
// non-root marker when the nearest bounding ancestor is itself
// embedded.
func (rc *ruleContext) pushAncestorFeatures(t *types.Tree, node types.NodeID, f *[]string) {
	*f = append(*f, endMarker)

	parent := t.Parent(node)
	for i := 0; i <= rc.nanccats && parent != types.NoNode; i++ {
		*f = append(*f, t.Cat(node).String())
		if rc.labelConjunct {
			if t.IsCoordination(parent) {
				if t.IsLastNonpunctuation(parent) {
					*f = append(*f, lastConjunctMarker)
				} else {
					*f = append(*f, conjunctMarker)
				}
			} else if t.IsAdjunction(parent) {
				if t.IsLastNonpunctuation(parent) {
					*f = append(*f, lastAdjunctMarker)
				} else {
					*f = append(*f, adjunctMarker)
				}
			}
		}
		node = parent
		parent = t.Parent(node)
	}

	if rc.labelRoot {
		for node = parent; node != types.NoNode; node = t.Parent(node) {
			if isBoundingNode(t, node) && !isBoundingNode(t, t.Parent(node)) {
				*f = append(*f, nonRootMarker)
				break
			}
		}
	}
}

// Rule records local trees, optionally lexicalized and extended with
// ancestor local trees and ancestor category chains.
type Rule struct {
	ruleContext
	nanctrees int
}

func NewRule(nanctrees, nanccats int, labelRoot, labelConjunct bool,
	head, functional, all annotationLevel, htype types.HeadType) *Rule {
	return &Rule{
		ruleContext: newRuleContext(fmt.Sprintf("Rule:%d", nanctrees), nanccats,
			labelRoot, labelConjunct, head, functional, all, htype),
		nanctrees: nanctrees,
	}
}

func (r *Rule) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for n := range t.Nodes {
		r.countNode(t, types.NodeID(n), acc)
	}
}

func (r *Rule) countNode(t *types.Tree, node types.NodeID, acc accumulator) {
	if !t.IsNonterminal(node) {
		return
	}

	f := make([]string, 0, 16)
	highest := annNone

	for child := t.Child(node); child != types.NoNode; child = t.Next(child) {
		r.pushChildFeatures(t, child, node, &f, &highest)
	}

	for i := 0; i < r.nanctrees && t.Parent(node) != types.NoNode; i++ {
		f = append(f, endMarker)
		parent := t.Parent(node)
		for child := t.Child(parent); child != types.NoNode; child = t.Next(child) {
			if child == node {
				f = append(f, childMarker, t.Cat(child).String())
			} else {
				r.pushChildFeatures(t, child, node, &f, &highest)
			}
		}
		node = parent
	}

	if highest != r.maxLevel {
		return
	}

	r.pushAncestorFeatures(t, node, &f)
	acc.add(strings.Join(f, " "), 1)
}

// NGram records sequences of fraglen adjacent children, padded with
// end markers at the rule edges and annotated with the sequence's
// position relative to the head child.
type NGram struct {
	ruleContext
	fraglen int
}

func NewNGram(fraglen, nanccats int, labelRoot, labelConjunct bool,
	head, functional, all annotationLevel, htype types.HeadType) *NGram {
	return &NGram{
		ruleContext: newRuleContext(fmt.Sprintf("NGram:%d", fraglen), nanccats,
			labelRoot, labelConjunct, head, functional, all, htype),
		fraglen: fraglen,
	}
}

func (g *NGram) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for n := range t.Nodes {
		g.countNode(t, types.NodeID(n), acc)
	}
}

func (g *NGram) countNode(t *types.Tree, node types.NodeID, acc accumulator) {
	if !t.IsNonterminal(node) {
		return
	}
	if t.NChildren(node) < g.fraglen {
		return
	}

	headchild := t.HeadChild(node, g.htype)

	children := []types.NodeID{types.NoNode}
	for child := t.Child(node); child != types.NoNode; child = t.Next(child) {
		children = append(children, child)
	}
	children = append(children, types.NoNode)

	headposition := preHeadMarker

	for start := 0; start+g.fraglen <= len(children); start++ {
		if children[start] == headchild {
			headposition = postHeadMarker
		}

		f := make([]string, 0, 16)
		highest := annNone
		includesHeadchild := false

		for pos := start; pos < start+g.fraglen; pos++ {
			child := children[pos]
			if child != types.NoNode {
				g.pushChildFeatures(t, child, node, &f, &highest)
			} else {
				f = append(f, endMarker)
			}
			if child == headchild {
				includesHeadchild = true
			}
		}

		f = append(f, headposition)

		if !includesHeadchild && g.head != annNone {
			if headchild != types.NoNode {
				g.pushChildFeatures(t, headchild, node, &f, &highest)
			} else {
				f = append(f, headMarker)
			}
		}

		if highest != g.maxLevel {
			return
		}

		g.pushAncestorFeatures(t, node, &f)
		acc.add(strings.Join(f, " "), 1)
	}
}

// NNGram is NGram with the head always annotated and the sequence's
// direction and distance from the head child recorded.
type NNGram struct {
	ruleContext
	fraglen  int
	headdir  bool
	headdist bool
}

func NewNNGram(fraglen, nanccats int, labelRoot, labelConjunct bool,
	head, functional, all annotationLevel, htype types.HeadType,
	headdir, headdist bool) *NNGram {
	return &NNGram{
		ruleContext: newRuleContext(fmt.Sprintf("NNGram:%d:%t:%t", fraglen,
			headdir, headdist), nanccats,
			labelRoot, labelConjunct, head, functional, all, htype),
		fraglen:  fraglen,
		headdir:  headdir,
		headdist: headdist,
	}
}

func (g *NNGram) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for n := range t.Nodes {
		g.countNode(t, types.NodeID(n), acc)
	}
}

func (g *NNGram) countNode(t *types.Tree, node types.NodeID, acc accumulator) {
	if !t.IsNonterminal(node) {
		return
	}

	headchild := t.HeadChild(node, g.htype)

	nchildren := 0
	headlocation := 0
	for child := t.Child(node); child != types.NoNode; child = t.Next(child) {
		if child == headchild {
			headlocation = nchildren
		}
		nchildren++
	}

	if nchildren+1 < g.fraglen {
		return
	}

	children := []types.NodeID{types.NoNode}
	for child := t.Child(node); child != types.NoNode; child = t.Next(child) {
		children = append(children, child)
	}
	children = append(children, types.NoNode)

	headposition := preHeadMarker

	for start := 0; start+g.fraglen <= len(children); start++ {
		if children[start] == headchild {
			headposition = postHeadMarker
		}

		f := make([]string, 0, 16)
		highest := annNone
		includesHeadchild := false

		for pos := start; pos < start+g.fraglen; pos++ {
			child := children[pos]
			if child != types.NoNode {
				g.pushChildFeatures(t, child, node, &f, &highest)
				if child == headchild {
					includesHeadchild = true
				}
			} else {
				f = append(f, endMarker)
			}
		}

		if g.headdir {
			if includesHeadchild {
				f = append(f, quantize(headlocation+1-start))
			} else {
				f = append(f, headposition)
			}
		}

		if g.headdist {
			if headlocation+1 < start {
				f = append(f, quantize(start-headlocation-1))
			} else if headlocation+1 >= start+g.fraglen {
				f = append(f, quantize(headlocation+2-(start+g.fraglen)))
			} else {
				f = append(f, quantize(0))
			}
		}

		if g.head != annNone {
			if headchild != types.NoNode {
				g.pushChildFeatures(t, headchild, node, &f, &highest)
			} else {
				f = append(f, headMarker)
			}
		}

		if highest != g.maxLevel {
			return
		}

		g.pushAncestorFeatures(t, node, &f)
		acc.add(strings.Join(f, " "), 1)
	}
}

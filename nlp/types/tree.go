package types

// NodeID addresses a node within its owning Tree's arena. Child,
// sibling and parent relations are indices rather than pointers, so a
// Tree is one allocation and back references cannot leak ownership.
type NodeID int32

const NoNode NodeID = -1

type Node struct {
	Cat          Symbol
	Left, Right  int32
	FirstChild   NodeID
	NextSibling  NodeID
	Parent       NodeID
	SynHeadChild NodeID
	SemHeadChild NodeID
	SynLexHead   NodeID
	SemLexHead   NodeID
	coordination bool
}

// Tree is one candidate parse. Nodes[0] is the root; the node order is
// the pre-order of construction. Preterms indexes preterminal nodes by
// string position. Trees are immutable once built.
type Tree struct {
	Nodes    []Node
	NWords   int
	Preterms []NodeID
}

// HeadType selects between the two head-annotation conventions carried
// on every node.
type HeadType int

const (
	SyntacticHead HeadType = iota
	SemanticHead
)

func (h HeadType) String() string {
	if h == SemanticHead {
		return "semantic"
	}
	return "syntactic"
}

func (t *Tree) Root() NodeID { return 0 }

func (t *Tree) Cat(n NodeID) Symbol { return t.Nodes[n].Cat }

func (t *Tree) Left(n NodeID) int { return int(t.Nodes[n].Left) }

func (t *Tree) Right(n NodeID) int { return int(t.Nodes[n].Right) }

func (t *Tree) Child(n NodeID) NodeID { return t.Nodes[n].FirstChild }

func (t *Tree) Next(n NodeID) NodeID { return t.Nodes[n].NextSibling }

func (t *Tree) Parent(n NodeID) NodeID { return t.Nodes[n].Parent }

func (t *Tree) HeadChild(n NodeID, htype HeadType) NodeID {
	if htype == SemanticHead {
		return t.Nodes[n].SemHeadChild
	}
	return t.Nodes[n].SynHeadChild
}

func (t *Tree) LexHead(n NodeID, htype HeadType) NodeID {
	if htype == SemanticHead {
		return t.Nodes[n].SemLexHead
	}
	return t.Nodes[n].SynLexHead
}

// Word returns the terminal symbol under a preterminal node.
func (t *Tree) Word(n NodeID) Symbol {
	return t.Nodes[t.Nodes[n].FirstChild].Cat
}

func (t *Tree) IsTerminal(n NodeID) bool {
	return t.Nodes[n].FirstChild == NoNode
}

func (t *Tree) IsPreterminal(n NodeID) bool {
	child := t.Nodes[n].FirstChild
	return child != NoNode && t.Nodes[child].FirstChild == NoNode
}

func (t *Tree) IsNonterminal(n NodeID) bool {
	child := t.Nodes[n].FirstChild
	return child != NoNode && t.Nodes[child].FirstChild != NoNode
}

func (t *Tree) IsRoot(n NodeID) bool {
	return t.Nodes[n].Parent == NoNode
}

func (t *Tree) IsPunctuation(n NodeID) bool {
	return punctuationTags[t.Nodes[n].Cat]
}

func (t *Tree) IsConjunction(n NodeID) bool {
	return conjunctionTags[t.Nodes[n].Cat]
}

func (t *Tree) IsFunctionWord(n NodeID) bool {
	return functionTags[t.Nodes[n].Cat]
}

// IsCoordination reports whether n dominates a conjunction that is
// neither its first nor its last child.
func (t *Tree) IsCoordination(n NodeID) bool {
	return t.Nodes[n].coordination
}

// IsAdjunction reports whether n looks like a Chomsky adjunction: a
// nonterminal with at least two children, one of which repeats the
// parent's category.
func (t *Tree) IsAdjunction(n NodeID) bool {
	if !t.IsNonterminal(n) || t.NChildren(n) < 2 {
		return false
	}
	for c := t.Nodes[n].FirstChild; c != NoNode; c = t.Nodes[c].NextSibling {
		if t.Nodes[c].Cat == t.Nodes[n].Cat {
			return true
		}
	}
	return false
}

// IsLastNonpunctuation reports whether no sibling after n is
// non-punctuation.
func (t *Tree) IsLastNonpunctuation(n NodeID) bool {
	for s := t.Nodes[n].NextSibling; s != NoNode; s = t.Nodes[s].NextSibling {
		if !t.IsPunctuation(s) {
			return false
		}
	}
	return true
}

func (t *Tree) IsClosedClass(n NodeID) bool {
	return closedClassTags[t.Nodes[n].Cat]
}

func (t *Tree) NChildren(n NodeID) int {
	count := 0
	for c := t.Nodes[n].FirstChild; c != NoNode; c = t.Nodes[c].NextSibling {
		count++
	}
	return count
}

// TreeBuilder assembles a Tree node by node. Children must be added in
// left-to-right order; Finish computes spans, head annotations and
// coordination flags and seals the tree.
type TreeBuilder struct {
	nodes     []Node
	lastChild []NodeID
}

func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{
		nodes:     make([]Node, 0, 64),
		lastChild: make([]NodeID, 0, 64),
	}
}

func (b *TreeBuilder) AddNode(cat Symbol, parent NodeID) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		Cat:          cat,
		FirstChild:   NoNode,
		NextSibling:  NoNode,
		Parent:       parent,
		SynHeadChild: NoNode,
		SemHeadChild: NoNode,
		SynLexHead:   NoNode,
		SemLexHead:   NoNode,
	})
	b.lastChild = append(b.lastChild, NoNode)
	if parent != NoNode {
		if b.lastChild[parent] == NoNode {
			b.nodes[parent].FirstChild = id
		} else {
			b.nodes[b.lastChild[parent]].NextSibling = id
		}
		b.lastChild[parent] = id
	}
	return id
}

func (b *TreeBuilder) Finish() *Tree {
	if len(b.nodes) == 0 {
		panic("Finish called on empty tree builder")
	}
	t := &Tree{Nodes: b.nodes}
	t.NWords = t.assignSpans(0, 0)
	t.Preterms = make([]NodeID, t.NWords)
	t.collectPreterms(0)
	for id := range t.Nodes {
		t.markCoordination(NodeID(id))
	}
	t.annotateHeads(0)
	return t
}

// assignSpans numbers terminals left to right and propagates the spans
// upward; returns the next free string position.
func (t *Tree) assignSpans(n NodeID, pos int) int {
	node := &t.Nodes[n]
	node.Left = int32(pos)
	if node.FirstChild == NoNode {
		node.Right = int32(pos + 1)
		return pos + 1
	}
	for c := node.FirstChild; c != NoNode; c = t.Nodes[c].NextSibling {
		pos = t.assignSpans(c, pos)
	}
	node.Right = int32(pos)
	return pos
}

func (t *Tree) collectPreterms(n NodeID) {
	if t.IsPreterminal(n) {
		t.Preterms[t.Nodes[n].Left] = n
		return
	}
	for c := t.Nodes[n].FirstChild; c != NoNode; c = t.Nodes[c].NextSibling {
		t.collectPreterms(c)
	}
}

func (t *Tree) markCoordination(n NodeID) {
	first := t.Nodes[n].FirstChild
	if first == NoNode {
		return
	}
	for c := t.Nodes[first].NextSibling; c != NoNode; c = t.Nodes[c].NextSibling {
		if t.Nodes[c].NextSibling != NoNode && t.IsConjunction(c) {
			t.Nodes[n].coordination = true
			return
		}
	}
}

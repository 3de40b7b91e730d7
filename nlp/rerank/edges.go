package rerank

import (
	"fmt"
	"strings"

	"github.com/mjpost/extract-spfeatures/nlp/types"
)

// Neighbours records each constituent's quantized width, category and
// the tags around its edges.
//
// The left loop starts inside the constituent rather than one tag
// before it. The off-by-one is kept because retraining against the
// corrected window changes every model.
type Neighbours struct {
	nleft  int
	nright int
	ident  string
}

func NewNeighbours(nleft, nright int) *Neighbours {
	return &Neighbours{
		nleft:  nleft,
		nright: nright,
		ident:  fmt.Sprintf("Neighbours:%d:%d", nleft, nright),
	}
}

func (e *Neighbours) Identifier() string { return e.ident }

func (e *Neighbours) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for n := range t.Nodes {
		node := types.NodeID(n)
		if !t.IsNonterminal(node) {
			continue
		}
		left, right := t.Left(node), t.Right(node)

		f := make([]string, 0, e.nleft+e.nright+2)
		f = append(f, quantize(right-left), t.Cat(node).String())
		for i := 0; i < e.nleft; i++ {
			if i <= left {
				f = append(f, t.Cat(t.Preterms[left-i]).String())
			} else {
				f = append(f, endMarker)
			}
		}
		for i := 0; i < e.nright; i++ {
			if right+i < len(t.Preterms) {
				f = append(f, t.Cat(t.Preterms[right+i]).String())
			} else {
				f = append(f, endMarker)
			}
		}
		acc.add(strings.Join(f, " "), 1)
	}
}

// WordNeighbours is Neighbours over words instead of tags, with an
// optional binned length. It shares the same left-window quirk.
type WordNeighbours struct {
	binnedLength bool
	nleft        int
	nright       int
	ident        string
}

func NewWordNeighbours(binnedLength bool, nleft, nright int) *WordNeighbours {
	return &WordNeighbours{
		binnedLength: binnedLength,
		nleft:        nleft,
		nright:       nright,
		ident:        fmt.Sprintf("WordNeighbours:%t:%d:%d", binnedLength, nleft, nright),
	}
}

func (e *WordNeighbours) Identifier() string { return e.ident }

func (e *WordNeighbours) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for n := range t.Nodes {
		node := types.NodeID(n)
		if !t.IsNonterminal(node) {
			continue
		}
		left, right := t.Left(node), t.Right(node)

		f := make([]string, 0, e.nleft+e.nright+2)
		if e.binnedLength {
			f = append(f, quantize(right-left))
		}
		f = append(f, t.Cat(node).String())
		for i := 0; i < e.nleft; i++ {
			if i <= left {
				f = append(f, t.Word(t.Preterms[left-i]).String())
			} else {
				f = append(f, endMarker)
			}
		}
		for i := 0; i < e.nright; i++ {
			if right+i < len(t.Preterms) {
				f = append(f, t.Word(t.Preterms[right+i]).String())
			} else {
				f = append(f, endMarker)
			}
		}
		acc.add(strings.Join(f, " "), 1)
	}
}

// Edges records the tags crossing each constituent's two boundaries.
type Edges struct {
	binnedLength bool
	nleftprec    int
	nleftsucc    int
	nrightprec   int
	nrightsucc   int
	ident        string
}

func NewEdges(binnedLength bool, nleftprec, nleftsucc, nrightprec, nrightsucc int) *Edges {
	return &Edges{
		binnedLength: binnedLength,
		nleftprec:    nleftprec,
		nleftsucc:    nleftsucc,
		nrightprec:   nrightprec,
		nrightsucc:   nrightsucc,
		ident: fmt.Sprintf("Edges:%t:%d:%d:%d:%d", binnedLength,
			nleftprec, nleftsucc, nrightprec, nrightsucc),
	}
}

func (e *Edges) Identifier() string { return e.ident }

func (e *Edges) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for n := range t.Nodes {
		node := types.NodeID(n)
		if !t.IsNonterminal(node) {
			continue
		}
		f := e.edgeKey(t, node, false)
		acc.add(strings.Join(f, " "), 1)
	}
}

// edgeKey collects the boundary context, over words when lexical is
// set and over tags otherwise.
func (e *Edges) edgeKey(t *types.Tree, node types.NodeID, lexical bool) []string {
	left, right := t.Left(node), t.Right(node)
	nwords := len(t.Preterms)
	token := func(pt types.NodeID) string {
		if lexical {
			return t.Word(pt).String()
		}
		return t.Cat(pt).String()
	}

	f := make([]string, 0, e.nleftprec+e.nleftsucc+e.nrightprec+e.nrightsucc+2)
	if e.binnedLength {
		f = append(f, quantize(right-left))
	}
	f = append(f, t.Cat(node).String())
	for i := 1; i <= e.nleftprec; i++ {
		if i <= left {
			f = append(f, token(t.Preterms[left-i]))
		} else {
			f = append(f, endMarker)
		}
	}
	for i := 0; i < e.nleftsucc; i++ {
		if left+i < nwords {
			f = append(f, token(t.Preterms[left+i]))
		} else {
			f = append(f, endMarker)
		}
	}
	for i := 1; i <= e.nrightprec; i++ {
		if i <= right {
			f = append(f, token(t.Preterms[right-i]))
		} else {
			f = append(f, endMarker)
		}
	}
	for i := 0; i < e.nrightsucc; i++ {
		if right+i < nwords {
			f = append(f, token(t.Preterms[right+i]))
		} else {
			f = append(f, endMarker)
		}
	}
	return f
}

// WordEdges is Edges over words.
type WordEdges struct {
	Edges
}

func NewWordEdges(binnedLength bool, nleftprec, nleftsucc, nrightprec, nrightsucc int) *WordEdges {
	e := &WordEdges{Edges: *NewEdges(binnedLength, nleftprec, nleftsucc, nrightprec, nrightsucc)}
	e.ident = fmt.Sprintf("WordEdges:%t:%d:%d:%d:%d", binnedLength,
		nleftprec, nleftsucc, nrightprec, nrightsucc)
	return e
}

func (e *WordEdges) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for n := range t.Nodes {
		node := types.NodeID(n)
		if !t.IsNonterminal(node) {
			continue
		}
		f := e.edgeKey(t, node, true)
		acc.add(strings.Join(f, " "), 1)
	}
}

// WEdges records tag and word context at both boundaries with
// independent window sizes for each.
type WEdges struct {
	binnedLength bool
	nleftprec    int
	nleftprecw   int
	nleftsucc    int
	nleftsuccw   int
	nrightprec   int
	nrightprecw  int
	nrightsucc   int
	nrightsuccw  int
	ident        string
}

func NewWEdges(binnedLength bool, nleftprec, nleftprecw, nleftsucc, nleftsuccw,
	nrightprec, nrightprecw, nrightsucc, nrightsuccw int) *WEdges {
	return &WEdges{
		binnedLength: binnedLength,
		nleftprec:    nleftprec,
		nleftprecw:   nleftprecw,
		nleftsucc:    nleftsucc,
		nleftsuccw:   nleftsuccw,
		nrightprec:   nrightprec,
		nrightprecw:  nrightprecw,
		nrightsucc:   nrightsucc,
		nrightsuccw:  nrightsuccw,
		ident: fmt.Sprintf("WEdges:%t:%d:%d:%d:%d:%d:%d:%d:%d", binnedLength,
			nleftprec, nleftprecw, nleftsucc, nleftsuccw,
			nrightprec, nrightprecw, nrightsucc, nrightsuccw),
	}
}

func (e *WEdges) Identifier() string { return e.ident }

func (e *WEdges) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for n := range t.Nodes {
		node := types.NodeID(n)
		if !t.IsNonterminal(node) {
			continue
		}
		left, right := t.Left(node), t.Right(node)
		nwords := len(t.Preterms)

		f := make([]string, 0, 16)
		if e.binnedLength {
			f = append(f, quantize(right-left))
		}
		f = append(f, t.Cat(node).String())

		for i := 1; i <= e.nleftprec; i++ {
			if i <= left {
				f = append(f, t.Cat(t.Preterms[left-i]).String())
			} else {
				f = append(f, endMarker)
			}
		}
		for i := 1; i <= e.nleftprecw; i++ {
			if i <= left {
				f = append(f, t.Word(t.Preterms[left-i]).String())
			} else {
				f = append(f, endMarker)
			}
		}
		for i := 0; i < e.nleftsucc; i++ {
			if left+i < nwords {
				f = append(f, t.Cat(t.Preterms[left+i]).String())
			} else {
				f = append(f, endMarker)
			}
		}
		for i := 0; i < e.nleftsuccw; i++ {
			if left+i < nwords {
				f = append(f, t.Word(t.Preterms[left+i]).String())
			} else {
				f = append(f, endMarker)
			}
		}
		for i := 1; i <= e.nrightprec; i++ {
			if i <= right {
				f = append(f, t.Cat(t.Preterms[right-i]).String())
			} else {
				f = append(f, endMarker)
			}
		}
		for i := 1; i <= e.nrightprecw; i++ {
			if i <= right {
				f = append(f, t.Word(t.Preterms[right-i]).String())
			} else {
				f = append(f, endMarker)
			}
		}
		for i := 0; i < e.nrightsucc; i++ {
			if right+i < nwords {
				f = append(f, t.Cat(t.Preterms[right+i]).String())
			} else {
				f = append(f, endMarker)
			}
		}
		for i := 0; i < e.nrightsuccw; i++ {
			if right+i < nwords {
				f = append(f, t.Word(t.Preterms[right+i]).String())
			} else {
				f = append(f, endMarker)
			}
		}
		acc.add(strings.Join(f, " "), 1)
	}
}

// EdgeSpec describes one side of one boundary for WSEdges: how many
// punctuation slots, tag slots, closed-class slots and word slots to
// collect, and how many letters to keep of each word.
type EdgeSpec struct {
	Punct   int
	POS     int
	Closed  int
	Word    int
	NSuffix int
}

func (e EdgeSpec) identifier() string {
	return fmt.Sprintf("%d:%d:%d:%d:%d", e.Punct, e.POS, e.Closed, e.Word, e.NSuffix)
}

func (e EdgeSpec) width() int {
	w := e.Punct
	if e.POS > w {
		w = e.POS
	}
	if e.Word > w {
		w = e.Word
	}
	return w
}

func (e EdgeSpec) push(t *types.Tree, position, direction int, f *[]string) {
	n := len(t.Preterms)

	for i := 0; i < e.Punct; i++ {
		j := position + i*direction
		switch {
		case j < 0 || j >= n:
			*f = append(*f, endMarker)
		case t.IsPunctuation(t.Preterms[j]):
			*f = append(*f, t.Cat(t.Preterms[j]).String())
		default:
			*f = append(*f, zeroMarker)
		}
	}

	for i := 0; i < e.POS; i++ {
		j := position + i*direction
		if j < 0 || j >= n {
			*f = append(*f, endMarker)
		} else {
			*f = append(*f, t.Cat(t.Preterms[j]).String())
		}
	}

	for i := 0; i < e.Closed; i++ {
		j := position + i*direction
		switch {
		case j < 0 || j >= n:
			*f = append(*f, endMarker)
		case t.IsClosedClass(t.Preterms[j]) || t.IsPunctuation(t.Preterms[j]):
			*f = append(*f, t.Word(t.Preterms[j]).String())
		default:
			*f = append(*f, t.Cat(t.Preterms[j]).String())
		}
	}

	for i := 0; i < e.Word; i++ {
		j := position + i*direction
		if j < 0 || j >= n {
			*f = append(*f, endMarker)
		} else {
			*f = append(*f, wordSuffix(t.Word(t.Preterms[j]).String(), e.NSuffix))
		}
	}
}

// WSEdges layers punctuation, tag, closed-class and word-suffix
// context on each side of both constituent boundaries.
type WSEdges struct {
	leftleft     EdgeSpec
	leftright    EdgeSpec
	rightleft    EdgeSpec
	rightright   EdgeSpec
	binnedLength bool
	ident        string
}

func NewWSEdges(leftleft, leftright, rightleft, rightright EdgeSpec, binnedLength bool) *WSEdges {
	return &WSEdges{
		leftleft:     leftleft,
		leftright:    leftright,
		rightleft:    rightleft,
		rightright:   rightright,
		binnedLength: binnedLength,
		ident: fmt.Sprintf("WSEdges:%t:ll%s:lr%s:rl%s:rr%s", binnedLength,
			leftleft.identifier(), leftright.identifier(),
			rightleft.identifier(), rightright.identifier()),
	}
}

func (e *WSEdges) Identifier() string { return e.ident }

func (e *WSEdges) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for n := range t.Nodes {
		node := types.NodeID(n)
		if !t.IsNonterminal(node) {
			continue
		}
		left, right := t.Left(node), t.Right(node)
		nwords := len(t.Preterms)

		// The window must not reach across the opposite boundary or
		// off either end of the sentence.
		if left+e.leftright.width() > right || left+e.rightleft.width() > right {
			continue
		}
		if left+1 < e.leftleft.width() {
			continue
		}
		if right+e.rightright.width() > nwords {
			continue
		}

		f := make([]string, 0, 16)
		f = append(f, t.Cat(node).String())
		if e.binnedLength {
			f = append(f, quantize(right-left))
		}
		e.leftleft.push(t, left-1, -1, &f)
		e.leftright.push(t, left, 1, &f)
		e.rightleft.push(t, right-1, -1, &f)
		e.rightright.push(t, right, 1, &f)

		acc.add(strings.Join(f, " "), 1)
	}
}

// Heavy classifies constituents by quantized width, distance from the
// end of the sentence, and the punctuation at and after their right
// boundary.
type Heavy struct{}

func (Heavy) Identifier() string { return "Heavy" }

func (Heavy) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for n := range t.Nodes {
		node := types.NodeID(n)
		if !t.IsNonterminal(node) {
			continue
		}
		left, right := t.Left(node), t.Right(node)
		nwords := len(t.Preterms)

		finalPunct := endMarker
		if t.IsPunctuation(t.Preterms[right-1]) {
			finalPunct = t.Word(t.Preterms[right-1]).String()
		}
		followingPunct := endMarker
		if right < nwords && t.IsPunctuation(t.Preterms[right]) {
			followingPunct = t.Word(t.Preterms[right]).String()
		}

		key := quantize(right-left) + " " + quantize(nwords-right) + " " +
			t.Cat(node).String() + " " + finalPunct + " " + followingPunct
		acc.add(key, 1)
	}
}

package rerank

import (
	"fmt"

	"github.com/mjpost/extract-spfeatures/nlp/types"
)

// CoPar scores the structural parallelism of adjacent conjuncts. Each
// key is a depth from 1 to 5 and a verdict: 1 when the conjuncts match
// to that depth, 0 when they diverge above it.
type CoPar struct {
	ignorePreterms bool
	ident          string
}

func NewCoPar(ignorePreterms bool) *CoPar {
	return &CoPar{
		ignorePreterms: ignorePreterms,
		ident:          fmt.Sprintf("CoPar:%t", ignorePreterms),
	}
}

func (c *CoPar) Identifier() string { return c.ident }

func (c *CoPar) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for n := range t.Nodes {
		node := types.NodeID(n)
		if !t.IsCoordination(node) {
			continue
		}
		for depth := 1; depth <= 5; depth++ {
			last := types.NoNode
			for child := t.Child(node); child != types.NoNode; child = t.Next(child) {
				if t.IsPunctuation(child) || t.IsConjunction(child) {
					continue
				}
				if last != types.NoNode {
					if m := c.match(t, depth, last, child); m != -1 {
						acc.add(fmt.Sprintf("%d %d", depth, m), 1)
					}
				}
				last = child
			}
		}
	}
}

// match returns 1 if the two subtrees agree to depth, 0 if they
// diverge, and -1 if they agree but bottom out first.
func (c *CoPar) match(t *types.Tree, depth int, n1, n2 types.NodeID) int {
	if t.Cat(n1) != t.Cat(n2) {
		return 0
	}
	if depth == 1 {
		return 1
	}
	if t.IsPreterminal(n1) {
		return -1
	}
	return c.matches(t, depth-1, t.Child(n1), t.Child(n2))
}

func (c *CoPar) matches(t *types.Tree, depth int, n1, n2 types.NodeID) int {
	if c.ignorePreterms {
		for n1 != types.NoNode && t.IsPreterminal(n1) {
			n1 = t.Next(n1)
		}
		for n2 != types.NoNode && t.IsPreterminal(n2) {
			n2 = t.Next(n2)
		}
	}

	if n1 == types.NoNode {
		if n2 == types.NoNode {
			return -1
		}
		return 0
	}
	if n2 == types.NoNode {
		return 0
	}

	m1 := c.match(t, depth, n1, n2)
	m2 := c.matches(t, depth, t.Next(n1), t.Next(n2))
	switch {
	case m1 == 0 || m2 == 0:
		return 0
	case m1 == 1 || m2 == 1:
		return 1
	default:
		return -1
	}
}

// CoLenPar records the clamped length difference of adjacent
// conjuncts and whether the second conjunct ends the coordination.
type CoLenPar struct{}

func (CoLenPar) Identifier() string { return "CoLenPar" }

func (CoLenPar) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for n := range t.Nodes {
		node := types.NodeID(n)
		if !t.IsCoordination(node) {
			continue
		}
		last := types.NoNode
		lastSize := 0
		for child := t.Child(node); child != types.NoNode; child = t.Next(child) {
			if t.IsPunctuation(child) || t.IsConjunction(child) {
				continue
			}
			size := t.Right(child) - t.Left(child)
			if last != types.NoNode {
				dsize := size - lastSize
				if dsize > 4 {
					dsize = 5
				} else if dsize < -4 {
					dsize = -5
				}
				isLast := 0
				if t.Next(child) == types.NoNode {
					isLast = 1
				}
				acc.add(fmt.Sprintf("%d %d", dsize, isLast), 1)
			}
			last = child
			lastSize = size
		}
	}
}

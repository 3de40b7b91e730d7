// Package eval scores parses against gold trees by labeled
// constituent brackets.
package eval

import (
	"github.com/mjpost/extract-spfeatures/nlp/types"
)

func Precision(truePositives, testPositives int) float64 {
	return float64(truePositives) / float64(testPositives)
}

func Recall(truePositives, conditionPositives int) float64 {
	return float64(truePositives) / float64(conditionPositives)
}

func F1(precision, recall float64) float64 {
	return 2.0 * (precision * recall) / (precision + recall)
}

// Edge is a labeled constituent span.
type Edge struct {
	Cat         types.Symbol
	Left, Right int
}

// EdgeSet is a multiset of labeled spans.
type EdgeSet map[Edge]int

// TreeEdges collects the scorable edges of a tree: every nonterminal
// node except the root and the preterminals.
func TreeEdges(t *types.Tree) EdgeSet {
	edges := make(EdgeSet)
	for id := range t.Nodes {
		node := types.NodeID(id)
		if t.IsRoot(node) || !t.IsNonterminal(node) {
			continue
		}
		edges[Edge{t.Cat(node), t.Left(node), t.Right(node)}]++
	}
	return edges
}

func (s EdgeSet) Size() int {
	size := 0
	for _, count := range s {
		size += count
	}
	return size
}

// Intersect returns the size of the multiset intersection.
func (s EdgeSet) Intersect(other EdgeSet) int {
	common := 0
	for edge, count := range s {
		if otherCount, exists := other[edge]; exists {
			if otherCount < count {
				common += otherCount
			} else {
				common += count
			}
		}
	}
	return common
}

type Result struct {
	TP, FP, FN int
	Other      interface{}
}

// Bracket scores a test edge set against the gold edge set.
func Bracket(test, gold EdgeSet) *Result {
	common := test.Intersect(gold)
	return &Result{
		TP: common,
		FP: test.Size() - common,
		FN: gold.Size() - common,
	}
}

func (r *Result) Incorrect() int {
	return r.FP + r.FN
}

func (r *Result) TestPositives() int {
	return r.TP + r.FP
}

func (r *Result) ConditionPositives() int {
	return r.TP + r.FN
}

func (r *Result) Precision() float64 {
	return Precision(r.TP, r.TestPositives())
}

func (r *Result) Recall() float64 {
	return Recall(r.TP, r.ConditionPositives())
}

func (r *Result) F1() float64 {
	return F1(r.Precision(), r.Recall())
}

type Total struct {
	Result
	Exact, Population int
}

func (t *Total) Add(r *Result) {
	t.TP += r.TP
	t.FP += r.FP
	t.FN += r.FN
	if r.Incorrect() == 0 {
		t.Exact += 1
	}
	t.Population += 1
}

func (t *Total) ExactMatch() float64 {
	return float64(t.Exact) / float64(t.Population)
}

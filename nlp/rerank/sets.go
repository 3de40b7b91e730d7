package rerank

import (
	"fmt"
	"log"

	"github.com/mjpost/extract-spfeatures/nlp/types"
)

// The named feature sets. Each builder method appends its classes in
// model order; since pruning assigns dense ids class by class, this
// order is part of the model format and must not change.

type setBuilder struct {
	classes []*FeatureClass
}

func (b *setBuilder) add(c counter) {
	b.classes = append(b.classes, newClass(c))
}

// Shorthands for the argument combinations the sets use over and over.

func rule(nanctrees, nanccats int, labelRoot, labelConjunct bool) *Rule {
	return NewRule(nanctrees, nanccats, labelRoot, labelConjunct,
		annNone, annNone, annNone, types.SyntacticHead)
}

func lexRule(head, functional annotationLevel) *Rule {
	return NewRule(0, 0, false, false, head, functional, annNone, types.SyntacticHead)
}

func ngram(fraglen int, labelRoot, labelConjunct bool) *NGram {
	return NewNGram(fraglen, 1, labelRoot, labelConjunct,
		annNone, annNone, annNone, types.SyntacticHead)
}

func lexNGram(fraglen int, labelRoot, labelConjunct bool, head, functional annotationLevel) *NGram {
	return NewNGram(fraglen, 1, labelRoot, labelConjunct,
		head, functional, annNone, types.SyntacticHead)
}

// headNGram is the NGram variant annotated with head direction and
// distance.
func headNGram(fraglen int, labelRoot, labelConjunct bool, head, functional annotationLevel) *NNGram {
	return NewNNGram(fraglen, 1, labelRoot, labelConjunct,
		head, functional, annNone, types.SyntacticHead, true, true)
}

func wproj() *WProj {
	return NewWProj(types.SemanticHead, false, 1)
}

// Boundary contexts shared by the edge-based sets. The digit suffix is
// how many tokens beyond the boundary the context covers.
var (
	edgeEmpty   = EdgeSpec{}
	edgePunct1  = EdgeSpec{Punct: 1}
	edgePOS1    = EdgeSpec{Punct: 1, POS: 1}
	edgeClosed1 = EdgeSpec{Punct: 1, POS: 1, Closed: 1}
	edgeWord1   = EdgeSpec{Punct: 1, POS: 1, Closed: 1, Word: 1}
	edgePunct2  = EdgeSpec{Punct: 2}
	edgePOS2    = EdgeSpec{Punct: 2, POS: 1}
	edgeClosed2 = EdgeSpec{Punct: 2, POS: 1, Closed: 1}
	edgeWord2   = EdgeSpec{Punct: 2, POS: 1, Closed: 1, Word: 1}
)

func (b *setBuilder) conll() {
	b.add(NLogP{})

	b.add(rule(0, 0, false, false))
	b.add(rule(0, 1, false, false))
	b.add(rule(0, 0, true, false))
	b.add(rule(0, 0, false, true))
	b.add(lexRule(annLexical, annNone))
	b.add(lexRule(annNone, annLexical))
	b.add(lexRule(annLexical, annLexical))
	b.add(rule(1, 0, false, false))
	b.add(rule(1, 1, false, false))

	b.add(ngram(1, false, true))
	b.add(ngram(2, true, true))
	b.add(ngram(3, true, true))
	b.add(lexNGram(2, false, false, annLexical, annNone))
	b.add(lexNGram(2, false, false, annNone, annLexical))

	b.add(NewWord(1))
	b.add(NewWord(2))

	b.add(wproj())

	b.add(RightBranch{})

	b.add(Heavy{})

	b.add(NewNGramTree(2, lexicalizeNone, true, 0))
	b.add(NewNGramTree(2, lexicalizeAll, true, 0))
	b.add(NewNGramTree(3, lexicalizeFunctional, true, 0))

	b.add(NewHeadTree(true, false, 0, types.SyntacticHead))
	b.add(NewHeadTree(true, false, 0, types.SemanticHead))
	b.add(NewHeadTree(true, true, 0, types.SemanticHead))

	b.add(NewHeads(2, false, false, types.SyntacticHead))
	b.add(NewHeads(2, true, true, types.SyntacticHead))
	b.add(NewHeads(2, true, true, types.SemanticHead))
	b.add(NewHeads(3, false, false, types.SyntacticHead))

	b.add(NewNeighbours(0, 0))
	b.add(NewNeighbours(0, 1))
	b.add(NewNeighbours(1, 0))

	b.add(NewCoPar(false))

	b.add(CoLenPar{})
}

func (b *setBuilder) splh(local, nngram bool) {
	b.add(NLogP{})
	b.add(RightBranch{})
	b.add(Heavy{})

	b.add(NewRBContext(false, false, false, types.SyntacticHead))
	b.add(NewRBContext(false, true, false, types.SyntacticHead))
	b.add(NewRBContext(false, true, true, types.SyntacticHead))
	b.add(NewRBContext(true, false, false, types.SyntacticHead))
	b.add(NewRBContext(true, true, false, types.SyntacticHead))
	b.add(NewRBContext(true, true, true, types.SyntacticHead))

	b.add(rule(0, 0, false, false))
	b.add(rule(1, 0, false, false))
	b.add(rule(1, 1, true, false))

	b.add(rule(0, 1, false, false))
	b.add(rule(0, 0, true, false))
	b.add(rule(0, 0, false, true))
	b.add(lexRule(annLexical, annNone))
	b.add(lexRule(annNone, annLexical))
	b.add(lexRule(annLexical, annLexical))

	b.add(ngram(1, false, true))
	b.add(ngram(2, true, true))
	b.add(ngram(3, true, true))
	b.add(lexNGram(2, false, false, annLexical, annNone))
	b.add(lexNGram(2, false, false, annNone, annLexical))

	if nngram {
		b.add(headNGram(1, false, true, annNone, annNone))
		b.add(headNGram(2, true, true, annNone, annNone))
		b.add(headNGram(3, true, true, annNone, annNone))
		b.add(headNGram(2, false, false, annLexical, annNone))
		b.add(headNGram(2, false, false, annLexical, annLexical))
	}

	b.add(NewWord(1))
	b.add(NewWord(2))

	b.add(wproj())

	b.add(NewHeadTree(true, false, 0, types.SyntacticHead))
	b.add(NewHeadTree(true, false, 0, types.SemanticHead))
	b.add(NewHeadTree(true, true, 0, types.SemanticHead))

	b.add(NewHeads(2, false, false, types.SyntacticHead))
	b.add(NewHeads(2, true, true, types.SyntacticHead))
	b.add(NewHeads(2, true, true, types.SemanticHead))
	b.add(NewHeads(3, false, false, types.SyntacticHead))

	const maxwidth, maxsumwidth = 2, 3

	for _, binned := range []bool{false, true} {
		for lp := 0; lp <= maxwidth; lp++ {
			for ls := 0; ls <= maxwidth; ls++ {
				for rp := 0; rp <= maxwidth; rp++ {
					for rs := 0; rs <= maxwidth; rs++ {
						if lp+ls+rp+rs <= maxsumwidth {
							b.add(NewEdges(binned, lp, ls, rp, rs))
						}
					}
				}
			}
		}
	}

	for _, binned := range []bool{false, true} {
		for lp := 0; lp <= maxwidth; lp++ {
			for ls := 0; ls <= maxwidth; ls++ {
				for rp := 0; rp <= maxwidth; rp++ {
					for rs := 0; rs <= maxwidth; rs++ {
						if lp+ls+rp+rs <= maxsumwidth {
							b.add(NewWordEdges(binned, lp, ls, rp, rs))
						}
					}
				}
			}
		}
	}

	if !local {
		b.add(NewNGramTree(2, lexicalizeNone, true, 0))
		b.add(NewNGramTree(2, lexicalizeAll, true, 0))
		b.add(NewNGramTree(3, lexicalizeFunctional, true, 0))

		b.add(NewCoPar(false))
		b.add(CoLenPar{})
	}
}

func (b *setBuilder) splhSuffix(nsuffix int, local bool) {
	b.add(NLogP{})
	b.add(RightBranch{})
	b.add(Heavy{})

	b.add(NewRBContext(false, false, false, types.SyntacticHead))
	b.add(NewRBContext(false, true, false, types.SyntacticHead))
	b.add(NewRBContext(false, true, true, types.SyntacticHead))
	b.add(NewRBContext(true, false, false, types.SyntacticHead))
	b.add(NewRBContext(true, true, false, types.SyntacticHead))
	b.add(NewRBContext(true, true, true, types.SyntacticHead))

	b.add(rule(0, 0, false, false))
	b.add(rule(1, 0, false, false))
	b.add(rule(1, 1, true, false))

	b.add(rule(0, 1, false, false))
	b.add(rule(0, 0, true, false))
	b.add(rule(0, 0, false, true))
	b.add(lexRule(annLexical, annNone))
	b.add(lexRule(annNone, annLexical))
	b.add(lexRule(annLexical, annLexical))

	b.add(ngram(1, false, true))
	b.add(ngram(2, true, true))
	b.add(ngram(3, true, true))
	b.add(lexNGram(2, false, false, annLexical, annNone))
	b.add(lexNGram(2, false, false, annNone, annLexical))

	b.add(NewWord(1))
	b.add(NewWord(2))

	b.add(wproj())

	b.add(NewHeadTree(true, false, 0, types.SyntacticHead))
	b.add(NewHeadTree(true, false, 0, types.SemanticHead))
	b.add(NewHeadTree(true, true, 0, types.SemanticHead))

	b.add(NewWSHeads(0, true, 2, infoPOS, infoPOS, types.SyntacticHead))
	b.add(NewWSHeads(0, true, 2, infoLexical, infoLexical, types.SyntacticHead))
	b.add(NewWSHeads(0, true, 2, infoLexical, infoLexical, types.SemanticHead))
	b.add(NewWSHeads(0, true, 3, infoPOS, infoPOS, types.SyntacticHead))
	if nsuffix > 0 {
		b.add(NewWSHeads(nsuffix, true, 2, infoLexical, infoLexical, types.SyntacticHead))
	}

	const maxwidth, maxsumwidth = 2, 3

	for _, binned := range []bool{false, true} {
		for lp := 0; lp <= maxwidth; lp++ {
			for ls := 0; ls <= maxwidth; ls++ {
				for rp := 0; rp <= maxwidth; rp++ {
					for rs := 0; rs <= maxwidth; rs++ {
						if lp+ls+rp+rs > maxsumwidth {
							continue
						}
						b.add(NewWSEdges(
							EdgeSpec{POS: lp}, EdgeSpec{POS: ls},
							EdgeSpec{POS: rp}, EdgeSpec{POS: rs}, binned))
						if lp+ls+rp+rs > 0 {
							b.add(NewWSEdges(
								EdgeSpec{POS: lp, Word: lp}, EdgeSpec{POS: ls, Word: ls},
								EdgeSpec{POS: rp, Word: rp}, EdgeSpec{POS: rs, Word: rs}, binned))
						}
						if lp+ls+rp+rs > 0 && nsuffix > 0 {
							b.add(NewWSEdges(
								EdgeSpec{POS: lp, Word: lp, NSuffix: nsuffix},
								EdgeSpec{POS: ls, Word: ls, NSuffix: nsuffix},
								EdgeSpec{POS: rp, Word: rp, NSuffix: nsuffix},
								EdgeSpec{POS: rs, Word: rs, NSuffix: nsuffix}, binned))
						}
					}
				}
			}
		}
	}

	if !local {
		b.add(NewNGramTree(2, lexicalizeNone, true, 0))
		b.add(NewNGramTree(2, lexicalizeAll, true, 0))
		b.add(NewNGramTree(3, lexicalizeFunctional, true, 0))

		b.add(NewCoPar(false))
		b.add(CoLenPar{})
	}
}

func (b *setBuilder) wedges() {
	b.add(NLogP{})
	b.add(RightBranch{})
	b.add(Heavy{})

	const maxwidth, maxsumwidth = 1, 2

	for _, binned := range []bool{false, true} {
		for lp := 0; lp <= maxwidth; lp++ {
			for ls := 0; ls <= maxwidth; ls++ {
				for rp := 0; rp <= maxwidth; rp++ {
					for rs := 0; rs <= maxwidth; rs++ {
						if lp+ls+rp+rs > maxsumwidth {
							continue
						}
						for lpw := 0; lpw <= lp; lpw++ {
							for lsw := 0; lsw <= ls; lsw++ {
								for rpw := 0; rpw <= rp; rpw++ {
									for rsw := 0; rsw <= rs; rsw++ {
										b.add(NewWEdges(binned, lp, lpw, ls, lsw, rp, rpw, rs, rsw))
									}
								}
							}
						}
					}
				}
			}
		}
	}
}

func (b *setBuilder) ws(headfeatures bool, edgefeatures int, ngramFlag, ngramtree, rbcontext bool) {
	b.add(NLogP{})
	b.add(RightBranch{})
	b.add(Heavy{})

	if headfeatures {
		b.add(NewWSHeads(0, true, 2, infoPOS, infoPOS, types.SyntacticHead))
		b.add(NewWSHeads(0, true, 2, infoPOS, infoClosedClass, types.SyntacticHead))
		b.add(NewWSHeads(0, true, 2, infoClosedClass, infoPOS, types.SyntacticHead))
		b.add(NewWSHeads(0, true, 2, infoClosedClass, infoClosedClass, types.SyntacticHead))
		b.add(NewWSHeads(0, true, 2, infoLexical, infoClosedClass, types.SyntacticHead))
		b.add(NewWSHeads(0, true, 2, infoClosedClass, infoLexical, types.SyntacticHead))
		b.add(NewWSHeads(0, true, 2, infoLexical, infoLexical, types.SyntacticHead))
		b.add(NewWSHeads(0, true, 2, infoLexical, infoLexical, types.SemanticHead))
		b.add(NewWSHeads(0, true, 3, infoPOS, infoPOS, types.SyntacticHead))
		b.add(NewWSHeads(0, true, 3, infoPOS, infoPOS, types.SemanticHead))
		b.add(NewWSHeads(0, true, 3, infoPOS, infoClosedClass, types.SyntacticHead))
		b.add(NewWSHeads(0, true, 3, infoClosedClass, infoPOS, types.SyntacticHead))
		b.add(NewWSHeads(0, true, 3, infoClosedClass, infoClosedClass, types.SyntacticHead))
	}

	if edgefeatures != 0 {
		es := []EdgeSpec{
			edgePunct1, edgePOS1, edgeClosed1, edgeWord1,
			edgePunct2, edgePOS2, edgeClosed2,
		}

		for _, binned := range []bool{false, true} {
			if (binned && edgefeatures == 1) || (!binned && edgefeatures == 2) {
				continue
			}

			b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgeEmpty, binned))
			// punctuation two deep just outside both boundaries
			b.add(NewWSEdges(edgePunct2, edgeEmpty, edgeEmpty, edgePunct2, binned))

			for _, e := range es {
				b.add(NewWSEdges(e, edgeEmpty, edgeEmpty, edgeEmpty, binned))
				b.add(NewWSEdges(edgeEmpty, e, edgeEmpty, edgeEmpty, binned))
				b.add(NewWSEdges(edgeEmpty, edgeEmpty, e, edgeEmpty, binned))
				b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, e, binned))

				b.add(NewWSEdges(e, edgeEmpty, edgeEmpty, edgePunct1, binned))
				b.add(NewWSEdges(edgeEmpty, e, edgeEmpty, edgePunct1, binned))
				b.add(NewWSEdges(edgeEmpty, edgeEmpty, e, edgePunct1, binned))

				b.add(NewWSEdges(e, edgeEmpty, edgeEmpty, edgePOS1, binned))
				b.add(NewWSEdges(edgeEmpty, e, edgeEmpty, edgePOS1, binned))
				b.add(NewWSEdges(edgeEmpty, edgeEmpty, e, edgePOS1, binned))

				b.add(NewWSEdges(e, edgeEmpty, edgeEmpty, edgeClosed1, binned))
				b.add(NewWSEdges(edgeEmpty, e, edgeEmpty, edgeClosed1, binned))
				b.add(NewWSEdges(edgeEmpty, edgeEmpty, e, edgeClosed1, binned))
			}
		}
	}

	if ngramFlag {
		b.add(ngram(1, false, false))
		b.add(ngram(1, false, true))
		b.add(ngram(1, true, false))
		b.add(ngram(1, true, true))
		b.add(ngram(2, true, true))
		b.add(ngram(3, true, true))
		b.add(lexNGram(1, false, false, annLexical, annNone))
		b.add(lexNGram(1, false, false, annNone, annLexical))
		b.add(lexNGram(1, false, false, annLexical, annLexical))
		b.add(lexNGram(2, false, false, annLexical, annNone))
		b.add(lexNGram(2, false, false, annNone, annLexical))
		b.add(lexNGram(1, true, false, annLexical, annNone))
		b.add(lexNGram(1, true, false, annNone, annLexical))
		b.add(lexNGram(1, true, false, annLexical, annLexical))
		b.add(lexNGram(2, true, false, annLexical, annNone))
		b.add(lexNGram(2, true, false, annNone, annLexical))
		b.add(lexNGram(1, false, true, annLexical, annNone))
		b.add(lexNGram(1, false, true, annNone, annLexical))
		b.add(lexNGram(1, false, true, annLexical, annLexical))
		b.add(lexNGram(2, false, true, annLexical, annNone))
		b.add(lexNGram(2, false, true, annNone, annLexical))
	}

	if ngramtree {
		b.add(NewNGramTree(2, lexicalizeNone, true, 0))
		b.add(NewNGramTree(2, lexicalizeFunctional, true, 0))
		b.add(NewNGramTree(2, lexicalizeAll, true, 0))
		b.add(NewNGramTree(3, lexicalizeNone, true, 0))
		b.add(NewNGramTree(3, lexicalizeFunctional, true, 0))
		b.add(NewNGramTree(3, lexicalizeAll, true, 0))
		b.add(NewNGramTree(4, lexicalizeNone, true, 0))
		b.add(NewNGramTree(4, lexicalizeFunctional, true, 0))
	}

	if rbcontext {
		b.add(NewRBContext(false, false, false, types.SyntacticHead))
		b.add(NewRBContext(false, false, true, types.SyntacticHead))
		b.add(NewRBContext(false, true, false, types.SyntacticHead))
		b.add(NewRBContext(false, true, true, types.SyntacticHead))
		b.add(NewRBContext(true, false, false, types.SyntacticHead))
		b.add(NewRBContext(true, false, true, types.SyntacticHead))
		b.add(NewRBContext(true, true, false, types.SyntacticHead))
		b.add(NewRBContext(true, true, true, types.SyntacticHead))
	}
}

func (b *setBuilder) nfeatures() {
	b.add(NLogP{})
	b.add(RightBranch{})
	b.add(Heavy{})

	b.add(NewCoPar(false))
	b.add(NewCoPar(true))
	b.add(CoLenPar{})

	b.add(NewWord(1))
	b.add(NewWord(2))

	b.add(wproj())

	b.add(NewWSHeads(0, true, 2, infoPOS, infoPOS, types.SyntacticHead))
	b.add(NewWSHeads(0, true, 2, infoPOS, infoClosedClass, types.SyntacticHead))
	b.add(NewWSHeads(0, true, 2, infoClosedClass, infoPOS, types.SyntacticHead))
	b.add(NewWSHeads(0, true, 2, infoClosedClass, infoClosedClass, types.SyntacticHead))
	b.add(NewWSHeads(0, true, 2, infoLexical, infoClosedClass, types.SyntacticHead))
	b.add(NewWSHeads(0, true, 2, infoClosedClass, infoLexical, types.SyntacticHead))
	b.add(NewWSHeads(0, true, 2, infoLexical, infoLexical, types.SyntacticHead))
	b.add(NewWSHeads(0, true, 2, infoLexical, infoLexical, types.SemanticHead))
	b.add(NewWSHeads(0, true, 3, infoPOS, infoPOS, types.SyntacticHead))
	b.add(NewWSHeads(0, true, 3, infoPOS, infoPOS, types.SemanticHead))
	b.add(NewWSHeads(0, true, 3, infoPOS, infoClosedClass, types.SyntacticHead))
	b.add(NewWSHeads(0, true, 3, infoClosedClass, infoPOS, types.SyntacticHead))
	b.add(NewWSHeads(0, true, 3, infoClosedClass, infoClosedClass, types.SyntacticHead))

	b.add(NewRBContext(false, false, false, types.SyntacticHead))
	b.add(NewRBContext(false, true, false, types.SyntacticHead))
	b.add(NewRBContext(false, true, true, types.SyntacticHead))
	b.add(NewRBContext(true, false, false, types.SyntacticHead))
	b.add(NewRBContext(true, true, false, types.SyntacticHead))
	b.add(NewRBContext(true, true, true, types.SyntacticHead))

	b.add(NewRBContext(false, false, false, types.SemanticHead))
	b.add(NewRBContext(true, false, false, types.SemanticHead))
	b.add(NewRBContext(true, true, true, types.SemanticHead))

	b.add(rule(0, 1, false, false))
	b.add(rule(1, 0, false, false))
	b.add(rule(1, 1, false, false))
	b.add(rule(0, 2, false, false))
	b.add(rule(0, 0, true, false))
	b.add(rule(0, 0, false, true))
	b.add(lexRule(annLexical, annNone))
	b.add(lexRule(annNone, annLexical))
	b.add(lexRule(annLexical, annLexical))

	b.add(ngram(1, false, true))
	b.add(ngram(2, false, false))
	b.add(ngram(2, true, true))
	b.add(ngram(3, false, false))
	b.add(ngram(3, true, true))
	b.add(ngram(4, false, false))
	b.add(lexNGram(2, false, false, annLexical, annNone))
	b.add(lexNGram(2, false, false, annNone, annLexical))

	b.add(NewNGramTree(2, lexicalizeNone, true, 0))
	b.add(NewNGramTree(2, lexicalizeFunctional, true, 0))
	b.add(NewNGramTree(2, lexicalizeAll, true, 0))
	b.add(NewNGramTree(3, lexicalizeNone, true, 0))
	b.add(NewNGramTree(3, lexicalizeFunctional, true, 0))

	b.add(NewHeadTree(true, false, 0, types.SyntacticHead))
	b.add(NewHeadTree(true, false, 0, types.SemanticHead))
	b.add(NewHeadTree(true, true, 0, types.SemanticHead))

	b.add(NewWSEdges(edgePunct1, edgeEmpty, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgePOS1, edgeEmpty, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgeClosed1, edgeEmpty, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgePunct1, edgeEmpty, edgePunct1, edgePunct1, false))
	b.add(NewWSEdges(edgePunct1, edgeEmpty, edgePunct1, edgePunct1, true))
	b.add(NewWSEdges(edgeClosed1, edgeClosed1, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgeClosed1, edgeClosed1, edgeEmpty, edgeEmpty, true))
	b.add(NewWSEdges(edgeClosed1, edgeClosed1, edgePunct1, edgePunct1, false))
	b.add(NewWSEdges(edgeWord1, edgeWord1, edgeEmpty, edgeEmpty, false))

	b.add(NewWSEdges(edgeEmpty, edgePunct1, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgePOS1, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgeClosed1, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgeWord1, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgePunct2, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgePOS2, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgeClosed2, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgePunct1, edgeEmpty, edgePunct1, false))
	b.add(NewWSEdges(edgeEmpty, edgePOS1, edgeEmpty, edgePunct1, false))
	b.add(NewWSEdges(edgeEmpty, edgeClosed1, edgeEmpty, edgePunct1, false))
	b.add(NewWSEdges(edgeEmpty, edgePunct1, edgeEmpty, edgePOS1, false))
	b.add(NewWSEdges(edgeEmpty, edgePOS1, edgeEmpty, edgePOS1, false))
	b.add(NewWSEdges(edgeEmpty, edgeClosed1, edgeEmpty, edgePOS1, false))
	b.add(NewWSEdges(edgeEmpty, edgePunct1, edgeEmpty, edgeClosed1, false))
	b.add(NewWSEdges(edgeEmpty, edgePOS1, edgeEmpty, edgeClosed1, false))
	b.add(NewWSEdges(edgeEmpty, edgeClosed1, edgeEmpty, edgeClosed1, false))

	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgePunct1, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgePOS1, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeClosed1, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeWord1, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgePunct2, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgePOS2, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeClosed2, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgePunct1, edgePunct1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgePOS1, edgePunct1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeClosed1, edgePunct1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgePunct1, edgePOS1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgePOS1, edgePOS1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeClosed1, edgePOS1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgePunct1, edgeClosed1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgePOS1, edgeClosed1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeClosed1, edgeClosed1, false))

	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgePunct1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgePunct1, true))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgePunct2, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgePOS1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgePOS1, true))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgePOS2, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgeClosed1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgeClosed1, true))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgeClosed2, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgeWord1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgeWord1, true))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgeWord2, false))
}

func (b *setBuilder) sfeatures() {
	b.add(NLogP{})
	b.add(RightBranch{})
	b.add(Heavy{})

	b.add(NewCoPar(false))

	b.add(NewRBContext(false, true, false, types.SyntacticHead))
	b.add(NewRBContext(false, true, true, types.SyntacticHead))
	b.add(NewRBContext(true, false, false, types.SyntacticHead))
	b.add(NewRBContext(true, true, false, types.SyntacticHead))
	b.add(NewRBContext(true, true, true, types.SyntacticHead))

	b.add(rule(0, 0, true, false))
	b.add(lexRule(annLexical, annLexical))

	b.add(ngram(2, false, false))
	b.add(lexNGram(2, false, false, annNone, annLexical))

	b.add(wproj())

	b.add(NewNGramTree(2, lexicalizeAll, true, 0))

	b.add(NewHeadTree(true, false, 0, types.SyntacticHead))

	b.add(NewWSHeads(0, true, 2, infoLexical, infoLexical, types.SemanticHead))
	b.add(NewWSHeads(0, true, 3, infoPOS, infoPOS, types.SemanticHead))
	b.add(NewWSHeads(0, true, 3, infoClosedClass, infoClosedClass, types.SyntacticHead))

	b.add(NewWSEdges(edgeClosed1, edgeEmpty, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgePunct1, edgeEmpty, edgePunct1, edgePunct1, false))
	b.add(NewWSEdges(edgePunct1, edgeEmpty, edgePunct1, edgePunct1, true))
	b.add(NewWSEdges(edgeClosed1, edgeClosed1, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgeClosed1, edgeClosed1, edgeEmpty, edgeEmpty, true))
	b.add(NewWSEdges(edgeWord1, edgeWord1, edgeEmpty, edgeEmpty, false))

	b.add(NewWSEdges(edgeEmpty, edgeClosed1, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgeWord1, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgePunct2, edgeEmpty, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgeClosed1, edgeEmpty, edgePunct1, false))
	b.add(NewWSEdges(edgeEmpty, edgePunct1, edgeEmpty, edgeClosed1, false))

	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgePunct1, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgePunct2, edgeEmpty, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgePunct1, edgePunct1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgePunct1, edgeClosed1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgePOS1, edgeClosed1, false))

	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgePunct1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgePunct2, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgePOS1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgePOS1, true))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgeClosed1, false))
	b.add(NewWSEdges(edgeEmpty, edgeEmpty, edgeEmpty, edgeClosed2, false))
}

// NewRegistry builds the named feature set. The empty name selects
// nfeatures, the default set.
func NewRegistry(name string) (*Registry, error) {
	b := &setBuilder{}
	if err := b.builtin(name); err != nil {
		return nil, err
	}
	log.Printf("# There are %d feature classes.", len(b.classes))
	return &Registry{Classes: b.classes}, nil
}

func (b *setBuilder) builtin(name string) error {
	switch name {
	case "", "nfeatures":
		b.nfeatures()
	case "sfeatures":
		b.sfeatures()
	case "wshead":
		b.ws(true, 0, false, false, false)
	case "wsedge":
		b.ws(false, 3, false, false, false)
	case "wsedge0":
		b.ws(false, 1, false, false, false)
	case "wsedge1":
		b.ws(false, 2, false, false, false)
	case "wsngram":
		b.ws(false, 0, true, false, false)
	case "wsngramtree":
		b.ws(false, 0, false, true, false)
	case "wsrbcontext":
		b.ws(false, 0, false, false, true)
	case "conll":
		b.conll()
	case "splh":
		b.splh(false, false)
	case "splhnn":
		b.splh(false, true)
	case "splhlocal":
		b.splh(true, false)
	case "splhsuffix0":
		b.splhSuffix(0, false)
	case "splhsuffix1":
		b.splhSuffix(1, false)
	case "splhsuffix3":
		b.splhSuffix(3, false)
	case "wedges":
		b.wedges()
	case "ws":
		b.ws(false, 3, false, false, false)
	case "wsall":
		b.ws(true, 3, true, true, true)
	default:
		return fmt.Errorf("unknown feature set %q", name)
	}
	return nil
}

// FeatureSetNames lists the names NewRegistry accepts, in the order
// they are usually reported.
func FeatureSetNames() []string {
	return []string{
		"nfeatures", "sfeatures",
		"wshead", "wsedge", "wsedge0", "wsedge1",
		"wsngram", "wsngramtree", "wsrbcontext",
		"conll", "splh", "splhnn", "splhlocal",
		"splhsuffix0", "splhsuffix1", "splhsuffix3",
		"wedges", "ws", "wsall",
	}
}

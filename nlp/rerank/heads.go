package rerank

import (
	"fmt"
	"strings"

	"github.com/mjpost/extract-spfeatures/nlp/types"
	"github.com/mjpost/extract-spfeatures/util"
)

// Heads records chains of nheads head-to-head dependencies, following
// every plausible governor through coordinate structure.
type Heads struct {
	nheads       int
	governorlex  bool
	dependentlex bool
	htype        types.HeadType
	ident        string
}

func NewHeads(nheads int, governorlex, dependentlex bool, htype types.HeadType) *Heads {
	return &Heads{
		nheads:       nheads,
		governorlex:  governorlex,
		dependentlex: dependentlex,
		htype:        htype,
		ident: fmt.Sprintf("Heads:%d:%t:%t:%s", nheads, governorlex,
			dependentlex, htype),
	}
}

func (h *Heads) Identifier() string { return h.ident }

func (h *Heads) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for _, node := range t.Preterms {
		f := make([]string, 0, 2*h.nheads+2)
		f = append(f, t.Cat(node).String())
		if h.dependentlex {
			f = append(f, t.Word(node).String())
		}
		h.visitAncestors(t, node, 1, &f, acc)
	}
}

// visitAncestors climbs until nheads governors have been collected,
// skipping coordination levels.
func (h *Heads) visitAncestors(t *types.Tree, node types.NodeID, nsofar int,
	f *[]string, acc accumulator) {
	if nsofar == h.nheads {
		acc.add(strings.Join(*f, " "), 1)
		return
	}

	ancestor := t.Parent(node)
	if ancestor == types.NoNode {
		return
	}

	if t.IsCoordination(ancestor) {
		h.visitAncestors(t, ancestor, nsofar, f, acc)
	} else {
		hchild := t.HeadChild(ancestor, h.htype)
		if hchild != types.NoNode && node != hchild {
			h.visitDescendants(t, ancestor, nsofar, f, hchild, acc)
		} else {
			h.visitAncestors(t, ancestor, nsofar, f, acc)
		}
	}
}

// visitDescendants descends from a governing constituent to its
// preterminal head or heads; each conjunct of a coordination counts.
func (h *Heads) visitDescendants(t *types.Tree, ancestor types.NodeID, nsofar int,
	f *[]string, head types.NodeID, acc accumulator) {
	if t.IsPreterminal(head) {
		*f = append(*f, t.Cat(head).String())
		if h.governorlex {
			*f = append(*f, t.Word(head).String())
		}
		h.visitAncestors(t, ancestor, nsofar+1, f, acc)
		*f = (*f)[:len(*f)-1]
		if h.governorlex {
			*f = (*f)[:len(*f)-1]
		}
		return
	}

	hchild := t.HeadChild(head, h.htype)
	if t.IsCoordination(head) {
		for child := t.Child(head); child != types.NoNode; child = t.Next(child) {
			if t.Cat(child) == t.Cat(head) ||
				(hchild != types.NoNode && t.Cat(child) == t.Cat(hchild)) {
				h.visitDescendants(t, ancestor, nsofar, f, child, acc)
			}
		}
	} else if hchild != types.NoNode {
		h.visitDescendants(t, ancestor, nsofar, f, hchild, acc)
	}
}

// wordSuffix keeps the last n letters of a word; zero keeps the whole
// word.
func wordSuffix(s string, n int) string {
	if n <= 0 {
		return s
	}
	return util.Suffix(s, n)
}

// infoLevel controls how a head token is spelled: part of speech only,
// the full word, or a word suffix.
type infoLevel int

const (
	infoPOS infoLevel = iota
	infoClosedClass
	infoLexical
)

func (l infoLevel) String() string {
	switch l {
	case infoClosedClass:
		return "closedclass"
	case infoLexical:
		return "lexical"
	}
	return "pos"
}

// WSHeads is Heads with word suffixes in place of full words and a
// switch for distributing dependencies over conjuncts.
type WSHeads struct {
	nsuffixletters int
	distribute     bool
	nheads         int
	governorinfo   infoLevel
	dependentinfo  infoLevel
	htype          types.HeadType
	ident          string
}

func NewWSHeads(nsuffixletters int, distribute bool, nheads int,
	governorinfo, dependentinfo infoLevel, htype types.HeadType) *WSHeads {
	return &WSHeads{
		nsuffixletters: nsuffixletters,
		distribute:     distribute,
		nheads:         nheads,
		governorinfo:   governorinfo,
		dependentinfo:  dependentinfo,
		htype:          htype,
		ident: fmt.Sprintf("WSHeads:%d:%t:%d:%s:%s:%s", nsuffixletters,
			distribute, nheads, governorinfo, dependentinfo, htype),
	}
}

func (h *WSHeads) Identifier() string { return h.ident }

func (h *WSHeads) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for _, node := range t.Preterms {
		f := make([]string, 0, 2*h.nheads+2)
		f = append(f, t.Cat(node).String())
		switch h.dependentinfo {
		case infoClosedClass:
			f = append(f, t.Word(node).String())
		case infoLexical:
			f = append(f, wordSuffix(t.Word(node).String(), h.nsuffixletters))
		}
		h.visitAncestors(t, node, 1, &f, acc)
	}
}

func (h *WSHeads) visitAncestors(t *types.Tree, node types.NodeID, nsofar int,
	f *[]string, acc accumulator) {
	if nsofar == h.nheads {
		acc.add(strings.Join(*f, " "), 1)
		return
	}

	ancestor := t.Parent(node)
	if ancestor == types.NoNode {
		return
	}

	if t.IsCoordination(ancestor) {
		// Without distribution only the rightmost conjunct carries
		// the dependency upward.
		if h.distribute || t.Next(node) == types.NoNode {
			h.visitAncestors(t, ancestor, nsofar, f, acc)
		}
	} else {
		hchild := t.HeadChild(ancestor, h.htype)
		if hchild != types.NoNode && node != hchild {
			h.visitDescendants(t, ancestor, nsofar, f, hchild, acc)
		} else {
			h.visitAncestors(t, ancestor, nsofar, f, acc)
		}
	}
}

func (h *WSHeads) visitDescendants(t *types.Tree, ancestor types.NodeID, nsofar int,
	f *[]string, head types.NodeID, acc accumulator) {
	if t.IsPreterminal(head) {
		oldLen := len(*f)
		*f = append(*f, t.Cat(head).String())
		switch h.governorinfo {
		case infoClosedClass:
			*f = append(*f, t.Word(head).String())
		case infoLexical:
			*f = append(*f, wordSuffix(t.Word(head).String(), h.nsuffixletters))
		}
		h.visitAncestors(t, ancestor, nsofar+1, f, acc)
		*f = (*f)[:oldLen]
		return
	}

	if t.IsCoordination(head) && h.distribute {
		for child := t.Child(head); child != types.NoNode; child = t.Next(child) {
			if t.Cat(child) == t.Cat(head) {
				h.visitDescendants(t, ancestor, nsofar, f, child, acc)
			}
		}
	} else {
		child := t.HeadChild(head, h.htype)
		if child != types.NoNode {
			h.visitDescendants(t, ancestor, nsofar, f, child, acc)
		}
	}
}

// SubjVerbAgr pairs the part of speech of a clause's subject head with
// that of its verbal head, the tags that carry agreement.
type SubjVerbAgr struct{}

func (SubjVerbAgr) Identifier() string { return "SubjVerbAgr" }

func (SubjVerbAgr) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for n := range t.Nodes {
		node := types.NodeID(n)
		cat := t.Cat(node)
		if cat != types.SymS && cat != types.SymSINV {
			continue
		}
		verb := t.LexHead(node, types.SyntacticHead)
		if verb == types.NoNode {
			continue
		}

		// The subject is the last NP before the VP.
		subject := types.NoNode
		for child := t.Child(node); child != types.NoNode; child = t.Next(child) {
			if t.Cat(child) == types.SymNP {
				subject = child
			} else if t.Cat(child) == types.SymVP {
				break
			}
		}
		if subject == types.NoNode {
			continue
		}
		subjhead := t.LexHead(subject, types.SemanticHead)
		if subjhead == types.NoNode {
			continue
		}

		key := t.Cat(subjhead).String() + " " + t.Cat(verb).String()
		acc.add(key, 1)
	}
}

// synSemAnnotation selects how much lexical material SynSemHeads
// records when the two head conventions disagree.
type synSemAnnotation int

const (
	synSemNone synSemAnnotation = iota
	synSemLexSyn
	synSemLexAll
)

func (a synSemAnnotation) String() string {
	switch a {
	case synSemLexSyn:
		return "lex_syn"
	case synSemLexAll:
		return "lex_all"
	}
	return "none"
}

// SynSemHeads fires on nodes whose syntactic and semantic lexical
// heads differ, recording the two heads' tags and optionally their
// words.
type SynSemHeads struct {
	ann   synSemAnnotation
	ident string
}

func NewSynSemHeads(ann synSemAnnotation) *SynSemHeads {
	return &SynSemHeads{ann: ann, ident: fmt.Sprintf("SynSemHeads:%s", ann)}
}

func (s *SynSemHeads) Identifier() string { return s.ident }

func (s *SynSemHeads) countParse(parse *types.Parse, acc accumulator) {
	t := parse.Tree
	for n := range t.Nodes {
		node := types.NodeID(n)
		syn := t.LexHead(node, types.SyntacticHead)
		sem := t.LexHead(node, types.SemanticHead)
		if syn == sem {
			continue
		}

		f := make([]string, 0, 4)
		if syn != types.NoNode {
			f = append(f, t.Cat(syn).String())
		} else {
			f = append(f, endMarker)
		}
		if s.ann != synSemNone {
			if syn == types.NoNode {
				continue
			}
			f = append(f, t.Word(syn).String())
		}

		if sem != types.NoNode {
			f = append(f, t.Cat(sem).String())
		} else {
			f = append(f, endMarker)
		}
		if s.ann == synSemLexAll {
			if sem == types.NoNode {
				continue
			}
			f = append(f, t.Word(sem).String())
		}

		acc.add(strings.Join(f, " "), 1)
	}
}

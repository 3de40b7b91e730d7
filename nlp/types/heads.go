package types

// Head-child selection in the Magerman/Collins style: per category, a
// tag priority list scanned over the children in a fixed direction.
// Two conventions are annotated on every node. The syntactic tables
// pick the structural governor (IN for PP, the auxiliary for VP); the
// semantic tables percolate through function words to the content head
// (the NP object of a PP, the main verb under an auxiliary chain).

type headRule struct {
	rightward bool
	priority  []Symbol
}

func newHeadRule(rightward bool, tags ...string) headRule {
	rule := headRule{rightward: rightward, priority: make([]Symbol, len(tags))}
	for i, tag := range tags {
		rule.priority[i] = Intern(tag)
	}
	return rule
}

var synHeadRules = map[Symbol]headRule{
	Intern("ADJP"):   newHeadRule(false, "NNS", "QP", "NN", "$", "ADVP", "JJ", "VBN", "VBG", "ADJP", "JJR", "NP", "JJS", "DT", "FW", "RBR", "RBS", "SBAR", "RB"),
	Intern("ADVP"):   newHeadRule(true, "RB", "RBR", "RBS", "FW", "ADVP", "TO", "CD", "JJR", "JJ", "IN", "NP", "JJS", "NN"),
	Intern("CONJP"):  newHeadRule(true, "CC", "RB", "IN"),
	Intern("FRAG"):   newHeadRule(true),
	Intern("INTJ"):   newHeadRule(false),
	Intern("LST"):    newHeadRule(true, "LS", ":"),
	Intern("NAC"):    newHeadRule(false, "NN", "NNS", "NNP", "NNPS", "NP", "NAC", "EX", "$", "CD", "QP", "PRP", "VBG", "JJ", "JJS", "JJR", "ADJP", "FW"),
	Intern("PP"):     newHeadRule(true, "IN", "TO", "VBG", "VBN", "RP", "FW"),
	Intern("PRN"):    newHeadRule(false),
	Intern("PRT"):    newHeadRule(true, "RP"),
	Intern("QP"):     newHeadRule(false, "$", "IN", "NNS", "NN", "JJ", "RB", "DT", "CD", "QP", "JJR", "JJS"),
	Intern("RRC"):    newHeadRule(true, "VP", "NP", "ADVP", "ADJP", "PP"),
	Intern("S"):      newHeadRule(false, "TO", "IN", "VP", "S", "SBAR", "ADJP", "UCP", "NP"),
	Intern("SBAR"):   newHeadRule(false, "WHNP", "WHPP", "WHADVP", "WHADJP", "IN", "DT", "S", "SQ", "SINV", "SBAR", "FRAG"),
	Intern("SBARQ"):  newHeadRule(false, "SQ", "S", "SINV", "SBARQ", "FRAG"),
	Intern("SINV"):   newHeadRule(false, "VBZ", "VBD", "VBP", "VB", "MD", "VP", "S", "SINV", "ADJP", "NP"),
	Intern("SQ"):     newHeadRule(false, "VBZ", "VBD", "VBP", "VB", "MD", "VP", "SQ"),
	Intern("UCP"):    newHeadRule(true),
	Intern("VP"):     newHeadRule(false, "TO", "VBD", "VBN", "MD", "VBZ", "VB", "VBG", "VBP", "VP", "ADJP", "NN", "NNS", "NP"),
	Intern("WHADJP"): newHeadRule(false, "CC", "WRB", "JJ", "ADJP"),
	Intern("WHADVP"): newHeadRule(true, "CC", "WRB"),
	Intern("WHNP"):   newHeadRule(false, "WDT", "WP", "WP$", "WHADJP", "WHPP", "WHNP"),
	Intern("WHPP"):   newHeadRule(true, "IN", "TO", "FW"),
	Intern("X"):      newHeadRule(true),
}

// The semantic tables override the categories whose syntactic head is
// a function word; everything else falls through to the syntactic
// rule.
var semHeadRules = map[Symbol]headRule{
	Intern("PP"):   newHeadRule(true, "NP", "SBAR", "S", "SINV", "VP", "ADJP", "ADVP", "IN", "TO", "VBG", "VBN", "RP", "FW"),
	Intern("SBAR"): newHeadRule(false, "S", "SQ", "SINV", "SBARQ", "FRAG", "WHNP", "WHPP", "WHADVP", "WHADJP", "IN", "DT"),
	Intern("VP"):   newHeadRule(false, "VP", "VBD", "VBN", "VBZ", "VB", "VBG", "VBP", "MD", "TO", "ADJP", "NN", "NNS", "NP"),
	Intern("S"):    newHeadRule(false, "VP", "S", "SBAR", "ADJP", "UCP", "NP", "TO", "IN"),
	Intern("SINV"): newHeadRule(false, "VP", "VBZ", "VBD", "VBP", "VB", "MD", "S", "SINV", "ADJP", "NP"),
	Intern("SQ"):   newHeadRule(false, "VP", "VBZ", "VBD", "VBP", "VB", "MD", "SQ"),
	Intern("WHPP"): newHeadRule(true, "NP", "WHNP", "IN", "TO", "FW"),
}

var npHeadTags = symbolSet("NN", "NNP", "NNPS", "NNS", "NX", "POS", "JJR")
var npSemHeadTags = symbolSet("NN", "NNP", "NNPS", "NNS", "NX", "JJR")
var npFallbackTags = symbolSet("$", "ADJP", "PRN")
var npLastResortTags = symbolSet("JJ", "JJS", "RB", "QP")
var symNX = Intern("NX")
var symCD = Intern("CD")

func (t *Tree) annotateHeads(n NodeID) {
	if t.IsTerminal(n) {
		return
	}
	node := &t.Nodes[n]
	if t.IsPreterminal(n) {
		node.SynLexHead = n
		node.SemLexHead = n
		return
	}
	for c := node.FirstChild; c != NoNode; c = t.Nodes[c].NextSibling {
		t.annotateHeads(c)
	}
	node.SynHeadChild = t.findHeadChild(n, SyntacticHead)
	node.SemHeadChild = t.findHeadChild(n, SemanticHead)
	if node.SynHeadChild != NoNode {
		node.SynLexHead = t.Nodes[node.SynHeadChild].SynLexHead
	}
	if node.SemHeadChild != NoNode {
		node.SemLexHead = t.Nodes[node.SemHeadChild].SemLexHead
	}
}

func (t *Tree) findHeadChild(n NodeID, htype HeadType) NodeID {
	cat := t.Nodes[n].Cat
	if cat == SymNP || cat == symNX {
		return t.npHeadChild(n, htype)
	}
	rule, haveRule := synHeadRules[cat]
	if htype == SemanticHead {
		if semRule, overridden := semHeadRules[cat]; overridden {
			rule, haveRule = semRule, true
		}
	}
	if haveRule {
		for _, tag := range rule.priority {
			if c := t.scanChildren(n, tag, rule.rightward); c != NoNode {
				return c
			}
		}
	}
	return t.defaultHeadChild(n, rule.rightward)
}

func (t *Tree) scanChildren(n NodeID, tag Symbol, rightward bool) NodeID {
	found := NoNode
	for c := t.Nodes[n].FirstChild; c != NoNode; c = t.Nodes[c].NextSibling {
		if t.Nodes[c].Cat != tag {
			continue
		}
		if !rightward {
			return c
		}
		found = c
	}
	return found
}

func (t *Tree) defaultHeadChild(n NodeID, rightward bool) NodeID {
	found := NoNode
	for c := t.Nodes[n].FirstChild; c != NoNode; c = t.Nodes[c].NextSibling {
		if t.IsPunctuation(c) {
			continue
		}
		if !rightward {
			return c
		}
		found = c
	}
	return found
}

// npHeadChild is the Collins NP rule; the semantic variant does not
// treat a final possessive marker as the head.
func (t *Tree) npHeadChild(n NodeID, htype HeadType) NodeID {
	last := t.defaultHeadChild(n, true)
	if htype == SyntacticHead && last != NoNode && t.Nodes[last].Cat == SymPOS {
		return last
	}
	tags := npHeadTags
	if htype == SemanticHead {
		tags = npSemHeadTags
	}
	if c := t.scanChildrenSet(n, tags, true); c != NoNode {
		return c
	}
	if c := t.scanChildren(n, SymNP, false); c != NoNode {
		return c
	}
	if c := t.scanChildrenSet(n, npFallbackTags, true); c != NoNode {
		return c
	}
	if c := t.scanChildren(n, symCD, true); c != NoNode {
		return c
	}
	if c := t.scanChildrenSet(n, npLastResortTags, true); c != NoNode {
		return c
	}
	return last
}

func (t *Tree) scanChildrenSet(n NodeID, tags map[Symbol]bool, rightward bool) NodeID {
	found := NoNode
	for c := t.Nodes[n].FirstChild; c != NoNode; c = t.Nodes[c].NextSibling {
		if !tags[t.Nodes[c].Cat] {
			continue
		}
		if !rightward {
			return c
		}
		found = c
	}
	return found
}

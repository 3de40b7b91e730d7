package types

// Parse is one candidate analysis from the n-best list, with the
// upstream parser's model scores. Tree is the analysis as processed
// for feature extraction; Raw is the tree exactly as read, which is
// what gets printed back out. The two are the same object unless
// reading normalized the words.
type Parse struct {
	Tree        *Tree
	Raw         *Tree
	LogProb     float64
	LogCondProb float64
}

// Sentence is an n-best list in producer order plus an optional gold
// tree. Parse index 0 plays the distinguished "reference" role in the
// correct/incorrect collection policy; that convention comes from the
// upstream producer and is never re-derived here.
type Sentence struct {
	Label  string
	Gold   *Tree
	Parses []Parse
}

func (s *Sentence) NParses() int {
	return len(s.Parses)
}

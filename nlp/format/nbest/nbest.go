// Package nbest reads per-sentence n-best parse blocks and the gold
// tree stream they align with.
//
// A block is a header line "<nparses> <label>" followed, for each
// parse, by one line with the parser's log probability and one line
// with the bracketed tree. A gold stream starts with an optional
// sentence-count line and then carries one tree per line.
package nbest

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mjpost/extract-spfeatures/nlp/format/ptb"
	"github.com/mjpost/extract-spfeatures/nlp/types"
	"github.com/mjpost/extract-spfeatures/util"
)

type Reader struct {
	in        *bufio.Reader
	lowercase bool
	sentences int
}

func NewReader(r io.Reader, lowercase bool) *Reader {
	return &Reader{in: bufio.NewReaderSize(r, 1<<20), lowercase: lowercase}
}

func (r *Reader) nextLine() (string, error) {
	for {
		line, err := r.in.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if len(line) > 0 {
			return line, nil
		}
		if err != nil {
			return "", err
		}
	}
}

// Read returns the next sentence block, or io.EOF at a clean end of
// stream. The conditional log probability of every parse is derived
// here by log-sum-exp normalizing the block's log probabilities.
func (r *Reader) Read() (*types.Sentence, error) {
	header, err := r.nextLine()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, err
	}
	r.sentences++
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return nil, fmt.Errorf("nbest: sentence %d: bad block header %q", r.sentences, header)
	}
	nparses, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("nbest: sentence %d: bad block header %q", r.sentences, header)
	}
	label := strconv.Itoa(r.sentences - 1)
	if len(fields) > 1 {
		label = fields[1]
	}
	sentence := &types.Sentence{
		Label:  label,
		Parses: make([]types.Parse, 0, nparses),
	}
	for i := 0; i < nparses; i++ {
		probLine, err := r.nextLine()
		if err != nil {
			return nil, fmt.Errorf("nbest: sentence %s: truncated at parse %d: %v", label, i, err)
		}
		logprob, err := strconv.ParseFloat(strings.TrimSpace(probLine), 64)
		if err != nil {
			return nil, fmt.Errorf("nbest: sentence %s: bad log probability %q", label, probLine)
		}
		treeLine, err := r.nextLine()
		if err != nil {
			return nil, fmt.Errorf("nbest: sentence %s: truncated at parse %d: %v", label, i, err)
		}
		tree, err := ptb.ParseTree(treeLine, r.lowercase)
		if err != nil {
			return nil, fmt.Errorf("nbest: sentence %s: parse %d: %v", label, i, err)
		}
		raw := tree
		if r.lowercase {
			raw, _ = ptb.ParseTree(treeLine, false)
		}
		sentence.Parses = append(sentence.Parses, types.Parse{Tree: tree, Raw: raw, LogProb: logprob})
	}
	setLogCondProbs(sentence)
	return sentence, nil
}

func setLogCondProbs(sentence *types.Sentence) {
	if len(sentence.Parses) == 0 {
		return
	}
	max := math.Inf(-1)
	for _, parse := range sentence.Parses {
		if parse.LogProb > max {
			max = parse.LogProb
		}
	}
	sum := 0.0
	for _, parse := range sentence.Parses {
		sum += math.Exp(parse.LogProb - max)
	}
	logsum := max + math.Log(sum)
	for i := range sentence.Parses {
		sentence.Parses[i].LogCondProb = sentence.Parses[i].LogProb - logsum
	}
}

// GoldReader reads the gold-tree stream aligned with an n-best stream.
type GoldReader struct {
	in        *bufio.Reader
	lowercase bool
	declared  int
	pending   string
	primed    bool
	read      int
}

// NewGoldReader wraps r; a leading line holding a bare integer is
// consumed as the declared sentence count (Declared returns -1 when
// absent).
func NewGoldReader(r io.Reader, lowercase bool) (*GoldReader, error) {
	g := &GoldReader{in: bufio.NewReaderSize(r, 1<<20), lowercase: lowercase, declared: -1}
	line, err := g.nextLine()
	if err == io.EOF {
		return g, nil
	}
	if err != nil {
		return nil, err
	}
	if count, cerr := strconv.Atoi(strings.TrimSpace(line)); cerr == nil {
		g.declared = count
	} else {
		g.pending = line
		g.primed = true
	}
	return g, nil
}

func (g *GoldReader) Declared() int {
	return g.declared
}

func (g *GoldReader) nextLine() (string, error) {
	for {
		line, err := g.in.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if len(line) > 0 {
			return line, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (g *GoldReader) Read() (*types.Tree, error) {
	var line string
	if g.primed {
		line, g.primed = g.pending, false
	} else {
		var err error
		line, err = g.nextLine()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
	}
	g.read++
	tree, err := ptb.ParseTree(line, g.lowercase)
	if err != nil {
		return nil, fmt.Errorf("nbest: gold tree %d: %v", g.read, err)
	}
	return tree, nil
}

// MapSentences pairs the n-best stream with the gold stream and calls
// visit once per sentence, in input order. It returns the number of
// sentences visited.
func MapSentences(nbestFile, goldFile string, lowercase bool, visit func(*types.Sentence) error) (int, error) {
	nbestIn, err := util.OpenForRead(nbestFile)
	if err != nil {
		return 0, err
	}
	defer nbestIn.Close()
	goldIn, err := util.OpenForRead(goldFile)
	if err != nil {
		return 0, err
	}
	defer goldIn.Close()

	parses := NewReader(nbestIn, lowercase)
	gold, err := NewGoldReader(goldIn, lowercase)
	if err != nil {
		return 0, err
	}
	count := 0
	for {
		sentence, err := parses.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		goldTree, err := gold.Read()
		if err == io.EOF {
			return count, fmt.Errorf("nbest: gold stream %s ended at sentence %d", goldFile, count+1)
		}
		if err != nil {
			return count, err
		}
		sentence.Gold = goldTree
		if err := visit(sentence); err != nil {
			return count, err
		}
		count++
	}
	if gold.Declared() >= 0 && gold.Declared() != count {
		return count, fmt.Errorf("nbest: gold stream %s declares %d sentences, read %d", goldFile, gold.Declared(), count)
	}
	return count, nil
}

package nbest

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mjpost/extract-spfeatures/nlp/types"
)

const twoBlocks = `2 sent.7
-10
(S1 (NP (NNS dogs)))
-12.5
(S1 (VP (VB bark)))
1
-3
(S1 (NN word))
`

func TestReadBlocks(t *testing.T) {
	r := NewReader(strings.NewReader(twoBlocks), false)

	first, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	if first.Label != "sent.7" {
		t.Error("Got label", first.Label, "expected sent.7")
	}
	if first.NParses() != 2 {
		t.Error("Got", first.NParses(), "parses expected 2")
	}
	if first.Parses[0].LogProb != -10 || first.Parses[1].LogProb != -12.5 {
		t.Error("Got log probabilities", first.Parses[0].LogProb, first.Parses[1].LogProb,
			"expected -10 -12.5")
	}

	second, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	if second.Label != "1" {
		t.Error("Got label", second.Label, "expected the ordinal 1")
	}

	if _, err := r.Read(); err != io.EOF {
		t.Error("Got", err, "expected EOF")
	}
}

func TestLogCondProb(t *testing.T) {
	input := "2\n0\n(S1 (NN a))\n0\n(S1 (NN b))\n"
	r := NewReader(strings.NewReader(input), false)
	sentence, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	want := -math.Log(2)
	for i := range sentence.Parses {
		if math.Abs(sentence.Parses[i].LogCondProb-want) > 1e-12 {
			t.Error("Got conditional log probability", sentence.Parses[i].LogCondProb,
				"for parse", i, "expected", want)
		}
	}
}

func TestLowercaseKeepsRaw(t *testing.T) {
	input := "1\n-1\n(S1 (NNP Paris))\n"
	r := NewReader(strings.NewReader(input), true)
	sentence, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	parse := sentence.Parses[0]
	if parse.Tree.Word(parse.Tree.Preterms[0]) != types.Intern("paris") {
		t.Error("Processed tree not lowercased")
	}
	if parse.Raw.Word(parse.Raw.Preterms[0]) != types.Intern("Paris") {
		t.Error("Raw tree lost the original casing")
	}

	r = NewReader(strings.NewReader(input), false)
	sentence, err = r.Read()
	if err != nil {
		t.Fatal(err)
	}
	if sentence.Parses[0].Tree != sentence.Parses[0].Raw {
		t.Error("Got distinct trees without lowercasing expected the same object")
	}
}

func TestReadBadHeader(t *testing.T) {
	r := NewReader(strings.NewReader("x\n"), false)
	_, err := r.Read()
	if err == nil || !strings.Contains(err.Error(), "bad block header") {
		t.Error("Got", err, "expected bad header error")
	}
}

func TestReadTruncatedBlock(t *testing.T) {
	r := NewReader(strings.NewReader("2\n-1\n(S1 (NN a))\n"), false)
	_, err := r.Read()
	if err == nil || !strings.Contains(err.Error(), "truncated") {
		t.Error("Got", err, "expected truncation error")
	}
}

func TestGoldReaderDeclaredCount(t *testing.T) {
	g, err := NewGoldReader(strings.NewReader("2\n(S1 (NN a))\n(S1 (NN b))\n"), false)
	if err != nil {
		t.Fatal(err)
	}
	if g.Declared() != 2 {
		t.Error("Got declared count", g.Declared(), "expected 2")
	}
	for i := 0; i < 2; i++ {
		if _, err := g.Read(); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := g.Read(); err != io.EOF {
		t.Error("Got", err, "expected EOF")
	}
}

func TestGoldReaderWithoutCount(t *testing.T) {
	g, err := NewGoldReader(strings.NewReader("(S1 (NN a))\n"), false)
	if err != nil {
		t.Fatal(err)
	}
	if g.Declared() != -1 {
		t.Error("Got declared count", g.Declared(), "expected -1")
	}
	tree, err := g.Read()
	if err != nil {
		t.Fatal(err)
	}
	if tree.Cat(tree.Root()) != types.Intern("S1") {
		t.Error("Got root", tree.Cat(tree.Root()), "expected S1")
	}
}

func TestGoldReaderEmptyStream(t *testing.T) {
	g, err := NewGoldReader(strings.NewReader(""), false)
	if err != nil {
		t.Fatal(err)
	}
	if g.Declared() != -1 {
		t.Error("Got declared count", g.Declared(), "expected -1")
	}
	if _, err := g.Read(); err != io.EOF {
		t.Error("Got", err, "expected EOF")
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(filename, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestMapSentences(t *testing.T) {
	nbestFile := writeTempFile(t, "dev.nbest", twoBlocks)
	goldFile := writeTempFile(t, "dev.gold", "2\n(S1 (NP (NNS dogs)))\n(S1 (NN word))\n")

	count, err := MapSentences(nbestFile, goldFile, false, func(s *types.Sentence) error {
		if s.Gold == nil {
			t.Error("Sentence", s.Label, "has no gold tree")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Error("Got", count, "sentences expected 2")
	}
}

func TestMapSentencesCountMismatch(t *testing.T) {
	nbestFile := writeTempFile(t, "dev.nbest", twoBlocks)
	goldFile := writeTempFile(t, "dev.gold", "3\n(S1 (NP (NNS dogs)))\n(S1 (NN word))\n(S1 (NN extra))\n")

	_, err := MapSentences(nbestFile, goldFile, false, func(s *types.Sentence) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "declares") {
		t.Error("Got", err, "expected declared count mismatch error")
	}
}

package rerank

import (
	"fmt"
	"io"
	"sort"

	"github.com/mjpost/extract-spfeatures/eval"
	"github.com/mjpost/extract-spfeatures/nlp/format/nbest"
	"github.com/mjpost/extract-spfeatures/nlp/types"
	"github.com/mjpost/extract-spfeatures/util"
)

// ExportWriter emits the sparse training-data format the weight
// estimator consumes: a sentence-count header, then one line per
// sentence with the gold edge count, the parse count, and every
// parse's bracket statistics followed by its feature values.
type ExportWriter struct {
	w        io.Writer
	registry *Registry
	absolute bool
}

func NewExportWriter(w io.Writer, registry *Registry, absolute bool) *ExportWriter {
	return &ExportWriter{w: w, registry: registry, absolute: absolute}
}

func (e *ExportWriter) WriteHeader(nsentences int) error {
	_, err := fmt.Fprintf(e.w, "S=%d\n", nsentences)
	return err
}

func (e *ExportWriter) WriteSentence(sentence *types.Sentence) error {
	goldEdges := eval.TreeEdges(sentence.Gold)
	if _, err := fmt.Fprintf(e.w, "G=%d N=%d", goldEdges.Size(), sentence.NParses()); err != nil {
		return err
	}
	vectors := e.registry.FeatureValues(sentence, e.absolute)
	for i := range sentence.Parses {
		testEdges := eval.TreeEdges(sentence.Parses[i].Tree)
		_, err := fmt.Fprintf(e.w, " P=%d W=%d", testEdges.Size(), testEdges.Intersect(goldEdges))
		if err != nil {
			return err
		}
		if err := writeVector(e.w, vectors[i]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(e.w)
	return err
}

// WriteFeatureFile maps one n-best/gold file pair into a feature count
// file. The gold stream must declare its sentence count up front; the
// header is written before the first sentence arrives.
func WriteFeatureFile(registry *Registry, absolute bool, nbestFile, goldFile, outFile string, lowercase bool) (err error) {
	nbIn, err := util.OpenForRead(nbestFile)
	if err != nil {
		return err
	}
	defer nbIn.Close()
	goldIn, err := util.OpenForRead(goldFile)
	if err != nil {
		return err
	}
	defer goldIn.Close()

	reader := nbest.NewReader(nbIn, lowercase)
	gold, err := nbest.NewGoldReader(goldIn, lowercase)
	if err != nil {
		return err
	}
	if gold.Declared() < 0 {
		return fmt.Errorf("%s: missing sentence count", goldFile)
	}

	out, err := util.OpenForWrite(outFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	writer := NewExportWriter(out, registry, absolute)
	if err := writer.WriteHeader(gold.Declared()); err != nil {
		return err
	}
	written := 0
	for {
		sentence, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		tree, err := gold.Read()
		if err == io.EOF {
			return fmt.Errorf("%s: ran out of gold trees after %d sentences", goldFile, written)
		}
		if err != nil {
			return err
		}
		sentence.Gold = tree
		if err := writer.WriteSentence(sentence); err != nil {
			return err
		}
		written++
	}
	if written != gold.Declared() {
		return fmt.Errorf("%s declares %d sentences, got %d", goldFile, gold.Declared(), written)
	}
	return nil
}

// writeVector prints the nonzero feature values in ascending id order,
// " id" when the value is one and " id=value" otherwise, closed by a
// comma.
func writeVector(w io.Writer, vector FeatureVector) error {
	ids := make([]FeatureId, 0, len(vector))
	for id := range vector {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	for _, id := range ids {
		var err error
		if value := vector[id]; value == 1 {
			_, err = fmt.Fprintf(w, " %d", id)
		} else {
			_, err = fmt.Fprintf(w, " %d=%.6g", id, value)
		}
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ",")
	return err
}

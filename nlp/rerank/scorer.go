package rerank

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mjpost/extract-spfeatures/nlp/format/ptb"
	"github.com/mjpost/extract-spfeatures/nlp/types"
)

// Scorer applies a weight vector to the feature values of an n-best
// list.
type Scorer struct {
	Registry *Registry
	Weights  []float64
	Absolute bool
}

func NewScorer(registry *Registry, weights []float64, absolute bool) *Scorer {
	return &Scorer{Registry: registry, Weights: weights, Absolute: absolute}
}

// weight returns the weight of id. A vector can only hold ids the
// loaded definitions assigned, so an id beyond the weight vector means
// the definition and weight files belong to different models.
func (s *Scorer) weight(id FeatureId) float64 {
	if int(id) >= len(s.Weights) {
		panic(fmt.Sprintf("feature id %d out of range, weight vector holds %d", id, len(s.Weights)))
	}
	return s.Weights[id]
}

// Score returns the model score of every parse of the sentence.
func (s *Scorer) Score(sentence *types.Sentence) []float64 {
	vectors := s.Registry.FeatureValues(sentence, s.Absolute)
	scores := make([]float64, len(vectors))
	for i, vector := range vectors {
		w := 0.0
		for id, value := range vector {
			w += value * s.weight(id)
		}
		scores[i] = w
	}
	return scores
}

// BestParse returns the index of the highest scoring parse. The
// earliest parse wins ties, so with all-zero weights the parser's own
// ranking stands.
func (s *Scorer) BestParse(sentence *types.Sentence) int {
	scores := s.Score(sentence)
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}

// RankedParses returns the parse indices in descending score order
// along with the scores, indexed by parse. Equal scores rank in no
// particular order.
func (s *Scorer) RankedParses(sentence *types.Sentence) ([]int, []float64) {
	scores := s.Score(sentence)
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	return order, scores
}

// WriteBestTree prints the top-scoring parse as a bracketed tree.
func (s *Scorer) WriteBestTree(w io.Writer, sentence *types.Sentence) error {
	best := s.BestParse(sentence)
	_, err := fmt.Fprintln(w, ptb.Format(sentence.Parses[best].Raw))
	return err
}

// WriteRankedTrees prints the sentence header and then every parse in
// descending score order, each as a score and log probability line
// followed by the tree.
func (s *Scorer) WriteRankedTrees(w io.Writer, sentence *types.Sentence) error {
	if _, err := fmt.Fprintf(w, "%d %s\n", sentence.NParses(), sentence.Label); err != nil {
		return err
	}
	order, scores := s.RankedParses(sentence)
	for _, i := range order {
		parse := &sentence.Parses[i]
		_, err := fmt.Fprintf(w, "%.6g %.6g\n%s\n", scores[i], parse.LogProb, ptb.Format(parse.Raw))
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteFeaturesDebug prints one "label parse id value" line for every
// weighted feature of every parse. Feature id 0, the parser
// probability itself, is skipped.
func (s *Scorer) WriteFeaturesDebug(w io.Writer, sentence *types.Sentence) error {
	vectors := s.Registry.FeatureValues(sentence, s.Absolute)
	for i, vector := range vectors {
		ids := make([]FeatureId, 0, len(vector))
		for id := range vector {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
		for _, id := range ids {
			if id == 0 {
				continue
			}
			if s.weight(id) == 0 {
				continue
			}
			_, err := fmt.Fprintf(w, "%s %d %d %.6g\n", sentence.Label, i, id, vector[id])
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadWeights reads "id = weight" lines into a dense vector with
// maxid+1 entries. Ids beyond maxid and duplicate assignments are
// rejected.
func ReadWeights(in io.Reader, maxid FeatureId) ([]float64, error) {
	weights := make([]float64, int(maxid)+1)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<24)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var id FeatureId
		var weight float64
		if _, err := fmt.Sscanf(line, "%d = %g", &id, &weight); err != nil {
			return nil, fmt.Errorf("feature weights line %d: bad entry %q", lineno, line)
		}
		if id > maxid {
			return nil, fmt.Errorf("feature weights line %d: id %d out of range, maxid = %d", lineno, id, maxid)
		}
		if weights[id] != 0 {
			return nil, fmt.Errorf("feature weights line %d: id %d assigned twice", lineno, id)
		}
		weights[id] = weight
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return weights, nil
}

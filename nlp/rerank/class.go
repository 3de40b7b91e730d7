// Package rerank maps n-best parse lists to sparse feature vectors and
// scores them under a linear model.
//
// A feature class recognizes one family of tree configurations and
// owns the features it found, keyed by their printed form. The
// registry drives the classes through the two corpus passes: an
// occurrence-counting pass over training sentences, then pruning and
// dense renumbering, after which classes map sentences to per-parse
// feature vectors for export or scoring.
package rerank

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mjpost/extract-spfeatures/nlp/types"
)

type FeatureId int

// FeatureVector holds the nonzero feature values of one parse.
type FeatureVector map[FeatureId]float64

// Marker tokens that feature keys are built from. They share the
// namespace of treebank categories, so they use characters no
// category can contain.
const (
	endMarker          = "_"
	childMarker        = "*CHILD*"
	adjunctMarker      = "*ADJ*"
	conjunctMarker     = "*CONJ*"
	headMarker         = "*HEAD*"
	lastAdjunctMarker  = "*LASTADJ*"
	lastConjunctMarker = "*LASTCONJ*"
	nonRootMarker      = "*NONROOT*"
	postHeadMarker     = "*POSTHEAD*"
	preHeadMarker      = "*PREHEAD*"
	zeroMarker         = "0"
)

// quantize maps a non-negative count onto the coarse scale used
// throughout the feature keys.
func quantize(v int) string {
	switch v {
	case 0:
		return "0"
	case 1:
		return "1"
	case 2:
		return "2"
	case 3, 4:
		return "4"
	}
	return "5"
}

func isBoundingNode(t *types.Tree, n types.NodeID) bool {
	if n == types.NoNode {
		return false
	}
	cat := t.Cat(n)
	return cat == types.SymNP || cat == types.SymRoot ||
		cat == types.SymS || cat == types.SymSBAR
}

// accumulator receives (feature key, value delta) pairs from a counter
// walking one parse. Touching a key records its presence on the parse
// even when the delta is zero.
type accumulator interface {
	add(key string, delta float64)
}

// counter is the per-class extraction logic: Identifier names the
// class in definition files, countParse reports the class's features
// on one parse.
type counter interface {
	Identifier() string
	countParse(parse *types.Parse, acc accumulator)
}

// FeatureClass wraps a counter with the feature bookkeeping shared by
// every class: the key-to-id map that holds occurrence counts during
// extraction and dense ids afterwards.
type FeatureClass struct {
	counter
	ids map[string]FeatureId
}

func newClass(c counter) *FeatureClass {
	return &FeatureClass{counter: c, ids: make(map[string]FeatureId)}
}

func (fc *FeatureClass) NFeatures() int {
	return len(fc.ids)
}

type countAccumulator struct {
	parse  int
	counts map[string]map[int]float64
}

func (a *countAccumulator) add(key string, delta float64) {
	parseVals := a.counts[key]
	if parseVals == nil {
		parseVals = make(map[int]float64)
		a.counts[key] = parseVals
	}
	parseVals[a.parse] += delta
}

type valueAccumulator struct {
	fc     *FeatureClass
	parse  int
	values map[FeatureId]map[int]float64
}

func (a *valueAccumulator) add(key string, delta float64) {
	id, known := a.fc.ids[key]
	if !known {
		return
	}
	parseVals := a.values[id]
	if parseVals == nil {
		parseVals = make(map[int]float64)
		a.values[id] = parseVals
	}
	parseVals[a.parse] += delta
}

// ExtractFrom bumps the occurrence count of every feature that shows
// up in some parse of the sentence and passes the collection policy.
// Features whose value is identical across all parses can never
// separate them and are skipped. Unambiguous sentences are skipped
// entirely.
func (fc *FeatureClass) ExtractFrom(sentence *types.Sentence, collectCorrect, collectIncorrect bool) {
	if sentence.NParses() <= 1 {
		return
	}
	acc := &countAccumulator{counts: make(map[string]map[int]float64)}
	for i := range sentence.Parses {
		acc.parse = i
		fc.countParse(&sentence.Parses[i], acc)
	}
	nparses := sentence.NParses()
	for key, parseVals := range acc.counts {
		if isPseudoConstant(parseVals, nparses) {
			continue
		}
		_, onFirst := parseVals[0]
		if (collectCorrect && onFirst) ||
			(collectIncorrect && (!onFirst || len(parseVals) > 1)) {
			fc.ids[key]++
		}
	}
}

// isPseudoConstant reports whether the feature occurs on every parse
// with the same value.
func isPseudoConstant(parseVals map[int]float64, nparses int) bool {
	if len(parseVals) != nparses {
		return false
	}
	var reference float64
	first := true
	for _, val := range parseVals {
		if first {
			reference, first = val, false
		} else if val != reference {
			return false
		}
	}
	return true
}

// PruneAndRenumber drops features seen fewer than mincount times,
// assigns the survivors ids counting up from nextid, writes their
// definitions to w and returns the next unused id. Survivors are
// numbered in sorted key order so runs over the same corpus agree.
func (fc *FeatureClass) PruneAndRenumber(mincount int, nextid FeatureId, w io.Writer) (FeatureId, error) {
	kept := make([]string, 0, len(fc.ids))
	for key, count := range fc.ids {
		if int(count) >= mincount {
			kept = append(kept, key)
		}
	}
	sort.Strings(kept)
	fc.ids = make(map[string]FeatureId, len(kept))
	for _, key := range kept {
		fc.ids[key] = nextid
		nextid++
	}
	if err := fc.WriteDefinitions(w); err != nil {
		return nextid, err
	}
	return nextid, nil
}

// WriteDefinitions emits one line per feature, in id order:
// the id, a tab, the class identifier, a space and the feature key.
func (fc *FeatureClass) WriteDefinitions(w io.Writer) error {
	type idKey struct {
		id  FeatureId
		key string
	}
	entries := make([]idKey, 0, len(fc.ids))
	for key, id := range fc.ids {
		entries = append(entries, idKey{id, key})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })
	for _, entry := range entries {
		if _, err := fmt.Fprintf(w, "%d\t%s %s\n", entry.id, fc.Identifier(), entry.key); err != nil {
			return err
		}
	}
	return nil
}

// ReadFeature registers a key read back from a definition file under
// the given id.
func (fc *FeatureClass) ReadFeature(id FeatureId, key string) error {
	if _, exists := fc.ids[key]; exists {
		return fmt.Errorf("duplicate feature, id = %d, f = `%s'", id, key)
	}
	fc.ids[key] = id
	return nil
}

// FeatureValues adds this class's values for each parse of the
// sentence to out, which must hold one vector per parse. Only features
// with assigned ids contribute. In relative mode the per-sentence mode
// value of each feature is subtracted from every parse's value, so a
// value shared by most parses drops out of all of them.
func (fc *FeatureClass) FeatureValues(sentence *types.Sentence, absolute bool, out []FeatureVector) {
	acc := &valueAccumulator{fc: fc, values: make(map[FeatureId]map[int]float64)}
	for i := range sentence.Parses {
		acc.parse = i
		fc.countParse(&sentence.Parses[i], acc)
	}
	nparses := sentence.NParses()
	for id, parseVals := range acc.values {
		if absolute {
			for i := 0; i < nparses; i++ {
				if val := parseVals[i]; val != 0 {
					out[i][id] = val
				}
			}
			continue
		}
		gain := make(map[float64]int)
		for i := 0; i < nparses; i++ {
			val := parseVals[i]
			gain[val] += 2
			gain[val-1]++
		}
		mode := histogramMode(gain)
		for i := 0; i < nparses; i++ {
			if val := parseVals[i] - mode; val != 0 {
				out[i][id] = val
			}
		}
	}
}

// histogramMode returns the value with the highest gain; ties go to
// the smallest value.
func histogramMode(gain map[float64]int) float64 {
	vals := make([]float64, 0, len(gain))
	for val := range gain {
		vals = append(vals, val)
	}
	sort.Float64s(vals)
	mode, best := 0.0, -1
	for _, val := range vals {
		if gain[val] > best {
			mode, best = val, gain[val]
		}
	}
	return mode
}

// Registry holds an ordered list of feature classes and runs them as
// one model.
type Registry struct {
	Classes []*FeatureClass
}

func (r *Registry) ExtractFrom(sentence *types.Sentence, collectCorrect, collectIncorrect bool) {
	for _, fc := range r.Classes {
		fc.ExtractFrom(sentence, collectCorrect, collectIncorrect)
	}
}

// PruneAndRenumber prunes every class and numbers the survivors in
// class order into one dense id block starting at 0, writing the
// definitions to w as it goes. It returns the number of ids assigned.
func (r *Registry) PruneAndRenumber(mincount int, w io.Writer) (FeatureId, error) {
	var nextid FeatureId
	var err error
	for _, fc := range r.Classes {
		nextid, err = fc.PruneAndRenumber(mincount, nextid, w)
		if err != nil {
			return nextid, err
		}
	}
	return nextid, nil
}

func (r *Registry) WriteDefinitions(w io.Writer) error {
	for _, fc := range r.Classes {
		if err := fc.WriteDefinitions(w); err != nil {
			return err
		}
	}
	return nil
}

// LoadDefinitions reads feature definitions, dispatching each line to
// the class whose identifier it names, and returns the largest id
// seen. A definition for an unknown class means the model and this
// registry disagree about the feature set.
func (r *Registry) LoadDefinitions(in io.Reader) (FeatureId, error) {
	byIdent := make(map[string]*FeatureClass, len(r.Classes))
	for _, fc := range r.Classes {
		byIdent[fc.Identifier()] = fc
	}
	var maxid FeatureId
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<24)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var id FeatureId
		var ident string
		rest, err := splitDefinition(line, &id, &ident)
		if err != nil {
			return maxid, fmt.Errorf("feature definitions line %d: %v", lineno, err)
		}
		fc, known := byIdent[ident]
		if !known {
			return maxid, fmt.Errorf("can't find feature identifier %s in feature list", ident)
		}
		if err := fc.ReadFeature(id, rest); err != nil {
			return maxid, err
		}
		if id > maxid {
			maxid = id
		}
	}
	if err := scanner.Err(); err != nil {
		return maxid, err
	}
	return maxid, nil
}

// splitDefinition takes a line "<id>\t<identifier> <key>" apart; the
// key is everything after the identifier.
func splitDefinition(line string, id *FeatureId, ident *string) (string, error) {
	idText, rest, found := strings.Cut(line, "\t")
	if !found {
		idText, rest, found = strings.Cut(line, " ")
		if !found {
			return "", fmt.Errorf("bad definition %q", line)
		}
	}
	if _, err := fmt.Sscanf(idText, "%d", id); err != nil {
		return "", fmt.Errorf("bad feature id %q", idText)
	}
	identText, key, found := strings.Cut(rest, " ")
	if !found {
		return "", fmt.Errorf("bad definition %q", line)
	}
	*ident = identText
	return strings.TrimSpace(key), nil
}

// FeatureValues maps a sentence to one feature vector per parse.
func (r *Registry) FeatureValues(sentence *types.Sentence, absolute bool) []FeatureVector {
	out := make([]FeatureVector, sentence.NParses())
	for i := range out {
		out[i] = make(FeatureVector)
	}
	for _, fc := range r.Classes {
		fc.FeatureValues(sentence, absolute, out)
	}
	return out
}

func (r *Registry) NFeatures() int {
	total := 0
	for _, fc := range r.Classes {
		total += fc.NFeatures()
	}
	return total
}

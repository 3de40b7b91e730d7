package rerank

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mjpost/extract-spfeatures/nlp/types"

	"gopkg.in/yaml.v3"
)

// FeatureSetup is a feature-set definition read from a YAML file. It
// names the set, pulls in zero or more built-in sets and appends
// individually configured classes, each written in the same
// colon-separated form the definition files use.
type FeatureSetup struct {
	Name     string   `yaml:"name"`
	Include  []string `yaml:"include"`
	Features []string `yaml:"features"`
}

func LoadFeatureSetup(conf []byte) (*FeatureSetup, error) {
	setup := new(FeatureSetup)
	if err := yaml.Unmarshal(conf, setup); err != nil {
		return nil, err
	}
	return setup, nil
}

func LoadFeatureSetupFile(filename string) (*FeatureSetup, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return LoadFeatureSetup(data)
}

// Registry instantiates the configured classes, included sets first,
// in file order.
func (s *FeatureSetup) Registry() (*Registry, error) {
	b := &setBuilder{}
	for _, name := range s.Include {
		if err := b.builtin(name); err != nil {
			return nil, err
		}
	}
	for _, spec := range s.Features {
		c, err := parseFeatureSpec(spec)
		if err != nil {
			return nil, err
		}
		b.add(c)
	}
	if len(b.classes) == 0 {
		return nil, fmt.Errorf("feature setup %q configures no feature classes", s.Name)
	}
	log.Printf("# There are %d feature classes.", len(b.classes))
	return &Registry{Classes: b.classes}, nil
}

// NewRegistryFor builds a registry from either a built-in set name or,
// when the name ends in .yaml or .yml, a feature setup file.
func NewRegistryFor(name string) (*Registry, error) {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		setup, err := LoadFeatureSetupFile(name)
		if err != nil {
			return nil, err
		}
		return setup.Registry()
	}
	return NewRegistry(name)
}

// specFields walks the colon-separated arguments of one feature spec,
// recording the first conversion error instead of failing fast.
type specFields struct {
	spec   string
	fields []string
	pos    int
	err    error
}

func (p *specFields) next() string {
	if p.err != nil {
		return ""
	}
	if p.pos >= len(p.fields) {
		p.err = fmt.Errorf("feature spec %q: missing argument %d", p.spec, p.pos)
		return ""
	}
	f := p.fields[p.pos]
	p.pos++
	return f
}

func (p *specFields) fail(err error) {
	if p.err == nil {
		p.err = fmt.Errorf("feature spec %q: %v", p.spec, err)
	}
}

func (p *specFields) Int() int {
	v, err := strconv.Atoi(p.next())
	if err != nil {
		p.fail(err)
	}
	return v
}

func (p *specFields) Bool() bool {
	v, err := strconv.ParseBool(p.next())
	if err != nil {
		p.fail(err)
	}
	return v
}

func (p *specFields) Float() float64 {
	v, err := strconv.ParseFloat(p.next(), 64)
	if err != nil {
		p.fail(err)
	}
	return v
}

func (p *specFields) Annotation() annotationLevel {
	switch f := p.next(); f {
	case "none":
		return annNone
	case "pos":
		return annPOS
	case "lexical":
		return annLexical
	default:
		p.fail(fmt.Errorf("unknown annotation level %q", f))
		return annNone
	}
}

func (p *specFields) HeadType() types.HeadType {
	switch f := p.next(); f {
	case "syntactic":
		return types.SyntacticHead
	case "semantic":
		return types.SemanticHead
	default:
		p.fail(fmt.Errorf("unknown head type %q", f))
		return types.SyntacticHead
	}
}

func (p *specFields) Lexicalize() lexicalizeType {
	switch f := p.next(); f {
	case "none":
		return lexicalizeNone
	case "closed_class":
		return lexicalizeClosedClass
	case "functional":
		return lexicalizeFunctional
	case "all":
		return lexicalizeAll
	default:
		p.fail(fmt.Errorf("unknown lexicalization %q", f))
		return lexicalizeNone
	}
}

func (p *specFields) Info() infoLevel {
	switch f := p.next(); f {
	case "pos":
		return infoPOS
	case "closedclass":
		return infoClosedClass
	case "lexical":
		return infoLexical
	default:
		p.fail(fmt.Errorf("unknown head info level %q", f))
		return infoPOS
	}
}

func (p *specFields) SynSem() synSemAnnotation {
	switch f := p.next(); f {
	case "none":
		return synSemNone
	case "lex_syn":
		return synSemLexSyn
	case "lex_all":
		return synSemLexAll
	default:
		p.fail(fmt.Errorf("unknown head annotation %q", f))
		return synSemNone
	}
}

// Edge reads one boundary window, five ints whose first carries the
// window's position tag (ll, lr, rl or rr).
func (p *specFields) Edge(prefix string) EdgeSpec {
	first := p.next()
	if p.err != nil {
		return EdgeSpec{}
	}
	if !strings.HasPrefix(first, prefix) {
		p.fail(fmt.Errorf("expected %s window, got %q", prefix, first))
		return EdgeSpec{}
	}
	punct, err := strconv.Atoi(strings.TrimPrefix(first, prefix))
	if err != nil {
		p.fail(err)
		return EdgeSpec{}
	}
	return EdgeSpec{Punct: punct, POS: p.Int(), Closed: p.Int(), Word: p.Int(), NSuffix: p.Int()}
}

// parseFeatureSpec turns a class identifier back into the class it
// names. Identifier and parseFeatureSpec are inverses: parsing any
// class's Identifier yields a class with the same Identifier.
func parseFeatureSpec(spec string) (counter, error) {
	p := &specFields{spec: spec, fields: strings.Split(strings.TrimSpace(spec), ":")}
	var c counter
	switch kind := p.next(); kind {
	case "NLogP":
		c = NLogP{}
	case "NLogCondP":
		c = NLogCondP{}
	case "BinnedLogCondP":
		c = NewBinnedLogCondP(p.Int(), p.Float())
	case "InterpLogCondP":
		c = NewInterpLogCondP(p.Int(), p.Float())
	case "Rule":
		c = NewRule(p.Int(), p.Int(), p.Bool(), p.Bool(),
			p.Annotation(), p.Annotation(), p.Annotation(), p.HeadType())
	case "NGram":
		c = NewNGram(p.Int(), p.Int(), p.Bool(), p.Bool(),
			p.Annotation(), p.Annotation(), p.Annotation(), p.HeadType())
	case "NNGram":
		fraglen := p.Int()
		headdir := p.Bool()
		headdist := p.Bool()
		c = NewNNGram(fraglen, p.Int(), p.Bool(), p.Bool(),
			p.Annotation(), p.Annotation(), p.Annotation(), p.HeadType(),
			headdir, headdist)
	case "Word":
		c = NewWord(p.Int())
	case "WProj":
		c = NewWProj(p.HeadType(), p.Bool(), p.Int())
	case "RightBranch":
		c = RightBranch{}
	case "LeftBranchLength":
		c = LeftBranchLength{}
	case "RightBranchLength":
		c = RightBranchLength{}
	case "RBContext":
		c = NewRBContext(p.Bool(), p.Bool(), p.Bool(), p.HeadType())
	case "Heads":
		c = NewHeads(p.Int(), p.Bool(), p.Bool(), p.HeadType())
	case "WSHeads":
		c = NewWSHeads(p.Int(), p.Bool(), p.Int(), p.Info(), p.Info(), p.HeadType())
	case "SubjVerbAgr":
		c = SubjVerbAgr{}
	case "SynSemHeads":
		c = NewSynSemHeads(p.SynSem())
	case "CoPar":
		c = NewCoPar(p.Bool())
	case "CoLenPar":
		c = CoLenPar{}
	case "Neighbours":
		c = NewNeighbours(p.Int(), p.Int())
	case "WordNeighbours":
		c = NewWordNeighbours(p.Bool(), p.Int(), p.Int())
	case "Edges":
		c = NewEdges(p.Bool(), p.Int(), p.Int(), p.Int(), p.Int())
	case "WordEdges":
		c = NewWordEdges(p.Bool(), p.Int(), p.Int(), p.Int(), p.Int())
	case "WEdges":
		c = NewWEdges(p.Bool(), p.Int(), p.Int(), p.Int(), p.Int(),
			p.Int(), p.Int(), p.Int(), p.Int())
	case "WSEdges":
		binned := p.Bool()
		ll := p.Edge("ll")
		lr := p.Edge("lr")
		rl := p.Edge("rl")
		rr := p.Edge("rr")
		c = NewWSEdges(ll, lr, rl, rr, binned)
	case "Heavy":
		c = Heavy{}
	case "NGramTree":
		c = NewNGramTree(p.Int(), p.Lexicalize(), p.Bool(), p.Int())
	case "HeadTree":
		c = NewHeadTree(p.Bool(), p.Bool(), p.Int(), p.HeadType())
	default:
		return nil, fmt.Errorf("unknown feature class %q in spec %q", kind, spec)
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.pos != len(p.fields) {
		return nil, fmt.Errorf("feature spec %q: %d trailing arguments", spec, len(p.fields)-p.pos)
	}
	return c, nil
}

package rerank

import (
	"fmt"
	"math"

	"github.com/mjpost/extract-spfeatures/nlp/types"
)

// NLogP carries the parser's negated log probability as a single
// always-present feature.
type NLogP struct{}

func (NLogP) Identifier() string { return "NLogP" }

func (NLogP) countParse(parse *types.Parse, acc accumulator) {
	acc.add(zeroMarker, -parse.LogProb)
}

// NLogCondP is the negated log conditional probability of the parse
// within its n-best list.
type NLogCondP struct{}

func (NLogCondP) Identifier() string { return "NLogCondP" }

func (NLogCondP) countParse(parse *types.Parse, acc accumulator) {
	acc.add(zeroMarker, -parse.LogCondProb)
}

// BinnedLogCondP buckets the log conditional probability into nbins
// bins under the given log base and counts the bin.
type BinnedLogCondP struct {
	NBins int
	Base  float64

	logBase float64
	ident   string
}

func NewBinnedLogCondP(nbins int, base float64) *BinnedLogCondP {
	return &BinnedLogCondP{
		NBins:   nbins,
		Base:    base,
		logBase: math.Log(base),
		ident:   fmt.Sprintf("BinnedLogCondP:%d:%g", nbins, base),
	}
}

func (b *BinnedLogCondP) Identifier() string { return b.ident }

func (b *BinnedLogCondP) bin(logcondprob float64) int {
	bin := int(-logcondprob / b.logBase)
	if bin > b.NBins {
		bin = b.NBins
	}
	if bin < 1 {
		bin = 1
	}
	return bin
}

func (b *BinnedLogCondP) countParse(parse *types.Parse, acc accumulator) {
	acc.add(fmt.Sprintf("%d", b.bin(parse.LogCondProb)), 1)
}

// InterpLogCondP is BinnedLogCondP with the bin weighted by the
// magnitude being binned, giving a piecewise-linear interpolation.
type InterpLogCondP struct {
	NBins int
	Base  float64

	logBase float64
	ident   string
}

func NewInterpLogCondP(nbins int, base float64) *InterpLogCondP {
	return &InterpLogCondP{
		NBins:   nbins,
		Base:    base,
		logBase: math.Log(base),
		ident:   fmt.Sprintf("InterpLogCondP:%d:%g", nbins, base),
	}
}

func (b *InterpLogCondP) Identifier() string { return b.ident }

func (b *InterpLogCondP) countParse(parse *types.Parse, acc accumulator) {
	bin := int(-parse.LogCondProb / b.logBase)
	if bin > b.NBins {
		bin = b.NBins
	}
	if bin < 1 {
		bin = 1
	}
	acc.add(fmt.Sprintf("%d", bin), -parse.LogCondProb/b.logBase)
}

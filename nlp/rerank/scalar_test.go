package rerank

import (
	"math"
	"reflect"
	"testing"

	"github.com/mjpost/extract-spfeatures/nlp/types"
)

func TestNLogP(t *testing.T) {
	acc := make(mapAccumulator)
	NLogP{}.countParse(&types.Parse{LogProb: -10}, acc)
	want := mapAccumulator{"0": 10}
	if !reflect.DeepEqual(acc, want) {
		t.Error("Got", acc, "expected", want)
	}
}

func TestNLogCondP(t *testing.T) {
	acc := make(mapAccumulator)
	NLogCondP{}.countParse(&types.Parse{LogCondProb: -2.5}, acc)
	want := mapAccumulator{"0": 2.5}
	if !reflect.DeepEqual(acc, want) {
		t.Error("Got", acc, "expected", want)
	}
}

func TestBinnedLogCondP(t *testing.T) {
	b := NewBinnedLogCondP(10, 2)
	cases := []struct {
		logcondprob float64
		bin         string
	}{
		{-3.5 * math.Log(2), "3"},
		{0, "1"},
		{-20.5 * math.Log(2), "10"},
	}
	for _, c := range cases {
		acc := make(mapAccumulator)
		b.countParse(&types.Parse{LogCondProb: c.logcondprob}, acc)
		if len(acc) != 1 || acc[c.bin] != 1 {
			t.Error("Got", acc, "for", c.logcondprob, "expected bin", c.bin)
		}
	}
}

func TestInterpLogCondP(t *testing.T) {
	b := NewInterpLogCondP(10, 2)
	acc := make(mapAccumulator)
	b.countParse(&types.Parse{LogCondProb: -3.5 * math.Log(2)}, acc)
	if len(acc) != 1 || math.Abs(acc["3"]-3.5) > 1e-9 {
		t.Error("Got", acc, "expected 3.5 in bin 3")
	}
}

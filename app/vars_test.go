package app

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestModelRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "model.gob")
	in := &Serialization{
		FeatureSet:  "sfeatures",
		Definitions: []byte("RightBranch\n0\tNNS=1\n"),
		Weights:     []float64{0.5, -1.25},
	}
	WriteModel(file, in)
	out := ReadModel(file)
	if !reflect.DeepEqual(in, out) {
		t.Error("Got", out, "expected", in)
	}
}

func TestVerifyExists(t *testing.T) {
	file := filepath.Join(t.TempDir(), "present")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !VerifyExists(file) {
		t.Error("Got false for an existing file")
	}
	if VerifyExists(filepath.Join(t.TempDir(), "missing")) {
		t.Error("Got true for a missing file")
	}
}

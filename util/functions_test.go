package util

import (
	"strings"
	"testing"
)

func TestPrefixSuffix(t *testing.T) {
	if got := Prefix("barked", 3); got != "bar" {
		t.Error("Got", got, "expected bar")
	}
	if got := Suffix("barked", 3); got != "ked" {
		t.Error("Got", got, "expected ked")
	}
	if got := Prefix("in", 5); got != "in" {
		t.Error("Got", got, "expected in")
	}
	if got := Suffix("in", 5); got != "in" {
		t.Error("Got", got, "expected in")
	}
	if got := Suffix("in", 0); got != "" {
		t.Error("Got", got, "expected empty suffix")
	}
}

func TestMemoryUsage(t *testing.T) {
	usage := MemoryUsage()
	if !strings.Contains(usage, "in use") || !strings.Contains(usage, "from system") {
		t.Error("Got", usage)
	}
}

package util

import (
	"fmt"
	"runtime"
)

// MemoryUsage reports heap bytes in use and bytes obtained from the
// system, for progress logging after expensive phases.
func MemoryUsage() string {
	s := &runtime.MemStats{}
	runtime.ReadMemStats(s)
	return fmt.Sprintf("%.1fMB in use, %.1fMB from system",
		float64(s.HeapAlloc)/(1<<20), float64(s.Sys)/(1<<20))
}

func Max(a, b int) int {
	if a < b {
		return b
	}
	return a
}

func Min(a, b int) int {
	if a > b {
		return b
	}
	return a
}

func Prefix(s string, n int) string {
	return s[0:Min(len(s), n)]
}

func Suffix(s string, n int) string {
	return s[Max(len(s)-n, 0):len(s)]
}

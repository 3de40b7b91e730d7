package types

import (
	"github.com/mjpost/extract-spfeatures/util"
)

// Symbol is an interned category label or word token. All symbols go
// through one process-wide enum set, so equality is integer equality
// and symbols can key maps and feature tuples cheaply.
type Symbol int32

const NoSymbol Symbol = -1

// Pre-allocating the enumeration saves frequent reallocation while
// reading large n-best corpora.
const APPROX_SYMBOLS = 65536

var ESymbol = util.NewEnumSet(APPROX_SYMBOLS)

func Intern(value string) Symbol {
	enum, _ := ESymbol.Add(value)
	return Symbol(enum)
}

// Lookup returns the symbol for value without interning it; the second
// result reports whether value was ever interned.
func Lookup(value string) (Symbol, bool) {
	enum, exists := ESymbol.IndexOf(value)
	return Symbol(enum), exists
}

func (s Symbol) String() string {
	return ESymbol.ValueOf(int(s))
}

// Category symbols with hard-wired roles in predicates and head rules.
var (
	SymRoot1 = Intern("S1")
	SymRoot  = Intern("ROOT")
	SymTop   = Intern("TOP")
	SymNP    = Intern("NP")
	SymS     = Intern("S")
	SymSBAR  = Intern("SBAR")
	SymSINV  = Intern("SINV")
	SymVP    = Intern("VP")
	SymCC    = Intern("CC")
	SymCONJP = Intern("CONJP")
	SymPOS   = Intern("POS")
)

var punctuationTags = symbolSet("''", "``", "-LRB-", "-RRB-", ",", ".", ":")

var conjunctionTags = symbolSet("CC", "CONJP")

// Function-word part-of-speech tags.
var functionTags = symbolSet(
	"CC", "DT", "EX", "IN", "MD", "PDT", "POS", "PRP", "PRP$",
	"RP", "TO", "WDT", "WP", "WP$", "WRB")

// Closed-class tags add the particles and pronouns whose word identity
// is informative even in heavily pruned feature contexts.
var closedClassTags = symbolSet(
	"CC", "DT", "EX", "IN", "MD", "PDT", "POS", "PRP", "PRP$",
	"RP", "TO", "UH", "WDT", "WP", "WP$", "WRB")

func symbolSet(values ...string) map[Symbol]bool {
	set := make(map[Symbol]bool, len(values))
	for _, value := range values {
		set[Intern(value)] = true
	}
	return set
}

// Package ptb reads and writes Penn-treebank style bracketed parse
// trees, one tree per line.
package ptb

import (
	"fmt"
	"strings"

	"github.com/mjpost/extract-spfeatures/nlp/types"
)

type parser struct {
	input     string
	pos       int
	lowercase bool
	builder   *types.TreeBuilder
}

// ParseTree parses one bracketed tree. A missing root label, as in
// "( (S ...))", is read as TOP. When lowercase is set terminal words
// are lowercased as they are interned; category labels never are.
func ParseTree(line string, lowercase bool) (*types.Tree, error) {
	p := &parser{
		input:     line,
		lowercase: lowercase,
		builder:   types.NewTreeBuilder(),
	}
	p.skipSpace()
	if err := p.parseNode(types.NoNode); err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("ptb: trailing characters after tree: %q", p.input[p.pos:])
	}
	return p.builder.Finish(), nil
}

func (p *parser) parseNode(parent types.NodeID) error {
	if !p.consume('(') {
		return fmt.Errorf("ptb: expected '(' at offset %d in %q", p.pos, p.input)
	}
	p.skipSpace()
	label := p.atom()
	if label == "" && !p.peek('(') {
		return fmt.Errorf("ptb: empty constituent at offset %d in %q", p.pos, p.input)
	}
	if label == "" {
		label = "TOP"
	}
	node := p.builder.AddNode(types.Intern(label), parent)
	for {
		p.skipSpace()
		switch {
		case p.consume(')'):
			return nil
		case p.peek('('):
			if err := p.parseNode(node); err != nil {
				return err
			}
		default:
			word := p.atom()
			if word == "" {
				return fmt.Errorf("ptb: unterminated tree in %q", p.input)
			}
			if p.lowercase {
				word = strings.ToLower(word)
			}
			p.builder.AddNode(types.Intern(word), node)
		}
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek(c byte) bool {
	return p.pos < len(p.input) && p.input[p.pos] == c
}

func (p *parser) consume(c byte) bool {
	if p.peek(c) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) atom() string {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == ' ' || c == '\t' || c == '(' || c == ')' {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}

// Format serializes a tree back to the standard one-line bracketed
// form.
func Format(t *types.Tree) string {
	var sb strings.Builder
	formatNode(&sb, t, t.Root())
	return sb.String()
}

func formatNode(sb *strings.Builder, t *types.Tree, n types.NodeID) {
	if t.IsTerminal(n) {
		sb.WriteString(t.Cat(n).String())
		return
	}
	sb.WriteByte('(')
	sb.WriteString(t.Cat(n).String())
	for c := t.Child(n); c != types.NoNode; c = t.Next(c) {
		sb.WriteByte(' ')
		formatNode(sb, t, c)
	}
	sb.WriteByte(')')
}

package peg

import (
	"fmt"
	"strconv"
	"strings"
)

//  ---- Range ----

type Range struct {
	Start int
	End   int
}

func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%d", r.Start)
	}
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

//  ---- Node ----

// Node is one completed match in the parse tree.  It is immutable
// after creation: the engine builds the children list while the
// owning invocation is live and seals it here.
type Node struct {
	Label    string
	Children []*Node
	Start    int
	End      int

	// Value is the node's computed value: the value explicitly set
	// on its context, or else the last non-nil value among the
	// children, scanned from last to first.
	Value any
}

func (n *Node) Range() Range { return NewRange(n.Start, n.End) }

// Text returns the input span this node matched.
func (n *Node) Text(in *Input) string {
	return in.Text(n.Start, n.End)
}

func (n *Node) String() string {
	return fmt.Sprintf("%s @ %s", n.Label, n.Range())
}

// Find returns the first node in this subtree whose label starts
// with prefix, walking depth first.
func (n *Node) Find(prefix string) *Node {
	if strings.HasPrefix(n.Label, prefix) {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(prefix); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits this node and every descendant, stopping a branch when
// fn returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Pretty renders the subtree with box-drawing connectors.  Leaves
// also show the text they matched.
func (n *Node) Pretty(in *Input) string {
	p := &nodePrinter{input: in, output: &strings.Builder{}}
	p.visit(n)
	return p.output.String()
}

type nodePrinter struct {
	input  *Input
	padStr []string
	output *strings.Builder
}

func (p *nodePrinter) visit(n *Node) {
	p.write(n.Label)
	if len(n.Children) == 0 && n.End > n.Start {
		p.write(" " + strconv.Quote(n.Text(p.input)))
	}
	p.write(fmt.Sprintf(" (%s)", n.Range()))

	for i, child := range n.Children {
		p.write("\n")
		if i == len(n.Children)-1 {
			p.pwrite("└── ")
			p.indent("    ")
		} else {
			p.pwrite("├── ")
			p.indent("│   ")
		}
		p.visit(child)
		p.unindent()
	}
}

func (p *nodePrinter) indent(s string) { p.padStr = append(p.padStr, s) }
func (p *nodePrinter) unindent()       { p.padStr = p.padStr[:len(p.padStr)-1] }
func (p *nodePrinter) write(s string)  { p.output.WriteString(s) }

func (p *nodePrinter) pwrite(s string) {
	for _, pad := range p.padStr {
		p.write(pad)
	}
	p.write(s)
}

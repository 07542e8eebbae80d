package peg

import (
	"fmt"
	"strings"
)

type ruleKind int

// The category order of the report is fixed.
const (
	kindAction ruleKind = iota
	kindAny
	kindCharIgnoreCase
	kindChar
	kindCustom
	kindCharRange
	kindCharSet
	kindEmpty
	kindFirstOf
	kindOneOrMore
	kindOptional
	kindSequence
	kindTest
	kindTestNot
	kindZeroOrMore
	kindCount
)

var ruleKindNames = [kindCount]string{
	"Actions",
	"Any",
	"CharIgnoreCase",
	"Char",
	"Custom",
	"CharRange",
	"CharSet",
	"Empty",
	"FirstOf",
	"OneOrMore",
	"Optional",
	"Sequence",
	"Test",
	"TestNot",
	"ZeroOrMore",
}

func kindOf(m Matcher) ruleKind {
	switch m.(type) {
	case *ActionMatcher:
		return kindAction
	case *AnyMatcher:
		return kindAny
	case *CharIgnoreCaseMatcher:
		return kindCharIgnoreCase
	case *CharMatcher:
		return kindChar
	case *CharRangeMatcher:
		return kindCharRange
	case *CharSetMatcher:
		return kindCharSet
	case *EmptyMatcher:
		return kindEmpty
	case *FirstOfMatcher:
		return kindFirstOf
	case *OneOrMoreMatcher:
		return kindOneOrMore
	case *OptionalMatcher:
		return kindOptional
	case *SequenceMatcher:
		return kindSequence
	case *TestMatcher:
		return kindTest
	case *TestNotMatcher:
		return kindTestNot
	case *ZeroOrMoreMatcher:
		return kindZeroOrMore
	default:
		return kindCustom
	}
}

// Statistics counts the matchers reachable from one rule, each
// counted once even when shared or cyclic.
type Statistics struct {
	label       string
	counts      [kindCount]int
	total       int
	proxies     int
	actionNames map[string]struct{}
}

// StatisticsFor walks the rule graph rooted at root, deduplicating
// by matcher identity.
func StatisticsFor(root Matcher) *Statistics {
	s := &Statistics{
		label:       root.Label(),
		actionNames: make(map[string]struct{}),
	}
	s.visit(root, make(map[Matcher]struct{}))
	return s
}

func (s *Statistics) visit(m Matcher, seen map[Matcher]struct{}) {
	if _, ok := seen[m]; ok {
		return
	}
	seen[m] = struct{}{}

	if p, ok := m.(*ProxyMatcher); ok {
		s.proxies++
		if p.target != nil {
			s.visit(p.target, seen)
		}
		return
	}

	s.total++
	s.counts[kindOf(m)]++
	if a, ok := m.(*ActionMatcher); ok {
		s.actionNames[a.name] = struct{}{}
	}
	if ct, ok := m.(Container); ok {
		for _, child := range ct.Children() {
			s.visit(child, seen)
		}
	}
}

func (s *Statistics) Total() int   { return s.total }
func (s *Statistics) Proxies() int { return s.proxies }

func (s *Statistics) String() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Parser statistics for rule '%s':\n", s.label)
	fmt.Fprintf(b, "    Total rules       : %d\n", s.total)
	for k := ruleKind(0); k < kindCount; k++ {
		fmt.Fprintf(b, "        %-14s: %d\n", ruleKindNames[k], s.counts[k])
	}
	fmt.Fprintf(b, "\n    Action Classes    : %d\n", len(s.actionNames))
	fmt.Fprintf(b, "    Proxy Matchers    : %d\n", s.proxies)
	return b.String()
}

package peg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsReport(t *testing.T) {
	r := NewRules()
	sign := r.Get("Sign", func() Matcher {
		return FirstOf(Char('+'), Char('-'))
	})
	digit := r.Get("Digit", func() Matcher {
		return CharRange('0', '9')
	})
	rule1 := r.Get("Rule1", func() Matcher {
		return Sequence(sign, digit, sign, digit)
	})

	assert.Equal(t, ""+
		"Parser statistics for rule 'Rule1':\n"+
		"    Total rules       : 5\n"+
		"        Actions       : 0\n"+
		"        Any           : 0\n"+
		"        CharIgnoreCase: 0\n"+
		"        Char          : 2\n"+
		"        Custom        : 0\n"+
		"        CharRange     : 1\n"+
		"        CharSet       : 0\n"+
		"        Empty         : 0\n"+
		"        FirstOf       : 1\n"+
		"        OneOrMore     : 0\n"+
		"        Optional      : 0\n"+
		"        Sequence      : 1\n"+
		"        Test          : 0\n"+
		"        TestNot       : 0\n"+
		"        ZeroOrMore    : 0\n"+
		"\n"+
		"    Action Classes    : 0\n"+
		"    Proxy Matchers    : 3\n",
		StatisticsFor(rule1).String())
}

func TestStatisticsWithoutRuleCaching(t *testing.T) {
	// without memoization every reference builds its own sub-graph
	rule2 := Sequence(
		FirstOf(Char('+'), Char('-')),
		CharRange('0', '9'),
		FirstOf(Char('+'), Char('-')),
		CharRange('0', '9'),
	)

	s := StatisticsFor(rule2)
	assert.Equal(t, 9, s.Total())
	assert.Equal(t, 0, s.Proxies())
}

func TestStatisticsDeduplicateCyclicGraphs(t *testing.T) {
	r := NewRules()
	var parens func() Matcher
	parens = func() Matcher {
		return r.Get("Parens", func() Matcher {
			return FirstOf(
				Sequence(Char('('), parens(), Char(')')),
				Char('x'),
			)
		})
	}
	root := parens()

	s := StatisticsFor(root)
	// FirstOf, Sequence, '(', ')', 'x' -- each once, despite the cycle
	assert.Equal(t, 5, s.Total())
	assert.Equal(t, 1, s.Proxies())
}

func TestStatisticsCountActionClasses(t *testing.T) {
	touch := func(c *Context) error { return nil }
	g := Sequence(
		Action("First", touch),
		Action("First", touch),
		Action("Second", touch),
		Test(Char('a')),
		TestNot(Char('b')),
		Epsilon(),
		CharIgnoreCase('q'),
		AnyOf("xyz"),
		Any(),
	)

	s := StatisticsFor(g)
	require.NotNil(t, s)
	out := s.String()
	assert.Contains(t, out, "        Actions       : 3\n")
	assert.Contains(t, out, "    Action Classes    : 2\n")
	assert.Contains(t, out, "        Test          : 1\n")
	assert.Contains(t, out, "        TestNot       : 1\n")
	assert.Contains(t, out, "        Empty         : 1\n")
	assert.Contains(t, out, "        CharIgnoreCase: 1\n")
	assert.Contains(t, out, "        CharSet       : 1\n")
	assert.Contains(t, out, "        Any           : 1\n")
}

package peg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveMatchers(t *testing.T) {
	for _, test := range []struct {
		Name        string
		Matcher     Matcher
		Input       string
		ExpectedEnd int
	}{
		{"Char", Char('x'), "x", 1},
		{"CharIgnoreCase Lower", CharIgnoreCase('a'), "a", 1},
		{"CharIgnoreCase Upper", CharIgnoreCase('a'), "A", 1},
		{"CharRange", CharRange('0', '9'), "5", 1},
		{"CharSet", AnyOf("+-"), "-", 1},
		{"Any", Any(), "ü", 1},
		{"Empty", Epsilon(), "x", 0},
		{"Optional Present", Optional(Char('a')), "a", 1},
		{"Optional Absent", Optional(Char('a')), "b", 0},
		{"ZeroOrMore None", ZeroOrMore(Char('a')), "b", 0},
		{"ZeroOrMore Some", ZeroOrMore(Char('a')), "aaab", 3},
		{"OneOrMore", OneOrMore(CharRange('0', '9')), "123x", 3},
	} {
		t.Run(test.Name, func(t *testing.T) {
			node, parseErrors, err := Parse(test.Matcher, test.Input)
			require.NoError(t, err)
			require.NotNil(t, node)
			assert.Empty(t, parseErrors)
			assert.Equal(t, 0, node.Start)
			assert.Equal(t, test.ExpectedEnd, node.End)
		})
	}
}

func TestOneOrMoreRequiresOneMatch(t *testing.T) {
	g := FirstOf(
		OneOrMore(CharRange('0', '9')),
		OneOrMore(CharRange('a', 'z')),
	)
	node, parseErrors, err := Parse(g, "abc")
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Empty(t, parseErrors)
	assert.Equal(t, 3, node.End)
}

func TestAnyAtEndOfInput(t *testing.T) {
	node, parseErrors, err := Parse(Any(), "")
	require.NoError(t, err)
	require.NotNil(t, node)

	// no character to consume: end of input is the only follower,
	// so recovery virtually inserts the expected token
	require.Len(t, parseErrors, 1)
	assert.Equal(t, 0, parseErrors[0].Start)
	assert.Equal(t, "Invalid input EOI, expected any character", parseErrors[0].Message)
	assert.Equal(t, 0, node.End)
}

func TestRepetitionZeroWidthGuard(t *testing.T) {
	node, parseErrors, err := Parse(ZeroOrMore(Epsilon()), "x")
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Empty(t, parseErrors)
	assert.Equal(t, 0, node.End)
}

func TestSequenceStarters(t *testing.T) {
	t.Run("Stops At First Mandatory Element", func(t *testing.T) {
		st := Sequence(Char('a'), Char('b')).Starters()
		assert.True(t, st.Has('a'))
		assert.False(t, st.Has('b'))
		assert.False(t, st.HasEmpty())
	})

	t.Run("Skips Over Optional Prefix", func(t *testing.T) {
		st := Sequence(Optional(Char('a')), Char('b')).Starters()
		assert.True(t, st.Has('a'))
		assert.True(t, st.Has('b'))
		assert.False(t, st.HasEmpty())
	})

	t.Run("All Optional Keeps Zero Width", func(t *testing.T) {
		st := Sequence(Optional(Char('a')), Optional(Char('b'))).Starters()
		assert.True(t, st.Has('a'))
		assert.True(t, st.Has('b'))
		assert.True(t, st.HasEmpty())
	})
}

func TestProxyDelegation(t *testing.T) {
	target := Char('a')
	p := NewProxy()
	p.Arm(target)

	assert.Equal(t, "'a'", p.Label())
	assert.Equal(t, "'a'", p.Expected())
	assert.True(t, p.Starters().Has('a'))

	p.SetLabel("Letter")
	assert.Equal(t, "Letter", p.Label())
	assert.Same(t, Matcher(target), unwrap(p))

	node, parseErrors, err := Parse(p, "a")
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Empty(t, parseErrors)
	assert.Equal(t, "Letter", node.Label)
}

func TestCustomMatcher(t *testing.T) {
	// matches a lowercase hex digit pair
	hexPair := Custom("HexPair", CharsInRange('0', '9').Union(CharsInRange('a', 'f')),
		func(c *Context, enforced bool) (bool, error) {
			isHex := func(r rune) bool {
				return r >= '0' && r <= '9' || r >= 'a' && r <= 'f'
			}
			if !isHex(c.CurrentChar()) || !isHex(c.Input().LookAhead(c.Pos(), 1)) {
				return false, nil
			}
			c.Advance()
			c.Advance()
			c.CreateNode()
			return true, nil
		})

	node, parseErrors, err := Parse(hexPair, "fe")
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Empty(t, parseErrors)
	assert.Equal(t, "HexPair", node.Label)
	assert.Equal(t, 2, node.End)
}

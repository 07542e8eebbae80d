package peg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharsMembership(t *testing.T) {
	cs := CharsOf('a', 'b', 'z')
	assert.True(t, cs.Has('a'))
	assert.True(t, cs.Has('z'))
	assert.False(t, cs.Has('c'))
	assert.False(t, cs.Has(EOI))
	assert.False(t, cs.HasEmpty())
}

func TestCharsSentinels(t *testing.T) {
	cs := CharsOf('x', EOI, Empty)
	assert.True(t, cs.Has('x'))
	assert.True(t, cs.Has(EOI))
	assert.True(t, cs.HasEmpty())

	// the pseudo-members count as content
	assert.False(t, CharsOf(Empty).IsBlank())
	assert.False(t, CharsOf(EOI).IsBlank())
	assert.False(t, CharsOf('x').IsBlank())
	assert.True(t, CharsOf().IsBlank())
	assert.True(t, CharsOf('x').Without('x').IsBlank())
}

func TestCharsInRange(t *testing.T) {
	digits := CharsInRange('0', '9')
	assert.True(t, digits.Has('0'))
	assert.True(t, digits.Has('5'))
	assert.True(t, digits.Has('9'))
	assert.False(t, digits.Has('a'))
	assert.False(t, digits.Has('/'))
}

func TestCharsUnion(t *testing.T) {
	lower := CharsInRange('a', 'z')
	upper := CharsInRange('A', 'Z')
	letters := lower.Union(upper)

	assert.True(t, letters.Has('q'))
	assert.True(t, letters.Has('Q'))
	assert.False(t, letters.Has('5'))

	// union does not mutate its inputs
	assert.False(t, lower.Has('Q'))
	assert.False(t, upper.Has('q'))
}

func TestCharsWithout(t *testing.T) {
	cs := CharsOf('a', 'b', 'c', Empty)

	stripped := cs.Without(Empty)
	assert.False(t, stripped.HasEmpty())
	assert.True(t, stripped.Has('a'))
	assert.True(t, cs.HasEmpty())

	narrowed := cs.Without('b')
	assert.False(t, narrowed.Has('b'))
	assert.True(t, narrowed.Has('a'))
	assert.True(t, cs.Has('b'))
}

func TestAllChars(t *testing.T) {
	all := AllChars()
	assert.True(t, all.Has('a'))
	assert.True(t, all.Has('ü'))
	assert.True(t, all.Has('世'))
	assert.False(t, all.Has(EOI))
	assert.False(t, all.HasEmpty())
}

func TestCharsString(t *testing.T) {
	assert.Equal(t, "[a]", CharsOf('a').String())
	assert.Equal(t, "[a..c]", CharsOf('a', 'b', 'c').String())
	assert.Equal(t, "[ac]", CharsOf('a', 'c').String())
	assert.Equal(t, "[0..9]", CharsInRange('0', '9').String())
	assert.Equal(t, "[a{EOI}]", CharsOf('a', EOI).String())
}

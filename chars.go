package peg

import (
	"strings"
)

// EOI is the end-of-input sentinel.  It is not a real character, but
// it can be a member of a Chars set, so recovery can express "end of
// input is acceptable here".
const EOI rune = -1

// Empty marks a set as accepting a zero-width match.  Like EOI it is
// a pseudo-member, never consumed from the input.
const Empty rune = -2

// A charset is a bitmap that uses one bit per character within a
// given range.  Keeping separate size tiers means a set over ASCII
// literals only pays for 16 bytes.
//
// Name        | Range         | bits      | bytes
// ------------+---------------+-----------+-------
// ASCII       | U+0000–007F   |       128 | 16
// Latin1      | U+0000–00FF   |       256 | 32
// BMP         | U+0000–FFFF   |    65_536 | 8192 (8k)
// Unicode     | U+0000–10FFFF | 1_114_112 | 139264 (136 Kb)
type charsetSize int

const (
	charsetSizeASCII   charsetSize = 16
	charsetSizeLatin1  charsetSize = 32
	charsetSizeBMP     charsetSize = 8_192
	charsetSizeUnicode charsetSize = 139_264
)

type charset struct {
	mcp  charsetSize
	bits []byte
}

func newCharset(mcp charsetSize) *charset {
	return &charset{mcp: mcp, bits: make([]byte, mcp)}
}

func charsetSizeForRune(r rune) charsetSize {
	rpos := int(r) >> 3
	switch {
	case rpos < int(charsetSizeASCII):
		return charsetSizeASCII
	case rpos < int(charsetSizeLatin1):
		return charsetSizeLatin1
	case rpos < int(charsetSizeBMP):
		return charsetSizeBMP
	default:
		return charsetSizeUnicode
	}
}

func (cs *charset) end() int { return int(cs.mcp) << 3 }

func (cs *charset) add(r rune) {
	i := int(r)
	cs.bits[i>>3] |= 1 << (i & 7)
}

func (cs *charset) del(r rune) {
	i := int(r)
	if i>>3 < len(cs.bits) {
		cs.bits[i>>3] &^= 1 << (i & 7)
	}
}

func (cs *charset) has(r rune) bool {
	if r < 0 {
		return false
	}
	i := int(r)
	x := i >> 3
	if x >= len(cs.bits) {
		return false
	}
	return cs.bits[x]&(1<<(i&7)) != 0
}

func (cs *charset) clone(mcp charsetSize) *charset {
	out := newCharset(mcp)
	copy(out.bits, cs.bits)
	return out
}

// Chars is an immutable set of characters plus the EOI and Empty
// pseudo-members.  The all flag stands for "every real character",
// which is what the Any matcher advertises as its starters.  All
// operations return a new value, the receiver is never mutated.
type Chars struct {
	set   *charset
	all   bool
	eoi   bool
	empty bool
}

// CharsOf builds a set holding exactly the given runes.  EOI and
// Empty are accepted and stored as flags rather than bitmap entries.
func CharsOf(rs ...rune) Chars {
	var c Chars
	mcp := charsetSizeASCII
	real := false
	for _, r := range rs {
		if r >= 0 {
			real = true
			mcp = max(mcp, charsetSizeForRune(r))
		}
	}
	if real {
		c.set = newCharset(mcp)
	}
	for _, r := range rs {
		switch r {
		case EOI:
			c.eoi = true
		case Empty:
			c.empty = true
		default:
			c.set.add(r)
		}
	}
	return c
}

// CharsInRange builds a set holding every rune between lo and hi,
// both inclusive.
func CharsInRange(lo, hi rune) Chars {
	set := newCharset(max(charsetSizeForRune(lo), charsetSizeForRune(hi)))
	for r := lo; r <= hi; r++ {
		set.add(r)
	}
	return Chars{set: set}
}

// AllChars returns the set of every real character.  It does not
// include EOI or Empty.
func AllChars() Chars {
	return Chars{all: true}
}

// Has reports whether r belongs to the set.  EOI and Empty are
// looked up as pseudo-members.
func (c Chars) Has(r rune) bool {
	switch r {
	case EOI:
		return c.eoi
	case Empty:
		return c.empty
	}
	if c.all {
		return true
	}
	return c.set != nil && c.set.has(r)
}

// HasEmpty reports whether the set accepts a zero-width match.
func (c Chars) HasEmpty() bool { return c.empty }

// IsBlank reports whether nothing at all is in the set.
func (c Chars) IsBlank() bool {
	if c.all || c.eoi || c.empty {
		return false
	}
	if c.set == nil {
		return true
	}
	for _, b := range c.set.bits {
		if b != 0 {
			return false
		}
	}
	return true
}

// Union returns the set holding every member of c and o.
func (c Chars) Union(o Chars) Chars {
	out := Chars{
		all:   c.all || o.all,
		eoi:   c.eoi || o.eoi,
		empty: c.empty || o.empty,
	}
	if out.all {
		return out
	}
	switch {
	case c.set == nil:
		out.set = o.set
	case o.set == nil:
		out.set = c.set
	default:
		mcp := max(c.set.mcp, o.set.mcp)
		merged := c.set.clone(mcp)
		for i, b := range o.set.bits {
			merged.bits[i] |= b
		}
		out.set = merged
	}
	return out
}

// Without returns the set with the given runes removed.  Removing a
// real character from an all-characters set is not supported; the
// engine only ever subtracts the pseudo-members from such sets.
func (c Chars) Without(rs ...rune) Chars {
	out := c
	var cloned *charset
	for _, r := range rs {
		switch r {
		case EOI:
			out.eoi = false
		case Empty:
			out.empty = false
		default:
			if out.set == nil {
				continue
			}
			if cloned == nil {
				cloned = out.set.clone(out.set.mcp)
				out.set = cloned
			}
			cloned.del(r)
		}
	}
	return out
}

// String renders the set for diagnostics.  Contiguous runs collapse
// into ranges.
func (c Chars) String() string {
	var s strings.Builder
	s.WriteString("[")
	if c.all {
		s.WriteString("^")
	} else if c.set != nil {
		var (
			rg bool
			st rune
			pr rune = -2
		)
		for i := 0; i < c.set.end(); i++ {
			r := rune(i)
			if c.set.has(r) {
				if !rg {
					rg = true
					st = r
				}
				pr = r
			} else if rg {
				rg = false
				writeRunRange(&s, st, pr)
			}
		}
		if rg {
			writeRunRange(&s, st, pr)
		}
	}
	if c.eoi {
		s.WriteString("{EOI}")
	}
	if c.empty {
		s.WriteString("{ε}")
	}
	s.WriteString("]")
	return s.String()
}

func writeRunRange(s *strings.Builder, start, end rune) {
	switch {
	case start == end:
		s.WriteRune(start)
	case end == start+1:
		s.WriteRune(start)
		s.WriteRune(end)
	default:
		s.WriteRune(start)
		s.WriteString("..")
		s.WriteRune(end)
	}
}

package peg

// Input is the positioned, read-only character sequence matchers
// consume.  Positions are rune offsets; any access past the end
// yields the EOI sentinel.
type Input struct {
	runes []rune
}

func NewInput(data string) *Input {
	return &Input{runes: []rune(data)}
}

func (in *Input) Len() int { return len(in.runes) }

// CharAt returns the rune at pos, or EOI when pos is past the end.
func (in *Input) CharAt(pos int) rune {
	if pos < 0 || pos >= len(in.runes) {
		return EOI
	}
	return in.runes[pos]
}

// LookAhead returns the rune n positions ahead of pos.
func (in *Input) LookAhead(pos, n int) rune {
	return in.CharAt(pos + n)
}

// Text extracts the input slice covered by [start, end).  The bounds
// are clamped so spans produced by recovery at EOI stay safe.
func (in *Input) Text(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(in.runes) {
		end = len(in.runes)
	}
	if start >= end {
		return ""
	}
	return string(in.runes[start:end])
}

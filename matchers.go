package peg

import (
	"errors"
	"strings"
	"unicode"
)

func charStr(r rune) string {
	if r == EOI {
		return "EOI"
	}
	return "'" + string(r) + "'"
}

//  ---- Char ----

type CharMatcher struct {
	r rune
}

// Char matches exactly the given rune.
func Char(r rune) *CharMatcher { return &CharMatcher{r: r} }

func (m *CharMatcher) Match(c *Context, enforced bool) (bool, error) {
	if c.CurrentChar() != m.r {
		return false, nil
	}
	c.Advance()
	c.CreateNode()
	return true, nil
}

func (m *CharMatcher) Starters() Chars  { return CharsOf(m.r) }
func (m *CharMatcher) Expected() string { return charStr(m.r) }
func (m *CharMatcher) Label() string    { return charStr(m.r) }

//  ---- CharIgnoreCase ----

type CharIgnoreCaseMatcher struct {
	r rune
}

// CharIgnoreCase matches the given rune in either case.
func CharIgnoreCase(r rune) *CharIgnoreCaseMatcher {
	return &CharIgnoreCaseMatcher{r: unicode.ToLower(r)}
}

func (m *CharIgnoreCaseMatcher) Match(c *Context, enforced bool) (bool, error) {
	cur := c.CurrentChar()
	if cur == EOI || unicode.ToLower(cur) != m.r {
		return false, nil
	}
	c.Advance()
	c.CreateNode()
	return true, nil
}

func (m *CharIgnoreCaseMatcher) Starters() Chars {
	return CharsOf(m.r, unicode.ToUpper(m.r))
}

func (m *CharIgnoreCaseMatcher) Expected() string { return charStr(m.r) }
func (m *CharIgnoreCaseMatcher) Label() string    { return charStr(m.r) }

//  ---- CharRange ----

type CharRangeMatcher struct {
	lo, hi rune
}

// CharRange matches any rune between lo and hi, both inclusive.
func CharRange(lo, hi rune) *CharRangeMatcher { return &CharRangeMatcher{lo: lo, hi: hi} }

func (m *CharRangeMatcher) Match(c *Context, enforced bool) (bool, error) {
	cur := c.CurrentChar()
	if cur == EOI || cur < m.lo || cur > m.hi {
		return false, nil
	}
	c.Advance()
	c.CreateNode()
	return true, nil
}

func (m *CharRangeMatcher) Starters() Chars  { return CharsInRange(m.lo, m.hi) }
func (m *CharRangeMatcher) Expected() string { return charStr(m.lo) + ".." + charStr(m.hi) }
func (m *CharRangeMatcher) Label() string    { return string(m.lo) + ".." + string(m.hi) }

//  ---- CharSet ----

type CharSetMatcher struct {
	chars Chars
}

// AnyOf matches any single rune present in s.
func AnyOf(s string) *CharSetMatcher {
	return &CharSetMatcher{chars: CharsOf([]rune(s)...)}
}

// InChars matches any single rune in the given set.
func InChars(chars Chars) *CharSetMatcher { return &CharSetMatcher{chars: chars} }

func (m *CharSetMatcher) Match(c *Context, enforced bool) (bool, error) {
	cur := c.CurrentChar()
	if cur == EOI || !m.chars.Has(cur) {
		return false, nil
	}
	c.Advance()
	c.CreateNode()
	return true, nil
}

func (m *CharSetMatcher) Starters() Chars  { return m.chars }
func (m *CharSetMatcher) Expected() string { return "one of " + m.chars.String() }
func (m *CharSetMatcher) Label() string    { return m.chars.String() }

//  ---- Any ----

type AnyMatcher struct{}

// Any matches any single rune, failing only at end of input.
func Any() *AnyMatcher { return &AnyMatcher{} }

func (m *AnyMatcher) Match(c *Context, enforced bool) (bool, error) {
	if c.CurrentChar() == EOI {
		return false, nil
	}
	c.Advance()
	c.CreateNode()
	return true, nil
}

func (m *AnyMatcher) Starters() Chars  { return AllChars() }
func (m *AnyMatcher) Expected() string { return "any character" }
func (m *AnyMatcher) Label() string    { return "Any" }

//  ---- Empty ----

type EmptyMatcher struct{}

// Epsilon matches nothing and always succeeds.
func Epsilon() *EmptyMatcher { return &EmptyMatcher{} }

func (m *EmptyMatcher) Match(c *Context, enforced bool) (bool, error) {
	c.CreateNode()
	return true, nil
}

func (m *EmptyMatcher) Starters() Chars  { return CharsOf(Empty) }
func (m *EmptyMatcher) Expected() string { return "nothing" }
func (m *EmptyMatcher) Label() string    { return "Empty" }

//  ---- Sequence ----

type SequenceMatcher struct {
	children []Matcher
}

// Sequence matches all sub-matchers consecutively.  A sub-matcher
// runs enforced once earlier elements have consumed input, so its
// failure triggers recovery instead of backtracking the whole
// sequence.
func Sequence(ms ...Matcher) *SequenceMatcher { return &SequenceMatcher{children: ms} }

func (m *SequenceMatcher) Match(c *Context, enforced bool) (bool, error) {
	for i, child := range m.children {
		c.elem = i
		childEnforced := enforced || c.Pos() > c.StartPos()
		matched, err := c.RunMatcher(child, childEnforced)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	c.CreateNode()
	return true, nil
}

func (m *SequenceMatcher) Starters() Chars {
	var acc Chars
	for _, child := range m.children {
		st := child.Starters()
		acc = acc.Union(st)
		if !st.HasEmpty() {
			return acc.Without(Empty)
		}
	}
	return acc
}

// FollowerChars reports what may follow the sub-rule currently
// running in c: the starters of the elements after the active slot,
// keeping Empty only while every one of them may match zero-width.
func (m *SequenceMatcher) FollowerChars(c *Context) Chars {
	acc := CharsOf(Empty)
	for _, next := range m.children[c.elem+1:] {
		st := next.Starters()
		acc = acc.Union(st)
		if !st.HasEmpty() {
			return acc.Without(Empty)
		}
	}
	return acc
}

func (m *SequenceMatcher) Children() []Matcher { return m.children }
func (m *SequenceMatcher) Expected() string    { return m.Label() }
func (m *SequenceMatcher) Label() string       { return "Sequence" }

//  ---- FirstOf ----

type FirstOfMatcher struct {
	children []Matcher
}

// FirstOf tries the sub-matchers in declared order, first match wins.
func FirstOf(ms ...Matcher) *FirstOfMatcher { return &FirstOfMatcher{children: ms} }

func (m *FirstOfMatcher) Match(c *Context, enforced bool) (bool, error) {
	for _, child := range m.children {
		matched, err := c.RunMatcher(child, false)
		if err != nil {
			return false, err
		}
		if matched {
			c.CreateNode()
			return true, nil
		}
	}
	return false, nil
}

func (m *FirstOfMatcher) Starters() Chars {
	var acc Chars
	for _, child := range m.children {
		acc = acc.Union(child.Starters())
	}
	return acc
}

func (m *FirstOfMatcher) Expected() string {
	parts := make([]string, len(m.children))
	for i, child := range m.children {
		parts[i] = child.Expected()
	}
	return strings.Join(parts, " or ")
}

func (m *FirstOfMatcher) Children() []Matcher { return m.children }
func (m *FirstOfMatcher) Label() string       { return "FirstOf" }

//  ---- Optional ----

type OptionalMatcher struct {
	child Matcher
}

// Optional tries the wrapped matcher and succeeds either way.
func Optional(child Matcher) *OptionalMatcher { return &OptionalMatcher{child: child} }

func (m *OptionalMatcher) Match(c *Context, enforced bool) (bool, error) {
	if _, err := c.RunMatcher(m.child, false); err != nil {
		return false, err
	}
	c.CreateNode()
	return true, nil
}

func (m *OptionalMatcher) Starters() Chars {
	return m.child.Starters().Union(CharsOf(Empty))
}

func (m *OptionalMatcher) Children() []Matcher { return []Matcher{m.child} }
func (m *OptionalMatcher) Expected() string    { return m.child.Expected() }
func (m *OptionalMatcher) Label() string       { return "Optional" }

//  ---- ZeroOrMore ----

type ZeroOrMoreMatcher struct {
	child Matcher
}

// ZeroOrMore repeats the wrapped matcher until it fails, succeeding
// even after zero repetitions.
func ZeroOrMore(child Matcher) *ZeroOrMoreMatcher { return &ZeroOrMoreMatcher{child: child} }

func (m *ZeroOrMoreMatcher) Match(c *Context, enforced bool) (bool, error) {
	if err := repeat(c, m.child); err != nil {
		return false, err
	}
	c.CreateNode()
	return true, nil
}

func (m *ZeroOrMoreMatcher) Starters() Chars {
	return m.child.Starters().Union(CharsOf(Empty))
}

// FollowerChars: the loop may always run once more, or stop.
func (m *ZeroOrMoreMatcher) FollowerChars(c *Context) Chars {
	return m.child.Starters().Union(CharsOf(Empty))
}

func (m *ZeroOrMoreMatcher) Children() []Matcher { return []Matcher{m.child} }
func (m *ZeroOrMoreMatcher) Expected() string    { return m.child.Expected() }
func (m *ZeroOrMoreMatcher) Label() string       { return "ZeroOrMore" }

//  ---- OneOrMore ----

type OneOrMoreMatcher struct {
	child Matcher
}

// OneOrMore repeats the wrapped matcher until it fails, requiring at
// least one successful repetition.
func OneOrMore(child Matcher) *OneOrMoreMatcher { return &OneOrMoreMatcher{child: child} }

func (m *OneOrMoreMatcher) Match(c *Context, enforced bool) (bool, error) {
	matched, err := c.RunMatcher(m.child, enforced)
	if err != nil {
		return false, err
	}
	if !matched {
		return false, nil
	}
	if err := repeat(c, m.child); err != nil {
		return false, err
	}
	c.CreateNode()
	return true, nil
}

func (m *OneOrMoreMatcher) Starters() Chars { return m.child.Starters() }

func (m *OneOrMoreMatcher) FollowerChars(c *Context) Chars {
	return m.child.Starters().Union(CharsOf(Empty))
}

func (m *OneOrMoreMatcher) Children() []Matcher { return []Matcher{m.child} }
func (m *OneOrMoreMatcher) Expected() string    { return m.child.Expected() }
func (m *OneOrMoreMatcher) Label() string       { return "OneOrMore" }

// repeat runs child until it fails or stops consuming input.  The
// zero-width guard keeps accidental `(a?)*` loops from spinning.
func repeat(c *Context, child Matcher) error {
	for {
		before := c.Pos()
		matched, err := c.RunMatcher(child, false)
		if err != nil {
			return err
		}
		if !matched || c.Pos() == before {
			return nil
		}
	}
}

//  ---- Test (positive lookahead) ----

type TestMatcher struct {
	child Matcher
}

// Test probes the wrapped matcher without consuming input and
// without leaving a trace in the tree.
func Test(child Matcher) *TestMatcher { return &TestMatcher{child: child} }

func (m *TestMatcher) Match(c *Context, enforced bool) (bool, error) {
	start := c.Pos()
	matched, err := c.RunMatcher(m.child, enforced)
	c.SetPos(start)
	return matched, err
}

func (m *TestMatcher) Starters() Chars     { return m.child.Starters() }
func (m *TestMatcher) Children() []Matcher { return []Matcher{m.child} }
func (m *TestMatcher) Expected() string    { return m.child.Expected() }
func (m *TestMatcher) Label() string       { return "Test" }

//  ---- TestNot (negative lookahead) ----

type TestNotMatcher struct {
	child Matcher
}

// TestNot succeeds only if the wrapped matcher fails, consuming
// nothing.
func TestNot(child Matcher) *TestNotMatcher { return &TestNotMatcher{child: child} }

func (m *TestNotMatcher) Match(c *Context, enforced bool) (bool, error) {
	start := c.Pos()
	matched, err := c.RunMatcher(m.child, false)
	c.SetPos(start)
	return !matched, err
}

func (m *TestNotMatcher) Starters() Chars     { return CharsOf(Empty) }
func (m *TestNotMatcher) Children() []Matcher { return []Matcher{m.child} }
func (m *TestNotMatcher) Expected() string    { return "not " + m.child.Expected() }
func (m *TestNotMatcher) Label() string       { return "TestNot" }

//  ---- Action ----

type ActionMatcher struct {
	name string
	fn   func(*Context) error
}

// Action runs side-effecting logic against the enclosing context.
// It gets no sub-context and no tree node; a returned error is
// fatal for the whole run.
func Action(name string, fn func(*Context) error) *ActionMatcher {
	return &ActionMatcher{name: name, fn: fn}
}

func (m *ActionMatcher) Match(c *Context, enforced bool) (bool, error) {
	if err := m.fn(c); err != nil {
		return false, err
	}
	return true, nil
}

func (m *ActionMatcher) Starters() Chars  { return CharsOf(Empty) }
func (m *ActionMatcher) Expected() string { return m.name }
func (m *ActionMatcher) Label() string    { return m.name }

//  ---- Proxy ----

// ProxyMatcher is pure graph indirection: it closes cycles in the
// rule graph and optionally carries a rule name as its label.  All
// other capability queries unwrap to the delegate.
type ProxyMatcher struct {
	target Matcher
	label  string
}

func NewProxy() *ProxyMatcher { return &ProxyMatcher{} }

// Arm sets the delegate.  Done once, right after the rule body has
// been built.
func (m *ProxyMatcher) Arm(target Matcher) { m.target = target }

func (m *ProxyMatcher) SetLabel(label string) { m.label = label }

func (m *ProxyMatcher) Match(c *Context, enforced bool) (bool, error) {
	if m.target == nil {
		return false, errors.New("proxy matcher has no delegate")
	}
	return m.target.Match(c, enforced)
}

func (m *ProxyMatcher) Starters() Chars     { return m.target.Starters() }
func (m *ProxyMatcher) Children() []Matcher { return []Matcher{m.target} }

func (m *ProxyMatcher) Expected() string {
	if m.label != "" {
		return m.label
	}
	return m.target.Expected()
}

func (m *ProxyMatcher) Label() string {
	if m.label != "" {
		return m.label
	}
	return m.target.Label()
}

//  ---- IllegalChars (synthetic, recovery only) ----

// illegalCharsMatcher consumes a run of junk characters and records
// them as an error node.  Only the recovery algorithm creates it,
// never grammar authors.
type illegalCharsMatcher struct {
	expected string
	stopAt   Chars
}

func newIllegalChars(expected string, stopAt Chars) *illegalCharsMatcher {
	return &illegalCharsMatcher{expected: expected, stopAt: stopAt}
}

func (m *illegalCharsMatcher) Match(c *Context, enforced bool) (bool, error) {
	c.addUnexpectedInput(c.CurrentChar(), m.expected)
	for cur := c.CurrentChar(); cur != EOI && !m.stopAt.Has(cur); cur = c.CurrentChar() {
		c.Advance()
	}
	c.CreateNode()
	return true, nil
}

func (m *illegalCharsMatcher) Starters() Chars  { return AllChars() }
func (m *illegalCharsMatcher) Expected() string { return m.expected }
func (m *illegalCharsMatcher) Label() string    { return "Illegal" }

//  ---- Custom ----

// CustomMatcher is the escape hatch for match logic not covered by
// the built-in variants.
type CustomMatcher struct {
	name     string
	starters Chars
	fn       func(*Context, bool) (bool, error)
}

func Custom(name string, starters Chars, fn func(*Context, bool) (bool, error)) *CustomMatcher {
	return &CustomMatcher{name: name, starters: starters, fn: fn}
}

func (m *CustomMatcher) Match(c *Context, enforced bool) (bool, error) {
	return m.fn(c, enforced)
}

func (m *CustomMatcher) Starters() Chars  { return m.starters }
func (m *CustomMatcher) Expected() string { return m.name }
func (m *CustomMatcher) Label() string    { return m.name }

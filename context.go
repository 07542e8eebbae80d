package peg

import "fmt"

// runState is the block of state shared by every context of one
// parse run: the input, the run's error list and the most recently
// completed node.  Its lifecycle is exactly one Parse call.
type runState struct {
	input  *Input
	errors []*ParseError
	last   *Node
}

// addError records a diagnostic unless one already exists at the
// same start position.
func (rs *runState) addError(e *ParseError) {
	for _, existing := range rs.errors {
		if existing.Start == e.Start {
			return
		}
	}
	rs.errors = append(rs.errors, e)
}

// Context is the companion object of one matcher invocation.  The
// parent back-references form a chain mirroring the call stack, so
// matchers and actions can consult every open invocation above them.
type Context struct {
	run     *runState
	parent  *Context
	matcher Matcher
	start   int
	pos     int

	// sub is the one live sub-context at a time.  Recovery re-enters
	// RunMatcher on ancestors, so the slot is saved and restored
	// around every nested invocation.
	sub *Context

	// elem is the index of the sequence element currently running in
	// sub.  A memoized rule can occupy several slots of one sequence,
	// so the follower computation needs the position, not the matcher
	// instance.
	elem int

	children []*Node
	node     *Node
	errMsg   string
	value    any
	hasValue bool
}

// Parse runs root over input and returns the root node of the parse
// tree plus the diagnostics discovered along the way.  Recovery
// keeps the run going through local syntax errors; only a fatal
// error (an action or matcher failing internally) returns non-nil.
func Parse(root Matcher, input string) (*Node, []*ParseError, error) {
	run := &runState{input: NewInput(input)}
	ctx := &Context{run: run, matcher: root}
	if _, err := ctx.RunMatcher(nil, true); err != nil {
		return nil, run.errors, err
	}
	if ctx.node == nil {
		// single-symbol deletion at the very top re-runs the root
		// matcher beside an error node; seal both under one root
		ctx.CreateNode()
	}
	return ctx.node, run.errors, nil
}

func (c *Context) Parent() *Context { return c.parent }
func (c *Context) Matcher() Matcher { return c.matcher }
func (c *Context) Input() *Input    { return c.run.input }
func (c *Context) StartPos() int    { return c.start }
func (c *Context) Pos() int         { return c.pos }
func (c *Context) SetPos(pos int)   { c.pos = pos }
func (c *Context) Advance()         { c.pos++ }

// CurrentChar returns the unconsumed character under the cursor.
func (c *Context) CurrentChar() rune { return c.run.input.CharAt(c.pos) }

// Path is the slash separated chain of rule labels leading here.
func (c *Context) Path() string {
	if c.parent == nil {
		return "/" + c.matcher.Label()
	}
	return c.parent.Path() + "/" + c.matcher.Label()
}

// SetValue sets the value this invocation's node will carry.
// Typically called from actions.
func (c *Context) SetValue(v any) {
	c.value = v
	c.hasValue = true
}

func (c *Context) Value() any { return c.value }

// LastNode returns the most recently completed node of the run, for
// lookup-by-recency from actions.
func (c *Context) LastNode() *Node { return c.run.last }

// NodeText returns the input text covered by a finished node.
func (c *Context) NodeText(n *Node) string { return n.Text(c.run.input) }

// RunMatcher runs m in a fresh sub-context, or, when m is nil, this
// context's own matcher directly.  On an enforced failure recovery
// is applied and the call reports success afterwards.  A non-nil
// error is fatal and already carries the rule path and position.
func (c *Context) RunMatcher(m Matcher, enforced bool) (bool, error) {
	runCtx := c
	var prevSub *Context
	if m != nil {
		// Actions run against the current context: no sub-context,
		// no tree node, no recovery.
		if _, ok := unwrap(m).(*ActionMatcher); ok {
			matched, err := m.Match(c, enforced)
			if err != nil {
				return false, wrapFatal(err, c.Path()+"/"+m.Label(), c.pos)
			}
			return matched, nil
		}

		prevSub = c.sub
		runCtx = &Context{run: c.run, parent: c, matcher: m, start: c.pos, pos: c.pos}
		c.sub = runCtx
	}

	matched, err := runCtx.matcher.Match(runCtx, enforced)
	if err != nil {
		return false, wrapFatal(err, runCtx.Path(), runCtx.pos)
	}
	if !matched && enforced {
		if err := runCtx.recover(); err != nil {
			return false, err
		}
		matched = true
	}
	if runCtx.errMsg != "" {
		if !runCtx.inPredicate() {
			c.run.addError(&ParseError{Message: runCtx.errMsg, Start: runCtx.start})
		}
		runCtx.errMsg = ""
	}
	if m != nil {
		if matched {
			c.pos = runCtx.pos
		}
		c.sub = prevSub
	}
	return matched, nil
}

// recover turns an enforced failure into some form of progress.
// The three strategies are tried in order, first success wins, and
// the last one cannot fail.
func (c *Context) recover() error {
	deleted, err := c.trySingleSymbolDeletion()
	if deleted || err != nil {
		return err
	}
	followers := c.FollowerChars()
	if c.trySingleSymbolInsertion(followers) {
		return nil
	}
	return c.resynchronize(followers)
}

// trySingleSymbolDeletion checks whether skipping the character
// under the cursor would let the failed matcher start: if the next
// character is in the starter set, the junk character is consumed
// as an error node and the original match is retried.  Both run in
// the parent context so their nodes sit beside this one's siblings.
func (c *Context) trySingleSymbolDeletion() (bool, error) {
	starters := c.matcher.Starters()
	if starters.HasEmpty() {
		// a rule that can match zero-width has no business failing
		return false, nil
	}
	look1 := c.run.input.LookAhead(c.pos, 1)
	if !starters.Has(look1) {
		return false, nil
	}

	parentCtx := c.parent
	if parentCtx == nil {
		parentCtx = c
	}
	ill := newIllegalChars(c.matcher.Expected(), CharsOf(look1))
	if _, err := parentCtx.RunMatcher(ill, true); err != nil {
		return false, err
	}
	if _, err := parentCtx.RunMatcher(c.matcher, true); err != nil {
		return false, err
	}
	c.pos = parentCtx.pos
	return true, nil
}

// trySingleSymbolInsertion checks whether the unconsumed character
// is a legal follower of the failed matcher.  If so the expected
// token is treated as virtually present: one diagnostic, one
// zero-width node, no input consumed.
func (c *Context) trySingleSymbolInsertion(followers Chars) bool {
	cur := c.CurrentChar()
	if !followers.Has(cur) {
		return false
	}
	c.addUnexpectedInput(cur, c.matcher.Expected())
	c.CreateNode()
	return true
}

// resynchronize is the fallback: a zero-width node stands in for the
// failed matcher and input is discarded until the next follower
// character (or EOI).
func (c *Context) resynchronize(followers Chars) error {
	c.CreateNode()

	parentCtx := c.parent
	if parentCtx == nil {
		parentCtx = c
	}
	if _, err := parentCtx.RunMatcher(newIllegalChars(c.matcher.Expected(), followers), true); err != nil {
		return err
	}
	c.pos = parentCtx.pos
	return nil
}

// FollowerChars walks the ancestor chain collecting what may follow
// the rule running in this context.  The walk continues while the
// accumulated set still accepts zero-width (whatever follows might
// itself be absent); when the chain runs out, end of input is always
// an acceptable follower.
func (c *Context) FollowerChars() Chars {
	var chars Chars
	for p := c.parent; p != nil; p = p.parent {
		if fm, ok := unwrap(p.matcher).(Follow); ok {
			chars = chars.Union(fm.FollowerChars(p))
			if !chars.HasEmpty() {
				return chars
			}
		}
	}
	return chars.Without(Empty).Union(CharsOf(EOI))
}

// inPredicate reports whether this invocation or any enclosing one
// belongs to a lookahead predicate, in which case matching is
// speculative: no nodes, no diagnostics.
func (c *Context) inPredicate() bool {
	switch unwrap(c.matcher).(type) {
	case *TestMatcher, *TestNotMatcher:
		return true
	}
	return c.parent != nil && c.parent.inPredicate()
}

// CreateNode seals this invocation into a tree node and appends it
// to the parent's children.  Predicate invocations never produce
// nodes.
func (c *Context) CreateNode() {
	if c.inPredicate() {
		return
	}
	children := make([]*Node, len(c.children))
	copy(children, c.children)
	c.node = &Node{
		Label:    c.matcher.Label(),
		Children: children,
		Start:    c.start,
		End:      c.pos,
		Value:    c.treeValue(),
	}
	if c.parent != nil {
		c.parent.children = append(c.parent.children, c.node)
	}
	c.run.last = c.node
}

// treeValue is the explicitly set value, or else the last non-nil
// value among the children, scanned from last to first.
func (c *Context) treeValue() any {
	if c.hasValue {
		return c.value
	}
	for i := len(c.children) - 1; i >= 0; i-- {
		if v := c.children[i].Value; v != nil {
			return v
		}
	}
	return nil
}

func (c *Context) addUnexpectedInput(got rune, expected string) {
	c.errMsg = fmt.Sprintf("Invalid input %s, expected %s", charStr(got), expected)
}

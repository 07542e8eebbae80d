package peg

// Matcher is one node in the rule graph.  The graph is built once,
// is immutable afterwards, and may be cyclic; many contexts visit
// the same instance, across one or many concurrent runs.
type Matcher interface {
	// Match attempts to match at the context's current position,
	// advancing it on success.  A false return is ordinary
	// backtracking; the engine, not the matcher, turns an enforced
	// failure into recovery.  A non-nil error is fatal and aborts
	// the whole run.
	Match(c *Context, enforced bool) (bool, error)

	// Starters is the set of characters that can legally begin a
	// match of this rule.
	Starters() Chars

	// Expected is the human readable description used in
	// diagnostics.
	Expected() string

	// Label is the diagnostic path identifier.
	Label() string
}

// Follow is implemented by matchers that can tell the sub-rule they
// are currently running what may legally come after it.
type Follow interface {
	Matcher

	// FollowerChars describes what may follow the sub-rule active
	// in c, where c is this matcher's own context.  The result
	// contains Empty when everything after the active sub-rule may
	// itself match zero-width.
	FollowerChars(c *Context) Chars
}

// Container is implemented by matchers holding sub-matchers, so the
// statistics walk can traverse the graph.
type Container interface {
	Matcher
	Children() []Matcher
}

// unwrap peels Proxy layers off m.  Applied wherever matcher kind
// identity matters: predicate detection, recovery checks and
// statistics categorization.
func unwrap(m Matcher) Matcher {
	for {
		p, ok := m.(*ProxyMatcher)
		if !ok {
			return m
		}
		m = p.target
	}
}

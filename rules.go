package peg

// Rules memoizes rule construction so that every reference to a rule
// resolves to one stable matcher instance.  The cache entry is
// registered before the rule body is built, so a rule referring to
// itself (directly or through other rules) closes into a finite,
// cyclic graph instead of unfolding forever.
type Rules struct {
	cache map[string]*ProxyMatcher
}

func NewRules() *Rules {
	return &Rules{cache: make(map[string]*ProxyMatcher)}
}

// Get returns the matcher for the named rule, building it at most
// once.  The returned proxy carries the rule name as its diagnostic
// label and delegates everything else to the rule body.
func (r *Rules) Get(name string, build func() Matcher) Matcher {
	if p, ok := r.cache[name]; ok {
		return p
	}
	p := NewProxy()
	p.SetLabel(name)
	r.cache[name] = p
	p.Arm(build())
	return p
}

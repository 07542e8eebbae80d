package peg

import "fmt"

// ParseError is a recoverable syntax diagnostic.  The engine records
// at most one per distinct start position in a run.
type ParseError struct {
	Message string
	Start   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s @ %d", e.Message, e.Start)
}

// RuleError is the fatal tier: any error escaping an action or a
// matcher's own matching logic is wrapped once with the rule path
// and input position and aborts the run.
type RuleError struct {
	Path string
	Pos  int
	Err  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("error in rule '%s' at position %d: %v", e.Path, e.Pos, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

// wrapFatal wraps err with the rule path and position.  An error
// already wrapped propagates unchanged.
func wrapFatal(err error, path string, pos int) error {
	if _, ok := err.(*RuleError); ok {
		return err
	}
	return &RuleError{Path: path, Pos: pos, Err: err}
}

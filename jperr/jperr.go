// Package jperr declares the construction-time error kinds every leaf
// package raises when it cannot build its immutable state: a missing
// dictionary archive, a malformed rule file, an unsupported analyzer
// backend. The hot path never returns one of these; a morpheme that can't
// be anchored or a token the Tokenizer can't locate is dropped silently.
package jperr

import "fmt"

// Kind discriminates why construction failed.
type Kind int

const (
	// UnsupportedPlatform means no native analyzer binding is available and
	// no fallback was configured.
	UnsupportedPlatform Kind = iota
	// ResourceMissing means a dictionary, rule file, or archive path could
	// not be found.
	ResourceMissing
	// MalformedRule means a deconjugator rule file failed to parse.
	MalformedRule
	// MalformedLexicon means a dictionary archive failed to parse.
	MalformedLexicon
)

func (k Kind) String() string {
	switch k {
	case UnsupportedPlatform:
		return "unsupported_platform"
	case ResourceMissing:
		return "resource_missing"
	case MalformedRule:
		return "malformed_rule"
	case MalformedLexicon:
		return "malformed_lexicon"
	default:
		return "unknown"
	}
}

// Error wraps a construction-time failure with the op that raised it and
// the kind that classifies it, following the module's fmt.Errorf("%w", ...)
// wrapping idiom.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error for op/kind wrapping err.
func New(op string, kind Kind, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

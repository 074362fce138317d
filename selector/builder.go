package selector

import (
	"fmt"
	"slices"

	"github.com/benroe89/xmlunit/xmltree"
)

type builderState int

const (
	stateEmpty builderState = iota
	stateGuardPending
	stateReady
)

// Builder assembles an ordered rule table of (guard, selector) entries plus
// an optional default into a single Selector. Guards are established with
// When and bound with ThenUse, repeatedly; the compiled selector evaluates
// entries in insertion order and the first acceptance wins, the default
// last. Protocol violations panic wrapping ErrBuilderState.
type Builder struct {
	state      builderState
	pending    ElementPredicate
	entries    []Selector
	defaultSel Selector
	hasDefault bool
}

func NewBuilder() *Builder {
	return &Builder{}
}

// When establishes a pending guard for the next ThenUse.
func (b *Builder) When(pred ElementPredicate) *Builder {
	if pred == nil {
		panic(fmt.Errorf("%w: predicate must not be nil", ErrConfig))
	}
	if b.state == stateGuardPending {
		panic(fmt.Errorf("%w: unbalanced conditions", ErrBuilderState))
	}
	b.pending = pred
	b.state = stateGuardPending
	return b
}

// WhenNamed is When with an ElementNamed guard.
func (b *Builder) WhenNamed(local string) *Builder {
	return b.When(ElementNamed(local))
}

// WhenNamedQN is When with an ElementNamedQN guard.
func (b *Builder) WhenNamedQN(q xmltree.QName) *Builder {
	return b.When(ElementNamedQN(q))
}

// ThenUse binds the pending guard to a selector, appending the entry.
func (b *Builder) ThenUse(s Selector) *Builder {
	if s == nil {
		panic(fmt.Errorf("%w: selector must not be nil", ErrConfig))
	}
	if b.state != stateGuardPending {
		panic(fmt.Errorf("%w: missing condition", ErrBuilderState))
	}
	b.entries = append(b.entries, Conditional(b.pending, s))
	b.pending = nil
	b.state = stateReady
	return b
}

// DefaultTo sets the unconditional trailing selector. At most one default
// may be set.
func (b *Builder) DefaultTo(s Selector) *Builder {
	if s == nil {
		panic(fmt.Errorf("%w: selector must not be nil", ErrConfig))
	}
	if b.hasDefault {
		panic(fmt.Errorf("%w: duplicate default", ErrBuilderState))
	}
	b.defaultSel = s
	b.hasDefault = true
	return b
}

// Build compiles the accumulated rule table. The builder may be reused or
// extended afterwards; the compiled selector is unaffected.
func (b *Builder) Build() Selector {
	if b.state == stateGuardPending {
		panic(fmt.Errorf("%w: unbalanced conditions", ErrBuilderState))
	}
	entries := slices.Clone(b.entries)
	if b.hasDefault {
		entries = append(entries, b.defaultSel)
	}
	return Or(entries...)
}

package selector

import "errors"

var (
	// ErrConfig reports an invalid argument handed to a selector or
	// predicate constructor. Constructors panic with an error wrapping
	// ErrConfig; no selector is returned.
	ErrConfig = errors.New("invalid selector configuration")

	// ErrBuilderState reports a violation of the conditional builder's
	// When/ThenUse/DefaultTo protocol.
	ErrBuilderState = errors.New("invalid builder state")
)

package sigs

import "github.com/iov-one/weave-escrow/errors"

// ErrInvalidSequence is returned when a signature does not carry the
// current sequence of its signer.
var ErrInvalidSequence = errors.Register(120, "invalid sequence")

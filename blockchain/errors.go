package blockchain

import (
	"errors"
	"fmt"
)

// ErrEmptyChain is returned when the chain is accessed before genesis
// construction. Normal construction order makes this unreachable, but
// it is a defined failure rather than a panic.
var ErrEmptyChain = errors.New("chain has no blocks")

// ErrChainNotLonger is returned by Replace when the candidate chain is
// not strictly longer than the local one. The local chain may have
// grown between the caller's length comparison and the swap.
var ErrChainNotLonger = errors.New("replacement chain is not longer than the local chain")

// ValidationError reports a malformed transaction field. It is surfaced
// to the caller, never silently dropped.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid transaction: missing %s", e.Field)
}

// ChainLinkError is the first invariant violated while walking a
// candidate chain, carried for diagnostics. An invalid chain is not an
// exceptional path during consensus; the candidate is simply skipped.
type ChainLinkError struct {
	Index  uint64 // index of the block whose link to its predecessor failed
	Reason string
}

func (e ChainLinkError) Error() string {
	return fmt.Sprintf("invalid chain at block %d: %s", e.Index, e.Reason)
}

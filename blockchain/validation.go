package blockchain

// ChainValidator checks hash linkage and proof validity across a
// candidate chain. Read-only; it never mutates the chain it inspects.
type ChainValidator struct {
	pow *ProofOfWork
}

// NewChainValidator returns a validator verifying proofs at the given
// puzzle difficulty.
func NewChainValidator(pow *ProofOfWork) *ChainValidator {
	return &ChainValidator{pow: pow}
}

// Validate walks every adjacent block pair and returns the first
// violated invariant as a ChainLinkError, or nil for a valid chain.
// Empty and single-block chains are trivially valid.
func (v *ChainValidator) Validate(chain []Block) error {
	for i := 1; i < len(chain); i++ {
		prev, block := chain[i-1], chain[i]

		if block.PreviousHash != HashBlock(prev) {
			return ChainLinkError{Index: block.Index, Reason: "previous hash does not match predecessor"}
		}
		if !v.pow.Verify(prev.Proof, block.Proof) {
			return ChainLinkError{Index: block.Index, Reason: "proof of work does not verify"}
		}
	}
	return nil
}

// IsValid is the boolean form of Validate.
func (v *ChainValidator) IsValid(chain []Block) bool {
	return v.Validate(chain) == nil
}

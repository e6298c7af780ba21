package blockchain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// cancelCheckInterval is how many candidate proofs are tried between
// context cancellation checks during a solve.
const cancelCheckInterval = 4096

// ProofOfWork searches for and verifies puzzle proofs. Verification is a
// single hash; solving is expected O(16^Difficulty) tries, which is the
// asymmetry that throttles block creation.
type ProofOfWork struct {
	Difficulty int

	prefix string
}

// NewProofOfWork returns a ProofOfWork requiring difficulty leading zero
// hex characters. Difficulty 0 accepts every proof.
func NewProofOfWork(difficulty int) *ProofOfWork {
	return &ProofOfWork{
		Difficulty: difficulty,
		prefix:     strings.Repeat("0", difficulty),
	}
}

// Verify reports whether proof solves the puzzle seeded by lastProof:
// the hex SHA-256 digest of the concatenated decimal strings must start
// with Difficulty zero characters.
func (p *ProofOfWork) Verify(lastProof, proof uint64) bool {
	if p.Difficulty > hex.EncodedLen(sha256.Size) {
		return false
	}

	guess := strconv.FormatUint(lastProof, 10) + strconv.FormatUint(proof, 10)
	sum := sha256.Sum256([]byte(guess))
	digest := hex.EncodeToString(sum[:])

	return digest[:p.Difficulty] == p.prefix
}

// Solve searches candidate proofs from 0 upward until one verifies
// against lastProof. The search has no upper bound; ctx is the exit for
// a solve made moot (e.g. a longer chain arrived while mining).
func (p *ProofOfWork) Solve(ctx context.Context, lastProof uint64) (uint64, error) {
	for proof := uint64(0); ; proof++ {
		if proof%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if p.Verify(lastProof, proof) {
			return proof, nil
		}
	}
}

package blockchain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// HashBlock returns the lowercase hex SHA-256 digest of the block's
// canonical JSON serialization. Struct fields are declared in
// lexicographic key order, so two blocks with identical content always
// serialize, and therefore hash, identically.
func HashBlock(block Block) string {
	encoded, err := json.Marshal(block)
	if err != nil {
		// Block contains only marshalable field types
		panic("blockchain: block serialization failed: " + err.Error())
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}

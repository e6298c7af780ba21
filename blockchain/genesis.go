package blockchain

const (
	// GenesisPreviousHash is the sentinel previous-hash of the first
	// block, which has no real predecessor.
	GenesisPreviousHash = "1"

	// GenesisProof is the fixed initial proof of the genesis block. It is
	// never verified against a predecessor, so any value works; 100 is
	// kept for wire compatibility with peers.
	GenesisProof = 100
)

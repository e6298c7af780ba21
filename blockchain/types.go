package blockchain

const (
	// Difficulty is the default number of leading zero hex characters a
	// block proof's digest must carry.
	Difficulty = 4

	// RewardSender is the sentinel sender address of mining reward
	// transactions.
	RewardSender = "0"

	// RewardAmount is the fixed amount credited to a miner per forged block.
	RewardAmount = 1
)

// Transaction is a value transfer between two addresses. Fields are
// declared in lexicographic key order so encoding/json emits the
// canonical serialization used for hashing.
type Transaction struct {
	Amount    float64 `json:"amount"`
	Recipient string  `json:"recipient"`
	Sender    string  `json:"sender"`
}

// Block is an indexed, timestamped batch of transactions chained to its
// predecessor by hash. Field order is lexicographic by JSON key, same
// reason as Transaction.
type Block struct {
	Index        uint64        `json:"index"`
	PreviousHash string        `json:"previous_hash"`
	Proof        uint64        `json:"proof"`
	Timestamp    float64       `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
}

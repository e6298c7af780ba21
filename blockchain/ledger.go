package blockchain

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Ledger owns the chain and the pending-transaction buffer. All access
// goes through a single mutex: transaction submission, mining and
// consensus replacement are serialized against each other, preserving
// the append-only and index-monotonic invariants.
//
// The chain grows by append only; the sole exception is Replace, which
// swaps the whole sequence atomically after consensus validation.
type Ledger struct {
	mu      sync.Mutex
	chain   []Block
	pending []Transaction

	pow    *ProofOfWork
	nodeID string
}

// NewLedger creates a ledger with its genesis block already forged,
// using the given proof-of-work difficulty. nodeID is the address
// credited by mining rewards.
func NewLedger(nodeID string, difficulty int) *Ledger {
	l := &Ledger{
		pending: make([]Transaction, 0),
		pow:     NewProofOfWork(difficulty),
		nodeID:  nodeID,
	}
	l.ForgeBlock(GenesisProof, GenesisPreviousHash)
	return l
}

// ProofOfWork exposes the ledger's puzzle so validators verify with the
// same difficulty blocks were mined at.
func (l *Ledger) ProofOfWork() *ProofOfWork {
	return l.pow
}

// SubmitTransaction appends a transaction to the pending buffer and
// returns the index of the block it will be forged into. Sender and
// recipient must be present; anything beyond presence (signatures,
// balances) is out of scope here.
func (l *Ledger) SubmitTransaction(sender, recipient string, amount float64) (uint64, error) {
	if sender == "" {
		return 0, ValidationError{Field: "sender"}
	}
	if recipient == "" {
		return 0, ValidationError{Field: "recipient"}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	last, err := l.lastBlock()
	if err != nil {
		return 0, err
	}

	l.pending = append(l.pending, Transaction{
		Amount:    amount,
		Recipient: recipient,
		Sender:    sender,
	})

	return last.Index + 1, nil
}

// ForgeBlock builds the next block from the pending buffer, appends it
// to the chain and returns it. The pending buffer is reset. An empty
// previousHash defaults to the hash of the current last block.
func (l *Ledger) ForgeBlock(proof uint64, previousHash string) Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.forgeBlock(proof, previousHash)
}

func (l *Ledger) forgeBlock(proof uint64, previousHash string) Block {
	if previousHash == "" {
		previousHash = HashBlock(l.chain[len(l.chain)-1])
	}

	block := Block{
		Index:        uint64(len(l.chain)) + 1,
		PreviousHash: previousHash,
		Proof:        proof,
		Timestamp:    float64(time.Now().UnixNano()) / float64(time.Second),
		Transactions: l.pending,
	}

	l.chain = append(l.chain, block)
	l.pending = make([]Transaction, 0)

	return block
}

// Mine runs the full mining sequence under the ledger lock: solve the
// puzzle seeded by the last block's proof, credit the node with the
// fixed reward, forge. Cancelling ctx abandons the in-progress solve.
func (l *Ledger) Mine(ctx context.Context) (Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	last, err := l.lastBlock()
	if err != nil {
		return Block{}, err
	}

	proof, err := l.pow.Solve(ctx, last.Proof)
	if err != nil {
		return Block{}, fmt.Errorf("mining abandoned: %w", err)
	}

	// Reward goes into pending before forging so it lands in this block,
	// after all submitted transactions.
	l.pending = append(l.pending, Transaction{
		Amount:    RewardAmount,
		Recipient: l.nodeID,
		Sender:    RewardSender,
	})

	return l.forgeBlock(proof, HashBlock(last)), nil
}

// LastBlock returns the most recently appended block.
func (l *Ledger) LastBlock() (Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastBlock()
}

// lastBlock must be called with the lock held.
func (l *Ledger) lastBlock() (Block, error) {
	if len(l.chain) == 0 {
		return Block{}, ErrEmptyChain
	}
	return l.chain[len(l.chain)-1], nil
}

// Blocks returns a snapshot copy of the chain and its length.
func (l *Ledger) Blocks() ([]Block, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	chain := make([]Block, len(l.chain))
	copy(chain, l.chain)

	return chain, uint64(len(chain))
}

// Pending returns a snapshot copy of the pending-transaction buffer.
func (l *Ledger) Pending() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	pending := make([]Transaction, len(l.pending))
	copy(pending, l.pending)

	return pending
}

// Replace swaps in a new chain wholesale. The caller (consensus) is
// responsible for having validated it; Replace enforces the non-empty
// invariant and, under the lock, that the candidate is still strictly
// longer than the local chain — blocks mined while the caller was
// fetching peers must never be overwritten by an equal-or-shorter
// candidate. The swap is atomic relative to every other ledger
// operation.
func (l *Ledger) Replace(chain []Block) error {
	if len(chain) == 0 {
		return ErrEmptyChain
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(chain) <= len(l.chain) {
		return ErrChainNotLonger
	}

	replacement := make([]Block, len(chain))
	copy(replacement, chain)
	l.chain = replacement

	return nil
}

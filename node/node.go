package node

import (
	"context"
	"log"

	"github.com/google/uuid"

	"goledger/blockchain"
	"goledger/consensus"
	"goledger/observability"
	"goledger/p2p"
)

// Config holds all configuration for a ledger node.
type Config struct {
	NodeID     string // auto-generated when empty
	Difficulty int    // proof-of-work difficulty, 0 means the default
}

// Node is the per-process context tying the ledger, peer set, consensus
// resolver and metrics together. Everything that used to be global
// state in simpler designs hangs off this one object.
type Node struct {
	ID string

	ledger   *blockchain.Ledger
	peers    *p2p.PeerSet
	resolver *consensus.Resolver
	metrics  *observability.Metrics
}

// New constructs a node with its genesis block in place.
func New(config Config) *Node {
	id := config.NodeID
	if id == "" {
		id = uuid.New().String()
	}

	difficulty := config.Difficulty
	if difficulty == 0 {
		difficulty = blockchain.Difficulty
	}

	metrics := observability.NewMetrics()
	ledger := blockchain.NewLedger(id, difficulty)
	peers := p2p.NewPeerSet()
	resolver := consensus.NewResolver(id, ledger, peers, consensus.NewClient(0), metrics)

	log.Printf("%s\tLedger initialized with genesis block, difficulty %d", id, difficulty)

	return &Node{
		ID:       id,
		ledger:   ledger,
		peers:    peers,
		resolver: resolver,
		metrics:  metrics,
	}
}

// SubmitTransaction queues a transfer for the next forged block and
// returns that block's index.
func (n *Node) SubmitTransaction(sender, recipient string, amount float64) (uint64, error) {
	index, err := n.ledger.SubmitTransaction(sender, recipient, amount)
	if err != nil {
		return 0, err
	}
	n.metrics.TransactionSubmitted()
	return index, nil
}

// Mine forges the next block, including the node's reward transaction.
func (n *Node) Mine(ctx context.Context) (blockchain.Block, error) {
	block, err := n.ledger.Mine(ctx)
	if err != nil {
		return blockchain.Block{}, err
	}
	n.metrics.BlockForged()
	log.Printf("%s\tForged block %d with %d transactions", n.ID, block.Index, len(block.Transactions))
	return block, nil
}

// Chain returns a snapshot of the local chain and its length.
func (n *Node) Chain() ([]blockchain.Block, uint64) {
	return n.ledger.Blocks()
}

// RegisterPeer records another node's address for consensus resolution.
func (n *Node) RegisterPeer(address string) (string, error) {
	return n.peers.Register(address)
}

// Peers returns the registered peer addresses.
func (n *Node) Peers() []string {
	return n.peers.Addresses()
}

// PeerSet exposes the underlying set so discovery can feed it.
func (n *Node) PeerSet() *p2p.PeerSet {
	return n.peers
}

// ResolveConsensus runs the longest-valid-chain reconciliation against
// all registered peers.
func (n *Node) ResolveConsensus(ctx context.Context) (bool, []blockchain.Block) {
	return n.resolver.Resolve(ctx)
}

// Metrics exposes the node's collectors for the HTTP layer.
func (n *Node) Metrics() *observability.Metrics {
	return n.metrics
}

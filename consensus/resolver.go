package consensus

import (
	"context"
	"log"

	"goledger/blockchain"
	"goledger/observability"
	"goledger/p2p"
)

// Resolver reconciles the local chain with registered peers using the
// longest-valid-chain rule: the local chain is replaced only by a
// strictly longer chain whose every link validates. Equal lengths never
// replace, so nodes do not churn on ties.
type Resolver struct {
	ledger    *blockchain.Ledger
	validator *blockchain.ChainValidator
	peers     *p2p.PeerSet
	client    *Client
	metrics   *observability.Metrics
	nodeID    string
}

// NewResolver wires a resolver over the ledger and peer set. metrics
// may be nil.
func NewResolver(nodeID string, ledger *blockchain.Ledger, peers *p2p.PeerSet, client *Client, metrics *observability.Metrics) *Resolver {
	return &Resolver{
		ledger:    ledger,
		validator: blockchain.NewChainValidator(ledger.ProofOfWork()),
		peers:     peers,
		client:    client,
		metrics:   metrics,
		nodeID:    nodeID,
	}
}

type fetchResult struct {
	address  string
	response ChainResponse
	err      error
}

// Resolve fetches every peer's chain concurrently, skips unreachable
// peers, and replaces the local chain if a strictly longer valid one
// was found. Returns whether a replacement happened and the chain now
// held locally.
func (r *Resolver) Resolve(ctx context.Context) (bool, []blockchain.Block) {
	addresses := r.peers.Addresses()

	results := make(chan fetchResult, len(addresses))
	for _, address := range addresses {
		go func(address string) {
			response, err := r.client.FetchChain(ctx, address)
			results <- fetchResult{address: address, response: response, err: err}
		}(address)
	}

	_, maxLength := r.ledger.Blocks()
	var candidate []blockchain.Block

	for range addresses {
		result := <-results
		if result.err != nil {
			// Unreachable peer: excluded from the comparison, never fatal
			log.Printf("%s\tSkipping peer %s: %v", r.nodeID, result.address, result.err)
			r.metrics.PeerFetchFailed()
			continue
		}

		// The peer's reported length is advisory only; comparing the actual
		// fetched chain keeps a peer from inflating its candidacy.
		length := uint64(len(result.response.Chain))
		if length <= maxLength {
			continue
		}
		if !r.validator.IsValid(result.response.Chain) {
			log.Printf("%s\tPeer %s offered an invalid chain of length %d", r.nodeID, result.address, length)
			continue
		}

		maxLength = length
		candidate = result.response.Chain
	}

	if candidate == nil {
		chain, _ := r.ledger.Blocks()
		return false, chain
	}

	if err := r.ledger.Replace(candidate); err != nil {
		log.Printf("%s\tChain replacement refused: %v", r.nodeID, err)
		chain, _ := r.ledger.Blocks()
		return false, chain
	}

	log.Printf("%s\tChain replaced by peer consensus, new length %d", r.nodeID, maxLength)
	r.metrics.ChainReplaced()

	chain, _ := r.ledger.Blocks()
	return true, chain
}

package p2p

import (
	"fmt"
	"net"
	"net/url"
	"sort"
	"strings"
	"sync"
)

// PeerSet is the node's registry of reachable peer addresses. Mutated
// only through Register; consensus reads it as a snapshot.
type PeerSet struct {
	mu    sync.RWMutex
	addrs map[string]struct{}
}

func NewPeerSet() *PeerSet {
	return &PeerSet{
		addrs: make(map[string]struct{}),
	}
}

// Register normalizes and stores a peer's network location. Accepts
// "host:port" with or without an http:// scheme and returns the
// retained host:port form. Registration is idempotent.
func (ps *PeerSet) Register(address string) (string, error) {
	normalized, err := normalizeAddress(address)
	if err != nil {
		return "", err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.addrs[normalized] = struct{}{}

	return normalized, nil
}

// Addresses returns a sorted snapshot of the registered peers.
func (ps *PeerSet) Addresses() []string {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	addrs := make([]string, 0, len(ps.addrs))
	for addr := range ps.addrs {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)

	return addrs
}

// Len returns the number of registered peers.
func (ps *PeerSet) Len() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.addrs)
}

func normalizeAddress(address string) (string, error) {
	if address == "" {
		return "", fmt.Errorf("invalid peer address: empty")
	}

	raw := address
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid peer address %q: %w", address, err)
	}

	host, port, err := net.SplitHostPort(u.Host)
	if err != nil || host == "" || port == "" {
		return "", fmt.Errorf("invalid peer address %q: want host:port", address)
	}

	return net.JoinHostPort(host, port), nil
}

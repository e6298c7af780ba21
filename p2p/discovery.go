package p2p

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	mdnsService = "_goledger._tcp"
	mdnsDomain  = "local."

	// how often the browse is re-issued to pick up late joiners
	browseInterval = 30 * time.Second
)

// DiscoveryConfig holds configuration for mDNS peer discovery.
type DiscoveryConfig struct {
	// InstanceName identifies this node on the local network and is used
	// to skip its own advertisement.
	InstanceName string

	// Port is the HTTP port other nodes should talk to.
	Port int

	// Peers receives every discovered node address.
	Peers *PeerSet
}

// Discovery advertises this node over mDNS and browses for other nodes,
// registering each one it finds into the peer set.
type Discovery struct {
	config DiscoveryConfig

	server *zeroconf.Server
	cancel context.CancelFunc
}

// NewDiscovery creates a new discovery service.
func NewDiscovery(config DiscoveryConfig) *Discovery {
	return &Discovery{
		config: config,
	}
}

// Start begins advertising and browsing. Non-blocking.
func (d *Discovery) Start() error {
	server, err := zeroconf.Register(d.config.InstanceName, mdnsService, mdnsDomain, d.config.Port, []string{"txtv=0"}, nil)
	if err != nil {
		return fmt.Errorf("failed to advertise over mDNS: %w", err)
	}
	d.server = server

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	go d.browseLoop(ctx)

	log.Printf("%s\tPeer discovery started on %s port %d", d.config.InstanceName, mdnsService, d.config.Port)
	return nil
}

// Stop shuts down advertisement and browsing.
func (d *Discovery) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.server != nil {
		d.server.Shutdown()
	}
}

func (d *Discovery) browseLoop(ctx context.Context) {
	ticker := time.NewTicker(browseInterval)
	defer ticker.Stop()

	for {
		d.browseOnce(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (d *Discovery) browseOnce(ctx context.Context) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		log.Printf("%s\tFailed to create mDNS resolver: %v", d.config.InstanceName, err)
		return
	}

	browseCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	go func() {
		for entry := range entries {
			d.registerEntry(entry)
		}
	}()

	if err := resolver.Browse(browseCtx, mdnsService, mdnsDomain, entries); err != nil {
		log.Printf("%s\tmDNS browse failed: %v", d.config.InstanceName, err)
		return
	}
	<-browseCtx.Done()
}

func (d *Discovery) registerEntry(entry *zeroconf.ServiceEntry) {
	if entry.Instance == d.config.InstanceName || len(entry.AddrIPv4) == 0 {
		return
	}

	address := fmt.Sprintf("%s:%d", entry.AddrIPv4[0], entry.Port)
	if _, err := d.config.Peers.Register(address); err != nil {
		log.Printf("%s\tIgnoring discovered peer %q: %v", d.config.InstanceName, address, err)
		return
	}
	log.Printf("%s\tDiscovered peer %s (%s)", d.config.InstanceName, address, entry.Instance)
}

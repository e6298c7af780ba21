package main

import (
	"flag"
	"log"
	"strconv"
	"strings"

	"goledger/api"
	"goledger/blockchain"
	"goledger/node"
	"goledger/p2p"
)

func main() {
	httpPort := flag.String("http", "5000", "HTTP API port")
	nodeID := flag.String("id", "", "Node ID (auto-generated if not provided)")
	difficulty := flag.Int("difficulty", blockchain.Difficulty, "Proof-of-work difficulty")
	peers := flag.String("peers", "", "Comma-separated peer addresses (host:port)")
	mdns := flag.Bool("mdns", false, "Discover peers on the local network via mDNS")
	flag.Parse()

	ledgerNode := node.New(node.Config{
		NodeID:     *nodeID,
		Difficulty: *difficulty,
	})

	if *peers != "" {
		for _, address := range strings.Split(*peers, ",") {
			registered, err := ledgerNode.RegisterPeer(strings.TrimSpace(address))
			if err != nil {
				log.Fatalf("Invalid peer address %q: %v", address, err)
			}
			log.Printf("%s\tRegistered seed peer %s", ledgerNode.ID, registered)
		}
	}

	if *mdns {
		port, err := strconv.Atoi(*httpPort)
		if err != nil {
			log.Fatalf("Invalid HTTP port %q: %v", *httpPort, err)
		}
		discovery := p2p.NewDiscovery(p2p.DiscoveryConfig{
			InstanceName: ledgerNode.ID,
			Port:         port,
			Peers:        ledgerNode.PeerSet(),
		})
		if err := discovery.Start(); err != nil {
			log.Fatalf("Failed to start peer discovery: %v", err)
		}
		defer discovery.Stop()
	}

	server := api.NewServer(ledgerNode, *httpPort)
	log.Fatal(server.Start())
}

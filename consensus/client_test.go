package consensus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func fetchAddress(server *httptest.Server) string {
	return strings.TrimPrefix(server.URL, "http://")
}

func TestFetchChain(t *testing.T) {
	chain := buildChain(t, "peer", 2)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ChainResponse{Chain: chain, Length: uint64(len(chain))})
	}))
	t.Cleanup(server.Close)

	response, err := NewClient(0).FetchChain(context.Background(), fetchAddress(server))
	if err != nil {
		t.Fatalf("FetchChain() unexpected error: %v", err)
	}
	if len(response.Chain) != 2 || response.Length != 2 {
		t.Errorf("FetchChain() = %d blocks, length %d, want 2 and 2", len(response.Chain), response.Length)
	}
}

func TestFetchChainDoesNotRetryClientErrors(t *testing.T) {
	// A reachable peer without the route is not a transient failure
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	if _, err := NewClient(0).FetchChain(context.Background(), fetchAddress(server)); err == nil {
		t.Fatal("FetchChain() error = nil for 404 response, want error")
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("FetchChain() issued %d requests for a 404 peer, want 1", got)
	}
}

func TestFetchChainRetriesServerErrors(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	if _, err := NewClient(0).FetchChain(context.Background(), fetchAddress(server)); err == nil {
		t.Fatal("FetchChain() error = nil for persistent 500s, want error")
	}
	if got := requests.Load(); got != fetchRetries+1 {
		t.Errorf("FetchChain() issued %d requests for a 500 peer, want %d", got, fetchRetries+1)
	}
}

package consensus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"goledger/blockchain"
)

const (
	// per-peer budget: one unresponsive peer must not stall resolution
	defaultFetchTimeout = 3 * time.Second

	// transient failures get a couple of quick retries within the budget
	fetchRetries = 2
)

// ChainResponse is the wire form of a peer's chain query.
type ChainResponse struct {
	Chain  []blockchain.Block `json:"chain"`
	Length uint64             `json:"length"`
}

// Client fetches chains from peers over their HTTP API.
type Client struct {
	http *http.Client
}

// NewClient returns a client with the given per-request timeout;
// zero means the default.
func NewClient(timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = defaultFetchTimeout
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// FetchChain retrieves a peer's full chain and reported length. Failures
// are retried with exponential backoff before giving up.
func (c *Client) FetchChain(ctx context.Context, address string) (ChainResponse, error) {
	var response ChainResponse

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+address+"/chain", nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("peer %s returned status %d", address, resp.StatusCode)
			if resp.StatusCode >= http.StatusInternalServerError {
				return err
			}
			// 4xx will not heal within the retry budget
			return backoff.Permanent(err)
		}

		return json.NewDecoder(resp.Body).Decode(&response)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), fetchRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return ChainResponse{}, fmt.Errorf("peer %s unreachable: %w", address, err)
	}

	return response, nil
}

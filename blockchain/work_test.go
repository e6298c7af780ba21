package blockchain

import (
	"context"
	"testing"
	"time"
)

func TestSolveThenVerify(t *testing.T) {
	tests := []struct {
		name       string
		difficulty int
		lastProof  uint64
	}{
		{"difficulty 0", 0, 100},
		{"difficulty 1", 1, 100},
		{"difficulty 2, zero seed", 2, 0},
		{"difficulty 2, large seed", 2, 18446744073709551615},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pow := NewProofOfWork(tt.difficulty)

			proof, err := pow.Solve(context.Background(), tt.lastProof)
			if err != nil {
				t.Fatalf("Solve() unexpected error: %v", err)
			}
			if !pow.Verify(tt.lastProof, proof) {
				t.Errorf("Verify(%d, %d) = false for solved proof", tt.lastProof, proof)
			}
		})
	}
}

func TestVerifyDifficultyZeroAcceptsEverything(t *testing.T) {
	pow := NewProofOfWork(0)

	for _, proof := range []uint64{0, 1, 42, 999999} {
		if !pow.Verify(100, proof) {
			t.Errorf("Verify(100, %d) = false, want true at difficulty 0", proof)
		}
	}

	// And the search terminates on the very first candidate
	proof, err := pow.Solve(context.Background(), 100)
	if err != nil {
		t.Fatalf("Solve() unexpected error: %v", err)
	}
	if proof != 0 {
		t.Errorf("Solve() = %d, want 0 at difficulty 0", proof)
	}
}

func TestVerifyDifficultyBeyondDigestLength(t *testing.T) {
	// 64 hex chars in a SHA-256 digest; more required zeros can never match
	pow := NewProofOfWork(65)

	if pow.Verify(0, 0) {
		t.Error("Verify() = true with difficulty beyond digest length")
	}
}

func TestSolveCancellation(t *testing.T) {
	// All 64 hex chars zero is unreachable, so only cancellation exits
	pow := NewProofOfWork(64)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := pow.Solve(ctx, 100)
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Error("Solve() returned nil error after cancellation")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Solve() did not return after context cancellation")
	}
}

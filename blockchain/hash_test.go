package blockchain

import (
	"testing"
)

func testBlock() Block {
	return Block{
		Index:        2,
		PreviousHash: "abc123",
		Proof:        35293,
		Timestamp:    1724500000.25,
		Transactions: []Transaction{
			{Amount: 10, Recipient: "bob", Sender: "alice"},
			{Amount: 5, Recipient: "carol", Sender: "bob"},
		},
	}
}

func TestHashBlockDeterministic(t *testing.T) {
	block := testBlock()

	first := HashBlock(block)
	second := HashBlock(block)

	if first != second {
		t.Errorf("HashBlock() not deterministic: %s != %s", first, second)
	}

	// A structurally equal block built independently must hash the same
	rebuilt := testBlock()
	if got := HashBlock(rebuilt); got != first {
		t.Errorf("HashBlock() of equal content differs: %s != %s", got, first)
	}
}

func TestHashBlockFormat(t *testing.T) {
	hash := HashBlock(testBlock())

	if len(hash) != 64 {
		t.Errorf("HashBlock() length = %d, want 64 hex chars", len(hash))
	}
	for _, c := range hash {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Errorf("HashBlock() contains non-lowercase-hex char %q", c)
		}
	}
}

func TestHashBlockContentSensitivity(t *testing.T) {
	base := HashBlock(testBlock())

	tests := []struct {
		name   string
		mutate func(*Block)
	}{
		{"index changes hash", func(b *Block) { b.Index = 3 }},
		{"previous hash changes hash", func(b *Block) { b.PreviousHash = "def456" }},
		{"proof changes hash", func(b *Block) { b.Proof = 1 }},
		{"timestamp changes hash", func(b *Block) { b.Timestamp += 1 }},
		{"transaction amount changes hash", func(b *Block) { b.Transactions[0].Amount = 11 }},
		{"transaction order changes hash", func(b *Block) {
			b.Transactions[0], b.Transactions[1] = b.Transactions[1], b.Transactions[0]
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := testBlock()
			tt.mutate(&block)
			if got := HashBlock(block); got == base {
				t.Errorf("HashBlock() unchanged after mutation")
			}
		})
	}
}

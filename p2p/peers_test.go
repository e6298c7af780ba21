package p2p

import (
	"testing"
)

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
		wantErr bool
	}{
		{"bare host:port", "192.168.0.5:5000", "192.168.0.5:5000", false},
		{"http scheme stripped", "http://192.168.0.5:5001", "192.168.0.5:5001", false},
		{"hostname retained", "node2.local:5000", "node2.local:5000", false},
		{"missing port", "192.168.0.5", "", true},
		{"empty address", "", "", true},
		{"garbage", "http://%zz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			peers := NewPeerSet()

			got, err := peers.Register(tt.address)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Register(%q) error = nil, want error", tt.address)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register(%q) unexpected error: %v", tt.address, err)
			}
			if got != tt.want {
				t.Errorf("Register(%q) = %q, want %q", tt.address, got, tt.want)
			}
		})
	}
}

func TestRegisterIdempotent(t *testing.T) {
	peers := NewPeerSet()

	for i := 0; i < 3; i++ {
		if _, err := peers.Register("10.0.0.1:5000"); err != nil {
			t.Fatalf("Register() error: %v", err)
		}
	}
	if _, err := peers.Register("http://10.0.0.1:5000"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if got := peers.Len(); got != 1 {
		t.Errorf("Len() = %d after duplicate registrations, want 1", got)
	}
}

func TestAddressesSorted(t *testing.T) {
	peers := NewPeerSet()

	for _, addr := range []string{"10.0.0.3:5000", "10.0.0.1:5000", "10.0.0.2:5000"} {
		if _, err := peers.Register(addr); err != nil {
			t.Fatalf("Register(%q) error: %v", addr, err)
		}
	}

	got := peers.Addresses()
	want := []string{"10.0.0.1:5000", "10.0.0.2:5000", "10.0.0.3:5000"}
	if len(got) != len(want) {
		t.Fatalf("Addresses() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Addresses()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

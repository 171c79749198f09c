package reshard

import (
	"errors"
	"testing"
)

func TestKeyHasher_CRC32_KnownValues(t *testing.T) {
	h, err := NewKeyHasher(HasherCRC32)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		key  string
		want uint64
	}{
		{"user:0", 212005396},
		{"user:1", 2074460802},
		{"user:42", 1684999558},
	}
	for _, tt := range tests {
		if got := h(tt.key); got != tt.want {
			t.Errorf("crc32(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestNewKeyHasher_EmptyNameDefaultsToCRC32(t *testing.T) {
	h, err := NewKeyHasher("")
	if err != nil {
		t.Fatal(err)
	}
	if h("user:0") != 212005396 {
		t.Error("empty hasher name should select crc32")
	}
}

func TestNewKeyHasher_Unknown(t *testing.T) {
	_, err := NewKeyHasher("sha1")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewKeyHasher(sha1) = %v, want ErrInvalidConfig", err)
	}
}

func TestKeyHashers_Deterministic(t *testing.T) {
	for _, name := range ValidHashers() {
		h, err := NewKeyHasher(name)
		if err != nil {
			t.Fatal(err)
		}
		if h("user:7") != h("user:7") {
			t.Errorf("%s not deterministic", name)
		}
		if h("user:7") == h("user:8") {
			t.Errorf("%s collides on adjacent keys", name)
		}
	}
}

func TestValidHashers_Sorted(t *testing.T) {
	got := ValidHashers()
	want := []string{HasherCRC32, HasherFNV1a, HasherXXHash}
	if len(got) != len(want) {
		t.Fatalf("ValidHashers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ValidHashers()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestKeyHashCache_ComputesOncePerKey(t *testing.T) {
	// GIVEN a hasher that counts its invocations
	calls := 0
	cache := NewKeyHashCache(func(key string) uint64 {
		calls++
		return uint64(len(key))
	})

	// WHEN the same keys are hashed repeatedly
	for i := 0; i < 3; i++ {
		cache.Hash("a")
		cache.Hash("bb")
	}

	// THEN each distinct key is hashed once
	if calls != 2 {
		t.Errorf("hasher called %d times, want 2", calls)
	}
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cache.Len())
	}
	if cache.Hash("bb") != 2 {
		t.Errorf("Hash(bb) = %d, want 2", cache.Hash("bb"))
	}
}

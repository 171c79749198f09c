package coldstart

import "testing"

func TestFixedTTL_IgnoresUser(t *testing.T) {
	p := FixedTTL{}
	for user := int64(0); user < 10; user++ {
		if got := p.TTL(10, user); got != 10 {
			t.Errorf("FixedTTL.TTL(10, %d) = %d, want 10", user, got)
		}
	}
}

func TestUserFactorTTL_KnownValues(t *testing.T) {
	tests := []struct {
		fixed, user, want int64
	}{
		{10, 0, 8},
		{10, 1, 11},
		{10, 2, 10},
		{10, 3, 9},
		{10, 4, 8},
		{10, 5, 11},
		{7, 0, 6},  // 5.6 rounds up
		{7, 1, 8},  // 7.7
		{7, 3, 6},  // 6.3 rounds down
		{5, 3, 5},  // 4.5 rounds half away from zero
		{5, 0, 4},
	}
	p := UserFactorTTL{}
	for _, tt := range tests {
		if got := p.TTL(tt.fixed, tt.user); got != tt.want {
			t.Errorf("UserFactorTTL.TTL(%d, %d) = %d, want %d", tt.fixed, tt.user, got, tt.want)
		}
	}
}

func TestUserFactorTTL_FactorBand(t *testing.T) {
	// factor stays in [8, 11] tenths for every user
	p := UserFactorTTL{}
	for user := int64(0); user < 1000; user++ {
		got := p.TTL(100, user)
		if got < 80 || got > 110 {
			t.Fatalf("UserFactorTTL.TTL(100, %d) = %d, want within [80, 110]", user, got)
		}
	}
}

func TestNewTTLPolicy_SelectsVariant(t *testing.T) {
	if _, ok := NewTTLPolicy(false).(FixedTTL); !ok {
		t.Error("NewTTLPolicy(false) should return FixedTTL")
	}
	if _, ok := NewTTLPolicy(true).(UserFactorTTL); !ok {
		t.Error("NewTTLPolicy(true) should return UserFactorTTL")
	}
	if NewTTLPolicy(false).Name() != "Fixed" || NewTTLPolicy(true).Name() != "Random" {
		t.Error("unexpected policy names")
	}
}

package coldstart

import "testing"

func TestPeriodHash_KnownDigest(t *testing.T) {
	// md5("1\t2\t3")
	if got := PeriodHash([]int64{1, 2, 3}); got != "5b70eb29d464f3dff0b8ff60b7ed979e" {
		t.Errorf("PeriodHash = %s", got)
	}
}

func TestPeriodHash_Empty(t *testing.T) {
	if got := PeriodHash(nil); got != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Errorf("PeriodHash(nil) = %s, want md5 of empty string", got)
	}
}

func TestPeriodHash_OrderSensitive(t *testing.T) {
	if PeriodHash([]int64{1, 2}) == PeriodHash([]int64{2, 1}) {
		t.Error("PeriodHash must depend on draw order")
	}
}

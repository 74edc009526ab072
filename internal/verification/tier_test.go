package verification

import "testing"

func TestTierFor(t *testing.T) {
	tests := []struct {
		verified, admin bool
		want            Tier
	}{
		{false, false, TierUnverified},
		{true, false, TierVerified},
		{false, true, TierAdminOnBehalf},
		{true, true, TierAdminOnBehalf},
	}
	for _, tt := range tests {
		if got := TierFor(tt.verified, tt.admin); got != tt.want {
			t.Fatalf("TierFor(%v, %v) = %s, want %s", tt.verified, tt.admin, got, tt.want)
		}
	}
}

func TestTierString(t *testing.T) {
	if TierAdminOnBehalf.String() != "admin_on_behalf" || Tier(42).String() != "unknown" {
		t.Fatal("unexpected tier names")
	}
}

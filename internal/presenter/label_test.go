package presenter

import "testing"

func TestDeriveLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		kind  Kind
		value float64
		want  Label
	}{
		{"sleep excellent at boundary", KindSleepScore, 80, Label{"Excellent", TierBest}},
		{"sleep good", KindSleepScore, 79.9, Label{"Good", TierGood}},
		{"sleep good at boundary", KindSleepScore, 70, Label{"Good", TierGood}},
		{"sleep fair at boundary", KindSleepScore, 60, Label{"Fair", TierFair}},
		{"sleep poor", KindSleepScore, 59.9, Label{"Poor", TierWorst}},
		{"sleep poor at zero", KindSleepScore, 0, Label{"Poor", TierWorst}},

		{"energy high at boundary", KindEnergyScore, 80, Label{"High Energy", TierBest}},
		{"energy good at boundary", KindEnergyScore, 70, Label{"Good", TierGood}},
		{"energy moderate at boundary", KindEnergyScore, 60, Label{"Moderate", TierFair}},
		{"energy low", KindEnergyScore, 45, Label{"Low", TierWorst}},

		{"hr athletic below 60", KindRestingHR, 58, Label{"Athletic", TierBest}},
		{"hr excellent at 60", KindRestingHR, 60, Label{"Excellent", TierGood}},
		{"hr excellent at 70", KindRestingHR, 70, Label{"Excellent", TierGood}},
		{"hr good at 71", KindRestingHR, 71, Label{"Good", TierFair}},
		{"hr good at 80", KindRestingHR, 80, Label{"Good", TierFair}},
		{"hr above average at 81", KindRestingHR, 81, Label{"Above Average", TierWorst}},

		{"stress very low at 25", KindStress, 25, Label{"Very Low", TierBest}},
		{"stress low at 50", KindStress, 50, Label{"Low", TierGood}},
		{"stress moderate at 75", KindStress, 75, Label{"Moderate", TierFair}},
		{"stress high at 76", KindStress, 76, Label{"High", TierWorst}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DeriveLabel(tt.kind, tt.value); got != tt.want {
				t.Errorf("DeriveLabel(%v, %v) = %+v, want %+v", tt.kind, tt.value, got, tt.want)
			}
		})
	}
}

func TestTierString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tier Tier
		want string
	}{
		{TierBest, "green"},
		{TierGood, "blue"},
		{TierFair, "amber"},
		{TierWorst, "red"},
	}

	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.want {
			t.Errorf("Tier(%d).String() = %q, want %q", tt.tier, got, tt.want)
		}
	}
}

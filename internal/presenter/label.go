package presenter

// Tier is one of four ordered color tiers shared by every metric kind.
// The palette meaning is fixed: best is always green, good always blue,
// fair always amber, worst always red.
type Tier uint8

const (
	TierBest Tier = iota // green
	TierGood             // blue
	TierFair             // amber
	TierWorst            // red
)

func (t Tier) String() string {
	switch t {
	case TierBest:
		return "green"
	case TierGood:
		return "blue"
	case TierFair:
		return "amber"
	case TierWorst:
		return "red"
	default:
		return "unknown"
	}
}

// Label pairs a qualitative text with its color tier. Labels are derived
// on every render and never persisted.
type Label struct {
	Text string
	Tier Tier
}

type Kind uint8

const (
	KindSleepScore Kind = iota
	KindEnergyScore
	KindRestingHR
	KindStress
)

// DeriveLabel classifies a raw value into a quality label using fixed,
// per-kind thresholds. Lower bounds are inclusive where stated.
func DeriveLabel(kind Kind, value float64) Label {
	switch kind {
	case KindSleepScore:
		switch {
		case value >= 80:
			return Label{Text: "Excellent", Tier: TierBest}
		case value >= 70:
			return Label{Text: "Good", Tier: TierGood}
		case value >= 60:
			return Label{Text: "Fair", Tier: TierFair}
		default:
			return Label{Text: "Poor", Tier: TierWorst}
		}
	case KindEnergyScore:
		switch {
		case value >= 80:
			return Label{Text: "High Energy", Tier: TierBest}
		case value >= 70:
			return Label{Text: "Good", Tier: TierGood}
		case value >= 60:
			return Label{Text: "Moderate", Tier: TierFair}
		default:
			return Label{Text: "Low", Tier: TierWorst}
		}
	case KindRestingHR:
		switch {
		case value < 60:
			return Label{Text: "Athletic", Tier: TierBest}
		case value <= 70:
			return Label{Text: "Excellent", Tier: TierGood}
		case value <= 80:
			return Label{Text: "Good", Tier: TierFair}
		default:
			return Label{Text: "Above Average", Tier: TierWorst}
		}
	case KindStress:
		switch {
		case value <= 25:
			return Label{Text: "Very Low", Tier: TierBest}
		case value <= 50:
			return Label{Text: "Low", Tier: TierGood}
		case value <= 75:
			return Label{Text: "Moderate", Tier: TierFair}
		default:
			return Label{Text: "High", Tier: TierWorst}
		}
	default:
		return Label{Text: "Unknown", Tier: TierFair}
	}
}

package domain

import (
	"fmt"
	"strings"
)

// RiskTier is the ordinal label shown next to the estimate.
type RiskTier int

const (
	RiskLow RiskTier = iota + 1
	RiskModerate
	RiskHigh
)

// Tier boundaries in deaths per 100k. Each lower bound belongs to the
// higher tier.
const (
	ModerateRiskThreshold = 20.0
	HighRiskThreshold     = 35.0
)

// ClassifyRisk maps a predicted mortality rate to its tier. It is total:
// negative, huge and NaN scores all classify (NaN fails both comparisons
// and lands in RiskHigh).
func ClassifyRisk(score float64) RiskTier {
	switch {
	case score < ModerateRiskThreshold:
		return RiskLow
	case score < HighRiskThreshold:
		return RiskModerate
	default:
		return RiskHigh
	}
}

func (t RiskTier) String() string {
	switch t {
	case RiskLow:
		return "Low"
	case RiskModerate:
		return "Moderate"
	case RiskHigh:
		return "High"
	default:
		return fmt.Sprintf("RiskTier(%d)", int(t))
	}
}

// Advisory returns the banner text for the tier.
func (t RiskTier) Advisory() string {
	switch t {
	case RiskLow:
		return "City conditions are relatively safe."
	case RiskModerate:
		return "Urban heat mitigation recommended."
	case RiskHigh:
		return "Immediate urban cooling actions needed."
	default:
		return ""
	}
}

func (t RiskTier) MarshalText() ([]byte, error) {
	switch t {
	case RiskLow, RiskModerate, RiskHigh:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("invalid risk tier %d", int(t))
	}
}

func (t *RiskTier) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "low":
		*t = RiskLow
	case "moderate":
		*t = RiskModerate
	case "high":
		*t = RiskHigh
	default:
		return fmt.Errorf("invalid risk tier %q", text)
	}
	return nil
}

package model

// SignalVector holds the lexical and surface-form signal counts of a text.
// All counts are raw (unweighted); weights are applied by NegativeScore.
type SignalVector struct {
	HighRiskHits      int `json:"high_risk_hits"`
	MediumRiskHits    int `json:"medium_risk_hits"`
	ClickbaitHits     int `json:"clickbait_hits"`
	CredibilityHits   int `json:"credibility_hits"`
	PunctuationBursts int `json:"punctuation_bursts"`
	CapsWords         int `json:"caps_words"`
}

// Signal weights
const (
	WeightHighRisk    = 2
	WeightMediumRisk  = 1
	WeightClickbait   = 3
	WeightPunctuation = 2
	WeightCaps        = 1.5

	// CapsDampening scales the caps term when the text carries at least
	// CapsDampeningThreshold credibility phrases.
	CapsDampening          = 0.3
	CapsDampeningThreshold = 2
)

// CapsScore returns the weighted, truncated caps contribution
func (v SignalVector) CapsScore() int {
	score := int(float64(v.CapsWords) * WeightCaps)
	if v.CredibilityHits >= CapsDampeningThreshold {
		score = int(float64(score) * CapsDampening)
	}
	return score
}

// NegativeScore is the weighted sum of all sensationalism signals
func (v SignalVector) NegativeScore() int {
	return v.HighRiskHits*WeightHighRisk +
		v.MediumRiskHits*WeightMediumRisk +
		v.ClickbaitHits*WeightClickbait +
		v.PunctuationBursts*WeightPunctuation +
		v.CapsScore()
}

// PositiveScore is the number of credibility phrases found
func (v SignalVector) PositiveScore() int {
	return v.CredibilityHits
}

// Indicators returns the display counts for the vector
func (v SignalVector) Indicators() Indicators {
	return Indicators{
		SensationalWords:      v.HighRiskHits + v.MediumRiskHits,
		ClickbaitPatterns:     v.ClickbaitHits,
		CredibilityIndicators: v.CredibilityHits,
		ExcessivePunctuation:  v.PunctuationBursts,
		CapsWords:             v.CapsWords,
	}
}

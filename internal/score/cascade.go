package score

import "github.com/ppiankov/newsverify/internal/model"

// rule is one guarded step of the decision cascade
type rule struct {
	name    string
	matches func(pos, neg, clickbait int) bool
	decide  func(pos, neg int) (model.Credibility, float64)
}

// cascadeRules are evaluated in order; the first match decides.
var cascadeRules = []rule{
	{
		name:    "strong_credibility",
		matches: func(pos, neg, clickbait int) bool { return pos >= 3 },
		decide: func(pos, neg int) (model.Credibility, float64) {
			return model.CredibilityTrue, minf(75+4*float64(pos), 92)
		},
	},
	{
		name:    "clickbait_unsourced",
		matches: func(pos, neg, clickbait int) bool { return clickbait > 0 && pos == 0 },
		decide: func(pos, neg int) (model.Credibility, float64) {
			return model.CredibilityFalse, minf(80+3*float64(neg), 98)
		},
	},
	{
		// Upper bound only; the sibling partial branches clamp both ways.
		name:    "clickbait_sourced",
		matches: func(pos, neg, clickbait int) bool { return clickbait > 0 },
		decide: func(pos, neg int) (model.Credibility, float64) {
			return model.CredibilityPartial, minf(65+2*float64(neg-pos), 80)
		},
	},
	{
		name:    "high_negative_unsourced",
		matches: func(pos, neg, clickbait int) bool { return neg >= 6 && pos == 0 },
		decide: func(pos, neg int) (model.Credibility, float64) {
			return model.CredibilityFalse, minf(75+3*float64(neg), 95)
		},
	},
	{
		name:    "high_negative_sourced",
		matches: func(pos, neg, clickbait int) bool { return neg >= 4 && pos > 0 },
		decide: func(pos, neg int) (model.Credibility, float64) {
			return model.CredibilityPartial, clamp(60+3*absDiff(pos, neg), 55, 80)
		},
	},
	{
		name:    "mixed_signals",
		matches: func(pos, neg, clickbait int) bool { return neg >= 3 || (neg > 0 && pos > 0) },
		decide: func(pos, neg int) (model.Credibility, float64) {
			return model.CredibilityPartial, clamp(55+4*absDiff(pos, neg), 50, 75)
		},
	},
	{
		name:    "sourced",
		matches: func(pos, neg, clickbait int) bool { return pos >= 2 },
		decide: func(pos, neg int) (model.Credibility, float64) {
			return model.CredibilityTrue, minf(70+5*float64(pos), 90)
		},
	},
	{
		name:    "neutral_clean",
		matches: func(pos, neg, clickbait int) bool { return neg == 0 },
		decide: func(pos, neg int) (model.Credibility, float64) {
			return model.CredibilityTrue, 65
		},
	},
	{
		name:    "neutral_mild",
		matches: func(pos, neg, clickbait int) bool { return neg <= 2 },
		decide: func(pos, neg int) (model.Credibility, float64) {
			return model.CredibilityPartial, 60
		},
	},
	{
		name:    "neutral",
		matches: func(pos, neg, clickbait int) bool { return true },
		decide: func(pos, neg int) (model.Credibility, float64) {
			return model.CredibilityPartial, 55
		},
	},
}

// Classify runs the decision cascade over a signal vector
func Classify(v model.SignalVector) (model.Credibility, float64) {
	cred, conf, _ := ClassifyRule(v)
	return cred, conf
}

// ClassifyRule is Classify that also reports which cascade rule fired
func ClassifyRule(v model.SignalVector) (model.Credibility, float64, string) {
	pos, neg := v.PositiveScore(), v.NegativeScore()
	for _, r := range cascadeRules {
		if r.matches(pos, neg, v.ClickbaitHits) {
			cred, conf := r.decide(pos, neg)
			return cred, conf, r.name
		}
	}
	// The last rule always matches.
	return model.CredibilityPartial, 55, "neutral"
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absDiff(a, b int) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}

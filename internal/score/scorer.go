package score

import "github.com/ppiankov/newsverify/internal/model"

// TextVerdict is the text-only outcome of scoring a headline and body
type TextVerdict struct {
	Credibility model.Credibility
	Confidence  float64
	Rule        string // Cascade rule that decided the verdict
	Signals     model.SignalVector
}

// Indicators returns the display counts of the underlying signals
func (t TextVerdict) Indicators() model.Indicators {
	return t.Signals.Indicators()
}

// Scorer runs signal extraction and the decision cascade
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Analyze scores a headline and body without any domain information
func (s *Scorer) Analyze(headline, body string) TextVerdict {
	signals := Extract(headline, body)
	cred, conf, rule := ClassifyRule(signals)
	return TextVerdict{
		Credibility: cred,
		Confidence:  conf,
		Rule:        rule,
		Signals:     signals,
	}
}

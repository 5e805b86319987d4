package model

// Reputation is the coarse trust class of a source domain
type Reputation string

const (
	ReputationCredible   Reputation = "credible"
	ReputationUnreliable Reputation = "unreliable"
	ReputationUnknown    Reputation = "unknown"
)

// Baseline reputation scores
const (
	ScoreCredible   = 90
	ScoreUnreliable = 10
	ScoreUnknown    = 50
)

// ReputationResult is the outcome of a domain lookup
type ReputationResult struct {
	Reputation Reputation `json:"reputation"`
	Score      int        `json:"score"`
}

// ResultFor returns the result carrying the baseline score for r
func ResultFor(r Reputation) ReputationResult {
	switch r {
	case ReputationCredible:
		return ReputationResult{Reputation: r, Score: ScoreCredible}
	case ReputationUnreliable:
		return ReputationResult{Reputation: r, Score: ScoreUnreliable}
	default:
		return ReputationResult{Reputation: ReputationUnknown, Score: ScoreUnknown}
	}
}

// ParseReputation converts a config string to a Reputation
func ParseReputation(s string) Reputation {
	switch s {
	case "credible", "trusted":
		return ReputationCredible
	case "unreliable", "untrusted":
		return ReputationUnreliable
	default:
		return ReputationUnknown
	}
}

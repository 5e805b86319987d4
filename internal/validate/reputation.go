package validate

import (
	"strings"

	"github.com/ppiankov/newsverify/internal/model"
)

// ReputationClassifier maps source domains to reputation classes
type ReputationClassifier struct {
	credible   []string
	unreliable []string
	domainMap  map[string]model.Reputation
}

// NewReputationClassifier creates a classifier from config.
// A nil config uses the built-in lists.
func NewReputationClassifier(config *model.ReputationConfig) *ReputationClassifier {
	if config == nil {
		config = &model.DefaultConfig().Reputation
	}

	classifier := &ReputationClassifier{
		credible:   lowerAll(config.Credible),
		unreliable: lowerAll(config.Unreliable),
		domainMap:  make(map[string]model.Reputation, len(config.Overrides)),
	}

	for _, o := range config.Overrides {
		classifier.domainMap[strings.ToLower(strings.TrimSpace(o.Host))] = model.ParseReputation(strings.ToLower(o.Reputation))
	}

	return classifier
}

// Classify returns the reputation of a domain.
//
// Matching is substring containment against the credible list first, then
// the unreliable markers, so a domain carrying both resolves to credible.
func (r *ReputationClassifier) Classify(domain string) model.ReputationResult {
	lower := strings.ToLower(domain)

	// Explicit overrides from config win over the lists
	if rep, ok := r.domainMap[stripPort(lower)]; ok {
		return model.ResultFor(rep)
	}

	for _, credible := range r.credible {
		if strings.Contains(lower, credible) {
			return model.ResultFor(model.ReputationCredible)
		}
	}

	for _, marker := range r.unreliable {
		if strings.Contains(lower, marker) {
			return model.ResultFor(model.ReputationUnreliable)
		}
	}

	return model.ResultFor(model.ReputationUnknown)
}

var defaultClassifier = NewReputationClassifier(nil)

// Reputation classifies a domain against the built-in lists
func Reputation(domain string) model.ReputationResult {
	return defaultClassifier.Classify(domain)
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stripPort(host string) string {
	if idx := strings.LastIndex(host, ":"); idx > 0 && !strings.Contains(host[idx:], "]") {
		return host[:idx]
	}
	return host
}

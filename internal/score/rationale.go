package score

import (
	"strings"

	"github.com/ppiankov/newsverify/internal/model"
)

var summaries = map[model.Credibility]string{
	model.CredibilityTrue:    "This article appears to contain factual information with credible sources and balanced reporting.",
	model.CredibilityPartial: "This article contains some factual information but may lack context, use sensational language, or mix facts with opinion. Verify key claims with additional sources.",
	model.CredibilityFalse:   "This article shows multiple indicators of misinformation, including sensational language, lack of credible sources, and potentially misleading claims. Exercise caution and verify with trusted sources.",
}

// Summarize returns the fixed summary paragraph for a label.
// Anything that is not true or partial reads as false.
func Summarize(cred model.Credibility) string {
	if s, ok := summaries[cred]; ok {
		return s
	}
	return summaries[model.CredibilityFalse]
}

// Explain builds the semicolon-joined reason for a verdict
func Explain(cred model.Credibility, ind model.Indicators) string {
	var reasons []string

	if ind.SensationalWords > 2 {
		reasons = append(reasons, "Contains excessive sensational language")
	}
	if ind.ClickbaitPatterns > 0 {
		reasons = append(reasons, "Uses clickbait-style headlines")
	}
	if ind.ExcessivePunctuation > 0 {
		reasons = append(reasons, "Uses excessive punctuation for emphasis")
	}
	if ind.CapsWords > 2 {
		reasons = append(reasons, "Contains excessive capitalization")
	}
	if ind.CredibilityIndicators > 2 {
		reasons = append(reasons, "References credible sources and research")
	}

	if len(reasons) == 0 {
		if cred == model.CredibilityTrue {
			reasons = append(reasons, "Appears to follow journalistic standards")
		} else {
			reasons = append(reasons, "Lacks clear credibility indicators")
		}
	}

	return strings.Join(reasons, "; ")
}

package score

import (
	"regexp"
	"strings"

	"github.com/ppiankov/newsverify/internal/model"
)

// High-risk sensational words (x2)
var highRiskWords = []string{
	"shocking", "unbelievable", "miracle", "secret", "exposed",
	"scandal", "conspiracy", "bombshell", "explosive", "leaked",
}

// Medium-risk sensational words (x1)
var mediumRiskWords = []string{
	"breaking", "urgent", "alert", "exclusive", "revealed",
	"truth", "hidden", "banned", "censored", "forbidden",
}

// Phrases that signal sourced reporting
var credibilityPhrases = []string{
	"study shows", "research indicates", "according to",
	"experts say", "data suggests", "published in",
	"university", "institute", "professor", "peer-reviewed",
	"journal", "scientists", "researchers found",
}

// Clickbait patterns (x3), matched against lowercased text.
// Apostrophe groups accept "won't", "won’t", "wont" and "won t".
var clickbaitPatterns = compileAll([]string{
	`you wo?n('|’| )?t believe`,
	`what happened next`,
	`number \d+ will shock`,
	`this one trick`,
	`\d+ reasons? why`,
	`doctors hate`,
	`they don('|’| )?t want you to know`,
	`what they('|’| )?re hiding`,
	`the truth about`,
	`will blow your mind`,
})

var (
	punctuationBurst = regexp.MustCompile(`[!?]{2,}`)
	capsWord         = regexp.MustCompile(`\b[A-Z]{3,}\b`)
)

func compileAll(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

// Extract counts the credibility and sensationalism signals of a headline and body.
//
// Word lists match by substring containment, so "scandalous" counts as
// "scandal". Clickbait counts distinct patterns, not occurrences.
func Extract(headline, body string) model.SignalVector {
	combined := headline + " " + body
	lower := strings.ToLower(combined)

	return model.SignalVector{
		HighRiskHits:      countContained(lower, highRiskWords),
		MediumRiskHits:    countContained(lower, mediumRiskWords),
		ClickbaitHits:     countMatching(lower, clickbaitPatterns),
		CredibilityHits:   countContained(lower, credibilityPhrases),
		PunctuationBursts: len(punctuationBurst.FindAllStringIndex(combined, -1)),
		CapsWords:         len(capsWord.FindAllStringIndex(combined, -1)),
	}
}

func countContained(text string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			n++
		}
	}
	return n
}

func countMatching(text string, patterns []*regexp.Regexp) int {
	n := 0
	for _, re := range patterns {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

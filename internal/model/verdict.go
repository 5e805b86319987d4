package model

import (
	"math"
	"time"
)

// Credibility is the coarse label assigned to a piece of content
type Credibility string

const (
	CredibilityTrue    Credibility = "true"
	CredibilityPartial Credibility = "partial"
	CredibilityFalse   Credibility = "false"
	CredibilityUnknown Credibility = "unknown" // Only used for acknowledged images
)

// Indicators are the raw signal counts exposed for display
type Indicators struct {
	SensationalWords      int `json:"sensational_words"`
	ClickbaitPatterns     int `json:"clickbait_patterns"`
	CredibilityIndicators int `json:"credibility_indicators"`
	ExcessivePunctuation  int `json:"excessive_punctuation"`
	CapsWords             int `json:"caps_words"`
}

// VerdictRecord is the externally visible result of analyzing one input
type VerdictRecord struct {
	Credibility      Credibility `json:"credibility"`
	Confidence       float64     `json:"confidence"`
	Title            string      `json:"title,omitempty"`
	Text             string      `json:"text,omitempty"` // Headline path only
	Domain           string      `json:"domain,omitempty"`
	DomainReputation Reputation  `json:"domain_reputation,omitempty"`
	Indicators       Indicators  `json:"indicators"`
	Summary          string      `json:"summary,omitempty"`
	Reason           string      `json:"reason,omitempty"`
}

// ImageRecord acknowledges an uploaded image; images are never analyzed
type ImageRecord struct {
	Status      string      `json:"status"`
	Note        string      `json:"note"`
	Credibility Credibility `json:"credibility"`
	Confidence  float64     `json:"confidence"`
}

// Analysis holds the per-input records of a verification
type Analysis struct {
	URL      *VerdictRecord `json:"url,omitempty"`
	Headline *VerdictRecord `json:"headline,omitempty"`
	Image    *ImageRecord   `json:"image,omitempty"`
}

// Overall mirrors the url record if present, else the headline record
type Overall struct {
	Credibility Credibility `json:"credibility"`
	Confidence  float64     `json:"confidence"`
}

// VerifyRequest is the input of a verification
type VerifyRequest struct {
	URL      string `json:"url"`
	Headline string `json:"headline"`
	Image    string `json:"image,omitempty"` // Base64 encoded, acknowledged only
}

// VerifyResponse is the aggregated verification result
type VerifyResponse struct {
	Timestamp string   `json:"timestamp"`
	Analysis  Analysis `json:"analysis"`
	Overall   Overall  `json:"overall"`
}

// Article is the output contract of the content fetch collaborator
type Article struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
	Domain  string `json:"domain"`
}

// Timestamp formats t the way verification responses carry it
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.000000")
}

// RoundConfidence rounds a confidence to one decimal place for exposure
func RoundConfidence(c float64) float64 {
	return math.Round(c*10) / 10
}

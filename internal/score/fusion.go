package score

import (
	"math"

	"github.com/ppiankov/newsverify/internal/model"
)

// Fixed confidences for records that bypass text analysis
const (
	ShortContentConfidence = 75.0
	FetchFailureConfidence = 70.0
)

// Fuse combines a text-only verdict with the source domain reputation.
// A credible domain lifts false to partial but never to true; an unreliable
// domain always yields false.
func Fuse(cred model.Credibility, conf float64, rep model.ReputationResult) (model.Credibility, float64) {
	switch rep.Reputation {
	case model.ReputationCredible:
		if cred == model.CredibilityFalse {
			cred = model.CredibilityPartial
		}
		conf = math.Min((conf+float64(rep.Score))/2, 95)
	case model.ReputationUnreliable:
		cred = model.CredibilityFalse
		conf = math.Max(conf, 75)
	}
	return cred, conf
}

// ShortContentRecord is emitted when too little text could be extracted to analyze
func ShortContentRecord(article model.Article) *model.VerdictRecord {
	title := article.Title
	if title == "" {
		title = "No title found"
	}
	return &model.VerdictRecord{
		Credibility:      model.CredibilityFalse,
		Confidence:       ShortContentConfidence,
		Title:            title,
		Domain:           article.Domain,
		DomainReputation: model.ReputationUnknown,
		Summary:          "No verifiable content found from trusted sources.",
		Reason:           "Unable to extract meaningful content from the URL. The information could not be verified against trusted sources.",
	}
}

// FetchFailureRecord is emitted when the article could not be retrieved
func FetchFailureRecord(domain string, fetchErr error) *model.VerdictRecord {
	msg := "Unknown error"
	if fetchErr != nil {
		msg = fetchErr.Error()
	}
	return &model.VerdictRecord{
		Credibility:      model.CredibilityFalse,
		Confidence:       FetchFailureConfidence,
		Title:            "Unable to access URL",
		Domain:           domain,
		DomainReputation: model.ReputationUnknown,
		Summary:          "Unable to verify this information from trusted sources.",
		Reason:           "Could not access or verify the content. " + msg,
	}
}

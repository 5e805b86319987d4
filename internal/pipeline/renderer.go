package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/newsverify/internal/model"
)

// RenderJSON writes the response as indented JSON to path, creating parent dirs
func RenderJSON(resp *model.VerifyResponse, path string) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderText writes a human-readable summary of the response
func RenderText(w io.Writer, resp *model.VerifyResponse) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Overall: %s (%.1f%%)\n", resp.Overall.Credibility, resp.Overall.Confidence)

	if r := resp.Analysis.URL; r != nil {
		b.WriteString("\nURL\n")
		if r.Title != "" {
			fmt.Fprintf(&b, "  Title:      %s\n", r.Title)
		}
		fmt.Fprintf(&b, "  Domain:     %s (%s)\n", r.Domain, r.DomainReputation)
		writeVerdict(&b, r)
	}

	if r := resp.Analysis.Headline; r != nil {
		b.WriteString("\nHeadline\n")
		fmt.Fprintf(&b, "  Text:       %s\n", r.Text)
		writeVerdict(&b, r)
	}

	if img := resp.Analysis.Image; img != nil {
		b.WriteString("\nImage\n")
		fmt.Fprintf(&b, "  Status:     %s\n", img.Status)
		fmt.Fprintf(&b, "  Note:       %s\n", img.Note)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeVerdict(b *strings.Builder, r *model.VerdictRecord) {
	fmt.Fprintf(b, "  Verdict:    %s (%.1f%%)\n", r.Credibility, r.Confidence)
	ind := r.Indicators
	fmt.Fprintf(b, "  Signals:    sensational=%d clickbait=%d credibility=%d punctuation=%d caps=%d\n",
		ind.SensationalWords, ind.ClickbaitPatterns, ind.CredibilityIndicators, ind.ExcessivePunctuation, ind.CapsWords)
	if r.Summary != "" {
		fmt.Fprintf(b, "  Summary:    %s\n", r.Summary)
	}
	if r.Reason != "" {
		fmt.Fprintf(b, "  Reason:     %s\n", r.Reason)
	}
}

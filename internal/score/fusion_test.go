package score

import (
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/newsverify/internal/model"
)

func TestFuse(t *testing.T) {
	credible := model.ResultFor(model.ReputationCredible)
	unreliable := model.ResultFor(model.ReputationUnreliable)
	unknown := model.ResultFor(model.ReputationUnknown)

	tests := []struct {
		desc     string
		cred     model.Credibility
		conf     float64
		rep      model.ReputationResult
		wantCred model.Credibility
		wantConf float64
	}{
		{"credible lifts false to partial", model.CredibilityFalse, 98, credible, model.CredibilityPartial, 94},
		{"credible keeps true", model.CredibilityTrue, 65, credible, model.CredibilityTrue, 77.5},
		{"credible keeps partial", model.CredibilityPartial, 60, credible, model.CredibilityPartial, 75},
		{"unreliable forces false", model.CredibilityTrue, 65, unreliable, model.CredibilityFalse, 75},
		{"unreliable keeps higher confidence", model.CredibilityFalse, 98, unreliable, model.CredibilityFalse, 98},
		{"unknown passes through", model.CredibilityPartial, 67, unknown, model.CredibilityPartial, 67},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			cred, conf := Fuse(tt.cred, tt.conf, tt.rep)
			if cred != tt.wantCred {
				t.Errorf("expected %s, got %s", tt.wantCred, cred)
			}
			if conf != tt.wantConf {
				t.Errorf("expected confidence %.1f, got %.1f", tt.wantConf, conf)
			}
		})
	}
}

func TestFuse_Monotonicity(t *testing.T) {
	labels := []model.Credibility{model.CredibilityTrue, model.CredibilityPartial, model.CredibilityFalse}

	for _, label := range labels {
		for conf := 0.0; conf <= 100; conf += 2.5 {
			cred, fused := Fuse(label, conf, model.ResultFor(model.ReputationUnreliable))
			if cred == model.CredibilityTrue {
				t.Fatalf("unreliable domain yielded true for %s/%.1f", label, conf)
			}
			if fused < 0 || fused > 100 {
				t.Fatalf("fused confidence %.1f out of bounds", fused)
			}

			cred, fused = Fuse(label, conf, model.ResultFor(model.ReputationCredible))
			if label == model.CredibilityFalse && cred != model.CredibilityPartial {
				t.Fatalf("credible domain moved false to %s", cred)
			}
			if fused > 95 {
				t.Fatalf("credible fusion exceeded 95: %.1f", fused)
			}
		}
	}
}

func TestShortContentRecord(t *testing.T) {
	rec := ShortContentRecord(model.Article{Domain: "example.com"})

	if rec.Credibility != model.CredibilityFalse || rec.Confidence != 75.0 {
		t.Errorf("expected false/75.0, got %s/%.1f", rec.Credibility, rec.Confidence)
	}
	if rec.Title != "No title found" {
		t.Errorf("expected fallback title, got %q", rec.Title)
	}
	if rec.DomainReputation != model.ReputationUnknown {
		t.Errorf("expected unknown reputation, got %s", rec.DomainReputation)
	}
	if rec.Indicators != (model.Indicators{}) {
		t.Errorf("expected empty indicators, got %+v", rec.Indicators)
	}

	rec = ShortContentRecord(model.Article{Title: "Headline", Domain: "example.com"})
	if rec.Title != "Headline" {
		t.Errorf("expected article title, got %q", rec.Title)
	}
}

func TestFetchFailureRecord(t *testing.T) {
	rec := FetchFailureRecord("example.com", errors.New("Failed to extract content: timeout"))

	if rec.Credibility != model.CredibilityFalse || rec.Confidence != 70.0 {
		t.Errorf("expected false/70.0, got %s/%.1f", rec.Credibility, rec.Confidence)
	}
	if !strings.HasSuffix(rec.Reason, "Failed to extract content: timeout") {
		t.Errorf("expected error embedded in reason, got %q", rec.Reason)
	}
	if rec.Title != "Unable to access URL" {
		t.Errorf("unexpected title %q", rec.Title)
	}

	rec = FetchFailureRecord("example.com", nil)
	if !strings.HasSuffix(rec.Reason, "Unknown error") {
		t.Errorf("expected unknown error fallback, got %q", rec.Reason)
	}
}

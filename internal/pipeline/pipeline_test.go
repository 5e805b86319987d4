package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/newsverify/internal/model"
	"github.com/ppiankov/newsverify/internal/score"
)

const (
	sourcedArticle = `<html><head><title>Water filter report</title></head><body>
<nav>Home | News</nav>
<article><p>According to the report, researchers found that the new water filter removes most contaminants in household tests.</p></article>
<footer>Copyright</footer></body></html>`

	clickbaitArticle = `<html><head><title>You Won't Believe What Happened Next</title></head><body>
<article><p>The local council met on Tuesday to discuss road repairs and the new park benches for the town square.</p></article>
</body></html>`

	shortArticle = `<html><head><title>Stub</title></head><body><article>Too short.</article></body></html>`
)

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.Cache.Enabled = false
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func htmlServer(t *testing.T, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestVerifyHeadline_Clickbait(t *testing.T) {
	p := NewPipeline(testConfig(), testLogger())

	rec := p.VerifyHeadline("You Won't Believe What Happened Next!!")
	if rec.Credibility != model.CredibilityFalse {
		t.Errorf("Expected false, got %s", rec.Credibility)
	}
	if rec.Confidence != 98 {
		t.Errorf("Expected confidence 98, got %v", rec.Confidence)
	}
	if rec.Text != "You Won't Believe What Happened Next!!" {
		t.Errorf("Expected headline text echoed, got %q", rec.Text)
	}
	if rec.Indicators.ClickbaitPatterns != 2 || rec.Indicators.ExcessivePunctuation != 1 {
		t.Errorf("Unexpected indicators: %+v", rec.Indicators)
	}
	if rec.Summary != "" || rec.Domain != "" {
		t.Errorf("Headline record should carry no summary or domain: %+v", rec)
	}
	if rec.Reason == "" {
		t.Error("Expected a reason")
	}
}

func TestVerify_NoInput(t *testing.T) {
	p := NewPipeline(testConfig(), testLogger())

	for _, req := range []model.VerifyRequest{
		{},
		{Image: "aGVsbG8="},
	} {
		resp, err := p.Verify(context.Background(), req)
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("Expected ErrNoInput for %+v, got %v", req, err)
		}
		if resp != nil {
			t.Errorf("Expected nil response, got %+v", resp)
		}
	}
}

func TestVerify_WhitespaceInputs(t *testing.T) {
	p := NewPipeline(testConfig(), testLogger())

	resp, err := p.Verify(context.Background(), model.VerifyRequest{URL: "   ", Headline: " \t\n"})
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("Expected ErrNoInput for blank fields, got %v", err)
	}
	if resp != nil {
		t.Errorf("Expected nil response, got %+v", resp)
	}

	resp, err = p.Verify(context.Background(), model.VerifyRequest{
		URL:      " ",
		Headline: "  Local council approves budget  ",
	})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if resp.Analysis.URL != nil {
		t.Errorf("Blank URL should produce no record, got %+v", resp.Analysis.URL)
	}
	if resp.Analysis.Headline == nil {
		t.Fatal("Expected headline record")
	}
	if resp.Analysis.Headline.Text != "Local council approves budget" {
		t.Errorf("Expected trimmed headline text, got %q", resp.Analysis.Headline.Text)
	}
	if resp.Overall.Credibility != resp.Analysis.Headline.Credibility ||
		resp.Overall.Confidence != resp.Analysis.Headline.Confidence {
		t.Errorf("Overall should mirror the headline record, got %+v", resp.Overall)
	}
}

func TestVerify_HeadlineAndImage(t *testing.T) {
	p := NewPipeline(testConfig(), testLogger())
	p.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 45, 123456000, time.UTC) }

	resp, err := p.Verify(context.Background(), model.VerifyRequest{
		Headline: "Scientists say the comet will pass safely",
		Image:    "aGVsbG8=",
	})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if resp.Timestamp != "2024-03-01T12:30:45.123456" {
		t.Errorf("Unexpected timestamp: %s", resp.Timestamp)
	}
	if resp.Analysis.URL != nil {
		t.Error("Expected no URL record")
	}
	if resp.Analysis.Headline == nil {
		t.Fatal("Expected headline record")
	}
	if resp.Overall.Credibility != resp.Analysis.Headline.Credibility ||
		resp.Overall.Confidence != resp.Analysis.Headline.Confidence {
		t.Errorf("Overall should mirror headline: %+v", resp.Overall)
	}

	img := resp.Analysis.Image
	if img == nil {
		t.Fatal("Expected image acknowledgement")
	}
	if img.Status != "received" || img.Credibility != model.CredibilityUnknown || img.Confidence != 0 {
		t.Errorf("Unexpected image record: %+v", img)
	}
}

func TestVerifyURL_SourcedArticle(t *testing.T) {
	server := htmlServer(t, sourcedArticle, nil)
	p := NewPipeline(testConfig(), testLogger())

	rec := p.VerifyURL(context.Background(), server.URL)
	if rec.Credibility != model.CredibilityTrue {
		t.Errorf("Expected true, got %s (%s)", rec.Credibility, rec.Reason)
	}
	if rec.Confidence != 80 {
		t.Errorf("Expected confidence 80, got %v", rec.Confidence)
	}
	if rec.Title != "Water filter report" {
		t.Errorf("Unexpected title: %q", rec.Title)
	}
	if rec.Domain != strings.TrimPrefix(server.URL, "http://") {
		t.Errorf("Unexpected domain: %q", rec.Domain)
	}
	if rec.DomainReputation != model.ReputationUnknown {
		t.Errorf("Expected unknown reputation, got %s", rec.DomainReputation)
	}
	if rec.Indicators.CredibilityIndicators != 2 {
		t.Errorf("Expected 2 credibility indicators, got %d", rec.Indicators.CredibilityIndicators)
	}
	if rec.Summary != score.Summarize(model.CredibilityTrue) {
		t.Errorf("Unexpected summary: %q", rec.Summary)
	}
}

func TestVerifyURL_CredibleDomainLiftsFalse(t *testing.T) {
	server := htmlServer(t, clickbaitArticle, nil)
	cfg := testConfig()
	cfg.Reputation.Overrides = []model.DomainOverride{{Host: "127.0.0.1", Reputation: "credible"}}
	p := NewPipeline(cfg, testLogger())

	rec := p.VerifyURL(context.Background(), server.URL)
	if rec.DomainReputation != model.ReputationCredible {
		t.Fatalf("Expected credible reputation, got %s", rec.DomainReputation)
	}
	if rec.Credibility != model.CredibilityPartial {
		t.Errorf("Expected false lifted to partial, got %s", rec.Credibility)
	}
	// min((98+90)/2, 95)
	if rec.Confidence != 94 {
		t.Errorf("Expected confidence 94, got %v", rec.Confidence)
	}
}

func TestVerifyURL_UnreliableDomainForcesFalse(t *testing.T) {
	server := htmlServer(t, sourcedArticle, nil)
	cfg := testConfig()
	cfg.Reputation.Overrides = []model.DomainOverride{{Host: "127.0.0.1", Reputation: "unreliable"}}
	p := NewPipeline(cfg, testLogger())

	rec := p.VerifyURL(context.Background(), server.URL)
	if rec.Credibility != model.CredibilityFalse {
		t.Errorf("Expected false, got %s", rec.Credibility)
	}
	if rec.Confidence != 80 {
		t.Errorf("Expected confidence max(80, 75) = 80, got %v", rec.Confidence)
	}
}

func TestVerifyURL_ShortContent(t *testing.T) {
	server := htmlServer(t, shortArticle, nil)
	p := NewPipeline(testConfig(), testLogger())

	rec := p.VerifyURL(context.Background(), server.URL)
	if rec.Credibility != model.CredibilityFalse || rec.Confidence != score.ShortContentConfidence {
		t.Errorf("Expected false/75, got %s/%v", rec.Credibility, rec.Confidence)
	}
	if rec.Title != "Stub" {
		t.Errorf("Expected page title kept, got %q", rec.Title)
	}
	if rec.Indicators != (model.Indicators{}) {
		t.Errorf("Expected zero indicators, got %+v", rec.Indicators)
	}
}

func TestVerifyURL_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	p := NewPipeline(testConfig(), testLogger())
	rec := p.VerifyURL(context.Background(), server.URL+"/missing")

	if rec.Credibility != model.CredibilityFalse || rec.Confidence != score.FetchFailureConfidence {
		t.Errorf("Expected false/70, got %s/%v", rec.Credibility, rec.Confidence)
	}
	if rec.Title != "Unable to access URL" {
		t.Errorf("Unexpected title: %q", rec.Title)
	}
	if !strings.Contains(rec.Reason, "Failed to extract content: unexpected status: 404") {
		t.Errorf("Expected fetch error in reason, got %q", rec.Reason)
	}
	if rec.Domain != strings.TrimPrefix(server.URL, "http://") {
		t.Errorf("Expected requested host as domain, got %q", rec.Domain)
	}
}

func TestVerify_URLTakesPriority(t *testing.T) {
	server := htmlServer(t, sourcedArticle, nil)
	p := NewPipeline(testConfig(), testLogger())

	resp, err := p.Verify(context.Background(), model.VerifyRequest{
		URL:      server.URL,
		Headline: "SHOCKING secret EXPOSED!!!",
	})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if resp.Analysis.URL == nil || resp.Analysis.Headline == nil {
		t.Fatal("Expected both records")
	}
	if resp.Overall.Credibility != resp.Analysis.URL.Credibility ||
		resp.Overall.Confidence != resp.Analysis.URL.Confidence {
		t.Errorf("Overall should mirror the URL record, got %+v", resp.Overall)
	}
}

func TestVerifyURL_UsesArticleCache(t *testing.T) {
	var hits atomic.Int32
	server := htmlServer(t, sourcedArticle, &hits)

	cfg := testConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.DiskDir = t.TempDir()
	p := NewPipeline(cfg, testLogger())

	first := p.VerifyURL(context.Background(), server.URL)
	second := p.VerifyURL(context.Background(), server.URL)

	if hits.Load() != 1 {
		t.Errorf("Expected one fetch, got %d", hits.Load())
	}
	if *first != *second {
		t.Errorf("Cached verification differs: %+v vs %+v", first, second)
	}
}

func TestRenderText(t *testing.T) {
	p := NewPipeline(testConfig(), testLogger())
	resp, err := p.Verify(context.Background(), model.VerifyRequest{Headline: "You Won't Believe What Happened Next!!"})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := RenderText(&buf, resp); err != nil {
		t.Fatalf("RenderText failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Overall: false (98.0%)", "Headline", "clickbait=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	p := NewPipeline(testConfig(), testLogger())
	resp, err := p.Verify(context.Background(), model.VerifyRequest{Headline: "Researchers found a new species"})
	if err != nil {
		t.Fatal(err)
	}

	path := t.TempDir() + "/out/report.json"
	if err := RenderJSON(resp, path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}
}

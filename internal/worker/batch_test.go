package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/newsverify/internal/model"
)

// mockVerifier implements Verifier
type mockVerifier struct {
	shouldError bool
	delays      map[string]time.Duration
}

func (m *mockVerifier) Verify(ctx context.Context, req model.VerifyRequest) (*model.VerifyResponse, error) {
	delay := 10 * time.Millisecond
	if d, ok := m.delays[req.URL]; ok {
		delay = d
	}
	time.Sleep(delay)

	if m.shouldError {
		return nil, errors.New("verify error")
	}
	return &model.VerifyResponse{
		Analysis: model.Analysis{
			URL: &model.VerdictRecord{Credibility: model.CredibilityTrue, Confidence: 80, Domain: req.URL},
		},
		Overall: model.Overall{Credibility: model.CredibilityTrue, Confidence: 80},
	}, nil
}

func writeURLFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatchProcessor_ProcessURLs(t *testing.T) {
	processor := NewBatchProcessor(&mockVerifier{}, 2, 0, 0)

	urls := []string{"http://example.com", "http://reuters.com", "http://bbc.com"}
	results := processor.ProcessURLs(context.Background(), urls)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.URL, res.Error)
			continue
		}
		if res.Response == nil {
			t.Errorf("expected response for %s", res.URL)
		}
	}
}

func TestBatchProcessor_PreservesInputOrder(t *testing.T) {
	verifier := &mockVerifier{delays: map[string]time.Duration{
		"http://a.example": 60 * time.Millisecond,
		"http://b.example": 30 * time.Millisecond,
		"http://c.example": 0,
	}}
	processor := NewBatchProcessor(verifier, 3, 0, 0)

	urls := []string{"http://a.example", "http://b.example", "http://c.example"}
	results := processor.ProcessURLs(context.Background(), urls)

	for i, res := range results {
		if res.URL != urls[i] || res.Index != i {
			t.Errorf("result %d: expected %s, got %s (index %d)", i, urls[i], res.URL, res.Index)
		}
	}
}

func TestBatchProcessor_ProcessURLs_Error(t *testing.T) {
	processor := NewBatchProcessor(&mockVerifier{shouldError: true}, 2, 0, 0)

	results := processor.ProcessURLs(context.Background(), []string{"http://example.com"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Response != nil {
		t.Error("expected nil response on error")
	}
}

func TestBatchProcessor_ProcessURLs_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockVerifier{}, 2, 0, 0)

	results := processor.ProcessURLs(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_CancelledContext(t *testing.T) {
	processor := NewBatchProcessor(&mockVerifier{}, 1, 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	urls := []string{"http://a.example", "http://b.example"}
	results := processor.ProcessURLs(ctx, urls)

	if len(results) != len(urls) {
		t.Fatalf("expected a result per URL, got %d", len(results))
	}
	for i, res := range results {
		if res == nil || res.URL != urls[i] {
			t.Errorf("missing result for %s", urls[i])
			continue
		}
		if !errors.Is(res.Error, context.Canceled) {
			t.Errorf("expected context.Canceled for %s, got %v", urls[i], res.Error)
		}
	}
}

func TestBatchProcessor_CancelledMidBatch(t *testing.T) {
	urls := []string{"http://a.example", "http://b.example", "http://c.example", "http://d.example"}
	delays := map[string]time.Duration{}
	for _, u := range urls {
		delays[u] = 100 * time.Millisecond
	}
	processor := NewBatchProcessor(&mockVerifier{delays: delays}, 1, 0, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	results := processor.ProcessURLs(ctx, urls)

	if results[0].Error != nil {
		t.Errorf("expected first URL verified before the deadline, got %v", results[0].Error)
	}
	last := results[len(results)-1]
	if !errors.Is(last.Error, context.DeadlineExceeded) {
		t.Errorf("expected queued URL dropped with the deadline error, got %v", last.Error)
	}
}

func TestBatchProcessor_RateLimited(t *testing.T) {
	// 20 rps with burst 1 on one domain: 3 requests need at least ~100ms
	processor := NewBatchProcessor(&mockVerifier{delays: map[string]time.Duration{}}, 3, 20, 1)

	start := time.Now()
	results := processor.ProcessURLs(context.Background(), []string{
		"http://same.example/1", "http://same.example/2", "http://same.example/3",
	})
	elapsed := time.Since(start)

	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error: %v", res.Error)
		}
	}
	if elapsed < 90*time.Millisecond {
		t.Errorf("expected rate limiting to space requests, took %v", elapsed)
	}
}

func TestReadURLsFromFile(t *testing.T) {
	path := writeURLFile(t, `http://example.com
# comment
https://reuters.com
   
http://bbc.com   `)

	urls, err := ReadURLsFromFile(path)
	if err != nil {
		t.Fatalf("ReadURLsFromFile failed: %v", err)
	}

	expected := []string{"http://example.com", "https://reuters.com", "http://bbc.com"}
	if len(urls) != len(expected) {
		t.Fatalf("expected %d URLs, got %d", len(expected), len(urls))
	}
	for i, url := range urls {
		if url != expected[i] {
			t.Errorf("expected URL %s at index %d, got %s", expected[i], i, url)
		}
	}
}

func TestReadURLsFromFile_Deduplication(t *testing.T) {
	path := writeURLFile(t, "http://example.com\nhttp://example.com")

	urls, err := ReadURLsFromFile(path)
	if err != nil {
		t.Fatalf("ReadURLsFromFile failed: %v", err)
	}
	if len(urls) != 1 {
		t.Errorf("expected 1 URL after deduplication, got %d", len(urls))
	}
}

func TestReadURLsFromFile_NonExistent(t *testing.T) {
	if _, err := ReadURLsFromFile("non_existent_file.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestVerifyResult_GetError(t *testing.T) {
	r1 := &VerifyResult{URL: "http://example.com"}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("verify failed")
	r2 := &VerifyResult{URL: "http://example.com", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := writeURLFile(t, "http://example.com\nhttps://reuters.com\n# comment\n\nhttp://bbc.com\n")

	processor := NewBatchProcessor(&mockVerifier{}, 2, 0, 0)
	results, err := processor.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	processor := NewBatchProcessor(&mockVerifier{}, 2, 0, 0)

	if _, err := processor.ProcessFile(context.Background(), "no_such_file.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

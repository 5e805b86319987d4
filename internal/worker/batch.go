package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/newsverify/internal/model"
)

// Verifier verifies a single request
type Verifier interface {
	Verify(ctx context.Context, req model.VerifyRequest) (*model.VerifyResponse, error)
}

// VerifyJob verifies one URL of a batch
type VerifyJob struct {
	Index    int
	URL      string
	Verifier Verifier
	Limiter  *Limiter
}

// Execute waits for the URL's domain rate limit, then verifies it
func (j *VerifyJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.URL); err != nil {
			return &VerifyResult{Index: j.Index, URL: j.URL, Error: fmt.Errorf("rate limit: %w", err)}
		}
	}

	resp, err := j.Verifier.Verify(ctx, model.VerifyRequest{URL: j.URL})
	return &VerifyResult{
		Index:    j.Index,
		URL:      j.URL,
		Response: resp,
		Error:    err,
	}
}

// VerifyResult is the outcome of one batch entry
type VerifyResult struct {
	Index    int
	URL      string
	Response *model.VerifyResponse
	Error    error
}

// GetError returns the error from the verification
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies many URLs concurrently with per-domain rate limits
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a new batch processor. A non-positive
// requestsPerSecond disables rate limiting.
func NewBatchProcessor(verifier Verifier, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
		limiter:     NewLimiter(requestsPerSecond, burst),
	}
}

// Limiter exposes the processor's limiter for per-domain overrides
func (b *BatchProcessor) Limiter() *Limiter {
	return b.limiter
}

// ProcessURLs verifies urls concurrently; results are in input order
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*VerifyResult {
	if len(urls) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, url := range urls {
		pool.Submit(&VerifyJob{
			Index:    i,
			URL:      url,
			Verifier: b.verifier,
			Limiter:  b.limiter,
		})
	}

	var results []Result
	if ctx.Err() != nil {
		results = pool.Shutdown()
	} else {
		results = pool.Wait()
	}

	ordered := make([]*VerifyResult, len(urls))
	for _, result := range results {
		r := result.(*VerifyResult)
		ordered[r.Index] = r
	}

	// Jobs skipped by cancellation never produced a result
	for i, r := range ordered {
		if r == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			ordered[i] = &VerifyResult{Index: i, URL: urls[i], Error: err}
		}
	}

	return ordered
}

// ProcessFile reads URLs from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*VerifyResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}

	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads URLs from a file (one per line), skipping blank
// lines and # comments and dropping duplicates
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}

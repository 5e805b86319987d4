package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/newsverify/internal/model"
	"github.com/ppiankov/newsverify/internal/pipeline"
	"github.com/ppiankov/newsverify/internal/worker"
)

var (
	batchFetch   fetchFlags
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchRPS     float64
	batchBurst   int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple URLs from a file in parallel",
	Long: `Batch verifies many articles concurrently:
- Read URLs from the input file (one per line, # comments and blanks skipped)
- Verify URLs in parallel with a configurable worker count
- Rate limit requests per domain
- Write one JSON report per URL

Example:
  newsverify batch urls.txt
  newsverify batch urls.txt --concurrency 10 --output-dir ./reports
  newsverify batch urls.txt --rps 1 --burst 2`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./newsverify-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "batch-timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&batchRPS, "rps", 0, "requests per second per domain (default from config)")
	batchCmd.Flags().IntVar(&batchBurst, "burst", 0, "request burst per domain (default from config)")

	batchFetch.register(batchCmd.Flags())
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, logger, err := setup(cmd, &batchFetch, os.Stderr)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") || cfg.Concurrency.Workers <= 0 {
		cfg.Concurrency.Workers = concurrency
	}
	if cmd.Flags().Changed("rps") {
		cfg.RateLimiting.RequestsPerSecond = batchRPS
	}
	if cmd.Flags().Changed("burst") {
		cfg.RateLimiting.BurstSize = batchBurst
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  newsverify Batch Verification\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Rate limit:   %.2f rps/domain (burst %d)\n", cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg, logger)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	for _, dr := range cfg.RateLimiting.DomainRates {
		processor.Limiter().SetDomainRate(dr.Host, dr.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	}

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	summary := summarizeBatch(results, outputDir)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d URLs\n", len(results))
	fmt.Fprintf(os.Stderr, "  True:      %d\n", summary.counts[model.CredibilityTrue])
	fmt.Fprintf(os.Stderr, "  Partial:   %d\n", summary.counts[model.CredibilityPartial])
	fmt.Fprintf(os.Stderr, "  False:     %d\n", summary.counts[model.CredibilityFalse])
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", summary.failures)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

type batchSummary struct {
	counts   map[model.Credibility]int
	failures int
}

// summarizeBatch writes a report per successful result and tallies verdicts
func summarizeBatch(results []*worker.VerifyResult, dir string) batchSummary {
	summary := batchSummary{counts: make(map[model.Credibility]int)}

	for _, result := range results {
		if result.Error != nil {
			summary.failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.URL, result.Error)
			continue
		}

		path := filepath.Join(dir, reportFilename(result.Index, result.URL))
		if err := pipeline.RenderJSON(result.Response, path); err != nil {
			summary.failures++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.URL, err)
			continue
		}

		overall := result.Response.Overall
		summary.counts[overall.Credibility]++
		fmt.Fprintf(os.Stderr, "✓ %s: %s (%.1f%%)\n", result.URL, overall.Credibility, overall.Confidence)
	}

	return summary
}

// reportFilename builds a stable, filesystem-safe report name for a URL
func reportFilename(index int, rawURL string) string {
	slug := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		slug = parsed.Host + parsed.Path
	}
	return fmt.Sprintf("%03d-%s.json", index+1, sanitizeFilename(slug))
}

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = strings.Trim(replacer.Replace(s), "_-.")
	if s == "" {
		s = "report"
	}

	// Limit length
	if len(s) > 100 {
		s = s[:100]
	}

	return s
}

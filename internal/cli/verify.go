package cli

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/newsverify/internal/model"
	"github.com/ppiankov/newsverify/internal/pipeline"
)

var (
	verifyFetch    fetchFlags
	verifyURL      string
	verifyHeadline string
	verifyImage    string
	verifyJSONPath string
	verifyOutput   string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [url]",
	Short: "Verify a URL and/or headline",
	Long: `Verify scores a news article, a headline, or both:
- Fetch the article and extract its title and body text
- Count sensational words, clickbait phrasing, punctuation bursts and shouting
- Count sourcing phrases (studies, experts, journals)
- Combine the text verdict with the reputation of the source domain

Example:
  newsverify verify https://www.reuters.com/world/some-story
  newsverify verify --headline "You Won't Believe What Happened Next!!"
  newsverify verify https://example.com/story --json report.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyURL, "url", "", "article URL to verify")
	verifyCmd.Flags().StringVar(&verifyHeadline, "headline", "", "headline text to verify")
	verifyCmd.Flags().StringVar(&verifyImage, "image", "", "image file to attach (acknowledged, not analyzed)")
	verifyCmd.Flags().StringVar(&verifyJSONPath, "json", "", "also write the JSON response to this path")
	verifyCmd.Flags().StringVarP(&verifyOutput, "output", "o", "text", "stdout format: text, json")

	verifyFetch.register(verifyCmd.Flags())
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd, &verifyFetch, os.Stderr)
	if err != nil {
		return err
	}

	req := model.VerifyRequest{URL: verifyURL, Headline: verifyHeadline}
	if len(args) == 1 {
		req.URL = args[0]
	}
	if verifyImage != "" {
		data, err := os.ReadFile(verifyImage)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		req.Image = base64.StdEncoding.EncodeToString(data)
	}

	// Retries and backoff need headroom beyond a single request timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout*time.Duration(max(cfg.HTTP.MaxAttempts, 1))+30*time.Second)
	defer cancel()

	p := pipeline.NewPipeline(cfg, logger)
	resp, err := p.Verify(ctx, req)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	if verifyJSONPath != "" {
		if err := pipeline.RenderJSON(resp, verifyJSONPath); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", verifyJSONPath)
		}
	}

	switch verifyOutput {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "text", "":
		return pipeline.RenderText(cmd.OutOrStdout(), resp)
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", verifyOutput)
	}
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ppiankov/newsverify/internal/cache"
	"github.com/ppiankov/newsverify/internal/extract"
	"github.com/ppiankov/newsverify/internal/model"
	"github.com/ppiankov/newsverify/internal/score"
	"github.com/ppiankov/newsverify/internal/util"
	"github.com/ppiankov/newsverify/internal/validate"
)

// ErrNoInput is returned when a request carries neither a URL nor a headline
var ErrNoInput = errors.New("no valid input provided")

const imageNote = "Image analysis requires additional AI services (OCR, reverse image search)"

// Pipeline orchestrates fetching, scoring and fusion for a verification
type Pipeline struct {
	fetcher         *Fetcher
	extractor       *extract.ContentExtractor
	scorer          *score.Scorer
	reputation      *validate.ReputationClassifier
	articles        *cache.ArticleCache
	minContentChars int
	logger          *slog.Logger
	now             func() time.Time
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	fetcher := NewFetcher(
		cfg.HTTP.Timeout,
		cfg.HTTP.UserAgent,
		cfg.HTTP.MaxBodyBytes,
		cfg.HTTP.InsecureTLS,
		cfg.HTTP.HTTPProxy,
		cfg.HTTP.HTTPSProxy,
		cfg.HTTP.NoProxy,
	)
	fetcher.SetMaxAttempts(cfg.HTTP.MaxAttempts)
	if cfg.Robots.Respect {
		fetcher.SetRobotsChecker(util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.Robots.Timeout))
	}

	var articles *cache.ArticleCache
	if backend := cache.New(cfg.Cache); backend != nil {
		articles = cache.NewArticleCache(backend, 0)
	}

	return &Pipeline{
		fetcher:         fetcher,
		extractor:       extract.NewContentExtractor(cfg.Extract),
		scorer:          score.NewScorer(),
		reputation:      validate.NewReputationClassifier(&cfg.Reputation),
		articles:        articles,
		minContentChars: cfg.Extract.MinContentChars,
		logger:          logger,
		now:             time.Now,
	}
}

// Verify analyzes every input present in req and aggregates the records.
// The overall verdict mirrors the URL record when present, else the headline record.
func (p *Pipeline) Verify(ctx context.Context, req model.VerifyRequest) (*model.VerifyResponse, error) {
	resp := &model.VerifyResponse{
		Timestamp: model.Timestamp(p.now()),
	}

	req.URL = strings.TrimSpace(req.URL)
	req.Headline = strings.TrimSpace(req.Headline)

	if req.URL != "" {
		resp.Analysis.URL = p.VerifyURL(ctx, req.URL)
	}
	if req.Headline != "" {
		resp.Analysis.Headline = p.VerifyHeadline(req.Headline)
	}
	if req.Image != "" {
		resp.Analysis.Image = AcknowledgeImage()
	}

	switch {
	case resp.Analysis.URL != nil:
		resp.Overall = overallOf(resp.Analysis.URL)
	case resp.Analysis.Headline != nil:
		resp.Overall = overallOf(resp.Analysis.Headline)
	default:
		return nil, ErrNoInput
	}

	return resp, nil
}

// VerifyURL fetches the article at rawURL and scores it with domain fusion.
// Fetch and extraction failures degrade to a fixed record instead of an error.
func (p *Pipeline) VerifyURL(ctx context.Context, rawURL string) *model.VerdictRecord {
	article, err := p.loadArticle(ctx, rawURL)
	if err != nil {
		p.logger.WarnContext(ctx, "article unavailable", "url", rawURL, "error", err)
		//nolint:staticcheck // surfaced verbatim in the reason text
		return score.FetchFailureRecord(extract.Domain(rawURL), fmt.Errorf("Failed to extract content: %w", err))
	}

	if utf8.RuneCountInString(strings.TrimSpace(article.Content)) < p.minContentChars {
		p.logger.InfoContext(ctx, "content too short to analyze", "url", rawURL, "chars", utf8.RuneCountInString(article.Content))
		return score.ShortContentRecord(*article)
	}

	verdict := p.scorer.Analyze(article.Title, article.Content)
	rep := p.reputation.Classify(article.Domain)
	cred, conf := score.Fuse(verdict.Credibility, verdict.Confidence, rep)
	indicators := verdict.Indicators()

	p.logger.DebugContext(ctx, "url verdict",
		"url", rawURL,
		"rule", verdict.Rule,
		"negative", verdict.Signals.NegativeScore(),
		"positive", verdict.Signals.PositiveScore(),
		"reputation", rep.Reputation,
		"credibility", cred,
	)

	return &model.VerdictRecord{
		Credibility:      cred,
		Confidence:       model.RoundConfidence(conf),
		Title:            article.Title,
		Domain:           article.Domain,
		DomainReputation: rep.Reputation,
		Indicators:       indicators,
		Summary:          score.Summarize(cred),
		Reason:           score.Explain(cred, indicators),
	}
}

// VerifyHeadline scores a bare headline; no domain is known so no fusion applies
func (p *Pipeline) VerifyHeadline(headline string) *model.VerdictRecord {
	verdict := p.scorer.Analyze(headline, "")
	indicators := verdict.Indicators()

	p.logger.Debug("headline verdict", "rule", verdict.Rule, "credibility", verdict.Credibility)

	return &model.VerdictRecord{
		Credibility: verdict.Credibility,
		Confidence:  model.RoundConfidence(verdict.Confidence),
		Text:        headline,
		Indicators:  indicators,
		Reason:      score.Explain(verdict.Credibility, indicators),
	}
}

// AcknowledgeImage returns the fixed record for an uploaded image
func AcknowledgeImage() *model.ImageRecord {
	return &model.ImageRecord{
		Status:      "received",
		Note:        imageNote,
		Credibility: model.CredibilityUnknown,
		Confidence:  0,
	}
}

// loadArticle returns the cached article or fetches and extracts it
func (p *Pipeline) loadArticle(ctx context.Context, rawURL string) (*model.Article, error) {
	if article, ok := p.articles.Get(rawURL); ok {
		p.logger.DebugContext(ctx, "article cache hit", "url", rawURL)
		return article, nil
	}

	result, err := p.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	article, err := p.extractor.Extract(result.HTML, rawURL)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	if err := p.articles.Put(rawURL, article); err != nil {
		p.logger.WarnContext(ctx, "article cache write failed", "url", rawURL, "error", err)
	}
	return article, nil
}

func overallOf(r *model.VerdictRecord) model.Overall {
	return model.Overall{Credibility: r.Credibility, Confidence: r.Confidence}
}

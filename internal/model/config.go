package model

import "time"

// Config is the complete newsverify configuration
type Config struct {
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Extract      ExtractConfig      `yaml:"extract" mapstructure:"extract"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Robots       RobotsConfig       `yaml:"robots" mapstructure:"robots"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	Reputation   ReputationConfig   `yaml:"reputation" mapstructure:"reputation"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls how article pages are fetched
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxAttempts  int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// ExtractConfig controls HTML to text extraction
type ExtractConfig struct {
	MaxContentRunes int      `yaml:"max_content_runes" mapstructure:"max_content_runes"`
	MinContentChars int      `yaml:"min_content_chars" mapstructure:"min_content_chars"`
	Selectors       []string `yaml:"selectors" mapstructure:"selectors"`
}

// CacheConfig controls the fetched-article cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskDir   string        `yaml:"disk_dir" mapstructure:"disk_dir"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// RobotsConfig controls robots.txt compliance
type RobotsConfig struct {
	Respect bool          `yaml:"respect" mapstructure:"respect"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig controls per-domain request rates in batch mode
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`

	DomainRates []DomainRate `yaml:"domain_rates,omitempty" mapstructure:"domain_rates"`
}

// DomainRate overrides the request rate for one host
type DomainRate struct {
	Host              string  `yaml:"host" mapstructure:"host"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	ListenAddr    string `yaml:"listen_addr" mapstructure:"listen_addr"`
	AllowedOrigin string `yaml:"allowed_origin" mapstructure:"allowed_origin"`
}

// ReputationConfig holds the domain reputation reference lists
type ReputationConfig struct {
	Credible   []string          `yaml:"credible" mapstructure:"credible"`
	Unreliable []string          `yaml:"unreliable" mapstructure:"unreliable"`
	Overrides  []DomainOverride `yaml:"overrides,omitempty" mapstructure:"overrides"`
}

// DomainOverride pins the reputation of an exact host
type DomainOverride struct {
	Host       string `yaml:"host" mapstructure:"host"`
	Reputation string `yaml:"reputation" mapstructure:"reputation"` // credible, unreliable or unknown
}

// LogConfig controls structured logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text, json
}

// OutputConfig controls CLI rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultCredibleDomains are substrings of well-known credible news hosts
var DefaultCredibleDomains = []string{
	"bbc.com", "reuters.com", "apnews.com", "npr.org",
	"nytimes.com", "washingtonpost.com", "theguardian.com",
	"cnn.com", "bloomberg.com", "wsj.com", "economist.com",
	"nature.com", "science.org", "scientificamerican.com",
}

// DefaultUnreliableMarkers are substrings that mark a host as unreliable
var DefaultUnreliableMarkers = []string{
	"fake", "hoax", "satire", "parody", "conspiracy",
}

// DefaultArticleSelectors are tried in order to find the article region
var DefaultArticleSelectors = []string{
	"article", ".article-content", ".post-content",
	".entry-content", ".article-body", "main",
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      3 * time.Second,
			UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			MaxBodyBytes: 2_000_000,
			MaxAttempts:  1,
		},
		Extract: ExtractConfig{
			MaxContentRunes: 5000,
			MinContentChars: 50,
			Selectors:       append([]string(nil), DefaultArticleSelectors...),
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskDir:   "",
			DiskTTL:   24 * time.Hour,
		},
		Robots: RobotsConfig{
			Respect: false,
			Timeout: 2 * time.Second,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Server: ServerConfig{
			ListenAddr:    ":5001",
			AllowedOrigin: "*",
		},
		Reputation: ReputationConfig{
			Credible:   append([]string(nil), DefaultCredibleDomains...),
			Unreliable: append([]string(nil), DefaultUnreliableMarkers...),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

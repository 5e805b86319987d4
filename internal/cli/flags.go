package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ppiankov/newsverify/internal/logging"
	"github.com/ppiankov/newsverify/internal/model"
)

// fetchFlags are the article fetch overrides shared by verify, batch and serve
type fetchFlags struct {
	timeout       time.Duration
	userAgent     string
	maxAttempts   int
	insecureTLS   bool
	noCache       bool
	respectRobots bool
	httpProxy     string
	httpsProxy    string
}

func (f *fetchFlags) register(fs *pflag.FlagSet) {
	fs.DurationVar(&f.timeout, "timeout", 0, "per-request fetch timeout (default from config: 3s)")
	fs.StringVar(&f.userAgent, "ua", "", "HTTP User-Agent")
	fs.IntVar(&f.maxAttempts, "max-attempts", 0, "fetch attempts on transient failures")
	fs.BoolVar(&f.insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the article cache (force fresh fetch)")
	fs.BoolVar(&f.respectRobots, "respect-robots", false, "skip pages disallowed by robots.txt")
	fs.StringVar(&f.httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	fs.StringVar(&f.httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

// apply copies the flags the user actually set onto cfg
func (f *fetchFlags) apply(cmd *cobra.Command, cfg *model.Config) {
	fs := cmd.Flags()
	if fs.Changed("timeout") {
		cfg.HTTP.Timeout = f.timeout
	}
	if fs.Changed("ua") {
		cfg.HTTP.UserAgent = f.userAgent
	}
	if fs.Changed("max-attempts") {
		cfg.HTTP.MaxAttempts = f.maxAttempts
	}
	if fs.Changed("insecure") {
		cfg.HTTP.InsecureTLS = f.insecureTLS
	}
	if fs.Changed("no-cache") {
		cfg.Cache.Enabled = !f.noCache
	}
	if fs.Changed("respect-robots") {
		cfg.Robots.Respect = f.respectRobots
	}
	if fs.Changed("http-proxy") {
		cfg.HTTP.HTTPProxy = f.httpProxy
	}
	if fs.Changed("https-proxy") {
		cfg.HTTP.HTTPSProxy = f.httpsProxy
	}
}

// setup resolves configuration, applies fetch flags and builds the logger
func setup(cmd *cobra.Command, flags *fetchFlags, logOut io.Writer) (*model.Config, *slog.Logger, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}
	if flags != nil {
		flags.apply(cmd, cfg)
	}
	if cfg.Output.Verbose && cfg.Log.Level == "info" {
		cfg.Log.Level = "debug"
	}
	return cfg, logging.Setup(cfg.Log, logOut), nil
}

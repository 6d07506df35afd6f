package main

import (
	"os"

	"github.com/spf13/cobra"

	clientcmd "github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/cmd/client"
	dashboardcmd "github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/cmd/dashboard"
	cfgpkg "github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/config"
	logpkg "github.com/krish2105/lulu-intelligence-dashboard-sub001/pkg/log"
)

func main() {
	// Respect LULU_LOG_LEVEL/LULU_LOG_FORMAT before flags are parsed so
	// early failures still log sensibly.
	parsed, err := logpkg.ParseLevel(os.Getenv("LULU_LOG_LEVEL"))
	if err != nil {
		parsed = logpkg.InfoLevel
	}
	var formatter logpkg.Formatter = &logpkg.TextFormatter{}
	if os.Getenv("LULU_LOG_FORMAT") == "json" {
		formatter = &logpkg.JSONFormatter{}
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(formatter),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)

	// Redirect standard library logs (used by Pebble) to our logger.
	logpkg.RedirectStdLog(logger)

	var (
		configPath string
		apiBase    string
		dataDir    string
		logLevel   string
	)

	deps := clientcmd.Deps{
		Logger: logger,
		Config: func() cfgpkg.Config {
			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				logger.Warn("config load failed, using defaults", logpkg.Str("path", configPath), logpkg.Err(err))
				cfg = cfgpkg.Default()
			}
			cfgpkg.FromEnv(&cfg)
			if apiBase != "" {
				cfg.APIBaseURL = apiBase
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			return cfg
		},
	}

	root := clientcmd.NewRoot(deps)
	root.Short = "Retail sales dashboard client"
	root.Long = "lulu is the terminal client for the retail sales dashboard: " +
		"REST queries, live SSE feeds, local feed archives and an interactive dashboard."
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("LULU_CONFIG"), "Config file (JSON or YAML)")
	root.PersistentFlags().StringVar(&apiBase, "api", "", "Backend base URL (overrides config and LULU_API)")
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory for archives and session tokens")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error")
	root.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if lvl, err := logpkg.ParseLevel(deps.Config().LogLevel); err == nil {
			logger.SetLevel(lvl)
		}
	}

	root.AddCommand(dashboardcmd.NewCommand(deps))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

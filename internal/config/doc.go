// Package config provides loading and environment overlay for the Lulu
// client configuration. It exposes a Default() baseline, file loading
// for JSON and YAML, and a LULU_* environment overlay.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("~/.config/lulu/lulu.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	api := apiclient.New(cfg.APIBaseURL, ...)
package config

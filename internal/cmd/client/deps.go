package client

import (
	"encoding/json"
	"io"

	"github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/api"
	"github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/cache"
	"github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/config"
	logpkg "github.com/krish2105/lulu-intelligence-dashboard-sub001/pkg/log"
)

// Deps supplies the environment commands run in. Config is a func so
// flags parsed at execute time see the final merged configuration.
type Deps struct {
	Config func() config.Config
	Logger logpkg.Logger
}

func (d Deps) logger() logpkg.Logger {
	if d.Logger == nil {
		return logpkg.Discard()
	}
	return d.Logger
}

func (d Deps) dataDir() string {
	if dir := d.Config().DataDir; dir != "" {
		return dir
	}
	return config.DefaultDataDir()
}

// API builds the backend client with response caching and the
// file-backed token store.
func (d Deps) API() *api.Client {
	cfg := d.Config()
	var opts []cache.Option
	if cfg.CacheDefaultTTLSeconds > 0 {
		opts = append(opts, cache.WithDefaultTTL(cfg.CacheDefaultTTL()))
	}
	return api.New(cfg.APIBaseURL,
		api.WithCache(cache.New(opts...)),
		api.WithTokenSource(api.NewFileTokenStore(d.dataDir())),
		api.WithLogger(d.logger()),
	)
}

// printJSON writes v as indented JSON, the CLI's uniform output shape.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

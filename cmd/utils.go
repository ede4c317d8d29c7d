package cmd

import (
	"fmt"

	"github.com/shencore/shen/pkg/config"
	"github.com/shencore/shen/pkg/history"
	"github.com/shencore/shen/pkg/log"
	"github.com/shencore/shen/pkg/search"
)

var logger = log.ForService("cli")

// newSearchClient creates the Custom Search client described by cfg.
func newSearchClient(cfg *config.Config) *search.Client {
	return search.NewClient(search.ClientConfig{
		APIKey:   cfg.Google.APIKey,
		CX:       cfg.Google.CX,
		Endpoint: cfg.Google.Endpoint,
		Timeout:  cfg.Google.Timeout.Duration,
	})
}

// openHistory opens the history database when history is enabled. A nil
// store with a nil error means history is off.
func openHistory(cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	return store, nil
}

// withHistory wraps exec so successful searches are recorded in store.
func withHistory(exec search.Executor, store *history.Store) search.Executor {
	if store == nil {
		return exec
	}
	return history.NewRecorder(exec, store)
}

// loadSearchConfig loads the config file and checks that searching is possible.
func loadSearchConfig(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return cfg, nil
}

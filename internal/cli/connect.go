package cli

import (
	"github.com/nhath/ezsql/internal/config"
	"github.com/nhath/ezsql/internal/db"
	"github.com/nhath/ezsql/internal/history"
	"github.com/nhath/ezsql/internal/logger"
)

// historyPath is swapped in tests
var historyPath = history.DefaultPath

// connection is an open driver plus the label it is recorded under
type connection struct {
	db.Driver
	Source string
}

// connect resolves target to a profile, fills its password from the keyring
// and opens the driver.
func connect(cfg *config.Config, target string) (*connection, error) {
	p, err := cfg.ResolveTarget(target)
	if err != nil {
		return nil, err
	}

	if p.Type != string(db.SQLite) && p.Password == "" {
		if ks, err := config.NewKeyringStore(); err != nil {
			logger.Debug("keyring unavailable", "error", err)
		} else {
			config.FillPassword(&p, ks)
		}
	}

	d, err := db.Open(db.DriverType(p.Type), p.ConnectParams())
	if err != nil {
		return nil, err
	}
	logger.Info("connected", "type", p.Type, "target", p.DisplayDSN())
	return &connection{Driver: d, Source: sourceLabel(cfg, p)}, nil
}

// sourceLabel names a connection without leaking credentials: the profile
// name when the target was a profile, the password-free DSN otherwise.
func sourceLabel(cfg *config.Config, p config.Profile) string {
	if _, err := cfg.GetProfile(p.Name); err == nil {
		return p.Name
	}
	return p.DisplayDSN()
}

// openHistory returns the history store, or nil when history is disabled or
// cannot be opened. A broken history never blocks a query.
func openHistory(cfg *config.Config) *history.Store {
	if !cfg.HistoryEnabled {
		return nil
	}
	path, err := historyPath()
	if err != nil {
		logger.Warn("history path unavailable", "error", err)
		return nil
	}
	hs, err := history.Open(path, cfg.HistoryRetentionDays)
	if err != nil {
		logger.Warn("opening history failed", "path", path, "error", err)
		return nil
	}
	return hs
}

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/splitledger/splitledger/internal/config"
	"github.com/splitledger/splitledger/internal/gitops"
	"github.com/splitledger/splitledger/internal/history"
	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/logging"
	"github.com/splitledger/splitledger/internal/tracker"
)

// project bundles everything a command needs for one project directory.
type project struct {
	root    string
	log     zerolog.Logger
	store   *ledger.Store
	history *history.Log
	tracker *tracker.Tracker
}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	repoDir  string
	logLevel string
}

func openProject(cmd *cobra.Command, opts *globalOptions) (*project, error) {
	root, err := filepath.Abs(opts.repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadProject(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	log, err := logging.New(cmd.ErrOrStderr(), level)
	if err != nil {
		return nil, err
	}

	store := ledger.NewStore(cfg.LedgerPaths(root))
	hist := history.NewLog(cfg.HistoryPath(root))

	params := tracker.Params{
		Store:   store,
		Step:    cfg.Rounding.Step,
		History: hist,
		Logger:  log,
	}
	if cfg.Git.AutoCommit && gitops.IsRepo(root) && gitops.Available() {
		params.Committer = &gitops.Repo{
			Dir:         root,
			AuthorName:  cfg.Git.AuthorName,
			AuthorEmail: cfg.Git.AuthorEmail,
		}
	}

	tr, err := tracker.New(params)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("root", root).Str("activity_log", hist.Path()).Msg("project opened")
	return &project{
		root:    root,
		log:     log,
		store:   store,
		history: hist,
		tracker: tr,
	}, nil
}

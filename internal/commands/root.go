package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/spendsight/spendsight/internal/accounts"
	"github.com/spendsight/spendsight/internal/buildinfo"
	"github.com/spendsight/spendsight/internal/config"
	"github.com/spendsight/spendsight/internal/ledger"
	"github.com/spendsight/spendsight/internal/logger"
)

// app carries the persistent flags and what they resolve to.
type app struct {
	configPath string
	logLevel   string
	asOf       string

	cfg     *config.Config
	baseDir string
	log     zerolog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "spendsight",
		Short:   "Bank statement import and spending analytics",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", config.FileName, "path to "+config.FileName)
	pf.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off (default from config)")
	pf.StringVar(&a.asOf, "now", "", "analyze as of this time (RFC3339 or YYYY-MM-DD) instead of the clock")

	rootCmd.AddCommand(
		newInitCommand(a),
		newSchemasCommand(a),
		newValidateCommand(a),
		newCategorizeCommand(a),
		newImportCommand(a),
		newAnalyzeCommand(a),
		newInsightsCommand(a),
		newBudgetCommand(a),
	)

	return rootCmd
}

// setup loads the config (defaults when the file is absent) and installs the
// logger on the command context.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = config.Default()
	case err != nil:
		return err
	}
	a.cfg = cfg
	a.baseDir = filepath.Dir(a.configPath)

	level := a.logLevel
	if level == "" {
		level = cfg.Log.Level
	}
	a.log = logger.NewConsole(cmd.ErrOrStderr(), level)
	cmd.SetContext(logger.WithContext(cmd.Context(), a.log))
	return nil
}

// path resolves a configured path against the config file's directory.
func (a *app) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.baseDir, p)
}

// now returns --now if given, else the wall clock, in the configured zone so
// day and month boundaries line up with ledger dates. A bare date means the
// end of that day.
func (a *app) now() (time.Time, error) {
	loc, err := a.cfg.Location()
	if err != nil {
		return time.Time{}, err
	}
	if a.asOf == "" {
		return time.Now().In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339, a.asOf); err == nil {
		return t.In(loc), nil
	}
	d, err := time.ParseInLocation("2006-01-02", a.asOf, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: want RFC3339 or YYYY-MM-DD", a.asOf)
	}
	return d.AddDate(0, 0, 1).Add(-time.Second), nil
}

func (a *app) accounts() (*accounts.Service, error) {
	svc, err := accounts.FromConfig(a.cfg.Accounts)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}
	return svc, nil
}

// ledger opens the configured ledger with dates in the configured zone.
// Account references are only checked when accounts are configured.
func (a *app) ledger() (*ledger.Service, error) {
	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}
	svc, err := a.accounts()
	if err != nil {
		return nil, err
	}
	if len(svc.All()) == 0 {
		return ledger.NewService(a.path(a.cfg.Paths.Ledger), loc, nil), nil
	}
	return ledger.NewService(a.path(a.cfg.Paths.Ledger), loc, svc), nil
}

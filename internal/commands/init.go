package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spendsight/spendsight/internal/config"
	"github.com/spendsight/spendsight/internal/importer"
)

func newInitCommand(a *app) *cobra.Command {
	var defaultBank, timezone string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a spendsight workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := config.Default()
			if defaultBank != "" {
				s, ok := importer.DefaultCatalog().Get(defaultBank)
				if !ok {
					return fmt.Errorf("unknown bank %q (see 'spendsight schemas')", defaultBank)
				}
				cfg.Import.DefaultBank = s.ID
			}
			cfg.Import.Timezone = timezone
			if _, err := cfg.Location(); err != nil {
				return err
			}

			return runInit(cmd.OutOrStdout(), absDir, cfg, force)
		},
	}

	cmd.Flags().StringVar(&defaultBank, "default-bank", "", "bank to assume when a file's format cannot be detected")
	cmd.Flags().StringVar(&timezone, "timezone", "UTC", "IANA timezone for statement dates")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing "+config.FileName)

	return cmd
}

func runInit(out io.Writer, dir string, cfg *config.Config, force bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	dirs := []string{
		cfg.Paths.Logs,
		cfg.Paths.Inbox,
		filepath.Join(cfg.Paths.Inbox, "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(out, "Initialized spendsight workspace at %s\n", dir)
	fmt.Fprintf(out, "Drop statement CSVs into %s and run 'spendsight import'.\n", filepath.Join(dir, cfg.Paths.Inbox))
	return nil
}

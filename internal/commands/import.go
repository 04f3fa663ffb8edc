package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/spendsight/spendsight/internal/importer"
	"github.com/spendsight/spendsight/internal/logger"
	"github.com/spendsight/spendsight/internal/model"
	"github.com/spendsight/spendsight/internal/runlog"
)

type importOptions struct {
	bank      string
	accountID string
	dryRun    bool
	archive   bool
}

func newImportCommand(a *app) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import [file|dir]...",
		Short: "Import bank statement CSVs into the ledger",
		Long: `Import bank statement CSVs into the ledger.

Directories are scanned for *.csv files. With no arguments the configured
inbox directory is used. Rows already in the ledger are skipped, so
re-importing a statement is safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{a.path(a.cfg.Paths.Inbox)}
			}
			return a.runImport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.bank, "bank", "", "bank format to assume (see 'spendsight schemas')")
	cmd.Flags().StringVar(&opts.accountID, "account", "", "attribute every transaction to this account ID")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "parse and report without touching the ledger")
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "move imported files into a processed/ directory next to them")

	return cmd
}

// collectFiles expands directories into the CSV files they contain.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := importer.Scan(arg)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			files = append(files, f.Path)
		}
	}
	return files, nil
}

func (a *app) runImport(cmd *cobra.Command, args []string, opts importOptions) error {
	out := cmd.OutOrStdout()
	log := logger.FromContext(cmd.Context())

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No CSV files to import.")
		return nil
	}

	accts, err := a.accounts()
	if err != nil {
		return err
	}
	if opts.accountID != "" && len(accts.All()) > 0 && !accts.Exists(opts.accountID) {
		return fmt.Errorf("unknown account %q", opts.accountID)
	}
	loc, err := a.cfg.Location()
	if err != nil {
		return err
	}
	store, err := a.ledger()
	if err != nil {
		return err
	}

	im := importer.New(
		importer.WithAccounts(accts),
		importer.WithAccountID(opts.accountID),
		importer.WithLocation(loc),
		importer.WithLogger(log),
	)
	hint := hintOr(opts.bank, a.cfg.Import.DefaultBank)

	var entries []runlog.Entry
	failed := 0
	for _, path := range files {
		entry, err := a.importFile(out, im, store, path, hint, opts)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
		if entry.Schema == "" {
			failed++
			continue
		}
		if opts.archive && !opts.dryRun {
			if err := importer.MarkProcessed(filepath.Dir(path), filepath.Base(path)); err != nil {
				return err
			}
			log.Debug().Str("file", path).Msg("archived")
		}
	}

	if !opts.dryRun {
		if err := runlog.Append(a.path(a.cfg.Paths.Logs), entries); err != nil {
			return fmt.Errorf("writing import log: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) could not be imported", failed, len(files))
	}
	return nil
}

// ledgerWriter is the part of the ledger import needs.
type ledgerWriter interface {
	Merge(txns []model.Transaction) (int, error)
}

func (a *app) importFile(out io.Writer, im *importer.Importer, store ledgerWriter, path, hint string, opts importOptions) (runlog.Entry, error) {
	name := filepath.Base(path)
	entry := runlog.Entry{Timestamp: time.Now().UTC(), File: name}

	data, err := os.ReadFile(path)
	if err != nil {
		return entry, fmt.Errorf("reading %s: %w", path, err)
	}

	res := im.Import(string(data), hint)
	entry.Errors = len(res.Errors)
	entry.Details = strings.Join(res.Errors, "; ")
	if res.Account == nil {
		fmt.Fprintf(out, "%s: rejected: %s\n", name, entry.Details)
		return entry, nil
	}
	entry.Schema = res.Schema
	entry.AccountID = res.Account.AccountID

	added := len(res.Transactions)
	if !opts.dryRun {
		added, err = store.Merge(res.Transactions)
		if err != nil {
			return entry, fmt.Errorf("importing %s: %w", name, err)
		}
	}
	entry.Imported = added
	entry.Skipped = len(res.Transactions) - added

	fmt.Fprintf(out, "%s: %s (%s), %d imported, %d already in ledger, %d row error(s)\n",
		name, res.Account.Institution, entry.AccountID, entry.Imported, entry.Skipped, entry.Errors)
	for _, e := range res.Errors {
		fmt.Fprintf(out, "  %s\n", e)
	}
	return entry, nil
}

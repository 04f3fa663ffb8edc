package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spendsight/spendsight/internal/categorize"
	"github.com/spendsight/spendsight/internal/importer"
	"github.com/spendsight/spendsight/internal/logger"
)

func newSchemasCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List supported bank formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tBANK\tALIASES\tHEADER")
			for _, s := range importer.DefaultCatalog().All() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Name, strings.Join(s.Aliases, ", "), strings.Join(s.Header, ","))
			}
			return w.Flush()
		},
	}
}

func newValidateCommand(a *app) *cobra.Command {
	var bank string

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a statement file can be imported",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			content := string(data)

			if v := importer.Validate(content); !v.Valid {
				return fmt.Errorf("%s: %s", args[0], v.Error)
			}

			im := importer.New(importer.WithLogger(logger.FromContext(cmd.Context())))
			s, err := im.Detect(content, hintOr(bank, a.cfg.Import.DefaultBank))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid %s statement\n", args[0], s.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&bank, "bank", "", "bank format to assume (see 'spendsight schemas')")
	return cmd
}

func newCategorizeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categorize <description> [merchant]",
		Short: "Show the category a description would be filed under",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			merchant := ""
			if len(args) > 1 {
				merchant = args[1]
			} else {
				merchant = importer.ExtractMerchant(args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), categorize.Categorize(args[0], merchant))
			return nil
		},
	}
}

func hintOr(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

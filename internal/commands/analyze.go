package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spendsight/spendsight/internal/engine"
	"github.com/spendsight/spendsight/internal/logger"
	"github.com/spendsight/spendsight/internal/model"
)

// loadEngine reads the ledger into a fresh analytics context.
func (a *app) loadEngine(cmd *cobra.Command) (*engine.Engine, error) {
	now, err := a.now()
	if err != nil {
		return nil, err
	}
	store, err := a.ledger()
	if err != nil {
		return nil, err
	}
	txns, err := store.ReadAll()
	if err != nil {
		return nil, err
	}

	e := engine.New(a.cfg.Analysis,
		engine.WithClock(func() time.Time { return now }),
		engine.WithLogger(logger.FromContext(cmd.Context())),
	)
	e.Load(txns)
	e.MarkRecurring()
	return e, nil
}

func newAnalyzeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Summarize spending by category and income by source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.loadEngine(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(e.Transactions()) == 0 {
				fmt.Fprintln(out, "Ledger is empty; run 'spendsight import' first.")
				return nil
			}
			snap := e.Refresh()
			if err := printSpending(out, snap.Spending, a.cfg.Analysis.SpendingWindowDays); err != nil {
				return err
			}
			fmt.Fprintln(out)
			if err := printIncome(out, snap.Income, a.cfg.Analysis.IncomeWindowDays); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d insight(s); %s available today. See 'spendsight insights' and 'spendsight budget'.\n",
				len(snap.Insights), money(snap.Budget.AvailableToSpend))
			return nil
		},
	}
}

func newInsightsCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show prioritized observations about your spending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.loadEngine(cmd)
			if err != nil {
				return err
			}
			found := e.GenerateInsights()
			if limit > 0 && len(found) > limit {
				found = found[:limit]
			}
			printInsights(cmd.OutOrStdout(), found)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many insights (0 for all)")
	return cmd
}

func newBudgetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "budget",
		Short: "Show how much you can spend today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.loadEngine(cmd)
			if err != nil {
				return err
			}
			e.AnalyzeIncomePatterns()
			printBudget(cmd.OutOrStdout(), e.ComputeDailyBudget())
			return nil
		},
	}
}

func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func printSpending(out io.Writer, spending []model.SpendingPattern, days int) error {
	fmt.Fprintf(out, "Spending, last %d days\n", days)
	if len(spending) == 0 {
		fmt.Fprintln(out, "  no expenses in window")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "CATEGORY\tTOTAL\tTREND\tUNUSUAL\tRECURRING\t")
	for _, sp := range spending {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t\n",
			sp.Category, money(sp.AverageMonthly), sp.Trend, yesNo(sp.UnusualActivity), len(sp.RecurringExpenses))
	}
	return w.Flush()
}

func printIncome(out io.Writer, income []model.IncomePattern, days int) error {
	fmt.Fprintf(out, "Income, last %d days\n", days)
	if len(income) == 0 {
		fmt.Fprintln(out, "  no income in window")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tMONTHLY\tFREQUENCY\tCONSISTENCY")
	for _, ip := range income {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", ip.Source, money(ip.AverageMonthly), ip.Frequency, ip.Consistency)
	}
	return w.Flush()
}

func printInsights(out io.Writer, found []model.Insight) {
	if len(found) == 0 {
		fmt.Fprintln(out, "No insights yet.")
		return
	}
	for i, ins := range found {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "[%s] %s: %s\n", strings.ToUpper(string(ins.Priority)), ins.Type, ins.Title)
		fmt.Fprintf(out, "  %s\n", ins.Description)
		if ins.PotentialSavings != nil {
			fmt.Fprintf(out, "  Potential savings: %s\n", money(*ins.PotentialSavings))
		}
	}
}

func printBudget(out io.Writer, b model.DailyBudget) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Date\t%s\n", b.Date.Format("2006-01-02"))
	fmt.Fprintf(w, "Available today\t%s\n", money(b.AvailableToSpend))
	fmt.Fprintf(w, "Spent today\t%s\n", money(b.Spent))
	fmt.Fprintf(w, "Remaining\t%s\n", money(b.Remaining))
	fmt.Fprintf(w, "Used\t%s%%\n", b.PercentageUsed.StringFixed(1))
	fmt.Fprintf(w, "Over budget\t%s\n", yesNo(b.OverBudget))
	_ = w.Flush()
}

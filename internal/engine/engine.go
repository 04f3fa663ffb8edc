// Package engine holds the caller-owned analytics state for one transaction
// collection.
//
// An Engine snapshots the transactions handed to Load and derives spending
// patterns, income patterns, insights and the daily budget from that snapshot.
// Each Analyze/Generate/Compute call recomputes its result from scratch and
// replaces the previous one. The Engine does no locking; callers that share it
// across goroutines must serialize access.
package engine

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/spendsight/spendsight/internal/budget"
	"github.com/spendsight/spendsight/internal/config"
	"github.com/spendsight/spendsight/internal/insights"
	"github.com/spendsight/spendsight/internal/model"
	"github.com/spendsight/spendsight/internal/patterns"
)

// Snapshot is the derived state after a pass.
type Snapshot struct {
	Transactions []model.Transaction
	Spending     []model.SpendingPattern
	Income       []model.IncomePattern
	Insights     []model.Insight
	Budget       *model.DailyBudget // nil until computed
}

// Engine is an analytics context. The zero value is not usable; call New.
type Engine struct {
	cfg   config.AnalysisConfig
	clock func() time.Time
	log   zerolog.Logger

	txns     []model.Transaction
	spending []model.SpendingPattern
	income   []model.IncomePattern
	insights []model.Insight
	budget   *model.DailyBudget
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock fixes the notion of "now".
func WithClock(clock func() time.Time) Option { return func(e *Engine) { e.clock = clock } }

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.log = l } }

// New creates an Engine with the given coefficients.
func New(cfg config.AnalysisConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg:   cfg,
		clock: time.Now,
		log:   zerolog.Nop(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Load replaces the transaction collection with a copy of txns and clears
// every derived result.
func (e *Engine) Load(txns []model.Transaction) {
	e.txns = make([]model.Transaction, len(txns))
	copy(e.txns, txns)
	e.spending, e.income, e.insights, e.budget = nil, nil, nil, nil
	e.log.Debug().Int("transactions", len(txns)).Msg("loaded transactions")
}

// Transactions returns a copy of the current collection.
func (e *Engine) Transactions() []model.Transaction {
	out := make([]model.Transaction, len(e.txns))
	copy(out, e.txns)
	return out
}

// MarkRecurring flags members of recurring expense and income groups in the
// collection.
func (e *Engine) MarkRecurring() {
	e.txns = patterns.MarkRecurring(e.txns, decimal.NewFromFloat(e.cfg.RecurringVarianceRatio))
}

// AnalyzeSpendingPatterns recomputes the per-category spending patterns.
func (e *Engine) AnalyzeSpendingPatterns() []model.SpendingPattern {
	e.spending = patterns.SpendingPatterns(e.txns, e.clock(), e.cfg)
	e.log.Debug().Int("categories", len(e.spending)).Msg("analyzed spending")
	return e.spending
}

// AnalyzeIncomePatterns recomputes the per-source income patterns.
func (e *Engine) AnalyzeIncomePatterns() []model.IncomePattern {
	e.income = patterns.IncomePatterns(e.txns, e.clock(), e.cfg)
	e.log.Debug().Int("sources", len(e.income)).Msg("analyzed income")
	return e.income
}

// GenerateInsights reruns every detector over the whole collection.
func (e *Engine) GenerateInsights() []model.Insight {
	e.insights = insights.Generate(e.txns, e.clock(), e.cfg)
	e.log.Debug().Int("insights", len(e.insights)).Msg("generated insights")
	return e.insights
}

// ComputeDailyBudget recomputes today's budget from the current income
// patterns. If income has not been analyzed since the last Load, the patterns
// are derived for this call without being stored.
func (e *Engine) ComputeDailyBudget() model.DailyBudget {
	now := e.clock()
	income := e.income
	if income == nil {
		income = patterns.IncomePatterns(e.txns, now, e.cfg)
	}
	b := budget.Compute(e.txns, income, now)
	e.budget = &b
	e.log.Debug().
		Str("available", b.AvailableToSpend.StringFixed(2)).
		Bool("over_budget", b.OverBudget).
		Msg("computed daily budget")
	return b
}

// Refresh marks recurring transactions and then runs all four analyses.
func (e *Engine) Refresh() Snapshot {
	e.MarkRecurring()
	e.AnalyzeSpendingPatterns()
	e.AnalyzeIncomePatterns()
	e.GenerateInsights()
	e.ComputeDailyBudget()
	e.log.Info().
		Int("transactions", len(e.txns)).
		Int("insights", len(e.insights)).
		Msg("analysis complete")
	return e.Snapshot()
}

// Snapshot returns the current derived state. Slices are shared with the
// Engine until the next recomputation replaces them.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Transactions: e.Transactions(),
		Spending:     e.spending,
		Income:       e.income,
		Insights:     e.insights,
		Budget:       e.budget,
	}
}

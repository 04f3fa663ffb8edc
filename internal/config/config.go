package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // timezone names resolve on hosts without zoneinfo

	"gopkg.in/yaml.v3"
)

// FileName is the default configuration file name.
const FileName = "spendsight.yaml"

// Config represents the top-level spendsight.yaml configuration.
type Config struct {
	Accounts []AccountConfig `yaml:"accounts,omitempty"`
	Import   ImportConfig    `yaml:"import"`
	Paths    PathsConfig     `yaml:"paths"`
	Analysis AnalysisConfig  `yaml:"analysis"`
	Log      LogConfig       `yaml:"log"`
}

// AccountConfig declares a bank account that imports can be attributed to.
type AccountConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Institution string `yaml:"institution"` // schema ID, e.g. "chase"
	LastFour    string `yaml:"last_four,omitempty"`
}

// ImportConfig controls statement import.
type ImportConfig struct {
	DefaultBank string `yaml:"default_bank,omitempty"`
	Timezone    string `yaml:"timezone"` // IANA name used for dates without an offset
}

// PathsConfig locates the workspace files, relative to the config file.
type PathsConfig struct {
	Ledger string `yaml:"ledger"`
	Logs   string `yaml:"logs"`
	Inbox  string `yaml:"inbox"`
}

// AnalysisConfig holds every heuristic coefficient used by the analytics engine.
type AnalysisConfig struct {
	RecurringVarianceRatio float64 `yaml:"recurring_variance_ratio"`

	SpendingWindowDays       int     `yaml:"spending_window_days"`
	UnusualCategoryThreshold float64 `yaml:"unusual_category_threshold"`

	IncomeWindowDays       int    `yaml:"income_window_days"`
	IncomeMonthsDivisor    int    `yaml:"income_months_divisor"`
	IncomeFrequency        string `yaml:"income_frequency"`
	IncomeConsistencyScore int    `yaml:"income_consistency_score"`

	SmallPurchaseWindowDays int     `yaml:"small_purchase_window_days"`
	SmallFoodAmount         float64 `yaml:"small_food_amount"`
	SmallFoodMinCount       int     `yaml:"small_food_min_count"`
	SmallFoodSavingsRate    float64 `yaml:"small_food_savings_rate"`

	SubscriptionAnnualMultiplier int `yaml:"subscription_annual_multiplier"`

	ShoppingWindowDays  int     `yaml:"shopping_window_days"`
	ShoppingLimit       float64 `yaml:"shopping_limit"`
	ShoppingSavingsRate float64 `yaml:"shopping_savings_rate"`

	CategorySpikeRatio float64 `yaml:"category_spike_ratio"`
	SpendingRatioLimit float64 `yaml:"spending_ratio_limit"`

	NeedsShare   float64 `yaml:"needs_share"`
	WantsShare   float64 `yaml:"wants_share"`
	SavingsShare float64 `yaml:"savings_share"`

	IncomeLookbackMonths   int     `yaml:"income_lookback_months"`
	IncomeVariabilityRatio float64 `yaml:"income_variability_ratio"`
	MinIncomeTransactions  int     `yaml:"min_income_transactions"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a spendsight.yaml file from disk. Keys missing from the file keep
// their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Location returns the configured import timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Import.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Import.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Import.Timezone, err)
	}
	return loc, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the stock heuristics.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			Timezone: "UTC",
		},
		Paths: PathsConfig{
			Ledger: "ledger.csv",
			Logs:   "logs",
			Inbox:  "import",
		},
		Analysis: DefaultAnalysis(),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultAnalysis returns the stock analysis coefficients.
func DefaultAnalysis() AnalysisConfig {
	return AnalysisConfig{
		RecurringVarianceRatio: 0.1,

		SpendingWindowDays:       30,
		UnusualCategoryThreshold: 1000,

		IncomeWindowDays:       90,
		IncomeMonthsDivisor:    3,
		IncomeFrequency:        "monthly",
		IncomeConsistencyScore: 85,

		SmallPurchaseWindowDays: 30,
		SmallFoodAmount:         15,
		SmallFoodMinCount:       15,
		SmallFoodSavingsRate:    0.6,

		SubscriptionAnnualMultiplier: 12,

		ShoppingWindowDays:  30,
		ShoppingLimit:       500,
		ShoppingSavingsRate: 0.3,

		CategorySpikeRatio: 1.5,
		SpendingRatioLimit: 0.9,

		NeedsShare:   0.5,
		WantsShare:   0.3,
		SavingsShare: 0.2,

		IncomeLookbackMonths:   3,
		IncomeVariabilityRatio: 0.3,
		MinIncomeTransactions:  5,
	}
}

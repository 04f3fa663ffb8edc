package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InsightType classifies an insight for presentation.
type InsightType string

const (
	InsightWarning     InsightType = "warning"
	InsightSuggestion  InsightType = "suggestion"
	InsightAchievement InsightType = "achievement"
)

// Priority orders insights for display.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns a sortable weight; higher is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Insight is a prioritized, human-readable observation about the history.
type Insight struct {
	ID               string
	Type             InsightType
	Title            string
	Description      string
	Category         *Category        // nil when not category specific
	PotentialSavings *decimal.Decimal // nil when not applicable
	Actionable       bool
	Priority         Priority
	CreatedAt        time.Time
}

package data

import (
	"context"

	"traveline/local-app/internal/model"
)

// BudgetAPI is the part of the REST client the budget view uses.
type BudgetAPI interface {
	BudgetSummary(ctx context.Context) (*model.BudgetSummary, error)
	BudgetBreakdown(ctx context.Context, planID int) (*model.BudgetBreakdown, error)
}

// Budget loads the budget tracking views.
type Budget struct {
	api BudgetAPI
}

// NewBudget creates a Budget loader.
func NewBudget(client BudgetAPI) *Budget {
	return &Budget{api: client}
}

// Summary returns spending across all plans.
func (b *Budget) Summary(ctx context.Context) (*model.BudgetSummary, error) {
	return b.api.BudgetSummary(ctx)
}

// Breakdown returns one plan's cost split.
func (b *Budget) Breakdown(ctx context.Context, planID int) (*model.BudgetBreakdown, error) {
	return b.api.BudgetBreakdown(ctx, planID)
}

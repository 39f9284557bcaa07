package api

import (
	"context"
	"fmt"

	"traveline/local-app/internal/model"
)

// BudgetSummary returns spending across all of the current user's plans.
func (c *Client) BudgetSummary(ctx context.Context) (*model.BudgetSummary, error) {
	var out model.BudgetSummary
	if err := c.get(ctx, "/budget/summary/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BudgetBreakdown returns the cost split of one plan.
func (c *Client) BudgetBreakdown(ctx context.Context, planID int) (*model.BudgetBreakdown, error) {
	var out model.BudgetBreakdown
	if err := c.get(ctx, fmt.Sprintf("/budget/breakdown/%d/", planID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DashboardStats returns the dashboard headline numbers.
func (c *Client) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var out model.DashboardStats
	if err := c.get(ctx, "/dashboard/stats/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpcomingTrips lists plans that have not started yet.
func (c *Client) UpcomingTrips(ctx context.Context) ([]model.TravelPlan, error) {
	return c.trips(ctx, "/dashboard/upcoming-trips/")
}

// PastTrips lists plans that have already ended.
func (c *Client) PastTrips(ctx context.Context) ([]model.TravelPlan, error) {
	return c.trips(ctx, "/dashboard/past-trips/")
}

// trips accepts a bare list or a {"trips": [...]} envelope.
func (c *Client) trips(ctx context.Context, path string) ([]model.TravelPlan, error) {
	var out tripList
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

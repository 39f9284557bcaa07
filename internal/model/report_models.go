package model

import "github.com/shopspring/decimal"

// BudgetPlan is one plan's line in the budget summary.
type BudgetPlan struct {
	PlanID        int                 `json:"plan_id"`
	Destination   string              `json:"destination"`
	TravelDate    string              `json:"travel_date"`
	Budget        decimal.NullDecimal `json:"budget"`
	EstimatedCost decimal.NullDecimal `json:"estimated_cost"`
}

// BudgetSummary aggregates spending across the user's plans.
type BudgetSummary struct {
	TotalPlans      int                 `json:"total_plans"`
	TotalBudget     decimal.NullDecimal `json:"total_budget"`
	TotalEstimated  decimal.NullDecimal `json:"total_estimated_cost"`
	RemainingBudget decimal.NullDecimal `json:"remaining_budget"`
	Plans           []BudgetPlan        `json:"plans"`
}

// BudgetBreakdown splits one plan's estimated cost.
type BudgetBreakdown struct {
	PlanID          int                 `json:"plan_id"`
	Destination     string              `json:"destination"`
	Nights          int                 `json:"nights"`
	NumTravelers    int                 `json:"num_travelers"`
	Budget          decimal.NullDecimal `json:"budget"`
	HotelCost       decimal.NullDecimal `json:"hotel_cost"`
	TransportCost   decimal.NullDecimal `json:"transport_cost"`
	TotalCost       decimal.NullDecimal `json:"total_cost"`
	RemainingBudget decimal.NullDecimal `json:"remaining_budget"`
}

// DashboardStats is the headline numbers on the user dashboard.
type DashboardStats struct {
	TotalPlans    int                 `json:"total_plans"`
	UpcomingTrips int                 `json:"upcoming_trips"`
	PastTrips     int                 `json:"past_trips"`
	TotalBudget   decimal.NullDecimal `json:"total_budget"`
	HasPreference bool                `json:"has_preferences"`
}

// AdminDashboard is the headline numbers on the admin dashboard.
type AdminDashboard struct {
	TotalUsers        int `json:"total_users"`
	ActiveUsers       int `json:"active_users"`
	TotalDestinations int `json:"total_destinations"`
	TotalHotels       int `json:"total_hotels"`
	TotalTransports   int `json:"total_transports"`
	TotalTravelPlans  int `json:"total_travel_plans"`
}

// AdminUser is a user row in the admin user list.
type AdminUser struct {
	Profile
	TravelPlansCount int  `json:"travel_plans_count"`
	HasPreferences   bool `json:"has_preferences"`
}

// AdminUserDetail is a single user with their plans and preferences.
type AdminUserDetail struct {
	AdminUser
	TravelPlans []TravelPlan `json:"travel_plans"`
	Preferences *Preferences `json:"preferences"`
}

// PreferencesTracking summarises how users have set their preferences.
type PreferencesTracking struct {
	TotalUsersWithPreferences int            `json:"total_users_with_preferences"`
	BudgetDistribution        map[string]int `json:"budget_distribution"`
	InterestDistribution      map[string]int `json:"interest_distribution"`
	ObjectiveDistribution     map[string]int `json:"objective_distribution"`
}

// Record is an untyped resource body used by the admin CRUD screens.
type Record map[string]any

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"traveline/local-app/internal/model"
	"traveline/local-app/internal/ui"
)

func (c *CLI) budgetSummary(ctx context.Context, _ model.Command) error {
	sum, err := c.budget.Summary(ctx)
	if err != nil {
		return err
	}
	c.ui.Heading("Budget summary")
	c.ui.Field("Plans", strconv.Itoa(sum.TotalPlans))
	c.ui.Field("Total budget", ui.NullMoney(sum.TotalBudget))
	c.ui.Field("Estimated cost", ui.NullMoney(sum.TotalEstimated))
	c.ui.Field("Remaining", ui.NullMoney(sum.RemainingBudget))
	if len(sum.Plans) > 0 {
		rows := make([][]string, len(sum.Plans))
		for i, p := range sum.Plans {
			rows[i] = []string{strconv.Itoa(p.PlanID), p.Destination, p.TravelDate, ui.NullMoney(p.Budget), ui.NullMoney(p.EstimatedCost)}
		}
		c.ui.Table([]string{"Plan", "Destination", "Date", "Budget", "Estimated"}, rows)
	}
	return nil
}

func (c *CLI) budgetBreakdown(ctx context.Context, cmd model.Command) error {
	id, err := parseID(cmd.Args[0])
	if err != nil {
		return err
	}
	b, err := c.budget.Breakdown(ctx, id)
	if err != nil {
		return err
	}
	c.ui.Heading(fmt.Sprintf("Plan %d: %s", id, b.Destination))
	c.ui.Field("Nights", strconv.Itoa(b.Nights))
	c.ui.Field("Travelers", strconv.Itoa(b.NumTravelers))
	c.ui.Field("Budget", ui.NullMoney(b.Budget))
	c.ui.Field("Hotel", ui.NullMoney(b.HotelCost))
	c.ui.Field("Transport", ui.NullMoney(b.TransportCost))
	c.ui.Field("Total", ui.NullMoney(b.TotalCost))
	c.ui.Field("Remaining", ui.NullMoney(b.RemainingBudget))
	return nil
}

func (c *CLI) showDashboard(ctx context.Context, _ model.Command) error {
	v := c.dashboard.Load(ctx)

	c.ui.Heading("Dashboard")
	if v.StatsErr != nil {
		c.ui.Warning("Statistics unavailable: " + errorMessage(v.StatsErr))
	} else {
		c.ui.Field("Plans", strconv.Itoa(v.Stats.TotalPlans))
		c.ui.Field("Upcoming", strconv.Itoa(v.Stats.UpcomingTrips))
		c.ui.Field("Past", strconv.Itoa(v.Stats.PastTrips))
		c.ui.Field("Total budget", ui.NullMoney(v.Stats.TotalBudget))
	}
	c.tripSection("Upcoming trips", v.Upcoming, v.UpcomingErr)
	c.tripSection("Past trips", v.Past, v.PastErr)

	// Only a failure of every part fails the command.
	if v.StatsErr != nil && v.UpcomingErr != nil && v.PastErr != nil {
		return v.StatsErr
	}
	return nil
}

func (c *CLI) tripSection(title string, trips []model.TravelPlan, err error) {
	c.ui.Heading(title)
	switch {
	case err != nil:
		c.ui.Warning("Unavailable: " + errorMessage(err))
	case len(trips) == 0:
		c.ui.Info("None.")
	default:
		c.planTable(trips)
	}
}

func (c *CLI) profileShow(ctx context.Context, _ model.Command) error {
	p, err := c.profile.Load(ctx)
	if err != nil {
		return err
	}
	c.printProfile(*p)
	return nil
}

func (c *CLI) printProfile(p model.Profile) {
	c.ui.Heading(p.Username)
	c.ui.Field("Email", p.Email)
	c.ui.Field("Name", strings.TrimSpace(p.FirstName+" "+p.LastName))
	c.ui.Field("Joined", p.DateJoined)
	c.ui.Field("Active", strconv.FormatBool(p.IsActive))
}

func (c *CLI) profileUpdate(ctx context.Context, cmd model.Command) error {
	var update model.ProfileUpdate
	for _, arg := range cmd.Args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", arg)
		}
		switch strings.ToLower(key) {
		case "email":
			update.Email = value
		case "first", "first_name":
			update.FirstName = value
		case "last", "last_name":
			update.LastName = value
		default:
			return fmt.Errorf("unknown profile field %q", key)
		}
	}
	p, err := c.profile.Update(ctx, update)
	if err != nil {
		return err
	}
	c.ui.Success("Profile updated.")
	c.printProfile(*p)
	return nil
}

func (c *CLI) profileDelete(ctx context.Context, _ model.Command) error {
	ok, err := c.confirm("Delete your account and all its plans? This cannot be undone.")
	if err != nil || !ok {
		return err
	}
	if err := c.profile.DeleteAccount(ctx); err != nil {
		return err
	}
	c.ui.Success("Account deleted. You have been logged out.")
	return nil
}

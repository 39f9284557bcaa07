package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"traveline/local-app/internal/api"
	"traveline/local-app/internal/data"
	"traveline/local-app/internal/model"
	"traveline/local-app/internal/ui"
)

func (c *CLI) adminDashboard(ctx context.Context, _ model.Command) error {
	o := c.admin.Overview(ctx)

	c.ui.Heading("Site overview")
	if o.DashErr != nil {
		c.ui.Warning("Counts unavailable: " + errorMessage(o.DashErr))
	} else {
		d := o.Dashboard
		c.ui.Field("Users", fmt.Sprintf("%d (%d active)", d.TotalUsers, d.ActiveUsers))
		c.ui.Field("Destinations", strconv.Itoa(d.TotalDestinations))
		c.ui.Field("Hotels", strconv.Itoa(d.TotalHotels))
		c.ui.Field("Transport", strconv.Itoa(d.TotalTransports))
		c.ui.Field("Travel plans", strconv.Itoa(d.TotalTravelPlans))
	}

	c.ui.Heading("Users")
	if o.UsersErr != nil {
		c.ui.Warning("Users unavailable: " + errorMessage(o.UsersErr))
	} else {
		c.userTable(o.Users)
	}

	c.ui.Heading("Preferences")
	if o.TrackingErr != nil {
		c.ui.Warning("Preference statistics unavailable: " + errorMessage(o.TrackingErr))
	} else {
		c.printTracking(o.Tracking)
	}

	if o.DashErr != nil && o.UsersErr != nil && o.TrackingErr != nil {
		return o.DashErr
	}
	return nil
}

func (c *CLI) adminUsers(ctx context.Context, _ model.Command) error {
	users, err := c.admin.Users(ctx)
	if err != nil {
		return err
	}
	c.userTable(users)
	return nil
}

func (c *CLI) adminUser(ctx context.Context, cmd model.Command) error {
	id, err := parseID(cmd.Args[0])
	if err != nil {
		return err
	}
	u, err := c.admin.User(ctx, id)
	if err != nil {
		return err
	}
	c.printProfile(u.Profile)
	c.ui.Field("Staff", strconv.FormatBool(u.IsStaff))
	if u.Preferences != nil {
		c.ui.Heading("Preferences")
		c.printPreferences(model.InputFromPreferences(*u.Preferences))
	}
	if len(u.TravelPlans) > 0 {
		c.ui.Heading("Travel plans")
		c.planTable(u.TravelPlans)
	}
	return nil
}

func (c *CLI) adminToggle(ctx context.Context, cmd model.Command) error {
	id, err := parseID(cmd.Args[0])
	if err != nil {
		return err
	}
	res, err := c.admin.ToggleUser(ctx, id)
	if err != nil {
		return err
	}
	msg := res.Message
	if msg == "" {
		state := "deactivated"
		if res.IsActive {
			state = "activated"
		}
		msg = fmt.Sprintf("User %d %s.", id, state)
	}
	c.ui.Success(msg)
	return nil
}

func (c *CLI) adminPlans(ctx context.Context, _ model.Command) error {
	plans, err := c.admin.Plans(ctx)
	if err != nil {
		return err
	}
	c.planTable(plans)
	return nil
}

func (c *CLI) adminPrefs(ctx context.Context, _ model.Command) error {
	t, err := c.admin.Tracking(ctx)
	if err != nil {
		return err
	}
	c.printTracking(t)
	return nil
}

func (c *CLI) printTracking(t *model.PreferencesTracking) {
	c.ui.Field("Users with preferences", strconv.Itoa(t.TotalUsersWithPreferences))
	for _, dist := range []struct {
		name   string
		counts map[string]int
	}{
		{"Budget", t.BudgetDistribution},
		{"Interest", t.InterestDistribution},
		{"Objective", t.ObjectiveDistribution},
	} {
		if len(dist.counts) == 0 {
			continue
		}
		rows := make([][]string, 0, len(dist.counts))
		for _, k := range sortedKeys(dist.counts) {
			rows = append(rows, []string{k, strconv.Itoa(dist.counts[k])})
		}
		c.ui.Table([]string{dist.name, "Users"}, rows)
	}
}

func (c *CLI) userTable(users []model.AdminUser) {
	rows := make([][]string, len(users))
	for i, u := range users {
		rows[i] = []string{
			strconv.Itoa(u.ID), u.Username, u.Email,
			strconv.FormatBool(u.IsActive), strconv.Itoa(u.TravelPlansCount), strconv.FormatBool(u.HasPreferences),
		}
	}
	c.ui.Table([]string{"ID", "Username", "Email", "Active", "Plans", "Preferences"}, rows)
}

func (c *CLI) adminList(ctx context.Context, cmd model.Command) error {
	r, err := api.ParseResource(cmd.Args[0])
	if err != nil {
		return err
	}
	records, err := c.admin.List(ctx, r)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		c.ui.Info("No records.")
		return nil
	}
	c.recordTable(r, records)
	return nil
}

// summaryFields are the columns shown when listing each resource.
var summaryFields = map[api.Resource][]string{
	api.ResourceDestinations: {"id", "name", "country", "city", "category", "budget_level"},
	api.ResourceHotels:       {"id", "name", "destination", "stars", "price_per_night"},
	api.ResourceTransport:    {"id", "transport_type", "origin", "destination", "distance_km", "estimated_price"},
}

func (c *CLI) recordTable(r api.Resource, records []model.Record) {
	fields := summaryFields[r]
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(fields))
		for j, f := range fields {
			row[j] = ui.Truncate(recordValue(rec[f]), 30)
		}
		rows[i] = row
	}
	c.ui.Table(fields, rows)
}

func recordValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func (c *CLI) printRecord(rec model.Record) {
	for _, k := range sortedKeys(rec) {
		c.ui.Field(k, recordValue(rec[k]))
	}
}

func (c *CLI) adminShow(ctx context.Context, cmd model.Command) error {
	r, id, err := resourceAndID(cmd.Args[0], cmd.Args[1])
	if err != nil {
		return err
	}
	rec, err := c.admin.Get(ctx, r, id)
	if err != nil {
		return err
	}
	c.printRecord(rec)
	return nil
}

func (c *CLI) adminCreate(ctx context.Context, cmd model.Command) error {
	r, err := api.ParseResource(cmd.Args[0])
	if err != nil {
		return err
	}
	rec, err := data.ParseRecord(cmd.Args[1:])
	if err != nil {
		return err
	}
	out, err := c.admin.Create(ctx, r, rec)
	if err != nil {
		return err
	}
	c.ui.Success(fmt.Sprintf("Created %s record %s.", r, recordValue(out["id"])))
	return nil
}

func (c *CLI) adminUpdate(ctx context.Context, cmd model.Command) error {
	r, id, err := resourceAndID(cmd.Args[0], cmd.Args[1])
	if err != nil {
		return err
	}
	rec, err := data.ParseRecord(cmd.Args[2:])
	if err != nil {
		return err
	}
	out, err := c.admin.Update(ctx, r, id, rec)
	if err != nil {
		return err
	}
	c.ui.Success(fmt.Sprintf("Updated %s record %d.", r, id))
	c.printRecord(out)
	return nil
}

func (c *CLI) adminDelete(ctx context.Context, cmd model.Command) error {
	r, id, err := resourceAndID(cmd.Args[0], cmd.Args[1])
	if err != nil {
		return err
	}
	if ok, err := c.confirm(fmt.Sprintf("Delete %s record %d?", r, id)); err != nil || !ok {
		return err
	}
	if err := c.admin.Delete(ctx, r, id); err != nil {
		return err
	}
	c.ui.Success(fmt.Sprintf("Deleted %s record %d.", r, id))
	return nil
}

func resourceAndID(resource, id string) (api.Resource, int, error) {
	r, err := api.ParseResource(resource)
	if err != nil {
		return "", 0, err
	}
	n, err := parseID(id)
	if err != nil {
		return "", 0, err
	}
	return r, n, nil
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

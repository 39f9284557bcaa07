package data

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"traveline/local-app/internal/api"
	"traveline/local-app/internal/log"
	"traveline/local-app/internal/model"
)

// AdminAPI is the part of the REST client the admin views use.
type AdminAPI interface {
	AdminDashboard(ctx context.Context) (*model.AdminDashboard, error)
	AdminUsers(ctx context.Context) ([]model.AdminUser, error)
	AdminUser(ctx context.Context, id int) (*model.AdminUserDetail, error)
	AdminToggleUserStatus(ctx context.Context, id int) (*api.ToggleResult, error)
	AdminTravelPlans(ctx context.Context) ([]model.TravelPlan, error)
	AdminPreferencesTracking(ctx context.Context) (*model.PreferencesTracking, error)
	AdminList(ctx context.Context, r api.Resource) ([]model.Record, error)
	AdminGet(ctx context.Context, r api.Resource, id int) (model.Record, error)
	AdminCreate(ctx context.Context, r api.Resource, rec model.Record) (model.Record, error)
	AdminUpdate(ctx context.Context, r api.Resource, id int, rec model.Record) (model.Record, error)
	AdminDelete(ctx context.Context, r api.Resource, id int) error
}

// requiredFields lists the fields a new record of each resource must carry.
var requiredFields = map[api.Resource][]string{
	api.ResourceDestinations: {"name", "country", "city", "category", "budget_level"},
	api.ResourceHotels:       {"name", "destination", "price_per_night"},
	api.ResourceTransport:    {"origin", "destination", "transport_type", "distance_km", "estimated_price"},
}

// listFields are stored as JSON arrays.
var listFields = []string{"objectives_supported"}

// AdminOverview is the admin landing view with one result per part.
type AdminOverview struct {
	Dashboard   *model.AdminDashboard
	DashErr     error
	Users       []model.AdminUser
	UsersErr    error
	Tracking    *model.PreferencesTracking
	TrackingErr error
}

// Err joins the errors of every failed part.
func (o AdminOverview) Err() error {
	return errors.Join(o.DashErr, o.UsersErr, o.TrackingErr)
}

// Admin serves the admin screens.
type Admin struct {
	api    AdminAPI
	logger *log.Logger
}

// NewAdmin creates an Admin view.
func NewAdmin(client AdminAPI, logger *log.Logger) *Admin {
	return &Admin{api: client, logger: logger}
}

// Overview fetches the dashboard, the user list and preference tracking
// concurrently.
func (a *Admin) Overview(ctx context.Context) AdminOverview {
	var (
		o AdminOverview
		g errgroup.Group
	)
	g.Go(func() error {
		o.Dashboard, o.DashErr = a.api.AdminDashboard(ctx)
		return o.DashErr
	})
	g.Go(func() error {
		o.Users, o.UsersErr = a.api.AdminUsers(ctx)
		return o.UsersErr
	})
	g.Go(func() error {
		o.Tracking, o.TrackingErr = a.api.AdminPreferencesTracking(ctx)
		return o.TrackingErr
	})
	if err := g.Wait(); err != nil {
		a.logger.Warn(ctx, "Admin overview partially loaded", log.Fields{"error": o.Err()})
	}
	return o
}

func (a *Admin) Users(ctx context.Context) ([]model.AdminUser, error) {
	return a.api.AdminUsers(ctx)
}

func (a *Admin) User(ctx context.Context, id int) (*model.AdminUserDetail, error) {
	return a.api.AdminUser(ctx, id)
}

func (a *Admin) Plans(ctx context.Context) ([]model.TravelPlan, error) {
	return a.api.AdminTravelPlans(ctx)
}

func (a *Admin) Tracking(ctx context.Context) (*model.PreferencesTracking, error) {
	return a.api.AdminPreferencesTracking(ctx)
}

// ToggleUser activates or deactivates a user.
func (a *Admin) ToggleUser(ctx context.Context, id int) (*api.ToggleResult, error) {
	res, err := a.api.AdminToggleUserStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "User status toggled", log.Fields{"user": id, "active": res.IsActive})
	return res, nil
}

func (a *Admin) List(ctx context.Context, r api.Resource) ([]model.Record, error) {
	return a.api.AdminList(ctx, r)
}

func (a *Admin) Get(ctx context.Context, r api.Resource, id int) (model.Record, error) {
	return a.api.AdminGet(ctx, r, id)
}

// Create checks the resource's required fields before sending the record.
func (a *Admin) Create(ctx context.Context, r api.Resource, rec model.Record) (model.Record, error) {
	if missing := MissingFields(r, rec); len(missing) > 0 {
		return nil, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	out, err := a.api.AdminCreate(ctx, r, rec)
	if err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "Record created", log.Fields{"resource": string(r)})
	return out, nil
}

// Update sends a partial record; required fields are not checked.
func (a *Admin) Update(ctx context.Context, r api.Resource, id int, rec model.Record) (model.Record, error) {
	if len(rec) == 0 {
		return nil, errors.New("nothing to update")
	}
	return a.api.AdminUpdate(ctx, r, id, rec)
}

func (a *Admin) Delete(ctx context.Context, r api.Resource, id int) error {
	if err := a.api.AdminDelete(ctx, r, id); err != nil {
		return err
	}
	a.logger.Info(ctx, "Record deleted", log.Fields{"resource": string(r), "id": id})
	return nil
}

// MissingFields returns the required fields of r that rec leaves empty.
func MissingFields(r api.Resource, rec model.Record) []string {
	var missing []string
	for _, f := range requiredFields[r] {
		v, ok := rec[f]
		if !ok || v == nil || v == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// ParseRecord turns key=value arguments into a record. Integers and
// booleans are sent as JSON numbers and booleans; list fields take a
// comma-separated value.
func ParseRecord(args []string) (model.Record, error) {
	rec := model.Record{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		rec[key] = parseValue(key, strings.TrimSpace(value))
	}
	return rec, nil
}

func parseValue(key, value string) any {
	if slices.Contains(listFields, key) {
		items := []string{}
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if value == "true" || value == "false" {
		return value == "true"
	}
	// Decimal fields stay strings; the server parses them.
	return value
}

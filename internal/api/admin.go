package api

import (
	"context"
	"fmt"

	"traveline/local-app/internal/model"
)

// Resource names an admin-managed catalogue collection.
type Resource string

const (
	ResourceDestinations Resource = "destinations"
	ResourceHotels       Resource = "hotels"
	ResourceTransport    Resource = "transport"
)

// Resources lists every admin-managed collection.
var Resources = []Resource{ResourceDestinations, ResourceHotels, ResourceTransport}

// ParseResource validates a resource name typed by the user.
func ParseResource(s string) (Resource, error) {
	for _, r := range Resources {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown resource %q (want destinations, hotels or transport)", s)
}

func (r Resource) path() string {
	return "/admin/" + string(r) + "/"
}

func (r Resource) itemPath(id int) string {
	return fmt.Sprintf("/admin/%s/%d/", r, id)
}

// AdminDashboard returns site-wide counts.
func (c *Client) AdminDashboard(ctx context.Context) (*model.AdminDashboard, error) {
	var out model.AdminDashboard
	if err := c.get(ctx, "/admin/dashboard/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminUsers lists every user.
func (c *Client) AdminUsers(ctx context.Context) ([]model.AdminUser, error) {
	var out userList
	if err := c.get(ctx, "/admin/users/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminUser returns one user with their plans and preferences.
func (c *Client) AdminUser(ctx context.Context, id int) (*model.AdminUserDetail, error) {
	var out model.AdminUserDetail
	if err := c.get(ctx, fmt.Sprintf("/admin/users/%d/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleResult is the outcome of activating or deactivating a user.
type ToggleResult struct {
	Message  string `json:"message"`
	IsActive bool   `json:"is_active"`
}

// AdminToggleUserStatus flips a user between active and inactive.
func (c *Client) AdminToggleUserStatus(ctx context.Context, id int) (*ToggleResult, error) {
	var out ToggleResult
	if err := c.post(ctx, fmt.Sprintf("/admin/users/%d/toggle-status/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminTravelPlans lists every user's plans.
func (c *Client) AdminTravelPlans(ctx context.Context) ([]model.TravelPlan, error) {
	var out tripList
	if err := c.get(ctx, "/admin/travel-plans/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminPreferencesTracking returns how users have set their preferences.
func (c *Client) AdminPreferencesTracking(ctx context.Context) (*model.PreferencesTracking, error) {
	var out model.PreferencesTracking
	if err := c.get(ctx, "/admin/preferences-tracking/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminList lists every record of a resource.
func (c *Client) AdminList(ctx context.Context, r Resource) ([]model.Record, error) {
	var out recordList
	if err := c.get(ctx, r.path(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminGet returns one record of a resource.
func (c *Client) AdminGet(ctx context.Context, r Resource, id int) (model.Record, error) {
	var out model.Record
	if err := c.get(ctx, r.itemPath(id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminCreate stores a new record of a resource.
func (c *Client) AdminCreate(ctx context.Context, r Resource, rec model.Record) (model.Record, error) {
	var out model.Record
	if err := c.post(ctx, r.path(), rec, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminUpdate changes the given fields of a record.
func (c *Client) AdminUpdate(ctx context.Context, r Resource, id int, rec model.Record) (model.Record, error) {
	var out model.Record
	if err := c.patch(ctx, r.itemPath(id), rec, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminDelete removes a record.
func (c *Client) AdminDelete(ctx context.Context, r Resource, id int) error {
	return c.delete(ctx, r.itemPath(id))
}

package api

import (
	"context"
	"errors"
	"fmt"

	"traveline/local-app/internal/model"
)

// PreferencesLookup is the outcome of fetching the current user's
// preferences: either the record or the knowledge that none exists.
type PreferencesLookup struct {
	record *model.Preferences
}

// FoundPreferences wraps an existing record.
func FoundPreferences(p model.Preferences) PreferencesLookup {
	return PreferencesLookup{record: &p}
}

// NoPreferences is the lookup result when the user has no record yet.
func NoPreferences() PreferencesLookup {
	return PreferencesLookup{}
}

// Record returns the record and whether one exists.
func (l PreferencesLookup) Record() (model.Preferences, bool) {
	if l.record == nil {
		return model.Preferences{}, false
	}
	return *l.record, true
}

// MyPreferences fetches the current user's preferences. A missing record is
// not an error.
func (c *Client) MyPreferences(ctx context.Context) (PreferencesLookup, error) {
	var p model.Preferences
	err := c.get(ctx, "/preferences/my_preferences/", nil, &p)
	if errors.Is(err, ErrNotFound) {
		return NoPreferences(), nil
	}
	if err != nil {
		return PreferencesLookup{}, err
	}
	if p.ID == 0 {
		return NoPreferences(), nil
	}
	return FoundPreferences(p), nil
}

// CreatePreferences stores a new preference record.
func (c *Client) CreatePreferences(ctx context.Context, payload model.PreferencesPayload) (*model.Preferences, error) {
	var p model.Preferences
	if err := c.post(ctx, "/preferences/", payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePreferences changes an existing preference record.
func (c *Client) UpdatePreferences(ctx context.Context, id int, payload model.PreferencesPayload) (*model.Preferences, error) {
	var p model.Preferences
	if err := c.patch(ctx, fmt.Sprintf("/preferences/%d/", id), payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

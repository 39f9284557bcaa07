// Package preference captures the user's travel preferences and upserts
// them through the REST client.
package preference

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"traveline/local-app/internal/api"
	"traveline/local-app/internal/log"
	"traveline/local-app/internal/model"
)

var (
	// ErrNotLoaded is returned by Submit before Load has succeeded.
	ErrNotLoaded = errors.New("preferences not loaded")
	// ErrNoUserID is returned when creating a record without a session user id.
	ErrNoUserID = errors.New("no user id in session; log in again to save preferences")
)

// API is the part of the REST client the form uses.
type API interface {
	MyPreferences(ctx context.Context) (api.PreferencesLookup, error)
	CreatePreferences(ctx context.Context, payload model.PreferencesPayload) (*model.Preferences, error)
	UpdatePreferences(ctx context.Context, id int, payload model.PreferencesPayload) (*model.Preferences, error)
}

// Identity supplies the id of the logged-in user.
type Identity interface {
	UserID() string
}

// Mode tells whether submitting creates a record or updates one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "create"
}

// Form is the preference form state. It is not safe for concurrent use.
type Form struct {
	api      API
	identity Identity
	logger   *log.Logger

	loaded bool
	mode   Mode
	record model.Preferences
	input  model.PreferencesInput
}

// NewForm creates an unloaded form.
func NewForm(client API, identity Identity, logger *log.Logger) *Form {
	return &Form{
		api:      client,
		identity: identity,
		logger:   logger,
		input:    model.DefaultPreferencesInput(),
	}
}

// Load fetches the existing record. With a record the form is in update
// mode and shows its values; without one it is in create mode with defaults.
func (f *Form) Load(ctx context.Context) error {
	lookup, err := f.api.MyPreferences(ctx)
	if err != nil {
		f.logger.Error(ctx, "Failed to load preferences", log.Fields{"error": err})
		return err
	}

	if rec, ok := lookup.Record(); ok {
		f.useRecord(rec)
	} else {
		f.mode = ModeCreate
		f.record = model.Preferences{}
		f.input = model.DefaultPreferencesInput()
	}
	f.loaded = true

	f.logger.Debug(ctx, "Preferences loaded", log.Fields{"mode": f.mode.String()})
	return nil
}

func (f *Form) useRecord(rec model.Preferences) {
	f.mode = ModeUpdate
	f.record = rec
	f.input = model.InputFromPreferences(rec)
}

// Loaded reports whether Load has succeeded.
func (f *Form) Loaded() bool { return f.loaded }

// Mode returns the current submit mode.
func (f *Form) Mode() Mode { return f.mode }

// Input returns the current form values.
func (f *Form) Input() model.PreferencesInput { return f.input }

// Record returns the stored record, if one exists.
func (f *Form) Record() (model.Preferences, bool) {
	return f.record, f.mode == ModeUpdate
}

// Submit validates input and creates or updates the record. On success the
// record is re-fetched, the form switches to update mode and onSaved, if
// set, runs with the saved record. On failure the form is unchanged.
func (f *Form) Submit(ctx context.Context, input model.PreferencesInput, onSaved func(model.Preferences)) (model.Preferences, error) {
	if !f.loaded {
		return model.Preferences{}, ErrNotLoaded
	}
	if err := model.Validate(input); err != nil {
		return model.Preferences{}, errors.New(model.ValidationMessage(err))
	}

	var (
		saved *model.Preferences
		err   error
	)
	switch f.mode {
	case ModeUpdate:
		payload, perr := input.Payload("")
		if perr != nil {
			return model.Preferences{}, perr
		}
		saved, err = f.api.UpdatePreferences(ctx, f.record.ID, payload)
	default:
		userID := f.identity.UserID()
		if userID == "" {
			return model.Preferences{}, ErrNoUserID
		}
		payload, perr := input.Payload(userID)
		if perr != nil {
			return model.Preferences{}, perr
		}
		saved, err = f.api.CreatePreferences(ctx, payload)
	}
	if err != nil {
		f.logger.Error(ctx, "Failed to save preferences", log.Fields{"error": err, "mode": f.mode.String()})
		return model.Preferences{}, err
	}

	result := *saved
	if result.ID == 0 {
		result.ID = f.record.ID
	}
	// Re-fetch so the form mirrors the server; fall back to the save response.
	if lookup, lerr := f.api.MyPreferences(ctx); lerr == nil {
		if rec, ok := lookup.Record(); ok {
			result = rec
		}
	} else {
		f.logger.Warn(ctx, "Failed to re-fetch preferences after save", log.Fields{"error": lerr})
	}
	f.useRecord(result)

	f.logger.Info(ctx, "Preferences saved", log.Fields{"id": result.ID})
	if onSaved != nil {
		onSaved(result)
	}
	return result, nil
}

// Apply sets fields on input from key=value assignments such as
// "budget=low" or "travelers=2".
func Apply(input *model.PreferencesInput, assignments []string) error {
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", a)
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "budget":
			input.Budget = model.BudgetLevel(value)
		case "min", "budget_min":
			input.BudgetMin = value
		case "max", "budget_max":
			input.BudgetMax = value
		case "interest":
			input.Interest = model.Interest(value)
		case "location":
			input.Location = value
		case "objective":
			input.Objective = model.Objective(value)
		case "accommodation", "accommodation_type":
			input.AccommodationType = model.AccommodationType(value)
		case "travelers", "num_travelers":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("travelers must be a whole number, got %q", value)
			}
			input.NumTravelers = n
		default:
			return fmt.Errorf("unknown preference %q", key)
		}
	}
	return nil
}

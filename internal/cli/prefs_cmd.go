package cli

import (
	"context"
	"strconv"

	"traveline/local-app/internal/model"
	"traveline/local-app/internal/preference"
)

// preferenceForm returns the user's form, loading it on first use.
func (c *CLI) preferenceForm(ctx context.Context) (*preference.Form, error) {
	c.mu.Lock()
	form := c.form
	if form == nil {
		form = preference.NewForm(c.client, c.session, c.logger)
		c.form = form
	}
	c.mu.Unlock()

	if !form.Loaded() {
		if err := form.Load(ctx); err != nil {
			return nil, err
		}
	}
	return form, nil
}

func (c *CLI) prefsShow(ctx context.Context, _ model.Command) error {
	form, err := c.preferenceForm(ctx)
	if err != nil {
		return err
	}
	if form.Mode() == preference.ModeCreate {
		c.ui.Info("No preferences saved yet; these are the defaults.")
	} else {
		c.ui.Heading("Travel preferences")
	}
	c.printPreferences(form.Input())
	return nil
}

func (c *CLI) printPreferences(in model.PreferencesInput) {
	c.ui.Field("Budget", string(in.Budget))
	c.ui.Field("Budget min", in.BudgetMin)
	c.ui.Field("Budget max", in.BudgetMax)
	c.ui.Field("Interest", string(in.Interest))
	c.ui.Field("Objective", string(in.Objective))
	c.ui.Field("Accommodation", string(in.AccommodationType))
	c.ui.Field("Location", in.Location)
	c.ui.Field("Travelers", strconv.Itoa(in.NumTravelers))
}

func (c *CLI) prefsSet(ctx context.Context, cmd model.Command) error {
	form, err := c.preferenceForm(ctx)
	if err != nil {
		return err
	}
	input := form.Input()
	if err := preference.Apply(&input, cmd.Args); err != nil {
		return err
	}

	created := form.Mode() == preference.ModeCreate
	if _, err := form.Submit(ctx, input, c.preferencesSaved); err != nil {
		return err
	}
	if created {
		c.ui.Success("Preferences saved. Start planning with 'plan start'.")
	} else {
		c.ui.Success("Preferences updated.")
	}
	c.printPreferences(form.Input())
	return nil
}

// preferencesSaved hands a new record to a planning session that has not
// yet used the old one.
func (c *CLI) preferencesSaved(rec model.Preferences) {
	w := c.currentWizard()
	if w == nil {
		return
	}
	if err := w.UpdatePreferences(rec); err != nil {
		c.ui.Info("The trip being planned keeps the preferences it started with; use 'plan start' to apply the new ones.")
	}
}

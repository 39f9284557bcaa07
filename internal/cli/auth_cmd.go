package cli

import (
	"context"
	"errors"
	"fmt"

	"traveline/local-app/internal/log"
	"traveline/local-app/internal/model"
	"traveline/local-app/internal/session"
)

func (c *CLI) authLogin(ctx context.Context, cmd model.Command) error {
	username := cmd.Args[0]
	password := ""
	if len(cmd.Args) > 1 {
		password = cmd.Args[1]
	} else {
		var err error
		if password, err = c.prompter.ReadPassword("Password: "); err != nil {
			return err
		}
	}
	if password == "" {
		return errors.New("password is required")
	}

	resp, err := c.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := c.session.Login(ctx, resp.Credentials(username)); err != nil {
		if errors.Is(err, session.ErrNoToken) {
			return errors.New("login failed: the server returned no token")
		}
		return err
	}

	c.ui.Success(fmt.Sprintf("Welcome, %s!", c.session.Username()))
	c.preferencesHint(ctx)
	return nil
}

// preferencesHint loads the preference form after login and tells the user
// when nothing is saved yet.
func (c *CLI) preferencesHint(ctx context.Context) {
	form, err := c.preferenceForm(ctx)
	if err != nil {
		c.logger.Warn(ctx, "Could not load preferences after login", log.Fields{"error": err})
		return
	}
	if _, ok := form.Record(); !ok {
		c.ui.Info("You have no travel preferences yet. Save them with 'prefs set' before planning a trip.")
	}
}

func (c *CLI) authLogout(ctx context.Context, _ model.Command) error {
	// The server session is ended first, while the token is still known. A
	// failure there never keeps the user logged in locally.
	if err := c.client.Logout(ctx); err != nil {
		c.logger.Warn(ctx, "Server logout failed", log.Fields{"error": err})
	}
	if err := c.session.Logout(ctx); err != nil {
		return err
	}
	c.ui.Success("Logged out.")
	return nil
}

func (c *CLI) authRegister(ctx context.Context, cmd model.Command) error {
	reg := model.Registration{Username: cmd.Args[0], Email: cmd.Args[1]}
	if len(cmd.Args) > 2 {
		reg.FirstName = cmd.Args[2]
	}
	if len(cmd.Args) > 3 {
		reg.LastName = cmd.Args[3]
	}

	var err error
	if reg.Password, err = c.prompter.ReadPassword("Password: "); err != nil {
		return err
	}
	if reg.ConfirmPassword, err = c.prompter.ReadPassword("Confirm password: "); err != nil {
		return err
	}
	if err := model.Validate(reg); err != nil {
		return errors.New(model.ValidationMessage(err))
	}

	profile, err := c.client.Register(ctx, reg)
	if err != nil {
		return err
	}
	name := reg.Username
	if profile != nil && profile.Username != "" {
		name = profile.Username
	}
	c.ui.Success(fmt.Sprintf("Account %s created. Log in with 'auth login %s'.", name, name))
	return nil
}

func (c *CLI) authWhoami(context.Context, model.Command) error {
	if !c.session.IsAuthenticated() {
		c.ui.Info("Not logged in.")
		return nil
	}
	creds := c.session.Snapshot()
	c.ui.Field("Username", creds.Username)
	c.ui.Field("User id", creds.UserID)
	role := "traveller"
	switch {
	case creds.IsSuperuser:
		role = "superuser"
	case creds.IsAdmin:
		role = "admin"
	}
	c.ui.Field("Role", role)
	return nil
}

func (c *CLI) authPasswd(ctx context.Context, _ model.Command) error {
	var (
		change model.PasswordChange
		err    error
	)
	if change.OldPassword, err = c.prompter.ReadPassword("Current password: "); err != nil {
		return err
	}
	if change.NewPassword, err = c.prompter.ReadPassword("New password: "); err != nil {
		return err
	}
	if change.ConfirmPassword, err = c.prompter.ReadPassword("Confirm new password: "); err != nil {
		return err
	}
	if err := c.profile.ChangePassword(ctx, change); err != nil {
		return err
	}
	c.ui.Success("Password changed.")
	return nil
}

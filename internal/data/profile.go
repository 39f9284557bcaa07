package data

import (
	"context"
	"errors"

	"traveline/local-app/internal/log"
	"traveline/local-app/internal/model"
)

// ProfileAPI is the part of the REST client the profile view uses.
type ProfileAPI interface {
	Profile(ctx context.Context) (*model.Profile, error)
	UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.Profile, error)
	ChangePassword(ctx context.Context, change model.PasswordChange) error
	DeleteAccount(ctx context.Context) error
}

// Session is what the profile view needs from the session manager.
type Session interface {
	Logout(ctx context.Context) error
}

// Profile manages the current user's account.
type Profile struct {
	api     ProfileAPI
	session Session
	logger  *log.Logger
}

// NewProfile creates a Profile view.
func NewProfile(client ProfileAPI, session Session, logger *log.Logger) *Profile {
	return &Profile{api: client, session: session, logger: logger}
}

// Load returns the account.
func (p *Profile) Load(ctx context.Context) (*model.Profile, error) {
	return p.api.Profile(ctx)
}

// Update changes the non-empty fields.
func (p *Profile) Update(ctx context.Context, update model.ProfileUpdate) (*model.Profile, error) {
	if update == (model.ProfileUpdate{}) {
		return nil, errors.New("nothing to update")
	}
	return p.api.UpdateProfile(ctx, update)
}

// ChangePassword checks the confirmation locally before calling the server.
func (p *Profile) ChangePassword(ctx context.Context, change model.PasswordChange) error {
	if err := model.Validate(change); err != nil {
		return errors.New(model.ValidationMessage(err))
	}
	return p.api.ChangePassword(ctx, change)
}

// DeleteAccount removes the account and ends the local session.
func (p *Profile) DeleteAccount(ctx context.Context) error {
	if err := p.api.DeleteAccount(ctx); err != nil {
		return err
	}
	p.logger.Info(ctx, "Account deleted", nil)
	return p.session.Logout(ctx)
}

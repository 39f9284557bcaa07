package model

// Credentials is the authenticated identity kept by the session manager and
// mirrored to durable storage. The zero value means "not logged in".
type Credentials struct {
	Token       string
	Username    string
	UserID      string
	IsAdmin     bool
	IsSuperuser bool
}

// Authenticated reports whether the credentials carry a token.
func (c Credentials) Authenticated() bool {
	return c.Token != ""
}

// Registration is the account sign-up form.
type Registration struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
}

// PasswordChange is the change-password form.
type PasswordChange struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=NewPassword"`
}

// Profile is the account record returned by the users endpoints.
type Profile struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	IsActive    bool   `json:"is_active"`
	DateJoined  string `json:"date_joined"`
}

// ProfileUpdate carries the editable profile fields. Empty fields are not sent.
type ProfileUpdate struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

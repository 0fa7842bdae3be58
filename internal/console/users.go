package console

import (
	"context"
	"errors"
	"time"

	"github.com/edvin/backupdesk/internal/backend"
	"github.com/edvin/backupdesk/internal/session"
)

// sessionLifetime mirrors the backend's session duration and is used as
// the recorded expiry for opaque tokens without an embedded claim.
const sessionLifetime = 7 * 24 * time.Hour

// UserPanel drives the authentication screens and the account settings
// panel. It is the only view that writes the session store.
type UserPanel struct {
	client   *backend.Client
	store    *session.Store
	notifier Notifier
}

func NewUserPanel(client *backend.Client, store *session.Store, notifier Notifier) *UserPanel {
	return &UserPanel{
		client:   client,
		store:    store,
		notifier: notifier,
	}
}

// Login authenticates and persists the returned session token.
func (p *UserPanel) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		err := errors.New("username and password are required")
		p.notifier.Notify(Notice{Message: err.Error(), Status: 400})
		return err
	}

	token, resp := p.client.Login(ctx, username, password)
	if !resp.OK() {
		p.notifier.Notify(Notice{
			Message: resp.ErrorMessage("failed to log in"),
			Status:  resp.Status,
		})
		return errors.New(resp.ErrorMessage("failed to log in"))
	}

	s := session.Session{
		Token:    token,
		Username: username,
	}
	if _, ok := session.TokenExpiry(token); !ok {
		s.ExpiresAt = time.Now().Add(sessionLifetime)
	}
	if err := p.store.Save(s); err != nil {
		return err
	}

	p.notifier.Notify(Notice{Message: resp.Message, Status: resp.Status})
	return nil
}

// Logout clears the stored session. The backend keeps no client-visible
// logout endpoint; expiry on its side handles the rest.
func (p *UserPanel) Logout() error {
	return p.store.Clear()
}

// Register creates a new account. The double password entry is forwarded
// for the backend to check.
func (p *UserPanel) Register(ctx context.Context, username, password, password2 string) error {
	if password != password2 {
		err := errors.New("passwords do not match")
		p.notifier.Notify(Notice{Message: err.Error(), Status: 400})
		return err
	}

	resp := p.client.Register(ctx, username, password, password2)
	p.notifyOutcome(resp, "failed to register user")
	if !resp.OK() {
		return errors.New(resp.ErrorMessage("failed to register user"))
	}
	return nil
}

// ChangePassword rotates the account password.
func (p *UserPanel) ChangePassword(ctx context.Context, username, oldPassword, newPassword, newPassword2 string) error {
	if newPassword != newPassword2 {
		err := errors.New("new passwords do not match")
		p.notifier.Notify(Notice{Message: err.Error(), Status: 400})
		return err
	}
	if oldPassword == newPassword {
		err := errors.New("new password must be different from old password")
		p.notifier.Notify(Notice{Message: err.Error(), Status: 400})
		return err
	}

	resp := p.client.ChangePassword(ctx, username, oldPassword, newPassword, newPassword2)
	p.notifyOutcome(resp, "failed to change password")
	if !resp.OK() {
		return errors.New(resp.ErrorMessage("failed to change password"))
	}
	return nil
}

// WhoAmI returns the authenticated user's identity from the backend.
func (p *UserPanel) WhoAmI(ctx context.Context) (*backend.UserInfo, error) {
	info, resp := p.client.GetUserInfo(ctx)
	if !resp.OK() {
		return nil, errors.New(resp.ErrorMessage("failed to fetch user info"))
	}
	return info, nil
}

// LoggedIn reports the client-perceived auth state: a stored, unexpired
// token. No server round trip is made.
func (p *UserPanel) LoggedIn() bool {
	return p.store.Token() != ""
}

func (p *UserPanel) notifyOutcome(resp backend.Response, fallback string) {
	if resp.OK() {
		p.notifier.Notify(Notice{Message: resp.Message, Status: resp.Status})
		return
	}
	p.notifier.Notify(Notice{
		Message: resp.ErrorMessage(fallback),
		Status:  resp.Status,
	})
}

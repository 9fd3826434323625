// Package profile is the profile editing screen: a form over the signed-in
// user that is sent to PUT /users/edit.
package profile

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophprofile/internal/client/api"
	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/dmitrijs2005/gophprofile/internal/client/notify"
	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
)

// UserStore is the shared signed-in user.
type UserStore interface {
	Get() models.User
	Set(u models.User)
}

// TokenSource yields the stored session token, "" when there is none.
type TokenSource interface {
	Get(ctx context.Context) (string, error)
}

type Updater interface {
	UpdateProfile(ctx context.Context, token string, upd api.ProfileUpdate) (*api.Result, error)
}

type Outcome int

const (
	OutcomeUpdated Outcome = iota
	OutcomeMismatch
	OutcomeUnauthorized
	OutcomeRejected
	OutcomeFailed
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeMismatch:
		return "password mismatch"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	case OutcomeStale:
		return "stale"
	}
	return "unknown"
}

// User-facing notifications.
var (
	msgMismatch = notify.Notification{
		Title: "Password Mismatch",
		Text:  "The passwords do not match. Please try again.",
		Icon:  notify.IconError,
	}
	msgUnauthorized = notify.Notification{
		Title: "Unauthorized",
		Text:  "Please login to update your profile.",
		Icon:  notify.IconError,
	}
	msgFailed = notify.Notification{
		Title: "Error",
		Text:  "Failed to update profile.",
		Icon:  notify.IconError,
	}
)

const fallbackRejection = "Something went wrong."

type Editor struct {
	users  UserStore
	tokens TokenSource
	api    Updater
	notes  notify.Notifier
	log    logging.Logger

	mu   sync.Mutex
	form Form
	// seq numbers submits; only the response to the latest one is applied.
	seq uint64
}

func NewEditor(users UserStore, tokens TokenSource, updater Updater, notes notify.Notifier, log logging.Logger) *Editor {
	return &Editor{
		users:  users,
		tokens: tokens,
		api:    updater,
		notes:  notes,
		log:    log.With("screen", common.ProfilePath),
	}
}

// Enter is the screen guard. Visitors without a signed-in user are sent to
// the login screen; everyone else gets an empty form.
func (e *Editor) Enter(ctx context.Context) string {
	if e.users.Get().ID == "" {
		return common.LoginPath
	}

	e.mu.Lock()
	e.form = Form{}
	e.mu.Unlock()
	return ""
}

// Set changes one field of the form.
func (e *Editor) Set(field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.form.ptr(field)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// Form returns a copy of the current form.
func (e *Editor) Form() Form {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

// Prefill copies the signed-in user's details into the form. Passwords are
// left as they are.
func (e *Editor) Prefill() {
	u := e.users.Get()

	e.mu.Lock()
	defer e.mu.Unlock()
	f := fromUser(u)
	f.Password, f.ConfirmPassword = e.form.Password, e.form.ConfirmPassword
	e.form = f
}

// Submit validates the form and sends it to the API. Whatever happens the
// user is told through the notifier; the returned Outcome says which branch
// was taken.
func (e *Editor) Submit(ctx context.Context) Outcome {
	e.mu.Lock()
	form := e.form
	e.mu.Unlock()

	if form.passwordMismatch() {
		e.notes.Notify(ctx, msgMismatch)
		return OutcomeMismatch
	}

	token, err := e.tokens.Get(ctx)
	if err != nil {
		e.log.Error(ctx, "failed to read session token", "error", err)
	}
	if token == "" {
		e.notes.Notify(ctx, msgUnauthorized)
		return OutcomeUnauthorized
	}

	e.mu.Lock()
	e.seq++
	seq := e.seq
	e.mu.Unlock()

	res, err := e.api.UpdateProfile(ctx, token, api.ProfileUpdate{
		FirstName:     form.FirstName,
		MiddleName:    form.MiddleName,
		LastName:      form.LastName,
		Email:         form.Email,
		ContactNumber: form.ContactNumber,
		Password:      form.Password,
	})

	e.mu.Lock()
	defer e.mu.Unlock()

	if seq != e.seq {
		e.log.Warn(ctx, "dropping stale profile update response", "seq", seq, "latest", e.seq)
		return OutcomeStale
	}

	if err != nil || res == nil {
		e.log.Error(ctx, "error updating profile", "seq", seq, "error", err)
		e.notes.Notify(ctx, msgFailed)
		return OutcomeFailed
	}

	if !res.Is(api.CodeUserUpdated) {
		text := res.Message
		if text == "" {
			text = fallbackRejection
		}
		e.log.Info(ctx, "profile update rejected", "seq", seq, "code", res.Code)
		e.notes.Notify(ctx, notify.Notification{Title: "Update Failed", Text: text, Icon: notify.IconError})
		return OutcomeRejected
	}

	if res.User == nil {
		e.log.Error(ctx, "error updating profile", "seq", seq, "error", "success response without user")
		e.notes.Notify(ctx, msgFailed)
		return OutcomeFailed
	}

	e.users.Set(*res.User)
	e.form = fromUser(*res.User)
	e.log.Info(ctx, "profile updated", "seq", seq, "user_id", res.User.ID)
	e.notes.Notify(ctx, notify.Notification{Title: "Profile Updated", Text: res.Message, Icon: notify.IconSuccess})
	return OutcomeUpdated
}

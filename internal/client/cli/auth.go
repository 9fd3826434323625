package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophprofile/internal/client/api"
	"github.com/dmitrijs2005/gophprofile/internal/client/notify"
	"github.com/dmitrijs2005/gophprofile/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the new account's details and creates it. Both
// passwords are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	var req api.RegisterRequest
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"First Name", &req.FirstName},
		{"Middle Name", &req.MiddleName},
		{"Last Name", &req.LastName},
		{"Email", &req.Email},
		{"Contact Number", &req.ContactNumber},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		a.notes.Notify(ctx, notify.Notification{
			Title: "Password Mismatch",
			Text:  "The passwords do not match. Please try again.",
			Icon:  notify.IconError,
		})
		return nil
	}
	req.Password = string(password)

	res, err := a.api.Register(ctx, req)
	if err != nil {
		a.log.Error(ctx, "error registering", "error", err)
		a.notes.Notify(ctx, notify.Notification{Title: "Error", Text: "Failed to register.", Icon: notify.IconError})
		return nil
	}

	if res.Is(api.CodeUserRegistered) {
		a.notes.Notify(ctx, notify.Notification{
			Title: "Registration Successful",
			Text:  resultMessage(res, "You can now login."),
			Icon:  notify.IconSuccess,
		})
		return nil
	}

	a.notes.Notify(ctx, notify.Notification{
		Title: "Registration Failed",
		Text:  resultMessage(res, "Something went wrong."),
		Icon:  notify.IconError,
	})
	return nil
}

// Login prompts for credentials. On success the token is stored, the shared
// user is set and the profile screen opens.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		a.log.Error(ctx, "error logging in", "error", err)
		a.notes.Notify(ctx, notify.Notification{Title: "Error", Text: "Failed to login.", Icon: notify.IconError})
		return nil
	}

	if !res.Is(api.CodeUserLoggedIn) || res.Token == "" || res.User == nil {
		a.notes.Notify(ctx, notify.Notification{
			Title: "Login Failed",
			Text:  resultMessage(res, "Invalid email or password."),
			Icon:  notify.IconError,
		})
		return nil
	}

	if err := a.tokens.Save(ctx, res.Token); err != nil {
		return err
	}
	a.users.Set(*res.User)
	a.log.Info(ctx, "logged in", "user_id", res.User.ID)

	a.notes.Notify(ctx, notify.Notification{
		Title: "Login Successful",
		Text:  "Welcome, " + res.User.FullName() + "!",
		Icon:  notify.IconSuccess,
	})
	a.open(ctx, common.ProfilePath)
	return nil
}

// Logout forgets the stored token and the shared user. The login screen is
// entered before the user is cleared, so the session watcher finds nothing
// left to redirect.
func (a *App) Logout(ctx context.Context) error {
	if err := a.tokens.Clear(ctx); err != nil {
		return err
	}
	a.open(ctx, common.LoginPath)
	a.users.Clear()
	a.notes.Notify(ctx, notify.Notification{Title: "Signed Out", Text: "See you next time.", Icon: notify.IconInfo})
	return nil
}

// Restore signs the stored session back in. An expired or rejected token is
// removed; an unreachable API leaves it for the next start.
func (a *App) Restore(ctx context.Context) {
	token, err := a.tokens.Load(ctx)
	if errors.Is(err, common.ErrInvalidToken) {
		a.log.Info(ctx, "stored session expired")
		a.notes.Notify(ctx, notify.Notification{
			Title: "Session Expired",
			Text:  "Your session has expired, please login again.",
			Icon:  notify.IconWarning,
		})
		return
	}
	if err != nil {
		a.log.Error(ctx, "failed to read stored session", "error", err)
		return
	}
	if token == "" {
		return
	}

	res, err := a.api.Details(ctx, token)
	if err != nil {
		a.log.Warn(ctx, "could not restore session", "error", err)
		return
	}

	switch {
	case res.Is(api.CodeUserFound) && res.User != nil:
		a.users.Set(*res.User)
		a.log.Info(ctx, "session restored", "user_id", res.User.ID)
	case res.Is(api.CodeUnauthorized), res.Is(api.CodeUserNotFound):
		if err := a.tokens.Clear(ctx); err != nil {
			a.log.Error(ctx, "failed to clear rejected session", "error", err)
		}
		a.log.Info(ctx, "stored session rejected", "code", res.Code)
	default:
		a.log.Warn(ctx, "unexpected session details response", "code", res.Code)
	}
}

// resultMessage is the server's message, or def when there is none.
func resultMessage(res *api.Result, def string) string {
	if res == nil || res.Message == "" {
		return def
	}
	return res.Message
}

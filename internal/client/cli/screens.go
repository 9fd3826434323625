package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophprofile/internal/client/profile"
	"github.com/dmitrijs2005/gophprofile/internal/common"
)

var (
	errNotOnProfile = errors.New("open the profile screen first (type 'profile')")
	errSetUsage     = errors.New("usage: set <field> [value]; fields: " + strings.Join(profile.Fields, ", "))
)

func (a *App) getStatus() string {
	var parts []string
	if u := a.users.Get(); u.ID != "" {
		parts = append(parts, u.Email)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}

	s := a.router.Current()
	if len(parts) > 0 {
		s = fmt.Sprintf("(%s) %s", strings.Join(parts, " "), s)
	}
	return s
}

// enterLogin accepts every visitor.
func (a *App) enterLogin(context.Context) string {
	if !a.isLoggedIn() {
		printlnFn("Please login (type 'login', or 'register' to create an account).")
	}
	return ""
}

// open navigates to path and draws the profile screen if that is where the
// router ended up.
func (a *App) open(ctx context.Context, path string) {
	landed, err := a.router.Navigate(ctx, path)
	if err != nil {
		a.log.Error(ctx, "navigation failed", "path", path, "error", err)
		printlnFn("Error:", err)
		return
	}
	if landed == common.ProfilePath {
		if err := a.editor.Render(a.out); err != nil {
			a.log.Error(ctx, "failed to render profile", "error", err)
		}
	}
}

func (a *App) onProfile() bool {
	return a.router.Current() == common.ProfilePath
}

// Profile opens the profile screen. Anonymous visitors are redirected to
// login.
func (a *App) Profile(ctx context.Context) error {
	a.open(ctx, common.ProfilePath)
	return nil
}

// Set changes one field. Password fields are always read without echo; a
// value typed on the command line for them is refused.
func (a *App) Set(ctx context.Context, args []string) error {
	if !a.onProfile() {
		return errNotOnProfile
	}
	if len(args) == 0 {
		return errSetUsage
	}
	field := args[0]
	if profile.Placeholder(field) == "" {
		return fmt.Errorf("%w: %q", profile.ErrUnknownField, field)
	}

	if profile.IsSecret(field) {
		if len(args) > 1 {
			return fmt.Errorf("%s cannot be given on the command line; type 'set %s'", field, field)
		}
		pw, err := getPassword(profile.Placeholder(field), a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(pw)
		return a.editor.Set(field, string(pw))
	}

	if len(args) > 1 {
		return a.editor.Set(field, strings.Join(args[1:], " "))
	}

	v, err := getSimpleText(a.reader, profile.Placeholder(field), a.out)
	if err != nil {
		return err
	}
	return a.editor.Set(field, v)
}

// Edit walks through every field. An empty answer keeps the current value.
func (a *App) Edit(ctx context.Context) error {
	if !a.onProfile() {
		return errNotOnProfile
	}

	form := a.editor.Form()
	for _, field := range profile.Fields {
		current, _ := form.Get(field)

		var v string
		if profile.IsSecret(field) {
			pw, err := getPassword(profile.Placeholder(field), a.out)
			if err != nil {
				return err
			}
			v = string(pw)
			common.WipeByteArray(pw)
		} else {
			prompt := profile.Placeholder(field)
			if current != "" {
				prompt += " [" + current + "]"
			}
			var err error
			if v, err = getSimpleText(a.reader, prompt, a.out); err != nil {
				return err
			}
		}

		if v == "" {
			continue
		}
		if err := a.editor.Set(field, v); err != nil {
			return err
		}
	}
	return a.editor.Render(a.out)
}

func (a *App) Prefill(ctx context.Context) error {
	if !a.onProfile() {
		return errNotOnProfile
	}
	a.editor.Prefill()
	return a.editor.Render(a.out)
}

func (a *App) Show(ctx context.Context) error {
	if !a.onProfile() {
		return errNotOnProfile
	}
	return a.editor.Render(a.out)
}

func (a *App) Submit(ctx context.Context) error {
	if !a.onProfile() {
		return errNotOnProfile
	}
	outcome := a.editor.Submit(ctx)
	a.log.Debug(ctx, "profile submit finished", "outcome", outcome)
	if outcome == profile.OutcomeUpdated {
		return a.editor.Render(a.out)
	}
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.users.Get()
	if u.ID == "" {
		printlnFn("Not signed in.")
		return nil
	}
	role := "user"
	if u.IsAdmin {
		role = "admin"
	}
	printlnFn(fmt.Sprintf("%s <%s> id=%s role=%s", u.FullName(), u.Email, u.ID, role))
	return nil
}

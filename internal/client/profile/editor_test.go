package profile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/client/api"
	"github.com/dmitrijs2005/gophprofile/internal/client/appstate"
	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/dmitrijs2005/gophprofile/internal/client/notify"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeTokens struct {
	token string
	err   error
}

func (f fakeTokens) Get(context.Context) (string, error) { return f.token, f.err }

type updateCall struct {
	token string
	upd   api.ProfileUpdate
}

type fakeUpdater struct {
	mu    sync.Mutex
	calls []updateCall
	res   *api.Result
	err   error
	// hook, when set, decides the answer per call.
	hook func(n int, upd api.ProfileUpdate) (*api.Result, error)
}

func (f *fakeUpdater) UpdateProfile(_ context.Context, token string, upd api.ProfileUpdate) (*api.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, updateCall{token: token, upd: upd})
	n := len(f.calls)
	hook := f.hook
	f.mu.Unlock()

	if hook != nil {
		return hook(n, upd)
	}
	return f.res, f.err
}

func (f *fakeUpdater) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var signedIn = models.User{
	ID:            "u1",
	FirstName:     "Ada",
	LastName:      "Byron",
	Email:         "ada@example.com",
	ContactNumber: "555-0100",
}

type fixture struct {
	editor  *Editor
	users   *appstate.Store
	updater *fakeUpdater
	notes   *notify.Recorder
}

func newFixture(t *testing.T, tokens TokenSource) *fixture {
	t.Helper()
	users := appstate.NewStore()
	users.Set(signedIn)
	up := &fakeUpdater{}
	notes := &notify.Recorder{}
	e := NewEditor(users, tokens, up, notes, logging.Discard())
	require.Empty(t, e.Enter(context.Background()))
	return &fixture{editor: e, users: users, updater: up, notes: notes}
}

func (f *fixture) fill(t *testing.T, values map[string]string) {
	t.Helper()
	for k, v := range values {
		require.NoError(t, f.editor.Set(k, v))
	}
}

func lastNote(t *testing.T, r *notify.Recorder) notify.Notification {
	t.Helper()
	n, ok := r.Last()
	require.True(t, ok, "expected a notification")
	return n
}

// ---- guard ----

func TestEnter_RedirectsAnonymous(t *testing.T) {
	up := &fakeUpdater{}
	notes := &notify.Recorder{}
	e := NewEditor(appstate.NewStore(), fakeTokens{token: "t"}, up, notes, logging.Discard())

	assert.Equal(t, "/login", e.Enter(context.Background()))
	assert.Zero(t, up.count())
	assert.Empty(t, notes.All())
}

func TestEnter_StartsWithEmptyForm(t *testing.T) {
	f := newFixture(t, fakeTokens{token: "t"})
	f.fill(t, map[string]string{FieldFirstName: "x", FieldPassword: "p"})

	assert.Empty(t, f.editor.Enter(context.Background()))
	assert.Equal(t, Form{}, f.editor.Form())
}

// ---- local checks ----

func TestSubmit_PasswordMismatch(t *testing.T) {
	f := newFixture(t, fakeTokens{token: "t"})
	f.fill(t, map[string]string{FieldPassword: "abc", FieldConfirmPassword: "abd"})

	assert.Equal(t, OutcomeMismatch, f.editor.Submit(context.Background()))
	assert.Zero(t, f.updater.count())
	assert.Equal(t, notify.Notification{
		Title: "Password Mismatch",
		Text:  "The passwords do not match. Please try again.",
		Icon:  notify.IconError,
	}, lastNote(t, f.notes))
}

func TestSubmit_EmptyPasswordNeverMismatches(t *testing.T) {
	f := newFixture(t, fakeTokens{token: "t"})
	f.updater.res = &api.Result{Code: api.CodeUserUpdated, User: &signedIn}
	f.fill(t, map[string]string{FieldConfirmPassword: "whatever"})

	assert.Equal(t, OutcomeUpdated, f.editor.Submit(context.Background()))
	require.Equal(t, 1, f.updater.count())
	assert.Equal(t, "", f.updater.calls[0].upd.Password)
}

func TestSubmit_NoToken(t *testing.T) {
	f := newFixture(t, fakeTokens{})
	f.fill(t, map[string]string{FieldFirstName: "Ada"})

	assert.Equal(t, OutcomeUnauthorized, f.editor.Submit(context.Background()))
	assert.Zero(t, f.updater.count())
	assert.Equal(t, "Unauthorized", lastNote(t, f.notes).Title)
	assert.Equal(t, "Please login to update your profile.", lastNote(t, f.notes).Text)
}

func TestSubmit_TokenReadErrorIsUnauthorized(t *testing.T) {
	f := newFixture(t, fakeTokens{err: errors.New("disk")})

	assert.Equal(t, OutcomeUnauthorized, f.editor.Submit(context.Background()))
	assert.Zero(t, f.updater.count())
}

func TestSubmit_MismatchCheckedBeforeToken(t *testing.T) {
	f := newFixture(t, fakeTokens{})
	f.fill(t, map[string]string{FieldPassword: "a", FieldConfirmPassword: "b"})

	assert.Equal(t, OutcomeMismatch, f.editor.Submit(context.Background()))
	assert.Len(t, f.notes.All(), 1)
}

// ---- server outcomes ----

func TestSubmit_Success(t *testing.T) {
	f := newFixture(t, fakeTokens{token: "tok"})
	updated := models.User{
		ID: "u1", FirstName: "Augusta", MiddleName: "Ada", LastName: "King",
		Email: "ada@example.com", ContactNumber: "555-0199", IsAdmin: true,
	}
	f.updater.res = &api.Result{Code: api.CodeUserUpdated, Message: "Profile updated successfully", User: &updated}
	f.fill(t, map[string]string{
		FieldFirstName: "augusta", FieldMiddleName: "Ada", FieldLastName: "King",
		FieldEmail: "ada@example.com", FieldContactNumber: "555-0199",
		FieldPassword: "n3w", FieldConfirmPassword: "n3w",
	})

	assert.Equal(t, OutcomeUpdated, f.editor.Submit(context.Background()))

	require.Equal(t, 1, f.updater.count())
	call := f.updater.calls[0]
	assert.Equal(t, "tok", call.token)
	assert.Empty(t, cmp.Diff(api.ProfileUpdate{
		FirstName: "augusta", MiddleName: "Ada", LastName: "King",
		Email: "ada@example.com", ContactNumber: "555-0199", Password: "n3w",
	}, call.upd))

	assert.Empty(t, cmp.Diff(updated, f.users.Get()))
	assert.Empty(t, cmp.Diff(Form{
		FirstName: "Augusta", MiddleName: "Ada", LastName: "King",
		Email: "ada@example.com", ContactNumber: "555-0199",
	}, f.editor.Form()))

	assert.Equal(t, notify.Notification{
		Title: "Profile Updated", Text: "Profile updated successfully", Icon: notify.IconSuccess,
	}, lastNote(t, f.notes))
}

func TestSubmit_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		res      *api.Result
		wantText string
	}{
		{"server message", &api.Result{Code: api.CodeEmailTaken, Message: "Email already in use"}, "Email already in use"},
		{"fallback", &api.Result{Code: api.CodeServerError}, "Something went wrong."},
		{"empty code", &api.Result{}, "Something went wrong."},
		{"user ignored on other codes", &api.Result{Code: api.CodeUnauthorized, User: &models.User{ID: "evil"}}, "Something went wrong."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, fakeTokens{token: "tok"})
			f.updater.res = tt.res
			f.fill(t, map[string]string{FieldFirstName: "Changed", FieldPassword: "p", FieldConfirmPassword: "p"})
			before := f.editor.Form()

			assert.Equal(t, OutcomeRejected, f.editor.Submit(context.Background()))

			assert.Equal(t, signedIn, f.users.Get())
			assert.Equal(t, before, f.editor.Form())
			assert.Equal(t, notify.Notification{Title: "Update Failed", Text: tt.wantText, Icon: notify.IconError}, lastNote(t, f.notes))
		})
	}
}

func TestSubmit_TransportFailure(t *testing.T) {
	for name, setup := range map[string]func(*fakeUpdater){
		"unavailable":          func(u *fakeUpdater) { u.err = api.ErrUnavailable },
		"bad response":         func(u *fakeUpdater) { u.err = api.ErrBadResponse },
		"success without user": func(u *fakeUpdater) { u.res = &api.Result{Code: api.CodeUserUpdated} },
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, fakeTokens{token: "tok"})
			setup(f.updater)
			f.fill(t, map[string]string{FieldLastName: "Changed"})
			before := f.editor.Form()

			assert.Equal(t, OutcomeFailed, f.editor.Submit(context.Background()))

			assert.Equal(t, signedIn, f.users.Get())
			assert.Equal(t, before, f.editor.Form())
			assert.Equal(t, notify.Notification{Title: "Error", Text: "Failed to update profile.", Icon: notify.IconError}, lastNote(t, f.notes))
		})
	}
}

func TestSubmit_NullBodyFromServerIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, "null")
	}))
	t.Cleanup(srv.Close)

	users := appstate.NewStore()
	users.Set(signedIn)
	notes := &notify.Recorder{}
	e := NewEditor(users, fakeTokens{token: "tok"}, api.New(srv.URL, time.Second), notes, logging.Discard())
	require.Empty(t, e.Enter(context.Background()))

	assert.Equal(t, OutcomeFailed, e.Submit(context.Background()))
	assert.Equal(t, signedIn, users.Get())
	assert.Equal(t, notify.Notification{Title: "Error", Text: "Failed to update profile.", Icon: notify.IconError}, lastNote(t, notes))
}

// ---- overlapping submits ----

func TestSubmit_StaleResponseDropped(t *testing.T) {
	f := newFixture(t, fakeTokens{token: "tok"})

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	f.updater.hook = func(n int, upd api.ProfileUpdate) (*api.Result, error) {
		u := signedIn
		u.FirstName = upd.FirstName
		if n == 1 {
			close(firstStarted)
			<-releaseFirst
		}
		return &api.Result{Code: api.CodeUserUpdated, Message: upd.FirstName, User: &u}, nil
	}

	require.NoError(t, f.editor.Set(FieldFirstName, "First"))

	firstDone := make(chan Outcome)
	go func() { firstDone <- f.editor.Submit(context.Background()) }()
	<-firstStarted

	require.NoError(t, f.editor.Set(FieldFirstName, "Second"))
	assert.Equal(t, OutcomeUpdated, f.editor.Submit(context.Background()))

	close(releaseFirst)
	assert.Equal(t, OutcomeStale, <-firstDone)

	assert.Equal(t, "Second", f.users.Get().FirstName)
	assert.Equal(t, "Second", f.editor.Form().FirstName)
	require.Len(t, f.notes.All(), 1, "stale responses do not notify")
	assert.Equal(t, "Second", lastNote(t, f.notes).Text)
}

// ---- form helpers ----

func TestSet_UnknownField(t *testing.T) {
	f := newFixture(t, fakeTokens{})
	require.ErrorIs(t, f.editor.Set("nickname", "x"), ErrUnknownField)
}

func TestPrefill(t *testing.T) {
	f := newFixture(t, fakeTokens{})
	f.fill(t, map[string]string{FieldFirstName: "typed", FieldPassword: "keep", FieldConfirmPassword: "keep"})

	f.editor.Prefill()

	assert.Equal(t, Form{
		FirstName: "Ada", LastName: "Byron", Email: "ada@example.com", ContactNumber: "555-0100",
		Password: "keep", ConfirmPassword: "keep",
	}, f.editor.Form())
	assert.Equal(t, signedIn, f.users.Get(), "prefill never writes the shared user")
}

func TestRender(t *testing.T) {
	f := newFixture(t, fakeTokens{})
	f.fill(t, map[string]string{FieldFirstName: "Ada", FieldPassword: "secret"})

	var buf bytes.Buffer
	require.NoError(t, f.editor.Render(&buf))
	out := buf.String()

	assert.Contains(t, out, "Update Your Profile")
	assert.Contains(t, out, "Make sure your details are up to date!")
	assert.Contains(t, out, "Edit Profile")
	assert.Contains(t, out, "<Middle Name>")
	assert.Contains(t, out, "<Confirm New Password>")
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "Your Updated Profile")
	assert.Regexp(t, `First Name:\s+Ada`, out)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "updated", OutcomeUpdated.String())
	assert.Equal(t, "stale", OutcomeStale.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}

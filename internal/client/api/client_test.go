package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method string
	path   string
	header http.Header
	body   []byte
}

// newServer answers every request with status and body and records the
// last request it saw.
func newServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.method = r.Method
		c.path = r.URL.Path
		c.header = r.Header.Clone()
		c.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func TestUpdateProfile_SendsRequest(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"code":"USER-UPDATED","message":"Profile updated","user":{"_id":"u1","firstName":"Ada","email":"ada@example.com"}}`)
	c := New(srv.URL+"/", 0)
	c.newID = func() string { return "req-1" }

	upd := ProfileUpdate{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: ""}
	res, err := c.UpdateProfile(context.Background(), "tok", upd)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/users/edit", got.path)
	assert.Equal(t, "Bearer tok", got.header.Get("Authorization"))
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	assert.Equal(t, "req-1", got.header.Get("X-Request-ID"))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(got.body, &sent))
	assert.Contains(t, sent, "password", "password is always part of the body")
	assert.Equal(t, "", sent["password"])
	assert.Equal(t, "Ada", sent["firstName"])

	want := &Result{
		Code:    CodeUserUpdated,
		Message: "Profile updated",
		User:    &models.User{ID: "u1", FirstName: "Ada", Email: "ada@example.com"},
	}
	assert.Empty(t, cmp.Diff(want, res))
	assert.True(t, res.Is(CodeUserUpdated))
}

func TestDo_JSONErrorStatusIsAResult(t *testing.T) {
	srv, _ := newServer(t, http.StatusConflict, `{"code":"EMAIL-TAKEN","message":"Email already in use"}`)

	res, err := New(srv.URL, 0).UpdateProfile(context.Background(), "tok", ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, CodeEmailTaken, res.Code)
	assert.Equal(t, "Email already in use", res.Message)
	assert.Nil(t, res.User)
}

func TestDo_NonJSONIsBadResponse(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)

	_, err := New(srv.URL, 0).Details(context.Background(), "tok")
	require.ErrorIs(t, err, ErrBadResponse)
	assert.Contains(t, err.Error(), "502")
}

func TestDo_NullBodyIsBadResponse(t *testing.T) {
	for _, body := range []string{`null`, " null\n"} {
		srv, _ := newServer(t, http.StatusOK, body)

		res, err := New(srv.URL, 0).UpdateProfile(context.Background(), "tok", ProfileUpdate{})
		require.ErrorIs(t, err, ErrBadResponse)
		assert.Nil(t, res)
	}
}

func TestDo_Unreachable(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()

	_, err := New(url, 0).Login(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_Timeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(block) })

	_, err := New(srv.URL, 50*time.Millisecond).Details(context.Background(), "tok")
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDo_CallerCancelIsNotUnavailable(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL, 0).Details(ctx, "tok")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestLogin_Register_Details(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"code":"USER-LOGGED-IN","token":"jwt","user":{"_id":"u1"}}`)
	c := New(srv.URL, 0)
	ctx := context.Background()

	res, err := c.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/users/login", got.path)
	assert.Empty(t, got.header.Get("Authorization"))
	assert.JSONEq(t, `{"email":"ada@example.com","password":"pw"}`, string(got.body))
	assert.Equal(t, "jwt", res.Token)

	_, err = c.Register(ctx, RegisterRequest{FirstName: "Ada", Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "/users/register", got.path)

	_, err = c.Details(ctx, "jwt")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/users/details", got.path)
	assert.Equal(t, "Bearer jwt", got.header.Get("Authorization"))
	assert.Empty(t, got.body)
}

func TestPing(t *testing.T) {
	ok, _ := newServer(t, http.StatusOK, `{"status":"ok"}`)
	require.NoError(t, New(ok.URL, time.Second).Ping(context.Background()))

	down, _ := newServer(t, http.StatusServiceUnavailable, `{}`)
	require.ErrorIs(t, New(down.URL, time.Second).Ping(context.Background()), ErrUnavailable)
}

func TestResult_IsNilSafe(t *testing.T) {
	var r *Result
	assert.False(t, r.Is(CodeUserUpdated))
}

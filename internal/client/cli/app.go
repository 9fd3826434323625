package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/client/api"
	"github.com/dmitrijs2005/gophprofile/internal/client/appstate"
	"github.com/dmitrijs2005/gophprofile/internal/client/config"
	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/dmitrijs2005/gophprofile/internal/client/nav"
	"github.com/dmitrijs2005/gophprofile/internal/client/notify"
	"github.com/dmitrijs2005/gophprofile/internal/client/profile"
	"github.com/dmitrijs2005/gophprofile/internal/client/storage"
	"github.com/dmitrijs2005/gophprofile/internal/client/tokens"
	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// authAPI is the part of api.Client used outside the profile screen.
type authAPI interface {
	Login(ctx context.Context, email, password string) (*api.Result, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.Result, error)
	Details(ctx context.Context, token string) (*api.Result, error)
	Ping(ctx context.Context) error
}

type tokenStore interface {
	Get(ctx context.Context) (string, error)
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	api    authAPI
	tokens tokenStore
	users  *appstate.Store
	router *nav.Router
	editor *profile.Editor
	notes  notify.Notifier

	reader *bufio.Reader
	out    io.Writer

	modeMu sync.RWMutex
	mode   Mode
}

// NewApp opens local storage and wires the screens.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	client := api.New(c.APIBaseURL, c.RequestTimeout)
	a := newApp(c, log, client, tokens.NewStore(storage.NewMetadataRepository(db)), notify.NewTerminal(os.Stdout), client)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, auth authAPI, ts tokenStore, notes notify.Notifier, updater profile.Updater) *App {
	users := appstate.NewStore()
	router := nav.NewRouter(log)
	editor := profile.NewEditor(users, ts, updater, notes, log)

	a := &App{
		config: c,
		log:    log,
		api:    auth,
		tokens: ts,
		users:  users,
		router: router,
		editor: editor,
		notes:  notes,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	router.Register(common.LoginPath, nav.ScreenFunc(a.enterLogin))
	router.Register(common.ProfilePath, editor)
	return a
}

// Close releases local storage.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.users.Authenticated()
}

// checkOnline probes the API once and updates the mode.
func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher probes the API every interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// watchSession follows the shared user until updates closes or ctx ends.
// Losing the user while the profile screen is open sends the visitor to
// login.
func (a *App) watchSession(ctx context.Context, updates <-chan models.User) {
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				return
			}
			a.log.Debug(ctx, "session changed", "user_id", u.ID)
			if u.ID == "" && a.onProfile() {
				a.open(ctx, common.LoginPath)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Run restores the session, starts the watchers and blocks in the REPL until
// the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Error(ctx, "failed to close database", "error", err)
		}
	}()

	printlnFn("Welcome to the profile client (type 'help' for commands)")

	a.checkOnline(ctx)
	a.Restore(ctx)
	a.open(ctx, common.ProfilePath)

	var wg sync.WaitGroup
	watchCtx, stop := context.WithCancel(ctx)
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)
	}()

	updates, unsubscribe := a.users.Subscribe()
	defer unsubscribe()
	go func() {
		defer wg.Done()
		a.watchSession(watchCtx, updates)
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, a, a.getStatus, a.reader)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
	stop()
	wg.Wait()
}

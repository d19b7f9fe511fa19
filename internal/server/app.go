// Package server initializes and runs the file sharing server: the HTTP
// listener, the optional Postgres transfer history, the optional S3 mirror,
// and the terminal monitor. It also handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"httpshare/internal/filex"
	"httpshare/internal/logging"
	"httpshare/internal/server/auth"
	"httpshare/internal/server/config"
	"httpshare/internal/server/history"
	"httpshare/internal/server/mirror"
	"httpshare/internal/server/stats"
	"httpshare/internal/server/tui"
	"httpshare/internal/server/web"
)

type App struct {
	config *config.Config
	logger logging.Logger

	dir       string
	uploadDir string

	set    *stats.Set
	web    *web.Server
	db     *sql.DB
	mirror *mirror.S3Mirror
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	// the monitor owns the terminal, so logs only go to stdout when the
	// server runs headless
	var logOut io.Writer = os.Stdout
	if !c.NoTUI {
		logOut = io.Discard
	}
	logger := logging.NewJSON(logOut, c.LogLevel)

	dir, err := filex.CanonicalDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("shared dir: %w", err)
	}

	uploadDir := c.UploadDir
	if !filepath.IsAbs(uploadDir) {
		uploadDir = filepath.Join(dir, uploadDir)
	}
	if _, err := filex.EnsureDir(uploadDir); err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}

	var repo history.Repository
	var db *sql.DB
	if c.DatabaseDSN != "" {
		repo, db, err = history.Open(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	var m *mirror.S3Mirror
	if c.MirrorEnabled() {
		m, err = mirror.New(ctx, mirror.Options{
			Endpoint:  c.S3Endpoint,
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("mirror init error: %w", err)
		}
	}

	set := stats.NewSet()

	ws := web.NewServer(web.Params{
		Addr:       c.Addr(),
		Dir:        dir,
		UploadDir:  uploadDir,
		MaxUpload:  c.MaxUploadBytes,
		AuthSecret: c.AuthSecret,
		Logger:     logger,
		Stats:      set,
		History:    repo,
		Mirror:     m,
	})

	return &App{
		config:    c,
		logger:    logger,
		dir:       dir,
		uploadDir: uploadDir,
		set:       set,
		web:       ws,
		db:        db,
		mirror:    m,
	}, nil
}

// MintToken prints a bearer token for subject, signed with the configured
// secret.
func (app *App) MintToken(subject string) error {
	if app.config.AuthSecret == "" {
		return fmt.Errorf("mint token: SHARE_AUTH_SECRET is not set")
	}

	token, err := auth.GenerateToken(subject, []byte(app.config.AuthSecret), app.config.TokenValidity)
	if err != nil {
		return fmt.Errorf("mint token: %w", err)
	}

	fmt.Println(token)
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startWebServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.web.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}
	cancelFunc()
}

// runMonitor drives the terminal UI until the user quits or ctx is
// cancelled. Quitting the monitor stops the whole app.
func (app *App) runMonitor(ctx context.Context, cancelFunc context.CancelFunc) {
	model := tui.NewModel(app.set, app.dir, app.config.Addr(), app.config.RefreshInterval)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
	cancelFunc()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "dir", app.dir, "address", app.config.Addr())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startWebServer(ctx, cancelFunc)
	}()

	if !app.config.NoTUI {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.runMonitor(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}
}

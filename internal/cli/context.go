package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/oauth2"

	"gearwear/internal/auth"
	"gearwear/internal/config"
	"gearwear/internal/service"
	"gearwear/internal/store"
	"gearwear/internal/strava"
)

// app holds everything a command needs. Built per invocation, torn down
// with close.
type app struct {
	cfg     *config.Config
	db      *store.DB
	monitor *service.Monitor
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}

// openApp loads config and opens the store. Credentials aren't required
// for local-only commands; commands that talk to Strava call openOnline.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &app{
		cfg:     cfg,
		db:      db,
		monitor: service.New(db, nil, cfg.Sync, log),
	}, nil
}

// openOnline additionally builds a Strava client from the stored tokens.
func openOnline() (*app, error) {
	a, err := openApp()
	if err != nil {
		return nil, err
	}
	if err := a.cfg.Validate(); err != nil {
		a.close()
		path, _ := config.Path()
		return nil, fmt.Errorf("%v\n\nEdit the config file at:\n  %s", err, path)
	}

	storedAuth, err := a.db.GetAuth()
	if errors.Is(err, store.ErrNoAuth) {
		a.close()
		return nil, errors.New("not connected to Strava - run 'gearwear auth' first")
	}
	if err != nil {
		a.close()
		return nil, fmt.Errorf("checking auth: %w", err)
	}

	oauthCfg := auth.NewOAuthConfig(auth.Config{
		ClientID:     a.cfg.Strava.ClientID,
		ClientSecret: a.cfg.Strava.ClientSecret,
		RedirectURL:  fmt.Sprintf("http://localhost:%d/callback", auth.CallbackPort),
	})
	token := &oauth2.Token{
		AccessToken:  storedAuth.AccessToken,
		RefreshToken: storedAuth.RefreshToken,
		Expiry:       storedAuth.ExpiresAt,
	}
	tokenSource := auth.NewTokenSource(oauthCfg, token, func(newToken *oauth2.Token) error {
		return a.db.UpdateTokens(newToken.AccessToken, newToken.RefreshToken, newToken.Expiry)
	})

	client := strava.NewClient(tokenSource)
	a.monitor = service.New(a.db, client, a.cfg.Sync, log)
	return a, nil
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	return t
}

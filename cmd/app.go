// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pterm/pterm"

	"petway/cli/internal/auth"
	"petway/cli/internal/backend"
	"petway/cli/internal/config"
	"petway/cli/internal/keychain"
	"petway/cli/internal/listing"
	"petway/cli/internal/logging"
	"petway/cli/internal/route"
	"petway/cli/internal/session"
	"petway/cli/internal/terminal"
)

// app holds everything a command needs. It is built once per process on
// first use so commands that never touch the API stay fast.
type app struct {
	cfg      config.Config
	store    *session.Store
	mediator *auth.Mediator
	router   *route.Router
	api      *backend.HTTP
	auth     *auth.Service
	pets     *listing.Service
	prompt   *terminal.Prompter
}

var (
	appOnce sync.Once
	appInst *app
	appErr  error
)

func getApp() (*app, error) {
	appOnce.Do(func() { appInst, appErr = buildApp() })
	return appInst, appErr
}

func closeApp() {
	_ = logging.Sync()
}

func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURLFlag != "" {
		cfg.APIURL = apiURLFlag
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logging.Init(cfg.LogLevel); err != nil {
		return nil, err
	}
	log := logging.Log

	kc, err := keychain.Open(keychain.Options{
		Backend:  cfg.KeyringBackend,
		Dir:      cfg.KeyringDir,
		Password: cfg.KeyringPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}

	store := session.New(kc, log.Named("session"))
	mediator := auth.NewMediator(store, log.Named("auth"))
	router := route.NewRouter(mediator)
	router.OnNavigate(func(v route.View) { log.Debugw("view", "current", v) })

	api := backend.New(backend.Options{
		BaseURL:   cfg.APIURL,
		Timeout:   cfg.RequestTimeout,
		Tokens:    store,
		Session:   mediator,
		Notifier:  ptermNotifier{},
		Router:    router,
		Logger:    log.Named("api"),
		UserAgent: "petway-cli/" + Version,
	})

	return &app{
		cfg:      cfg,
		store:    store,
		mediator: mediator,
		router:   router,
		api:      api,
		auth:     auth.NewService(api, mediator, store, log.Named("auth")),
		pets:     listing.NewService(api, store, api.BaseURL(), log.Named("listing")),
		prompt:   terminal.NewPrompter(),
	}, nil
}

// notifyMuted silences ptermNotifier while a full-screen view owns the
// terminal.
var notifyMuted atomic.Bool

// ptermNotifier shows the forced-logout message.
type ptermNotifier struct{}

func (ptermNotifier) Notify(message string) {
	if notifyMuted.Load() {
		logging.Log.Infow("session expired", "message", message)
		return
	}
	pterm.Warning.Println(message)
}

// enter moves the router to v, or to the login view when v needs a session
// that is missing. It reports whether v was entered.
func (a *app) enter(v route.View) bool {
	got := a.router.Enter(v)
	if got != v {
		pterm.Warning.Println("You need to be logged in for this. Run: petway login")
		return false
	}
	return true
}

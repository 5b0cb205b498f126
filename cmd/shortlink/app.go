package main

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iurnickita/shortlink/internal/shortlink/config"
	"github.com/iurnickita/shortlink/internal/shortlink/controller"
	"github.com/iurnickita/shortlink/internal/shortlink/gateway"
	"github.com/iurnickita/shortlink/internal/shortlink/logger"
	"github.com/iurnickita/shortlink/internal/shortlink/notify"
	"github.com/iurnickita/shortlink/internal/shortlink/session"
	"github.com/iurnickita/shortlink/internal/shortlink/store"
)

// app - собранный клиент одной команды
type app struct {
	ctl    *controller.Controller
	repo   store.Repository
	client *resty.Client
	zaplog *zap.Logger
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.GetConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}

	zaplog, err := logger.NewZapLog(cfg.Logger)
	if err != nil {
		return nil, err
	}

	repo, err := store.NewStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	client := gateway.NewClient(cfg.Gateway, zaplog)
	auth := gateway.NewAuth(client, cfg.Gateway.AuthBaseURL)
	shortening := gateway.NewShortening(client, cfg.Gateway.ShortenerBaseURL)

	ctl := controller.New(
		cfg.Controller,
		auth,
		shortening,
		session.NewStore(repo),
		notify.NewWriter(cmd.OutOrStdout()),
		zaplog,
		controller.WithShortenerBaseURL(shortening.BaseURL()),
	)

	return &app{
		ctl:    ctl,
		repo:   repo,
		client: client,
		zaplog: zaplog,
	}, nil
}

func (a *app) close() {
	a.ctl.Close()
	if err := a.repo.Close(); err != nil {
		a.zaplog.Warn("session store close failed", zap.Error(err))
	}
	a.client.GetClient().CloseIdleConnections()
	_ = a.zaplog.Sync()
}

// withApp собирает клиент, восстанавливает сессию и выполняет действие
func withApp(action func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		a.ctl.Start(ctx)
		return action(ctx, a, cmd, args)
	}
}

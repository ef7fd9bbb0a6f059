package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/backoffice"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/config"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/infra/logger"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/infra/notify"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store"
)

type app struct {
	cfg      config.Config
	log      *slog.Logger
	audit    io.Closer
	store    *store.Store
	notifier notify.Notifier
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	time.Local = loc

	log, audit, err := logger.NewAudit(cfg.App.Env, cfg.App.AuditLog)
	if err != nil {
		return nil, err
	}

	var n notify.Notifier = notify.NewLog(log)
	if cfg.Telegram.Token != "" && cfg.Telegram.AdminChatID != 0 {
		tg, err := notify.Dial(cfg.Telegram.Token, cfg.Telegram.AdminChatID, log)
		if err != nil {
			log.Warn("telegram notifier disabled", "err", err)
		} else {
			n = notify.Multi{n, tg}
		}
	}

	return &app{
		cfg:      cfg,
		log:      log,
		audit:    audit,
		store:    store.New(cfg.Database.Driver, cfg.Database.DSN, log),
		notifier: n,
	}, nil
}

func (a *app) backoffice() *backoffice.Service {
	return backoffice.New(a.store, a.notifier, a.log)
}

func (a *app) Close() error { return a.audit.Close() }

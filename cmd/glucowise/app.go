package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jwulff/glucowise-go/internal/dexcom"
	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/storage/sqlite"
	"github.com/jwulff/glucowise-go/internal/tracker"
)

// app is the wiring shared by every command.
type app struct {
	store   *sqlite.Store
	tracker *tracker.Tracker
	loc     *time.Location
}

func openApp(opts ...tracker.Option) (*app, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	var store *sqlite.Store
	if cfg.Database.Path == ":memory:" {
		store, err = sqlite.NewMemoryStore()
	} else {
		store, err = sqlite.NewFileStore(cfg.Database.Path)
	}
	if err != nil {
		return nil, err
	}

	opts = append([]tracker.Option{
		tracker.WithLocation(loc),
		tracker.WithLogger(logger.Named("tracker")),
	}, opts...)
	return &app{
		store:   store,
		tracker: tracker.New(store, opts...),
		loc:     loc,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logger.Warn("failed to close store", zap.Error(err))
	}
}

// userByEmail resolves the account a command acts on.
func (a *app) userByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := a.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", email, err)
	}
	return user, nil
}

// day parses a YYYY-MM-DD flag value, today when empty.
func (a *app) day(key string) (time.Time, error) {
	if key == "" {
		return a.tracker.Now(), nil
	}
	return domain.ParseDay(key, a.loc)
}

// dexcomImporter builds the importer for the configured Dexcom account.
func (a *app) dexcomImporter(ctx context.Context) (*dexcom.Importer, error) {
	user, err := a.userByEmail(ctx, cfg.Dexcom.UserEmail)
	if err != nil {
		return nil, err
	}
	baseURL := dexcom.BaseURL
	if strings.EqualFold(cfg.Dexcom.Region, "ous") {
		baseURL = dexcom.BaseURLOUS
	}
	client := dexcom.NewClient(cfg.Dexcom.Username, cfg.Dexcom.Password, baseURL)
	return dexcom.NewImporter(client, a.tracker, a.store, user.ID,
		dexcom.WithLogger(logger.Named("dexcom"))), nil
}

package dolarg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"commander-backend/lib/browse"
	"commander-backend/lib/cooldown"
	"commander-backend/services/syncstore"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/dolarg")

// CooldownWindow is the minimum time between two accepted sync attempts
// for this source.
const CooldownWindow = 10 * time.Minute

type Config struct {
	DataUrl string `json:"data_url"`
	DocPath string `json:"doc_path"`
}

type Service struct {
	config  Config
	store   syncstore.Store
	browser browse.Browser
}

func NewService(config Config, store syncstore.Store, browser browse.Browser) Service {
	return Service{
		config:  config,
		store:   store,
		browser: browser,
	}
}

// CheckCooldown reads the persisted sync timestamp and evaluates the
// gate against it. It never writes: two requests racing inside the same
// window can both be allowed through.
func (s Service) CheckCooldown(ctx context.Context, now time.Time) (cooldown.Result, error) {
	ctx, span := tracer.Start(ctx, "CheckCooldown")
	defer span.End()

	var record SyncRecord
	err := s.store.Get(ctx, s.config.DocPath, &record)
	if errors.Is(err, syncstore.ErrNotFound) {
		return cooldown.Result{Allowed: true}, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return cooldown.Result{}, err
	}

	return cooldown.Check(record.SyncDate, now, CooldownWindow), nil
}

func (s Service) fetchQuotes(ctx context.Context) ([]Quote, error) {
	if s.config.DataUrl == "" {
		return nil, errors.New("No se encontró la configuración: dolarg.data_url")
	}

	doc, err := s.browser.Document(ctx, s.config.DataUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote page: %w", err)
	}

	data := ExtractQuotes(doc)
	slog.InfoContext(ctx, "extracted quotes", "count", len(data))
	return data, nil
}

// Sync runs one end to end attempt: fetch, extract, then commit exactly
// one terminal SyncRecord write. A failed attempt keeps the previously
// synced data and only refreshes the status fields.
func (s Service) Sync(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Sync")
	defer span.End()
	span.SetAttributes(attribute.String("doc_path", s.config.DocPath))

	data, err := s.fetchQuotes(ctx)
	now := time.Now()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "dolarg sync failed", "err", err)

		var prior SyncRecord
		getErr := s.store.Get(ctx, s.config.DocPath, &prior)
		if getErr != nil && !errors.Is(getErr, syncstore.ErrNotFound) {
			return getErr
		}

		errTrue := true
		msg := err.Error()
		writeErr := s.store.Set(ctx, s.config.DocPath, SyncRecord{
			Data:         prior.Data,
			SyncError:    &errTrue,
			SyncErrorMsg: &msg,
			SyncDate:     &now,
		})
		if writeErr != nil {
			return writeErr
		}
		return err
	}

	errFalse := false
	return s.store.Set(ctx, s.config.DocPath, SyncRecord{
		Data:      data,
		SyncError: &errFalse,
		SyncDate:  &now,
	})
}

// Package rentafija syncs the argentine fixed income listing: it locates
// the currently published pdf, skips unchanged documents by fingerprint,
// and reads the bond table through a generative model.
package rentafija

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"commander-backend/lib/browse"
	"commander-backend/services/syncstore"

	"github.com/tmc/langchaingo/llms"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/rentafija")

// ErrNoChanges signals that the published pdf is the one already synced.
// It is surfaced as an attempt failure: the status record is stamped and
// the caller sees the message.
var ErrNoChanges = errors.New("No hay cambios en el PDF, no se actualiza la base de datos.")

type Config struct {
	// the listing page holding the link to the current pdf
	DataUrl string `json:"data_url"`
	// origin the listing's relative links resolve against
	DataOriginUrl string `json:"data_origin_url"`
	DocPath       string `json:"doc_path"`
	GeminiApiKey  string `json:"gemini_api_key"`
	Model         string `json:"model"`
}

type Service struct {
	config  Config
	store   syncstore.Store
	browser browse.Browser
	model   llms.Model
}

// NewService wires the source. model may be nil when no api key was
// configured, the first sync attempt then fails with a config error.
func NewService(config Config, store syncstore.Store, browser browse.Browser, model llms.Model) Service {
	return Service{
		config:  config,
		store:   store,
		browser: browser,
		model:   model,
	}
}

func (s Service) attempt(ctx context.Context, prior SyncRecord) ([]Bond, documentRef, error) {
	if s.config.DataOriginUrl == "" || s.config.DataUrl == "" {
		return nil, documentRef{}, errors.New("No se encontró la configuración: renta_fija.data_url o renta_fija.data_origin_url")
	}

	ref, err := s.resolveDocument(ctx)
	if err != nil {
		return nil, documentRef{}, err
	}

	if !ShouldProcess(ref.PdfUrl, prior.PdfUrl) {
		return nil, documentRef{}, ErrNoChanges
	}

	if s.model == nil {
		return nil, documentRef{}, errors.New("No se encontró la configuración: renta_fija.gemini_api_key")
	}

	pdf, err := s.browser.Binary(ctx, ref.PdfUrl)
	if err != nil {
		return nil, documentRef{}, fmt.Errorf("Error al obtener el buffer del PDF: %w", err)
	}

	bonds, err := s.extractBonds(ctx, pdf)
	if err != nil {
		return nil, documentRef{}, err
	}

	slog.InfoContext(ctx, "extracted bonds", "count", len(bonds), "pdf_url", ref.PdfUrl)
	return bonds, ref, nil
}

// Sync runs one end to end attempt and commits exactly one terminal
// SyncRecord write. Failures (the no-change skip included) keep the
// previously synced data and fingerprint, only the status fields move.
func (s Service) Sync(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Sync")
	defer span.End()
	span.SetAttributes(attribute.String("doc_path", s.config.DocPath))

	var prior SyncRecord
	err := s.store.Get(ctx, s.config.DocPath, &prior)
	if err != nil && !errors.Is(err, syncstore.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	data, ref, err := s.attempt(ctx, prior)
	now := time.Now()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "renta fija sync failed", "err", err)

		errTrue := true
		msg := err.Error()
		writeErr := s.store.Set(ctx, s.config.DocPath, SyncRecord{
			Data:         prior.Data,
			DataDate:     prior.DataDate,
			PdfUrl:       prior.PdfUrl,
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
		DataDate:  &ref.ListingDate,
		PdfUrl:    &ref.PdfUrl,
		SyncError: &errFalse,
		SyncDate:  &now,
	})
}

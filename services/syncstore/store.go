// Package syncstore persists one status document per scraped source,
// keyed by an opaque path string. Documents are written wholesale: every
// sync attempt ends in exactly one Set that replaces the whole record.
package syncstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/syncstore")

var ErrNotFound = errors.New("sync document not found")

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// Get reads the document at path into out. Returns ErrNotFound when no
// document has been written yet.
func (s Store) Get(ctx context.Context, path string, out any) error {
	ctx, span := tracer.Start(ctx, "Get")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	var record string
	err := s.db.QueryRowContext(
		ctx,
		"SELECT record FROM sync_documents WHERE path = ?",
		path,
	).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = json.Unmarshal([]byte(record), out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Set replaces the document at path. There is deliberately no
// compare-and-set here: concurrent attempts race on read-then-write,
// last writer wins.
func (s Store) Set(ctx context.Context, path string, record any) error {
	ctx, span := tracer.Start(ctx, "Set")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	contents, err := json.Marshal(record)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO sync_documents (path, record, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (path) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		path,
		string(contents),
		time.Now().Unix(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

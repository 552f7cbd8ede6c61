// Package catalog persists scanned module descriptors in a SQLite database.
package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/modscan/internal/core/ports"
	"go.trai.ch/zerr"
	_ "modernc.org/sqlite" // Registers the "sqlite" database/sql driver.
)

//go:embed schema.sql
var schema string

const declaredEmpty = -1

var _ ports.Catalog = (*Store)(nil)

// Store is a SQLite-backed module catalog.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, zerr.Wrap(domain.ErrCatalogOpenFailed, "catalog path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), domain.DirPerm); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCatalogOpenFailed, err), "path", cleanPath)
	}

	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCatalogOpenFailed, err), "path", cleanPath)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, zerr.With(errors.Join(domain.ErrCatalogOpenFailed, err), "path", cleanPath)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, zerr.With(errors.Join(domain.ErrCatalogOpenFailed, err), "path", cleanPath)
	}
	return &Store{db: db}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Replace rewrites the catalog with records in one transaction.
// Records sharing a module name are rejected before anything is written.
func (s *Store) Replace(ctx context.Context, records []domain.Record) (err error) {
	seen := make(map[string]string, len(records))
	for _, rec := range records {
		if prev, dup := seen[rec.Descriptor.Name]; dup {
			dupErr := zerr.With(zerr.Wrap(domain.ErrDuplicateModuleName, rec.Descriptor.Name), "module", rec.Descriptor.Name)
			dupErr = zerr.With(dupErr, "first", prev)
			return zerr.With(dupErr, "second", rec.Descriptor.Source)
		}
		seen[rec.Descriptor.Name] = rec.Descriptor.Source
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Join(domain.ErrCatalogWriteFailed, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{
		"DELETE FROM module_settings",
		"DELETE FROM module_entries",
		"DELETE FROM modules",
	} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return errors.Join(domain.ErrCatalogWriteFailed, err)
		}
	}

	for _, rec := range records {
		if err = insertRecord(ctx, tx, rec); err != nil {
			return zerr.With(errors.Join(domain.ErrCatalogWriteFailed, err), "module", rec.Descriptor.Name)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Join(domain.ErrCatalogWriteFailed, err)
	}
	return nil
}

func insertRecord(ctx context.Context, tx *sql.Tx, rec domain.Record) error {
	d := rec.Descriptor
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO modules (name, source, format, fingerprint) VALUES (?, ?, ?, ?)`,
		d.Name, d.Source, string(rec.Format), rec.Fingerprint,
	); err != nil {
		return err
	}

	for _, p := range d.Properties() {
		values := d.List(p)
		if len(values) == 0 {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO module_entries (module, property, position, value) VALUES (?, ?, ?, '')`,
				d.Name, string(p), declaredEmpty,
			); err != nil {
				return err
			}
			continue
		}
		for i, v := range values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO module_entries (module, property, position, value) VALUES (?, ?, ?, ?)`,
				d.Name, string(p), i, v,
			); err != nil {
				return err
			}
		}
	}

	for _, key := range d.SettingKeys() {
		value, _ := d.Setting(key)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO module_settings (module, key, value) VALUES (?, ?, ?)`,
			d.Name, key, value,
		); err != nil {
			return err
		}
	}
	return nil
}

// Records reads every stored record, ordered by module name.
func (s *Store) Records(ctx context.Context) ([]domain.Record, error) {
	var (
		records []domain.Record
		byName  = make(map[string]*domain.Descriptor)
	)

	rows, err := s.db.QueryContext(ctx, `SELECT name, source, format, fingerprint FROM modules ORDER BY name`)
	if err != nil {
		return nil, errors.Join(domain.ErrCatalogReadFailed, err)
	}
	for rows.Next() {
		var name, source, format, fingerprint string
		if err := rows.Scan(&name, &source, &format, &fingerprint); err != nil {
			_ = rows.Close()
			return nil, errors.Join(domain.ErrCatalogReadFailed, err)
		}
		d := domain.NewDescriptor(name)
		d.Source = source
		byName[name] = d
		records = append(records, domain.Record{
			Descriptor:  d,
			Format:      domain.Format(format),
			Fingerprint: fingerprint,
		})
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT module, property, position, value FROM module_entries ORDER BY module, property, position`)
	if err != nil {
		return nil, errors.Join(domain.ErrCatalogReadFailed, err)
	}
	for rows.Next() {
		var (
			module, property, value string
			position                int
		)
		if err := rows.Scan(&module, &property, &position, &value); err != nil {
			_ = rows.Close()
			return nil, errors.Join(domain.ErrCatalogReadFailed, err)
		}
		d, ok := byName[module]
		if !ok {
			continue
		}
		if position == declaredEmpty {
			d.Append(domain.Property(property))
			continue
		}
		d.Append(domain.Property(property), value)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT module, key, value FROM module_settings ORDER BY module, key`)
	if err != nil {
		return nil, errors.Join(domain.ErrCatalogReadFailed, err)
	}
	for rows.Next() {
		var module, key, value string
		if err := rows.Scan(&module, &key, &value); err != nil {
			_ = rows.Close()
			return nil, errors.Join(domain.ErrCatalogReadFailed, err)
		}
		if d, ok := byName[module]; ok {
			d.SetSetting(key, value)
		}
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	return records, nil
}

// Dependents returns the modules naming module in any module-list property, sorted.
func (s *Store) Dependents(ctx context.Context, module string) ([]string, error) {
	var props []any
	for _, p := range domain.KnownProperties {
		if p.IsDependency() {
			props = append(props, string(p))
		}
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(props)), ", ")

	args := append([]any{module}, props...)
	// #nosec G202 -- placeholders holds only "?" markers
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT module FROM module_entries
		  WHERE value = ? AND position >= 0 AND property IN (`+placeholders+`)
		  ORDER BY module`,
		args...,
	)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCatalogReadFailed, err), "module", module)
	}

	dependents := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return nil, errors.Join(domain.ErrCatalogReadFailed, err)
		}
		dependents = append(dependents, name)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}
	return dependents, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return errors.Join(domain.ErrCatalogReadFailed, err)
	}
	if err := rows.Close(); err != nil {
		return errors.Join(domain.ErrCatalogReadFailed, err)
	}
	return nil
}

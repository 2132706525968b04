// Package store archives validated imports in MySQL, one row per build NVR.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/dbsmedya/kojiimport/internal/koji"
	"github.com/dbsmedya/kojiimport/internal/lock"
	"github.com/dbsmedya/kojiimport/internal/logger"
	"github.com/dbsmedya/kojiimport/internal/wire"
)

var (
	// ErrNotFound is returned when no import is archived for an NVR.
	ErrNotFound = errors.New("import not found")

	// ErrChecksumConflict is returned when an NVR is already archived with
	// different content. Koji builds are immutable once imported.
	ErrChecksumConflict = errors.New("import already archived with different content")
)

// Record describes one archived import.
type Record struct {
	ArchiveID       string
	NVR             string
	MetadataVersion int
	Checksum        string
	CreatedAt       time.Time
}

// Store reads and writes the archive table.
type Store struct {
	db          *sql.DB
	table       string
	lockTimeout int
	log         *logger.Logger

	newID func() string
	now   func() time.Time
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// New returns a Store on table. The table name is validated and quoted
// since it is interpolated into SQL.
func New(db *sql.DB, table string, lockTimeout int, log *logger.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q (must contain only letters, digits and underscores)", table)
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{
		db:          db,
		table:       "`" + table + "`",
		lockTimeout: lockTimeout,
		log:         log,
		newID:       func() string { return uuid.NewString() },
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// Checksum is the hex form of the structural hash of info.
func Checksum(info *koji.ImportInfo) string {
	return fmt.Sprintf("%016x", info.Hash())
}

// EnsureSchema creates the archive table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  archive_id CHAR(36) NOT NULL,
  nvr VARCHAR(255) NOT NULL,
  metadata_version INT NOT NULL,
  checksum CHAR(16) NOT NULL,
  payload LONGTEXT NOT NULL,
  created_at DATETIME NOT NULL,
  PRIMARY KEY (archive_id),
  UNIQUE KEY uniq_nvr (nvr)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`, s.table)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.table, err)
	}
	return nil
}

// Save archives info under its NVR while holding the build's advisory lock.
// Saving identical content again returns the existing record with created
// set to false; different content for an archived NVR is ErrChecksumConflict.
func (s *Store) Save(ctx context.Context, info *koji.ImportInfo) (rec Record, created bool, err error) {
	nvr := info.Build().NVR()
	checksum := Checksum(info)
	log := s.log.WithBuild(nvr)

	payload, err := wire.Encode(info)
	if err != nil {
		return Record{}, false, err
	}

	// Lock and statements must share a session.
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return Record{}, false, fmt.Errorf("failed to get connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	err = lock.NewBuildLock(conn, nvr).WithLock(ctx, s.lockTimeout, func() error {
		existing, err := s.get(ctx, conn, nvr)
		switch {
		case err == nil:
			if existing.Checksum != checksum {
				return fmt.Errorf("%w: %s has checksum %s, new checksum %s",
					ErrChecksumConflict, nvr, existing.Checksum, checksum)
			}
			log.Infof("Import unchanged, keeping archive %s", existing.ArchiveID)
			rec = existing
			return nil
		case !errors.Is(err, ErrNotFound):
			return err
		}

		rec = Record{
			ArchiveID:       s.newID(),
			NVR:             nvr,
			MetadataVersion: info.MetadataVersion(),
			Checksum:        checksum,
			CreatedAt:       s.now(),
		}
		query := fmt.Sprintf(
			"INSERT INTO %s (archive_id, nvr, metadata_version, checksum, payload, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			s.table)
		if _, err := conn.ExecContext(ctx, query,
			rec.ArchiveID, rec.NVR, rec.MetadataVersion, rec.Checksum, string(payload), rec.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert import %s: %w", nvr, err)
		}
		created = true
		log.Infof("Archived import as %s (%d roots, %d outputs)",
			rec.ArchiveID, len(info.BuildRoots()), len(info.Outputs()))
		return nil
	})
	if err != nil {
		return Record{}, false, err
	}
	return rec, created, nil
}

// Get returns the archive record for nvr.
func (s *Store) Get(ctx context.Context, nvr string) (Record, error) {
	return s.get(ctx, s.db, nvr)
}

func (s *Store) get(ctx context.Context, q lock.Querier, nvr string) (Record, error) {
	query := fmt.Sprintf(
		"SELECT archive_id, nvr, metadata_version, checksum, created_at FROM %s WHERE nvr = ?", s.table)

	var rec Record
	err := q.QueryRowContext(ctx, query, nvr).
		Scan(&rec.ArchiveID, &rec.NVR, &rec.MetadataVersion, &rec.Checksum, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, nvr)
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to query import %s: %w", nvr, err)
	}
	return rec, nil
}

// Load decodes the archived import for nvr. The payload passes through the
// same builder validation as a fresh manifest.
func (s *Store) Load(ctx context.Context, nvr string) (*koji.ImportInfo, error) {
	query := fmt.Sprintf("SELECT payload FROM %s WHERE nvr = ?", s.table)

	var payload string
	err := s.db.QueryRowContext(ctx, query, nvr).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, nvr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load import %s: %w", nvr, err)
	}

	info, err := wire.Decode([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("archived import %s is invalid: %w", nvr, err)
	}
	return info, nil
}

// List returns every archive record, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	query := fmt.Sprintf(
		"SELECT archive_id, nvr, metadata_version, checksum, created_at FROM %s ORDER BY created_at DESC, nvr",
		s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ArchiveID, &rec.NVR, &rec.MetadataVersion, &rec.Checksum, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	return records, nil
}

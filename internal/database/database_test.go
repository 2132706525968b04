package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/kojiimport/internal/config"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.StoreConfig
		expected string
	}{
		{
			name:     "preferred TLS",
			cfg:      &config.StoreConfig{Host: "localhost", Port: 3306, User: "koji", Password: "secret", Database: "imports", TLS: "preferred"},
			expected: "koji:secret@tcp(localhost:3306)/imports?parseTime=true&tls=preferred",
		},
		{
			name:     "TLS disabled",
			cfg:      &config.StoreConfig{Host: "db", Port: 3307, User: "koji", Database: "imports", TLS: "disable"},
			expected: "koji:@tcp(db:3307)/imports?parseTime=true&tls=false",
		},
		{
			name:     "TLS required",
			cfg:      &config.StoreConfig{Host: "db", Port: 3306, User: "koji", Password: "p", Database: "imports", TLS: "required"},
			expected: "koji:p@tcp(db:3306)/imports?parseTime=true&tls=true",
		},
		{
			name:     "empty TLS defaults to preferred",
			cfg:      &config.StoreConfig{Host: "db", Port: 3306, User: "koji", Password: "p", Database: "imports"},
			expected: "koji:p@tcp(db:3306)/imports?parseTime=true&tls=preferred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildDSN(tt.cfg))
		})
	}
}

func TestConnectAndPing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	cfg := &config.StoreConfig{Host: "db", Port: 3306, User: "koji", Database: "imports", MaxConnections: 4, MaxIdleConnections: 2}
	m := NewManager(cfg)
	var gotDSN string
	m.open = func(driver, dsn string) (*sql.DB, error) {
		gotDSN = dsn
		return db, nil
	}

	mock.ExpectClose()

	require.NoError(t, m.Connect(context.Background()))
	assert.Equal(t, BuildDSN(cfg), gotDSN)
	assert.NoError(t, m.Ping(context.Background()))
	assert.NoError(t, m.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectCancelledDuringBackoff(t *testing.T) {
	m := NewManager(&config.StoreConfig{Host: "db", Port: 3306})
	m.open = func(driver, dsn string) (*sql.DB, error) {
		return nil, errors.New("dial refused")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Connect(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, m.DB)
}

func TestPingWithoutConnection(t *testing.T) {
	m := NewManager(&config.StoreConfig{})
	assert.Error(t, m.Ping(context.Background()))
	assert.NoError(t, m.Close())
}

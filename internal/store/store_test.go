package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/kojiimport/internal/koji"
	"github.com/dbsmedya/kojiimport/internal/lock"
	"github.com/dbsmedya/kojiimport/internal/logger"
	"github.com/dbsmedya/kojiimport/internal/wire"
)

const (
	testNVR = "commons-io-2.4-1"

	getLockQuery     = `SELECT GET_LOCK\(\?, \?\)`
	releaseLockQuery = `SELECT RELEASE_LOCK\(\?\)`
	selectByNVR      = "SELECT archive_id, nvr, metadata_version, checksum, created_at FROM `koji_imports` WHERE nvr = \\?"
	insertImport     = "INSERT INTO `koji_imports` \\(archive_id, nvr, metadata_version, checksum, payload, created_at\\)"
)

var (
	testLockName  = lock.BuildLockName(testNVR)
	recordColumns = []string{"archive_id", "nvr", "metadata_version", "checksum", "created_at"}
	fixedNow      = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func sampleInfo(t *testing.T) *koji.ImportInfo {
	t.Helper()
	b := koji.NewImportInfoBuilder()
	b.WithNewBuildDescription("commons-io", "2.4", "1").
		WithSource("git+https://example.com/commons-io.git#abc123").
		WithStartTime(time.Unix(1455094800, 0)).
		WithEndTime(time.Unix(1455096600, 0))
	b.WithNewBuildRoot(1).
		WithHost("rhel-7", "x86_64").
		WithContainer("docker", "x86_64").
		WithContentGenerator("pnc", "1.0")
	b.WithNewOutput(1, "commons-io-2.4.jar").
		WithFileSize(185140).
		WithArch("noarch").
		WithChecksumType("md5").
		WithChecksum("a1b2c3").
		WithOutputType(koji.OutputTypeMaven)

	info, err := b.Build()
	require.NoError(t, err)
	return info
}

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := New(db, "koji_imports", 10, logger.NewNop())
	require.NoError(t, err)
	s.newID = func() string { return "2f1c7c2e-5a0e-4d7b-9b0c-7c1d2e3f4a5b" }
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

func expectLock(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(getLockQuery).WithArgs(testLockName, 10).
		WillReturnRows(sqlmock.NewRows([]string{"r"}).AddRow(1))
}

func expectUnlock(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(releaseLockQuery).WithArgs(testLockName).
		WillReturnRows(sqlmock.NewRows([]string{"r"}).AddRow(1))
}

func TestNewRejectsBadTableName(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, name := range []string{"", "koji-imports", "imports; DROP TABLE x", "`imports`"} {
		_, err := New(db, name, 10, nil)
		assert.Error(t, err, "table %q", name)
	}

	_, err = New(nil, "koji_imports", 10, nil)
	assert.Error(t, err)
}

func TestChecksum(t *testing.T) {
	info := sampleInfo(t)
	sum := Checksum(info)
	assert.Len(t, sum, 16)
	assert.Equal(t, sum, Checksum(sampleInfo(t)))
}

func TestEnsureSchema(t *testing.T) {
	s, mock := newTestStore(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `koji_imports`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaError(t *testing.T) {
	s, mock := newTestStore(t)
	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("access denied"))

	err := s.EnsureSchema(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestSaveInsertsNewImport(t *testing.T) {
	s, mock := newTestStore(t)
	info := sampleInfo(t)

	expectLock(mock)
	mock.ExpectQuery(selectByNVR).WithArgs(testNVR).
		WillReturnRows(sqlmock.NewRows(recordColumns))
	mock.ExpectExec(insertImport).
		WithArgs("2f1c7c2e-5a0e-4d7b-9b0c-7c1d2e3f4a5b", testNVR, 0, Checksum(info), sqlmock.AnyArg(), fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))
	expectUnlock(mock)

	rec, created, err := s.Save(context.Background(), info)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "2f1c7c2e-5a0e-4d7b-9b0c-7c1d2e3f4a5b", rec.ArchiveID)
	assert.Equal(t, testNVR, rec.NVR)
	assert.Equal(t, Checksum(info), rec.Checksum)
	assert.Equal(t, fixedNow, rec.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSameContentIsUnchanged(t *testing.T) {
	s, mock := newTestStore(t)
	info := sampleInfo(t)

	expectLock(mock)
	mock.ExpectQuery(selectByNVR).WithArgs(testNVR).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("existing-id", testNVR, 0, Checksum(info), fixedNow.Add(-time.Hour)))
	expectUnlock(mock)

	rec, created, err := s.Save(context.Background(), info)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "existing-id", rec.ArchiveID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveDifferentContentConflicts(t *testing.T) {
	s, mock := newTestStore(t)
	info := sampleInfo(t)

	expectLock(mock)
	mock.ExpectQuery(selectByNVR).WithArgs(testNVR).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("existing-id", testNVR, 0, "0000000000000000", fixedNow))
	expectUnlock(mock)

	_, created, err := s.Save(context.Background(), info)
	require.Error(t, err)
	assert.False(t, created)
	assert.True(t, errors.Is(err, ErrChecksumConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveLockTimeout(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(getLockQuery).WithArgs(testLockName, 10).
		WillReturnRows(sqlmock.NewRows([]string{"r"}).AddRow(0))

	_, _, err := s.Save(context.Background(), sampleInfo(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, lock.ErrLockTimeout))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveInsertFailureReleasesLock(t *testing.T) {
	s, mock := newTestStore(t)

	expectLock(mock)
	mock.ExpectQuery(selectByNVR).WithArgs(testNVR).
		WillReturnRows(sqlmock.NewRows(recordColumns))
	mock.ExpectExec(insertImport).WillReturnError(errors.New("duplicate entry"))
	expectUnlock(mock)

	_, created, err := s.Save(context.Background(), sampleInfo(t))
	require.Error(t, err)
	assert.False(t, created)
	assert.Contains(t, err.Error(), "duplicate entry")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	s, mock := newTestStore(t)
	mock.ExpectQuery(selectByNVR).WithArgs("missing-1-1").
		WillReturnRows(sqlmock.NewRows(recordColumns))

	_, err := s.Get(context.Background(), "missing-1-1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadDecodesPayload(t *testing.T) {
	s, mock := newTestStore(t)
	info := sampleInfo(t)
	payload, err := wire.Encode(info)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT payload FROM `koji_imports` WHERE nvr = \\?").WithArgs(testNVR).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(string(payload)))

	loaded, err := s.Load(context.Background(), testNVR)
	require.NoError(t, err)
	assert.True(t, info.Equal(loaded))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRejectsInvalidPayload(t *testing.T) {
	s, mock := newTestStore(t)
	mock.ExpectQuery("SELECT payload FROM").WithArgs(testNVR).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(`{"build": {"name": "commons-io"}}`))

	_, err := s.Load(context.Background(), testNVR)
	require.Error(t, err)

	var verr *koji.VerificationError
	assert.True(t, errors.As(err, &verr))
}

func TestLoadNotFound(t *testing.T) {
	s, mock := newTestStore(t)
	mock.ExpectQuery("SELECT payload FROM").WithArgs("missing-1-1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	_, err := s.Load(context.Background(), "missing-1-1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestList(t *testing.T) {
	s, mock := newTestStore(t)
	mock.ExpectQuery("SELECT archive_id, nvr, metadata_version, checksum, created_at FROM `koji_imports` ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("id-2", "b-1-1", 0, "00000000000000bb", fixedNow).
			AddRow("id-1", "a-1-1", 0, "00000000000000aa", fixedNow.Add(-time.Hour)))

	records, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b-1-1", records[0].NVR)
	assert.Equal(t, "id-1", records[1].ArchiveID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmpty(t *testing.T) {
	s, mock := newTestStore(t)
	mock.ExpectQuery("SELECT .+ FROM `koji_imports`").WillReturnRows(sqlmock.NewRows(recordColumns))

	records, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

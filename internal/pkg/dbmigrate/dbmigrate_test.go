package dbmigrate

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrate struct {
	upErr      error
	downErr    error
	version    uint
	dirty      bool
	versionErr error
	srcErr     error
	dbErr      error
}

func (f *fakeMigrate) Up() error   { return f.upErr }
func (f *fakeMigrate) Down() error { return f.downErr }
func (f *fakeMigrate) Version() (uint, bool, error) {
	return f.version, f.dirty, f.versionErr
}
func (f *fakeMigrate) Close() (error, error) { return f.srcErr, f.dbErr }

func TestDriverURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost:5432/nvago":   "pgx5://u:p@localhost:5432/nvago",
		"postgresql://u:p@localhost:5432/nvago": "pgx5://u:p@localhost:5432/nvago",
		"pgx5://u:p@localhost:5432/nvago":       "pgx5://u:p@localhost:5432/nvago",
	}
	for in, want := range tests {
		assert.Equal(t, want, DriverURL(in))
	}
}

func TestMigrator_Up(t *testing.T) {
	m := &Migrator{m: &fakeMigrate{upErr: migrate.ErrNoChange}}
	require.NoError(t, m.Up())

	m = &Migrator{m: &fakeMigrate{upErr: errors.New("syntax error")}}
	require.ErrorContains(t, m.Up(), "dbmigrate: up: syntax error")

	m = &Migrator{m: &fakeMigrate{downErr: migrate.ErrNoChange}}
	require.NoError(t, m.Down())
}

func TestMigrator_Version(t *testing.T) {
	m := &Migrator{m: &fakeMigrate{versionErr: migrate.ErrNilVersion}}
	v, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.False(t, dirty)

	m = &Migrator{m: &fakeMigrate{version: 2, dirty: true}}
	v, dirty, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), v)
	assert.True(t, dirty)
}

func TestMigrator_Close(t *testing.T) {
	src := errors.New("src")
	db := errors.New("db")

	err := (&Migrator{m: &fakeMigrate{srcErr: src, dbErr: db}}).Close()
	require.ErrorIs(t, err, src)
	require.ErrorIs(t, err, db)

	require.NoError(t, (&Migrator{m: &fakeMigrate{}}).Close())
}

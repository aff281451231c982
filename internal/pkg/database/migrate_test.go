package database

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestReportVersion(t *testing.T) {
	logger, buf := bufferLogger()
	require.NoError(t, reportVersion(logger, 1, false, nil))
	assert.Contains(t, buf.String(), "database migrations applied")
	assert.Contains(t, buf.String(), "version=1")

	logger, buf = bufferLogger()
	require.NoError(t, reportVersion(logger, 0, false, migrate.ErrNilVersion))
	assert.Contains(t, buf.String(), "no applied migrations")
	assert.NotContains(t, buf.String(), "migrations applied")

	logger, buf = bufferLogger()
	require.NoError(t, reportVersion(logger, 3, true, nil))
	assert.Contains(t, buf.String(), "level=WARN")

	logger, _ = bufferLogger()
	err := reportVersion(logger, 0, false, errors.New("relation schema_migrations does not exist"))
	assert.ErrorContains(t, err, "read migration version")
}

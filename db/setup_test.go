package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := dialector(Config{Driver: "sqlserver"})
	assert.Error(t, err)
}

func TestDialectorSelectsDriver(t *testing.T) {
	pg, err := dialector(Config{Driver: "postgres", DSN: "host=localhost"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", pg.Name())

	my, err := dialector(Config{Driver: "mysql", DSN: "user:pass@tcp(localhost:3306)/lojinha"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", my.Name())
}

func TestPing(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	err = Ping(context.Background(), gdb, time.Second)
	assert.ErrorContains(t, err, "connection refused")

	require.NoError(t, mock.ExpectationsWereMet())
}

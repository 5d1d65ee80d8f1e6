package utils

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"partial overlap", "10:00", "10:30", "10:15", "10:45", true},
		{"contained", "10:00", "11:00", "10:15", "10:30", true},
		{"identical", "10:00", "10:30", "10:00", "10:30", true},
		{"adjacent after", "10:00", "10:30", "10:30", "11:00", false},
		{"adjacent before", "10:30", "11:00", "10:00", "10:30", false},
		{"disjoint", "09:00", "09:30", "14:00", "14:30", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RangesOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, RangesOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd), "must be symmetric")
		})
	}
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gdb, mock
}

func TestHasConflict(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("conflicting row found", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		mock.ExpectQuery("SELECT id").
			WithArgs(uint(7), "2024-03-15", "10:30", "10:00").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		conflict, err := HasConflict(gdb, 7, date, "10:00", "10:30", 0)
		require.NoError(t, err)
		assert.True(t, conflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("slot free", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		mock.ExpectQuery("SELECT id").
			WithArgs(uint(7), "2024-03-15", "10:30", "10:00").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		conflict, err := HasConflict(gdb, 7, date, "10:00", "10:30", 0)
		require.NoError(t, err)
		assert.False(t, conflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("excludes own booking on update", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		mock.ExpectQuery("SELECT id").
			WithArgs(uint(7), "2024-03-15", "10:30", "10:00", uint(42)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		conflict, err := HasConflict(gdb, 7, date, "10:00", "10:30", 42)
		require.NoError(t, err)
		assert.False(t, conflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

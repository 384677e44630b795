package repositories

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoonatech/portal-api/internal/models"
)

func mustLocalTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation(models.TimeLayout, value, time.Local)
	require.NoError(t, err)
	return parsed
}

func TestLoginHistoryRepository_Open(t *testing.T) {
	store := &fakeRowStore{
		GetRangeFunc: func(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
			// header plus one ledger row
			return [][]string{{"S.No"}, {"1"}}, nil
		},
	}
	repo := NewLoginHistoryRepository(store, testTable(), slog.Default())

	err := repo.Open(context.Background(), "jane", "jane@example.com", "2026-08-30 09:00:00")

	require.NoError(t, err)
	require.Len(t, store.appended, 1)
	assert.Equal(t, []string{"2", "jane", "jane@example.com", "2026-08-30 09:00:00", "", ""}, store.appended[0].row)
}

func TestLoginHistoryRepository_CloseLatest_ClosesMostRecentOpenRow(t *testing.T) {
	store := &fakeRowStore{
		GetRangeFunc: func(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
			return [][]string{
				loginHistoryHeaders,
				{"1", "jane", "jane@example.com", "2026-08-30 08:00:00", "2026-08-30 08:30:00", "00:30:00"},
				{"2", "john", "john@example.com", "2026-08-30 08:45:00", "", ""},
				{"3", "jane", "jane@example.com", "2026-08-30 09:00:00", "", ""},
			}, nil
		},
	}
	repo := NewLoginHistoryRepository(store, testTable(), slog.Default())

	logoutAt := mustLocalTime(t, "2026-08-30 10:30:15")
	hoursSpent, err := repo.CloseLatest(context.Background(), "jane@example.com", logoutAt)

	require.NoError(t, err)
	assert.Equal(t, "01:30:15", hoursSpent)
	require.Len(t, store.updated, 1)
	// row index 3 in the response is sheet row 4
	assert.Equal(t, "Sheet1!E4:F4", store.updated[0].writeRange)
	assert.Equal(t, [][]string{{"2026-08-30 10:30:15", "01:30:15"}}, store.updated[0].rows)
}

func TestLoginHistoryRepository_CloseLatest_SkipsClosedRows(t *testing.T) {
	store := &fakeRowStore{
		GetRangeFunc: func(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
			return [][]string{
				loginHistoryHeaders,
				{"1", "jane", "jane@example.com", "2026-08-30 08:00:00", "", ""},
				{"2", "jane", "jane@example.com", "2026-08-30 09:00:00", "2026-08-30 09:15:00", "00:15:00"},
			}, nil
		},
	}
	repo := NewLoginHistoryRepository(store, testTable(), slog.Default())

	logoutAt := mustLocalTime(t, "2026-08-30 10:00:00")
	_, err := repo.CloseLatest(context.Background(), "jane@example.com", logoutAt)

	require.NoError(t, err)
	require.Len(t, store.updated, 1)
	assert.Equal(t, "Sheet1!E2:F2", store.updated[0].writeRange)
}

func TestLoginHistoryRepository_CloseLatest_NoOpenRow(t *testing.T) {
	store := &fakeRowStore{
		GetRangeFunc: func(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
			return [][]string{
				loginHistoryHeaders,
				{"1", "jane", "jane@example.com", "2026-08-30 08:00:00", "2026-08-30 08:30:00", "00:30:00"},
			}, nil
		},
	}
	repo := NewLoginHistoryRepository(store, testTable(), slog.Default())

	_, err := repo.CloseLatest(context.Background(), "jane@example.com", time.Now())

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, store.updated)
}

func TestLoginHistoryRepository_CloseLatest_EmptySheet(t *testing.T) {
	store := &fakeRowStore{}
	repo := NewLoginHistoryRepository(store, testTable(), slog.Default())

	_, err := repo.CloseLatest(context.Background(), "jane@example.com", time.Now())

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLoginHistoryRepository_CloseLatest_ClampsNegativeElapsed(t *testing.T) {
	store := &fakeRowStore{
		GetRangeFunc: func(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
			return [][]string{
				loginHistoryHeaders,
				{"1", "jane", "jane@example.com", "2026-08-30 12:00:00", "", ""},
			}, nil
		},
	}
	repo := NewLoginHistoryRepository(store, testTable(), slog.Default())

	// logout stamped before login: clock skew
	logoutAt := mustLocalTime(t, "2026-08-30 11:00:00")
	hoursSpent, err := repo.CloseLatest(context.Background(), "jane@example.com", logoutAt)

	require.NoError(t, err)
	assert.Equal(t, "00:00:00", hoursSpent)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00", formatDuration(0))
	assert.Equal(t, "00:00:59", formatDuration(59*time.Second))
	assert.Equal(t, "01:02:03", formatDuration(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "27:00:00", formatDuration(27*time.Hour))
}

package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/zoonatech/portal-api/internal/models"
	"github.com/zoonatech/portal-api/internal/sheets"
)

var loginHistoryHeaders = []string{"S.No", "Username", "Email", "LoginTime", "LogoutTime", "HoursSpent"}

// LoginHistoryRepository owns the login-history ledger sheet. A row with an
// empty LogoutTime column is an open login.
type LoginHistoryRepository struct {
	store  sheets.RowStore
	table  sheets.TableRef
	serial serialCounter
	logger *slog.Logger
}

func NewLoginHistoryRepository(store sheets.RowStore, table sheets.TableRef, logger *slog.Logger) *LoginHistoryRepository {
	return &LoginHistoryRepository{store: store, table: table, logger: logger}
}

// EnsureHeaders writes the header row when the sheet is blank.
func (r *LoginHistoryRepository) EnsureHeaders(ctx context.Context) error {
	rows, err := r.store.GetRange(ctx, r.table.SpreadsheetID, r.table.Range("A1:F1"))
	if err != nil {
		return fmt.Errorf("failed to read login history headers: %w", err)
	}
	if len(rows) > 0 {
		return nil
	}
	return r.store.UpdateRange(ctx, r.table.SpreadsheetID, r.table.Range("A1:F1"), [][]string{loginHistoryHeaders})
}

// Open appends a new ledger row with empty logout columns.
func (r *LoginHistoryRepository) Open(ctx context.Context, username, email, loginTime string) error {
	serial, err := r.serial.allocate(func() (int, error) {
		rows, err := r.store.GetRange(ctx, r.table.SpreadsheetID, r.table.Range("A:A"))
		if err != nil {
			return 0, fmt.Errorf("failed to count login history rows: %w", err)
		}
		return len(rows), nil
	})
	if err != nil {
		return err
	}

	row := []string{strconv.Itoa(serial), username, email, loginTime, "", ""}
	if err := r.store.AppendRow(ctx, r.table.SpreadsheetID, r.table.Range("A:F"), row); err != nil {
		return fmt.Errorf("failed to append login history row: %w", err)
	}

	return nil
}

// CloseLatest finds the most recent open row for the email, scanning from the
// bottom of the sheet, and writes the logout time and elapsed duration into
// it. Returns models.ErrNotFound when no open row exists. The elapsed time is
// clamped to zero if the clock moved backwards between login and logout.
func (r *LoginHistoryRepository) CloseLatest(ctx context.Context, email string, logoutTime time.Time) (string, error) {
	rows, err := r.store.GetRange(ctx, r.table.SpreadsheetID, r.table.Range("A:F"))
	if err != nil {
		return "", fmt.Errorf("failed to read login history: %w", err)
	}
	if len(rows) <= 1 {
		return "", models.ErrNotFound
	}

	for i := len(rows) - 1; i >= 1; i-- {
		row := rows[i]
		if len(row) < 4 || !strings.EqualFold(row[2], email) {
			continue
		}
		if len(row) >= 5 && row[4] != "" {
			continue // already closed
		}

		loginAt, err := time.ParseInLocation(models.TimeLayout, row[3], time.Local)
		if err != nil {
			return "", fmt.Errorf("failed to parse login time %q: %w", row[3], err)
		}

		elapsed := logoutTime.Sub(loginAt)
		if elapsed < 0 {
			elapsed = 0
		}
		hoursSpent := formatDuration(elapsed)

		writeRange := r.table.Range(fmt.Sprintf("E%d:F%d", i+1, i+1))
		update := [][]string{{logoutTime.Format(models.TimeLayout), hoursSpent}}
		if err := r.store.UpdateRange(ctx, r.table.SpreadsheetID, writeRange, update); err != nil {
			return "", fmt.Errorf("failed to close login history row: %w", err)
		}

		return hoursSpent, nil
	}

	return "", models.ErrNotFound
}

// formatDuration renders a duration as HH:MM:SS text.
func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

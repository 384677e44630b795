package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/zoonatech/portal-api/internal/models"
	"github.com/zoonatech/portal-api/internal/sheets"
)

var registrationHeaders = []string{"S.No", "Username", "Email", "Password", "Mobile", "Registered Time"}

// UserRepository reads and writes rows of the registration sheet.
type UserRepository struct {
	store  sheets.RowStore
	table  sheets.TableRef
	serial serialCounter
	logger *slog.Logger
}

func NewUserRepository(store sheets.RowStore, table sheets.TableRef, logger *slog.Logger) *UserRepository {
	return &UserRepository{store: store, table: table, logger: logger}
}

// EnsureHeaders writes the header row when the sheet is blank.
func (r *UserRepository) EnsureHeaders(ctx context.Context) error {
	rows, err := r.store.GetRange(ctx, r.table.SpreadsheetID, r.table.Range("A1:F1"))
	if err != nil {
		return fmt.Errorf("failed to read registration headers: %w", err)
	}
	if len(rows) > 0 {
		return nil
	}
	return r.store.UpdateRange(ctx, r.table.SpreadsheetID, r.table.Range("A1:F1"), [][]string{registrationHeaders})
}

// GetByEmail scans the registration sheet for a matching email. The match is
// case-insensitive; email is the sheet's unique key.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	rows, err := r.store.GetRange(ctx, r.table.SpreadsheetID, r.table.Range("A2:F"))
	if err != nil {
		return nil, fmt.Errorf("failed to read registration rows: %w", err)
	}

	for i, row := range rows {
		if len(row) < 4 || !strings.EqualFold(row[2], email) {
			continue
		}

		user := &models.User{
			Username:     row[1],
			Email:        row[2],
			PasswordHash: row[3],
			Row:          i + 2, // data starts on sheet row 2
		}
		user.Serial, _ = strconv.Atoi(row[0])
		if len(row) > 4 {
			user.Mobile = row[4]
		}
		if len(row) > 5 {
			user.RegisteredTime = row[5]
		}
		return user, nil
	}

	return nil, models.ErrNotFound
}

// Create appends a registration row with the next serial number.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	serial, err := r.serial.allocate(func() (int, error) {
		rows, err := r.store.GetRange(ctx, r.table.SpreadsheetID, r.table.Range("A:A"))
		if err != nil {
			return 0, fmt.Errorf("failed to count registration rows: %w", err)
		}
		return len(rows), nil
	})
	if err != nil {
		return err
	}
	user.Serial = serial

	row := []string{
		strconv.Itoa(user.Serial),
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Mobile,
		user.RegisteredTime,
	}
	if err := r.store.AppendRow(ctx, r.table.SpreadsheetID, r.table.Range("A:F"), row); err != nil {
		return fmt.Errorf("failed to append registration row: %w", err)
	}

	return nil
}

// UpdatePassword overwrites the password column of the user's row in place.
func (r *UserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	writeRange := r.table.Range(fmt.Sprintf("D%d", user.Row))
	if err := r.store.UpdateRange(ctx, r.table.SpreadsheetID, writeRange, [][]string{{passwordHash}}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

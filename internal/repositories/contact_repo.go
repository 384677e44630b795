package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/zoonatech/portal-api/internal/models"
	"github.com/zoonatech/portal-api/internal/sheets"
)

var contactHeaders = []string{"S.No", "Name", "Phone", "Email", "ProjectType", "ProjectDescription", "SubmittedAt"}

// ContactRepository appends contact form submissions to the contact sheet.
type ContactRepository struct {
	store  sheets.RowStore
	table  sheets.TableRef
	serial serialCounter
	logger *slog.Logger
}

func NewContactRepository(store sheets.RowStore, table sheets.TableRef, logger *slog.Logger) *ContactRepository {
	return &ContactRepository{store: store, table: table, logger: logger}
}

// EnsureHeaders writes the header row when the sheet is blank.
func (r *ContactRepository) EnsureHeaders(ctx context.Context) error {
	rows, err := r.store.GetRange(ctx, r.table.SpreadsheetID, r.table.Range("A1:G1"))
	if err != nil {
		return fmt.Errorf("failed to read contact headers: %w", err)
	}
	if len(rows) > 0 {
		return nil
	}
	return r.store.UpdateRange(ctx, r.table.SpreadsheetID, r.table.Range("A1:G1"), [][]string{contactHeaders})
}

// Append records one contact request.
func (r *ContactRepository) Append(ctx context.Context, req models.ContactRequest) error {
	serial, err := r.serial.allocate(func() (int, error) {
		rows, err := r.store.GetRange(ctx, r.table.SpreadsheetID, r.table.Range("A:A"))
		if err != nil {
			return 0, fmt.Errorf("failed to count contact rows: %w", err)
		}
		return len(rows), nil
	})
	if err != nil {
		return err
	}

	row := []string{
		strconv.Itoa(serial),
		req.Name,
		req.Phone,
		req.Email,
		req.ProjectType,
		req.ProjectDescription,
		req.SubmittedAt,
	}
	if err := r.store.AppendRow(ctx, r.table.SpreadsheetID, r.table.Range("A:G"), row); err != nil {
		return fmt.Errorf("failed to append contact row: %w", err)
	}

	return nil
}

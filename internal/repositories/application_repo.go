package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/zoonatech/portal-api/internal/models"
	"github.com/zoonatech/portal-api/internal/sheets"
)

var applicationHeaders = []string{"S.No", "Name", "Email", "KeySkills", "JoinUs", "ResumeLink", "SubmittedAt"}

// ApplicationRepository appends job applications to the recruits sheet.
type ApplicationRepository struct {
	store  sheets.RowStore
	table  sheets.TableRef
	serial serialCounter
	logger *slog.Logger
}

func NewApplicationRepository(store sheets.RowStore, table sheets.TableRef, logger *slog.Logger) *ApplicationRepository {
	return &ApplicationRepository{store: store, table: table, logger: logger}
}

// EnsureHeaders writes the header row when the sheet is blank.
func (r *ApplicationRepository) EnsureHeaders(ctx context.Context) error {
	rows, err := r.store.GetRange(ctx, r.table.SpreadsheetID, r.table.Range("A1:G1"))
	if err != nil {
		return fmt.Errorf("failed to read application headers: %w", err)
	}
	if len(rows) > 0 {
		return nil
	}
	return r.store.UpdateRange(ctx, r.table.SpreadsheetID, r.table.Range("A1:G1"), [][]string{applicationHeaders})
}

// Append records one job application. The ResumeLink column holds the
// uploaded filename; the resume itself travels by email.
func (r *ApplicationRepository) Append(ctx context.Context, app models.JobApplication) error {
	serial, err := r.serial.allocate(func() (int, error) {
		rows, err := r.store.GetRange(ctx, r.table.SpreadsheetID, r.table.Range("A:A"))
		if err != nil {
			return 0, fmt.Errorf("failed to count application rows: %w", err)
		}
		return len(rows), nil
	})
	if err != nil {
		return err
	}

	row := []string{
		strconv.Itoa(serial),
		app.Name,
		app.Email,
		app.KeySkills,
		app.JoinUs,
		app.ResumeFilename,
		app.SubmittedAt,
	}
	if err := r.store.AppendRow(ctx, r.table.SpreadsheetID, r.table.Range("A:G"), row); err != nil {
		return fmt.Errorf("failed to append application row: %w", err)
	}

	return nil
}

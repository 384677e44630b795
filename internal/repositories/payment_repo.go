package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/zoonatech/portal-api/internal/models"
	"github.com/zoonatech/portal-api/internal/sheets"
)

var paymentHeaders = []string{"S.No", "MailId", "SelectedProject", "Amount", "PaymentTime"}

// PaymentRepository appends payment notices to the payment sheet.
type PaymentRepository struct {
	store  sheets.RowStore
	table  sheets.TableRef
	serial serialCounter
	logger *slog.Logger
}

func NewPaymentRepository(store sheets.RowStore, table sheets.TableRef, logger *slog.Logger) *PaymentRepository {
	return &PaymentRepository{store: store, table: table, logger: logger}
}

// EnsureHeaders writes the header row when the sheet is blank.
func (r *PaymentRepository) EnsureHeaders(ctx context.Context) error {
	rows, err := r.store.GetRange(ctx, r.table.SpreadsheetID, r.table.Range("A1:E1"))
	if err != nil {
		return fmt.Errorf("failed to read payment headers: %w", err)
	}
	if len(rows) > 0 {
		return nil
	}
	return r.store.UpdateRange(ctx, r.table.SpreadsheetID, r.table.Range("A1:E1"), [][]string{paymentHeaders})
}

// Append records one payment notice.
func (r *PaymentRepository) Append(ctx context.Context, p models.Payment) error {
	serial, err := r.serial.allocate(func() (int, error) {
		rows, err := r.store.GetRange(ctx, r.table.SpreadsheetID, r.table.Range("A:A"))
		if err != nil {
			return 0, fmt.Errorf("failed to count payment rows: %w", err)
		}
		return len(rows), nil
	})
	if err != nil {
		return err
	}

	row := []string{
		strconv.Itoa(serial),
		p.Email,
		p.SelectedProject,
		strconv.FormatFloat(p.Amount, 'f', -1, 64),
		p.PaymentTime,
	}
	if err := r.store.AppendRow(ctx, r.table.SpreadsheetID, r.table.Range("A:E"), row); err != nil {
		return fmt.Errorf("failed to append payment row: %w", err)
	}

	return nil
}

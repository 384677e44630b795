package sheets

import (
	"context"
	"fmt"
	"log/slog"

	gsheets "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"
)

// TableRef addresses one tab of one spreadsheet.
type TableRef struct {
	SpreadsheetID string
	Sheet         string
}

// Range prefixes an A1 reference with the tab name.
func (t TableRef) Range(a1 string) string {
	return t.Sheet + "!" + a1
}

// RowStore is the Tabular Store surface the repositories consume. The Google
// Sheets client implements it; tests substitute an in-memory fake.
type RowStore interface {
	GetRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
	AppendRow(ctx context.Context, spreadsheetID, writeRange string, row []string) error
	UpdateRange(ctx context.Context, spreadsheetID, writeRange string, rows [][]string) error
}

// Client is a thin wrapper over the Google Sheets values API.
type Client struct {
	svc    *gsheets.Service
	logger *slog.Logger
}

// NewClient builds a Sheets client from service-account credentials JSON.
func NewClient(ctx context.Context, credentialsJSON []byte, logger *slog.Logger) (*Client, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{svc: svc, logger: logger}, nil
}

// GetRange reads a range and normalizes every cell to a string.
func (c *Client) GetRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets get %s: %w", readRange, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow appends a single row after the last data row of the range.
func (c *Client) AppendRow(ctx context.Context, spreadsheetID, writeRange string, row []string) error {
	_, err := c.svc.Spreadsheets.Values.
		Append(spreadsheetID, writeRange, valueRange(row)).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets append %s: %w", writeRange, err)
	}
	return nil
}

// UpdateRange overwrites the cells of a range in place.
func (c *Client) UpdateRange(ctx context.Context, spreadsheetID, writeRange string, rows [][]string) error {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = toInterfaces(row)
	}

	_, err := c.svc.Spreadsheets.Values.
		Update(spreadsheetID, writeRange, &gsheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets update %s: %w", writeRange, err)
	}
	return nil
}

func valueRange(row []string) *gsheets.ValueRange {
	return &gsheets.ValueRange{Values: [][]interface{}{toInterfaces(row)}}
}

func toInterfaces(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, cell := range row {
		out[i] = cell
	}
	return out
}

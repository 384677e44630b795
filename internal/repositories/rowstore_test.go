package repositories

import (
	"context"

	"github.com/zoonatech/portal-api/internal/sheets"
)

// fakeRowStore implements sheets.RowStore with Func fields and records writes.
type fakeRowStore struct {
	GetRangeFunc    func(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
	AppendRowFunc   func(ctx context.Context, spreadsheetID, writeRange string, row []string) error
	UpdateRangeFunc func(ctx context.Context, spreadsheetID, writeRange string, rows [][]string) error

	appended []appendCall
	updated  []updateCall
}

type appendCall struct {
	writeRange string
	row        []string
}

type updateCall struct {
	writeRange string
	rows       [][]string
}

var _ sheets.RowStore = (*fakeRowStore)(nil)

func (f *fakeRowStore) GetRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	if f.GetRangeFunc != nil {
		return f.GetRangeFunc(ctx, spreadsheetID, readRange)
	}
	return nil, nil
}

func (f *fakeRowStore) AppendRow(ctx context.Context, spreadsheetID, writeRange string, row []string) error {
	if f.AppendRowFunc != nil {
		if err := f.AppendRowFunc(ctx, spreadsheetID, writeRange, row); err != nil {
			return err
		}
	}
	f.appended = append(f.appended, appendCall{writeRange: writeRange, row: row})
	return nil
}

func (f *fakeRowStore) UpdateRange(ctx context.Context, spreadsheetID, writeRange string, rows [][]string) error {
	if f.UpdateRangeFunc != nil {
		if err := f.UpdateRangeFunc(ctx, spreadsheetID, writeRange, rows); err != nil {
			return err
		}
	}
	f.updated = append(f.updated, updateCall{writeRange: writeRange, rows: rows})
	return nil
}

func testTable() sheets.TableRef {
	return sheets.TableRef{SpreadsheetID: "sheet123", Sheet: "Sheet1"}
}

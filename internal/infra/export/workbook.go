package export

import (
	"context"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/mitaka/regintake/internal/domain"
)

const sheetName = "Registrations"

// WorkbookWriter regenerates the spreadsheet artifact: one worksheet,
// one row per record, columns spanning every attribute present across
// the collection. Column order is id, sorted field keys,
// registrationDate, so regeneration is deterministic.
type WorkbookWriter struct {
	path string
}

func NewWorkbookWriter(path string) *WorkbookWriter {
	return &WorkbookWriter{path: path}
}

func (w *WorkbookWriter) Name() string { return "workbook" }

func (w *WorkbookWriter) Write(ctx context.Context, regs domain.Collection) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return errors.Wrap(err, "naming worksheet")
	}

	fieldKeys := regs.FieldKeys()
	headers := make([]any, 0, len(fieldKeys)+2)
	headers = append(headers, "id")
	for _, k := range fieldKeys {
		headers = append(headers, k)
	}
	headers = append(headers, "registrationDate")
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return errors.Wrap(err, "writing header row")
	}

	for i, reg := range regs {
		row := make([]any, 0, len(headers))
		row = append(row, reg.ID)
		for _, k := range fieldKeys {
			row = append(row, reg.Field(k))
		}
		row = append(row, reg.RegistrationDate)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "computing row cell")
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return errors.Wrap(err, "writing record row")
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return errors.Wrap(err, "writing workbook artifact")
	}
	return nil
}

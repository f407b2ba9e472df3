// Package export renders a session's settled analyses as an XLSX review
// worksheet.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"dealdesk/internal/domain"
	"dealdesk/internal/scoring"
)

const sheetName = "Analyses"

// columns defines the worksheet header row.
var columns = []string{
	"File Name",
	"File Type",
	"Status",
	"Analysis ID",
	"Confidence",
	"Quality Score",
	"Requires Review",
	"Deal Type",
	"Deal Value",
	"Currency",
	"Purchase Price",
	"Announced Date",
	"Expected Closing",
	"Seller",
	"Buyer",
	"Target",
	"Flags",
	"Error",
}

// WriteSession writes the session's file entries as an XLSX workbook to w.
func WriteSession(w io.Writer, sess *domain.Session) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for rowIdx := range sess.Files {
		row := fileToRow(&sess.Files[rowIdx])
		for colIdx, val := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("row cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, val); err != nil {
				return fmt.Errorf("writing row %d: %w", rowIdx+1, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func fileToRow(entry *domain.SessionFile) []any {
	row := make([]any, len(columns))
	row[0] = entry.File.Name
	row[1] = entry.File.Type
	row[2] = string(entry.Status)
	row[17] = entry.Error

	r := entry.Result
	if r == nil {
		return row
	}

	row[3] = r.AnalysisID
	row[4] = scoring.OverallConfidence(r)
	row[5] = r.QualityScore
	row[6] = scoring.RequiresReview(r)

	if d := r.Extracted; d != nil {
		row[7] = d.DealType
		row[8] = floatOrEmpty(d.DealValue)
		row[9] = d.Currency
		row[10] = floatOrEmpty(d.PurchasePrice)
		row[11] = dateOrEmpty(d.AnnouncedDate)
		row[12] = dateOrEmpty(d.ExpectedClosingDate)
		if d.Seller != nil {
			row[13] = d.Seller.Name
		}
		if d.Buyer != nil {
			row[14] = d.Buyer.Name
		}
		if d.Target != nil {
			row[15] = d.Target.Name
		}
	}

	if len(r.Flags) > 0 {
		msgs := make([]string, 0, len(r.Flags))
		for _, fl := range r.Flags {
			msgs = append(msgs, fmt.Sprintf("[%s] %s", fl.Severity, fl.Message))
		}
		row[16] = strings.Join(msgs, "; ")
	}

	return row
}

func floatOrEmpty(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func dateOrEmpty(t *time.Time) any {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

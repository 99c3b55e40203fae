// Package export renders the revenue leak report as downloadable files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/okian/pie/internal/domain/analytics"
	"github.com/okian/pie/internal/domain/format"
	"github.com/xuri/excelize/v2"
)

// Format is a report file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	sheetName    = "Revenue Leaks"
	defaultSheet = "Sheet1"
	columnWidth  = 18
)

// ErrUnsupportedFormat is returned for anything other than csv or xlsx.
var ErrUnsupportedFormat = errors.New("unsupported export format")

var headers = []string{
	"Company ID", "Company", "Industry", "Monthly Leak (USD)", "Monthly Leak", "Leak %", "Severity",
}

// ParseFormat resolves a query value. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename names a report generated at t.
func (f Format) Filename(t time.Time) string {
	return fmt.Sprintf("revenue-leaks-%s.%s", t.UTC().Format("2006-01-02"), f)
}

// WriteLeaks writes cells to w in format f.
func WriteLeaks(w io.Writer, f Format, cells []analytics.LeakCell) error {
	switch f {
	case FormatCSV:
		return writeCSV(w, cells)
	case FormatXLSX:
		return writeXLSX(w, cells)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func writeCSV(w io.Writer, cells []analytics.LeakCell) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, c := range cells {
		row := []string{
			c.CompanyID,
			c.CompanyName,
			string(c.Industry),
			strconv.FormatFloat(c.LeakAmount, 'f', 2, 64),
			format.Currency(c.LeakAmount),
			strconv.FormatFloat(c.LeakPercent, 'f', 1, 64),
			string(c.Severity),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeXLSX(w io.Writer, cells []analytics.LeakCell) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	currencyFmt := "$#,##0.00"
	currencyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, c := range cells {
		row := i + 2 // after header
		start, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []interface{}{
			c.CompanyID,
			c.CompanyName,
			string(c.Industry),
			c.LeakAmount,
			format.Currency(c.LeakAmount),
			c.LeakPercent,
			string(c.Severity),
		}
		if err := f.SetSheetRow(sheetName, start, &values); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		amount, _ := excelize.CoordinatesToCellName(4, row)
		if err := f.SetCellStyle(sheetName, amount, amount, currencyStyle); err != nil {
			return fmt.Errorf("failed to style row: %w", err)
		}
	}

	for i := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, col, col, columnWidth); err != nil {
			return fmt.Errorf("failed to size column: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

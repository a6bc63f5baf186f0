package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"printit-bot/internal/storage"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	sheetName  = "Orders"
	dateLayout = "2006-01-02 15:04"
)

var headers = []string{
	"Date", "User", "File", "Pages", "Copies", "Type", "Sides",
	"Binding", "Payment", "Price", "Status", "Payment Status",
}

// ParseFormat accepts "csv" or "xlsx" in any case; empty means csv.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX, "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// Write exports jobs in the given format.
func Write(w io.Writer, format string, jobs []storage.Job) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, jobs)
	case FormatXLSX:
		return WriteXLSX(w, jobs)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func row(j storage.Job) []string {
	payment := j.PaymentMethod
	if payment == "" {
		payment = storage.PaymentCash
	}
	paymentStatus := j.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = storage.PaymentPending
	}

	return []string{
		j.CreatedAt.Format(dateLayout),
		strconv.FormatInt(j.UserID, 10),
		j.FileName,
		strconv.Itoa(j.Pages),
		strconv.Itoa(j.Copies),
		j.ColorMode,
		j.Sidedness,
		j.Binding,
		payment,
		j.Price.StringFixed(2),
		j.Status,
		paymentStatus,
	}
}

func WriteCSV(w io.Writer, jobs []storage.Job) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, j := range jobs {
		if err := cw.Write(row(j)); err != nil {
			return fmt.Errorf("write job %d: %w", j.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteXLSX(w io.Writer, jobs []storage.Job) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, j := range jobs {
		values := row(j)
		data := make([]interface{}, len(values))
		for k, v := range values {
			data[k] = v
		}
		// numeric columns stay numeric for spreadsheet formulas
		data[3] = j.Pages
		data[4] = j.Copies
		data[9] = j.Price.InexactFloat64()

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &data); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return fmt.Errorf("failed to find sheet: %w", err)
	}
	f.SetActiveSheet(index)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// FileName is the suggested download name for an export.
func FileName(format, stamp string) string {
	return fmt.Sprintf("print_jobs_%s.%s", stamp, format)
}

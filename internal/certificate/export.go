package certificate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Certificate"

// Exporter writes certificates to a directory.
type Exporter struct {
	dir string
}

// NewExporter creates an Exporter writing into dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Dir returns the export directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// Export writes the text and workbook forms of c and returns their paths.
func (e *Exporter) Export(ctx context.Context, c *Certificate) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	base := filepath.Join(e.dir, "certificate-"+c.ID)

	txtPath := base + ".txt"
	if err := os.WriteFile(txtPath, []byte(Text(c)), 0o644); err != nil {
		return nil, fmt.Errorf("write certificate text: %w", err)
	}

	data, err := Workbook(c)
	if err != nil {
		return nil, err
	}
	xlsxPath := base + ".xlsx"
	if err := os.WriteFile(xlsxPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write certificate workbook: %w", err)
	}

	return []string{txtPath, xlsxPath}, nil
}

// Workbook renders c as a single-sheet Excel workbook of field/value rows.
func Workbook(c *Certificate) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create certificate sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("remove default sheet: %w", err)
	}

	rows := [][2]any{
		{"Field", "Value"},
		{"Certificate", heading},
		{"Course", c.CourseTitle},
		{"Course version", c.CourseVersion},
		{"Name", c.Name},
		{"Score (%)", c.ScorePercent},
		{"Date", c.Date()},
		{"Certificate ID", c.ID},
	}
	for r, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+1)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}
	f.SetColWidth(sheetName, "A", "A", 18)
	f.SetColWidth(sheetName, "B", "B", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write certificate workbook: %w", err)
	}
	return buf.Bytes(), nil
}

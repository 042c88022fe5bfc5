package course

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const questionsSheet = "Questions"

var questionHeaders = []string{
	"Number", "Question", "Option A", "Option B", "Option C", "Option D",
	"Correct Answer", "Explanation",
}

// Workbook exports the bank as an Excel workbook, one question per row.
func (b *Bank) Workbook() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(questionsSheet)
	if err != nil {
		return nil, fmt.Errorf("create questions sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("remove default sheet: %w", err)
	}

	for col, h := range questionHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(questionsSheet, cell, h)
	}

	for i, q := range b.questions {
		row := []any{i + 1, q.Prompt}
		for j := 0; j < 4; j++ {
			opt := ""
			if j < len(q.Options) {
				opt = q.Options[j]
			}
			row = append(row, opt)
		}
		row = append(row, string(rune('A'+q.Correct)), q.Explanation)

		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(questionsSheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write questions workbook: %w", err)
	}
	return buf.Bytes(), nil
}

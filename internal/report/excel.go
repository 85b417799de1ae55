package report

import (
	"bytes"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"wastetrack/internal/model"
)

// SheetName is the worksheet holding the detection rows.
const SheetName = "Trash Detections"

var excelHeaders = []string{"ID", "Image Path", "Trash Type", "Confidence (%)", "Detection Date", "Detection Time"}

// Excel builds the downloadable spreadsheet report, one row per detection.
func Excel(detections []model.Detection) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, header := range excelHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, det := range detections {
		values := []interface{}{
			det.ID,
			det.ImagePath,
			det.TrashType,
			math.Round(det.Confidence*10000) / 100,
			det.DetectionDate.Format("2006-01-02"),
			det.DetectionDate.Format("15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	if err := f.SetColWidth(SheetName, "A", "F", 20); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	return f.WriteToBuffer()
}

package api

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/mahendraputra/idx-radar/internal/models"
)

// toplistHeader is the column layout shared by both export formats.
var toplistHeader = []string{
	"Rank", "Stock Code", "Company Name", "Date", "Close", "Change %",
	"Volume", "Local Volume", "Volume Factor", "Signal", "Foreign Flow",
	"Sector", "Score",
}

// WriteToplistCSV writes the ranked table as CSV.
func WriteToplistCSV(w io.Writer, rankings []models.Ranking) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(toplistHeader); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}

	for _, rk := range rankings {
		r := rk.Record
		row := []string{
			strconv.Itoa(rk.Rank),
			r.StockCode,
			r.CompanyName,
			r.Date.Format("2006-01-02"),
			strconv.FormatFloat(r.Close, 'f', -1, 64),
			strconv.FormatFloat(r.ChangePct, 'f', 2, 64),
			strconv.FormatInt(r.Volume, 10),
			strconv.FormatInt(r.LocalVolume, 10),
			strconv.FormatFloat(r.VolumeFactor, 'f', 2, 64),
			r.Signal,
			r.ForeignFlow,
			r.DisplaySector(),
			strconv.Itoa(r.Score),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing export row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteToplistXLSX writes the ranked table as a spreadsheet.
func WriteToplistXLSX(w io.Writer, rankings []models.Ranking) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Toplist"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming export sheet: %w", err)
	}

	for col, name := range toplistHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("writing export header: %w", err)
		}
	}

	for i, rk := range rankings {
		r := rk.Record
		values := []interface{}{
			rk.Rank,
			r.StockCode,
			r.CompanyName,
			r.Date.Format("2006-01-02"),
			r.Close,
			r.ChangePct,
			r.Volume,
			r.LocalVolume,
			r.VolumeFactor,
			r.Signal,
			r.ForeignFlow,
			r.DisplaySector(),
			r.Score,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("writing export row: %w", err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing spreadsheet: %w", err)
	}
	return nil
}

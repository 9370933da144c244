package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mahendraputra/idx-radar/internal/models"
	"github.com/mahendraputra/idx-radar/pkg/logger"
)

// dateLayouts are the formats seen in the upstream exports.
var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// ParseRecords parses the primary trading CSV into records, applying the
// coercion rules: numeric fields that fail to parse become 0, rows
// failing record validation (no stock code, no parseable date, negative
// volume) are dropped and counted.
func ParseRecords(r io.Reader) ([]models.TradingRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading feed header: %w", err)
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var records []models.TradingRecord
	var dropped int
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading feed row: %w", err)
		}

		rec, ok := parseRow(cols, row)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	if dropped > 0 {
		logger.Warn("Dropped unparseable feed rows",
			logger.Int("dropped", dropped),
			logger.Int("kept", len(records)),
		)
	}

	return records, nil
}

// ParseSectors parses the stock-to-sector mapping CSV.
func ParseSectors(r io.Reader) (map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading sector header: %w", err)
	}

	codeIdx, sectorIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case ColStockCode:
			codeIdx = i
		case ColSector:
			sectorIdx = i
		}
	}
	if codeIdx < 0 || sectorIdx < 0 {
		return nil, fmt.Errorf("%w: sector feed needs %q and %q", models.ErrMissingColumn, ColStockCode, ColSector)
	}

	sectors := make(map[string]string)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading sector row: %w", err)
		}
		if codeIdx >= len(row) || sectorIdx >= len(row) {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(row[codeIdx]))
		sector := strings.TrimSpace(row[sectorIdx])
		if code == "" || sector == "" {
			continue
		}
		sectors[code] = sector
	}

	return sectors, nil
}

func indexColumns(header []string) (columnIndex, error) {
	cols := make(columnIndex, len(header))
	for _, name := range append(append([]string{}, requiredColumns...), optionalColumns...) {
		cols[name] = -1
	}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	for _, name := range requiredColumns {
		if cols[name] < 0 {
			return nil, fmt.Errorf("%w: %q", models.ErrMissingColumn, name)
		}
	}
	return cols, nil
}

func parseRow(cols columnIndex, row []string) (models.TradingRecord, bool) {
	// An unparseable date stays zero and fails validation below.
	date, _ := coerceDate(cols.field(row, ColDate))

	rec := models.TradingRecord{
		StockCode:     strings.ToUpper(strings.TrimSpace(cols.field(row, ColStockCode))),
		CompanyName:   strings.TrimSpace(cols.field(row, ColCompanyName)),
		Date:          date,
		Close:         coerceFloat(cols.field(row, ColClose)),
		Previous:      coerceFloat(cols.field(row, ColPrevious)),
		Change:        coerceFloat(cols.field(row, ColChange)),
		Volume:        coerceInt(cols.field(row, ColVolume)),
		Value:         coerceFloat(cols.field(row, ColValue)),
		ForeignBuy:    coerceInt(cols.field(row, ColForeignBuy)),
		ForeignSell:   coerceInt(cols.field(row, ColForeignSell)),
		Frequency:     coerceInt(cols.field(row, ColFrequency)),
		Signal:        strings.TrimSpace(cols.field(row, ColSignal)),
		ForeignFlow:   strings.TrimSpace(cols.field(row, ColForeignFlow)),
		UnusualVolume: coerceBool(cols.field(row, ColUnusualVolume)),
		Week:          strings.TrimSpace(cols.field(row, ColWeek)),
		VWAP:          coerceFloat(cols.field(row, ColVWAP)),
	}

	if err := rec.Validate(); err != nil {
		return models.TradingRecord{}, false
	}
	return rec, true
}

// coerceFloat parses a numeric field. Malformed or missing values become
// 0, matching the upstream fill-with-zero behavior. Thousand separators
// are tolerated.
func coerceFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "-" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func coerceInt(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "-" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Some exports write integer columns as decimals.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		return int64(f)
	}
	return v
}

func coerceBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "ya", "y":
		return true
	}
	return false
}

func coerceDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

package feed

// Column names are contractual with the upstream aggregation job.
const (
	ColStockCode     = "Stock Code"
	ColCompanyName   = "Company Name"
	ColDate          = "Last Trading Date"
	ColClose         = "Close"
	ColPrevious      = "Previous"
	ColChange        = "Change"
	ColVolume        = "Volume"
	ColValue         = "Value"
	ColForeignBuy    = "Foreign Buy"
	ColForeignSell   = "Foreign Sell"
	ColFrequency     = "Frequency"
	ColSignal        = "Signal"
	ColForeignFlow   = "Foreign Flow"
	ColUnusualVolume = "Unusual Volume"
	ColWeek          = "Week"
	ColVWAP          = "VWAP"

	ColSector = "Sector"
)

// requiredColumns must be present in the primary feed header; everything
// else is optional and falls back to its zero default for every row.
var requiredColumns = []string{ColStockCode, ColDate}

// optionalColumns is the remainder of the primary feed contract. The
// set is fixed here once so per-row access never needs to guess at
// which columns exist.
var optionalColumns = []string{
	ColCompanyName, ColClose, ColPrevious, ColChange, ColVolume, ColValue,
	ColForeignBuy, ColForeignSell, ColFrequency, ColSignal, ColForeignFlow,
	ColUnusualVolume, ColWeek, ColVWAP,
}

// columnIndex maps a header row to column positions. Missing optional
// columns map to -1.
type columnIndex map[string]int

func (c columnIndex) field(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

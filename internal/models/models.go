package models

import (
	"time"
)

// Signal classification values supplied by the upstream feed.
const (
	SignalAccumulation = "Akumulasi"
	SignalDistribution = "Distribusi"
	SignalNeutral      = "Netral"
)

// Foreign flow classification values supplied by the upstream feed.
const (
	FlowInflow  = "Inflow"
	FlowOutflow = "Outflow"
)

// SectorUncategorized is the display bucket for rows with no sector mapping.
const SectorUncategorized = "Uncategorized"

// TradingRecord is one row of the daily feed: a single (stock, date) pair.
// Numeric fields that failed coercion at parse time arrive here as zero.
type TradingRecord struct {
	StockCode   string    `json:"stock_code"`
	CompanyName string    `json:"company_name,omitempty"`
	Date        time.Time `json:"date"`
	Close       float64   `json:"close"`
	Previous    float64   `json:"previous"`
	Change      float64   `json:"change"`
	Volume      int64     `json:"volume"`
	Value       float64   `json:"value"`
	ForeignBuy  int64     `json:"foreign_buy"`
	ForeignSell int64     `json:"foreign_sell"`
	Frequency   int64     `json:"frequency"`

	// Upstream-computed classifications, carried through as authoritative.
	Signal        string  `json:"signal,omitempty"`
	ForeignFlow   string  `json:"foreign_flow,omitempty"`
	UnusualVolume bool    `json:"unusual_volume"`
	Week          string  `json:"week,omitempty"`
	VWAP          float64 `json:"vwap"`

	// Joined from the sector mapping feed; empty when unmapped.
	Sector string `json:"sector,omitempty"`
}

// Validate validates a TradingRecord
func (r *TradingRecord) Validate() error {
	if r.StockCode == "" {
		return ErrInvalidStockCode
	}
	if r.Date.IsZero() {
		return ErrInvalidDate
	}
	if r.Volume < 0 {
		return ErrInvalidVolume
	}
	return nil
}

// EnrichedRecord is a TradingRecord plus every derived column.
// Indicator fields are nil while their window is still warming up.
type EnrichedRecord struct {
	TradingRecord

	// LocalVolume is Volume minus total foreign volume. It can go negative
	// when the feed reports foreign volume exceeding total volume; that is
	// passed through unclamped as an upstream data-quality signal.
	LocalVolume int64   `json:"local_volume"`
	ChangePct   float64 `json:"change_pct"`

	VolumeMA3  float64 `json:"volume_ma3"`
	VolumeMA5  float64 `json:"volume_ma5"`
	VolumeMA20 float64 `json:"volume_ma20"`
	ValueMA3   float64 `json:"value_ma3"`
	ValueMA5   float64 `json:"value_ma5"`
	ValueMA20  float64 `json:"value_ma20"`

	// VolumeFactor is Volume / VolumeMA20, 0 when the average is 0.
	VolumeFactor float64 `json:"volume_factor"`

	Score int `json:"score"`

	SMA20      *float64 `json:"sma_20,omitempty"`
	SMA50      *float64 `json:"sma_50,omitempty"`
	BBMiddle   *float64 `json:"bb_middle,omitempty"`
	BBUpper    *float64 `json:"bb_upper,omitempty"`
	BBLower    *float64 `json:"bb_lower,omitempty"`
	MACD       *float64 `json:"macd,omitempty"`
	MACDSignal *float64 `json:"macd_signal,omitempty"`
	RSI14      *float64 `json:"rsi_14,omitempty"`
}

// DisplaySector returns the sector name with the unmapped bucket applied.
func (r *EnrichedRecord) DisplaySector() string {
	if r.Sector == "" {
		return SectorUncategorized
	}
	return r.Sector
}

// RankMetric identifies the column a toplist ranks by.
type RankMetric string

const (
	MetricScore        RankMetric = "score"
	MetricVolumeFactor RankMetric = "volume_factor"
	MetricChangePct    RankMetric = "change_pct"
	MetricValue        RankMetric = "value"
)

// Valid reports whether the metric is a known ranking column.
func (m RankMetric) Valid() bool {
	switch m {
	case MetricScore, MetricVolumeFactor, MetricChangePct, MetricValue:
		return true
	}
	return false
}

// MetricValue extracts the ranked column from an enriched record.
func (m RankMetric) MetricValue(r *EnrichedRecord) float64 {
	switch m {
	case MetricScore:
		return float64(r.Score)
	case MetricVolumeFactor:
		return r.VolumeFactor
	case MetricChangePct:
		return r.ChangePct
	case MetricValue:
		return r.Value
	}
	return 0
}

// Ranking is a single toplist entry.
type Ranking struct {
	Rank   int            `json:"rank"`
	Value  float64        `json:"value"`
	Record EnrichedRecord `json:"record"`
}

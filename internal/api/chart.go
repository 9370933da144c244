package api

import (
	"github.com/mahendraputra/idx-radar/internal/models"
	"github.com/mahendraputra/idx-radar/pkg/indicator"
)

// ChartPayload carries every series the combo chart renders: stacked
// local/foreign volume bars with a close-price line on top, a frequency
// area below, and the indicator overlays. Arrays share one index with
// Dates; nil entries mean the indicator was still warming up that day.
type ChartPayload struct {
	StockCode   string     `json:"stock_code"`
	CompanyName string     `json:"company_name,omitempty"`
	Dates       []string   `json:"dates"`
	Close       []float64  `json:"close"`
	LocalVolume []int64    `json:"local_volume"`
	ForeignBuy  []int64    `json:"foreign_buy"`
	ForeignSell []int64    `json:"foreign_sell"`
	Frequency   []int64    `json:"frequency"`
	Score       []int      `json:"score"`
	SMA20       []*float64 `json:"sma_20"`
	SMA50       []*float64 `json:"sma_50"`
	BBUpper     []*float64 `json:"bb_upper"`
	BBMiddle    []*float64 `json:"bb_middle"`
	BBLower     []*float64 `json:"bb_lower"`
	MACD        []*float64 `json:"macd"`
	MACDSignal  []*float64 `json:"macd_signal"`
	RSI14       []*float64 `json:"rsi_14"`
	ATR14       []*float64 `json:"atr_14"`
	StochK      []*float64 `json:"stoch_k"`
	StochD      []*float64 `json:"stoch_d"`
}

// BuildChartPayload assembles the chart series for one stock. The
// enriched dataset is already chronological within a stock, so the
// rows are consumed in order. The ATR and stochastic overlays are
// computed here on demand; they are chart-only and not part of the
// stored dataset.
func BuildChartPayload(records []models.EnrichedRecord, code string) ChartPayload {
	payload := ChartPayload{StockCode: code}

	atr := indicator.NewTechanATR(14)
	stochK := indicator.NewTechanStochK(14)
	stochD := indicator.NewTechanStochD(14, 3)

	for _, r := range records {
		if r.StockCode != code {
			continue
		}

		payload.CompanyName = r.CompanyName
		payload.Dates = append(payload.Dates, r.Date.Format("2006-01-02"))
		payload.Close = append(payload.Close, r.Close)
		payload.LocalVolume = append(payload.LocalVolume, r.LocalVolume)
		payload.ForeignBuy = append(payload.ForeignBuy, r.ForeignBuy)
		payload.ForeignSell = append(payload.ForeignSell, r.ForeignSell)
		payload.Frequency = append(payload.Frequency, r.Frequency)
		payload.Score = append(payload.Score, r.Score)

		payload.SMA20 = append(payload.SMA20, r.SMA20)
		payload.SMA50 = append(payload.SMA50, r.SMA50)
		payload.BBUpper = append(payload.BBUpper, r.BBUpper)
		payload.BBMiddle = append(payload.BBMiddle, r.BBMiddle)
		payload.BBLower = append(payload.BBLower, r.BBLower)
		payload.MACD = append(payload.MACD, r.MACD)
		payload.MACDSignal = append(payload.MACDSignal, r.MACDSignal)
		payload.RSI14 = append(payload.RSI14, r.RSI14)

		payload.ATR14 = append(payload.ATR14, calcOptional(atr, r.Close))
		payload.StochK = append(payload.StochK, calcOptional(stochK, r.Close))
		payload.StochD = append(payload.StochD, calcOptional(stochD, r.Close))
	}

	return payload
}

func calcOptional(calc indicator.Calculator, value float64) *float64 {
	v, ok := calc.Update(value)
	if !ok {
		return nil
	}
	return &v
}

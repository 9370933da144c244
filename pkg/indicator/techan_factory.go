package indicator

import (
	"fmt"

	"github.com/sdcoffey/techan"
)

// NewTechanATR creates an Average True Range calculator backed by techan.
// On close-only candles the true range collapses to the absolute
// close-to-close move, which reads as a daily volatility overlay.
func NewTechanATR(period int) *TechanCalculator {
	return NewTechanCalculator(
		fmt.Sprintf("atr_%d", period),
		period,
		func(series *techan.TimeSeries) techan.Indicator {
			return techan.NewAverageTrueRangeIndicator(series, period)
		},
	)
}

// NewTechanStochK creates a fast stochastic %K calculator backed by techan.
func NewTechanStochK(period int) *TechanCalculator {
	return NewTechanCalculator(
		fmt.Sprintf("stoch_k_%d", period),
		period,
		func(series *techan.TimeSeries) techan.Indicator {
			return techan.NewFastStochasticIndicator(series, period)
		},
	)
}

// NewTechanStochD creates a slow stochastic %D calculator: an SMA of %K.
func NewTechanStochD(kPeriod, dPeriod int) *TechanCalculator {
	return NewTechanCalculator(
		fmt.Sprintf("stoch_d_%d_%d", kPeriod, dPeriod),
		kPeriod+dPeriod-1,
		func(series *techan.TimeSeries) techan.Indicator {
			k := techan.NewFastStochasticIndicator(series, kPeriod)
			return techan.NewSlowStochasticIndicator(k, dPeriod)
		},
	)
}

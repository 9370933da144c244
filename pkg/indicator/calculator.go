package indicator

// Calculator is the interface for streaming technical indicator calculators.
// Values must be fed in chronological order, one closing value per trading
// day within a single stock's series.
type Calculator interface {
	// Name returns the unique name of this indicator (e.g., "rsi_14", "sma_20")
	Name() string

	// Update feeds the next value and returns the new indicator value.
	// ok is false while the indicator is still warming up or the value
	// is undefined for the current inputs.
	Update(value float64) (v float64, ok bool)

	// Value returns the current indicator value.
	// ok is false if no defined value has been produced yet.
	Value() (float64, bool)

	// Reset clears the calculator state so a new series can be fed.
	Reset()

	// IsReady returns true once the calculator has produced a defined value.
	IsReady() bool
}

// WindowedCalculator extends Calculator for indicators built on a fixed
// trailing window of observations.
type WindowedCalculator interface {
	Calculator

	// WindowSize returns the number of observations the window holds.
	WindowSize() int

	// Processed returns the number of observations fed so far.
	Processed() int
}

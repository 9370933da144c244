package indicator

import (
	"math"
	"testing"
)

func TestMACD_NewMACD(t *testing.T) {
	macd, err := NewMACD(12, 26, 9)
	if err != nil {
		t.Fatalf("Failed to create MACD: %v", err)
	}
	if macd.Name() != "macd_12_26_9" {
		t.Errorf("Expected name 'macd_12_26_9', got '%s'", macd.Name())
	}

	if _, err = NewMACD(26, 12, 9); err == nil {
		t.Error("Expected error for fast period >= slow period")
	}
}

func TestMACD_DefinedFromFirstValue(t *testing.T) {
	macd, _ := NewMACD(12, 26, 9)

	val, ok := macd.Update(100.0)
	if !ok {
		t.Fatal("MACD should be defined from the first value")
	}
	// Both EMAs seed at the same price, so the line and signal start at 0.
	if val.Line != 0 || val.Signal != 0 {
		t.Errorf("Expected zero line/signal on the first value, got %+v", val)
	}
}

func TestMACD_MatchesComponentEMAs(t *testing.T) {
	macd, _ := NewMACD(12, 26, 9)
	fast, _ := NewEMA(12)
	slow, _ := NewEMA(26)
	signal, _ := NewEMA(9)

	prices := []float64{100, 102, 101, 105, 107, 103, 108, 110, 109, 112, 111, 115}
	var got MACDValue
	for _, p := range prices {
		got, _ = macd.Update(p)
		f, _ := fast.Update(p)
		s, _ := slow.Update(p)
		signal.Update(f - s)
	}

	f, _ := fast.Value()
	s, _ := slow.Value()
	sig, _ := signal.Value()

	if math.Abs(got.Line-(f-s)) > 1e-12 {
		t.Errorf("MACD line %f does not match EMA12-EMA26 %f", got.Line, f-s)
	}
	if math.Abs(got.Signal-sig) > 1e-12 {
		t.Errorf("MACD signal %f does not match EMA9 of the line %f", got.Signal, sig)
	}
}

func TestMACD_RisingSeriesPositive(t *testing.T) {
	macd, _ := NewMACD(12, 26, 9)

	var val MACDValue
	for i := 0; i < 60; i++ {
		val, _ = macd.Update(100.0 + float64(i))
	}

	// In a sustained uptrend the fast EMA sits above the slow EMA.
	if val.Line <= 0 {
		t.Errorf("Expected positive MACD line in an uptrend, got %f", val.Line)
	}
}

func TestMACD_Reset(t *testing.T) {
	macd, _ := NewMACD(12, 26, 9)
	macd.Update(100)
	macd.Update(105)

	macd.Reset()
	if macd.IsReady() {
		t.Error("MACD should not be ready after reset")
	}
	if _, ok := macd.Value(); ok {
		t.Error("MACD value should be undefined after reset")
	}
}

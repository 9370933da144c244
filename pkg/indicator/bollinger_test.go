package indicator

import (
	"math"
	"testing"
)

func TestBollinger_NewBollinger(t *testing.T) {
	bb, err := NewBollinger(20, 2)
	if err != nil {
		t.Fatalf("Failed to create Bollinger: %v", err)
	}
	if bb.Name() != "bb_20_2.0" {
		t.Errorf("Expected name 'bb_20_2.0', got '%s'", bb.Name())
	}

	if _, err = NewBollinger(20, 0); err == nil {
		t.Error("Expected error for non-positive band width")
	}
	if _, err = NewBollinger(1, 2); err == nil {
		t.Error("Expected error for window too small for a stdev")
	}
}

func TestBollinger_UndefinedDuringWarmup(t *testing.T) {
	bb, _ := NewBollinger(20, 2)

	for i := 0; i < 19; i++ {
		if _, ok := bb.Update(100.0 + float64(i)); ok {
			t.Fatalf("Bollinger should be undefined after %d values", i+1)
		}
	}

	if _, ok := bb.Update(119.0); !ok {
		t.Error("Bollinger should be defined once the window is full")
	}
}

func TestBollinger_Bands(t *testing.T) {
	bb, _ := NewBollinger(4, 2)

	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	var got BollingerValue
	var ok bool
	for _, v := range values {
		got, ok = bb.Update(v)
	}
	if !ok {
		t.Fatal("Bollinger should be defined")
	}

	// Window is 5, 5, 7, 9: mean 6.5, sample stdev sqrt(11/3).
	mean := 6.5
	stdev := math.Sqrt(11.0 / 3.0)
	if math.Abs(got.Middle-mean) > 1e-12 {
		t.Errorf("Expected middle %f, got %f", mean, got.Middle)
	}
	if math.Abs(got.Upper-(mean+2*stdev)) > 1e-12 {
		t.Errorf("Expected upper %f, got %f", mean+2*stdev, got.Upper)
	}
	if math.Abs(got.Lower-(mean-2*stdev)) > 1e-12 {
		t.Errorf("Expected lower %f, got %f", mean-2*stdev, got.Lower)
	}
}

func TestBollinger_FlatSeriesCollapses(t *testing.T) {
	bb, _ := NewBollinger(5, 2)

	var got BollingerValue
	for i := 0; i < 10; i++ {
		got, _ = bb.Update(50.0)
	}

	if got.Upper != 50 || got.Middle != 50 || got.Lower != 50 {
		t.Errorf("Flat series should collapse all bands to the price, got %+v", got)
	}
}

func TestBollinger_Reset(t *testing.T) {
	bb, _ := NewBollinger(3, 2)
	for i := 0; i < 5; i++ {
		bb.Update(float64(i))
	}

	bb.Reset()
	if bb.IsReady() {
		t.Error("Bollinger should not be ready after reset")
	}
	if _, ok := bb.Value(); ok {
		t.Error("Bollinger value should be undefined after reset")
	}
}

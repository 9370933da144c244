package derive

import (
	"github.com/mahendraputra/idx-radar/internal/models"
)

// scoreRecord sums the weighted boolean signals for one record. Every
// signal is independent and the weights just add up, so evaluation
// order never changes the result.
func (d *Deriver) scoreRecord(rec *models.EnrichedRecord, prevVolume int64, hasPrev bool) int {
	w := d.score
	score := 0

	if rec.Signal == models.SignalAccumulation {
		score += w.Accumulation
	}
	if rec.ForeignFlow == models.FlowInflow {
		score += w.ForeignInflow
	}
	if rec.VolumeFactor >= w.VolumeFactorHighLevel {
		score += w.VolumeFactorHigh
	} else if rec.VolumeFactor >= w.VolumeFactorMidLevel {
		score += w.VolumeFactorMid
	}
	if rec.VWAP > 0 && rec.Close > rec.VWAP {
		score += w.AboveVWAP
	}
	if hasPrev && rec.Volume > prevVolume {
		score += w.WeeklyVolumeUp
	}
	if rec.UnusualVolume {
		score += w.UnusualVolume
	}

	return score
}

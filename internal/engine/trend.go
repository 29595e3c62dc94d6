package engine

import (
	"math"

	"github.com/quantora/analyzer/models"
)

// computeTrend derives moving-average alignment, the latest MACD cross and
// Bollinger band position for one timeframe.
func computeTrend(bars []models.Bar, src valueSource) models.Trend {
	t := models.Trend{MAState: "mixed", MACDCross: "none", BollStatus: "unknown"}

	t.MA5 = src.last("ma_5")
	t.MA10 = src.last("ma_10")
	t.MA20 = src.last("ma_20")
	t.MA60 = src.last("ma_60")
	if t.MA5 != nil && t.MA10 != nil && t.MA20 != nil && t.MA60 != nil {
		switch {
		case *t.MA5 > *t.MA10 && *t.MA10 > *t.MA20 && *t.MA20 > *t.MA60:
			t.MAState = "bullish"
		case *t.MA5 < *t.MA10 && *t.MA10 < *t.MA20 && *t.MA20 < *t.MA60:
			t.MAState = "bearish"
		}
	}

	t.MACD = src.last("macd")
	t.MACDSignal = src.last("macd_signal")
	t.MACDHist = src.last("macd_hist")
	t.MACDCross = macdCross(src.series("macd"), src.series("macd_signal"))

	t.BollUpper = src.last("boll_upper")
	t.BollMiddle = src.last("boll_middle")
	t.BollLower = src.last("boll_lower")
	if t.BollUpper != nil && t.BollMiddle != nil && t.BollLower != nil && len(bars) > 0 {
		closePx := bars[len(bars)-1].Close
		switch {
		case closePx > *t.BollUpper:
			t.BollStatus = "breakout_up"
		case closePx < *t.BollLower:
			t.BollStatus = "breakout_down"
		case *t.BollMiddle != 0 && math.Abs(closePx-*t.BollMiddle)/math.Abs(*t.BollMiddle) <= 0.01:
			t.BollStatus = "revert_mid"
		case closePx > *t.BollMiddle:
			t.BollStatus = "above_mid"
		default:
			t.BollStatus = "inside_band"
		}
	}
	return t
}

// macdCross reports the transition of (macd - signal) between the last two
// defined points: golden_cross on a move through zero upward, dead_cross on
// the reverse. Needs at least two consecutive defined points in both series.
func macdCross(macd, signal []float64) string {
	n := len(macd)
	if n < 2 || len(signal) != n {
		return "none"
	}
	i := n - 1
	if !isFinite(macd[i]) || !isFinite(signal[i]) || !isFinite(macd[i-1]) || !isFinite(signal[i-1]) {
		return "none"
	}
	prior := macd[i-1] - signal[i-1]
	current := macd[i] - signal[i]
	switch {
	case prior <= 0 && current > 0:
		return "golden_cross"
	case prior >= 0 && current < 0:
		return "dead_cross"
	default:
		return "none"
	}
}

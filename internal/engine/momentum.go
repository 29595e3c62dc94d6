package engine

import (
	"github.com/quantora/analyzer/models"
)

// minimum data for divergence detection, both on bars and oscillator points
const divergenceMinPoints = 20

// swing window for pivot detection (±2 indices)
const pivotWindow = 2

// computeMomentum derives RSI, KDJ and divergence state for one timeframe.
func computeMomentum(bars []models.Bar, src valueSource) models.Momentum {
	m := models.Momentum{RSIStatus: "unknown", KDJStatus: "unknown", Divergence: "none"}

	m.RSI = src.last("rsi_14")
	if m.RSI != nil {
		switch {
		case *m.RSI >= 70:
			m.RSIStatus = "overbought"
		case *m.RSI <= 30:
			m.RSIStatus = "oversold"
		default:
			m.RSIStatus = "neutral"
		}
	}

	m.K = src.last("stoch_k")
	m.D = src.last("stoch_d")
	if m.K != nil && m.D != nil {
		j := 3**m.K - 2**m.D
		m.J = models.Float(j)
		switch {
		case *m.K >= 80 && *m.D >= 80:
			m.KDJStatus = "high_blunting"
		case *m.K <= 20 && *m.D <= 20:
			m.KDJStatus = "low_blunting"
		case j > 100:
			m.KDJStatus = "extreme_up"
		case j < 0:
			m.KDJStatus = "extreme_down"
		default:
			m.KDJStatus = "neutral"
		}
	}

	m.Divergence = detectDivergence(bars, src)
	return m
}

// detectDivergence compares the last two price pivots against the last two
// oscillator pivots. RSI is the primary oscillator; KDJ-J is tried when RSI
// yields nothing. Only the most recent pivot pair is ever considered.
func detectDivergence(bars []models.Bar, src valueSource) string {
	if len(bars) < divergenceMinPoints {
		return "none"
	}

	if osc := compactFinite(src.series("rsi_14")); len(osc) >= divergenceMinPoints {
		if d := divergenceAgainst(bars, osc); d != "none" {
			return d
		}
	}
	if j := jSeries(src.series("stoch_k"), src.series("stoch_d")); len(j) >= divergenceMinPoints {
		if d := divergenceAgainst(bars, j); d != "none" {
			return d
		}
	}
	return "none"
}

func jSeries(k, d []float64) []float64 {
	n := len(k)
	if len(d) != n {
		return nil
	}
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if isFinite(k[i]) && isFinite(d[i]) {
			out = append(out, 3*k[i]-2*d[i])
		}
	}
	return out
}

func divergenceAgainst(bars []models.Bar, osc []float64) string {
	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	for i, b := range bars {
		highs[i] = b.High
		lows[i] = b.Low
	}

	oscHighPivots := pivotValues(osc, true)
	oscLowPivots := pivotValues(osc, false)

	// Bearish: price prints a higher high while the oscillator prints a lower
	// high at its own last pivot pair.
	priceHighs := pivotValues(highs, true)
	if len(priceHighs) >= 2 && len(oscHighPivots) >= 2 {
		p1, p2 := priceHighs[len(priceHighs)-2], priceHighs[len(priceHighs)-1]
		o1, o2 := oscHighPivots[len(oscHighPivots)-2], oscHighPivots[len(oscHighPivots)-1]
		if p2 > p1 && o2 < o1 {
			return "bearish"
		}
	}

	// Bullish: the mirror case on lows.
	priceLows := pivotValues(lows, false)
	if len(priceLows) >= 2 && len(oscLowPivots) >= 2 {
		p1, p2 := priceLows[len(priceLows)-2], priceLows[len(priceLows)-1]
		o1, o2 := oscLowPivots[len(oscLowPivots)-2], oscLowPivots[len(oscLowPivots)-1]
		if p2 < p1 && o2 > o1 {
			return "bullish"
		}
	}
	return "none"
}

// pivotValues returns the values of local extrema: points that are the
// maximum (or minimum) within a ±pivotWindow neighborhood.
func pivotValues(values []float64, high bool) []float64 {
	var out []float64
	for i := pivotWindow; i < len(values)-pivotWindow; i++ {
		isPivot := true
		for j := i - pivotWindow; j <= i+pivotWindow; j++ {
			if j == i {
				continue
			}
			if high && values[j] > values[i] {
				isPivot = false
				break
			}
			if !high && values[j] < values[i] {
				isPivot = false
				break
			}
		}
		if isPivot {
			out = append(out, values[i])
		}
	}
	return out
}

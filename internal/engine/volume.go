package engine

import (
	"math"

	"github.com/quantora/analyzer/models"
)

// computeVolumePrice derives volume/price interaction metrics. Every division
// is guarded; an unusable input makes the metric absent (or false for the
// boolean signals), never NaN.
func computeVolumePrice(bars []models.Bar, src valueSource, sr models.SupportResistance) models.VolumePrice {
	vp := models.VolumePrice{}
	n := len(bars)
	if n == 0 {
		return vp
	}
	closePx := bars[n-1].Close

	vp.VolumeRatio = volumeRatio(bars)

	// Shrink pullback: a down close parked near MA20 on drying volume.
	ma20 := src.last("ma_20")
	if n >= 2 && ma20 != nil && *ma20 != 0 && vp.VolumeRatio != nil {
		vp.ShrinkPullback = closePx < bars[n-2].Close &&
			math.Abs(closePx-*ma20)/math.Abs(*ma20) <= 0.025 &&
			*vp.VolumeRatio < 0.85
	}

	// Volume breakout: close clears the reference ceiling on expanding volume.
	if n >= 21 && vp.VolumeRatio != nil {
		ref := bars[n-21].High
		for _, b := range bars[n-21 : n-1] {
			if b.High > ref {
				ref = b.High
			}
		}
		if len(sr.Resistances) > 0 && sr.Resistances[0].Price > ref {
			ref = sr.Resistances[0].Price
		}
		vp.VolumeBreakout = closePx > ref && *vp.VolumeRatio > 1.5
	}

	vp.ATR = src.last("atr_14")
	vp.Volatility = returnVolatility(bars, 20)
	vp.MaxDrawdown = maxDrawdown(bars)
	return vp
}

// volumeRatio is the latest volume over the mean of the preceding (up to 20)
// volume samples. Fewer than two samples, a volume-less latest bar, or a zero
// mean make it absent.
func volumeRatio(bars []models.Bar) *float64 {
	var samples []float64
	for _, b := range bars {
		if b.Volume != nil {
			samples = append(samples, *b.Volume)
		}
	}
	latest := bars[len(bars)-1].Volume
	if latest == nil || len(samples) < 2 {
		return nil
	}

	prior := samples[:len(samples)-1]
	if len(prior) > 20 {
		prior = prior[len(prior)-20:]
	}
	var sum float64
	for _, v := range prior {
		sum += v
	}
	mean := sum / float64(len(prior))
	if mean == 0 {
		return nil
	}
	return models.Float(*latest / mean)
}

// returnVolatility is the population standard deviation of one-period returns
// over the last `window` intervals, skipping zero-denominator steps.
func returnVolatility(bars []models.Bar, window int) *float64 {
	n := len(bars)
	start := n - window
	if start < 1 {
		start = 1
	}
	var returns []float64
	for i := start; i < n; i++ {
		prev := bars[i-1].Close
		if prev == 0 {
			continue
		}
		returns = append(returns, (bars[i].Close-prev)/prev)
	}
	if len(returns) < 2 {
		return nil
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))
	return models.Float(math.Sqrt(variance))
}

// maxDrawdown is the largest peak-to-price decline over the whole series.
func maxDrawdown(bars []models.Bar) *float64 {
	if len(bars) == 0 {
		return nil
	}
	peak := bars[0].Close
	maxDD := 0.0
	for _, b := range bars {
		if b.Close > peak {
			peak = b.Close
		}
		if peak > 0 {
			if dd := (peak - b.Close) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return models.Float(maxDD)
}

package backend

import "math"

// Builtin computes the full indicator series set using elementary arithmetic.
// Every series has the same length as the input; positions where an indicator
// is undefined hold NaN and are treated as absent by callers. Builtin is
// always computed by the engine, whatever Resolve returned.
func Builtin(closes, highs, lows []float64) map[string][]float64 {
	n := len(closes)
	vals := make(map[string][]float64)
	if n == 0 {
		return vals
	}

	vals["ma_5"] = smaSeries(closes, 5)
	vals["ma_10"] = smaSeries(closes, 10)
	vals["ma_20"] = smaSeries(closes, 20)
	vals["ma_60"] = smaSeries(closes, 60)
	vals["rsi_14"] = rsiSeries(closes, 14)

	macd, signal, hist := macdSeries(closes, 12, 26, 9)
	vals["macd"] = macd
	vals["macd_signal"] = signal
	vals["macd_hist"] = hist

	upper, middle, lower := bollingerSeries(closes, 20, 2.0)
	vals["boll_upper"] = upper
	vals["boll_middle"] = middle
	vals["boll_lower"] = lower

	if len(highs) == n && len(lows) == n {
		k, d := stochSeries(highs, lows, closes, 9, 3)
		vals["stoch_k"] = k
		vals["stoch_d"] = d
		vals["atr_14"] = atrSeries(highs, lows, closes, 14)
	}
	return vals
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func smaSeries(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// emaSeries seeds from the first value, like the classic recursive form.
func emaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	multiplier := 2.0 / float64(period+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*multiplier + out[i-1]
	}
	return out
}

// rsiSeries uses average gain / average loss over a rolling window of the last
// `period` one-step changes. A zero average loss maps to 100.
func rsiSeries(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	for i := period; i < len(closes); i++ {
		var gains, losses float64
		for j := i - period + 1; j <= i; j++ {
			change := closes[j] - closes[j-1]
			if change >= 0 {
				gains += change
			} else {
				losses -= change
			}
		}
		avgGain := gains / float64(period)
		avgLoss := losses / float64(period)
		if avgLoss == 0 {
			out[i] = 100.0
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100.0 - (100.0 / (1.0 + rs))
	}
	return out
}

// macdSeries builds MACD via nested EMAs. The MACD line is considered defined
// from index slow-1 on; the signal line is an EMA over those defined values.
func macdSeries(closes []float64, fast, slow, signalPeriod int) ([]float64, []float64, []float64) {
	n := len(closes)
	macd := nanSlice(n)
	signal := nanSlice(n)
	hist := nanSlice(n)
	if n < slow {
		return macd, signal, hist
	}

	fastEMA := emaSeries(closes, fast)
	slowEMA := emaSeries(closes, slow)
	for i := slow - 1; i < n; i++ {
		macd[i] = fastEMA[i] - slowEMA[i]
	}

	multiplier := 2.0 / float64(signalPeriod+1)
	signal[slow-1] = macd[slow-1]
	for i := slow; i < n; i++ {
		signal[i] = (macd[i]-signal[i-1])*multiplier + signal[i-1]
	}
	for i := slow - 1; i < n; i++ {
		hist[i] = macd[i] - signal[i]
	}
	return macd, signal, hist
}

// bollingerSeries uses a rolling mean and population standard deviation.
func bollingerSeries(closes []float64, period int, width float64) ([]float64, []float64, []float64) {
	n := len(closes)
	upper := nanSlice(n)
	middle := nanSlice(n)
	lower := nanSlice(n)
	for i := period - 1; i < n; i++ {
		var sum float64
		for j := i - period + 1; j <= i; j++ {
			sum += closes[j]
		}
		mean := sum / float64(period)

		var variance float64
		for j := i - period + 1; j <= i; j++ {
			variance += (closes[j] - mean) * (closes[j] - mean)
		}
		sd := math.Sqrt(variance / float64(period))

		middle[i] = mean
		upper[i] = mean + width*sd
		lower[i] = mean - width*sd
	}
	return upper, middle, lower
}

// stochSeries computes %K over a rolling high/low window, smoothed, with %D as
// a further smoothing of %K. A flat window (no range) yields NaN.
func stochSeries(highs, lows, closes []float64, kPeriod, smooth int) ([]float64, []float64) {
	n := len(closes)
	raw := nanSlice(n)
	for i := kPeriod - 1; i < n; i++ {
		highest := highs[i]
		lowest := lows[i]
		for j := i - kPeriod + 1; j <= i; j++ {
			if highs[j] > highest {
				highest = highs[j]
			}
			if lows[j] < lowest {
				lowest = lows[j]
			}
		}
		if highest-lowest == 0 {
			continue
		}
		raw[i] = (closes[i] - lowest) / (highest - lowest) * 100.0
	}
	k := rollingMean(raw, smooth)
	d := rollingMean(k, smooth)
	return k, d
}

// rollingMean averages the trailing window, NaN when any member is NaN.
func rollingMean(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	for i := period - 1; i < len(values); i++ {
		var sum float64
		ok := true
		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				ok = false
				break
			}
			sum += values[j]
		}
		if ok {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// atrSeries averages the true range over the trailing window. True range needs
// a previous close, so the series is defined from index `period` on.
func atrSeries(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	out := nanSlice(n)
	if n < period+1 {
		return out
	}
	tr := nanSlice(n)
	for i := 1; i < n; i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	for i := period; i < n; i++ {
		var sum float64
		for j := i - period + 1; j <= i; j++ {
			sum += tr[j]
		}
		out[i] = sum / float64(period)
	}
	return out
}

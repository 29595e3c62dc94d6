package backend

import (
	"github.com/cinar/indicator"
)

// cinarCandidate computes the series set with the pure-Go cinar/indicator
// library. Its functions emit partial-window values from index zero, so the
// warmup region is re-padded with NaN the same way as for talib. Stochastic
// here is the library's 14,3 variant; per-key precedence in the engine still
// applies.
func cinarCandidate(closes, highs, lows []float64) (map[string][]float64, error) {
	n := len(closes)
	if n == 0 {
		return nil, nil
	}

	vals := make(map[string][]float64)

	for _, p := range []int{5, 10, 20, 60} {
		if n >= p {
			vals[maKey(p)] = nanWarmup(indicator.Sma(p, closes), p-1)
		}
	}
	if n >= 15 {
		_, rsi := indicator.Rsi(closes)
		vals["rsi_14"] = nanWarmup(rsi, 14)
	}
	if n >= 34 {
		macd, signal := indicator.Macd(closes)
		vals["macd"] = nanWarmup(macd, 33)
		vals["macd_signal"] = nanWarmup(signal, 33)
		hist := make([]float64, n)
		for i := range hist {
			hist[i] = macd[i] - signal[i]
		}
		vals["macd_hist"] = nanWarmup(hist, 33)
	}
	if n >= 20 {
		middle, upper, lower := indicator.BollingerBands(closes)
		vals["boll_upper"] = nanWarmup(upper, 19)
		vals["boll_middle"] = nanWarmup(middle, 19)
		vals["boll_lower"] = nanWarmup(lower, 19)
	}
	if len(highs) == n && len(lows) == n {
		if n >= 16 {
			k, d := indicator.StochasticOscillator(highs, lows, closes)
			vals["stoch_k"] = nanWarmup(k, 15)
			vals["stoch_d"] = nanWarmup(d, 15)
		}
		if n >= 15 {
			_, atr := indicator.Atr(14, highs, lows, closes)
			vals["atr_14"] = nanWarmup(atr, 14)
		}
	}
	return vals, nil
}

package backend

import (
	"math"

	talib "github.com/markcheno/go-talib"
)

// talibCandidate computes the series set with go-talib. The library pads the
// unstable warmup region with zeros, which is indistinguishable from a real
// value, so each output is re-padded with NaN over its known lookback.
func talibCandidate(closes, highs, lows []float64) (map[string][]float64, error) {
	n := len(closes)
	if n == 0 {
		return nil, nil
	}

	vals := make(map[string][]float64)

	for _, p := range []int{5, 10, 20, 60} {
		if n >= p {
			vals[maKey(p)] = nanWarmup(talib.Sma(closes, p), p-1)
		}
	}
	if n >= 15 {
		vals["rsi_14"] = nanWarmup(talib.Rsi(closes, 14), 14)
	}
	if n >= 34 {
		macd, signal, hist := talib.Macd(closes, 12, 26, 9)
		vals["macd"] = nanWarmup(macd, 33)
		vals["macd_signal"] = nanWarmup(signal, 33)
		vals["macd_hist"] = nanWarmup(hist, 33)
	}
	if n >= 20 {
		upper, middle, lower := talib.BBands(closes, 20, 2.0, 2.0, talib.SMA)
		vals["boll_upper"] = nanWarmup(upper, 19)
		vals["boll_middle"] = nanWarmup(middle, 19)
		vals["boll_lower"] = nanWarmup(lower, 19)
	}
	if len(highs) == n && len(lows) == n {
		if n >= 13 {
			k, d := talib.Stoch(highs, lows, closes, 9, 3, talib.SMA, 3, talib.SMA)
			vals["stoch_k"] = nanWarmup(k, 12)
			vals["stoch_d"] = nanWarmup(d, 12)
		}
		if n >= 15 {
			vals["atr_14"] = nanWarmup(talib.Atr(highs, lows, closes, 14), 14)
		}
	}
	return vals, nil
}

func maKey(period int) string {
	switch period {
	case 5:
		return "ma_5"
	case 10:
		return "ma_10"
	case 20:
		return "ma_20"
	default:
		return "ma_60"
	}
}

// nanWarmup copies series with the first `lookback` entries replaced by NaN.
func nanWarmup(series []float64, lookback int) []float64 {
	out := make([]float64, len(series))
	copy(out, series)
	if lookback > len(out) {
		lookback = len(out)
	}
	for i := 0; i < lookback; i++ {
		out[i] = math.NaN()
	}
	return out
}

// Package normalize turns loosely-typed bar records from a bar-fetching
// collaborator into strict, time-ascending OHLCV series.
package normalize

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"github.com/quantora/analyzer/models"
)

// Series validates and cleans raw bar records. Records with a missing or
// non-numeric OHLC field are dropped silently; volume stays optional. The
// result is sorted ascending by timestamp and owned by the caller.
func Series(raw []models.RawBar) []models.Bar {
	bars := make([]models.Bar, 0, len(raw))
	for _, r := range raw {
		ts, ok := coerceString(r.Ts)
		if !ok {
			continue
		}
		open, ok := coerceFloat(r.Open)
		if !ok {
			continue
		}
		high, ok := coerceFloat(r.High)
		if !ok {
			continue
		}
		low, ok := coerceFloat(r.Low)
		if !ok {
			continue
		}
		closePx, ok := coerceFloat(r.Close)
		if !ok {
			continue
		}

		bar := models.Bar{Ts: ts, Open: open, High: high, Low: low, Close: closePx}
		if vol, ok := coerceFloat(r.Volume); ok {
			bar.Volume = models.Float(vol)
		}
		bars = append(bars, bar)
	}

	// Oldest first for proper calculations.
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Ts < bars[j].Ts
	})
	return bars
}

func coerceString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		if t == "" {
			return "", false
		}
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}

func coerceFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Closes extracts the close series from bars.
func Closes(bars []models.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Highs extracts the high series from bars.
func Highs(bars []models.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low series from bars.
func Lows(bars []models.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}
	return out
}

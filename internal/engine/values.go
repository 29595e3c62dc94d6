package engine

import (
	"math"

	"github.com/quantora/analyzer/models"
)

// valueSource resolves indicator values with "first non-absent wins"
// precedence: the resolved backend's series when usable, else the builtin
// fallback computed for the same bars.
type valueSource struct {
	backend map[string][]float64
	builtin map[string][]float64
}

// last returns the latest value for key, preferring the backend.
func (s valueSource) last(key string) *float64 {
	if v := lastFinite(s.backend[key]); v != nil {
		return v
	}
	return lastFinite(s.builtin[key])
}

// series returns the full series for key, preferring a backend series whose
// latest value is usable.
func (s valueSource) series(key string) []float64 {
	if lastFinite(s.backend[key]) != nil {
		return s.backend[key]
	}
	return s.builtin[key]
}

func lastFinite(series []float64) *float64 {
	if len(series) == 0 {
		return nil
	}
	v := series[len(series)-1]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return models.Float(v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func countFinite(series []float64) int {
	n := 0
	for _, v := range series {
		if isFinite(v) {
			n++
		}
	}
	return n
}

// compactFinite drops NaN/Inf entries, preserving order.
func compactFinite(series []float64) []float64 {
	out := make([]float64, 0, len(series))
	for _, v := range series {
		if isFinite(v) {
			out = append(out, v)
		}
	}
	return out
}

func putValue(values map[string]float64, key string, v *float64) {
	if v != nil {
		values[key] = *v
	}
}

// Package backend selects a numeric computation strategy among ordered
// alternatives and exposes the elementary fallback math shared by the rest of
// the engine. Resolution is stateless per call: no availability caches, no
// cross-call interference under concurrent use.
package backend

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Candidate is one computation strategy. Fn returns the indicator series map
// keyed like Builtin's output, or an error when the strategy cannot serve.
type Candidate struct {
	Name string
	Fn   func(closes, highs, lows []float64) (map[string][]float64, error)
}

// DefaultCandidates returns the fixed priority order: the native
// high-performance library first, then the pure-Go analytics library.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Name: "talib", Fn: talibCandidate},
		{Name: "cinar", Fn: cinarCandidate},
	}
}

// Resolve tries candidates in order and returns the first non-empty value map
// together with the winning candidate's name. Failures degrade to the next
// candidate and surface only as warnings; when everything fails the caller
// proceeds on builtin values alone.
func Resolve(closes, highs, lows []float64, candidates []Candidate) (map[string][]float64, string, []string) {
	if candidates == nil {
		candidates = DefaultCandidates()
	}
	logger := log.With().Str("component", "indicator_backend").Logger()

	var warnings []string
	for _, cand := range candidates {
		vals, err := tryCandidate(cand, closes, highs, lows)
		if err != nil {
			logger.Debug().Str("backend", cand.Name).Err(err).Msg("Backend compute failed")
			warnings = append(warnings, fmt.Sprintf("%s_compute_failed:%v", cand.Name, err))
			continue
		}
		if len(vals) == 0 {
			logger.Debug().Str("backend", cand.Name).Msg("Backend returned no values")
			warnings = append(warnings, fmt.Sprintf("%s_unavailable_fallback", cand.Name))
			continue
		}
		return vals, cand.Name, warnings
	}

	warnings = append(warnings, "indicator_backend_builtin_fallback")
	return map[string][]float64{}, "builtin", warnings
}

// tryCandidate shields the resolver from panics inside a backend library.
func tryCandidate(c Candidate, closes, highs, lows []float64) (vals map[string][]float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			vals = nil
			err = fmt.Errorf("%v", r)
		}
	}()
	return c.Fn(closes, highs, lows)
}

// Package engine computes multi-timeframe technical analysis for a single
// instrument: per-timeframe trend/momentum/volume/pattern/level categories, a
// chronological signal timeline and a bounded strategy recommendation. All
// computation is synchronous and stateless; inputs are owned by the calling
// invocation.
package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/quantora/analyzer/internal/backend"
	"github.com/quantora/analyzer/internal/normalize"
	"github.com/quantora/analyzer/models"
)

// Request carries one analysis call. PriceSeries maps timeframe keys ("1d",
// "5m", ...) to raw bar records from a bar-fetching collaborator. Indicators
// is an informational hint: the engine always computes its full fixed set.
// TimeframeOrder, when set, fixes the timeframe ordering; otherwise "1d"
// leads and the remaining keys follow lexicographically.
type Request struct {
	Symbol         string
	Profile        string
	Indicators     []string
	TimeframeOrder []string
	PriceSeries    map[string][]models.RawBar
}

// Analyze runs the whole pipeline: normalize, per-timeframe analysis (in
// parallel), cross-timeframe merge and strategy scoring. It always returns a
// fully-typed result; degraded confidence surfaces only through warnings.
func Analyze(ctx context.Context, req Request) *models.IndicatorsResult {
	logger := log.With().Str("component", "engine").Str("symbol", req.Symbol).Logger()

	order := orderedTimeframes(req)
	logger.Debug().Strs("timeframes", order).Str("profile", req.Profile).Msg("Analyzing")

	results := make([]models.TimeframeResult, len(order))
	g, _ := errgroup.WithContext(ctx)
	for idx, tf := range order {
		idx, tf := idx, tf
		g.Go(func() error {
			bars := normalize.Series(req.PriceSeries[tf])
			results[idx] = analyzeTimeframe(tf, bars)
			return nil
		})
	}
	_ = g.Wait()

	return merge(req, order, results)
}

// orderedTimeframes resolves the deterministic timeframe order for a request.
func orderedTimeframes(req Request) []string {
	seen := make(map[string]bool)
	var order []string
	for _, k := range req.TimeframeOrder {
		if _, ok := req.PriceSeries[k]; ok && !seen[k] {
			order = append(order, k)
			seen[k] = true
		}
	}

	var rest []string
	for k := range req.PriceSeries {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	if len(order) == 0 {
		for i, k := range rest {
			if k == "1d" {
				rest = append(rest[:i], rest[i+1:]...)
				rest = append([]string{"1d"}, rest...)
				break
			}
		}
	}
	return append(order, rest...)
}

// analyzeTimeframe computes one TimeframeResult from a normalized series.
func analyzeTimeframe(tf string, bars []models.Bar) models.TimeframeResult {
	warnings := []string{}
	if len(bars) < 30 {
		warnings = append(warnings, fmt.Sprintf("insufficient_bars:%s", tf))
	}
	if len(bars) == 0 {
		return emptyResult(warnings)
	}

	closes := normalize.Closes(bars)
	highs := normalize.Highs(bars)
	lows := normalize.Lows(bars)

	backendVals, backendName, backendWarnings := backend.Resolve(closes, highs, lows, nil)
	warnings = append(warnings, backendWarnings...)

	src := valueSource{
		backend: backendVals,
		builtin: backend.Builtin(closes, highs, lows),
	}

	trend := computeTrend(bars, src)
	sr := computeLevels(bars)
	vp := computeVolumePrice(bars, src, sr)
	mom := computeMomentum(bars, src)
	pats := computePatterns(bars)

	asOf := bars[len(bars)-1].Ts
	return models.TimeframeResult{
		AsOf:              asOf,
		Backend:           backendName,
		Values:            snapshotValues(bars, src, vp, sr),
		Trend:             trend,
		Momentum:          mom,
		VolumePrice:       vp,
		Patterns:          pats,
		SupportResistance: sr,
		SignalTimeline:    buildTimeline(tf, asOf, trend, mom, vp, pats),
		Warnings:          warnings,
	}
}

func emptyResult(warnings []string) models.TimeframeResult {
	return models.TimeframeResult{
		AsOf:     time.Now().UTC().Format(time.RFC3339),
		Backend:  "builtin",
		Values:   map[string]float64{},
		Trend:    models.Trend{MAState: "mixed", MACDCross: "none", BollStatus: "unknown"},
		Momentum: models.Momentum{RSIStatus: "unknown", KDJStatus: "unknown", Divergence: "none"},
		Patterns: models.Patterns{Recent: []models.PatternHit{}},
		SupportResistance: models.SupportResistance{
			Supports:    []models.Level{},
			Resistances: []models.Level{},
			PivotMeta:   models.PivotMeta{Method: "swing_cluster", TouchCounts: map[string]int{}},
		},
		SignalTimeline: []models.SignalEvent{},
		Warnings:       warnings,
	}
}

// snapshotValues assembles the flat per-timeframe value map, backend value
// first then builtin per indicator.
func snapshotValues(bars []models.Bar, src valueSource, vp models.VolumePrice, sr models.SupportResistance) map[string]float64 {
	values := make(map[string]float64)
	values["close"] = bars[len(bars)-1].Close
	for _, key := range []string{"rsi_14", "macd", "macd_signal", "macd_hist", "ma_5", "ma_20", "ma_60", "atr_14"} {
		putValue(values, key, src.last(key))
	}
	putValue(values, "volatility_20", vp.Volatility)
	putValue(values, "max_drawdown", vp.MaxDrawdown)
	putValue(values, "volume_ratio", vp.VolumeRatio)
	if len(sr.Supports) > 0 {
		values["support_1"] = sr.Supports[0].Price
	}
	if len(sr.Resistances) > 0 {
		values["resistance_1"] = sr.Resistances[0].Price
	}
	return values
}

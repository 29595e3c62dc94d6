package engine

import (
	"sort"
	"time"

	"github.com/quantora/analyzer/internal/strategy"
	"github.com/quantora/analyzer/models"
)

// merge combines per-timeframe results into the root IndicatorsResult. Each
// category map is keyed by timeframe plus a "primary" alias ("1d" when
// present, else the first timeframe in order). The merge is a pure reduction.
func merge(req Request, order []string, results []models.TimeframeResult) *models.IndicatorsResult {
	res := &models.IndicatorsResult{
		Symbol:            req.Symbol,
		Values:            map[string]float64{},
		Trend:             map[string]models.Trend{},
		Momentum:          map[string]models.Momentum{},
		VolumePrice:       map[string]models.VolumePrice{},
		Patterns:          map[string]models.Patterns{},
		SupportResistance: map[string]models.SupportResistance{},
		SignalTimeline:    []models.SignalEvent{},
		Timeframes:        map[string]models.TimeframeResult{},
		Warnings:          []string{},
	}

	seenWarning := make(map[string]bool)
	for i, tf := range order {
		r := results[i]
		res.Timeframes[tf] = r
		res.Trend[tf] = r.Trend
		res.Momentum[tf] = r.Momentum
		res.VolumePrice[tf] = r.VolumePrice
		res.Patterns[tf] = r.Patterns
		res.SupportResistance[tf] = r.SupportResistance
		res.SignalTimeline = append(res.SignalTimeline, r.SignalTimeline...)
		for _, w := range r.Warnings {
			if !seenWarning[w] {
				seenWarning[w] = true
				res.Warnings = append(res.Warnings, w)
			}
		}
	}

	sort.SliceStable(res.SignalTimeline, func(i, j int) bool {
		a, b := res.SignalTimeline[i], res.SignalTimeline[j]
		if a.Ts != b.Ts {
			return a.Ts > b.Ts
		}
		if a.Timeframe != b.Timeframe {
			return a.Timeframe < b.Timeframe
		}
		return a.Signal < b.Signal
	})

	if len(order) == 0 {
		res.AsOf = time.Now().UTC().Format(time.RFC3339)
		res.Source = "builtin"
		res.Strategy = strategy.Score(strategy.Input{}, req.Profile)
		return res
	}

	primary := order[0]
	for _, tf := range order {
		if tf == "1d" {
			primary = "1d"
			break
		}
	}
	pr := res.Timeframes[primary]
	res.Trend["primary"] = pr.Trend
	res.Momentum["primary"] = pr.Momentum
	res.VolumePrice["primary"] = pr.VolumePrice
	res.Patterns["primary"] = pr.Patterns
	res.SupportResistance["primary"] = pr.SupportResistance
	res.Values = pr.Values
	res.AsOf = pr.AsOf
	res.Source = pr.Backend

	res.Strategy = strategy.Score(strategy.Input{
		Trend:             pr.Trend,
		Momentum:          pr.Momentum,
		VolumePrice:       pr.VolumePrice,
		Patterns:          pr.Patterns,
		SupportResistance: pr.SupportResistance,
	}, req.Profile)
	return res
}

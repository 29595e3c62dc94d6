package engine

import (
	"math"
	"sort"

	"github.com/quantora/analyzer/models"
)

// pattern scan depth and exposure cap
const (
	patternScanBars = 40
	patternRecent   = 8
)

// computePatterns scans the last patternScanBars bars for hammer, doji and
// engulfing candles. Bars with no high-low range are skipped. Hits come back
// most recent first, at most patternRecent of them.
func computePatterns(bars []models.Bar) models.Patterns {
	out := models.Patterns{Recent: []models.PatternHit{}}
	n := len(bars)
	if n == 0 {
		return out
	}
	start := 0
	if n > patternScanBars {
		start = n - patternScanBars
	}

	var hits []models.PatternHit
	for i := start; i < n; i++ {
		b := bars[i]
		rng := b.High - b.Low
		if rng <= 0 {
			continue
		}
		body := math.Abs(b.Close - b.Open)
		upperShadow := b.High - math.Max(b.Open, b.Close)
		lowerShadow := math.Min(b.Open, b.Close) - b.Low

		if lowerShadow >= 2*body && upperShadow <= 0.7*body && body/rng <= 0.45 {
			hits = append(hits, models.PatternHit{Ts: b.Ts, Name: "hammer", Direction: "bullish"})
		}
		if body/rng <= 0.08 {
			hits = append(hits, models.PatternHit{Ts: b.Ts, Name: "doji", Direction: "neutral"})
		}
		if i > 0 {
			prev := bars[i-1]
			if prev.Close < prev.Open && b.Close > b.Open &&
				b.Close >= prev.Open && b.Open <= prev.Close {
				hits = append(hits, models.PatternHit{Ts: b.Ts, Name: "bullish_engulfing", Direction: "bullish"})
			}
			if prev.Close > prev.Open && b.Close < b.Open &&
				b.Close <= prev.Open && b.Open >= prev.Close {
				hits = append(hits, models.PatternHit{Ts: b.Ts, Name: "bearish_engulfing", Direction: "bearish"})
			}
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Ts > hits[j].Ts })
	if len(hits) > patternRecent {
		hits = hits[:patternRecent]
	}
	out.Recent = append(out.Recent, hits...)
	return out
}

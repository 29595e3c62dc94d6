// Package strategy synthesizes the bounded directional recommendation from
// the primary timeframe's computed categories.
package strategy

import (
	"math"

	"github.com/quantora/analyzer/models"
)

// Input is the primary timeframe's category state.
type Input struct {
	Trend             models.Trend
	Momentum          models.Momentum
	VolumePrice       models.VolumePrice
	Patterns          models.Patterns
	SupportResistance models.SupportResistance
}

type weights struct {
	trend, momentum, volume, patterns, sr float64
}

var profileWeights = map[string]weights{
	"balanced": {trend: 0.30, momentum: 0.25, volume: 0.25, patterns: 0.10, sr: 0.10},
	"trend":    {trend: 0.45, momentum: 0.20, volume: 0.20, patterns: 0.05, sr: 0.10},
	"momentum": {trend: 0.20, momentum: 0.40, volume: 0.20, patterns: 0.10, sr: 0.10},
}

// Score combines the five component scores under the selected weighting
// profile. Unknown profiles fall back to balanced weights but keep their name
// in the output.
func Score(in Input, profile string) models.StrategyRecommendation {
	if profile == "" {
		profile = "balanced"
	}
	w, ok := profileWeights[profile]
	if !ok {
		w = profileWeights["balanced"]
	}

	components := map[string]float64{
		"trend":              trendScore(in.Trend),
		"momentum":           momentumScore(in.Momentum),
		"volume_price":       volumeScore(in.VolumePrice),
		"patterns":           patternScore(in.Patterns),
		"support_resistance": srScore(in.SupportResistance),
	}

	score := clip(components["trend"]*w.trend+
		components["momentum"]*w.momentum+
		components["volume_price"]*w.volume+
		components["patterns"]*w.patterns+
		components["support_resistance"]*w.sr, 0, 100)

	stance := "neutral"
	switch {
	case score >= 65:
		stance = "bullish"
	case score <= 35:
		stance = "bearish"
	}

	rec := models.StrategyRecommendation{
		Score:           score,
		Stance:          stance,
		PositionSize:    positionSize(stance, score),
		ComponentScores: components,
		Profile:         profile,
	}
	applyRiskLevels(&rec, in)
	return rec
}

func trendScore(t models.Trend) float64 {
	score := 50.0
	switch t.MAState {
	case "bullish":
		score += 20
	case "bearish":
		score -= 20
	}
	switch t.MACDCross {
	case "golden_cross":
		score += 15
	case "dead_cross":
		score -= 15
	}
	switch t.BollStatus {
	case "breakout_up":
		score += 10
	case "breakout_down":
		score -= 10
	case "revert_mid":
		score += 5
	}
	return clip(score, 0, 100)
}

func momentumScore(m models.Momentum) float64 {
	score := 50.0
	switch m.RSIStatus {
	case "oversold":
		score += 15
	case "overbought":
		score -= 15
	}
	switch m.KDJStatus {
	case "low_blunting":
		score += 10
	case "high_blunting":
		score -= 10
	}
	switch m.Divergence {
	case "bullish":
		score += 15
	case "bearish":
		score -= 15
	}
	return clip(score, 0, 100)
}

func volumeScore(vp models.VolumePrice) float64 {
	score := 50.0
	if vp.VolumeBreakout {
		score += 20
	}
	if vp.ShrinkPullback {
		score += 10
	}
	if vp.VolumeRatio != nil {
		switch {
		case *vp.VolumeRatio > 1.8:
			score += 10
		case *vp.VolumeRatio > 1.2:
			score += 5
		case *vp.VolumeRatio < 0.6:
			score -= 8
		}
	}
	return clip(score, 0, 100)
}

func patternScore(p models.Patterns) float64 {
	score := 50.0
	for i, hit := range p.Recent {
		if i == 5 {
			break
		}
		switch hit.Direction {
		case "bullish":
			score += 4
		case "bearish":
			score -= 4
		}
	}
	return clip(score, 0, 100)
}

func srScore(sr models.SupportResistance) float64 {
	score := 50.0
	if sr.CurrentPrice == nil || *sr.CurrentPrice == 0 {
		return score
	}
	closePx := *sr.CurrentPrice
	if len(sr.Supports) > 0 && math.Abs(closePx-sr.Supports[0].Price)/closePx <= 0.01 {
		score += 10
	}
	if len(sr.Resistances) > 0 && math.Abs(sr.Resistances[0].Price-closePx)/closePx <= 0.01 {
		score -= 10
	}
	return clip(score, 0, 100)
}

func positionSize(stance string, score float64) int {
	var size float64
	switch stance {
	case "bullish":
		size = clip(score, 55, 100)
	case "bearish":
		size = clip(score*0.8, 0, 30)
	default:
		size = 35 + ((score-35)/30)*20
	}
	return int(math.Round(clip(size, 0, 100)))
}

// applyRiskLevels derives the entry zone, stop loss and take profit from
// support/resistance first, ATR second, and a fixed percentage of the close
// as the last resort.
func applyRiskLevels(rec *models.StrategyRecommendation, in Input) {
	var closePx *float64
	if in.SupportResistance.CurrentPrice != nil {
		closePx = in.SupportResistance.CurrentPrice
	}
	atr := in.VolumePrice.ATR

	var anchor *float64
	if len(in.SupportResistance.Supports) > 0 {
		anchor = models.Float(in.SupportResistance.Supports[0].Price)
	} else if closePx != nil {
		anchor = closePx
	}
	if anchor != nil {
		rec.EntryZone = &models.EntryZone{
			Low:  *anchor * 0.995,
			High: *anchor * 1.005,
		}
	}

	switch {
	case len(in.SupportResistance.Supports) > 1:
		rec.StopLoss = models.Float(in.SupportResistance.Supports[1].Price * 0.99)
	case closePx != nil && atr != nil:
		rec.StopLoss = models.Float(*closePx - 2**atr)
	case closePx != nil:
		rec.StopLoss = models.Float(*closePx * 0.97)
	}

	switch {
	case len(in.SupportResistance.Resistances) > 0:
		rec.TakeProfit = models.Float(in.SupportResistance.Resistances[0].Price)
	case closePx != nil && atr != nil:
		rec.TakeProfit = models.Float(*closePx + 2.5**atr)
	case closePx != nil:
		rec.TakeProfit = models.Float(*closePx * 1.06)
	}
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

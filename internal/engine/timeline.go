package engine

import (
	"fmt"

	"github.com/quantora/analyzer/models"
)

// buildTimeline converts already-computed per-timeframe state into discrete
// timestamped events. Nothing is recomputed here; the emission order is fixed
// so output stays deterministic.
func buildTimeline(tf, asOf string, trend models.Trend, mom models.Momentum, vp models.VolumePrice, pats models.Patterns) []models.SignalEvent {
	events := []models.SignalEvent{}
	add := func(signal, direction, strength, evidence string) {
		events = append(events, models.SignalEvent{
			Ts:        asOf,
			Timeframe: tf,
			Signal:    signal,
			Direction: direction,
			Strength:  strength,
			Evidence:  evidence,
		})
	}

	switch trend.MAState {
	case "bullish", "bearish":
		add("ma_alignment", trend.MAState, "medium", fmt.Sprintf("ma_state=%s", trend.MAState))
	}

	switch trend.MACDCross {
	case "golden_cross":
		add("macd_cross", "bullish", "high", "golden_cross")
	case "dead_cross":
		add("macd_cross", "bearish", "high", "dead_cross")
	}

	switch trend.BollStatus {
	case "breakout_up":
		add("bollinger", "bullish", "medium", "breakout_up")
	case "breakout_down":
		add("bollinger", "bearish", "medium", "breakout_down")
	case "revert_mid":
		add("bollinger", "neutral", "medium", "revert_mid")
	}

	switch mom.RSIStatus {
	case "overbought":
		add("rsi_extreme", "bearish", "medium", fmt.Sprintf("rsi=%.2f", *mom.RSI))
	case "oversold":
		add("rsi_extreme", "bullish", "medium", fmt.Sprintf("rsi=%.2f", *mom.RSI))
	}

	switch mom.KDJStatus {
	case "high_blunting":
		add("kdj_blunting", "bearish", "medium", "high_blunting")
	case "low_blunting":
		add("kdj_blunting", "bullish", "medium", "low_blunting")
	}

	switch mom.Divergence {
	case "bullish", "bearish":
		add("divergence", mom.Divergence, "high", fmt.Sprintf("%s_divergence", mom.Divergence))
	}

	if vp.VolumeBreakout {
		add("volume_breakout", "bullish", "high", fmt.Sprintf("volume_ratio=%.2f", *vp.VolumeRatio))
	}
	if vp.ShrinkPullback {
		add("shrink_pullback", "bullish", "medium", fmt.Sprintf("volume_ratio=%.2f", *vp.VolumeRatio))
	}

	for i, hit := range pats.Recent {
		if i == 3 {
			break
		}
		events = append(events, models.SignalEvent{
			Ts:        hit.Ts,
			Timeframe: tf,
			Signal:    "pattern:" + hit.Name,
			Direction: hit.Direction,
			Strength:  "medium",
			Evidence:  hit.Name,
		})
	}
	return events
}

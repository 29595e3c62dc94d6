package strategy

import (
	"math"
	"testing"

	"github.com/quantora/analyzer/models"
)

func TestScoreBullishComposite(t *testing.T) {
	in := Input{
		Trend:    models.Trend{MAState: "bullish", MACDCross: "golden_cross", BollStatus: "breakout_up"},
		Momentum: models.Momentum{RSIStatus: "oversold", KDJStatus: "low_blunting", Divergence: "bullish"},
		VolumePrice: models.VolumePrice{
			VolumeBreakout: true,
			VolumeRatio:    models.Float(2.0),
			ATR:            models.Float(2.0),
		},
		Patterns: models.Patterns{Recent: []models.PatternHit{
			{Ts: "2024-03-01", Name: "hammer", Direction: "bullish"},
			{Ts: "2024-02-28", Name: "bullish_engulfing", Direction: "bullish"},
			{Ts: "2024-02-27", Name: "hammer", Direction: "bullish"},
		}},
		SupportResistance: models.SupportResistance{
			CurrentPrice: models.Float(100),
			Supports:     []models.Level{{Label: "S1", Price: 99.5, Touches: 3}},
		},
	}

	rec := Score(in, "balanced")

	// trend 95, momentum 90, volume 80, patterns 62, sr 60 under balanced
	// weights: 28.5 + 22.5 + 20 + 6.2 + 6 = 83.2.
	if math.Abs(rec.Score-83.2) > 1e-9 {
		t.Errorf("score = %v, want 83.2", rec.Score)
	}
	if rec.Stance != "bullish" {
		t.Errorf("stance = %q, want bullish", rec.Stance)
	}
	if rec.PositionSize != 83 {
		t.Errorf("position_size = %d, want 83", rec.PositionSize)
	}

	if rec.EntryZone == nil {
		t.Fatal("entry zone missing")
	}
	if math.Abs(rec.EntryZone.Low-99.5*0.995) > 1e-9 || math.Abs(rec.EntryZone.High-99.5*1.005) > 1e-9 {
		t.Errorf("entry zone = %+v, want band around S1", rec.EntryZone)
	}
	// Single support, so the stop falls through to the ATR rule and the
	// target to the ATR rule as well.
	if rec.StopLoss == nil || math.Abs(*rec.StopLoss-96.0) > 1e-9 {
		t.Errorf("stop_loss = %v, want 96", rec.StopLoss)
	}
	if rec.TakeProfit == nil || math.Abs(*rec.TakeProfit-105.0) > 1e-9 {
		t.Errorf("take_profit = %v, want 105", rec.TakeProfit)
	}
}

func TestScoreBearishComposite(t *testing.T) {
	in := Input{
		Trend:    models.Trend{MAState: "bearish", MACDCross: "dead_cross", BollStatus: "breakout_down"},
		Momentum: models.Momentum{RSIStatus: "overbought", KDJStatus: "high_blunting", Divergence: "bearish"},
		VolumePrice: models.VolumePrice{
			VolumeRatio: models.Float(0.5),
		},
		Patterns: models.Patterns{Recent: []models.PatternHit{
			{Ts: "2024-03-01", Name: "bearish_engulfing", Direction: "bearish"},
			{Ts: "2024-02-28", Name: "bearish_engulfing", Direction: "bearish"},
			{Ts: "2024-02-27", Name: "bearish_engulfing", Direction: "bearish"},
		}},
		SupportResistance: models.SupportResistance{
			CurrentPrice: models.Float(100),
			Resistances:  []models.Level{{Label: "R1", Price: 100.5, Touches: 2}},
		},
	}

	rec := Score(in, "balanced")

	// trend 5, momentum 10, volume 42, patterns 38, sr 40: 22.3.
	if math.Abs(rec.Score-22.3) > 1e-9 {
		t.Errorf("score = %v, want 22.3", rec.Score)
	}
	if rec.Stance != "bearish" {
		t.Errorf("stance = %q, want bearish", rec.Stance)
	}
	if rec.PositionSize != 18 {
		t.Errorf("position_size = %d, want 18", rec.PositionSize)
	}
	if rec.TakeProfit == nil || math.Abs(*rec.TakeProfit-100.5) > 1e-9 {
		t.Errorf("take_profit = %v, want R1 100.5", rec.TakeProfit)
	}
}

func TestScoreNeutralInput(t *testing.T) {
	rec := Score(Input{}, "")
	if rec.Profile != "balanced" {
		t.Errorf("profile = %q, want balanced", rec.Profile)
	}
	if math.Abs(rec.Score-50.0) > 1e-9 {
		t.Errorf("score = %v, want 50", rec.Score)
	}
	if rec.Stance != "neutral" {
		t.Errorf("stance = %q, want neutral", rec.Stance)
	}
	if rec.PositionSize != 45 {
		t.Errorf("position_size = %d, want 45", rec.PositionSize)
	}
	if rec.EntryZone != nil || rec.StopLoss != nil || rec.TakeProfit != nil {
		t.Errorf("risk levels should be absent without price context")
	}
	for name, v := range rec.ComponentScores {
		if v != 50 {
			t.Errorf("component %s = %v, want 50", name, v)
		}
	}
}

func TestUnknownProfileFallsBackToBalanced(t *testing.T) {
	in := Input{Trend: models.Trend{MAState: "bullish"}}
	exotic := Score(in, "exotic")
	balanced := Score(in, "balanced")

	if exotic.Profile != "exotic" {
		t.Errorf("profile = %q, want exotic kept in output", exotic.Profile)
	}
	if exotic.Score != balanced.Score {
		t.Errorf("unknown profile score = %v, balanced = %v, want equal", exotic.Score, balanced.Score)
	}
}

func TestProfileWeighting(t *testing.T) {
	// A trend-only edge should matter more under the trend profile than
	// under the momentum profile.
	in := Input{Trend: models.Trend{MAState: "bullish"}}
	trendScore := Score(in, "trend").Score
	momentumScore := Score(in, "momentum").Score
	if trendScore <= momentumScore {
		t.Errorf("trend profile = %v, momentum profile = %v, want trend higher", trendScore, momentumScore)
	}
	if math.Abs(trendScore-59.0) > 1e-9 {
		t.Errorf("trend profile score = %v, want 59", trendScore)
	}
	if math.Abs(momentumScore-54.0) > 1e-9 {
		t.Errorf("momentum profile score = %v, want 54", momentumScore)
	}
}

func TestPositionSizeBands(t *testing.T) {
	tests := []struct {
		stance string
		score  float64
		want   int
	}{
		{"bullish", 65, 65},
		{"bullish", 50, 55}, // clipped up to the bullish floor
		{"bullish", 100, 100},
		{"bearish", 35, 28},
		{"bearish", 0, 0},
		{"bearish", 60, 30}, // clipped down to the bearish ceiling
		{"neutral", 35, 35},
		{"neutral", 50, 45},
		{"neutral", 65, 55},
	}
	for _, tt := range tests {
		if got := positionSize(tt.stance, tt.score); got != tt.want {
			t.Errorf("positionSize(%q, %v) = %d, want %d", tt.stance, tt.score, got, tt.want)
		}
	}
}

func TestRiskLevelFallbacks(t *testing.T) {
	// Deep level book: stop from S2, target from R1, entry around S1.
	in := Input{
		SupportResistance: models.SupportResistance{
			CurrentPrice: models.Float(100),
			Supports: []models.Level{
				{Label: "S1", Price: 98, Touches: 2},
				{Label: "S2", Price: 95, Touches: 1},
			},
			Resistances: []models.Level{{Label: "R1", Price: 104, Touches: 2}},
		},
		VolumePrice: models.VolumePrice{ATR: models.Float(1.5)},
	}
	rec := Score(in, "balanced")
	if rec.StopLoss == nil || math.Abs(*rec.StopLoss-95*0.99) > 1e-9 {
		t.Errorf("stop_loss = %v, want S2*0.99", rec.StopLoss)
	}
	if rec.TakeProfit == nil || math.Abs(*rec.TakeProfit-104.0) > 1e-9 {
		t.Errorf("take_profit = %v, want R1", rec.TakeProfit)
	}
	if rec.EntryZone == nil || math.Abs(rec.EntryZone.Low-98*0.995) > 1e-9 {
		t.Errorf("entry zone = %+v, want band around S1", rec.EntryZone)
	}

	// No levels and no ATR: percentage fallbacks off the close.
	in = Input{
		SupportResistance: models.SupportResistance{CurrentPrice: models.Float(200)},
	}
	rec = Score(in, "balanced")
	if rec.StopLoss == nil || math.Abs(*rec.StopLoss-200*0.97) > 1e-9 {
		t.Errorf("stop_loss = %v, want close*0.97", rec.StopLoss)
	}
	if rec.TakeProfit == nil || math.Abs(*rec.TakeProfit-200*1.06) > 1e-9 {
		t.Errorf("take_profit = %v, want close*1.06", rec.TakeProfit)
	}
	if rec.EntryZone == nil || math.Abs(rec.EntryZone.High-200*1.005) > 1e-9 {
		t.Errorf("entry zone = %+v, want band around close", rec.EntryZone)
	}
}

func TestScoreAlwaysBounded(t *testing.T) {
	extremes := []Input{
		{
			Trend:    models.Trend{MAState: "bullish", MACDCross: "golden_cross", BollStatus: "breakout_up"},
			Momentum: models.Momentum{RSIStatus: "oversold", KDJStatus: "low_blunting", Divergence: "bullish"},
			VolumePrice: models.VolumePrice{
				VolumeBreakout: true, ShrinkPullback: true, VolumeRatio: models.Float(5),
			},
		},
		{
			Trend:    models.Trend{MAState: "bearish", MACDCross: "dead_cross", BollStatus: "breakout_down"},
			Momentum: models.Momentum{RSIStatus: "overbought", KDJStatus: "high_blunting", Divergence: "bearish"},
			VolumePrice: models.VolumePrice{
				VolumeRatio: models.Float(0.1),
			},
		},
	}
	for _, profile := range []string{"balanced", "trend", "momentum"} {
		for _, in := range extremes {
			rec := Score(in, profile)
			if rec.Score < 0 || rec.Score > 100 {
				t.Errorf("profile %s: score = %v, outside [0,100]", profile, rec.Score)
			}
			if rec.PositionSize < 0 || rec.PositionSize > 100 {
				t.Errorf("profile %s: position_size = %d, outside [0,100]", profile, rec.PositionSize)
			}
			for name, v := range rec.ComponentScores {
				if v < 0 || v > 100 {
					t.Errorf("profile %s: component %s = %v, outside [0,100]", profile, name, v)
				}
			}
		}
	}
}

package models

// RawBar is a single bar record as delivered by a bar-fetching collaborator.
// Field values are loosely typed (float64, int, json.Number or numeric string);
// normalization drops records whose OHLC cannot be coerced.
type RawBar struct {
	Ts     any `json:"ts"`
	Open   any `json:"open"`
	High   any `json:"high"`
	Low    any `json:"low"`
	Close  any `json:"close"`
	Volume any `json:"volume,omitempty"`
}

// Bar is a validated OHLCV bar. Volume is nil when the source had none.
// Bars are immutable after normalization.
type Bar struct {
	Ts     string   `json:"ts"`
	Open   float64  `json:"open"`
	High   float64  `json:"high"`
	Low    float64  `json:"low"`
	Close  float64  `json:"close"`
	Volume *float64 `json:"volume,omitempty"`
}

// Trend holds moving-average, MACD and Bollinger state for one timeframe.
// Nil pointers mean the indicator could not be computed from the available bars.
type Trend struct {
	MA5        *float64 `json:"ma_5,omitempty"`
	MA10       *float64 `json:"ma_10,omitempty"`
	MA20       *float64 `json:"ma_20,omitempty"`
	MA60       *float64 `json:"ma_60,omitempty"`
	MAState    string   `json:"ma_state"`
	MACD       *float64 `json:"macd,omitempty"`
	MACDSignal *float64 `json:"macd_signal,omitempty"`
	MACDHist   *float64 `json:"macd_hist,omitempty"`
	MACDCross  string   `json:"macd_cross"`
	BollUpper  *float64 `json:"boll_upper,omitempty"`
	BollMiddle *float64 `json:"boll_middle,omitempty"`
	BollLower  *float64 `json:"boll_lower,omitempty"`
	BollStatus string   `json:"boll_status"`
}

// Momentum holds RSI, KDJ and divergence state for one timeframe.
type Momentum struct {
	RSI        *float64 `json:"rsi_14,omitempty"`
	RSIStatus  string   `json:"rsi_status"`
	K          *float64 `json:"kdj_k,omitempty"`
	D          *float64 `json:"kdj_d,omitempty"`
	J          *float64 `json:"kdj_j,omitempty"`
	KDJStatus  string   `json:"kdj_status"`
	Divergence string   `json:"divergence"`
}

// VolumePrice holds volume/price interaction metrics for one timeframe.
type VolumePrice struct {
	VolumeRatio    *float64 `json:"volume_ratio,omitempty"`
	ShrinkPullback bool     `json:"shrink_pullback"`
	VolumeBreakout bool     `json:"volume_breakout"`
	ATR            *float64 `json:"atr_14,omitempty"`
	Volatility     *float64 `json:"volatility_20,omitempty"`
	MaxDrawdown    *float64 `json:"max_drawdown,omitempty"`
}

// PatternHit is one detected candlestick pattern.
type PatternHit struct {
	Ts        string `json:"ts"`
	Name      string `json:"name"`
	Direction string `json:"direction"`
}

// Patterns lists detected candlestick patterns, most recent first, capped at 8.
type Patterns struct {
	Recent []PatternHit `json:"recent"`
}

// Level is one clustered support or resistance level.
type Level struct {
	Label   string  `json:"label"`
	Price   float64 `json:"price"`
	Touches int     `json:"touches"`
}

// PivotMeta describes how support/resistance levels were derived.
type PivotMeta struct {
	Method      string         `json:"method"`
	TouchCounts map[string]int `json:"touch_counts"`
}

// SupportResistance holds clustered pivot levels around the current price.
// Supports are strictly below the current price sorted descending, resistances
// strictly above sorted ascending, at most three of each.
type SupportResistance struct {
	Supports     []Level   `json:"supports"`
	Resistances  []Level   `json:"resistances"`
	CurrentPrice *float64  `json:"current_price,omitempty"`
	PivotMeta    PivotMeta `json:"pivot_meta"`
}

// SignalEvent is one discrete timestamped signal derived from computed state.
type SignalEvent struct {
	Ts        string `json:"ts"`
	Timeframe string `json:"timeframe"`
	Signal    string `json:"signal"`
	Direction string `json:"direction"` // bullish, bearish, neutral
	Strength  string `json:"strength"`  // low, medium, high
	Evidence  string `json:"evidence"`
}

// TimeframeResult is the full analysis of a single timeframe.
type TimeframeResult struct {
	AsOf              string             `json:"as_of"`
	Backend           string             `json:"backend"`
	Values            map[string]float64 `json:"values"`
	Trend             Trend              `json:"trend"`
	Momentum          Momentum           `json:"momentum"`
	VolumePrice       VolumePrice        `json:"volume_price"`
	Patterns          Patterns           `json:"patterns"`
	SupportResistance SupportResistance  `json:"support_resistance"`
	SignalTimeline    []SignalEvent      `json:"signal_timeline"`
	Warnings          []string           `json:"warnings"`
}

// EntryZone is a price band around the suggested entry level.
type EntryZone struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// StrategyRecommendation is the bounded directional recommendation derived
// from the primary timeframe's categories.
type StrategyRecommendation struct {
	Score           float64            `json:"score"`
	Stance          string             `json:"stance"` // bullish, neutral, bearish
	PositionSize    int                `json:"position_size"`
	EntryZone       *EntryZone         `json:"entry_zone,omitempty"`
	StopLoss        *float64           `json:"stop_loss,omitempty"`
	TakeProfit      *float64           `json:"take_profit,omitempty"`
	ComponentScores map[string]float64 `json:"component_scores"`
	Profile         string             `json:"profile"`
}

// IndicatorsResult is the root result returned to the caller. Category maps
// are keyed by timeframe plus a "primary" alias.
type IndicatorsResult struct {
	Symbol            string                       `json:"symbol"`
	AsOf              string                       `json:"as_of"`
	Source            string                       `json:"source"`
	Values            map[string]float64           `json:"values"`
	Trend             map[string]Trend             `json:"trend"`
	Momentum          map[string]Momentum          `json:"momentum"`
	VolumePrice       map[string]VolumePrice       `json:"volume_price"`
	Patterns          map[string]Patterns          `json:"patterns"`
	SupportResistance map[string]SupportResistance `json:"support_resistance"`
	SignalTimeline    []SignalEvent                `json:"signal_timeline"`
	Timeframes        map[string]TimeframeResult   `json:"timeframes"`
	Strategy          StrategyRecommendation       `json:"strategy"`
	Warnings          []string                     `json:"warnings"`
}

// PeerRow is the aligned metric set for one symbol in a peer comparison.
type PeerRow struct {
	Symbol  string             `json:"symbol"`
	Metrics map[string]float64 `json:"metrics"`
}

// PeerComparison is the result of comparing a target symbol against peers.
type PeerComparison struct {
	Target   string    `json:"target"`
	Rows     []PeerRow `json:"rows"`
	Warnings []string  `json:"warnings"`
}

// Float returns a pointer to v. Convenience for optional numeric fields.
func Float(v float64) *float64 {
	return &v
}

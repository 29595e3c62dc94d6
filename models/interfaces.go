package models

import "context"

// Fundamentals is the metric set returned by a fundamentals collaborator.
// Absent metrics are simply missing keys.
type Fundamentals struct {
	Metrics map[string]float64 `json:"metrics"`
}

// FundamentalsClient fetches fundamental metrics for a symbol. Timeout and
// retry policy belong to the implementation, not to the callers.
type FundamentalsClient interface {
	FetchFundamentals(ctx context.Context, symbol, market string) (*Fundamentals, error)
}

// Package analyzer is the public facade over the multi-timeframe technical
// analysis engine and the peer comparator.
package analyzer

import (
	"context"

	"github.com/quantora/analyzer/internal/engine"
	"github.com/quantora/analyzer/internal/peers"
	"github.com/quantora/analyzer/models"
)

// Request is one analysis call; see engine.Request.
type Request = engine.Request

// Analyze computes indicators, signal timeline and strategy for one
// instrument across one or more timeframes. It never returns an error: data
// problems surface as warnings inside the result.
func Analyze(ctx context.Context, req Request) *models.IndicatorsResult {
	return engine.Analyze(ctx, req)
}

// ComparePeers aligns fundamental metrics across a target and its peers using
// the given collaborator. Pass nil metrics for the default set.
func ComparePeers(ctx context.Context, client models.FundamentalsClient, target string, peerList []string, market string, metrics []string) *models.PeerComparison {
	return peers.Compare(ctx, client, target, peerList, market, metrics)
}

// Package peers fetches and aligns a fixed fundamental metric set across a
// target symbol and its peer list.
package peers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/quantora/analyzer/models"
)

// DefaultMetrics is the metric set requested when the caller passes none.
var DefaultMetrics = []string{"market_cap", "trailing_pe", "revenue", "net_income", "net_margin"}

// Compare fetches fundamentals for the target and every peer concurrently.
// A fetch failure for any single symbol becomes a warning and its row is
// skipped; the batch never aborts. Rows keep target-first, then input order.
func Compare(ctx context.Context, client models.FundamentalsClient, target string, peerList []string, market string, metrics []string) *models.PeerComparison {
	logger := log.With().Str("component", "peer_comparator").Str("target", target).Logger()

	if len(metrics) == 0 {
		metrics = DefaultMetrics
	}

	result := &models.PeerComparison{
		Target:   target,
		Rows:     []models.PeerRow{},
		Warnings: []string{},
	}
	if len(peerList) == 0 {
		result.Warnings = append(result.Warnings, "peer_list_missing")
	}

	symbols := append([]string{target}, peerList...)
	fetched := make([]*models.Fundamentals, len(symbols))
	errs := make([]error, len(symbols))

	// One independently-cancellable fetch per symbol; a hung peer must not
	// block the others.
	g, gctx := errgroup.WithContext(ctx)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			fetched[i], errs[i] = client.FetchFundamentals(gctx, symbol, market)
			return nil
		})
	}
	_ = g.Wait()

	for i, symbol := range symbols {
		if errs[i] != nil {
			logger.Warn().Str("symbol", symbol).Err(errs[i]).Msg("Peer fetch failed")
			result.Warnings = append(result.Warnings, fmt.Sprintf("peer_compare_failed:%s:%v", symbol, errs[i]))
			continue
		}
		result.Rows = append(result.Rows, alignRow(symbol, fetched[i], metrics))
	}
	return result
}

// alignRow projects the fetched metrics onto the requested set. net_margin is
// derived from net_income/revenue when the collaborator did not supply it and
// revenue is non-zero.
func alignRow(symbol string, f *models.Fundamentals, metrics []string) models.PeerRow {
	row := models.PeerRow{Symbol: symbol, Metrics: map[string]float64{}}
	if f == nil {
		return row
	}
	for _, m := range metrics {
		if v, ok := f.Metrics[m]; ok {
			row.Metrics[m] = v
			continue
		}
		if m == "net_margin" {
			income, okIncome := f.Metrics["net_income"]
			revenue, okRevenue := f.Metrics["revenue"]
			if okIncome && okRevenue && revenue != 0 {
				row.Metrics[m] = income / revenue
			}
		}
	}
	return row
}

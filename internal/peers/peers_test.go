package peers

import (
	"context"
	"errors"
	"testing"

	"github.com/quantora/analyzer/models"
)

// stubClient serves canned fundamentals per symbol and fails the rest.
type stubClient struct {
	data map[string]map[string]float64
}

func (c *stubClient) FetchFundamentals(ctx context.Context, symbol, market string) (*models.Fundamentals, error) {
	metrics, ok := c.data[symbol]
	if !ok {
		return nil, errors.New("boom")
	}
	return &models.Fundamentals{Metrics: metrics}, nil
}

func TestCompareSkipsFailedPeer(t *testing.T) {
	client := &stubClient{data: map[string]map[string]float64{
		"TGT": {"market_cap": 1e9, "trailing_pe": 20},
		"A":   {"market_cap": 5e8, "trailing_pe": 15},
	}}

	res := Compare(context.Background(), client, "TGT", []string{"A", "B"}, "us", nil)

	if len(res.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(res.Rows))
	}
	if res.Rows[0].Symbol != "TGT" || res.Rows[1].Symbol != "A" {
		t.Errorf("row order = [%s, %s], want target first then input order", res.Rows[0].Symbol, res.Rows[1].Symbol)
	}

	want := "peer_compare_failed:B:boom"
	found := false
	for _, w := range res.Warnings {
		if w == want {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, missing %q", res.Warnings, want)
	}
}

func TestCompareEmptyPeerList(t *testing.T) {
	client := &stubClient{data: map[string]map[string]float64{
		"TGT": {"market_cap": 1e9},
	}}

	res := Compare(context.Background(), client, "TGT", nil, "us", nil)

	if len(res.Warnings) == 0 || res.Warnings[0] != "peer_list_missing" {
		t.Errorf("warnings = %v, want peer_list_missing", res.Warnings)
	}
	// The target row is still produced.
	if len(res.Rows) != 1 || res.Rows[0].Symbol != "TGT" {
		t.Errorf("rows = %v, want just the target", res.Rows)
	}
}

func TestCompareDerivesNetMargin(t *testing.T) {
	client := &stubClient{data: map[string]map[string]float64{
		"TGT": {"revenue": 200, "net_income": 50},
		"A":   {"revenue": 0, "net_income": 10},
		"B":   {"revenue": 100, "net_income": 20, "net_margin": 0.5},
	}}

	res := Compare(context.Background(), client, "TGT", []string{"A", "B"}, "us", nil)

	bySymbol := map[string]models.PeerRow{}
	for _, row := range res.Rows {
		bySymbol[row.Symbol] = row
	}

	if got := bySymbol["TGT"].Metrics["net_margin"]; got != 0.25 {
		t.Errorf("derived net_margin = %v, want 0.25", got)
	}
	if _, ok := bySymbol["A"].Metrics["net_margin"]; ok {
		t.Errorf("net_margin derived despite zero revenue")
	}
	// A provided net_margin always wins over the derivation.
	if got := bySymbol["B"].Metrics["net_margin"]; got != 0.5 {
		t.Errorf("net_margin = %v, want provided 0.5", got)
	}
}

func TestCompareProjectsRequestedMetrics(t *testing.T) {
	client := &stubClient{data: map[string]map[string]float64{
		"TGT": {"market_cap": 1e9, "trailing_pe": 20, "extra_metric": 7},
		"A":   {"market_cap": 5e8},
	}}

	res := Compare(context.Background(), client, "TGT", []string{"A"}, "us", []string{"market_cap"})

	for _, row := range res.Rows {
		if len(row.Metrics) != 1 {
			t.Errorf("%s metrics = %v, want only market_cap", row.Symbol, row.Metrics)
		}
		if _, ok := row.Metrics["market_cap"]; !ok {
			t.Errorf("%s missing market_cap", row.Symbol)
		}
	}
}

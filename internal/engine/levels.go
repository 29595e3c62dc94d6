package engine

import (
	"fmt"
	"sort"

	"github.com/quantora/analyzer/models"
)

type levelCluster struct {
	price   float64
	touches int
}

// computeLevels detects swing pivots over the full series, clusters nearby
// pivots within 0.5% of the current close, and keeps the three strongest
// levels strictly below (supports) and above (resistances) the close.
func computeLevels(bars []models.Bar) models.SupportResistance {
	sr := models.SupportResistance{
		Supports:    []models.Level{},
		Resistances: []models.Level{},
		PivotMeta:   models.PivotMeta{Method: "swing_cluster", TouchCounts: map[string]int{}},
	}
	if len(bars) == 0 {
		return sr
	}

	closePx := bars[len(bars)-1].Close
	sr.CurrentPrice = models.Float(closePx)

	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	for i, b := range bars {
		highs[i] = b.High
		lows[i] = b.Low
	}

	tolerance := 0.005 * closePx
	highClusters := clusterPrices(pivotValues(highs, true), tolerance)
	lowClusters := clusterPrices(pivotValues(lows, false), tolerance)

	var supports, resistances []levelCluster
	for _, c := range lowClusters {
		if c.price < closePx {
			supports = append(supports, c)
		}
	}
	for _, c := range highClusters {
		if c.price > closePx {
			resistances = append(resistances, c)
		}
	}

	sort.Slice(supports, func(i, j int) bool { return supports[i].price > supports[j].price })
	sort.Slice(resistances, func(i, j int) bool { return resistances[i].price < resistances[j].price })

	for i, c := range supports {
		if i == 3 {
			break
		}
		label := fmt.Sprintf("S%d", i+1)
		sr.Supports = append(sr.Supports, models.Level{Label: label, Price: c.price, Touches: c.touches})
		sr.PivotMeta.TouchCounts[label] = c.touches
	}
	for i, c := range resistances {
		if i == 3 {
			break
		}
		label := fmt.Sprintf("R%d", i+1)
		sr.Resistances = append(sr.Resistances, models.Level{Label: label, Price: c.price, Touches: c.touches})
		sr.PivotMeta.TouchCounts[label] = c.touches
	}
	return sr
}

// clusterPrices groups sorted pivot prices so every member of a cluster lies
// within tolerance of the first. Cluster price is the member mean, touches the
// member count.
func clusterPrices(prices []float64, tolerance float64) []levelCluster {
	if len(prices) == 0 {
		return nil
	}
	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	var clusters []levelCluster
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && sorted[i]-sorted[start] <= tolerance {
			continue
		}
		var sum float64
		for _, p := range sorted[start:i] {
			sum += p
		}
		clusters = append(clusters, levelCluster{
			price:   sum / float64(i-start),
			touches: i - start,
		})
		start = i
	}
	return clusters
}

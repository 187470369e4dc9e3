package analyzers

import (
	"fmt"
	"math"

	"github.com/leakwatch/leakage-engine/internal/dataset"
	"github.com/leakwatch/leakage-engine/internal/models"
)

// pricingCVThreshold is the coefficient of variation (percent) above which a
// product's pricing counts as inconsistent.
const pricingCVThreshold = 20.0

// PricingInconsistency groups transactions by product and flags products whose
// unit revenue varies too widely, estimating the leakage from the transactions
// priced below the upper band.
type PricingInconsistency struct{}

// NewPricingInconsistency constructs the analyzer.
func NewPricingInconsistency() *PricingInconsistency { return &PricingInconsistency{} }

// Name identifies the analyzer in logs and metrics.
func (a *PricingInconsistency) Name() string { return "pricing_inconsistency" }

// Analyze emits at most one finding covering all inconsistent products. The
// first product column and first numeric revenue column are paired.
func (a *PricingInconsistency) Analyze(ds *dataset.Dataset, roles models.ColumnRoles) []models.Finding {
	productName := roles.First(models.RoleProduct)
	if productName == "" {
		return nil
	}
	product, ok := ds.Column(productName)
	if !ok {
		return nil
	}
	revenue, ok := firstNumeric(ds, roles, models.RoleRevenue)
	if !ok {
		return nil
	}

	groups, order := groupValues(ds, product, revenue)

	inconsistent := 0
	estimatedLoss := 0.0
	affected := 0
	for _, key := range order {
		values := groups[key]
		n := len(values)
		if n <= 2 {
			continue
		}
		mean, std := meanStd(values)
		if mean <= 0 {
			continue
		}
		cv := std / mean * 100
		if cv <= pricingCVThreshold {
			continue
		}
		inconsistent++
		affected += n
		// Treat mean + 0.5 sigma as the achievable price point.
		estimatedLoss += 0.5 * std * float64(n)
	}
	if inconsistent == 0 {
		return nil
	}

	return []models.Finding{{
		ID:     findingID(),
		Type:   models.TypePricingInconsistency,
		Column: fmt.Sprintf("%s, %s", productName, revenue.Name()),
		Description: fmt.Sprintf(
			"Found %d products with inconsistent pricing (>%.0f%% price variation). Revenue leakage from underpricing some transactions.",
			inconsistent, pricingCVThreshold),
		Amount:       math.Max(estimatedLoss, 0),
		Severity:     models.SeverityMedium,
		Category:     models.CategoryPricingStrategy,
		Status:       models.StatusActive,
		AffectedRows: affected,
		Recommendation: "Standardize pricing across channels, publish a centralized price list, and train sales staff on consistent pricing policies.",
	}}
}

// groupValues buckets the non-missing revenue values by group key in
// first-seen order.
func groupValues(ds *dataset.Dataset, key dataset.Column, values dataset.Numeric) (map[string][]float64, []string) {
	groups := make(map[string][]float64)
	var order []string
	for i := 0; i < ds.RowCount(); i++ {
		k, ok := key.StringAt(i)
		if !ok {
			continue
		}
		v := values.At(i)
		if math.IsNaN(v) {
			continue
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], v)
	}
	return groups, order
}

// meanStd returns the mean and population standard deviation of values.
func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(variance / float64(len(values)))
}

package analyzers

import (
	"fmt"
	"math"

	"github.com/leakwatch/leakage-engine/internal/dataset"
	"github.com/leakwatch/leakage-engine/internal/models"
)

// negativeOverhead inflates the raw negative-revenue sum to cover processing
// and chargeback costs (fixed 25% uplift).
const negativeOverhead = 1.25

// NegativeRevenue flags transactions whose revenue is below zero and, as a
// data-quality signal, transactions recorded with zero revenue.
type NegativeRevenue struct{}

// NewNegativeRevenue constructs the analyzer.
func NewNegativeRevenue() *NegativeRevenue { return &NegativeRevenue{} }

// Name identifies the analyzer in logs and metrics.
func (a *NegativeRevenue) Name() string { return "negative_revenue" }

// Analyze emits one finding per revenue column containing negatives, plus a
// zero-revenue finding per column where prices are missing entirely.
func (a *NegativeRevenue) Analyze(ds *dataset.Dataset, roles models.ColumnRoles) []models.Finding {
	rows := ds.RowCount()
	var findings []models.Finding

	for _, col := range roles.Columns(models.RoleRevenue) {
		num, ok := ds.Numeric(col)
		if !ok {
			continue
		}

		negCount := num.CountWhere(func(v float64) bool { return v < 0 })
		if negCount > 0 {
			negSum := math.Abs(num.SumWhere(func(v float64) bool { return v < 0 }))
			affectedPct := percent(negCount, rows)
			impact := negSum * negativeOverhead

			severity := models.SeverityMedium
			switch {
			case affectedPct > 10:
				severity = models.SeverityCritical
			case affectedPct > 5:
				severity = models.SeverityHigh
			}

			findings = append(findings, models.Finding{
				ID:     findingID(),
				Type:   models.TypeNegativeRevenue,
				Column: col,
				Description: fmt.Sprintf(
					"Found %d transactions with negative revenue in '%s' (%.1f%% of all transactions). This indicates refunds, chargebacks, or data errors directly reducing revenue.",
					negCount, col, affectedPct),
				Amount:       impact,
				Severity:     severity,
				Category:     models.CategoryRevenueLoss,
				Status:       models.StatusActive,
				AffectedRows: negCount,
				Recommendation: fmt.Sprintf(
					"Investigate these %d transactions immediately. Analyze refund root causes or correct data errors, and add validation rules to prevent recurrence.",
					negCount),
			})
		}

		zeroCount := num.CountWhere(func(v float64) bool { return v == 0 })
		if zeroCount > 0 {
			findings = append(findings, models.Finding{
				ID:     findingID(),
				Type:   models.TypeZeroRevenue,
				Column: col,
				Description: fmt.Sprintf(
					"Found %d transactions with zero revenue in '%s' - missing pricing or free items.",
					zeroCount, col),
				Amount:       0,
				Severity:     models.SeverityMedium,
				Category:     models.CategoryPricingIssue,
				Status:       models.StatusActive,
				AffectedRows: zeroCount,
				Recommendation: "Verify whether zero-revenue rows are intentional giveaways or missing prices, and require a price on every recorded sale.",
			})
		}
	}
	return findings
}

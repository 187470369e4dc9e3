package analyzers

import (
	"fmt"
	"math"

	"github.com/leakwatch/leakage-engine/internal/dataset"
	"github.com/leakwatch/leakage-engine/internal/models"
)

const (
	// discountPctThreshold is the share of revenue above which total
	// discounting is flagged outright.
	discountPctThreshold = 15.0
	// discountSeverePct escalates the finding to high severity.
	discountSeverePct = 20.0
)

// ExcessiveDiscounts flags discount columns whose totals erode too much
// revenue, or that contain an unusual density of outsized individual
// discounts.
type ExcessiveDiscounts struct{}

// NewExcessiveDiscounts constructs the analyzer.
func NewExcessiveDiscounts() *ExcessiveDiscounts { return &ExcessiveDiscounts{} }

// Name identifies the analyzer in logs and metrics.
func (a *ExcessiveDiscounts) Name() string { return "excessive_discounts" }

// Analyze emits at most one finding per discount column. The discount share is
// measured against the first numeric revenue column when one exists.
func (a *ExcessiveDiscounts) Analyze(ds *dataset.Dataset, roles models.ColumnRoles) []models.Finding {
	rows := ds.RowCount()
	var findings []models.Finding

	revenue, hasRevenue := firstNumeric(ds, roles, models.RoleRevenue)

	for _, col := range roles.Columns(models.RoleDiscount) {
		num, ok := ds.Numeric(col)
		if !ok {
			continue
		}

		total := num.AbsSum()
		if total <= 0 {
			continue
		}

		mean := num.Mean()
		highCount := num.CountWhere(func(v float64) bool {
			return math.Abs(v) > math.Abs(mean)*2
		})

		discountPct := 0.0
		if hasRevenue {
			if revTotal := revenue.Sum(); revTotal > 0 {
				discountPct = total / revTotal * 100
			}
		}

		if discountPct <= discountPctThreshold && float64(highCount) <= float64(rows)*0.1 {
			continue
		}

		severity := models.SeverityMedium
		if discountPct > discountSeverePct {
			severity = models.SeverityHigh
		}

		description := fmt.Sprintf("Total discounts: $%.2f", total)
		if discountPct > 0 {
			description += fmt.Sprintf(" (%.1f%% of revenue)", discountPct)
		}
		description += fmt.Sprintf(
			". Found %d unusually high discounts. Excessive discounting erodes margins and trains customers to wait for sales.",
			highCount)

		findings = append(findings, models.Finding{
			ID:           findingID(),
			Type:         models.TypeExcessiveDiscounts,
			Column:       col,
			Description:  description,
			Amount:       total,
			Severity:     severity,
			Category:     models.CategoryPricingStrategy,
			Status:       models.StatusActive,
			AffectedRows: highCount,
			Recommendation: fmt.Sprintf(
				"Cap discounts at 15%% and require manager approval above 10%%. Prefer tiered pricing or bundle deals. Potential savings: $%.2f",
				total*0.3),
		})
	}
	return findings
}

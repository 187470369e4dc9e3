package analyzers

import (
	"fmt"

	"github.com/leakwatch/leakage-engine/internal/dataset"
	"github.com/leakwatch/leakage-engine/internal/models"
)

// costOutlierSigma is the deviation multiple beyond which a cost entry is an
// outlier.
const costOutlierSigma = 3.0

// ExcessiveCosts flags cost entries sitting more than three standard
// deviations above the column mean.
type ExcessiveCosts struct{}

// NewExcessiveCosts constructs the analyzer.
func NewExcessiveCosts() *ExcessiveCosts { return &ExcessiveCosts{} }

// Name identifies the analyzer in logs and metrics.
func (a *ExcessiveCosts) Name() string { return "excessive_costs" }

// Analyze emits one finding per cost column containing outliers. The amount is
// the full value of the outlying entries.
func (a *ExcessiveCosts) Analyze(ds *dataset.Dataset, roles models.ColumnRoles) []models.Finding {
	var findings []models.Finding

	for _, col := range roles.Columns(models.RoleCost) {
		num, ok := ds.Numeric(col)
		if !ok || num.Count() == 0 {
			continue
		}

		mean := num.Mean()
		cutoff := mean + costOutlierSigma*num.StdDev()
		outliers := num.CountWhere(func(v float64) bool { return v > cutoff })
		if outliers == 0 {
			continue
		}
		outlierSum := num.SumWhere(func(v float64) bool { return v > cutoff })

		findings = append(findings, models.Finding{
			ID:     findingID(),
			Type:   models.TypeExcessiveCosts,
			Column: col,
			Description: fmt.Sprintf(
				"Found %d transactions with unusually high costs in '%s' (avg: $%.2f, max: $%.2f).",
				outliers, col, mean, num.Max()),
			Amount:       outlierSum,
			Severity:     models.SeverityHigh,
			Category:     models.CategoryCostOverrun,
			Status:       models.StatusActive,
			AffectedRows: outliers,
			Recommendation: "Audit outlier cost entries for billing mistakes, unapproved spend, or supplier price changes before the pattern repeats.",
		})
	}
	return findings
}

package analyzers

import (
	"fmt"

	"github.com/leakwatch/leakage-engine/internal/dataset"
	"github.com/leakwatch/leakage-engine/internal/models"
)

// QuantityAnomalies flags negative and zero quantities. Neither carries a
// direct dollar amount; they signal returns, data errors, or incomplete rows.
type QuantityAnomalies struct{}

// NewQuantityAnomalies constructs the analyzer.
func NewQuantityAnomalies() *QuantityAnomalies { return &QuantityAnomalies{} }

// Name identifies the analyzer in logs and metrics.
func (a *QuantityAnomalies) Name() string { return "quantity_anomalies" }

// Analyze emits up to two findings per quantity column.
func (a *QuantityAnomalies) Analyze(ds *dataset.Dataset, roles models.ColumnRoles) []models.Finding {
	var findings []models.Finding

	for _, col := range roles.Columns(models.RoleQuantity) {
		num, ok := ds.Numeric(col)
		if !ok {
			continue
		}

		if neg := num.CountWhere(func(v float64) bool { return v < 0 }); neg > 0 {
			findings = append(findings, models.Finding{
				ID:     findingID(),
				Type:   models.TypeNegativeQuantities,
				Column: col,
				Description: fmt.Sprintf(
					"Found %d negative quantities in '%s' - possible returns or data errors.", neg, col),
				Amount:         0,
				Severity:       models.SeverityMedium,
				Category:       models.CategoryInventoryIssue,
				Status:         models.StatusActive,
				AffectedRows:   neg,
				Recommendation: "Record returns in a dedicated column so sales quantities stay non-negative.",
			})
		}

		if zero := num.CountWhere(func(v float64) bool { return v == 0 }); zero > 0 {
			findings = append(findings, models.Finding{
				ID:     findingID(),
				Type:   models.TypeZeroQuantities,
				Column: col,
				Description: fmt.Sprintf(
					"Found %d transactions with zero quantity in '%s' - incomplete data.", zero, col),
				Amount:         0,
				Severity:       models.SeverityLow,
				Category:       models.CategoryDataQuality,
				Status:         models.StatusActive,
				AffectedRows:   zero,
				Recommendation: "Require a positive quantity on every line item at data entry.",
			})
		}
	}
	return findings
}

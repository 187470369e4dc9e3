package analyzers

import (
	"fmt"

	"github.com/leakwatch/leakage-engine/internal/dataset"
	"github.com/leakwatch/leakage-engine/internal/models"
)

// MissingData flags null cells in the financially critical columns (revenue
// and cost roles). For revenue columns the impact is estimated from the mean
// of the values that are present.
type MissingData struct{}

// NewMissingData constructs the analyzer.
func NewMissingData() *MissingData { return &MissingData{} }

// Name identifies the analyzer in logs and metrics.
func (a *MissingData) Name() string { return "missing_data" }

// Analyze emits one finding per critical column that has null cells.
func (a *MissingData) Analyze(ds *dataset.Dataset, roles models.ColumnRoles) []models.Finding {
	rows := ds.RowCount()
	var findings []models.Finding

	revenueSet := make(map[string]struct{})
	for _, col := range roles.Columns(models.RoleRevenue) {
		revenueSet[col] = struct{}{}
	}

	seen := make(map[string]struct{})
	critical := append(append([]string(nil), roles.Columns(models.RoleRevenue)...), roles.Columns(models.RoleCost)...)

	for _, colName := range critical {
		if _, dup := seen[colName]; dup {
			continue
		}
		seen[colName] = struct{}{}

		col, ok := ds.Column(colName)
		if !ok {
			continue
		}
		nullCount := col.MissingCount()
		if nullCount == 0 {
			continue
		}

		_, isRevenue := revenueSet[colName]

		impact := 0.0
		if isRevenue {
			if num, numeric := ds.Numeric(colName); numeric {
				impact = num.Mean() * float64(nullCount)
			}
		}

		severity := models.SeverityMedium
		if isRevenue {
			severity = models.SeverityHigh
		}

		findings = append(findings, models.Finding{
			ID:     findingID(),
			Type:   models.TypeMissingData,
			Column: colName,
			Description: fmt.Sprintf(
				"Found %d missing values in '%s' (%.1f%% of data). Missing financial data leads to incomplete analysis and potential revenue loss.",
				nullCount, colName, percent(nullCount, rows)),
			Amount:       impact,
			Severity:     severity,
			Category:     models.CategoryDataQuality,
			Status:       models.StatusActive,
			AffectedRows: nullCount,
			Recommendation: "Make critical fields mandatory at data entry, add real-time validation, and train staff on data completeness.",
		})
	}
	return findings
}

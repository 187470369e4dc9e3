package analyzers

import (
	"github.com/google/uuid"

	"github.com/leakwatch/leakage-engine/internal/dataset"
	"github.com/leakwatch/leakage-engine/internal/models"
)

// Analyzer detects one category of revenue leakage. Implementations are pure
// and side-effect-free: they tolerate empty role sets and non-numeric columns
// by returning fewer findings, never by failing.
type Analyzer interface {
	Name() string
	Analyze(ds *dataset.Dataset, roles models.ColumnRoles) []models.Finding
}

// All returns every analyzer in canonical execution order.
func All() []Analyzer {
	return []Analyzer{
		NewNegativeRevenue(),
		NewExcessiveDiscounts(),
		NewExcessiveCosts(),
		NewMissingData(),
		NewDuplicateTransactions(),
		NewPricingInconsistency(),
		NewCustomerConcentration(),
		NewQuantityAnomalies(),
	}
}

// findingID mints an opaque token unique within one run.
func findingID() string {
	return uuid.NewString()[:8]
}

// percent guards against zero denominators everywhere a ratio is reported.
func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// firstNumeric returns the first role column that is actually numeric in the
// dataset, which is how a single reference column (revenue, usually) is
// selected for ratio and grouping computations.
func firstNumeric(ds *dataset.Dataset, roles models.ColumnRoles, role models.Role) (dataset.Numeric, bool) {
	for _, col := range roles.Columns(role) {
		if num, ok := ds.Numeric(col); ok {
			return num, true
		}
	}
	return dataset.Numeric{}, false
}

package analyzers

import (
	"fmt"
	"math"

	"github.com/leakwatch/leakage-engine/internal/dataset"
	"github.com/leakwatch/leakage-engine/internal/models"
)

// DuplicateTransactions detects rows that are exact copies of another row
// across every column. Each member of a duplicated group counts, including the
// first occurrence; the dollar estimate halves the revenue over those rows so
// a duplicated pair is not double-counted.
type DuplicateTransactions struct{}

// NewDuplicateTransactions constructs the analyzer.
func NewDuplicateTransactions() *DuplicateTransactions { return &DuplicateTransactions{} }

// Name identifies the analyzer in logs and metrics.
func (a *DuplicateTransactions) Name() string { return "duplicate_transactions" }

// Analyze emits at most one dataset-wide finding.
func (a *DuplicateTransactions) Analyze(ds *dataset.Dataset, roles models.ColumnRoles) []models.Finding {
	rows := ds.RowCount()
	if rows == 0 {
		return nil
	}

	groups := make(map[string][]int, rows)
	order := make([]string, 0, rows)
	for i := 0; i < rows; i++ {
		key := ds.RowKey(i)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	duplicateCount := 0
	revenueSum := 0.0
	revenue, hasRevenue := firstNumeric(ds, roles, models.RoleRevenue)

	for _, key := range order {
		members := groups[key]
		if len(members) < 2 {
			continue
		}
		duplicateCount += len(members)
		if hasRevenue {
			for _, i := range members {
				if v := revenue.At(i); !math.IsNaN(v) {
					revenueSum += v
				}
			}
		}
	}
	if duplicateCount == 0 {
		return nil
	}

	// Halve to avoid counting both sides of a duplicated pair.
	amount := math.Abs(revenueSum) / 2

	return []models.Finding{{
		ID:     findingID(),
		Type:   models.TypeDuplicateTransactions,
		Column: "All Columns",
		Description: fmt.Sprintf(
			"Found %d duplicate rows - may indicate double billing, data entry errors, or system glitches.",
			duplicateCount),
		Amount:       amount,
		Severity:     models.SeverityHigh,
		Category:     models.CategoryDataQuality,
		Status:       models.StatusActive,
		AffectedRows: duplicateCount,
		Recommendation: "Assign unique transaction IDs, enable duplicate detection at the point of sale, and deduplicate the database on a schedule.",
	}}
}

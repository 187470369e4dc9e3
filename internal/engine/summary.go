package engine

import (
	"github.com/leakwatch/leakage-engine/internal/dataset"
	"github.com/leakwatch/leakage-engine/internal/models"
)

// Summarize computes the dataset-level financial overview from the classified
// roles. Cost and discount columns are summed on absolute value because source
// systems disagree on sign conventions for outflows.
func Summarize(ds *dataset.Dataset, roles models.ColumnRoles) models.FinancialSummary {
	summary := models.FinancialSummary{
		TotalRows:    ds.RowCount(),
		TotalColumns: ds.ColumnCount(),
		MissingCells: ds.MissingCells(),
	}

	for _, col := range roles.Columns(models.RoleRevenue) {
		if num, ok := ds.Numeric(col); ok {
			summary.TotalRevenue += num.Sum()
		}
	}
	for _, col := range roles.Columns(models.RoleCost) {
		if num, ok := ds.Numeric(col); ok {
			summary.TotalCosts += abs(num.Sum())
		}
	}
	for _, col := range roles.Columns(models.RoleDiscount) {
		if num, ok := ds.Numeric(col); ok {
			summary.TotalDiscounts += abs(num.Sum())
		}
	}

	summary.NetProfit = summary.TotalRevenue - summary.TotalCosts
	if summary.TotalRevenue > 0 {
		summary.ProfitMargin = summary.NetProfit / summary.TotalRevenue * 100
	}
	if summary.TotalRows > 0 {
		summary.AvgTransaction = summary.TotalRevenue / float64(summary.TotalRows)
	}

	if col := roles.First(models.RoleCustomer); col != "" {
		summary.CustomerCount = uniqueCount(ds, col)
	}
	if col := roles.First(models.RoleProduct); col != "" {
		summary.ProductCount = uniqueCount(ds, col)
	}

	return summary
}

func uniqueCount(ds *dataset.Dataset, name string) int {
	col, ok := ds.Column(name)
	if !ok {
		return 0
	}
	seen := make(map[string]struct{})
	for i := 0; i < col.Len(); i++ {
		v, ok := col.StringAt(i)
		if !ok {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

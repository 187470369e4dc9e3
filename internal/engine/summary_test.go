package engine

import (
	"math"
	"testing"

	"github.com/leakwatch/leakage-engine/internal/dataset"
	"github.com/leakwatch/leakage-engine/internal/models"
)

func TestSummarize(t *testing.T) {
	ds := mustDataset(t,
		dataset.NumericColumn("revenue", []float64{100, 200, 300, math.NaN()}),
		dataset.NumericColumn("shipping_cost", []float64{-10, -20, -30, -40}),
		dataset.NumericColumn("discount", []float64{5, 0, 10, 5}),
		dataset.TextColumn("customer", []string{"acme", "acme", "globex", ""}),
		dataset.TextColumn("product", []string{"a", "b", "a", "c"}),
	)
	roles := models.ColumnRoles{
		models.RoleRevenue:  {"revenue"},
		models.RoleCost:     {"shipping_cost"},
		models.RoleDiscount: {"discount"},
		models.RoleCustomer: {"customer"},
		models.RoleProduct:  {"product"},
	}

	got := Summarize(ds, roles)

	if got.TotalRevenue != 600 {
		t.Errorf("TotalRevenue = %v, want 600", got.TotalRevenue)
	}
	if got.TotalCosts != 100 {
		t.Errorf("TotalCosts = %v, want 100 (absolute column sum)", got.TotalCosts)
	}
	if got.TotalDiscounts != 20 {
		t.Errorf("TotalDiscounts = %v, want 20", got.TotalDiscounts)
	}
	if got.NetProfit != 500 {
		t.Errorf("NetProfit = %v, want 500", got.NetProfit)
	}
	if math.Abs(got.ProfitMargin-500.0/600*100) > 1e-9 {
		t.Errorf("ProfitMargin = %v", got.ProfitMargin)
	}
	if got.AvgTransaction != 150 {
		t.Errorf("AvgTransaction = %v, want 150", got.AvgTransaction)
	}
	if got.TotalRows != 4 || got.TotalColumns != 5 {
		t.Errorf("shape = %dx%d, want 4x5", got.TotalRows, got.TotalColumns)
	}
	if got.MissingCells != 2 {
		t.Errorf("MissingCells = %d, want 2 (one NaN, one empty text)", got.MissingCells)
	}
	if got.CustomerCount != 2 {
		t.Errorf("CustomerCount = %d, want 2 (missing cell not counted)", got.CustomerCount)
	}
	if got.ProductCount != 3 {
		t.Errorf("ProductCount = %d, want 3", got.ProductCount)
	}
}

func TestSummarizeGuardsEmptyAndNegativeRevenue(t *testing.T) {
	empty := mustDataset(t)
	got := Summarize(empty, models.ColumnRoles{})
	if got.ProfitMargin != 0 || got.AvgTransaction != 0 {
		t.Errorf("empty dataset summary has nonzero ratios: %+v", got)
	}

	ds := mustDataset(t, dataset.NumericColumn("revenue", []float64{-100, -200}))
	roles := models.ColumnRoles{models.RoleRevenue: {"revenue"}}
	got = Summarize(ds, roles)
	if got.ProfitMargin != 0 {
		t.Errorf("ProfitMargin = %v, want 0 when revenue is not positive", got.ProfitMargin)
	}
	if got.NetProfit != -300 {
		t.Errorf("NetProfit = %v, want -300", got.NetProfit)
	}
}

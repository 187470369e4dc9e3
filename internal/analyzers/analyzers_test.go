package analyzers

import (
	"math"
	"strings"
	"testing"

	"github.com/leakwatch/leakage-engine/internal/dataset"
	"github.com/leakwatch/leakage-engine/internal/models"
)

func mustDataset(t *testing.T, columns ...dataset.Column) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(columns...)
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	return ds
}

func TestNegativeRevenue(t *testing.T) {
	ds := mustDataset(t, dataset.NumericColumn("revenue", []float64{100, -50, 200}))
	roles := models.ColumnRoles{models.RoleRevenue: {"revenue"}}

	findings := NewNegativeRevenue().Analyze(ds, roles)

	if len(findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(findings))
	}
	f := findings[0]
	if f.Type != models.TypeNegativeRevenue {
		t.Errorf("Type = %q", f.Type)
	}
	if f.AffectedRows != 1 {
		t.Errorf("AffectedRows = %d, want 1", f.AffectedRows)
	}
	if math.Abs(f.Amount-62.5) > 1e-9 {
		t.Errorf("Amount = %v, want 62.5 (50 * 1.25)", f.Amount)
	}
	// one of three rows is 33% negative, over the 10% critical threshold
	if f.Severity != models.SeverityCritical {
		t.Errorf("Severity = %q, want critical", f.Severity)
	}
	if f.Status != models.StatusActive || f.ID == "" {
		t.Errorf("finding incomplete: %+v", f)
	}
}

func TestNegativeRevenueSeverityScalesWithShare(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = 10
	}
	values[0] = -5 // 1% negative
	ds := mustDataset(t, dataset.NumericColumn("revenue", values))
	roles := models.ColumnRoles{models.RoleRevenue: {"revenue"}}

	findings := NewNegativeRevenue().Analyze(ds, roles)
	if len(findings) != 1 || findings[0].Severity != models.SeverityMedium {
		t.Fatalf("findings = %+v, want one medium", findings)
	}
}

func TestZeroRevenue(t *testing.T) {
	ds := mustDataset(t, dataset.NumericColumn("revenue", []float64{100, 0, 0, 200}))
	roles := models.ColumnRoles{models.RoleRevenue: {"revenue"}}

	findings := NewNegativeRevenue().Analyze(ds, roles)

	if len(findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(findings))
	}
	f := findings[0]
	if f.Type != models.TypeZeroRevenue || f.AffectedRows != 2 {
		t.Errorf("finding = %+v", f)
	}
	if f.Amount != 0 || f.Severity != models.SeverityMedium || f.Category != models.CategoryPricingIssue {
		t.Errorf("finding = %+v", f)
	}
}

func TestExcessiveDiscounts(t *testing.T) {
	ds := mustDataset(t,
		dataset.NumericColumn("revenue", []float64{3000, 3000, 3000}),
		dataset.NumericColumn("discount", []float64{500, 500, 500}),
	)
	roles := models.ColumnRoles{
		models.RoleRevenue:  {"revenue"},
		models.RoleDiscount: {"discount"},
	}

	findings := NewExcessiveDiscounts().Analyze(ds, roles)

	if len(findings) != 1 {
		t.Fatalf("findings = %d, want 1 (1500/9000 = 16.7%%)", len(findings))
	}
	f := findings[0]
	if f.Amount != 1500 {
		t.Errorf("Amount = %v, want 1500", f.Amount)
	}
	if f.Severity != models.SeverityMedium {
		t.Errorf("Severity = %q, want medium (16.7%% is under the 20%% escalation)", f.Severity)
	}
}

func TestExcessiveDiscountsQuietColumn(t *testing.T) {
	ds := mustDataset(t,
		dataset.NumericColumn("revenue", []float64{1000, 1000, 1000, 1000}),
		dataset.NumericColumn("discount", []float64{50, 50, 40, 60}),
	)
	roles := models.ColumnRoles{
		models.RoleRevenue:  {"revenue"},
		models.RoleDiscount: {"discount"},
	}

	if findings := NewExcessiveDiscounts().Analyze(ds, roles); len(findings) != 0 {
		t.Errorf("5%% discounting flagged: %+v", findings)
	}
}

func TestExcessiveCosts(t *testing.T) {
	// 19 costs near 100 and a single 10000 spike
	values := make([]float64, 20)
	for i := range values {
		values[i] = 100 + float64(i)
	}
	values[19] = 10000
	ds := mustDataset(t, dataset.NumericColumn("shipping_cost", values))
	roles := models.ColumnRoles{models.RoleCost: {"shipping_cost"}}

	findings := NewExcessiveCosts().Analyze(ds, roles)

	if len(findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(findings))
	}
	f := findings[0]
	if f.AffectedRows != 1 || f.Amount != 10000 {
		t.Errorf("finding = %+v", f)
	}
	if f.Severity != models.SeverityHigh || f.Category != models.CategoryCostOverrun {
		t.Errorf("finding = %+v", f)
	}
}

func TestExcessiveCostsUniformColumn(t *testing.T) {
	ds := mustDataset(t, dataset.NumericColumn("cost", []float64{10, 10, 10, 10}))
	roles := models.ColumnRoles{models.RoleCost: {"cost"}}
	if findings := NewExcessiveCosts().Analyze(ds, roles); len(findings) != 0 {
		t.Errorf("uniform costs flagged: %+v", findings)
	}
}

func TestMissingData(t *testing.T) {
	ds := mustDataset(t,
		dataset.NumericColumn("revenue", []float64{100, math.NaN(), 200, math.NaN()}),
		dataset.NumericColumn("cost", []float64{10, 20, math.NaN(), 40}),
		dataset.TextColumn("note", []string{"", "", "", ""}),
	)
	roles := models.ColumnRoles{
		models.RoleRevenue: {"revenue"},
		models.RoleCost:    {"cost"},
	}

	findings := NewMissingData().Analyze(ds, roles)

	if len(findings) != 2 {
		t.Fatalf("findings = %d, want 2 (note column is not critical)", len(findings))
	}
	rev := findings[0]
	if rev.Column != "revenue" || rev.AffectedRows != 2 || rev.Severity != models.SeverityHigh {
		t.Errorf("revenue finding = %+v", rev)
	}
	if rev.Amount != 300 { // mean of present values (150) x 2 nulls
		t.Errorf("revenue impact = %v, want 300", rev.Amount)
	}
	cost := findings[1]
	if cost.Column != "cost" || cost.Severity != models.SeverityMedium || cost.Amount != 0 {
		t.Errorf("cost finding = %+v", cost)
	}
}

func TestMissingDataSharedColumnCountedOnce(t *testing.T) {
	ds := mustDataset(t, dataset.NumericColumn("payment", []float64{math.NaN(), 50}))
	roles := models.ColumnRoles{
		models.RoleRevenue: {"payment"},
		models.RoleCost:    {"payment"},
	}
	findings := NewMissingData().Analyze(ds, roles)
	if len(findings) != 1 {
		t.Fatalf("findings = %d, want 1 (column under both roles)", len(findings))
	}
}

func TestDuplicateTransactions(t *testing.T) {
	ds := mustDataset(t, dataset.NumericColumn("revenue", []float64{10, 10, 10, 99}))
	roles := models.ColumnRoles{models.RoleRevenue: {"revenue"}}

	findings := NewDuplicateTransactions().Analyze(ds, roles)

	if len(findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(findings))
	}
	f := findings[0]
	if f.AffectedRows != 3 {
		t.Errorf("AffectedRows = %d, want 3 (every member of the group counts)", f.AffectedRows)
	}
	if f.Amount != 15 {
		t.Errorf("Amount = %v, want 15 (30 revenue over the group, halved)", f.Amount)
	}
	if f.Column != "All Columns" || f.Severity != models.SeverityHigh {
		t.Errorf("finding = %+v", f)
	}
}

func TestDuplicateTransactionsMissingCellsMatch(t *testing.T) {
	ds := mustDataset(t,
		dataset.TextColumn("customer", []string{"a", "a", "b"}),
		dataset.NumericColumn("revenue", []float64{math.NaN(), math.NaN(), 5}),
	)
	roles := models.ColumnRoles{models.RoleRevenue: {"revenue"}}

	findings := NewDuplicateTransactions().Analyze(ds, roles)
	if len(findings) != 1 || findings[0].AffectedRows != 2 {
		t.Fatalf("rows with identical missing cells should group: %+v", findings)
	}
	if findings[0].Amount != 0 {
		t.Errorf("Amount = %v, want 0 (missing revenue contributes nothing)", findings[0].Amount)
	}
}

func TestDuplicateTransactionsNone(t *testing.T) {
	ds := mustDataset(t, dataset.NumericColumn("revenue", []float64{1, 2, 3}))
	if findings := NewDuplicateTransactions().Analyze(ds, models.ColumnRoles{}); findings != nil {
		t.Errorf("distinct rows flagged: %+v", findings)
	}
}

func TestPricingInconsistency(t *testing.T) {
	ds := mustDataset(t,
		dataset.TextColumn("product", []string{"widget", "widget", "widget", "widget", "gadget", "gadget", "gadget"}),
		dataset.NumericColumn("revenue", []float64{50, 100, 150, 200, 30, 30, 30}),
	)
	roles := models.ColumnRoles{
		models.RoleProduct: {"product"},
		models.RoleRevenue: {"revenue"},
	}

	findings := NewPricingInconsistency().Analyze(ds, roles)

	if len(findings) != 1 {
		t.Fatalf("findings = %d, want 1 (widget varies, gadget is stable)", len(findings))
	}
	f := findings[0]
	if f.AffectedRows != 4 {
		t.Errorf("AffectedRows = %d, want 4 (widget rows only)", f.AffectedRows)
	}
	if !strings.Contains(f.Column, "product") || !strings.Contains(f.Column, "revenue") {
		t.Errorf("Column = %q", f.Column)
	}
	// widget: mean 125, population sigma ~55.9; loss = 0.5 * sigma * 4
	wantLoss := 0.5 * math.Sqrt((75.0*75+25*25+25*25+75*75)/4) * 4
	if math.Abs(f.Amount-wantLoss) > 1e-9 {
		t.Errorf("Amount = %v, want %v", f.Amount, wantLoss)
	}
}

func TestPricingInconsistencySmallGroupsSkipped(t *testing.T) {
	ds := mustDataset(t,
		dataset.TextColumn("product", []string{"a", "a", "b", "b"}),
		dataset.NumericColumn("revenue", []float64{10, 1000, 20, 2000}),
	)
	roles := models.ColumnRoles{
		models.RoleProduct: {"product"},
		models.RoleRevenue: {"revenue"},
	}
	if findings := NewPricingInconsistency().Analyze(ds, roles); findings != nil {
		t.Errorf("groups of 2 should not be scored: %+v", findings)
	}
}

func TestCustomerConcentration(t *testing.T) {
	customers := []string{"big", "c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9"}
	revenues := []float64{40000, 6000, 7000, 6000, 7000, 6000, 7000, 7000, 7000, 7000}
	ds := mustDataset(t,
		dataset.TextColumn("customer", customers),
		dataset.NumericColumn("revenue", revenues),
	)
	roles := models.ColumnRoles{
		models.RoleCustomer: {"customer"},
		models.RoleRevenue:  {"revenue"},
	}

	findings := NewCustomerConcentration().Analyze(ds, roles)

	if len(findings) != 1 {
		t.Fatalf("findings = %d, want 1 (top customer at 40%%)", len(findings))
	}
	f := findings[0]
	if f.Amount != 20000 {
		t.Errorf("Amount = %v, want 20000 (half the top customer's revenue)", f.Amount)
	}
	if f.Severity != models.SeverityHigh || f.Category != models.CategoryBusinessRisk {
		t.Errorf("finding = %+v", f)
	}
	if f.AffectedRows != 1 {
		t.Errorf("AffectedRows = %d, want 1 (top customer's row count)", f.AffectedRows)
	}
}

func TestCustomerConcentrationSmallBaseSkipped(t *testing.T) {
	ds := mustDataset(t,
		dataset.TextColumn("customer", []string{"a", "b", "c"}),
		dataset.NumericColumn("revenue", []float64{90, 5, 5}),
	)
	roles := models.ColumnRoles{
		models.RoleCustomer: {"customer"},
		models.RoleRevenue:  {"revenue"},
	}
	if findings := NewCustomerConcentration().Analyze(ds, roles); findings != nil {
		t.Errorf("three-customer dataset flagged: %+v", findings)
	}
}

func TestQuantityAnomalies(t *testing.T) {
	ds := mustDataset(t, dataset.NumericColumn("qty", []float64{5, -2, 0, 3, 0}))
	roles := models.ColumnRoles{models.RoleQuantity: {"qty"}}

	findings := NewQuantityAnomalies().Analyze(ds, roles)

	if len(findings) != 2 {
		t.Fatalf("findings = %d, want 2", len(findings))
	}
	neg, zero := findings[0], findings[1]
	if neg.Type != models.TypeNegativeQuantities || neg.AffectedRows != 1 || neg.Severity != models.SeverityMedium {
		t.Errorf("negative finding = %+v", neg)
	}
	if zero.Type != models.TypeZeroQuantities || zero.AffectedRows != 2 || zero.Severity != models.SeverityLow {
		t.Errorf("zero finding = %+v", zero)
	}
	if neg.Amount != 0 || zero.Amount != 0 {
		t.Error("quantity anomalies carry no dollar amount")
	}
}

func TestAnalyzersTolerateEmptyInput(t *testing.T) {
	ds := mustDataset(t)
	roles := models.ColumnRoles{}
	for _, a := range All() {
		if findings := a.Analyze(ds, roles); len(findings) != 0 {
			t.Errorf("%s produced findings on empty dataset: %+v", a.Name(), findings)
		}
	}
}

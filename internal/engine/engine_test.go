package engine

import (
	"log/slog"
	"math"
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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(nopWriter{}, &slog.HandlerOptions{Level: slog.LevelError + 4}))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestBuildReportNegativeRevenue(t *testing.T) {
	ds := mustDataset(t,
		dataset.NumericColumn("revenue", []float64{100, -50, 200}),
	)

	report := New(discardLogger(), nil).BuildReport(ds)

	negatives := report.FindingsOfType(models.TypeNegativeRevenue)
	if len(negatives) != 1 {
		t.Fatalf("negative revenue findings = %d, want 1", len(negatives))
	}
	f := negatives[0]
	if f.AffectedRows != 1 {
		t.Errorf("AffectedRows = %d, want 1", f.AffectedRows)
	}
	if math.Abs(f.Amount-62.5) > 1e-9 {
		t.Errorf("Amount = %v, want 62.5", f.Amount)
	}
	if f.Severity != models.SeverityHigh && f.Severity != models.SeverityCritical {
		// one negative row out of three is over both ratio thresholds
		t.Errorf("Severity = %q, want critical", f.Severity)
	}
}

func TestBuildReportTotalsAndOrdering(t *testing.T) {
	ds := mustDataset(t,
		dataset.NumericColumn("revenue", []float64{100, -50, 0, 200}),
		dataset.NumericColumn("discount", []float64{10, 20, 5, 1500}),
	)

	report := New(discardLogger(), nil).BuildReport(ds)

	if report.TotalLeakages != len(report.Items) {
		t.Errorf("TotalLeakages = %d, want %d", report.TotalLeakages, len(report.Items))
	}
	sum := 0.0
	for _, item := range report.Items {
		sum += item.Amount
	}
	if math.Abs(report.TotalAmount-sum) > 1e-9 {
		t.Errorf("TotalAmount = %v, want exact item sum %v", report.TotalAmount, sum)
	}
	for i := 1; i < len(report.Items); i++ {
		if report.Items[i-1].Amount < report.Items[i].Amount {
			t.Fatalf("items not sorted by amount desc at %d: %v < %v",
				i, report.Items[i-1].Amount, report.Items[i].Amount)
		}
	}
}

func TestBuildReportEmptyDataset(t *testing.T) {
	ds := mustDataset(t)

	report := New(discardLogger(), nil).BuildReport(ds)

	if report.TotalLeakages != 0 || len(report.Items) != 0 {
		t.Errorf("empty dataset produced %d findings", report.TotalLeakages)
	}
	if report.TotalAmount != 0 {
		t.Errorf("TotalAmount = %v, want 0", report.TotalAmount)
	}
	if report.ColumnsAnalyzed == nil {
		t.Error("ColumnsAnalyzed should be populated even for empty input")
	}
}

func TestBuildReportDeterministic(t *testing.T) {
	ds := mustDataset(t,
		dataset.TextColumn("customer", []string{"a", "b", "a", "c", "b", "a"}),
		dataset.NumericColumn("revenue", []float64{100, -5, 100, 30, 30, 100}),
		dataset.NumericColumn("qty", []float64{1, 0, 1, -2, 3, 1}),
	)
	eng := New(discardLogger(), nil)

	first := eng.BuildReport(ds)
	for run := 0; run < 5; run++ {
		again := eng.BuildReport(ds)
		if len(again.Items) != len(first.Items) {
			t.Fatalf("run %d: %d items, want %d", run, len(again.Items), len(first.Items))
		}
		for i := range first.Items {
			a, b := first.Items[i], again.Items[i]
			if a.Type != b.Type || a.Column != b.Column || a.Amount != b.Amount || a.AffectedRows != b.AffectedRows {
				t.Fatalf("run %d item %d differs: %+v vs %+v", run, i, a, b)
			}
		}
	}
}

type panicAnalyzer struct{}

func (panicAnalyzer) Name() string { return "panic" }

func (panicAnalyzer) Analyze(*dataset.Dataset, models.ColumnRoles) []models.Finding {
	panic("boom")
}

type fixedAnalyzer struct {
	finding models.Finding
}

func (fixedAnalyzer) Name() string { return "fixed" }

func (f fixedAnalyzer) Analyze(*dataset.Dataset, models.ColumnRoles) []models.Finding {
	return []models.Finding{f.finding}
}

func TestBuildReportIsolatesAnalyzerPanic(t *testing.T) {
	ds := mustDataset(t, dataset.NumericColumn("revenue", []float64{1, 2}))
	want := models.Finding{Type: "x", Amount: 7, Severity: models.SeverityLow}

	eng := New(discardLogger(), nil, panicAnalyzer{}, fixedAnalyzer{finding: want})
	report := eng.BuildReport(ds)

	if len(report.Items) != 1 {
		t.Fatalf("items = %d, want 1 (panicking analyzer skipped)", len(report.Items))
	}
	if report.Items[0].Type != "x" || report.Items[0].Amount != 7 {
		t.Errorf("surviving finding = %+v, want %+v", report.Items[0], want)
	}
	if report.TotalAmount != 7 {
		t.Errorf("TotalAmount = %v, want 7", report.TotalAmount)
	}
}

func TestClassifyExcludesRevenueColumnsFromCosts(t *testing.T) {
	ds := mustDataset(t,
		dataset.NumericColumn("payment_amount", []float64{10}),
		dataset.NumericColumn("shipping_cost", []float64{2}),
	)

	roles := New(discardLogger(), nil).Classify(ds)

	for _, col := range roles[models.RoleCost] {
		if col == "payment_amount" {
			t.Fatalf("revenue-claimed column %q still listed under cost role", col)
		}
	}
	if got := roles.First(models.RoleCost); got != "shipping_cost" {
		t.Errorf("cost column = %q, want shipping_cost", got)
	}
}

package alerts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leakwatch/leakage-engine/internal/models"
)

func TestEvaluateConditions(t *testing.T) {
	cases := []struct {
		name      string
		value     float64
		condition models.AlertCondition
		threshold float64
		want      bool
	}{
		{"greater than holds", 101, models.ConditionGreaterThan, 100, true},
		{"greater than strict", 100, models.ConditionGreaterThan, 100, false},
		{"less than holds", 99, models.ConditionLessThan, 100, true},
		{"equals within epsilon", 100.004, models.ConditionEquals, 100, true},
		{"equals outside epsilon", 100.02, models.ConditionEquals, 100, false},
		{"not equals outside epsilon", 100.02, models.ConditionNotEquals, 100, true},
		{"not equals within epsilon", 100.004, models.ConditionNotEquals, 100, false},
		{"unknown condition never matches", 100, models.AlertCondition("between"), 100, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(tc.value, tc.condition, tc.threshold); got != tc.want {
				t.Errorf("Evaluate(%v, %q, %v) = %v, want %v", tc.value, tc.condition, tc.threshold, got, tc.want)
			}
		})
	}
}

func TestComputeMetric(t *testing.T) {
	report := models.LeakageReport{
		TotalLeakages: 2,
		Items: []models.Finding{
			{Type: models.TypeNegativeRevenue, Amount: 125, AffectedRows: 2},
			{Type: models.TypeDuplicateTransactions, Amount: -15, AffectedRows: 3},
		},
	}
	summary := models.FinancialSummary{
		TotalRevenue: 1000,
		TotalCosts:   400,
		NetProfit:    600,
		ProfitMargin: 60,
		TotalRows:    10,
		TotalColumns: 4,
		MissingCells: 8,
	}

	cases := []struct {
		metric string
		want   float64
	}{
		{MetricRevenueTotal, 1000},
		{MetricHighLeakage, 140}, // amounts summed on absolute value
		{MetricLeakagePercentage, 14},
		{MetricNegativeRevenue, 2},
		{MetricDuplicates, 3},
		{MetricMissingData, 20},
		{MetricDataQualityScore, 80},
		{MetricTotalCosts, 400},
		{MetricNetProfit, 600},
		{MetricProfitMargin, 60},
		{"no_such_metric", 0},
	}
	for _, tc := range cases {
		if got := ComputeMetric(tc.metric, report, summary); got != tc.want {
			t.Errorf("ComputeMetric(%q) = %v, want %v", tc.metric, got, tc.want)
		}
	}
}

func TestDataQualityScoreFloorsAtZero(t *testing.T) {
	report := models.LeakageReport{TotalLeakages: 20}
	summary := models.FinancialSummary{TotalRows: 10}
	if got := ComputeMetric(MetricDataQualityScore, report, summary); got != 0 {
		t.Errorf("quality score = %v, want 0", got)
	}
}

func TestFormatMetricValue(t *testing.T) {
	cases := []struct {
		metric string
		value  float64
		want   string
	}{
		{MetricRevenueTotal, 1234567.891, "$1,234,567.89"},
		{MetricNetProfit, -50, "$-50.00"},
		{MetricLeakagePercentage, 12.34, "12.3%"},
		{MetricDataQualityScore, 100, "100.0%"},
		{MetricNegativeRevenue, 7.9, "7"},
		{MetricDuplicates, 0, "0"},
	}
	for _, tc := range cases {
		if got := FormatMetricValue(tc.metric, tc.value); got != tc.want {
			t.Errorf("FormatMetricValue(%q, %v) = %q, want %q", tc.metric, tc.value, got, tc.want)
		}
	}
}

func TestEvaluateRules(t *testing.T) {
	report := models.LeakageReport{
		TotalLeakages: 1,
		Items:         []models.Finding{{Type: models.TypeNegativeRevenue, Amount: 500, AffectedRows: 4}},
	}
	summary := models.FinancialSummary{TotalRevenue: 1000, TotalRows: 100, TotalColumns: 5}
	rules := []models.AlertRule{
		{ID: "a1", Name: "Big leakage", Metric: MetricHighLeakage, Condition: models.ConditionGreaterThan, Threshold: 100, Severity: models.SeverityHigh},
		{ID: "a2", Name: "Quiet", Metric: MetricHighLeakage, Condition: models.ConditionLessThan, Threshold: 100, Severity: models.SeverityLow},
		{ID: "a3", Name: "Broken", Condition: models.ConditionGreaterThan, Threshold: 0},
	}

	triggered := NewEvaluator(nil).EvaluateRules(rules, report, summary)

	if len(triggered) != 1 {
		t.Fatalf("triggered = %d alerts, want 1", len(triggered))
	}
	got := triggered[0]
	if got.AlertID != "a1" || got.CurrentValue != 500 {
		t.Errorf("triggered alert = %+v", got)
	}
	if got.FormattedValue != "$500.00" {
		t.Errorf("FormattedValue = %q, want $500.00", got.FormattedValue)
	}
	if !strings.Contains(got.Message, "Alert 'Big leakage' triggered!") ||
		!strings.Contains(got.Message, "greater than $100.00") {
		t.Errorf("Message = %q", got.Message)
	}
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	pack := `rules:
  - id: leak-high
    name: High leakage
    metric: high_leakage
    condition: greater_than
    threshold: 1000
    severity: high
  - id: quality-low
    name: Low data quality
    metric: data_quality_score
    condition: less_than
    threshold: 70
    severity: medium
`
	if err := os.WriteFile(path, []byte(pack), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("rules = %d, want 2", len(rules))
	}
	if rules[0].ID != "leak-high" || rules[0].Condition != models.ConditionGreaterThan || rules[0].Threshold != 1000 {
		t.Errorf("rule[0] = %+v", rules[0])
	}
	if rules[1].Severity != models.SeverityMedium {
		t.Errorf("rule[1].Severity = %q", rules[1].Severity)
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	rules, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if rules != nil {
		t.Errorf("rules = %v, want nil", rules)
	}
}

func TestLoadRulesRejectsUnknownCondition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	pack := `rules:
  - id: bad
    name: Bad rule
    metric: high_leakage
    condition: within
    threshold: 5
`
	if err := os.WriteFile(path, []byte(pack), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Fatal("expected error for unknown condition")
	}
}

package alerts

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/leakwatch/leakage-engine/internal/models"
)

// Metric names the evaluator understands. Unknown names evaluate to zero so a
// stale rule pack cannot break an analysis run.
const (
	MetricRevenueTotal      = "revenue_total"
	MetricHighLeakage       = "high_leakage"
	MetricLeakagePercentage = "leakage_percentage"
	MetricNegativeRevenue   = "negative_revenue"
	MetricZeroRevenue       = "zero_revenue"
	MetricMissingData       = "missing_data"
	MetricDuplicates        = "duplicate_transactions"
	MetricDataQualityScore  = "data_quality_score"
	MetricExcessiveCosts    = "excessive_costs"
	MetricProfitMargin      = "profit_margin"
	MetricTotalCosts        = "total_costs"
	MetricNetProfit         = "net_profit"
)

// MetricInfo describes one metric for catalogue consumers.
type MetricInfo struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
}

// AvailableMetrics lists every supported metric in a fixed order.
func AvailableMetrics() []MetricInfo {
	return []MetricInfo{
		{MetricRevenueTotal, "Total Revenue", "currency", "Total revenue from all revenue columns"},
		{MetricHighLeakage, "Revenue Leakage", "currency", "Total amount of revenue leakage detected"},
		{MetricLeakagePercentage, "Leakage Percentage", "percentage", "Revenue leakage as percentage of total revenue"},
		{MetricNegativeRevenue, "Negative Revenue Count", "count", "Number of negative revenue transactions"},
		{MetricZeroRevenue, "Zero Revenue Count", "count", "Number of zero revenue transactions"},
		{MetricMissingData, "Missing Data Percentage", "percentage", "Percentage of missing data across all columns"},
		{MetricDuplicates, "Duplicate Transactions", "count", "Number of duplicate transaction records"},
		{MetricDataQualityScore, "Data Quality Score", "percentage", "Overall data quality score (0-100)"},
		{MetricExcessiveCosts, "Excessive Costs Count", "count", "Number of excessive cost entries detected"},
		{MetricProfitMargin, "Profit Margin", "percentage", "Profit margin percentage"},
		{MetricTotalCosts, "Total Costs", "currency", "Total costs from all cost columns"},
		{MetricNetProfit, "Net Profit", "currency", "Net profit (revenue minus costs)"},
	}
}

// MetricDescription returns the catalogue description of a metric name.
func MetricDescription(metric string) string {
	for _, info := range AvailableMetrics() {
		if info.Value == metric {
			return info.Description
		}
	}
	return "Unknown metric"
}

// ComputeMetric derives the current value of one metric from an analysis run.
// Unknown metric names return 0.
func ComputeMetric(metric string, report models.LeakageReport, summary models.FinancialSummary) float64 {
	switch metric {
	case MetricRevenueTotal:
		return summary.TotalRevenue
	case MetricHighLeakage:
		return absoluteLeakage(report)
	case MetricLeakagePercentage:
		if summary.TotalRevenue > 0 {
			return absoluteLeakage(report) / summary.TotalRevenue * 100
		}
		return 0
	case MetricNegativeRevenue:
		return float64(report.AffectedRowsOfType(models.TypeNegativeRevenue))
	case MetricZeroRevenue:
		return float64(report.AffectedRowsOfType(models.TypeZeroRevenue))
	case MetricMissingData:
		cells := summary.TotalRows * summary.TotalColumns
		if cells > 0 {
			return float64(summary.MissingCells) / float64(cells) * 100
		}
		return 0
	case MetricDuplicates:
		return float64(report.AffectedRowsOfType(models.TypeDuplicateTransactions))
	case MetricDataQualityScore:
		if summary.TotalRows <= 0 {
			return 100
		}
		score := 100 - float64(report.TotalLeakages)/float64(summary.TotalRows)*100
		if score < 0 {
			return 0
		}
		return score
	case MetricExcessiveCosts:
		return float64(report.AffectedRowsOfType(models.TypeExcessiveCosts))
	case MetricProfitMargin:
		return summary.ProfitMargin
	case MetricTotalCosts:
		return summary.TotalCosts
	case MetricNetProfit:
		return summary.NetProfit
	default:
		return 0
	}
}

func absoluteLeakage(report models.LeakageReport) float64 {
	total := 0.0
	for _, item := range report.Items {
		if item.Amount < 0 {
			total -= item.Amount
		} else {
			total += item.Amount
		}
	}
	return total
}

// currencyPrinter adds English digit grouping to currency amounts.
var currencyPrinter = message.NewPrinter(language.English)

// FormatMetricValue renders a value with the unit convention of its metric:
// currency metrics as $x,xxx.xx, percentage metrics to one decimal, counts as
// plain integers.
func FormatMetricValue(metric string, value float64) string {
	switch metric {
	case MetricRevenueTotal, MetricHighLeakage, MetricTotalCosts, MetricNetProfit:
		return currencyPrinter.Sprintf("$%.2f", value)
	case MetricLeakagePercentage, MetricMissingData, MetricDataQualityScore, MetricProfitMargin:
		return fmt.Sprintf("%.1f%%", value)
	default:
		return strconv.FormatInt(int64(value), 10)
	}
}

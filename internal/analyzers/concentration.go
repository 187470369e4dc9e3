package analyzers

import (
	"fmt"
	"math"

	"github.com/leakwatch/leakage-engine/internal/dataset"
	"github.com/leakwatch/leakage-engine/internal/models"
)

const (
	// concentrationMinCustomers is the customer count below which the check
	// does not apply (tiny customer bases are concentrated by construction).
	concentrationMinCustomers = 5
	// concentrationShareThreshold is the revenue share (percent) above which
	// the top customer becomes a business risk.
	concentrationShareThreshold = 30.0
)

// CustomerConcentration flags datasets where one customer carries an outsized
// share of total revenue.
type CustomerConcentration struct{}

// NewCustomerConcentration constructs the analyzer.
func NewCustomerConcentration() *CustomerConcentration { return &CustomerConcentration{} }

// Name identifies the analyzer in logs and metrics.
func (a *CustomerConcentration) Name() string { return "customer_concentration" }

// Analyze emits at most one finding, risk-weighting half the top customer's
// revenue as the exposure.
func (a *CustomerConcentration) Analyze(ds *dataset.Dataset, roles models.ColumnRoles) []models.Finding {
	customerName := roles.First(models.RoleCustomer)
	if customerName == "" {
		return nil
	}
	customer, ok := ds.Column(customerName)
	if !ok {
		return nil
	}
	revenue, ok := firstNumeric(ds, roles, models.RoleRevenue)
	if !ok {
		return nil
	}

	sums := make(map[string]float64)
	rowCounts := make(map[string]int)
	var order []string
	for i := 0; i < ds.RowCount(); i++ {
		key, present := customer.StringAt(i)
		if !present {
			continue
		}
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		rowCounts[key]++
		if v := revenue.At(i); !math.IsNaN(v) {
			sums[key] += v
		}
	}
	if len(order) <= concentrationMinCustomers {
		return nil
	}

	top := order[0]
	total := 0.0
	for _, key := range order {
		total += sums[key]
		if sums[key] > sums[top] {
			top = key
		}
	}
	if total <= 0 {
		return nil
	}

	topShare := sums[top] / total * 100
	if topShare <= concentrationShareThreshold {
		return nil
	}

	return []models.Finding{{
		ID:     findingID(),
		Type:   models.TypeCustomerConcentration,
		Column: fmt.Sprintf("%s, %s", customerName, revenue.Name()),
		Description: fmt.Sprintf(
			"Top customer represents %.1f%% of revenue ($%.2f). Losing this customer would devastate the business.",
			topShare, sums[top]),
		Amount:       sums[top] * 0.5,
		Severity:     models.SeverityHigh,
		Category:     models.CategoryBusinessRisk,
		Status:       models.StatusActive,
		AffectedRows: rowCounts[top],
		Recommendation: "Diversify the customer base urgently. No single customer should exceed 20% of revenue; invest in new customer acquisition.",
	}}
}

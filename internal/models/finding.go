package models

// Severity captures how urgently a finding needs attention.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities so reports can break amount ties deterministically.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// StatusActive is the only status the detection engine ever assigns. Downstream
// trackers own any later transitions (resolved, dismissed, ...).
const StatusActive = "active"

// Finding is one detected leakage instance. Findings are created once per
// analysis run and never mutated afterwards.
type Finding struct {
	ID             string   `json:"id"`
	Type           string   `json:"type"`
	Column         string   `json:"column"`
	Description    string   `json:"description"`
	Amount         float64  `json:"amount"`
	Severity       Severity `json:"severity"`
	Category       string   `json:"category"`
	Status         string   `json:"status"`
	AffectedRows   int      `json:"affected_rows"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// Canonical finding type labels. The metric evaluator filters findings by
// these strings, so analyzers must emit them verbatim.
const (
	TypeNegativeRevenue       = "Negative Revenue"
	TypeZeroRevenue           = "Zero Revenue Transactions"
	TypeExcessiveDiscounts    = "Excessive Discounts"
	TypeExcessiveCosts        = "Excessive Costs"
	TypeMissingData           = "Missing Data"
	TypeDuplicateTransactions = "Duplicate Transactions"
	TypePricingInconsistency  = "Pricing Inconsistencies"
	TypeCustomerConcentration = "Customer Concentration Risk"
	TypeNegativeQuantities    = "Negative Quantities"
	TypeZeroQuantities        = "Zero Quantities"
)

// Finding categories group related leakage types for reporting.
const (
	CategoryRevenueLoss     = "Revenue Loss"
	CategoryPricingStrategy = "Pricing Strategy"
	CategoryPricingIssue    = "Pricing Issue"
	CategoryCostOverrun     = "Cost Overrun"
	CategoryDataQuality     = "Data Quality"
	CategoryBusinessRisk    = "Business Risk"
	CategoryInventoryIssue  = "Inventory Issue"
)

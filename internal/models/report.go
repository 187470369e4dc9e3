package models

// Role names the semantic meaning of a dataset column, independent of the
// literal header text.
type Role string

const (
	RoleRevenue  Role = "revenue"
	RoleCost     Role = "cost"
	RoleDiscount Role = "discount"
	RoleQuantity Role = "quantity"
	RoleDate     Role = "date"
	RoleCustomer Role = "customer"
	RoleProduct  Role = "product"
	RoleProfit   Role = "profit"
	RoleRefund   Role = "refund"
)

// Roles lists every role in a fixed order so classification output and JSON
// serialisation stay deterministic.
var Roles = []Role{
	RoleRevenue,
	RoleCost,
	RoleDiscount,
	RoleQuantity,
	RoleDate,
	RoleCustomer,
	RoleProduct,
	RoleProfit,
	RoleRefund,
}

// ColumnRoles maps each role to the column names that satisfied it. A column
// may appear under several roles; consumers must tolerate the overlap.
type ColumnRoles map[Role][]string

// Columns returns the column names classified under the role, or nil.
func (r ColumnRoles) Columns(role Role) []string {
	if r == nil {
		return nil
	}
	return r[role]
}

// First returns the first column classified under the role, or "".
func (r ColumnRoles) First(role Role) string {
	cols := r.Columns(role)
	if len(cols) == 0 {
		return ""
	}
	return cols[0]
}

// LeakageReport aggregates one analysis run. Items are sorted by amount,
// highest first, and TotalAmount is the exact sum over all item amounts.
type LeakageReport struct {
	TotalLeakages   int         `json:"total_leakages"`
	TotalAmount     float64     `json:"total_amount"`
	Items           []Finding   `json:"items"`
	ColumnsAnalyzed ColumnRoles `json:"columns_analyzed"`
}

// FindingsOfType returns all findings whose type matches the label.
func (r LeakageReport) FindingsOfType(findingType string) []Finding {
	var out []Finding
	for _, item := range r.Items {
		if item.Type == findingType {
			out = append(out, item)
		}
	}
	return out
}

// AffectedRowsOfType sums affected row counts across findings of one type.
func (r LeakageReport) AffectedRowsOfType(findingType string) int {
	total := 0
	for _, item := range r.Items {
		if item.Type == findingType {
			total += item.AffectedRows
		}
	}
	return total
}

// FinancialSummary captures headline figures for the analysed dataset. It is
// computed from the classified revenue/cost/discount columns and supplied to
// the metric evaluator alongside the leakage report.
type FinancialSummary struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalCosts     float64 `json:"total_costs"`
	TotalDiscounts float64 `json:"total_discounts"`
	NetProfit      float64 `json:"net_profit"`
	ProfitMargin   float64 `json:"profit_margin"`
	AvgTransaction float64 `json:"avg_transaction"`
	TotalRows      int     `json:"total_rows"`
	TotalColumns   int     `json:"total_columns"`
	MissingCells   int     `json:"missing_cells"`
	CustomerCount  int     `json:"customer_count"`
	ProductCount   int     `json:"product_count"`
}

package business

// PaymentMethod names how a business accepts money. Cash and manual credit
// handling carry higher fraud and reconciliation risk than digital rails.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCredit       PaymentMethod = "credit"
	PaymentDigital      PaymentMethod = "digital"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// NewBusinessForm is the questionnaire for a business that has not launched
// yet. The assessment is preventive: it scores planned structures, not
// observed losses.
type NewBusinessForm struct {
	BusinessName    string `json:"business_name"`
	BusinessModel   string `json:"business_model"`
	Industry        string `json:"industry"`
	PricingStrategy string `json:"pricing_strategy"`

	ExpectedMonthlyRevenue float64 `json:"expected_monthly_revenue"`
	ProductCostPerUnit     float64 `json:"product_cost_per_unit"`
	ExpectedUnitsSold      int     `json:"expected_units_sold"`
	FixedMonthlyCosts      float64 `json:"fixed_monthly_costs"`

	ProductPrice              float64 `json:"product_price"`
	PlannedDiscountPercentage float64 `json:"planned_discount_percentage"`
	DiscountFrequency         string  `json:"discount_frequency"` // occasional, frequent, seasonal

	PaymentMethods     []PaymentMethod `json:"payment_methods"`
	InventoryTracking  bool            `json:"inventory_tracking"`
	HasBillingSystem   bool            `json:"has_billing_system"`
	ExpectedRefundRate float64         `json:"expected_refund_rate"`
}

// ExistingBusinessForm is the questionnaire for an operating business. The
// assessment quantifies losses the owner is already experiencing.
type ExistingBusinessForm struct {
	BusinessName  string `json:"business_name"`
	BusinessModel string `json:"business_model"`
	Industry      string `json:"industry"`

	MonthlyRevenue float64 `json:"monthly_revenue"`
	TotalSales     int     `json:"total_sales"`
	TotalInvoices  int     `json:"total_invoices"`

	RefundsAmount       float64 `json:"refunds_amount"`
	ReturnsAmount       float64 `json:"returns_amount"`
	DiscountsGiven      float64 `json:"discounts_given"`
	UncollectedPayments float64 `json:"uncollected_payments"`

	BillingErrorsCount     int     `json:"billing_errors_count"`
	PricingInconsistencies int     `json:"pricing_inconsistencies"`
	InventoryShrinkage     float64 `json:"inventory_shrinkage"`
	UnrecordedSales        float64 `json:"unrecorded_sales"`

	LowPerformingProducts int `json:"low_performing_products"`
	TotalProducts         int `json:"total_products"`

	HasAutomatedBilling bool `json:"has_automated_billing"`
	TracksInventory     bool `json:"tracks_inventory"`
}

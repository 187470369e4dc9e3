package classify

import "github.com/leakwatch/leakage-engine/internal/models"

// defaultKeywords are the built-in role tables, mirrored by
// configs/keywords/default.yaml. Keywords are stored pre-normalized
// (lowercase, space-separated).
var defaultKeywords = map[models.Role][]string{
	models.RoleRevenue: {
		"revenue", "sales", "income", "amount", "total", "price", "payment",
		"received", "collection", "receipt", "billing", "invoice", "charge",
		"gross", "net", "proceeds", "earning", "turnover", "value",
	},
	models.RoleCost: {
		"cost", "expense", "cogs", "spend", "payment", "payable", "expenditure",
		"overhead", "outflow", "disbursement", "liability", "purchase",
	},
	models.RoleDiscount: {
		"discount", "rebate", "reduction", "markdown", "allowance",
		"concession", "offer", "promo", "coupon", "voucher", "deal",
	},
	models.RoleQuantity: {
		"quantity", "qty", "units", "count", "number", "volume", "items",
		"pieces", "orders", "transactions", "sold",
	},
	models.RoleDate: {
		"date", "time", "day", "month", "year", "period", "timestamp",
		"created", "modified", "transaction", "order date", "invoice date",
	},
	models.RoleCustomer: {
		"customer", "client", "buyer", "account", "name", "company",
		"organization", "user", "member", "subscriber",
	},
	models.RoleProduct: {
		"product", "item", "sku", "service", "description", "category",
		"type", "model", "variant", "article",
	},
	models.RoleProfit: {
		"profit", "margin", "markup", "net income", "earnings", "gain",
	},
	models.RoleRefund: {
		"refund", "return", "chargeback", "reversal", "cancellation", "void",
	},
}

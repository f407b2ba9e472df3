package normalizer

import (
	"time"

	"dealdesk/internal/domain"
)

// The coercion rules are expressed as explicit field tables rather than ad hoc
// branching: each table maps an engine payload key to the setter for its slot
// on ExtractedDealData. Tables are keyed snake_case; the engine's camelCase
// spellings are folded onto them before lookup. A key missing from every
// table lands in Custom.

// numericFields lists the monetary and multiple fields coerced to float64.
// String values are parsed; values that do not parse are dropped entirely.
var numericFields = map[string]func(*domain.ExtractedDealData, float64){
	"deal_value":       func(d *domain.ExtractedDealData, v float64) { d.DealValue = &v },
	"purchase_price":   func(d *domain.ExtractedDealData, v float64) { d.PurchasePrice = &v },
	"enterprise_value": func(d *domain.ExtractedDealData, v float64) { d.EnterpriseValue = &v },
	"equity_value":     func(d *domain.ExtractedDealData, v float64) { d.EquityValue = &v },
	"debt_amount":      func(d *domain.ExtractedDealData, v float64) { d.DebtAmount = &v },
	"cash_amount":      func(d *domain.ExtractedDealData, v float64) { d.CashAmount = &v },
	"earnout_amount":   func(d *domain.ExtractedDealData, v float64) { d.EarnoutAmount = &v },
	"escrow_amount":    func(d *domain.ExtractedDealData, v float64) { d.EscrowAmount = &v },
	"revenue":          func(d *domain.ExtractedDealData, v float64) { d.Revenue = &v },
	"ebitda":           func(d *domain.ExtractedDealData, v float64) { d.EBITDA = &v },
	"net_income":       func(d *domain.ExtractedDealData, v float64) { d.NetIncome = &v },
	"ebitda_multiple":  func(d *domain.ExtractedDealData, v float64) { d.EBITDAMultiple = &v },
	"revenue_multiple": func(d *domain.ExtractedDealData, v float64) { d.RevenueMultiple = &v },
}

// dateFields lists the fields parsed from ISO-8601 strings. Absent or
// unparseable values are omitted, never defaulted to now.
var dateFields = map[string]func(*domain.ExtractedDealData, time.Time){
	"announced_date":        func(d *domain.ExtractedDealData, v time.Time) { d.AnnouncedDate = &v },
	"signed_date":           func(d *domain.ExtractedDealData, v time.Time) { d.SignedDate = &v },
	"effective_date":        func(d *domain.ExtractedDealData, v time.Time) { d.EffectiveDate = &v },
	"expected_closing_date": func(d *domain.ExtractedDealData, v time.Time) { d.ExpectedClosingDate = &v },
}

// scalarFields lists the categorical values copied verbatim when present.
var scalarFields = map[string]func(*domain.ExtractedDealData, string){
	"deal_type":         func(d *domain.ExtractedDealData, v string) { d.DealType = v },
	"payment_structure": func(d *domain.ExtractedDealData, v string) { d.PaymentStructure = v },
	"currency":          func(d *domain.ExtractedDealData, v string) { d.Currency = v },
	"industry":          func(d *domain.ExtractedDealData, v string) { d.Industry = v },
	"sector":            func(d *domain.ExtractedDealData, v string) { d.Sector = v },
}

// stringListFields lists the verbatim string-list fields.
var stringListFields = map[string]func(*domain.ExtractedDealData, []string){
	"regulatory_approvals": func(d *domain.ExtractedDealData, v []string) { d.RegulatoryApprovals = v },
	"risk_factors":         func(d *domain.ExtractedDealData, v []string) { d.RiskFactors = v },
}

// structuredFields are the nested sub-records copied as-is. The normalizer
// deliberately does not validate inside them; field-level trust is established
// later by ValidationResult entries.
const (
	keySeller       = "seller"
	keyBuyer        = "buyer"
	keyTarget       = "target"
	keyAdvisors     = "advisors"
	keyCustomFields = "custom_fields"
)

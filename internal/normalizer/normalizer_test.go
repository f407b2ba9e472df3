package normalizer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealdesk/internal/normalizer"
)

func TestNormalize_NumericCoercion(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected *float64
	}{
		{"json number", 4925000.5, f(4925000.5)},
		{"numeric string", "4925000.50", f(4925000.5)},
		{"integer", 12, f(12)},
		{"non-numeric string dropped", "not-a-number", nil},
		{"bool dropped", true, nil},
		{"nil dropped", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := normalizer.Normalize(map[string]any{"deal_value": tt.raw})
			if tt.expected == nil {
				assert.Nil(t, data.DealValue)
			} else {
				require.NotNil(t, data.DealValue)
				assert.Equal(t, *tt.expected, *data.DealValue)
			}
		})
	}
}

func TestNormalize_AllNumericSlots(t *testing.T) {
	data := normalizer.Normalize(map[string]any{
		"purchase_price":   "1000000",
		"enterprise_value": 2500000.0,
		"equity_value":     1800000.0,
		"debt_amount":      700000.0,
		"cash_amount":      "300000.25",
		"earnout_amount":   50000.0,
		"escrow_amount":    25000.0,
		"revenue":          900000.0,
		"ebitda":           120000.0,
		"net_income":       80000.0,
		"ebitda_multiple":  8.5,
		"revenue_multiple": "2.1",
	})

	require.NotNil(t, data.PurchasePrice)
	assert.Equal(t, 1000000.0, *data.PurchasePrice)
	require.NotNil(t, data.CashAmount)
	assert.Equal(t, 300000.25, *data.CashAmount)
	require.NotNil(t, data.EBITDAMultiple)
	assert.Equal(t, 8.5, *data.EBITDAMultiple)
	require.NotNil(t, data.RevenueMultiple)
	assert.Equal(t, 2.1, *data.RevenueMultiple)
	require.NotNil(t, data.EnterpriseValue)
	require.NotNil(t, data.EquityValue)
	require.NotNil(t, data.DebtAmount)
	require.NotNil(t, data.EarnoutAmount)
	require.NotNil(t, data.EscrowAmount)
	require.NotNil(t, data.Revenue)
	require.NotNil(t, data.EBITDA)
	require.NotNil(t, data.NetIncome)
}

func TestNormalize_DateCoercion(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected *time.Time
	}{
		{"rfc3339", "2024-12-28T10:00:00Z", ts(t, "2024-12-28T10:00:00Z")},
		{"date only", "2024-12-28", ts(t, "2024-12-28T00:00:00Z")},
		{"garbage dropped", "tomorrow", nil},
		{"number dropped", 1735380000.0, nil},
		{"empty string dropped", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := normalizer.Normalize(map[string]any{"announced_date": tt.raw})
			if tt.expected == nil {
				assert.Nil(t, data.AnnouncedDate)
			} else {
				require.NotNil(t, data.AnnouncedDate)
				assert.True(t, tt.expected.Equal(*data.AnnouncedDate))
			}
		})
	}
}

func TestNormalize_ScalarPassthrough(t *testing.T) {
	data := normalizer.Normalize(map[string]any{
		"deal_type":         "acquisition",
		"payment_structure": "cash_and_stock",
		"currency":          "USD",
		"industry":          "software",
		"sector":            "b2b_saas",
	})

	assert.Equal(t, "acquisition", data.DealType)
	assert.Equal(t, "cash_and_stock", data.PaymentStructure)
	assert.Equal(t, "USD", data.Currency)
	assert.Equal(t, "software", data.Industry)
	assert.Equal(t, "b2b_saas", data.Sector)
}

func TestNormalize_ScalarNonStringDropped(t *testing.T) {
	data := normalizer.Normalize(map[string]any{"currency": 840})
	assert.Empty(t, data.Currency)
}

func TestNormalize_StringLists(t *testing.T) {
	data := normalizer.Normalize(map[string]any{
		"regulatory_approvals": []any{"HSR", "CFIUS"},
		"risk_factors":         []any{"customer concentration", 42, "churn"},
	})

	assert.Equal(t, []string{"HSR", "CFIUS"}, data.RegulatoryApprovals)
	// Non-string members are skipped, not fatal.
	assert.Equal(t, []string{"customer concentration", "churn"}, data.RiskFactors)
}

func TestNormalize_StructuredParties(t *testing.T) {
	data := normalizer.Normalize(map[string]any{
		"seller": map[string]any{"name": "Acme Holdings", "jurisdiction": "DE"},
		"buyer":  map[string]any{"name": "Globex Corp"},
		"target": map[string]any{"name": "Initech LLC", "employees": 250.0},
		"advisors": []any{
			map[string]any{"name": "Sterling & Cooper", "role": "legal"},
		},
	})

	require.NotNil(t, data.Seller)
	assert.Equal(t, "Acme Holdings", data.Seller.Name)
	require.NotNil(t, data.Buyer)
	assert.Equal(t, "Globex Corp", data.Buyer.Name)
	require.NotNil(t, data.Target)
	assert.Equal(t, "Initech LLC", data.Target.Name)
	require.Len(t, data.Advisors, 1)
	assert.Equal(t, "Sterling & Cooper", data.Advisors[0].Name)
}

func TestNormalize_UnknownKeysGoToCustom(t *testing.T) {
	data := normalizer.Normalize(map[string]any{
		"deal_value":    1000.0,
		"exotic_clause": "MAC carve-out",
		"page_count":    14.0,
	})

	require.NotNil(t, data.Custom)
	assert.Equal(t, "MAC carve-out", data.Custom["exotic_clause"])
	assert.Equal(t, 14.0, data.Custom["page_count"])
	assert.NotContains(t, data.Custom, "deal_value")
}

func TestNormalize_CustomFieldsKey(t *testing.T) {
	data := normalizer.Normalize(map[string]any{
		"custom_fields": map[string]any{"deal_code": "PROJ-TITAN"},
	})

	require.NotNil(t, data.Custom)
	assert.Equal(t, "PROJ-TITAN", data.Custom["deal_code"])
}

func TestNormalize_CamelCaseEngineKeys(t *testing.T) {
	data := normalizer.Normalize(map[string]any{
		"dealValue":     "4925000.50",
		"announcedDate": "2024-12-28T10:00:00Z",
		"dealType":      "acquisition",
		"riskFactors":   []any{"churn"},
		"customFields":  map[string]any{"deal_code": "PROJ-TITAN"},
	})

	require.NotNil(t, data.DealValue)
	assert.Equal(t, 4925000.5, *data.DealValue)
	require.NotNil(t, data.AnnouncedDate)
	assert.True(t, ts(t, "2024-12-28T10:00:00Z").Equal(*data.AnnouncedDate))
	assert.Equal(t, "acquisition", data.DealType)
	assert.Equal(t, []string{"churn"}, data.RiskFactors)
	assert.Equal(t, "PROJ-TITAN", data.Custom["deal_code"])
	assert.NotContains(t, data.Custom, "dealValue")
}

func TestNormalize_CamelCaseUnparseableDropped(t *testing.T) {
	data := normalizer.Normalize(map[string]any{"dealValue": "not-a-number"})
	assert.Nil(t, data.DealValue)
	assert.NotContains(t, data.Custom, "dealValue")
}

func TestNormalize_NilAndEmptyPayload(t *testing.T) {
	assert.NotNil(t, normalizer.Normalize(nil))
	assert.NotNil(t, normalizer.Normalize(map[string]any{}))
}

func f(v float64) *float64 { return &v }

func ts(t *testing.T, s string) *time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return &v
}

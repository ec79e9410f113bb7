// Package settlement turns a winning gross amount into the commission, labor
// fee, and net-to-supplier breakdown using exact centavo arithmetic. Rounding
// happens only when computing commission (and lot value) from fractional
// inputs, and is always half-up.
package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/palengke-io/bulungan/money"
)

// Reference platform terms: 6% commission and a flat ₱25.00 labor fee.
const (
	defaultCommissionBasisPoints = 600
	defaultLaborFee              = money.Money(2500)
)

// Config carries the platform terms applied to every settlement. Immutable
// once constructed; pass a fresh Config to change terms rather than mutating.
type Config struct {
	// CommissionRate is the fraction of gross taken as commission, e.g. 0.06.
	CommissionRate decimal.Decimal
	// LaborFee is the flat per-sale fee in centavos.
	LaborFee money.Money
}

// DefaultConfig returns the reference terms (6%, ₱25.00).
func DefaultConfig() Config {
	return Config{
		CommissionRate: decimal.New(defaultCommissionBasisPoints, -4),
		LaborFee:       defaultLaborFee,
	}
}

// Breakdown is the settlement of one sale. NetToSupplier always equals
// GrossAmount - Commission - LaborFee exactly; it can be negative when fees
// exceed gross, which callers must surface rather than accept silently.
type Breakdown struct {
	GrossAmount   money.Money `json:"gross_amount"`
	Commission    money.Money `json:"commission"`
	LaborFee      money.Money `json:"labor_fee"`
	NetToSupplier money.Money `json:"net_to_supplier"`

	// Terms echoed back for display and audit.
	CommissionRate decimal.Decimal `json:"commission_rate"`
	LaborFeeFixed  money.Money     `json:"labor_fee_fixed"`
}

// Commission computes the platform commission on a gross amount, rounded
// half-up to the nearest centavo.
func (c Config) Commission(gross money.Money) money.Money {
	commission := decimal.NewFromInt(int64(gross)).Mul(c.CommissionRate).Round(0)
	return money.Money(commission.IntPart())
}

// LaborFeeAmount returns the flat labor fee. A constant by policy, never
// computed from the sale.
func (c Config) LaborFeeAmount() money.Money {
	return c.LaborFee
}

// Net returns gross minus the computed commission and the labor fee.
func (c Config) Net(gross money.Money) money.Money {
	return c.NetWith(gross, c.Commission(gross), c.LaborFee)
}

// NetWith returns gross minus already-computed commission and labor fee, for
// callers that persist the components separately. No clamping: a negative
// result is a reportable condition, not an error.
func (c Config) NetWith(gross, commission, laborFee money.Money) money.Money {
	return money.Subtract(gross, commission, laborFee)
}

// Settle produces the full breakdown for a gross sale amount.
func (c Config) Settle(gross money.Money) Breakdown {
	commission := c.Commission(gross)
	laborFee := c.LaborFeeAmount()
	return Breakdown{
		GrossAmount:    gross,
		Commission:     commission,
		LaborFee:       laborFee,
		NetToSupplier:  c.NetWith(gross, commission, laborFee),
		CommissionRate: c.CommissionRate,
		LaborFeeFixed:  laborFee,
	}
}

// LotValue prices a catch lot: weight (kilograms, fractional) times the
// per-kilogram price, rounded half-up to the nearest centavo.
func LotValue(weightKg float64, pricePerKg money.Money) money.Money {
	value := decimal.NewFromFloat(weightKg).Mul(decimal.NewFromInt(int64(pricePerKg))).Round(0)
	return money.Money(value.IntPart())
}

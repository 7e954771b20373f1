package pricing

import (
	"fmt"
	"regexp"
	"strings"

	"bookingwizard/internal/wizard/validator"

	"github.com/shopspring/decimal"
)

const (
	FieldBasePrice   = "base_price"
	FieldServiceFees = "service_fees"
	FieldTaxes       = "taxes"
	FieldDiscount    = "discount"
	FieldCurrency    = "currency"

	DisplayPlaces = 2
)

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Input is the pricing step as typed by the user.
type Input struct {
	BasePrice   string `json:"base_price"`
	ServiceFees string `json:"service_fees"`
	Taxes       string `json:"taxes"`
	Discount    string `json:"discount"`
	Currency    string `json:"currency"`
}

// Breakdown is a parsed, validated price decomposition. Amounts keep full
// precision; rounding happens only in Display.
type Breakdown struct {
	Base     decimal.Decimal
	Fees     decimal.Decimal
	Taxes    decimal.Decimal
	Discount decimal.Decimal
	Currency string
}

// Calculate returns base + fees + taxes - discount.
func Calculate(base, fees, taxes, discount decimal.Decimal) decimal.Decimal {
	return base.Add(fees).Add(taxes).Sub(discount)
}

func (b Breakdown) Subtotal() decimal.Decimal {
	return b.Base.Add(b.Fees).Add(b.Taxes)
}

func (b Breakdown) Total() decimal.Decimal {
	return Calculate(b.Base, b.Fees, b.Taxes, b.Discount)
}

// Display rounds to two places, half away from zero.
func Display(d decimal.Decimal) string {
	return d.StringFixed(DisplayPlaces)
}

// Summary is the display form of a breakdown.
type Summary struct {
	BasePrice   string `json:"base_price"`
	ServiceFees string `json:"service_fees"`
	Taxes       string `json:"taxes"`
	Discount    string `json:"discount"`
	Total       string `json:"total"`
	Currency    string `json:"currency"`
}

func (b Breakdown) Summary() Summary {
	return Summary{
		BasePrice:   Display(b.Base),
		ServiceFees: Display(b.Fees),
		Taxes:       Display(b.Taxes),
		Discount:    Display(b.Discount),
		Total:       Display(b.Total()),
		Currency:    b.Currency,
	}
}

// Parse validates the pricing step. Empty fees, taxes and discount count as
// zero; the base price is required and must be above zero. A discount that
// would make the total negative is rejected, never clamped.
func Parse(in Input) (Breakdown, validator.FieldErrors) {
	errs := validator.FieldErrors{}

	base, baseOK := parseAmount(FieldBasePrice, in.BasePrice, true, errs)
	fees, feesOK := parseAmount(FieldServiceFees, in.ServiceFees, false, errs)
	taxes, taxesOK := parseAmount(FieldTaxes, in.Taxes, false, errs)
	discount, discountOK := parseAmount(FieldDiscount, in.Discount, false, errs)

	if baseOK && !base.IsPositive() {
		errs.Add(FieldBasePrice, fmt.Sprintf("%s must be greater than zero", FieldBasePrice))
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if !currencyRegex.MatchString(currency) {
		errs.Add(FieldCurrency, fmt.Sprintf("%s must be a three-letter currency code", FieldCurrency))
	}

	b := Breakdown{Base: base, Fees: fees, Taxes: taxes, Discount: discount, Currency: currency}
	if baseOK && feesOK && taxesOK && discountOK && b.Total().IsNegative() {
		errs.Add(FieldDiscount, fmt.Sprintf("%s must not exceed %s + %s + %s", FieldDiscount, FieldBasePrice, FieldServiceFees, FieldTaxes))
	}

	if len(errs) > 0 {
		return Breakdown{}, errs
	}
	return b, errs
}

func parseAmount(field, raw string, required bool, errs validator.FieldErrors) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			errs.Add(field, fmt.Sprintf("%s is required", field))
			return decimal.Zero, false
		}
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		errs.Add(field, fmt.Sprintf("%s must be a number", field))
		return decimal.Zero, false
	}
	if d.IsNegative() {
		errs.Add(field, fmt.Sprintf("%s must not be negative", field))
		return decimal.Zero, false
	}
	return d, true
}

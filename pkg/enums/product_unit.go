package enums

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductUnit is the unit of sale a product's price is quoted in.
type ProductUnit string

const (
	ProductUnitKg      ProductUnit = "kg"
	ProductUnitDozen   ProductUnit = "dozen"
	ProductUnitLitre   ProductUnit = "litre"
	ProductUnit500g    ProductUnit = "500g"
	ProductUnitPiece   ProductUnit = "piece"
	ProductUnitBunch   ProductUnit = "bunch"
	ProductUnit10g     ProductUnit = "10g"
	ProductUnit100g    ProductUnit = "100g"
	ProductUnit250g    ProductUnit = "250g"
)

var validProductUnits = []ProductUnit{
	ProductUnitKg,
	ProductUnitDozen,
	ProductUnitLitre,
	ProductUnit500g,
	ProductUnitPiece,
	ProductUnitBunch,
	ProductUnit10g,
	ProductUnit100g,
	ProductUnit250g,
}

var (
	halfStep  = decimal.RequireFromString("0.5")
	wholeStep = decimal.NewFromInt(1)
)

// String implements fmt.Stringer.
func (u ProductUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known ProductUnit.
func (u ProductUnit) IsValid() bool {
	for _, candidate := range validProductUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// QuantityStep returns the smallest orderable increment for the unit.
// Weight and volume units sell in half steps, everything else in whole
// counts. The match is case-insensitive because stored units predate
// normalization.
func (u ProductUnit) QuantityStep() decimal.Decimal {
	switch strings.ToLower(string(u)) {
	case string(ProductUnitKg), string(ProductUnitLitre):
		return halfStep
	default:
		return wholeStep
	}
}

// ParseProductUnit converts the raw string to ProductUnit.
func ParseProductUnit(value string) (ProductUnit, error) {
	for _, candidate := range validProductUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product unit %q", value)
}

package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CabinClass is the requested travel class.
type CabinClass string

// Supported cabin classes.
const (
	ClassEconomy  CabinClass = "economy"
	ClassBusiness CabinClass = "business"
	ClassFirst    CabinClass = "first"
)

// Fare multipliers per cabin class. The first-class multiplier compounds
// the business multiplier rather than using a flat rate.
var (
	multiplierEconomy  = decimal.NewFromInt(1)
	multiplierBusiness = decimal.RequireFromString("1.35")
	multiplierFirst    = multiplierBusiness.Mul(decimal.RequireFromString("1.3"))
)

// IsValid reports whether the cabin class is a supported value.
func (c CabinClass) IsValid() bool {
	switch c {
	case ClassEconomy, ClassBusiness, ClassFirst:
		return true
	default:
		return false
	}
}

// Multiplier returns the fare multiplier applied to the base (economy)
// price for this cabin class.
func (c CabinClass) Multiplier() decimal.Decimal {
	switch c {
	case ClassBusiness:
		return multiplierBusiness
	case ClassFirst:
		return multiplierFirst
	default:
		return multiplierEconomy
	}
}

// ParseCabinClass converts a request string to a CabinClass.
// An empty string defaults to economy; anything else must be a valid class.
func ParseCabinClass(s string) (CabinClass, error) {
	if s == "" {
		return ClassEconomy, nil
	}
	c := CabinClass(strings.ToLower(s))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: ticketClass must be one of: economy, business, first; got %q", ErrInvalidRequest, s)
	}
	return c, nil
}

// PricedItinerary is an itinerary annotated with its final price for a
// selected cabin class. Ephemeral, response-only.
type PricedItinerary struct {
	Itinerary

	// CabinClass is the class the price was computed for.
	CabinClass CabinClass `json:"cabinClass"`

	// FinalPrice is floor(aggregateBasePrice * multiplier) in integer
	// currency units. Truncation, not rounding.
	FinalPrice int64 `json:"finalPrice"`
}

// Price computes the final price of an itinerary for the given cabin
// class. The multiplication stays decimal-exact; only the final display
// price is truncated to an integer currency unit.
func Price(it Itinerary, class CabinClass) PricedItinerary {
	final := it.AggregateBasePrice.Mul(class.Multiplier()).Floor().IntPart()
	return PricedItinerary{
		Itinerary:  it,
		CabinClass: class,
		FinalPrice: final,
	}
}

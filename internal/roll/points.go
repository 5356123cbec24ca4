// Package roll filters the destination catalog and picks the next destination.
//
// The flow for one spin is:
//
//	BaseFilter → Pipeline (personalization) → ExcludeRecent → Pick
//
// Every step is pure. Randomness comes in through the RNG interface so tests
// can pin the selection.
package roll

import "github.com/shopspring/decimal"

var ten = decimal.NewFromInt(10)

// Points returns the points earned for a spin: floor(minutes/10) + floor(euros).
// Each term is truncated on its own, so 45 min at €9.99 is 4 + 9 = 13.
func Points(minutes int, euros decimal.Decimal) int {
	timePart := decimal.NewFromInt(int64(minutes)).Div(ten).Floor()
	return int(timePart.Add(euros.Floor()).IntPart())
}

// Package pricing holds the pure billing calculations shared by orders and
// sales.
package pricing

import "math"

// BillableQuantity applies the thirteen-dozen rule: every complete group of
// 13 units is billed as 12, so one unit per full group is free.
func BillableQuantity(quantity float64, thirteenDozen bool) float64 {
	if !thirteenDozen {
		return quantity
	}
	return quantity - math.Floor(quantity/13)
}

// LineTotal computes the billable amount for a single line item.
func LineTotal(unitPrice, quantity float64, thirteenDozen bool) float64 {
	return unitPrice * BillableQuantity(quantity, thirteenDozen)
}

// Total sums line totals. Recomputing with unchanged inputs yields the same
// result regardless of line order.
func Total(lineTotals []float64) float64 {
	var sum float64
	for _, t := range lineTotals {
		sum += t
	}
	return sum
}

// Owes reports whether the partial payment received is less than the total
// price due. Equal values settle the sale.
func Owes(partialPayment, totalPrice float64) bool {
	return partialPayment < totalPrice
}

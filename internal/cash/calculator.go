package cash

import "github.com/ipang84/retailmaster/internal/domain"

// Total is the weighted sum of counts over the known denominations.
// A nil or empty count totals zero; unknown keys and counts above MaxCount are ignored.
func Total(counts domain.DenominationCount) domain.Cents {
	var total domain.Cents
	for _, d := range Denominations {
		n := counts[d.Key]
		if !validCount(n) {
			continue
		}
		total += d.Value * domain.Cents(n)
	}
	return total
}

// Line is one row of a drawer count.
type Line struct {
	Denomination Denomination
	Count        int
	Subtotal     domain.Cents
}

// Breakdown lists the counted denominations in table order, skipping empty ones.
func Breakdown(counts domain.DenominationCount) []Line {
	var lines []Line
	for _, d := range Denominations {
		n := counts[d.Key]
		if !validCount(n) {
			continue
		}
		lines = append(lines, Line{Denomination: d, Count: n, Subtotal: d.Value * domain.Cents(n)})
	}
	return lines
}

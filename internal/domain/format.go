package domain

import "fmt"

// FormatPrice renders a USD price for a nickname. Values of 1000 and above
// collapse to a "k" suffix with two decimals, everything else keeps two
// decimals as-is. The threshold compares the raw value, not the rounded one.
func FormatPrice(v float64) string {
	if v >= 1000 {
		return fmt.Sprintf("%.2fk", v/1000)
	}
	return fmt.Sprintf("%.2f", v)
}

package report

import "fmt"

// Cents is an amount in currency minor units.
type Cents int64

// String renders the amount with two decimals, e.g. "12.50".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

package report

import "strings"

// ExtractTip returns the subtotal of the first line item whose description
// mentions "tip", or zero.
func ExtractTip(items []LineItem) Cents {
	for _, item := range items {
		if item.Description == "" {
			continue
		}
		if strings.Contains(strings.ToLower(item.Description), "tip") {
			return item.Subtotal
		}
	}
	return 0
}

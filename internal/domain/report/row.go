// Package report holds the delivery-fee report domain: the transaction
// variants read from the payment platform, the inclusion rules, tip lookup,
// shipping labels and revenue totals.
package report

import "time"

// DateLayout is the MM-DD-YYYY format used for the row date column.
const DateLayout = "01-02-2006"

// Columns is the fixed CSV header, in row order.
var Columns = []string{
	"name",
	"date",
	"shipping",
	"amount",
	"tip",
	"payment_intent",
	"stripe_link",
	"id",
}

// Row is one report line for a qualifying transaction.
type Row struct {
	Name          string `json:"name"`
	Date          string `json:"date"`
	Shipping      string `json:"shipping"`
	Amount        Cents  `json:"amount"`
	Tip           Cents  `json:"tip"`
	PaymentIntent string `json:"payment_intent"`
	StripeLink    string `json:"stripe_link"`
	ID            string `json:"id"`
}

// Record returns the row's values in Columns order.
func (r Row) Record() []string {
	return []string{
		r.Name,
		r.Date,
		r.Shipping,
		r.Amount.String(),
		r.Tip.String(),
		r.PaymentIntent,
		r.StripeLink,
		r.ID,
	}
}

// FormatDate renders a creation time as the row date, in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Total sums amount and tip over all rows.
func Total(rows []Row) Cents {
	var total Cents
	for _, row := range rows {
		total += row.Amount + row.Tip
	}
	return total
}

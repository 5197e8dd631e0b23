package stripeapi

import (
	"errors"
	"time"

	"github.com/stripe/stripe-go/v76"

	"github.com/eshaffer321/delivery-fee-report/internal/domain/report"
)

// ErrMissingID is returned for records without an id.
var ErrMissingID = errors.New("stripe record has no id")

func toSession(s *stripe.CheckoutSession) (*report.Session, error) {
	if s == nil || s.ID == "" {
		return nil, ErrMissingID
	}

	out := &report.Session{
		ID:            s.ID,
		Created:       time.Unix(s.Created, 0).UTC(),
		PaymentStatus: string(s.PaymentStatus),
	}
	if s.CustomerDetails != nil {
		out.Customer = s.CustomerDetails.Name
	}
	if s.PaymentIntent != nil {
		out.PaymentIntent = s.PaymentIntent.ID
	}
	for _, opt := range s.ShippingOptions {
		if opt == nil {
			continue
		}
		option := report.ShippingOption{Amount: report.Cents(opt.ShippingAmount)}
		if opt.ShippingRate != nil {
			option.RateID = opt.ShippingRate.ID
		}
		out.ShippingOptions = append(out.ShippingOptions, option)
	}
	return out, nil
}

func toInvoice(i *stripe.Invoice) (*report.Invoice, error) {
	if i == nil || i.ID == "" {
		return nil, ErrMissingID
	}

	out := &report.Invoice{
		ID:             i.ID,
		Created:        time.Unix(i.Created, 0).UTC(),
		Customer:       i.CustomerName,
		Paid:           i.Paid,
		AmountShipping: report.Cents(i.AmountShipping),
	}
	if i.PaymentIntent != nil {
		out.PaymentIntent = i.PaymentIntent.ID
	}
	if i.ShippingCost != nil && i.ShippingCost.ShippingRate != nil {
		out.ShippingRateID = i.ShippingCost.ShippingRate.ID
	}
	if i.Lines != nil {
		for _, line := range i.Lines.Data {
			if line == nil {
				continue
			}
			out.Lines = append(out.Lines, report.LineItem{
				Description: line.Description,
				Subtotal:    report.Cents(line.Amount),
			})
		}
	}
	return out, nil
}

func toLineItem(li *stripe.LineItem) report.LineItem {
	if li == nil {
		return report.LineItem{}
	}
	return report.LineItem{
		Description: li.Description,
		Subtotal:    report.Cents(li.AmountSubtotal),
	}
}

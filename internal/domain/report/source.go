package report

import (
	"context"
	"time"
)

// Kind tags which platform collection a Source came from.
type Kind string

const (
	KindSession Kind = "session"
	KindInvoice Kind = "invoice"
)

// PaymentStatusPaid is the checkout session status that qualifies for the report.
const PaymentStatusPaid = "paid"

// LineItem is one itemized charge on a session or invoice.
type LineItem struct {
	Description string
	Subtotal    Cents
}

// ShippingInfo is the delivery fee attached to a transaction.
type ShippingInfo struct {
	RateID string
	Amount Cents
}

// LineItemLister pages through a checkout session's line items.
type LineItemLister interface {
	ListSessionLineItems(ctx context.Context, sessionID string) ([]LineItem, error)
}

// Source is a transaction record read from the payment platform. Session and
// Invoice are the only implementations.
type Source interface {
	Kind() Kind
	SourceID() string
	CreatedAt() time.Time
	CustomerName() string
	PaymentIntentID() string

	// Shipping returns the delivery fee when the record qualifies for the
	// report, and false when it must be dropped.
	Shipping() (ShippingInfo, bool)

	// LineItems returns the record's line items, fetching them through
	// lister when they are not embedded.
	LineItems(ctx context.Context, lister LineItemLister) ([]LineItem, error)
}

// ShippingOption is one shipping choice offered on a checkout session.
type ShippingOption struct {
	RateID string
	Amount Cents
}

// Session is a checkout session.
type Session struct {
	ID              string
	Created         time.Time
	Customer        string
	PaymentIntent   string
	PaymentStatus   string
	ShippingOptions []ShippingOption
}

var _ Source = (*Session)(nil)

func (s *Session) Kind() Kind              { return KindSession }
func (s *Session) SourceID() string        { return s.ID }
func (s *Session) CreatedAt() time.Time    { return s.Created }
func (s *Session) CustomerName() string    { return s.Customer }
func (s *Session) PaymentIntentID() string { return s.PaymentIntent }

// Shipping applies the session inclusion rules: a payment intent, at least one
// shipping option whose amount is positive, and a paid status.
func (s *Session) Shipping() (ShippingInfo, bool) {
	if len(s.ShippingOptions) == 0 || s.PaymentIntent == "" {
		return ShippingInfo{}, false
	}
	option := s.ShippingOptions[0]
	if option.Amount < 1 || s.PaymentStatus != PaymentStatusPaid {
		return ShippingInfo{}, false
	}
	return ShippingInfo{RateID: option.RateID, Amount: option.Amount}, true
}

// LineItems fetches the session's line items from the platform.
func (s *Session) LineItems(ctx context.Context, lister LineItemLister) ([]LineItem, error) {
	if lister == nil {
		return nil, nil
	}
	return lister.ListSessionLineItems(ctx, s.ID)
}

// Invoice is a billed document with its line items already embedded.
type Invoice struct {
	ID             string
	Created        time.Time
	Customer       string
	PaymentIntent  string
	Paid           bool
	AmountShipping Cents
	ShippingRateID string
	Lines          []LineItem
}

var _ Source = (*Invoice)(nil)

func (i *Invoice) Kind() Kind              { return KindInvoice }
func (i *Invoice) SourceID() string        { return i.ID }
func (i *Invoice) CreatedAt() time.Time    { return i.Created }
func (i *Invoice) CustomerName() string    { return i.Customer }
func (i *Invoice) PaymentIntentID() string { return i.PaymentIntent }

// Shipping applies the invoice inclusion rules: paid with a positive shipping amount.
func (i *Invoice) Shipping() (ShippingInfo, bool) {
	if !i.Paid || i.AmountShipping < 1 {
		return ShippingInfo{}, false
	}
	return ShippingInfo{RateID: i.ShippingRateID, Amount: i.AmountShipping}, true
}

// LineItems returns the embedded lines.
func (i *Invoice) LineItems(context.Context, LineItemLister) ([]LineItem, error) {
	return i.Lines, nil
}

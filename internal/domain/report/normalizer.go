package report

import (
	"context"
	"fmt"
	"strings"
)

// DefaultDashboardURL is the base used to build payment links.
const DefaultDashboardURL = "https://dashboard.stripe.com"

// Normalizer turns platform records into report rows.
type Normalizer struct {
	classifier   ShippingClassifier
	lister       LineItemLister
	dashboardURL string
}

// NewNormalizer creates a normalizer. An empty dashboardURL uses DefaultDashboardURL.
func NewNormalizer(classifier ShippingClassifier, lister LineItemLister, dashboardURL string) *Normalizer {
	if dashboardURL == "" {
		dashboardURL = DefaultDashboardURL
	}
	return &Normalizer{
		classifier:   classifier,
		lister:       lister,
		dashboardURL: strings.TrimRight(dashboardURL, "/"),
	}
}

// PaymentLink returns the dashboard URL for a payment intent.
func (n *Normalizer) PaymentLink(paymentIntent string) string {
	return fmt.Sprintf("%s/payments/%s", n.dashboardURL, paymentIntent)
}

// Normalize maps src to a row. Records that fail the inclusion rules return
// ok == false and no error; errors only come from loading line items.
func (n *Normalizer) Normalize(ctx context.Context, src Source) (Row, bool, error) {
	shipping, ok := src.Shipping()
	if !ok {
		return Row{}, false, nil
	}

	items, err := src.LineItems(ctx, n.lister)
	if err != nil {
		return Row{}, false, fmt.Errorf("failed to load line items for %s %s: %w", src.Kind(), src.SourceID(), err)
	}

	return Row{
		Name:          src.CustomerName(),
		Date:          FormatDate(src.CreatedAt()),
		Shipping:      n.classifier.Classify(shipping.RateID),
		Amount:        shipping.Amount,
		Tip:           ExtractTip(items),
		PaymentIntent: src.PaymentIntentID(),
		StripeLink:    n.PaymentLink(src.PaymentIntentID()),
		ID:            src.SourceID(),
	}, true, nil
}

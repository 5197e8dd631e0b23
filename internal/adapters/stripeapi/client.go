// Package stripeapi adapts the Stripe API to the report's transaction model.
package stripeapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/eshaffer321/delivery-fee-report/internal/domain/daterange"
	"github.com/eshaffer321/delivery-fee-report/internal/domain/report"
)

// PageSize is the number of records requested per list call.
const PageSize = 100

// ErrMissingKey is returned when no secret key is configured.
var ErrMissingKey = errors.New("stripe secret key is not set")

// Client lists checkout sessions, invoices and line items.
type Client struct {
	api    *client.API
	logger *slog.Logger
}

// NewClient creates a client using the live Stripe backends.
func NewClient(secretKey string, logger *slog.Logger) (*Client, error) {
	if secretKey == "" {
		return nil, ErrMissingKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("system", "stripe")

	backends := &stripe.Backends{
		API: stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			LeveledLogger: &leveledLogger{logger: logger},
		}),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, &stripe.BackendConfig{
			LeveledLogger: &leveledLogger{logger: logger},
		}),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, &stripe.BackendConfig{
			LeveledLogger: &leveledLogger{logger: logger},
		}),
	}
	return NewClientWithBackends(secretKey, backends, logger), nil
}

// NewClientWithBackends creates a client on explicit backends.
func NewClientWithBackends(secretKey string, backends *stripe.Backends, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		api:    client.New(secretKey, backends),
		logger: logger,
	}
}

// ListSessions pages through checkout sessions created within r (all time
// when r is nil) and calls fn for each one in platform order.
func (c *Client) ListSessions(ctx context.Context, r *daterange.Range, fn func(*report.Session) error) error {
	params := &stripe.CheckoutSessionListParams{}
	params.Context = ctx
	params.Limit = stripe.Int64(PageSize)
	if r != nil {
		params.CreatedRange = createdRange(*r)
	}

	iter := c.api.CheckoutSessions.List(params)
	for iter.Next() {
		session, err := toSession(iter.CheckoutSession())
		if err != nil {
			return err
		}
		if err := fn(session); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to list checkout sessions: %w", err)
	}
	return nil
}

// ListInvoices pages through invoices created within r (all time when r is nil).
func (c *Client) ListInvoices(ctx context.Context, r *daterange.Range, fn func(*report.Invoice) error) error {
	params := &stripe.InvoiceListParams{}
	params.Context = ctx
	params.Limit = stripe.Int64(PageSize)
	if r != nil {
		params.CreatedRange = createdRange(*r)
	}

	iter := c.api.Invoices.List(params)
	for iter.Next() {
		invoice, err := toInvoice(iter.Invoice())
		if err != nil {
			return err
		}
		if err := fn(invoice); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to list invoices: %w", err)
	}
	return nil
}

// ListSessionLineItems returns every line item of a checkout session.
func (c *Client) ListSessionLineItems(ctx context.Context, sessionID string) ([]report.LineItem, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(PageSize)

	var items []report.LineItem
	iter := c.api.CheckoutSessions.ListLineItems(params)
	for iter.Next() {
		items = append(items, toLineItem(iter.LineItem()))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list line items for session %s: %w", sessionID, err)
	}

	c.logger.Debug("loaded session line items", "session_id", sessionID, "count", len(items))
	return items, nil
}

// GetSession retrieves a single checkout session.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*report.Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve session %s: %w", sessionID, err)
	}
	return toSession(s)
}

func createdRange(r daterange.Range) *stripe.RangeQueryParams {
	return &stripe.RangeQueryParams{
		GreaterThanOrEqual: r.Gte,
		LesserThanOrEqual:  r.Lte,
	}
}

package stripeapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"github.com/eshaffer321/delivery-fee-report/internal/domain/daterange"
	"github.com/eshaffer321/delivery-fee-report/internal/domain/report"
)

func TestToSession(t *testing.T) {
	s := &stripe.CheckoutSession{
		ID:              "cs_1",
		Created:         1705343400,
		PaymentStatus:   stripe.CheckoutSessionPaymentStatusPaid,
		PaymentIntent:   &stripe.PaymentIntent{ID: "pi_1"},
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{Name: "Jane Doe"},
		ShippingOptions: []*stripe.CheckoutSessionShippingOption{
			{ShippingAmount: 500, ShippingRate: &stripe.ShippingRate{ID: "shr_1"}},
			nil,
			{ShippingAmount: 900},
		},
	}

	got, err := toSession(s)
	require.NoError(t, err)
	assert.Equal(t, &report.Session{
		ID:            "cs_1",
		Created:       time.Unix(1705343400, 0).UTC(),
		Customer:      "Jane Doe",
		PaymentIntent: "pi_1",
		PaymentStatus: "paid",
		ShippingOptions: []report.ShippingOption{
			{RateID: "shr_1", Amount: 500},
			{Amount: 900},
		},
	}, got)
}

func TestToSession_MissingFields(t *testing.T) {
	got, err := toSession(&stripe.CheckoutSession{ID: "cs_bare"})
	require.NoError(t, err)
	assert.Empty(t, got.PaymentIntent)
	assert.Empty(t, got.Customer)
	_, ok := got.Shipping()
	assert.False(t, ok)

	_, err = toSession(&stripe.CheckoutSession{})
	assert.ErrorIs(t, err, ErrMissingID)
	_, err = toSession(nil)
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestToInvoice(t *testing.T) {
	inv := &stripe.Invoice{
		ID:             "in_1",
		Created:        1705343400,
		CustomerName:   "John Roe",
		Paid:           true,
		AmountShipping: 800,
		PaymentIntent:  &stripe.PaymentIntent{ID: "pi_2"},
		ShippingCost:   &stripe.InvoiceShippingCost{ShippingRate: &stripe.ShippingRate{ID: "shr_2"}},
		Lines: &stripe.InvoiceLineItemList{
			Data: []*stripe.InvoiceLineItem{
				{Description: "Bagels", Amount: 1200},
				{Description: "Tip", Amount: 300},
			},
		},
	}

	got, err := toInvoice(inv)
	require.NoError(t, err)
	assert.Equal(t, "John Roe", got.Customer)
	assert.Equal(t, "pi_2", got.PaymentIntent)
	assert.Equal(t, "shr_2", got.ShippingRateID)
	assert.Equal(t, report.Cents(800), got.AmountShipping)
	assert.Equal(t, []report.LineItem{{Description: "Bagels", Subtotal: 1200}, {Description: "Tip", Subtotal: 300}}, got.Lines)
}

func TestToInvoice_NoShippingCost(t *testing.T) {
	got, err := toInvoice(&stripe.Invoice{ID: "in_2", Paid: true, AmountShipping: 100})
	require.NoError(t, err)
	assert.Empty(t, got.ShippingRateID)
	assert.Nil(t, got.Lines)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient("", nil)
	assert.ErrorIs(t, err, ErrMissingKey)
}

// fakeStripe serves the handful of list endpoints the client uses.
func fakeStripe(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	retries := int64(0)
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: &retries,
		LeveledLogger:     &leveledLogger{logger: quiet},
	})
	return NewClientWithBackends("sk_test_fake", &stripe.Backends{API: backend, Connect: backend, Uploads: backend}, quiet)
}

func TestClient_ListSessions(t *testing.T) {
	var query map[string]string
	c := fakeStripe(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		q := r.URL.Query()
		query = map[string]string{
			"gte":   q.Get("created[gte]"),
			"lte":   q.Get("created[lte]"),
			"limit": q.Get("limit"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"object": "list",
			"url": "/v1/checkout/sessions",
			"has_more": false,
			"data": [{
				"id": "cs_1",
				"object": "checkout.session",
				"created": 1705343400,
				"payment_status": "paid",
				"payment_intent": "pi_1",
				"customer_details": {"name": "Jane Doe"},
				"shipping_options": [{"shipping_amount": 500, "shipping_rate": "shr_1"}]
			}]
		}`)
	})

	var got []*report.Session
	err := c.ListSessions(context.Background(), &daterange.Range{Gte: 100, Lte: 200}, func(s *report.Session) error {
		got = append(got, s)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"gte": "100", "lte": "200", "limit": "100"}, query)
	require.Len(t, got, 1)
	assert.Equal(t, "cs_1", got[0].ID)
	assert.Equal(t, "pi_1", got[0].PaymentIntent)
	assert.Equal(t, "Jane Doe", got[0].Customer)
	assert.Equal(t, []report.ShippingOption{{RateID: "shr_1", Amount: 500}}, got[0].ShippingOptions)
}

func TestClient_ListSessions_CallbackErrorStops(t *testing.T) {
	c := fakeStripe(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"object":"list","url":"/v1/checkout/sessions","has_more":false,
			"data":[{"id":"cs_1"},{"id":"cs_2"}]}`)
	})

	stop := errors.New("stop")
	calls := 0
	err := c.ListSessions(context.Background(), nil, func(*report.Session) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestClient_ListSessionLineItems(t *testing.T) {
	c := fakeStripe(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions/cs_1/line_items", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"object":"list","url":"/v1/checkout/sessions/cs_1/line_items","has_more":false,
			"data":[
				{"id":"li_1","object":"item","description":"Coffee","amount_subtotal":450},
				{"id":"li_2","object":"item","description":"Delivery Tip","amount_subtotal":500}
			]}`)
	})

	items, err := c.ListSessionLineItems(context.Background(), "cs_1")
	require.NoError(t, err)
	assert.Equal(t, []report.LineItem{
		{Description: "Coffee", Subtotal: 450},
		{Description: "Delivery Tip", Subtotal: 500},
	}, items)
}

func TestClient_ListInvoices_APIError(t *testing.T) {
	c := fakeStripe(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`)
	})

	err := c.ListInvoices(context.Background(), nil, func(*report.Invoice) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list invoices")
}

// Package payments integrates the checkout flow with a hosted-invoice
// payment provider.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Invoice is a hosted invoice created for an order.
type Invoice struct {
	// ID is the provider-assigned invoice identifier.
	ID string `json:"id"`
	// URL is the hosted payment page the customer is sent to.
	URL string `json:"invoice_url"`
}

// Invoicer creates payment invoices for orders.
type Invoicer interface {
	// CreateInvoice creates a hosted invoice and returns it.
	CreateInvoice(ctx context.Context, externalID, payerEmail, description string, amount float64) (*Invoice, error)
}

// XenditClient implements Invoicer against the Xendit invoice API.
type XenditClient struct {
	invoiceURL string
	secretKey  string
	client     *http.Client
}

// NewXenditClient creates a XenditClient for the given invoice endpoint and
// secret key.
func NewXenditClient(invoiceURL, secretKey string) *XenditClient {
	return &XenditClient{
		invoiceURL: invoiceURL,
		secretKey:  secretKey,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateInvoice posts an invoice request and decodes the hosted invoice.
// Invoices are denominated in IDR.
func (x *XenditClient) CreateInvoice(ctx context.Context, externalID, payerEmail, description string, amount float64) (*Invoice, error) {
	payload := map[string]any{
		"external_id":     externalID,
		"amount":          amount,
		"payer_email":     payerEmail,
		"description":     description,
		"currency":        "IDR",
		"payment_methods": []string{"CREDIT_CARD", "BANK_TRANSFER", "QRIS", "EWALLET"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal invoice request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.invoiceURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build invoice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(x.secretKey, "")

	resp, err := x.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("invoice provider returned %d: %s", resp.StatusCode, msg)
	}

	var inv Invoice
	if err := json.NewDecoder(resp.Body).Decode(&inv); err != nil {
		return nil, fmt.Errorf("decode invoice: %w", err)
	}
	return &inv, nil
}

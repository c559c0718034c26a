package gateway

import (
	"context"
	"fmt"

	"github.com/razorpay/razorpay-go"
	"golang.org/x/time/rate"
)

// outbound limit for order creation (20 requests/second, burst 5)
var razorpayRateLimiter = rate.NewLimiter(20, 5)

// creates orders through the Razorpay orders API
type RazorpayClient struct {
	client  *razorpay.Client
	limiter *rate.Limiter
}

// creates a Razorpay client from API credentials
func NewRazorpayClient(keyID, secretKey string) *RazorpayClient {
	return &RazorpayClient{
		client:  razorpay.NewClient(keyID, secretKey),
		limiter: razorpayRateLimiter,
	}
}

type createResult struct {
	body map[string]interface{}
	err  error
}

// creates an order; amount is in minor units (paise for INR). The SDK call is
// not context aware, so ctx only bounds how long we wait for it.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	done := make(chan createResult, 1)

	go func() {
		body, err := c.client.Order.Create(data, nil)
		done <- createResult{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("razorpay order request abandoned: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("razorpay order request failed: %w", res.err)
		}

		return parseOrder(res.body)
	}
}

// converts the decoded JSON order into an Order
func parseOrder(body map[string]interface{}) (*Order, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: missing id", ErrMalformedOrder)
	}

	order := &Order{ID: id}
	order.Currency, _ = body["currency"].(string)
	order.Receipt, _ = body["receipt"].(string)
	order.Status, _ = body["status"].(string)

	switch amount := body["amount"].(type) {
	case float64:
		order.Amount = int64(amount)
	case int64:
		order.Amount = amount
	case int:
		order.Amount = int64(amount)
	default:
		return nil, fmt.Errorf("%w: missing amount", ErrMalformedOrder)
	}

	return order, nil
}

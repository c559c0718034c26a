package gateway

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// LocalGateway mints orders without calling out. It backs STORAGE_DRIVER=memory
// runs where no Razorpay credentials are configured; payments against its
// orders are signed with scripts/sign_payment.
type LocalGateway struct{}

// creates an offline gateway
func NewLocalGateway() *LocalGateway {
	return &LocalGateway{}
}

// returns a created order with a random id
func (g *LocalGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := make([]byte, 7)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate order id: %w", err)
	}

	return &Order{
		ID:       "order_" + hex.EncodeToString(b),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

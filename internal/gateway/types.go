package gateway

import "errors"

var ErrMalformedOrder = errors.New("gateway returned a malformed order")

// order handle returned by the payment gateway; Amount is in minor units
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status,omitempty"`
}

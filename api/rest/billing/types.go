package billing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/inkwell/billing/inkwell/payments"
	"codeberg.org/inkwell/billing/internal/plans"
)

// upgrade actions
const (
	ActionCreateOrder   = "create_order"
	ActionVerifyPayment = "verify_payment"
)

// LooseString accepts a JSON string or number. Checkout clients send
// credits as "50,000" and amounts as bare numbers.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}

		*s = LooseString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}

	*s = LooseString(n.String())
	return nil
}

// UpgradeRequest is the body of POST /api/billing/upgrade
type UpgradeRequest struct {
	Action    string      `json:"action" binding:"required"`
	UserID    string      `json:"userId"`
	Email     string      `json:"email"`
	PlanName  string      `json:"planName"`
	Credits   LooseString `json:"credits" swaggertype:"string"`
	Amount    LooseString `json:"amount" swaggertype:"number"`
	OrderID   string      `json:"orderId"`
	PaymentID string      `json:"paymentId"`
	Signature string      `json:"signature"`
}

// OrderResponse is returned by create_order
type OrderResponse struct {
	Success  bool   `json:"success"`
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// UpgradeResponse is returned by verify_payment
type UpgradeResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	Credits        int64  `json:"credits"`
	Plan           string `json:"plan"`
	Ceiling        int64  `json:"ceiling"`
	LedgerRecorded bool   `json:"ledgerRecorded"`
	Replayed       bool   `json:"replayed"`
}

// PlansResponse lists the catalog
type PlansResponse struct {
	Plans []plans.Plan `json:"plans"`
}

// PaymentsResponse lists ledger entries of one payer, newest first
type PaymentsResponse struct {
	Payments []payments.Entry `json:"payments"`
	Count    int              `json:"count"`
}

// parses a whole amount in major units; "749" and 749.0 are accepted, "" is 0
func parseAmount(raw LooseString) (int64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return 0, nil
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, fmt.Errorf("amount %q is not a whole number", s)
	}

	return int64(f), nil
}

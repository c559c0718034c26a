package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// returns the checkout signature the gateway issues for an order/payment pair:
// hex(HMAC-SHA256(secret, orderID + "|" + paymentID))
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID)) //nolint:errcheck,gosec // hash writes never fail

	return hex.EncodeToString(mac.Sum(nil))
}

// reports whether signature matches exactly, in constant time
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := Sign(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

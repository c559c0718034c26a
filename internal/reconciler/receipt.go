package reconciler

import (
	"strconv"
	"time"
)

const (
	// gateway limit on receipt identifiers
	MaxReceiptLength = 40

	receiptOwnerRunes  = 8
	receiptStampDigits = 7
	anonymousOwner     = "anon"
)

// builds rcpt_<owner prefix>_<last 7 digits of unix millis>, never longer
// than MaxReceiptLength characters
func BuildReceipt(ownerID string, now time.Time) string {
	owner := anonymousOwner
	if ownerID != "" {
		owner = truncateRunes(ownerID, receiptOwnerRunes)
	}

	stamp := strconv.FormatInt(now.UnixMilli(), 10)
	if len(stamp) > receiptStampDigits {
		stamp = stamp[len(stamp)-receiptStampDigits:]
	}

	return truncateRunes("rcpt_"+owner+"_"+stamp, MaxReceiptLength)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}

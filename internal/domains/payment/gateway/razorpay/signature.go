package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// GenerateSignature returns hex(HMAC-SHA256(secret, orderRef|paymentRef)),
// the value the provider hands the client after a successful payment.
func GenerateSignature(orderRef, paymentRef, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderRef + "|" + paymentRef))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares in constant time. Empty inputs never verify.
func VerifySignature(orderRef, paymentRef, signature, secret string) bool {
	if orderRef == "" || paymentRef == "" || signature == "" || secret == "" {
		return false
	}
	expected := GenerateSignature(orderRef, paymentRef, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// SignatureHeader carries the base64 HMAC-SHA256 digest of the raw
// webhook body.
const SignatureHeader = "X-Shopify-Hmac-Sha256"

// VerifyWebhook checks the webhook signature over the exact raw request
// bytes. The comparison is constant time.
func VerifyWebhook(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	digest := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(digest), []byte(signature))
}

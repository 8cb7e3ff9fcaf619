package preauth

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
)

// Size is the length of a hex-encoded signature.
const Size = sha1.Size * 2

// Message builds the signed message for domain at timestamp.
func Message(domain string, timestamp int64) string {
	return domain + "|" + strconv.FormatInt(timestamp, 10)
}

// Sign computes the hex-encoded HMAC-SHA1 of Message(domain, timestamp).
func Sign(secret []byte, domain string, timestamp int64) string {
	mac := hmac.New(sha1.New, secret)
	mac.Write([]byte(Message(domain, timestamp)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a signature against the expected one.
//
// The comparison runs in constant time.
func Verify(secret []byte, domain string, timestamp int64, signature string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	want, _ := hex.DecodeString(Sign(secret, domain, timestamp))
	return hmac.Equal(got, want)
}

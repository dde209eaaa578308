package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"sync/atomic"
	"time"
)

// lastNonce is the high-water mark of issued nonces, shared process-wide so
// that two calls landing in the same millisecond never sign with equal nonces.
var lastNonce atomic.Int64

// nextNonce returns the current time in milliseconds, bumped past any nonce
// already handed out.
func nextNonce() int64 {
	now := time.Now().UnixMilli()
	for {
		last := lastNonce.Load()
		if now <= last {
			now = last + 1
		}
		if lastNonce.CompareAndSwap(last, now) {
			return now
		}
	}
}

// signPayload computes the Nova request signature for a fixed nonce.
// The signed message is the plain concatenation nonce + path + body, in that
// order with no delimiter; the server verifies the exact same string, so the
// order must not change.
func signPayload(secret []byte, nonce int64, path, body string) string {
	message := strconv.FormatInt(nonce, 10) + path + body

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(message))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// sign generates a fresh nonce and the matching signature for one request.
// Nonces are never reused, even for byte-identical payloads.
func (c *Client) sign(path, body string) (int64, string) {
	nonce := nextNonce()
	return nonce, signPayload(c.apiSecret, nonce, path, body)
}

package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignPayload(t *testing.T) {
	const nonce = int64(1700000000000)

	t.Run("Should reproduce the known signature vector", func(t *testing.T) {
		// HMAC-SHA256("secret", "1700000000000/v1/withdraw{}"), base64.
		sig := signPayload([]byte("secret"), nonce, "/v1/withdraw", "{}")
		assert.Equal(t, "hC4EZoFRniIVm/hRcvYP+sFyxK6qKzNHA1+h6vD7dng=", sig)
	})

	t.Run("Should reproduce a second known vector", func(t *testing.T) {
		sig := signPayload([]byte("topsecret"), nonce, "/v1/users/balance", `{"currency":"BTC"}`)
		assert.Equal(t, "UbRVxfLNfDagppDibyy/ZzwsUGtZdqRHMqYduIQkNsU=", sig)
	})

	t.Run("Should be deterministic for a fixed nonce", func(t *testing.T) {
		first := signPayload([]byte("secret"), nonce, "/v1/withdraw", "{}")
		second := signPayload([]byte("secret"), nonce, "/v1/withdraw", "{}")
		assert.Equal(t, first, second)
	})

	t.Run("Should vary with every signing input", func(t *testing.T) {
		base := signPayload([]byte("secret"), nonce, "/v1/withdraw", "{}")

		assert.NotEqual(t, base, signPayload([]byte("other"), nonce, "/v1/withdraw", "{}"), "secret change must change the signature")
		assert.NotEqual(t, base, signPayload([]byte("secret"), nonce+1, "/v1/withdraw", "{}"), "nonce change must change the signature")
		assert.NotEqual(t, base, signPayload([]byte("secret"), nonce, "/v1/transfer", "{}"), "path change must change the signature")
		assert.NotEqual(t, base, signPayload([]byte("secret"), nonce, "/v1/withdraw", `{"a":1}`), "body change must change the signature")
	})

	t.Run("Should not collide across distinct operations", func(t *testing.T) {
		paths := []string{pathWithdraw, pathTransfer, pathBalance, pathExchangeLimit, pathExchangeCancel}
		seen := map[string]string{}
		for _, path := range paths {
			sig := signPayload([]byte("secret"), nonce, path, "{}")
			if prev, ok := seen[sig]; ok {
				t.Fatalf("signature collision between %s and %s", prev, path)
			}
			seen[sig] = path
		}
	})
}

func TestNextNonce(t *testing.T) {
	t.Run("Should be strictly increasing", func(t *testing.T) {
		prev := nextNonce()
		for i := 0; i < 1000; i++ {
			next := nextNonce()
			require.Greater(t, next, prev)
			prev = next
		}
	})
}

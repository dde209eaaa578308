package api

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novahq/nova-go/internal/config"
	"github.com/novahq/nova-go/internal/monitor"
)

const (
	testAPIKey    = "test-key"
	testAPISecret = "test-secret"
)

func newTestClient(t *testing.T, baseURL string) (*Client, *test.Hook) {
	t.Helper()

	base, hook := test.NewNullLogger()
	client, err := New(&config.Config{
		Nova: config.NovaConfig{
			APIPath:   baseURL,
			APIKey:    testAPIKey,
			APISecret: testAPISecret,
		},
	}, monitor.NewTestLogger(base))
	require.NoError(t, err)

	return client, hook
}

func TestNew(t *testing.T) {
	base, _ := test.NewNullLogger()
	logger := monitor.NewTestLogger(base)

	t.Run("Should reject missing credentials", func(t *testing.T) {
		_, err := New(&config.Config{
			Nova: config.NovaConfig{APIPath: "https://api.example.com"},
		}, logger)
		require.Error(t, err)

		_, err = New(&config.Config{
			Nova: config.NovaConfig{APIPath: "https://api.example.com", APIKey: "k"},
		}, logger)
		require.Error(t, err)

		_, err = New(&config.Config{
			Nova: config.NovaConfig{APIKey: "k", APISecret: "s"},
		}, logger)
		require.Error(t, err)
	})

	t.Run("Should build a client from complete configuration", func(t *testing.T) {
		client, err := New(&config.Config{
			Nova: config.NovaConfig{
				APIPath:   "https://api.example.com",
				APIKey:    "k",
				APISecret: "s",
			},
		}, logger)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestClientSigning(t *testing.T) {
	t.Run("Should attach key, nonce and a verifiable signature", func(t *testing.T) {
		var sawPath, sawBody string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sawPath = r.URL.Path
			bodyBytes, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			sawBody = string(bodyBytes)

			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, testAPIKey, r.Header.Get("API-Key"))

			nonce, err := strconv.ParseInt(r.Header.Get("API-Nonce"), 10, 64)
			require.NoError(t, err)

			// Verify the signature the way the server would.
			expected := signPayload([]byte(testAPISecret), nonce, r.URL.Path, sawBody)
			assert.Equal(t, expected, r.Header.Get("API-Sign"))

			w.Write([]byte(`{"currency":"BTC","available":"1.5","reserved":"0.5","total":"2"}`))
		}))
		defer server.Close()

		client, _ := newTestClient(t, server.URL)

		balance, err := client.GetBalance("BTC")
		require.NoError(t, err)

		assert.Equal(t, pathBalance, sawPath)
		assert.JSONEq(t, `{"currency":"BTC"}`, sawBody)
		assert.Equal(t, "BTC", balance.Currency)
		assert.True(t, balance.Total.Equal(decimal.NewFromInt(2)))
	})

	t.Run("Should sign parameterless operations over an empty object body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bodyBytes, _ := io.ReadAll(r.Body)
			assert.Equal(t, "{}", string(bodyBytes))

			nonce, err := strconv.ParseInt(r.Header.Get("API-Nonce"), 10, 64)
			require.NoError(t, err)
			expected := signPayload([]byte(testAPISecret), nonce, r.URL.Path, "{}")
			assert.Equal(t, expected, r.Header.Get("API-Sign"))

			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client, _ := newTestClient(t, server.URL)

		balances, err := client.GetBalances()
		require.NoError(t, err)
		assert.Empty(t, balances)
	})

	t.Run("Should use a fresh nonce per request", func(t *testing.T) {
		var nonces []int64

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nonce, err := strconv.ParseInt(r.Header.Get("API-Nonce"), 10, 64)
			require.NoError(t, err)
			nonces = append(nonces, nonce)
			w.Write([]byte(`{"userId":"u1","email":"a@b.c","verified":true,"createdAt":1}`))
		}))
		defer server.Close()

		client, _ := newTestClient(t, server.URL)

		for i := 0; i < 3; i++ {
			_, err := client.GetAccountInfo()
			require.NoError(t, err)
		}

		require.Len(t, nonces, 3)
		assert.Less(t, nonces[0], nonces[1])
		assert.Less(t, nonces[1], nonces[2])
	})
}

func TestClientErrors(t *testing.T) {
	t.Run("Should surface remote rejections as ApiError with the raw body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte("insufficient funds"))
		}))
		defer server.Close()

		client, hook := newTestClient(t, server.URL)

		balance, err := client.GetBalance("BTC")
		require.Error(t, err)
		assert.Nil(t, balance)

		var apiErr *ApiError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "insufficient funds", apiErr.Message)
		assert.Equal(t, "422", apiErr.Code)

		// The failure is logged at the dispatch layer.
		require.NotEmpty(t, hook.Entries)
		assert.Equal(t, "nova request rejected", hook.LastEntry().Message)
	})

	t.Run("Should surface empty error bodies through the status band", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client, _ := newTestClient(t, server.URL)

		_, err := client.GetTicker("BTC-EUR")
		var apiErr *ApiError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Server error", apiErr.Message)
		assert.Equal(t, "503", apiErr.Code)
	})

	t.Run("Should fail with ApiError when a 2xx body does not decode", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"pair":`))
		}))
		defer server.Close()

		client, _ := newTestClient(t, server.URL)

		_, err := client.GetOrderBook("BTC-EUR")
		var apiErr *ApiError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "200", apiErr.Code)
	})

	t.Run("Should return a transport error without unfolding when no response arrives", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client, hook := newTestClient(t, server.URL)
		server.Close()

		_, err := client.GetBalances()
		require.Error(t, err)

		var apiErr *ApiError
		assert.False(t, errors.As(err, &apiErr), "transport failures are not ApiError")
		require.NotEmpty(t, hook.Entries)
		assert.Equal(t, "nova request failed before a response was obtained", hook.LastEntry().Message)
	})
}

func TestClientCollections(t *testing.T) {
	t.Run("Should drop undecodable elements and keep the rest", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
				{"currency":"BTC","available":"1","reserved":"0","total":"1"},
				{"currency":"ETH","available":{"bad":"shape"},"reserved":"0","total":"2"},
				{"currency":"LTC","available":"3","reserved":"0","total":"3"}
			]`))
		}))
		defer server.Close()

		client, hook := newTestClient(t, server.URL)

		balances, err := client.GetBalances()
		require.NoError(t, err)
		require.Len(t, balances, 2)
		assert.Equal(t, "BTC", balances[0].Currency)
		assert.Equal(t, "LTC", balances[1].Currency)
		require.NotEmpty(t, hook.Entries)
	})
}

func TestCancelOrder(t *testing.T) {
	t.Run("Should report success for any 2xx status regardless of body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			w.Write([]byte("whatever"))
		}))
		defer server.Close()

		client, _ := newTestClient(t, server.URL)

		cancelled, err := client.CancelOrder("o-1")
		require.NoError(t, err)
		assert.True(t, cancelled)
	})

	t.Run("Should report failure for non-2xx without an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))
		defer server.Close()

		client, _ := newTestClient(t, server.URL)

		cancelled, err := client.CancelOrder("o-1")
		require.NoError(t, err)
		assert.False(t, cancelled)
	})

	t.Run("Should propagate transport errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client, _ := newTestClient(t, server.URL)
		server.Close()

		cancelled, err := client.CancelOrder("o-1")
		require.Error(t, err)
		assert.False(t, cancelled)
	})
}

func TestValidateBlockchainAddress(t *testing.T) {
	newValidateServer := func(status int, body string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(body))
		}))
	}

	t.Run("Should parse the literal body text", func(t *testing.T) {
		server := newValidateServer(http.StatusOK, "true")
		defer server.Close()
		client, _ := newTestClient(t, server.URL)

		valid, err := client.ValidateBlockchainAddress("BTC", "bc1qexample")
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("Should parse a negative answer", func(t *testing.T) {
		server := newValidateServer(http.StatusOK, "false\n")
		defer server.Close()
		client, _ := newTestClient(t, server.URL)

		valid, err := client.ValidateBlockchainAddress("BTC", "nonsense")
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("Should error on an unparsable body", func(t *testing.T) {
		server := newValidateServer(http.StatusOK, "maybe")
		defer server.Close()
		client, _ := newTestClient(t, server.URL)

		_, err := client.ValidateBlockchainAddress("BTC", "bc1qexample")
		require.Error(t, err)
	})

	t.Run("Should error on a non-2xx response", func(t *testing.T) {
		server := newValidateServer(http.StatusBadRequest, "unsupported currency")
		defer server.Close()
		client, _ := newTestClient(t, server.URL)

		_, err := client.ValidateBlockchainAddress("XYZ", "bc1qexample")
		require.Error(t, err)

		var apiErr *ApiError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "400", apiErr.Code)
		assert.Equal(t, "unsupported currency", apiErr.Message)
	})
}

package api

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unfoldTarget struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestUnfold(t *testing.T) {
	t.Run("Should synthesize band messages for empty bodies", func(t *testing.T) {
		cases := []struct {
			status  int
			message string
		}{
			{400, "Request error"},
			{404, "Request error"},
			{499, "Request error"},
			{500, "Server error"},
			{503, "Server error"},
			{599, "Server error"},
			{302, "Unknown error"},
			{200, "Unknown error"},
		}

		for _, tc := range cases {
			result := unfold[unfoldTarget](&response{StatusCode: tc.status})
			require.False(t, result.OK(), "status %d", tc.status)
			assert.Equal(t, tc.message, result.Err().Message, "status %d", tc.status)
			assert.Equal(t, strconv.Itoa(tc.status), result.Err().Code, "status %d", tc.status)
		}
	})

	t.Run("Should surface the transport message when present without a body", func(t *testing.T) {
		result := unfold[unfoldTarget](&response{StatusCode: 502, Message: "connection reset by peer"})
		require.False(t, result.OK())
		assert.Equal(t, "connection reset by peer", result.Err().Message)
		assert.Equal(t, "502", result.Err().Code)
	})

	t.Run("Should decode a matching 2xx body into the value", func(t *testing.T) {
		result := unfold[unfoldTarget](&response{
			StatusCode: 200,
			Body:       []byte(`{"name":"static","count":3}`),
		})
		require.True(t, result.OK())
		require.Nil(t, result.Err())
		assert.Equal(t, unfoldTarget{Name: "static", Count: 3}, result.Value())
	})

	t.Run("Should fail instead of raising when a 2xx body does not match", func(t *testing.T) {
		result := unfold[unfoldTarget](&response{
			StatusCode: 201,
			Body:       []byte(`{"name":`),
		})
		require.False(t, result.OK())
		assert.Equal(t, "201", result.Err().Code)
		assert.Contains(t, result.Err().Message, "failed to decode response body")
	})

	t.Run("Should surface a non-2xx body verbatim", func(t *testing.T) {
		body := `{"reason":"insufficient funds","detail":42}`
		result := unfold[unfoldTarget](&response{StatusCode: 422, Body: []byte(body)})
		require.False(t, result.OK())
		assert.Equal(t, body, result.Err().Message)
		assert.Equal(t, "422", result.Err().Code)
	})

	t.Run("Should never hold both value and error", func(t *testing.T) {
		ok := unfold[unfoldTarget](&response{StatusCode: 200, Body: []byte(`{"name":"x"}`)})
		assert.True(t, ok.OK())
		assert.Nil(t, ok.Err())

		bad := unfold[unfoldTarget](&response{StatusCode: 500, Body: []byte("boom")})
		assert.False(t, bad.OK())
		assert.NotNil(t, bad.Err())
		assert.Zero(t, bad.Value())
	})
}

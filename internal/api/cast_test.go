package api

import (
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novahq/nova-go/internal/monitor"
)

type castTarget struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

func TestCastEach(t *testing.T) {
	t.Run("Should skip malformed elements and keep order", func(t *testing.T) {
		base, hook := test.NewNullLogger()
		logger := monitor.NewTestLogger(base)

		elements := []json.RawMessage{
			json.RawMessage(`{"id":1,"label":"a"}`),
			json.RawMessage(`{"id":2,"label":"b"}`),
			json.RawMessage(`{"id":"not-a-number","label":"c"}`),
			json.RawMessage(`{"id":4,"label":"d"}`),
			json.RawMessage(`{"id":5,"label":"e"}`),
		}

		out := castEach[castTarget](logger, elements)

		require.Len(t, out, 4)
		assert.Equal(t, []castTarget{
			{ID: 1, Label: "a"},
			{ID: 2, Label: "b"},
			{ID: 4, Label: "d"},
			{ID: 5, Label: "e"},
		}, out)

		// The dropped element is logged with its payload and target type.
		require.Len(t, hook.Entries, 1)
		entry := hook.LastEntry()
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.Equal(t, 2, entry.Data["index"])
		assert.Contains(t, entry.Data["payload"], "not-a-number")
	})

	t.Run("Should succeed on an all-good list", func(t *testing.T) {
		base, hook := test.NewNullLogger()
		logger := monitor.NewTestLogger(base)

		out := castEach[castTarget](logger, []json.RawMessage{
			json.RawMessage(`{"id":7,"label":"x"}`),
		})

		require.Len(t, out, 1)
		assert.Equal(t, castTarget{ID: 7, Label: "x"}, out[0])
		assert.Empty(t, hook.Entries)
	})

	t.Run("Should return an empty slice for an empty list", func(t *testing.T) {
		base, _ := test.NewNullLogger()
		logger := monitor.NewTestLogger(base)

		out := castEach[castTarget](logger, nil)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})
}

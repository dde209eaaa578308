package api

import (
	"encoding/json"
	"fmt"

	"github.com/novahq/nova-go/internal/monitor"
)

// castEach decodes every element of a raw JSON list into T. Elements that do
// not match the target shape are logged and omitted; the survivors keep their
// relative order and the call itself never fails. A partially broken payload
// therefore still yields the usable part of the list.
func castEach[T any](logger *monitor.Logger, elements []json.RawMessage) []T {
	out := make([]T, 0, len(elements))

	for i, raw := range elements {
		var value T
		if err := json.Unmarshal(raw, &value); err != nil {
			logger.WithFields(map[string]interface{}{
				"index":   i,
				"type":    fmt.Sprintf("%T", value),
				"payload": string(raw),
			}).WithError(err).Warn("skipping element that does not match expected shape")
			continue
		}
		out = append(out, value)
	}

	return out
}

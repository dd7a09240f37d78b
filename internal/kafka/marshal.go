package kafka

import (
	"encoding/json"
	"fmt"
)

// MustMarshal utk struct event yang kita kontrol sendiri; gagal marshal di sini
// berarti bug, bukan kondisi runtime.
func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// UnwrapPayload decode payload envelope ke tipe konkretnya.
func UnwrapPayload[T any](payload json.RawMessage) (T, error) {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}

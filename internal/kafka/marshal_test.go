package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnwrapPayload(t *testing.T) {
	type payload struct {
		Username string `json:"username"`
	}

	p, err := UnwrapPayload[payload](json.RawMessage(`{"username":"budi@mail.com"}`))
	require.NoError(t, err)
	require.Equal(t, "budi@mail.com", p.Username)

	_, err = UnwrapPayload[payload](json.RawMessage(`{`))
	require.Error(t, err)
}

func TestMustMarshalPanicsOnUnsupported(t *testing.T) {
	require.Panics(t, func() { MustMarshal(make(chan int)) })
}

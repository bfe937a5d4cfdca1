package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfileJSONOmitsEmail(t *testing.T) {
	out, err := json.Marshal(Profile{ID: 7, Username: "jake", Email: "jake@jake.jake"})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(out, &fields))
	require.NotContains(t, fields, "email")
	require.NotContains(t, string(out), "jake@jake.jake")
	require.Equal(t, "jake", fields["username"])
}

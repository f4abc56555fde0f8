package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRejectsBadUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no command", args: nil},
		{name: "unknown command", args: []string{"deposit"}},
		{name: "migrate without action", args: []string{"migrate"}},
		{name: "unknown migrate action", args: []string{"migrate", "sideways"}},
		{name: "non numeric steps", args: []string{"migrate", "down", "two"}},
		{name: "zero steps", args: []string{"migrate", "down", "0"}},
		{name: "release without id", args: []string{"release"}},
		{name: "status with bad id", args: []string{"status", "tx-1"}},
		{name: "reconcile bad duration", args: []string{"reconcile", "-older-than", "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, &bytes.Buffer{})
			assert.ErrorIs(t, err, errUsage)
		})
	}
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"help"}, &out))
	assert.Contains(t, out.String(), "reconcile")
}

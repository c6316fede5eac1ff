package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllCommandsRegistered(t *testing.T) {
	want := []string{"show", "list", "browse", "add", "reset", "save", "version"}
	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, registered[name], "command %q not registered", name)
	}
}

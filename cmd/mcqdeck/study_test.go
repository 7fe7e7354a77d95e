package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcqdeck/mcqdeck/internal/testutil"
)

func TestNewStudyCommand(t *testing.T) {
	cmd := newStudyCommand()

	assert.Equal(t, "study <deck id>", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestStudyCommand_missingDeck(t *testing.T) {
	configFile = testutil.SetupTestConfig(t, t.TempDir())
	t.Cleanup(func() {
		configFile = ""
	})

	cmd := newStudyCommand()
	err := cmd.RunE(cmd, []string{"no-such-deck"})
	assert.ErrorContains(t, err, `deck "no-such-deck" not found`)
}

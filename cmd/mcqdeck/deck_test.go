package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcqdeck/mcqdeck/internal/testutil"
)

func TestNewDeckCommand(t *testing.T) {
	cmd := newDeckCommand()

	assert.Equal(t, "decks", cmd.Use)
	assert.Equal(t, "Manage flashcard decks", cmd.Short)
	assert.True(t, cmd.HasSubCommands())
}

func TestNewDeckImportCommand(t *testing.T) {
	cmd := newDeckImportCommand()

	assert.Equal(t, "import <file>", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	nameFlag := cmd.Flags().Lookup("name")
	assert.NotNil(t, nameFlag)
	assert.Equal(t, "", nameFlag.DefValue)
}

func TestNewDeckExportCommand(t *testing.T) {
	cmd := newDeckExportCommand()

	assert.Equal(t, "export <deck id>", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	formatFlag := cmd.Flags().Lookup("format")
	assert.NotNil(t, formatFlag)
	assert.Equal(t, "yaml", formatFlag.DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("output"))
}

func TestDeckImportAndList(t *testing.T) {
	tmpDir := t.TempDir()
	configFile = testutil.SetupTestConfig(t, tmpDir)
	t.Cleanup(func() {
		configFile = ""
	})

	deckFile := filepath.Join(tmpDir, "capitals.txt")
	require.NoError(t, os.WriteFile(deckFile,
		[]byte("Capital of France? | Paris | Lyon | Nice | Lille | A\n"), 0644))

	importCmd := newDeckImportCommand()
	require.NoError(t, importCmd.RunE(importCmd, []string{deckFile}))

	cfg, err := loadConfig()
	require.NoError(t, err)
	store, err := newStore(cfg)
	require.NoError(t, err)

	decks, err := store.GetDecks(context.Background())
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, "capitals", decks[0].Name)
	require.Len(t, decks[0].Questions, 1)
	assert.Equal(t, "A", decks[0].Questions[0].Answer)

	listCmd := newDeckListCommand()
	assert.NoError(t, listCmd.RunE(listCmd, nil))

	deleteCmd := newDeckDeleteCommand()
	require.NoError(t, deleteCmd.RunE(deleteCmd, []string{decks[0].ID}))

	decks, err = store.GetDecks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, decks)
}

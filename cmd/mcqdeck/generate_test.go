package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mcqdeck/mcqdeck/internal/inference"
	mock_inference "github.com/mcqdeck/mcqdeck/internal/mocks/inference"
	"github.com/mcqdeck/mcqdeck/internal/storage"
	"github.com/mcqdeck/mcqdeck/internal/testutil"
)

func TestNewGenerateCommand(t *testing.T) {
	cmd := newGenerateCommand()

	assert.Equal(t, "generate <file>", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	countFlag := cmd.Flags().Lookup("count")
	assert.NotNil(t, countFlag)
	assert.Equal(t, "5", countFlag.DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("name"))
}

func TestGenerateCommand_requiresAPIKey(t *testing.T) {
	configFile = testutil.SetupTestConfig(t, t.TempDir())
	t.Cleanup(func() {
		configFile = ""
	})
	t.Setenv("OPENAI_API_KEY", "")

	cmd := newGenerateCommand()
	err := cmd.RunE(cmd, []string{"material.txt"})
	assert.ErrorContains(t, err, "OPENAI_API_KEY environment variable is required")
}

func TestGenerateDeck(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		generated string
		clientErr error
		wantErr   string
		wantCount int
	}{
		{
			name:      "parses and saves the generated questions",
			generated: "Q1? | a | b | c | d | A\nQ2? | a | b | c | d | B",
			wantCount: 2,
		},
		{
			name:      "unparseable model output",
			generated: "Sorry, I cannot do that.",
			wantErr:   "no questions could be parsed",
		},
		{
			name:      "client error",
			clientErr: assert.AnError,
			wantErr:   "client.GenerateQuestions()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_inference.NewMockClient(ctrl)
			client.EXPECT().
				GenerateQuestions(ctx, inference.GenerateQuestionsParams{Content: "material", Count: 2}).
				Return(tt.generated, tt.clientErr)

			store, err := storage.NewFileStore(t.TempDir())
			require.NoError(t, err)

			d, err := generateDeck(ctx, client, store, "Generated", "material", 2)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Generated", d.Name)
			assert.Len(t, d.Questions, tt.wantCount)

			saved, err := store.GetDeck(ctx, d.ID)
			require.NoError(t, err)
			assert.Equal(t, d.Name, saved.Name)
		})
	}
}

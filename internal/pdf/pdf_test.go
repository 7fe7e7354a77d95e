package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	t.Run("rejects non-pdf paths", func(t *testing.T) {
		_, err := RenderMarkdown([]byte("# Title"), filepath.Join(t.TempDir(), "out.txt"))
		assert.ErrorContains(t, err, "must have .pdf extension")
	})

	t.Run("writes a pdf file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.pdf")
		got, err := RenderMarkdown([]byte("# Title\n\nSome **bold** text.\n"), path)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	})
}

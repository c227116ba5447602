package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorSchemes(t *testing.T) {
	assert.Equal(t, "GET", NoColorScheme().Method.Sprint("GET"))
	assert.NotEqual(t, "GET", NewFormatter(false, false).colors.Method.Sprint("GET"))
}

func TestIcons(t *testing.T) {
	assert.Equal(t, "✓", SuccessIcon(true))
	assert.Equal(t, "✗", ErrorIcon(true))
	assert.Equal(t, "ℹ", InfoIcon(true))
	assert.Equal(t, "⚠", WarningIcon(true))

	assert.Contains(t, SuccessIcon(false), "✓")
	assert.NotEqual(t, "✓", SuccessIcon(false))
}

func TestColorEnabled(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, ColorEnabled(f), "regular files are not terminals")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(os.Stdout))
}

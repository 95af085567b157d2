package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets", "languages.svg")
	content := []byte("<svg></svg>\n")

	changed, err := Write(path, content)
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestWrite_UnchangedContentIsDetected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "languages.svg")
	content := []byte("<svg></svg>\n")

	changed, err := Write(path, content)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = Write(path, content)
	require.NoError(t, err)
	assert.False(t, changed, "identical content must be reported as unchanged")

	changed, err = Write(path, []byte("<svg>v2</svg>\n"))
	require.NoError(t, err)
	assert.True(t, changed)
}

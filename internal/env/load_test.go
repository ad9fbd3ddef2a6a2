package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	body := "# viewer overrides\n\nBRAINMAP_ASSET=\"assets/models/brain.glb\"\nexport BRAINMAP_LOG='logs/x.log'\nnot a pair\n=novalue\nEMPTY=\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	vars, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"BRAINMAP_ASSET": "assets/models/brain.glb",
		"BRAINMAP_LOG":   "logs/x.log",
		"EMPTY":          "",
	}, vars)
}

func TestParseMissing(t *testing.T) {
	t.Parallel()

	vars, err := Parse(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, vars)
}

// Not parallel: mutates the process environment.
func TestLoadKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BRAINMAP_TEST_A=file\nBRAINMAP_TEST_B=file\n"), 0644))
	t.Setenv("BRAINMAP_TEST_A", "process")
	t.Setenv("BRAINMAP_TEST_B", "")
	require.NoError(t, os.Unsetenv("BRAINMAP_TEST_B"))

	require.NoError(t, Load(path))
	assert.Equal(t, "process", os.Getenv("BRAINMAP_TEST_A"))
	assert.Equal(t, "file", os.Getenv("BRAINMAP_TEST_B"))
}

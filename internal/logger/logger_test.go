package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoggerWritesFileConsoleAndTail(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "brainmap.log")
	var console bytes.Buffer
	l, err := New(Options{Path: path, Console: &console, TailSize: 2})
	require.NoError(t, err)

	l.Info("asset loaded", zap.String("source", "brain.glb"))
	l.Debug("hidden at info level")
	l.Warn("unmatched primitive", zap.Int("primitive", 3))
	l.Error("load failed")
	require.NoError(t, l.Close())

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "unmatched primitive")
	assert.Contains(t, lines[1], "load failed")

	assert.Contains(t, console.String(), "asset loaded")
	assert.NotContains(t, console.String(), "hidden at info level")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	fileLines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, fileLines, 3)
	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(fileLines[0]), &first))
	assert.Equal(t, "asset loaded", first["msg"])
	assert.Equal(t, "brain.glb", first["source"])
}

func TestLoggerVerboseWithoutFile(t *testing.T) {
	t.Parallel()

	var console bytes.Buffer
	l, err := New(Options{Path: "-", Console: &console, Verbose: true})
	require.NoError(t, err)
	l.Debug("hover changed", zap.String("region", "limbic"))
	require.NoError(t, l.Close())
	assert.Contains(t, console.String(), "hover changed")
	assert.Len(t, l.Lines(), 1)
}

func TestNop(t *testing.T) {
	t.Parallel()

	l := Nop()
	l.Info("dropped")
	assert.Nil(t, l.Lines())
	assert.NoError(t, l.Close())
}

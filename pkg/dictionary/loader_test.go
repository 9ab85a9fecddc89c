package dictionary

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/snipserve/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadText(t *testing.T) {
	words, err := ReadText(strings.NewReader("# engine api\nspawn\n\n  despawn 120\nemit\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"spawn", "despawn", "emit"}, words)
}

func TestBinaryRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, []string{"vector", "über", "quaternion"}))

	words, err := ReadBinary(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"vector", "über", "quaternion"}, words)
}

func TestReadBinaryTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, []string{"vector", "matrix"}))

	_, err := ReadBinary(bytes.NewReader(buf.Bytes()[:buf.Len()-3]))
	assert.Error(t, err)
}

func TestReadBinaryBadCount(t *testing.T) {
	_, err := ReadBinary(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff}))
	assert.ErrorContains(t, err, "invalid word count")
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()

	format, err := DetectFileFormat(writeFile(t, dir, "api.TXT", []byte("x")))
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	_, err = DetectFileFormat(writeFile(t, dir, "api.bin", []byte{1}))
	assert.ErrorContains(t, err, "too small")

	_, err = DetectFileFormat(writeFile(t, dir, "api.csv", []byte("x")))
	assert.ErrorContains(t, err, "unsupported")
}

func TestLoadIntoDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", []byte("spawn\nemit\n"))
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, []string{"spawner"}))
	writeFile(t, dir, "b.bin", buf.Bytes())
	writeFile(t, dir, "notes.md", []byte("ignored"))

	trie := suggest.NewTrie()
	n, err := LoadInto(trie, dir)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"", "er"}, trie.FindCompletions("spawn"))
}

func TestLoadMissing(t *testing.T) {
	_, err := LoadInto(suggest.NewTrie(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

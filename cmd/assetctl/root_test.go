package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/assetkit/reader"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := RootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func assetDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string][]byte{
		"readme.txt": []byte("hello"),
		"level.json": []byte(`{"name":"intro"}`),
		"level.yaml": []byte("name: cave\n"),
		"data/blob":  {1, 2, 3, 4},
	}
	mask, err := reader.NewMask(1, 2, 3).MarshalBinary()
	require.NoError(t, err)
	files["walls.mask"] = mask

	for name, data := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, data, 0o644))
	}
	return dir
}

func TestExists(t *testing.T) {
	dir := assetDir(t)

	out, err := run(t, "--dir", dir, "exists", "readme.txt", "nope.txt")
	require.NoError(t, err)
	assert.Equal(t, "readme.txt\ttrue\nnope.txt\tfalse\n", out)
}

func TestLoad(t *testing.T) {
	dir := assetDir(t)

	tests := []struct {
		as   string
		name string
		want string
	}{
		{"raw", "data/blob", "data/blob\t4 bytes\n"},
		{"text", "readme.txt", "hello\n"},
		{"mask", "walls.mask", "walls.mask\t3 cells\n"},
		{"json", "level.json", "{\"name\":\"intro\"}\n"},
		{"yaml", "level.yaml", "{\"name\":\"cave\"}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.as, func(t *testing.T) {
			out, err := run(t, "--dir", dir, "load", "--as", tt.as, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestLoad_WithRootAndStats(t *testing.T) {
	dir := assetDir(t)

	out, err := run(t, "--dir", dir, "--root", "data", "--stats", "load", "blob", "blob")
	require.NoError(t, err)
	assert.Contains(t, out, "blob\t4 bytes\n")
	assert.Contains(t, out, "loads=1 errors=0 hits=1")
}

func TestLoad_Errors(t *testing.T) {
	dir := assetDir(t)

	_, err := run(t, "--dir", dir, "load", "missing.bin")
	assert.ErrorContains(t, err, "not found")

	_, err = run(t, "--dir", dir, "load", "--as", "png", "readme.txt")
	assert.ErrorContains(t, err, "unknown decoder")

	_, err = run(t, "--config", filepath.Join(dir, "none.yaml"), "exists", "x")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := assetDir(t)
	cfgPath := filepath.Join(t.TempDir(), "assetkit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("resolvers:\n  - type: dir\n    path: "+dir+"\n"), 0o644))

	out, err := run(t, "--config", cfgPath, "load", "--as", "text", "readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

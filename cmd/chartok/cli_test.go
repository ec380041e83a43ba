package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/chartok/tokenizer"
)

func writeExampleConfig(t *testing.T) string {
	t.Helper()

	tok, err := tokenizer.New(tokenizer.ExampleConfig())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), tokenizer.DefaultConfigName)
	require.NoError(t, tokenizer.Save(tok, path))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewCLI()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeCommand(t *testing.T) {
	path := writeExampleConfig(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "pad to max length",
			args: []string{"encode", "-c", path, "--max-length", "6", "ab"},
			want: "2 4 5 3 0 0\n",
		},
		{
			name: "truncate",
			args: []string{"encode", "-c", path, "--max-length", "3", "ab"},
			want: "2 4 5\n",
		},
		{
			name: "no padding",
			args: []string{"encode", "-c", path, "--padding", "none", "ab", "ba"},
			want: "2 4 5 3\n2 5 4 3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEncodeCommand_DefaultMaxLength(t *testing.T) {
	path := writeExampleConfig(t)

	out, err := runCLI(t, "encode", "-c", path, "ab")
	require.NoError(t, err)
	assert.Len(t, strings.Fields(out), tokenizer.DefaultMaxLength)
}

func TestEncodeCommand_InvalidMaxLength(t *testing.T) {
	path := writeExampleConfig(t)

	_, err := runCLI(t, "encode", "-c", path, "--max-length", "0", "ab")
	assert.Error(t, err)
}

func TestDecodeCommand(t *testing.T) {
	path := writeExampleConfig(t)

	out, err := runCLI(t, "decode", "-c", path, "2", "4", "5", "3", "0", "0")
	require.NoError(t, err)
	assert.Equal(t, "ab\n", out)

	out, err = runCLI(t, "decode", "-c", path, "--keep-special", "[2,4,5,3,0,0]")
	require.NoError(t, err)
	assert.Equal(t, "<bos>ab\n", out)

	_, err = runCLI(t, "decode", "-c", path, "x")
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	path := writeExampleConfig(t)
	out := filepath.Join(t.TempDir(), "exported.yaml")

	_, err := runCLI(t, "export", "-c", path, out)
	require.NoError(t, err)

	tok, err := tokenizer.Load(out)
	require.NoError(t, err)
	assert.Equal(t, tokenizer.ExampleConfig(), tok.ExportConfig())
}

func TestVocabCommand(t *testing.T) {
	path := writeExampleConfig(t)

	out, err := runCLI(t, "vocab", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "CODEPOINT")
	assert.Contains(t, out, `"<pad>"`)
	assert.Contains(t, out, "U+0061")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 7)
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv(configEnv, writeExampleConfig(t))

	out, err := runCLI(t, "encode", "--padding", "none", "a")
	require.NoError(t, err)
	assert.Equal(t, "2 4 3\n", out)
}

func TestConfigNotFound(t *testing.T) {
	t.Setenv(configEnv, filepath.Join(t.TempDir(), "missing.json"))

	_, err := runCLI(t, "encode", "a")
	require.Error(t, err)
	assert.ErrorIs(t, err, tokenizer.ErrConfigNotFound)
}

func TestInvalidLogLevel(t *testing.T) {
	path := writeExampleConfig(t)

	_, err := runCLI(t, "encode", "-c", path, "--log-level", "loud", "a")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "chartok "+version+"\n", out)
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"1", "2,3", "[4, 5]"})
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3, 4, 5}, ids)

	_, err = parseIDs([]string{"99999999999"})
	assert.Error(t, err)
}

func TestMain(m *testing.M) {
	// Keep a stray CHARTOK_CONFIG in the developer's shell from leaking
	// into tests that rely on -c.
	_ = os.Unsetenv(configEnv)
	os.Exit(m.Run())
}

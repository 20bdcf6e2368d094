package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScript(t *testing.T, capacity int, script string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	in := NewInterpreter(capacity, &out, zerolog.Nop())
	err := in.Run(context.Background(), strings.NewReader(script))
	return out.String(), err
}

func TestInterpreter_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		script   string
		want     string
	}{
		{
			name:     "evicts oldest",
			capacity: 2,
			script:   "put a 1\nput b 2\nput c 3\nget a\nget b\nget c\n",
			want:     "(nil)\n2\n3\n",
		},
		{
			name:     "get saves from eviction",
			capacity: 2,
			script:   "put a 1\nput b 2\nget a\nput c 3\nget b\nget a\nget c\n",
			want:     "1\n(nil)\n1\n3\n",
		},
		{
			name:     "update in place",
			capacity: 2,
			script:   "put a 1\nput b 2\nput a 99\nget a\nget b\nlen\n",
			want:     "99\n2\n2\n",
		},
		{
			name:     "capacity one",
			capacity: 1,
			script:   "put a 1\nput b 2\nget a\nget b\nlen\n",
			want:     "(nil)\n2\n1\n",
		},
		{
			name:     "empty cache",
			capacity: 2,
			script:   "get x\nlen\nkeys\n",
			want:     "(nil)\n0\n(empty)\n",
		},
		{
			name:     "peek does not promote",
			capacity: 2,
			script:   "put a 1\nput b 2\npeek a\nput c 3\nkeys\n",
			want:     "1\nc b\n",
		},
		{
			name:     "comments and blank lines",
			capacity: 2,
			script:   "# seed\n\n  PUT a 1  \nkeys\n",
			want:     "a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runScript(t, tt.capacity, tt.script)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterpreter_Errors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		line   int
		target error
	}{
		{"unknown command", "put a 1\ndel a\n", 2, ErrUnknownCommand},
		{"put missing value", "put a\n", 1, ErrArgCount},
		{"get extra arg", "\nget a b\n", 2, ErrArgCount},
		{"len with arg", "len 1\n", 1, ErrArgCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runScript(t, 2, tt.script)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var scriptErr *ScriptError
			require.True(t, errors.As(err, &scriptErr))
			assert.Equal(t, tt.line, scriptErr.Line)
		})
	}
}

func TestInterpreter_StopsOnFirstError(t *testing.T) {
	out, err := runScript(t, 2, "put a 1\nbogus\nget a\n")
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestInterpreter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := NewInterpreter(2, &bytes.Buffer{}, zerolog.Nop())
	err := in.Run(ctx, strings.NewReader("put a 1\n"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, in.Cache().Len())
}

func TestRootCmd_ReadsStdin(t *testing.T) {
	chdir(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader("put a 1\nput b 2\nput c 3\nkeys\n"))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--capacity", "2", "--log-level", "debug", "--log-format", "json"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "c b\n", stdout.String())
	assert.Contains(t, stderr.String(), "evicted least recently used entry")
	assert.Contains(t, stderr.String(), `"component":"cache"`)
}

func TestRootCmd_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	script := filepath.Join(dir, "ops.txt")
	require.NoError(t, os.WriteFile(script, []byte("put k v\nget k\n"), 0o644))

	var stdout bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-f", script})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "v\n", stdout.String())
}

func TestRootCmd_RejectsInvalidConfig(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--capacity=-1"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity must be non-negative")
}

func TestRootCmd_ScriptErrorFails(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader("frobnicate\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

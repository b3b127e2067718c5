package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AndrewDonelson/rediscodec/internal/cli"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := cli.NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func newRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr
}

const ziggy = `{"id":1,"name":"Ziggy","tags":["a","b"]}`

func TestCLI_SetGet(t *testing.T) {
	mr := newRedis(t)

	out, _, err := run(t, "--addr", mr.Addr(), "set", "user:1", ziggy)
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)

	out, _, err = run(t, "--addr", mr.Addr(), "get", "user:1")
	require.NoError(t, err)
	assert.JSONEq(t, ziggy, out)
}

func TestCLI_SetGet_JSONCodec(t *testing.T) {
	mr := newRedis(t)

	_, _, err := run(t, "--addr", mr.Addr(), "--codec", "json", "set", "user:1", ziggy)
	require.NoError(t, err)

	stored, err := mr.Get("user:1")
	require.NoError(t, err)
	assert.JSONEq(t, ziggy, stored)

	out, _, err := run(t, "--addr", mr.Addr(), "--codec", "json", "get", "user:1")
	require.NoError(t, err)
	assert.JSONEq(t, ziggy, out)
}

func TestCLI_Set_TTL(t *testing.T) {
	mr := newRedis(t)

	_, _, err := run(t, "--addr", mr.Addr(), "set", "--ttl", "90s", "k", `"v"`)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, mr.TTL("k"))
}

func TestCLI_Set_SubMillisecondTTL(t *testing.T) {
	mr := newRedis(t)

	_, _, err := run(t, "--addr", mr.Addr(), "set", "--ttl", "500us", "k", `"v"`)
	require.NoError(t, err)
	assert.Equal(t, time.Millisecond, mr.TTL("k"))
}

func TestCLI_Get_Missing(t *testing.T) {
	mr := newRedis(t)

	_, _, err := run(t, "--addr", mr.Addr(), "get", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `key "nope" not found`)
}

func TestCLI_Get_Corrupt(t *testing.T) {
	mr := newRedis(t)
	require.NoError(t, mr.Set("bad", "\xc1"))

	_, _, err := run(t, "--addr", mr.Addr(), "get", "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Decode")
}

func TestCLI_Set_InvalidJSON(t *testing.T) {
	mr := newRedis(t)

	_, _, err := run(t, "--addr", mr.Addr(), "set", "k", "{nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON value")
	assert.False(t, mr.Exists("k"))
}

func TestCLI_UnsupportedCodec(t *testing.T) {
	mr := newRedis(t)

	_, _, err := run(t, "--addr", mr.Addr(), "--codec", "protobuf", "get", "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot carry untyped values")
}

func TestCLI_Inspect(t *testing.T) {
	mr := newRedis(t)
	_, _, err := run(t, "--addr", mr.Addr(), "set", "user:1", ziggy)
	require.NoError(t, err)
	require.NoError(t, mr.Set("bad", "\xc1"))

	out, _, err := run(t, "--addr", mr.Addr(), "inspect", "user:1")
	require.NoError(t, err)
	assert.Contains(t, out, "kind:   bulk")
	assert.Contains(t, out, "decode: ok (msgpack)")

	out, _, err = run(t, "--addr", mr.Addr(), "inspect", "missing")
	require.NoError(t, err)
	assert.Contains(t, out, "kind:   nil")
	assert.Contains(t, out, "decode: TypeMismatch")

	out, _, err = run(t, "--addr", mr.Addr(), "inspect", "bad")
	require.NoError(t, err)
	assert.Contains(t, out, "decode: Decode")
}

func TestCLI_EnvOverridesDefault(t *testing.T) {
	mr := newRedis(t)
	t.Setenv("REDISCODEC_ADDR", mr.Addr())

	_, _, err := run(t, "set", "k", "42")
	require.NoError(t, err)
	out, _, err := run(t, "get", "k")
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestCLI_ConfigFile(t *testing.T) {
	mr := newRedis(t)
	path := filepath.Join(t.TempDir(), "rediscodec.toml")
	require.NoError(t, os.WriteFile(path, []byte("addr = \""+mr.Addr()+"\"\ncodec = \"json\"\n"), 0o600))

	_, _, err := run(t, "--config", path, "set", "k", `{"a":1}`)
	require.NoError(t, err)
	stored, err := mr.Get("k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, stored)
}

func TestCLI_Debug_Logs(t *testing.T) {
	mr := newRedis(t)

	_, errOut, err := run(t, "--addr", mr.Addr(), "--debug", "set", "k", "1")
	require.NoError(t, err)
	assert.Contains(t, errOut, "stored value")
}

func TestCLI_Version(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "0000.00.00-0000-dev\n", out)
}

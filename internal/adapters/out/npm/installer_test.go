package npm

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/layerkit/internal/domain"
)

const fakeNPM = `#!/bin/sh
echo "$(pwd -P)|$HOME|$npm_config_cache|$*" >> "$FAKE_NPM_LOG"
case "$2" in
  broken*) echo "npm ERR! 404 Not Found: $2" >&2; exit 1 ;;
  slow*) exec sleep 5 ;;
esac
mkdir -p "node_modules/${2%@*}"
echo '{}' > "node_modules/${2%@*}/package.json"
`

func setupFake(t *testing.T) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake installer requires a POSIX shell")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "npm")
	require.NoError(t, os.WriteFile(script, []byte(fakeNPM), 0o755))

	logPath := filepath.Join(dir, "calls.log")
	t.Setenv("FAKE_NPM_LOG", logPath)

	return script, logPath
}

func testWorkspace(t *testing.T) *domain.Workspace {
	t.Helper()
	root := t.TempDir()
	ws := &domain.Workspace{
		ID:        "test",
		LayerName: "my-layer",
		Root:      root,
		Dir:       filepath.Join(root, "layer"),
		CacheDir:  filepath.Join(root, ".installer", "cache"),
		HomeDir:   filepath.Join(root, ".installer", "home"),
	}
	for _, d := range []string{ws.Dir, ws.CacheDir, ws.HomeDir} {
		require.NoError(t, os.MkdirAll(d, 0o750))
	}
	return ws
}

func readCalls(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"install", "lodash@4.17.21", "--save-exact", "--no-package-lock", "--no-audit", "--no-fund", "--omit=dev"},
		Args("lodash@4.17.21"))
}

func TestInstaller_Install_RunsInWorkspace(t *testing.T) {
	script, logPath := setupFake(t)
	ws := testWorkspace(t)
	inst := NewInstaller(Config{Command: script, Timeout: 10 * time.Second})

	require.NoError(t, inst.Install(context.Background(), "lodash@4.17.21", ws))
	require.NoError(t, inst.Install(context.Background(), "axios", ws))

	calls := readCalls(t, logPath)
	require.Len(t, calls, 2)

	wantDir, err := filepath.EvalSymlinks(ws.Dir)
	require.NoError(t, err)

	fields := strings.SplitN(calls[0], "|", 4)
	require.Len(t, fields, 4)
	assert.Equal(t, wantDir, fields[0])
	assert.Equal(t, ws.HomeDir, fields[1])
	assert.Equal(t, ws.CacheDir, fields[2])
	assert.Equal(t, strings.Join(Args("lodash@4.17.21"), " "), fields[3])

	assert.True(t, strings.HasSuffix(calls[1], "|"+strings.Join(Args("axios"), " ")))
	assert.FileExists(t, filepath.Join(ws.Dir, "node_modules", "lodash", "package.json"))
	assert.FileExists(t, filepath.Join(ws.Dir, "node_modules", "axios", "package.json"))
}

func TestInstaller_Install_DoesNotChangeProcessEnv(t *testing.T) {
	script, _ := setupFake(t)
	ws := testWorkspace(t)
	homeBefore := os.Getenv("HOME")

	inst := NewInstaller(Config{Command: script})
	require.NoError(t, inst.Install(context.Background(), "lodash", ws))

	assert.Equal(t, homeBefore, os.Getenv("HOME"))
	assert.Empty(t, os.Getenv("npm_config_cache"))
}

func TestInstaller_Install_FailureCarriesSpecAndStderr(t *testing.T) {
	script, _ := setupFake(t)
	ws := testWorkspace(t)
	inst := NewInstaller(Config{Command: script})

	err := inst.Install(context.Background(), "broken-pkg@9.9.9", ws)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInstallFailed)
	assert.Contains(t, err.Error(), "broken-pkg@9.9.9")
	assert.Contains(t, err.Error(), "exited with code 1")
	assert.Contains(t, err.Error(), "404 Not Found")
}

func TestInstaller_Install_Timeout(t *testing.T) {
	script, _ := setupFake(t)
	ws := testWorkspace(t)
	inst := NewInstaller(Config{Command: script, Timeout: 200 * time.Millisecond})

	err := inst.Install(context.Background(), "slow-pkg", ws)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInstallFailed)
	assert.Contains(t, err.Error(), "timed out")
}

func TestInstaller_Install_MissingExecutable(t *testing.T) {
	ws := testWorkspace(t)
	inst := NewInstaller(Config{Command: filepath.Join(t.TempDir(), "no-such-npm")})

	err := inst.Install(context.Background(), "lodash", ws)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInstallFailed)
	assert.Contains(t, err.Error(), "failed to execute")
}

func TestInstaller_Env(t *testing.T) {
	t.Setenv("npm_config_cache", "/somewhere/else")
	t.Setenv("LAYERKIT_PASSTHROUGH", "yes")
	ws := testWorkspace(t)

	env := NewInstaller(Config{}).Env(ws)

	var caches []string
	for _, kv := range env {
		if strings.HasPrefix(kv, "npm_config_cache=") {
			caches = append(caches, kv)
		}
	}
	assert.Equal(t, []string{"npm_config_cache=" + ws.CacheDir}, caches)
	assert.Contains(t, env, "LAYERKIT_PASSTHROUGH=yes")
	assert.Contains(t, env, "HOME="+ws.HomeDir)
}

func TestTail(t *testing.T) {
	long := strings.Repeat("x", stderrTail+10)
	assert.Equal(t, "short", tail("  short\n"))
	assert.True(t, strings.HasPrefix(tail(long), "..."))
	assert.Len(t, tail(long), stderrTail+3)
}

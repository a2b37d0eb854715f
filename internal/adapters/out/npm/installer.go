// Package npm implements the PackageInstaller by running the npm CLI.
package npm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/zerowrap"

	"github.com/bnema/layerkit/internal/domain"
)

const (
	// DefaultCommand is the installer executable looked up in PATH.
	DefaultCommand = "npm"

	// DefaultTimeout bounds a single install.
	DefaultTimeout = 5 * time.Minute

	// stderrTail is how much installer stderr is kept for error reports.
	stderrTail = 2048
)

// installFlags pin exact versions, skip lockfile, audit and funding, and
// leave out development dependencies.
var installFlags = []string{
	"--save-exact",
	"--no-package-lock",
	"--no-audit",
	"--no-fund",
	"--omit=dev",
}

// overriddenEnv lists variables the installer must never inherit.
var overriddenEnv = []string{
	"HOME",
	"XDG_CONFIG_HOME",
	"XDG_CACHE_HOME",
	"npm_config_cache",
	"npm_config_userconfig",
	"npm_config_update_notifier",
}

// Config configures the installer.
type Config struct {
	Command string
	Timeout time.Duration
}

// Installer implements the PackageInstaller interface.
type Installer struct {
	command string
	timeout time.Duration
	baseEnv []string
}

// NewInstaller creates an installer. The process environment is captured once;
// per-workspace overrides are applied to each subprocess only.
func NewInstaller(cfg Config) *Installer {
	if cfg.Command == "" {
		cfg.Command = DefaultCommand
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Installer{
		command: cfg.Command,
		timeout: cfg.Timeout,
		baseEnv: filterEnv(os.Environ(), overriddenEnv),
	}
}

// Install runs `npm install <spec>` inside the workspace.
func (i *Installer) Install(ctx context.Context, spec string, ws *domain.Workspace) error {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "npm",
		"spec":                spec,
	})
	log := zerowrap.FromCtx(ctx)

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, i.command, Args(spec)...)
	cmd.Dir = ws.Dir
	cmd.Env = i.Env(ws)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = 5 * time.Second

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s: timed out after %s", domain.ErrInstallFailed, spec, i.timeout)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: %s: %s exited with code %d: %s",
				domain.ErrInstallFailed, spec, i.command, exitErr.ExitCode(), tail(stderr.String()))
		}

		return fmt.Errorf("%w: %s: failed to execute %s: %v", domain.ErrInstallFailed, spec, i.command, err)
	}

	log.Debug().
		Dur(zerowrap.FieldDuration, elapsed).
		Str("output", tail(stdout.String())).
		Msg("package installed")

	return nil
}

// Args returns the installer arguments for one spec.
func Args(spec string) []string {
	return append([]string{"install", spec}, installFlags...)
}

// Env returns the subprocess environment for a workspace: the inherited
// environment with home, config and cache redirected below the workspace.
func (i *Installer) Env(ws *domain.Workspace) []string {
	env := make([]string, 0, len(i.baseEnv)+len(overriddenEnv))
	env = append(env, i.baseEnv...)

	return append(env,
		"HOME="+ws.HomeDir,
		"XDG_CONFIG_HOME="+filepath.Join(ws.HomeDir, ".config"),
		"XDG_CACHE_HOME="+ws.CacheDir,
		"npm_config_cache="+ws.CacheDir,
		"npm_config_userconfig="+filepath.Join(ws.HomeDir, ".npmrc"),
		"npm_config_update_notifier=false",
	)
}

func filterEnv(env, drop []string) []string {
	kept := make([]string, 0, len(env))
	for _, kv := range env {
		key, _, _ := strings.Cut(kv, "=")
		if !containsFold(drop, key) {
			kept = append(kept, kv)
		}
	}
	return kept
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= stderrTail {
		return s
	}
	return "..." + s[len(s)-stderrTail:]
}

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration to "+target)
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err == nil {
		t.Fatal("expected error when the file already exists")
	}
	requireContains(t, err.Error(), "already exists")

	out, _, err = runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "")
	if err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# Config path: "+env.configPath)
	requireContains(t, out, "[paths]")
	requireContains(t, out, env.stagingDir)
}

func TestConfigInitDefaultPath(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "init"}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	expected := filepath.Join(env.baseDir, "home", ".config", "captioner", "config.toml")
	requireContains(t, out, expected)
	if _, err := os.Stat(expected); err != nil {
		t.Fatalf("expected config file at %s: %v", expected, err)
	}
}

func TestConfigInitSkipsConfigLoad(t *testing.T) {
	env := setupCLITestEnv(t)
	// A broken config must not block init, only commands that need it.
	writeTestConfig(t, env, "[subtitles]\nmax_chars = -1")

	target := filepath.Join(env.baseDir, "fresh.toml")
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, env.configPath); err != nil {
		t.Fatalf("config init with broken config: %v", err)
	}

	_, _, err := runCLI(t, []string{"deps"}, env.configPath)
	if err == nil {
		t.Fatal("expected deps to fail on the broken config")
	}
	requireContains(t, err.Error(), "subtitles.max_chars")
}

func TestConfigShowDefaultsWhenMissing(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "show"}, "")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# File not found; showing defaults")
	requireContains(t, out, "[encoder]")
}

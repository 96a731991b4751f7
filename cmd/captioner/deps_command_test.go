package main

import (
	"fmt"
	"path/filepath"
	"testing"
)

func TestDepsCommandAllAvailable(t *testing.T) {
	env := setupCLITestEnv(t)
	encoder := writeStubEncoder(t, filepath.Join(env.baseDir, "bin"))
	writeTestConfig(t, env, fmt.Sprintf("[encoder]\nbinary = %q", encoder))

	out, _, err := runCLI(t, []string{"deps"}, env.configPath)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "ok")
	requireContains(t, out, "Staging directory")
}

func TestDepsCommandMissingEncoderFails(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env, fmt.Sprintf("[encoder]\nbinary = %q", filepath.Join(env.baseDir, "missing-ffmpeg")))

	out, _, err := runCLI(t, []string{"deps"}, env.configPath)
	if err == nil {
		t.Fatal("expected error when the encoder is missing")
	}
	requireContains(t, err.Error(), "missing required dependencies: FFmpeg")
	requireContains(t, out, "missing")
}

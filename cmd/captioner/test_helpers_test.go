package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	stagingDir string
	logDir     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("CAPTIONER_CONFIG", "")
	t.Setenv("CAPTIONER_NTFY_TOPIC", "")

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		stagingDir: filepath.Join(base, "staging"),
		logDir:     filepath.Join(base, "logs"),
	}
	writeTestConfig(t, env)
	return env
}

// writeTestConfig writes a minimal config pointing the working directories at
// the test sandbox. Extra sections are appended verbatim.
func writeTestConfig(t *testing.T, env *cliTestEnv, extraSections ...string) {
	t.Helper()
	content := fmt.Sprintf("[paths]\nstaging_dir = %q\nlog_dir = %q\n", env.stagingDir, env.logDir)
	for _, section := range extraSections {
		content += "\n" + section + "\n"
	}
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeTranscriptFixture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "transcript.json")
	content := `{
  "language": "en",
  "words": [
    {"text": "Hello", "start_ms": 0, "end_ms": 400},
    {"text": "world", "start_ms": 450, "end_ms": 900},
    {"text": ",", "start_ms": 900, "end_ms": 900},
    {"text": "captions", "start_ms": 950, "end_ms": 1500},
    {"text": "everywhere", "start_ms": 1550, "end_ms": 2100},
    {"text": ".", "start_ms": 2100, "end_ms": 2100}
  ]
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write transcript fixture: %v", err)
	}
	return path
}

func writeSRTFixture(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := "1\n00:00:01,000 --> 00:00:02,500\nHello world\n\n2\n00:00:03,000 --> 00:00:04,000\nGoodbye\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write srt fixture: %v", err)
	}
	return path
}

// writeStubEncoder installs a shell script that mimics the two ffmpeg
// invocations the CLI makes: a probe (no -vf) prints stream diagnostics and
// exits non-zero like the real binary, an encode writes the output file and
// prints progress lines.
func writeStubEncoder(t *testing.T, dir string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create stub bin dir: %v", err)
	}
	path := filepath.Join(dir, "ffmpeg")
	script := `#!/bin/sh
case "$*" in
*" -vf "*)
    for last; do :; done
    printf 'encoded' > "$last"
    printf 'frame=   24 fps=24 q=28.0 size=256KiB time=00:00:01.00 bitrate=1024.0kbits/s speed=1.9x\r' >&2
    printf 'frame=   48 fps=24 q=28.0 size=512KiB time=00:00:02.00 bitrate=1024.0kbits/s speed=1.9x\n' >&2
    exit 0
    ;;
*)
    echo "Input #0, mov,mp4,m4a,3gp,3g2,mj2, from '$3':" >&2
    echo "  Duration: 00:00:02.00, start: 0.000000, bitrate: 1000 kb/s" >&2
    echo "  Stream #0:0(und): Video: h264 (High), yuv420p(tv), 1280x720, 983 kb/s, 30 fps" >&2
    echo "At least one output file must be specified" >&2
    exit 1
    ;;
esac
`
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub encoder: %v", err)
	}
	return path
}

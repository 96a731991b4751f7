package render_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"captioner/internal/render"
)

type stubExecutor struct {
	lines  []string
	err    error
	calls  int
	binary string
	args   [][]string
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	s.calls++
	s.binary = binary
	s.args = append(s.args, append([]string(nil), args...))
	if ctx.Err() != nil {
		return ctx.Err()
	}
	for _, line := range s.lines {
		if onLine != nil {
			onLine(line)
		}
	}
	return s.err
}

func TestClientProbeParsesDiagnostics(t *testing.T) {
	stub := &stubExecutor{
		lines: []string{
			"Input #0, mov,mp4,m4a,3gp,3g2,mj2, from 'clip.mp4':",
			"  Duration: 00:02:00.00, start: 0.000000, bitrate: 8000 kb/s",
			"  Stream #0:0(und): Video: h264, yuv420p, 1920x1080, 7862 kb/s, 30 fps",
		},
		err: fmt.Errorf("wait command: exit status 1"),
	}
	client, err := render.New("/usr/bin/ffmpeg", render.WithExecutor(stub))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := client.Probe(context.Background(), "clip.mp4")
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if res.Width != 1920 || res.Height != 1080 || res.DurationMs != 120000 {
		t.Fatalf("probe = %+v", res)
	}
	if stub.binary != "/usr/bin/ffmpeg" {
		t.Fatalf("binary = %q", stub.binary)
	}
	want := []string{"-hide_banner", "-i", "clip.mp4"}
	if len(stub.args) != 1 || len(stub.args[0]) != len(want) {
		t.Fatalf("args = %v", stub.args)
	}
	for i := range want {
		if stub.args[0][i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, stub.args[0][i], want[i])
		}
	}
}

func TestClientProbeDegradesToDefaults(t *testing.T) {
	stub := &stubExecutor{
		lines: []string{"clip.mp4: No such file or directory"},
		err:   fmt.Errorf("wait command: exit status 1"),
	}
	client, err := render.New("ffmpeg", render.WithExecutor(stub))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := client.Probe(context.Background(), "clip.mp4")
	if !errors.Is(err, render.ErrProbeFailed) {
		t.Fatalf("Probe error = %v, want ErrProbeFailed", err)
	}
	if res.Width != render.DefaultProbeWidth || res.Height != render.DefaultProbeHeight {
		t.Fatalf("defaults not applied: %+v", res)
	}
	if res.DurationMs != 0 {
		t.Fatalf("duration = %d, want 0", res.DurationMs)
	}
}

func TestClientProbeReportsMissingDuration(t *testing.T) {
	stub := &stubExecutor{
		lines: []string{
			"  Duration: N/A, start: 0.000000, bitrate: N/A",
			"  Stream #0:0: Video: mjpeg, yuvj420p, 1280x720, 25 fps",
		},
		err: fmt.Errorf("wait command: exit status 1"),
	}
	client, _ := render.New("ffmpeg", render.WithExecutor(stub))

	res, err := client.Probe(context.Background(), "stream.mjpeg")
	if !errors.Is(err, render.ErrProbeFailed) {
		t.Fatalf("Probe error = %v, want ErrProbeFailed", err)
	}
	if res.Width != 1280 || res.Height != 720 {
		t.Fatalf("parsed dimensions should be kept: %+v", res)
	}
}

func TestClientProbeLaunchFailure(t *testing.T) {
	stub := &stubExecutor{err: fmt.Errorf("%w: ffmpeg: no such file", render.ErrProcessLaunchFailed)}
	client, _ := render.New("ffmpeg", render.WithExecutor(stub))
	if _, err := client.Probe(context.Background(), "clip.mp4"); !errors.Is(err, render.ErrProcessLaunchFailed) {
		t.Fatalf("Probe error = %v, want ErrProcessLaunchFailed", err)
	}
}

func TestClientProbeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client, _ := render.New("ffmpeg", render.WithExecutor(&stubExecutor{}))
	if _, err := client.Probe(ctx, "clip.mp4"); !errors.Is(err, render.ErrCancelled) {
		t.Fatalf("Probe error = %v, want ErrCancelled", err)
	}
}

func TestClientEncodeStreamsProgress(t *testing.T) {
	stub := &stubExecutor{
		lines: []string{
			"Stream mapping:",
			"frame=  240 fps= 48 q=28.0 size=    1024KiB time=00:00:30.00 bitrate=1048.6kbits/s speed=1.6x",
			"frame=  480 fps= 48 q=28.0 size=    2048KiB time=00:01:00.00 bitrate=1048.6kbits/s speed=1.6x",
		},
	}
	client, _ := render.New("ffmpeg", render.WithExecutor(stub))

	job := render.EncodeJob{
		InputPath:  "in.mp4",
		OutputPath: "out.mp4",
		Filter:     "subtitles=doc.ass",
		DurationMs: 120000,
	}
	var fractions []float64
	err := client.Encode(context.Background(), job, func(p render.Progress) {
		fractions = append(fractions, p.Fraction)
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []float64{0.25, 0.5, 1}
	if len(fractions) != len(want) {
		t.Fatalf("fractions = %v, want %v", fractions, want)
	}
	for i := range want {
		if fractions[i] != want[i] {
			t.Fatalf("fractions[%d] = %v, want %v", i, fractions[i], want[i])
		}
	}

	args := stub.args[0]
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-vf subtitles=doc.ass") || !strings.Contains(joined, "-c:a copy") || !strings.Contains(joined, "-y out.mp4") {
		t.Fatalf("args = %q", joined)
	}
}

func TestClientEncodeFailureKeepsDiagnosticTail(t *testing.T) {
	stub := &stubExecutor{
		lines: []string{
			"frame=1 time=00:00:01.00 speed=1x",
			"[Parsed_subtitles_0 @ 0x5616] Unable to open doc.ass",
			"Error initializing filters",
		},
		err: fmt.Errorf("wait command: exit status 234"),
	}
	client, _ := render.New("ffmpeg", render.WithExecutor(stub))
	job := render.EncodeJob{InputPath: "in.mp4", OutputPath: "out.mp4", Filter: "subtitles=doc.ass"}

	err := client.Encode(context.Background(), job, nil)
	if !errors.Is(err, render.ErrEncodeFailed) {
		t.Fatalf("Encode error = %v, want ErrEncodeFailed", err)
	}
	if !strings.Contains(err.Error(), "Unable to open doc.ass") {
		t.Fatalf("error should keep diagnostics: %v", err)
	}
	if strings.Contains(err.Error(), "time=00:00:01.00") {
		t.Fatalf("progress lines do not belong in diagnostics: %v", err)
	}
}

func TestClientEncodeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client, _ := render.New("ffmpeg", render.WithExecutor(&stubExecutor{}))
	job := render.EncodeJob{InputPath: "in.mp4", OutputPath: "out.mp4", Filter: "subtitles=doc.ass"}
	if err := client.Encode(ctx, job, nil); !errors.Is(err, render.ErrCancelled) {
		t.Fatalf("Encode error = %v, want ErrCancelled", err)
	}
}

func TestClientEncodeValidatesJob(t *testing.T) {
	client, _ := render.New("ffmpeg", render.WithExecutor(&stubExecutor{}))
	jobs := []render.EncodeJob{
		{OutputPath: "out.mp4", Filter: "f"},
		{InputPath: "in.mp4", Filter: "f"},
		{InputPath: "in.mp4", OutputPath: "out.mp4"},
	}
	for i, job := range jobs {
		if err := client.Encode(context.Background(), job, nil); err == nil {
			t.Fatalf("job %d: expected validation error", i)
		}
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := render.New("  "); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

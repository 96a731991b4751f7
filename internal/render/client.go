package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Encoder abstracts the external video encoder so orchestration and command
// surfaces can be tested without a binary on PATH.
type Encoder interface {
	// Probe inspects the input and returns its displayed geometry and
	// duration. The result is always usable: when probing degrades the
	// defaults are returned together with an error wrapping ErrProbeFailed.
	Probe(ctx context.Context, path string) (ProbeResult, error)

	// Encode burns the prepared filter graph into the output file,
	// reporting progress as the encoder advances.
	Encode(ctx context.Context, job EncodeJob, onProgress func(Progress)) error
}

// EncodeJob describes one burn-in invocation.
type EncodeJob struct {
	InputPath  string
	OutputPath string
	Filter     string
	DurationMs int64
}

func (j EncodeJob) validate() error {
	if strings.TrimSpace(j.InputPath) == "" {
		return errors.New("encode job: input path is empty")
	}
	if strings.TrimSpace(j.OutputPath) == "" {
		return errors.New("encode job: output path is empty")
	}
	if strings.TrimSpace(j.Filter) == "" {
		return errors.New("encode job: filter is empty")
	}
	return nil
}

// Option customizes Client construction.
type Option func(*Client)

// WithExecutor overrides the process executor.
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithProbeTimeout bounds how long a probe may run. Zero disables the bound.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *Client) { c.probeTimeout = d }
}

// WithEncodeTimeout bounds how long an encode may run. Zero disables the
// bound.
func WithEncodeTimeout(d time.Duration) Option {
	return func(c *Client) { c.encodeTimeout = d }
}

const defaultProbeTimeout = 30 * time.Second

// Client drives a resolved ffmpeg binary. The same args, filter quoting,
// and progress parsing apply whether the binary came from configuration, a
// bundled sidecar, or PATH.
type Client struct {
	binary        string
	exec          Executor
	probeTimeout  time.Duration
	encodeTimeout time.Duration
}

// New builds a Client for the given binary path.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("encoder binary not configured")
	}
	client := &Client{
		binary:       binary,
		exec:         commandExecutor{},
		probeTimeout: defaultProbeTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Probe runs the encoder against the input with no output so it prints
// stream diagnostics, then parses geometry, duration, and rotation out of
// them. The encoder exits non-zero for such invocations; only a launch
// failure or cancellation is fatal.
func (c *Client) Probe(ctx context.Context, path string) (ProbeResult, error) {
	res := ProbeResult{Width: DefaultProbeWidth, Height: DefaultProbeHeight}
	if strings.TrimSpace(path) == "" {
		return res, fmt.Errorf("%w: input path is empty", ErrProbeFailed)
	}

	probeCtx := ctx
	if c.probeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, c.probeTimeout)
		defer cancel()
	}

	var (
		mu    sync.Mutex
		lines []string
	)
	runErr := c.exec.Run(probeCtx, c.binary, []string{"-hide_banner", "-i", path}, func(line string) {
		mu.Lock()
		lines = append(lines, line)
		mu.Unlock()
	})
	if runErr != nil {
		switch {
		case ctx.Err() != nil:
			return res, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		case errors.Is(runErr, ErrProcessLaunchFailed):
			return res, runErr
		case probeCtx.Err() != nil:
			return res, fmt.Errorf("%w: timed out after %s", ErrProbeFailed, c.probeTimeout)
		}
	}

	parsed := parseProbeOutput(lines)
	res.Rotation = parsed.Rotation
	res.DurationMs = parsed.DurationMs
	if parsed.Width > 0 && parsed.Height > 0 {
		res.Width = parsed.Width
		res.Height = parsed.Height
	}
	switch {
	case parsed.Width <= 0:
		return res, fmt.Errorf("%w: no video dimensions reported for %s", ErrProbeFailed, path)
	case parsed.DurationMs <= 0:
		return res, fmt.Errorf("%w: no duration reported for %s", ErrProbeFailed, path)
	}
	return res, nil
}

// Encode runs the burn-in render, streaming progress updates derived from
// the encoder's time= tokens. Failure detail keeps the tail of the encoder's
// diagnostic output.
func (c *Client) Encode(ctx context.Context, job EncodeJob, onProgress func(Progress)) error {
	if err := job.validate(); err != nil {
		return err
	}

	encodeCtx := ctx
	if c.encodeTimeout > 0 {
		var cancel context.CancelFunc
		encodeCtx, cancel = context.WithTimeout(ctx, c.encodeTimeout)
		defer cancel()
	}

	var (
		mu          sync.Mutex
		tail        []string
		lastElapsed int64
	)
	runErr := c.exec.Run(encodeCtx, c.binary, encodeArgs(job), func(line string) {
		if elapsed, ok := parseEncodeTime(line); ok {
			mu.Lock()
			if elapsed > lastElapsed {
				lastElapsed = elapsed
			}
			mu.Unlock()
			if onProgress != nil {
				onProgress(progressFor(elapsed, job.DurationMs))
			}
			return
		}
		mu.Lock()
		tail = append(tail, line)
		if len(tail) > diagnosticTailLines {
			tail = tail[1:]
		}
		mu.Unlock()
	})

	if runErr != nil {
		detail := strings.Join(tail, "\n")
		switch {
		case ctx.Err() != nil:
			return fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		case errors.Is(runErr, ErrProcessLaunchFailed):
			return runErr
		case encodeCtx.Err() != nil:
			return fmt.Errorf("%w: timed out after %s:\n%s", ErrEncodeFailed, c.encodeTimeout, detail)
		default:
			return fmt.Errorf("%w: %v:\n%s", ErrEncodeFailed, runErr, detail)
		}
	}

	if onProgress != nil {
		elapsed := job.DurationMs
		if elapsed <= 0 {
			elapsed = lastElapsed
		}
		onProgress(Progress{Fraction: 1, ElapsedMs: elapsed})
	}
	return nil
}

const diagnosticTailLines = 20

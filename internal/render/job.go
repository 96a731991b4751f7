package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"captioner/internal/logging"
)

// State identifies where a render job is in its lifecycle.
type State string

const (
	StateIdle           State = "idle"
	StateProbing        State = "probing"
	StateBuildingFilter State = "building-filter"
	StateEncoding       State = "encoding"
	StateSucceeded      State = "succeeded"
	StateFailed         State = "failed"
)

// Job describes one burn-in render request.
type Job struct {
	InputPath    string
	OutputPath   string
	SubtitlePath string
	FontsDir     string
	Target       Resolution
}

func (j Job) validate() error {
	if strings.TrimSpace(j.InputPath) == "" {
		return errors.New("render job: input path is empty")
	}
	if strings.TrimSpace(j.OutputPath) == "" {
		return errors.New("render job: output path is empty")
	}
	if strings.TrimSpace(j.SubtitlePath) == "" {
		return errors.New("render job: subtitle path is empty")
	}
	return nil
}

// Result summarizes a finished render attempt.
type Result struct {
	JobID   string
	State   State
	Probe   ProbeResult
	Filter  string
	Elapsed time.Duration
}

// Runner walks one render job through probe, filter assembly, and encode.
// An advisory lock next to the output path keeps concurrent runs from
// clobbering each other; a second render against the same output fails fast
// with ErrOutputBusy.
type Runner struct {
	enc    Encoder
	logger *slog.Logger
}

// NewRunner builds a Runner. A nil logger disables logging.
func NewRunner(enc Encoder, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{enc: enc, logger: logging.NewComponentLogger(logger, "render")}
}

// Run executes the job. Progress updates stream to onProgress; sampled
// progress also lands in the log so unattended renders leave a trail.
func (r *Runner) Run(ctx context.Context, job Job, onProgress func(Progress)) (Result, error) {
	result := Result{JobID: uuid.NewString(), State: StateIdle}
	if err := job.validate(); err != nil {
		result.State = StateFailed
		return result, err
	}

	log := r.logger.With(logging.String(logging.FieldJobID, result.JobID))

	lock := flock.New(job.OutputPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		result.State = StateFailed
		return result, fmt.Errorf("lock output: %w", err)
	}
	if !locked {
		result.State = StateFailed
		return result, fmt.Errorf("%w: %s", ErrOutputBusy, job.OutputPath)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	started := time.Now()
	result.State = StateProbing
	log.Info("probing input", logging.String("input", job.InputPath))
	probe, err := r.enc.Probe(ctx, job.InputPath)
	result.Probe = probe
	if err != nil {
		if !errors.Is(err, ErrProbeFailed) {
			result.State = StateFailed
			result.Elapsed = time.Since(started)
			return result, err
		}
		log.Warn("probe degraded, using defaults",
			logging.Error(err),
			logging.Int("width", probe.Width),
			logging.Int("height", probe.Height))
	}

	result.State = StateBuildingFilter
	result.Filter = BuildFilter(job.SubtitlePath, job.FontsDir, job.Target, probe.Portrait())
	log.Info("filter assembled",
		logging.String("filter", result.Filter),
		logging.String("target", string(job.Target)))

	result.State = StateEncoding
	sampler := logging.NewProgressSampler(5)
	encode := EncodeJob{
		InputPath:  job.InputPath,
		OutputPath: job.OutputPath,
		Filter:     result.Filter,
		DurationMs: probe.DurationMs,
	}
	err = r.enc.Encode(ctx, encode, func(p Progress) {
		if p.Fraction >= 0 {
			percent := p.Fraction * 100
			if sampler.ShouldLog(percent, string(StateEncoding)) {
				log.Info("encode progress",
					logging.Int("percent", int(percent)),
					logging.Int64("elapsed_ms", p.ElapsedMs))
			}
		}
		if onProgress != nil {
			onProgress(p)
		}
	})
	result.Elapsed = time.Since(started)
	if err != nil {
		result.State = StateFailed
		log.Error("render failed", logging.Error(err), logging.Duration("elapsed", result.Elapsed))
		return result, err
	}

	result.State = StateSucceeded
	log.Info("render succeeded",
		logging.String("output", job.OutputPath),
		logging.Duration("elapsed", result.Elapsed))
	return result, nil
}

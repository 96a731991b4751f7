package render

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// Executor runs the encoder binary and streams every output line to onLine.
// Stdout and stderr are both forwarded; ffmpeg writes stream diagnostics and
// progress to stderr.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// commandExecutor launches real processes.
type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrProcessLaunchFailed, binary, err)
	}

	var (
		wg       sync.WaitGroup
		scanOnce sync.Once
		scanErr  error
	)
	abort := func(err error) {
		scanOnce.Do(func() {
			scanErr = err
			if cmd.Process != nil {
				_ = cmd.Process.Kill()
			}
		})
	}
	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		scanner.Split(scanStatusLines)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			if onLine != nil {
				onLine(line)
			}
		}
		if err := scanner.Err(); err != nil {
			abort(fmt.Errorf("scan encoder output: %w", err))
		}
	}
	wg.Add(2)
	go scan(stdout)
	go scan(stderr)
	wg.Wait()

	waitErr := cmd.Wait()
	if scanErr != nil {
		return scanErr
	}
	if waitErr != nil {
		return fmt.Errorf("wait command: %w", waitErr)
	}
	return nil
}

// scanStatusLines splits on \n, \r\n, or a bare \r. ffmpeg redraws its
// progress line with carriage returns, so a newline-only split would sit on
// the stats until the process exits.
func scanStatusLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

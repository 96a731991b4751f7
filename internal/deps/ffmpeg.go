package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveFFmpeg reports the ffmpeg binary renders will execute.
//
// Resolution prefers an explicitly configured binary, then an ffmpeg that
// sits next to the captioner executable, then "ffmpeg" from PATH. An
// explicit configuration is authoritative: when it cannot be used the
// failure is reported instead of falling back to a different binary.
func ResolveFFmpeg(configured string) Status {
	result := Status{
		Name:        "FFmpeg",
		Description: "Required for probing and caption burn-in",
	}

	binary := strings.TrimSpace(configured)
	if binary != "" {
		if strings.ContainsAny(binary, `/\`) {
			info, err := os.Stat(binary)
			if err != nil {
				result.Command = binary
				result.Detail = fmt.Sprintf("configured binary %q not found", binary)
				return result
			}
			if !isExecutable(info) {
				result.Command = binary
				result.Detail = fmt.Sprintf("configured binary %q is not executable", binary)
				return result
			}
			result.Command = binary
			result.Available = true
			return result
		}
		resolved, err := exec.LookPath(binary)
		if err != nil {
			result.Command = binary
			result.Detail = fmt.Sprintf("binary %q not found", binary)
			return result
		}
		result.Command = resolved
		result.Available = true
		return result
	}

	if self, err := os.Executable(); err == nil {
		if candidate, ok := sidecarCandidate(self); ok {
			if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
				result.Command = candidate
				result.Available = true
				return result
			}
		}
	}

	ffmpegName := "ffmpeg"
	if ffmpegPath, err := exec.LookPath(ffmpegName); err == nil {
		result.Command = ffmpegPath
		result.Available = true
		return result
	}

	result.Command = ffmpegName
	result.Detail = fmt.Sprintf("binary %q not found", ffmpegName)
	return result
}

func sidecarCandidate(hostPath string) (string, bool) {
	if hostPath == "" {
		return "", false
	}
	dir := filepath.Dir(hostPath)
	name := "ffmpeg"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(dir, name), true
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

package deps

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"captioner/internal/config"
)

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// RunAll evaluates every dependency a burn-in render needs for the given
// config. The fonts directory is only checked when one is configured.
func RunAll(cfg *config.Config) []Status {
	if cfg == nil {
		return nil
	}
	results := []Status{ResolveFFmpeg(cfg.Encoder.Binary)}
	staging := CheckDirectoryAccess("Staging directory", cfg.Paths.StagingDir)
	staging.Description = "Working area for composed subtitle documents"
	results = append(results, staging)
	logs := CheckDirectoryAccess("Log directory", cfg.Paths.LogDir)
	logs.Description = "Destination for captioner.log"
	results = append(results, logs)
	if cfg.Paths.FontsDir != "" {
		fonts := CheckDirectoryReadable("Fonts directory", cfg.Paths.FontsDir)
		fonts.Description = "Bundled fonts for the burn-in filter"
		fonts.Optional = true
		results = append(results, fonts)
	}
	return results
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Status {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckDirectoryReadable verifies that the directory exists and can be listed.
func CheckDirectoryReadable(name, path string) Status {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "readable")
}

func checkDirectory(name, path string, mode uint32, okDetail string) Status {
	status := Status{Name: name}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			status.Detail = fmt.Sprintf("%s (error: does not exist)", path)
			return status
		}
		status.Detail = fmt.Sprintf("%s (error: stat: %v)", path, err)
		return status
	}
	if !info.IsDir() {
		status.Detail = fmt.Sprintf("%s (error: is not a directory)", path)
		return status
	}
	if err := unix.Access(path, mode); err != nil {
		status.Detail = fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)
		return status
	}
	status.Available = true
	status.Detail = fmt.Sprintf("%s (%s)", path, okDetail)
	return status
}

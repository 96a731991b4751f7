package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"captioner/internal/captions"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StagingDir string `toml:"staging_dir"`
	LogDir     string `toml:"log_dir"`
	FontsDir   string `toml:"fonts_dir"`
}

// Encoder contains configuration for the external video encoder.
type Encoder struct {
	// Binary is an explicit path to the ffmpeg executable. Empty means
	// resolve from the executable's directory, then PATH.
	Binary string `toml:"binary"`
	// ProbeTimeout bounds the metadata probe in seconds.
	ProbeTimeout int `toml:"probe_timeout"`
	// EncodeTimeout bounds a full encode in seconds. Zero disables the bound.
	EncodeTimeout int `toml:"encode_timeout"`
}

// Subtitles contains cue segmentation limits and per-language styles.
type Subtitles struct {
	MaxChars      int              `toml:"max_chars"`
	MaxDurationMs int64            `toml:"max_duration_ms"`
	Punctuation   string           `toml:"punctuation"`
	Styles        map[string]Style `toml:"styles"`
}

// Style describes how one language's captions are drawn. Unset fields fall
// back to the built-in defaults when converted with StyleFor.
type Style struct {
	Font            string  `toml:"font"`
	SizePercent     float64 `toml:"size_percent"`
	Color           string  `toml:"color"`
	PositionPercent float64 `toml:"position_percent"`
	OutlineWidth    float64 `toml:"outline_width"`
}

// Notifications contains ntfy push notification settings.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the captioner.
//
// Configuration sections by subsystem:
//   - Paths: staging, log, and bundled-font directories
//   - Encoder: ffmpeg binary resolution and subprocess timeouts
//   - Subtitles: segmentation limits and per-language caption styles
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Encoder       Encoder       `toml:"encoder"`
	Subtitles     Subtitles     `toml:"subtitles"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/captioner/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		if value, ok := os.LookupEnv("CAPTIONER_CONFIG"); ok && strings.TrimSpace(value) != "" {
			path = strings.TrimSpace(value)
		}
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/captioner/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("captioner.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the staging and log directories. The fonts
// directory is caller-provided content and is never created here.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StagingDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ProbeTimeout returns the metadata probe bound as a duration.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Encoder.ProbeTimeout) * time.Second
}

// EncodeTimeout returns the encode bound as a duration. Zero means unbounded.
func (c *Config) EncodeTimeout() time.Duration {
	return time.Duration(c.Encoder.EncodeTimeout) * time.Second
}

// StyleFor resolves the caption style for a language code. Fields left unset
// in the configuration keep their built-in default values. Language lookup is
// case-insensitive.
func (c *Config) StyleFor(lang string) captions.Style {
	style := captions.DefaultStyle()
	configured, ok := c.Subtitles.Styles[strings.ToLower(strings.TrimSpace(lang))]
	if !ok {
		return style
	}
	if font := strings.TrimSpace(configured.Font); font != "" {
		style.FontFamily = font
	}
	if configured.SizePercent > 0 {
		style.FontSizePct = configured.SizePercent
	}
	if color := strings.TrimSpace(configured.Color); color != "" {
		if argb, err := ParseColor(color); err == nil {
			style.Color = argb
		}
	}
	if configured.PositionPercent > 0 {
		style.VerticalPosPct = configured.PositionPercent
	}
	if configured.OutlineWidth > 0 {
		style.OutlineWidth = configured.OutlineWidth
	}
	return style
}

// ParseColor converts a "#RRGGBB" or "#AARRGGBB" hex string to packed ARGB.
// Six-digit colors are treated as fully opaque.
func ParseColor(value string) (uint32, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(trimmed) {
	case 6:
		parsed, err := strconv.ParseUint(trimmed, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("parse color %q: %w", value, err)
		}
		return 0xFF000000 | uint32(parsed), nil
	case 8:
		parsed, err := strconv.ParseUint(trimmed, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("parse color %q: %w", value, err)
		}
		return uint32(parsed), nil
	default:
		return 0, fmt.Errorf("parse color %q: expected #RRGGBB or #AARRGGBB", value)
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

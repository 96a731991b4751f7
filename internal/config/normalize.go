package config

import (
	"fmt"
	"os"
	"strings"

	"captioner/internal/segmenter"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeEncoder(); err != nil {
		return err
	}
	c.normalizeSubtitles()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = defaultStagingDir
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.FontsDir = strings.TrimSpace(c.Paths.FontsDir)
	if c.Paths.FontsDir != "" {
		if c.Paths.FontsDir, err = expandPath(c.Paths.FontsDir); err != nil {
			return fmt.Errorf("paths.fonts_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeEncoder() error {
	c.Encoder.Binary = strings.TrimSpace(c.Encoder.Binary)
	// Bare command names stay bare so PATH lookup still applies; only
	// expand values that are clearly paths.
	if strings.ContainsAny(c.Encoder.Binary, "/\\") || strings.HasPrefix(c.Encoder.Binary, "~") {
		expanded, err := expandPath(c.Encoder.Binary)
		if err != nil {
			return fmt.Errorf("encoder.binary: %w", err)
		}
		c.Encoder.Binary = expanded
	}
	return nil
}

func (c *Config) normalizeSubtitles() {
	if strings.TrimSpace(c.Subtitles.Punctuation) == "" {
		c.Subtitles.Punctuation = segmenter.DefaultPunctuation
	}
	if len(c.Subtitles.Styles) == 0 {
		return
	}
	styles := make(map[string]Style, len(c.Subtitles.Styles))
	for lang, style := range c.Subtitles.Styles {
		normalized := strings.ToLower(strings.TrimSpace(lang))
		if normalized == "" {
			continue
		}
		style.Font = strings.TrimSpace(style.Font)
		style.Color = strings.TrimSpace(style.Color)
		styles[normalized] = style
	}
	c.Subtitles.Styles = styles
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv("CAPTIONER_NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

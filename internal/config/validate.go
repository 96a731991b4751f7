package config

import (
	"errors"
	"fmt"
	"sort"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncoder(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEncoder() error {
	if c.Encoder.ProbeTimeout <= 0 {
		return errors.New("encoder.probe_timeout must be positive (seconds)")
	}
	if c.Encoder.EncodeTimeout < 0 {
		return errors.New("encoder.encode_timeout must be zero or positive (seconds)")
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.MaxChars <= 0 {
		return errors.New("subtitles.max_chars must be positive")
	}
	if c.Subtitles.MaxDurationMs <= 0 {
		return errors.New("subtitles.max_duration_ms must be positive")
	}

	// Deterministic error ordering when several styles are broken.
	langs := make([]string, 0, len(c.Subtitles.Styles))
	for lang := range c.Subtitles.Styles {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		style := c.Subtitles.Styles[lang]
		if style.SizePercent < 0 || style.SizePercent > 100 {
			return fmt.Errorf("subtitles.styles.%s.size_percent must be between 0 and 100", lang)
		}
		if style.PositionPercent != 0 && (style.PositionPercent < 50 || style.PositionPercent > 95) {
			return fmt.Errorf("subtitles.styles.%s.position_percent must be between 50 and 95", lang)
		}
		if style.OutlineWidth < 0 {
			return fmt.Errorf("subtitles.styles.%s.outline_width must be zero or positive", lang)
		}
		if style.Color != "" {
			if _, err := ParseColor(style.Color); err != nil {
				return fmt.Errorf("subtitles.styles.%s.color: %w", lang, err)
			}
		}
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive (seconds)")
	}
	return nil
}

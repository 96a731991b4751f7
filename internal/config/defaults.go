package config

const (
	defaultStagingDir     = "~/.local/share/captioner/staging"
	defaultLogDir         = "~/.local/share/captioner/logs"
	defaultProbeTimeout   = 30
	defaultEncodeTimeout  = 0
	defaultMaxChars       = 42
	defaultMaxDurationMs  = 2500
	defaultRequestTimeout = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
		},
		Encoder: Encoder{
			ProbeTimeout:  defaultProbeTimeout,
			EncodeTimeout: defaultEncodeTimeout,
		},
		Subtitles: Subtitles{
			MaxChars:      defaultMaxChars,
			MaxDurationMs: defaultMaxDurationMs,
		},
		Notifications: Notifications{
			RequestTimeout: defaultRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

const (
	defaultBaseURL          = "http://127.0.0.1:8080"
	defaultUserAgent        = "strmctl/dev"
	defaultStateDirFallback = "~/.local/state/strmctl"
	defaultLogDir           = "~/.local/share/strmctl/logs"
	defaultSearchMode       = SearchModeSubmit
	defaultOutputFile       = "default.mp4"
	defaultJWTSubject       = "strmctl"
	defaultJWTTTLSeconds    = 300
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogMaxSizeMB     = 10
	defaultLogMaxBackups    = 3
	defaultLogMaxAgeDays    = 30
	environmentServerKey    = "STRMCTL_SERVER"
	environmentTokenKey     = "STRMCTL_TOKEN"
	environmentJWTSecretKey = "STRMCTL_JWT_SECRET"
	environmentStateDirKey  = "STRMCTL_STATE_DIR"
)

// Search modes accepted by twitch.search_mode.
const (
	SearchModeSubmit = "submit"
	SearchModeLive   = "live"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:   defaultBaseURL,
			UserAgent: defaultUserAgent,
		},
		Auth: Auth{
			JWTSubject:    defaultJWTSubject,
			JWTTTLSeconds: defaultJWTTTLSeconds,
		},
		Paths: Paths{
			StateDir: defaultStateDir(),
			LogDir:   defaultLogDir,
		},
		Twitch: Twitch{
			SearchMode: defaultSearchMode,
		},
		Stream: Stream{
			DefaultOutputFile: defaultOutputFile,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}
